package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/collide"
)

var methodHelp = map[collide.Method]string{
	collide.Generalized:   "offset edges joined by arcs around every vertex; exact Minkowski sum with a disc",
	collide.PreserveShape: "offset edges joined at their intersections; keeps the polygon's shape",
	collide.Convex:        "two points per vertex along the adjacent edge normals; chamfered corners",
}

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List collision box expansion methods",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for _, m := range collide.Methods() {
			fmt.Fprintf(w, "%-15s %-20s %s\n", m, m.Name(), methodHelp[m])
		}
		return nil
	},
}
