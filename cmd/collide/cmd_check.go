package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/scene"
)

var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check <scene>...",
	Short: "Validate scenes and report obstacles that are too close",
	Long: `Loads each scene, validates every obstacle and reports pairs that violate
the minimum spacing or the gap between collision boxes. Exits non-zero when
any scene fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := termenv.NewOutput(cmd.OutOrStdout())
	det := cfg.Detector()

	failed := false
	for _, path := range args {
		if !checkScene(out, det, path) {
			failed = true
		}
	}
	if failed {
		return errCheckFailed
	}
	return nil
}

// checkScene reports on one scene and returns whether it passed.
func checkScene(out *termenv.Output, det *collide.Detector, path string) bool {
	ok := out.String("OK").Foreground(out.Color("2")).Bold()
	fail := out.String("FAIL").Foreground(out.Color("1")).Bold()

	doc, err := scene.Load(path)
	if err != nil {
		fmt.Fprintf(out, "%s %s: %v\n", fail, path, err)
		return false
	}
	obstacles, err := doc.Resolve()
	if err != nil {
		fmt.Fprintf(out, "%s %s: %v\n", fail, path, err)
		return false
	}

	collisions := det.Collisions(obstacles)
	if len(collisions) == 0 {
		fmt.Fprintf(out, "%s %s: %d obstacles, no collisions\n", ok, path, len(obstacles))
		return true
	}
	fmt.Fprintf(out, "%s %s: %d collision(s)\n", fail, path, len(collisions))
	for _, c := range collisions {
		reportPair(out, obstacles[c.A], obstacles[c.B])
	}
	return false
}

func reportPair(w io.Writer, a, b collide.Obstacle) {
	fmt.Fprintf(w, "  %s %s at (%g, %g) <-> %s %s at (%g, %g)\n",
		a.Kind, a.ID, a.X, a.Y, b.Kind, b.ID, b.X, b.Y)
}
