package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/collide/render"
	"github.com/gogpu/collide/scene"
)

var (
	renderOutput     string
	renderLabels     bool
	renderFit        bool
	renderMargin     float64
	renderCollisions bool
)

var renderCmd = &cobra.Command{
	Use:   "render <scene>",
	Short: "Render a scene to PNG",
	Long:  `Draws the scene with its collision boxes. Use -o - to write the PNG to stdout.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "scene.png", "output file, - for stdout")
	renderCmd.Flags().BoolVar(&renderLabels, "labels", false, "caption every obstacle")
	renderCmd.Flags().BoolVar(&renderFit, "fit", false, "crop to the obstacles instead of the whole canvas")
	renderCmd.Flags().Float64Var(&renderMargin, "margin", 20, "border around the obstacles with --fit")
	renderCmd.Flags().BoolVar(&renderCollisions, "collisions", true, "outline obstacles that are too close")
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, err := scene.Load(args[0])
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if renderOutput != "-" {
		f, err := os.Create(renderOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	err = render.RenderPNG(doc, w, render.ExportOptions{
		Detector:   cfg.Detector(),
		Labels:     renderLabels,
		Collisions: renderCollisions,
		Fit:        renderFit,
		Margin:     renderMargin,
	})
	if err != nil {
		return err
	}
	if renderOutput != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d obstacles)\n", renderOutput, len(doc.Obstacles))
	}
	return nil
}
