package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/editor"
	"github.com/gogpu/collide/internal/session"
	"github.com/gogpu/collide/viewer"
)

var (
	viewNoWatch bool
	viewLabels  bool
)

var viewCmd = &cobra.Command{
	Use:   "view [scene]",
	Short: "Open the interactive editor",
	Long: `Opens a window on the scene file. A missing file is created on the first save.

Keys:
  R T P H C   rectangle, triangle, pentagon, hexagon, custom polygon tool
  N           no tool
  Enter       finish the custom polygon     Backspace  remove its last point
  Esc         cancel                        Delete     delete the selection
  G           toggle snap to grid           M          next expansion method
  L           toggle labels                 arrows     pan (or middle drag)
  Ctrl+Z/Y    undo/redo                     Ctrl+S     save
  :           command line (x 40, expand 20 convex, dir north 15, hull on, save)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false, "do not reload the scene when it changes on disk")
	viewCmd.Flags().BoolVar(&viewLabels, "labels", false, "show obstacle captions")
}

func runView(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	ed := editor.New(cfg.EditorOptions()...)
	s, err := session.New(ed, path,
		session.WithWatch(cfg.Window.Watch && !viewNoWatch),
		session.WithLabels(cfg.Window.Labels || viewLabels),
	)
	if err != nil {
		return err
	}
	defer s.Close()

	collide.Logger().Info("viewer: starting", "scene", path)
	return viewer.Run(s, viewer.Options{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	})
}
