// Command collide edits, checks and renders obstacle scenes with
// collision boxes.
//
// Usage:
//
//	collide view [scene.yaml]            interactive editor
//	collide render scene.yaml -o out.png headless PNG export
//	collide expand scene.yaml            print collision box outlines
//	collide check scene.yaml...          validate scenes and report overlaps
//	collide methods                      list expansion methods
//	collide version                      print version information
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/internal/config"
)

var (
	// Global flags
	configPath string
	logLevel   string

	// cfg is loaded before any subcommand runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:           "collide",
	Short:         "Obstacle collision box editor",
	Long:          `Draw obstacles on a canvas, grow them into collision boxes and check that they keep their distance.`,
	Version:       version(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		level := cfg.Log.Level
		if cmd.Flags().Changed("log-level") || level == "" {
			level = logLevel
		}
		return setupLogging(level)
	},
}

func setupLogging(level string) error {
	var l slog.Level
	switch strings.ToLower(level) {
	case "off", "none":
		collide.SetLogger(nil)
		return nil
	case "debug":
		l = slog.LevelDebug
	case "info", "":
		l = slog.LevelInfo
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	collide.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "devel"
	}
	return info.Main.Version
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error, off")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(methodsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "collide:", err)
		os.Exit(1)
	}
}
