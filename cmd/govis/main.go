package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/philipparndt/govis/internal/config"
	"github.com/philipparndt/govis/internal/logging"
	"github.com/philipparndt/govis/version"
)

var (
	configDir string
	logLevel  string

	settings config.Settings
	logger   zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "govis",
	Short: "3D viewer for meshes and point clouds",
	Long: `govis displays STL, OpenSCAD and XYZ files as structures in a shared scene.
Structures keep their appearance, transform and slice-plane settings in a
property file, so a view can be restored later.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory containing "+config.FileName)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.Load(configDir); err != nil {
		return err
	}
	if logLevel != "" {
		config.Set("logLevel", logLevel)
	}

	var err error
	settings, err = config.Current()
	if err != nil {
		return err
	}
	logger = logging.New(os.Stderr, settings.LogLevel)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
