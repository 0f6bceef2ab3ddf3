package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/govis/internal/app"
)

var (
	viewPoints     bool
	viewProperties string
	viewNoWatch    bool
)

var viewCmd = &cobra.Command{
	Use:   "view <file...>",
	Short: "Open the viewer",
	Long: `Open the interactive viewer with one structure per file.
STL files become surface meshes, XYZ files point clouds. OpenSCAD files are
rendered to STL first and reloaded whenever one of their sources changes.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runView,
}

func init() {
	viewCmd.Flags().BoolVar(&viewPoints, "points", false, "Show meshes as point clouds of their vertices")
	viewCmd.Flags().StringVar(&viewProperties, "properties", "", "Property file to restore and save structure state")
	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false, "Do not reload files when they change")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) {
	s := settings
	if viewProperties != "" {
		s.Properties.File = viewProperties
	}
	if viewNoWatch {
		s.Properties.Watch = false
	}

	err := app.Run(app.Options{
		Files:    args,
		AsPoints: viewPoints,
		Settings: s,
		Log:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
