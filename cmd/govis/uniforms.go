package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/govis/internal/dryrun"
)

var uniformOpts dryrun.Options

var uniformsCmd = &cobra.Command{
	Use:   "uniforms <file...>",
	Short: "Print the uniforms each structure uploads for one frame",
	Long: `Load the files and run the per-frame uniform upload of every structure
against an in-memory shader program. The program declares every standard
uniform and texture unless --uniforms or --textures narrow it down.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runUniforms,
}

func init() {
	f := uniformsCmd.Flags()
	f.StringSliceVar(&uniformOpts.Uniforms, "uniforms", nil, "Uniforms the program declares (default: all standard uniforms)")
	f.StringSliceVar(&uniformOpts.Textures, "textures", nil, "Textures the program declares (default: all standard textures)")
	f.StringVar(&uniformOpts.Transparency, "transparency", "", "Transparency mode (None, Simple, Pretty)")
	f.StringSliceVar(&uniformOpts.SlicePlanes, "slice-plane", nil, "Add a slice plane with this name")
	f.StringSliceVar(&uniformOpts.Ignore, "ignore", nil, "Slice plane names every structure ignores")
	rootCmd.AddCommand(uniformsCmd)
}

func runUniforms(cmd *cobra.Command, args []string) {
	opts := uniformOpts
	if !cmd.Flags().Changed("uniforms") {
		opts.Uniforms = nil
	}
	if !cmd.Flags().Changed("textures") {
		opts.Textures = nil
	}
	opts.Width = settings.Window.Width
	opts.Height = settings.Window.Height

	scene, items := loadScene(context.Background(), args, false)
	if err := dryrun.Prepare(scene, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dryrun.Run(os.Stdout, items, opts.Capabilities())
}
