package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/govis/internal/loader"
	"github.com/philipparndt/govis/pkg/analysis"
)

var infoPoints bool

var infoCmd = &cobra.Command{
	Use:   "info <file...>",
	Short: "Display information about the structures created from files",
	Long:  "Load every file the way the viewer does and print identity, extents and statistics of the resulting structures.",
	Args:  cobra.MinimumNArgs(1),
	Run:   runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoPoints, "points", false, "Load meshes as point clouds of their vertices")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	_, items := loadScene(context.Background(), args, infoPoints)

	for i, item := range items {
		if i > 0 {
			fmt.Println()
		}
		printItem(item)
	}
}

func printItem(item *loader.Item) {
	s := item.Structure()
	box := s.WorldBox()

	fmt.Printf("%s %q\n", s.TypeName(), s.Name())
	fmt.Println("====================")
	fmt.Printf("File: %s\n", item.Path)
	fmt.Printf("Property prefix: %s\n\n", s.UniquePrefix())

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(box.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(box.Max))
	fmt.Printf("  Center: %s\n", analysis.FormatVector(box.Center()))
	fmt.Printf("  Length scale: %.6f units\n\n", s.WorldLengthScale())

	switch {
	case item.Mesh != nil:
		stats := item.Mesh.Stats()
		fmt.Println("Mesh Statistics:")
		fmt.Printf("  Triangles: %d\n", stats.TriangleCount)
		fmt.Printf("  Vertices: %d\n", stats.VertexCount)
		fmt.Printf("  Surface Area: %.6f square units\n", stats.SurfaceArea)
		fmt.Printf("  Edge Lengths: %.6f / %.6f / %.6f (min/avg/max)\n",
			stats.MinEdgeLength, stats.AvgEdgeLength, stats.MaxEdgeLength)
	case item.Cloud != nil:
		stats := item.Cloud.Stats()
		fmt.Println("Point Statistics:")
		fmt.Printf("  Points: %d\n", stats.PointCount)
		fmt.Printf("  Centroid: %s\n", analysis.FormatVector(stats.Centroid))
		fmt.Printf("  Point radius: %.6f units\n", item.Cloud.WorldRadius())
		for _, q := range item.Cloud.Quantities() {
			fmt.Printf("  Quantity %q: %d values in [%.6f, %.6f]\n", q.Name, len(q.Values), q.Min, q.Max)
		}
	}
}
