package main

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/govis/internal/loader"
	"github.com/philipparndt/govis/internal/logging"
	"github.com/philipparndt/govis/internal/structure"
	"github.com/philipparndt/govis/internal/view"
)

// loadScene loads every file into a fresh context with the camera framing
// the result. Files that fail are reported and skipped.
func loadScene(ctx context.Context, files []string, asPoints bool) (*structure.Context, []*loader.Item) {
	camera := view.NewCamera(float32(settings.Camera.FovY), float32(settings.Camera.Near), float32(settings.Camera.Far))
	camera.SetAspect(float32(settings.Window.Width), float32(settings.Window.Height))

	scene := structure.NewContext(camera, logger)
	l := loader.New(scene, asPoints, logging.Component(logger, "loader"))

	var items []*loader.Item
	for _, file := range files {
		item, err := l.Load(ctx, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", file, err)
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no file could be loaded")
		os.Exit(1)
	}

	box, _ := scene.Registry.Extents()
	camera.FitBox(box)
	return scene, items
}
