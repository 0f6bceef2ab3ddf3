package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/philipparndt/govis/internal/logging"
	"github.com/philipparndt/govis/pkg/watcher"
)

const watchDebounce = 500 * time.Millisecond

// setupFileWatcher watches the property file and the sources of every
// loaded item. Changes are only flagged here and applied by applyReloads.
func (app *App) setupFileWatcher(ctx context.Context) error {
	fw, err := watcher.NewFileWatcher(watchDebounce, logging.Component(app.opts.Log, "watcher"))
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if app.watch.propertiesFile != "" {
		err := fw.Watch([]string{app.watch.propertiesFile}, func(string) {
			app.watch.reloadProperties.Store(true)
		})
		if err != nil {
			fw.Close()
			return fmt.Errorf("failed to watch properties: %w", err)
		}
	}

	for _, d := range app.items {
		if err := fw.Watch(d.item.Sources, app.watch.markChanged); err != nil {
			fw.Close()
			return fmt.Errorf("failed to watch files: %w", err)
		}
	}

	fw.Start(ctx)
	app.watch.watcher = fw
	return nil
}

// applyReloads re-reads the property file and reloads items whose sources
// changed. It must run on the main thread, which owns the GPU meshes.
func (app *App) applyReloads(ctx context.Context) {
	if app.watch.reloadProperties.Swap(false) {
		if err := app.ctx.Store.Load(app.watch.propertiesFile); err != nil {
			app.log.Warn().Err(err).Msg("failed to reload properties")
		} else {
			app.log.Info().Str("file", app.watch.propertiesFile).Msg("properties reloaded")
		}
	}

	changed := app.watch.takeChanged()
	if len(changed) == 0 {
		return
	}

	for i, d := range app.items {
		if !sourceChanged(d.item.Sources, changed) {
			continue
		}

		item, err := app.loader.Reload(ctx, d.item)
		if err != nil {
			app.log.Error().Err(err).Str("file", d.item.Path).Msg("failed to reload")
			continue
		}

		next := &drawable{item: item}
		app.newDrawable(next)
		app.unloadDrawable(d)
		app.items[i] = next
	}
}

func sourceChanged(sources []string, changed map[string]bool) bool {
	for _, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			continue
		}
		if changed[abs] {
			return true
		}
	}
	return false
}
