package main

import (
	"context"
	"errors"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneexport/internal/assets"
	"github.com/Faultbox/sceneexport/internal/config"
	"github.com/Faultbox/sceneexport/internal/export"
	"github.com/Faultbox/sceneexport/internal/manifest"
	"github.com/Faultbox/sceneexport/internal/watch"
	"github.com/Faultbox/sceneexport/internal/worldmap"
	"github.com/Faultbox/sceneexport/pkg/formats"
)

// app wires configuration, data sources and the exporter together.
type app struct {
	cfg    *config.Config
	fs     afero.Fs
	assets *assets.Manager
	log    *zap.Logger
}

// newApp opens the configured data sources. Missing data directories are
// skipped with a warning; archives must open.
func newApp(cfg *config.Config, fs afero.Fs, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, fs: fs, assets: assets.NewManager(), log: log}

	for _, dir := range cfg.Source.DataDirs {
		if err := a.assets.AddDir(fs, dir); err != nil {
			log.Warn("Skipping data directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	for _, path := range cfg.Source.GRFPaths {
		if err := a.assets.AddArchive(path); err != nil {
			a.assets.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *app) Close() error {
	return a.assets.Close()
}

func exportOptions(c config.ExportConfig) export.Options {
	return export.Options{
		LogEnabled:       c.LogEnabled,
		ExportMeshData:   c.ExportMeshData,
		PrettyPrint:      c.PrettyPrint,
		ExportTextures:   c.ExportTextures,
		WholeScene:       c.ExportWholeScene,
		Directory:        c.ExportDirectory,
		Filename:         c.ExportFilename,
		PlatformManifest: c.EnablePlatformManifest,
		ManifestPlatform: c.ManifestPlatform,
		LegacyZeroScale:  c.LegacyZeroScale,
	}
}

func idProvider(scheme, mapName string) export.IDProvider {
	if scheme == config.IDSchemeUUID {
		return export.NewUUIDs(mapName)
	}
	return export.HandleIDs{}
}

// exportMap loads one map, builds its scene and exports it from the map
// root.
func (a *app) exportMap(ctx context.Context, name string) (*worldmap.Map, *export.Result, error) {
	m, err := worldmap.Load(a.assets, name)
	if err != nil {
		return nil, nil, err
	}
	a.logLoaded(m)
	g, root := worldmap.Build(m)

	e, err := export.New(g, exportOptions(a.cfg.Export),
		export.WithFs(a.fs),
		export.WithIDs(idProvider(a.cfg.Export.IDScheme, m.Name)),
		export.WithLogger(a.log),
		export.WithManifest(manifest.Emitter{}),
	)
	if err != nil {
		return nil, nil, err
	}

	res, err := e.Export(ctx, root.Handle())
	if err != nil {
		return nil, nil, err
	}
	return m, res, nil
}

func (a *app) logLoaded(m *worldmap.Map) {
	objects := m.World.CountByType()
	cells := m.Altitude.CountByType()
	hits, misses := a.assets.CacheStats()
	a.log.Debug("Loaded map",
		zap.String("map", m.Name),
		zap.Stringer("version", m.World.Version),
		zap.Int("models", objects[formats.RSWObjectModel]),
		zap.Int("lights", objects[formats.RSWObjectLight]),
		zap.Int("walkable", cells[formats.GATWalkable]+cells[formats.GATWalkableWater]),
		zap.Int("textures", len(m.Ground.Textures)),
		zap.Int("cacheHits", hits),
		zap.Int("cacheMisses", misses))
}

// watch re-exports the map called name, last loaded as m, whenever one of
// its files changes on disk, until ctx is done. Export failures are logged
// and watching continues.
func (a *app) watch(ctx context.Context, name string, m *worldmap.Map) error {
	var paths []string
	for _, name := range m.Files {
		if p, ok := a.assets.Locate(name); ok {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return errors.New("no map file is read from a data directory, nothing to watch")
	}

	w, err := watch.New(paths, a.cfg.Watch.Debounce, a.log)
	if err != nil {
		return err
	}
	defer w.Close()

	a.log.Info("Watching for changes", zap.Strings("files", paths))
	return w.Run(ctx, func(changed []string) {
		a.assets.Invalidate(m.Files...)
		_, res, err := a.exportMap(ctx, name)
		if err != nil {
			a.log.Error("Re-export failed", zap.Strings("changed", changed), zap.Error(err))
			return
		}
		a.log.Info("Re-exported", zap.Strings("changed", changed), zap.String("path", res.Path))
	})
}
