package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneexport/internal/config"
	"github.com/Faultbox/sceneexport/internal/export"
	"github.com/Faultbox/sceneexport/internal/manifest"
	"github.com/Faultbox/sceneexport/internal/worldmap/worldmaptest"
)

func newTestApp(t *testing.T, configure func(*config.Config)) (*app, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, data := range worldmaptest.Files("prontera") {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/data", name), data, 0o644))
	}

	cfg := config.Default()
	cfg.Source.DataDirs = []string{"/data", "/missing"}
	cfg.Export.ExportDirectory = "/out"
	cfg.Export.ExportFilename = "prontera"
	if configure != nil {
		configure(cfg)
	}

	a, err := newApp(cfg, fs, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, fs
}

func readDocument(t *testing.T, fs afero.Fs, path string) []map[string]any {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	var doc []map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestExportMap(t *testing.T) {
	a, fs := newTestApp(t, nil)

	m, res, err := a.exportMap(context.Background(), "Prontera.rsw")
	require.NoError(t, err)
	assert.Equal(t, "prontera", m.Name)
	assert.Equal(t, filepath.Join("/out", "prontera.json"), res.Path)
	assert.Empty(t, res.ManifestPath)
	assert.Equal(t, map[string]string{"grass.bmp": "texture/grass.bmp"}, res.Textures)

	doc := readDocument(t, fs, res.Path)
	require.NotEmpty(t, doc)
	assert.Equal(t, "prontera", doc[0]["name"])
	assert.Equal(t, "1", doc[0]["id"])

	nav := doc[len(doc)-1]
	assert.Equal(t, export.NavMeshID, nav["id"])
	mesh := nav["navMesh"].(map[string]any)
	assert.Len(t, mesh["vertices"], 4)
	assert.Len(t, mesh["indices"], 6)
}

func TestExportMapManifest(t *testing.T) {
	a, fs := newTestApp(t, func(cfg *config.Config) {
		cfg.Export.EnablePlatformManifest = true
		cfg.Export.ManifestPlatform = "DesktopGL"
	})

	_, res, err := a.exportMap(context.Background(), "prontera")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", manifest.FileName), res.ManifestPath)

	data, err := afero.ReadFile(fs, res.ManifestPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/platform:DesktopGL")
	assert.Contains(t, string(data), "#begin prontera.json")
}

func TestExportMapUUIDs(t *testing.T) {
	a, fs := newTestApp(t, func(cfg *config.Config) {
		cfg.Export.IDScheme = config.IDSchemeUUID
	})

	_, res, err := a.exportMap(context.Background(), "prontera")
	require.NoError(t, err)

	doc := readDocument(t, fs, res.Path)
	id, ok := doc[1]["id"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	parent := doc[1]["transform"].(map[string]any)["parentId"]
	assert.Equal(t, doc[0]["id"], parent)
}

func TestExportMapMissing(t *testing.T) {
	a, fs := newTestApp(t, nil)

	_, _, err := a.exportMap(context.Background(), "geffen")
	require.Error(t, err)

	exists, _ := afero.Exists(fs, "/out")
	assert.False(t, exists)
}

func TestNewAppBadArchive(t *testing.T) {
	cfg := config.Default()
	cfg.Source.GRFPaths = []string{filepath.Join(t.TempDir(), "missing.grf")}

	_, err := newApp(cfg, afero.NewMemMapFs(), zap.NewNop())
	assert.Error(t, err)
}

func TestIDProvider(t *testing.T) {
	assert.IsType(t, export.HandleIDs{}, idProvider(config.IDSchemeHandle, "prontera"))
	assert.IsType(t, export.UUIDs{}, idProvider(config.IDSchemeUUID, "prontera"))
}

func TestExportOptions(t *testing.T) {
	c := config.Default().Export
	c.ExportWholeScene = true
	c.LegacyZeroScale = true

	o := exportOptions(c)
	assert.Equal(t, export.ModeWholeScene, o.Mode())
	assert.True(t, o.LegacyZeroScale)
	assert.Equal(t, c.ExportDirectory, o.Directory)
	assert.Equal(t, c.ExportFilename, o.Filename)
}
