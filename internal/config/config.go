// Package config handles exporter configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// ID schemes for document node ids.
const (
	IDSchemeHandle = "handle"
	IDSchemeUUID   = "uuid"
)

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export" toml:"export"`
	Source  SourceConfig  `yaml:"source" toml:"source"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ExportConfig holds document export settings.
type ExportConfig struct {
	LogEnabled             bool   `yaml:"log_enabled" toml:"log_enabled" env:"SCENEEXPORT_LOG_ENABLED"`
	ExportMeshData         bool   `yaml:"export_mesh_data" toml:"export_mesh_data" env:"SCENEEXPORT_EXPORT_MESH_DATA"` // reserved
	PrettyPrint            bool   `yaml:"pretty_print" toml:"pretty_print" env:"SCENEEXPORT_PRETTY_PRINT"`
	ExportTextures         bool   `yaml:"export_textures" toml:"export_textures" env:"SCENEEXPORT_EXPORT_TEXTURES"`
	ExportWholeScene       bool   `yaml:"export_whole_scene" toml:"export_whole_scene" env:"SCENEEXPORT_EXPORT_WHOLE_SCENE"`
	ExportDirectory        string `yaml:"export_directory" toml:"export_directory" env:"SCENEEXPORT_EXPORT_DIRECTORY"`
	ExportFilename         string `yaml:"export_filename" toml:"export_filename" env:"SCENEEXPORT_EXPORT_FILENAME"`
	EnablePlatformManifest bool   `yaml:"enable_platform_manifest" toml:"enable_platform_manifest" env:"SCENEEXPORT_ENABLE_PLATFORM_MANIFEST"`
	ManifestPlatform       string `yaml:"manifest_platform" toml:"manifest_platform" env:"SCENEEXPORT_MANIFEST_PLATFORM"`
	LegacyZeroScale        bool   `yaml:"legacy_zero_scale" toml:"legacy_zero_scale" env:"SCENEEXPORT_LEGACY_ZERO_SCALE"`
	IDScheme               string `yaml:"id_scheme" toml:"id_scheme" env:"SCENEEXPORT_ID_SCHEME"`
}

// SourceConfig holds where map files are read from. Later entries win.
type SourceConfig struct {
	DataDirs []string `yaml:"data_dirs" toml:"data_dirs" env:"SCENEEXPORT_DATA_DIRS" envSeparator:","`
	GRFPaths []string `yaml:"grf_paths" toml:"grf_paths" env:"SCENEEXPORT_GRF_PATHS" envSeparator:","`
}

// WatchConfig holds re-export on change settings.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled" toml:"enabled" env:"SCENEEXPORT_WATCH"`
	Debounce time.Duration `yaml:"debounce" toml:"debounce" env:"SCENEEXPORT_WATCH_DEBOUNCE"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level" env:"SCENEEXPORT_LOG_LEVEL"`
	LogFile string `yaml:"log_file" toml:"log_file" env:"SCENEEXPORT_LOG_FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			LogEnabled:       true,
			ExportMeshData:   true,
			PrettyPrint:      true,
			ExportTextures:   true,
			ExportDirectory:  "export",
			ExportFilename:   "GameMap",
			ManifestPlatform: "Windows",
			IDScheme:         IDSchemeHandle,
		},
		Source: SourceConfig{
			DataDirs: []string{"data"},
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that cannot be fixed up later.
func (c *Config) Validate() error {
	if c.Export.ExportDirectory == "" {
		return fmt.Errorf("export.export_directory must not be empty")
	}
	if c.Export.ExportFilename == "" {
		return fmt.Errorf("export.export_filename must not be empty")
	}
	switch c.Export.IDScheme {
	case IDSchemeHandle, IDSchemeUUID:
	default:
		return fmt.Errorf("export.id_scheme: unknown scheme %q", c.Export.IDScheme)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}
