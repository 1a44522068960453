package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test export defaults
	if !cfg.Export.LogEnabled {
		t.Error("expected log_enabled to be true by default")
	}
	if !cfg.Export.PrettyPrint {
		t.Error("expected pretty_print to be true by default")
	}
	if cfg.Export.ExportWholeScene {
		t.Error("expected export_whole_scene to be false by default")
	}
	if cfg.Export.EnablePlatformManifest {
		t.Error("expected enable_platform_manifest to be false by default")
	}
	if cfg.Export.ExportFilename != "GameMap" {
		t.Errorf("expected filename GameMap, got %s", cfg.Export.ExportFilename)
	}
	if cfg.Export.ManifestPlatform != "Windows" {
		t.Errorf("expected platform Windows, got %s", cfg.Export.ManifestPlatform)
	}
	if cfg.Export.IDScheme != IDSchemeHandle {
		t.Errorf("expected id scheme %q, got %q", IDSchemeHandle, cfg.Export.IDScheme)
	}

	// Test watch defaults
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()

	yamlContent := `
export:
  log_enabled: false
  pretty_print: false
  export_whole_scene: true
  export_directory: "/tmp/maps"
  export_filename: "prontera"
  enable_platform_manifest: true
  manifest_platform: "DesktopGL"
  legacy_zero_scale: true
  id_scheme: "uuid"

source:
  data_dirs: ["data", "custom"]
  grf_paths: ["data.grf"]

watch:
  debounce: 1s

logging:
  level: "debug"
  log_file: "export.log"
`

	tomlContent := `
[export]
log_enabled = false
pretty_print = false
export_whole_scene = true
export_directory = "/tmp/maps"
export_filename = "prontera"
enable_platform_manifest = true
manifest_platform = "DesktopGL"
legacy_zero_scale = true
id_scheme = "uuid"

[source]
data_dirs = ["data", "custom"]
grf_paths = ["data.grf"]

[watch]
debounce = "1s"

[logging]
level = "debug"
log_file = "export.log"
`

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "config.yaml", yamlContent},
		{"toml", "config.toml", tomlContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, tt.file)
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, configPath); err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if cfg.Export.LogEnabled || cfg.Export.PrettyPrint {
				t.Error("expected log_enabled and pretty_print to be false")
			}
			if !cfg.Export.ExportWholeScene || !cfg.Export.EnablePlatformManifest || !cfg.Export.LegacyZeroScale {
				t.Error("expected whole scene, manifest and legacy scale to be enabled")
			}
			if cfg.Export.ExportDirectory != "/tmp/maps" {
				t.Errorf("expected directory /tmp/maps, got %s", cfg.Export.ExportDirectory)
			}
			if cfg.Export.ExportFilename != "prontera" {
				t.Errorf("expected filename prontera, got %s", cfg.Export.ExportFilename)
			}
			if cfg.Export.ManifestPlatform != "DesktopGL" {
				t.Errorf("expected platform DesktopGL, got %s", cfg.Export.ManifestPlatform)
			}
			if cfg.Export.IDScheme != IDSchemeUUID {
				t.Errorf("expected id scheme uuid, got %s", cfg.Export.IDScheme)
			}
			// untouched keys keep their defaults
			if !cfg.Export.ExportTextures {
				t.Error("expected export_textures to keep its default")
			}
			if !reflect.DeepEqual(cfg.Source.DataDirs, []string{"data", "custom"}) {
				t.Errorf("unexpected data dirs %v", cfg.Source.DataDirs)
			}
			if !reflect.DeepEqual(cfg.Source.GRFPaths, []string{"data.grf"}) {
				t.Errorf("unexpected grf paths %v", cfg.Source.GRFPaths)
			}
			if cfg.Watch.Debounce != time.Second {
				t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
			}
			if cfg.Logging.Level != "debug" {
				t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
			}
			if cfg.Logging.LogFile != "export.log" {
				t.Errorf("expected log file 'export.log', got %s", cfg.Logging.LogFile)
			}
		})
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		file    string
		content string
	}{
		{"invalid.yaml", "export:\n  pretty_print: not a bool\n  invalid syntax here\n"},
		{"invalid.toml", "[export\npretty_print = \n"},
	}

	for _, tt := range tests {
		configPath := filepath.Join(tmpDir, tt.file)
		if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg := Default()
		if err := loadFromFile(cfg, configPath); err == nil {
			t.Errorf("expected error loading %s, got nil", tt.file)
		}
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCENEEXPORT_PRETTY_PRINT", "false")
	t.Setenv("SCENEEXPORT_EXPORT_FILENAME", "geffen")
	t.Setenv("SCENEEXPORT_GRF_PATHS", "a.grf,b.grf")
	t.Setenv("SCENEEXPORT_WATCH_DEBOUNCE", "2s")
	t.Setenv("SCENEEXPORT_LOG_LEVEL", "warn")

	cfg := Default()
	if err := loadFromEnv(cfg); err != nil {
		t.Fatalf("loadFromEnv: %v", err)
	}

	if cfg.Export.PrettyPrint {
		t.Error("expected pretty_print false from env")
	}
	if cfg.Export.ExportFilename != "geffen" {
		t.Errorf("expected filename geffen, got %s", cfg.Export.ExportFilename)
	}
	if !reflect.DeepEqual(cfg.Source.GRFPaths, []string{"a.grf", "b.grf"}) {
		t.Errorf("unexpected grf paths %v", cfg.Source.GRFPaths)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %s", cfg.Logging.Level)
	}
	// unset variables leave values alone
	if cfg.Export.ExportDirectory != "export" {
		t.Errorf("expected default directory, got %s", cfg.Export.ExportDirectory)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("SCENEEXPORT_PRETTY_PRINT", "sometimes")

	if err := loadFromEnv(Default()); err == nil {
		t.Error("expected error for invalid bool, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"uuid ids", func(c *Config) { c.Export.IDScheme = IDSchemeUUID }, false},
		{"unknown ids", func(c *Config) { c.Export.IDScheme = "random" }, true},
		{"empty directory", func(c *Config) { c.Export.ExportDirectory = "" }, true},
		{"empty filename", func(c *Config) { c.Export.ExportFilename = "" }, true},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Keep the user's real config out of the search
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// A TOML file is found
	if err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[export]\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path = findConfigFile(); filepath.Base(path) != "config.toml" {
		t.Errorf("expected config.toml, got %q", path)
	}

	// YAML wins over TOML in the same directory
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("export:\n  pretty_print: false\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path = findConfigFile(); filepath.Base(path) != "config.yaml" {
		t.Errorf("expected config.yaml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "output flags",
			setup: func() {
				*flagOut = "/srv/maps"
				*flagName = "payon"
			},
			verify: func(cfg *Config) {
				if cfg.Export.ExportDirectory != "/srv/maps" {
					t.Errorf("expected directory /srv/maps, got %s", cfg.Export.ExportDirectory)
				}
				if cfg.Export.ExportFilename != "payon" {
					t.Errorf("expected filename payon, got %s", cfg.Export.ExportFilename)
				}
			},
			teardown: func() {
				*flagOut = ""
				*flagName = ""
			},
		},
		{
			name:  "compact flag",
			setup: func() { *flagCompact = true },
			verify: func(cfg *Config) {
				if cfg.Export.PrettyPrint {
					t.Error("expected pretty_print to be false with compact flag")
				}
			},
			teardown: func() { *flagCompact = false },
		},
		{
			name: "manifest flags",
			setup: func() {
				*flagManifest = true
				*flagPlatform = "Android"
			},
			verify: func(cfg *Config) {
				if !cfg.Export.EnablePlatformManifest {
					t.Error("expected manifest to be enabled")
				}
				if cfg.Export.ManifestPlatform != "Android" {
					t.Errorf("expected platform Android, got %s", cfg.Export.ManifestPlatform)
				}
			},
			teardown: func() {
				*flagManifest = false
				*flagPlatform = ""
			},
		},
		{
			name: "source flags",
			setup: func() {
				*flagData = "data, extra ,"
				*flagGRF = "data.grf,rdata.grf"
			},
			verify: func(cfg *Config) {
				if !reflect.DeepEqual(cfg.Source.DataDirs, []string{"data", "extra"}) {
					t.Errorf("unexpected data dirs %v", cfg.Source.DataDirs)
				}
				if !reflect.DeepEqual(cfg.Source.GRFPaths, []string{"data.grf", "rdata.grf"}) {
					t.Errorf("unexpected grf paths %v", cfg.Source.GRFPaths)
				}
			},
			teardown: func() {
				*flagData = ""
				*flagGRF = ""
			},
		},
		{
			name: "mode flags",
			setup: func() {
				*flagWholeScene = true
				*flagWatch = true
				*flagQuiet = true
				*flagIDs = IDSchemeUUID
			},
			verify: func(cfg *Config) {
				if !cfg.Export.ExportWholeScene || !cfg.Watch.Enabled {
					t.Error("expected whole scene and watch to be enabled")
				}
				if cfg.Export.LogEnabled {
					t.Error("expected node logging to be disabled with quiet flag")
				}
				if cfg.Export.IDScheme != IDSchemeUUID {
					t.Errorf("expected uuid ids, got %s", cfg.Export.IDScheme)
				}
			},
			teardown: func() {
				*flagWholeScene = false
				*flagWatch = false
				*flagQuiet = false
				*flagIDs = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
export:
  export_directory: "from-file"
  export_filename: "from-file"
  manifest_platform: "from-file"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("SCENEEXPORT_EXPORT_FILENAME", "from-env")
	t.Setenv("SCENEEXPORT_EXPORT_DIRECTORY", "from-env")

	// Set flag to override config file and environment
	*flagConfig = configPath
	*flagOut = "from-flag"
	defer func() {
		*flagConfig = ""
		*flagOut = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Export.ExportDirectory != "from-flag" {
		t.Errorf("expected directory from flag, got %s", cfg.Export.ExportDirectory)
	}
	if cfg.Export.ExportFilename != "from-env" {
		t.Errorf("expected filename from env, got %s", cfg.Export.ExportFilename)
	}
	if cfg.Export.ManifestPlatform != "from-file" {
		t.Errorf("expected platform from file, got %s", cfg.Export.ManifestPlatform)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Export.ExportFilename = "alberta"
	cfg.Watch.Debounce = time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Export != cfg.Export {
		t.Errorf("saved export config differs:\n got %+v\nwant %+v", loaded.Export, cfg.Export)
	}
	if loaded.Watch != cfg.Watch {
		t.Errorf("expected watch %+v, got %+v", cfg.Watch, loaded.Watch)
	}
	if !reflect.DeepEqual(loaded.Source.DataDirs, cfg.Source.DataDirs) {
		t.Errorf("expected data dirs %v, got %v", cfg.Source.DataDirs, loaded.Source.DataDirs)
	}
}
