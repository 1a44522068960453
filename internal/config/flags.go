package config

import (
	"flag"
	"strings"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagOut        = flag.String("out", "", "Export directory")
	flagName       = flag.String("name", "", "Document file name without extension")
	flagPretty     = flag.Bool("pretty", false, "Indent the document")
	flagCompact    = flag.Bool("compact", false, "Write the document on a single line")
	flagWholeScene = flag.Bool("whole-scene", false, "Export every loaded node instead of the map subtree")
	flagManifest   = flag.Bool("manifest", false, "Update Content.mgcb next to the document")
	flagPlatform   = flag.String("platform", "", "Manifest target platform")
	flagIDs        = flag.String("ids", "", "Node id scheme: handle or uuid")
	flagData       = flag.String("data", "", "Comma-separated data directories")
	flagGRF        = flag.String("grf", "", "Comma-separated GRF archives")
	flagWatch      = flag.Bool("watch", false, "Re-export when input files change")
	flagQuiet      = flag.Bool("quiet", false, "Do not log every exported node")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Export.ExportDirectory = *flagOut
	}
	if *flagName != "" {
		cfg.Export.ExportFilename = *flagName
	}
	if *flagPretty {
		cfg.Export.PrettyPrint = true
	}
	if *flagCompact {
		cfg.Export.PrettyPrint = false
	}
	if *flagWholeScene {
		cfg.Export.ExportWholeScene = true
	}
	if *flagManifest {
		cfg.Export.EnablePlatformManifest = true
	}
	if *flagPlatform != "" {
		cfg.Export.ManifestPlatform = *flagPlatform
	}
	if *flagIDs != "" {
		cfg.Export.IDScheme = *flagIDs
	}
	if *flagData != "" {
		cfg.Source.DataDirs = splitList(*flagData)
	}
	if *flagGRF != "" {
		cfg.Source.GRFPaths = splitList(*flagGRF)
	}
	if *flagWatch {
		cfg.Watch.Enabled = true
	}
	if *flagQuiet {
		cfg.Export.LogEnabled = false
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
