// Package worldmap loads Ragnarok Online maps (RSW, GAT and GND files) and
// turns them into scene graphs ready for export.
package worldmap

import (
	"fmt"
	"path"
	"strings"

	"github.com/Faultbox/sceneexport/pkg/formats"
)

// Loader reads files by name relative to the data root.
// *assets.Manager implements it.
type Loader interface {
	Load(name string) ([]byte, error)
}

// Map is a parsed RO map.
type Map struct {
	Name     string
	World    *formats.RSW
	Altitude *formats.GAT
	Ground   *formats.GNDHeader

	// Files lists the names the map was read from, RSW first.
	Files []string
}

// Load reads and parses <name>.rsw and the GAT and GND files it points
// to. Maps that leave those names empty fall back to <name>.gat and
// <name>.gnd.
func Load(l Loader, name string) (*Map, error) {
	name = strings.TrimSuffix(strings.ToLower(name), ".rsw")
	m := &Map{Name: path.Base(strings.ReplaceAll(name, "\\", "/"))}

	rswName := name + ".rsw"
	data, err := l.Load(rswName)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", rswName, err)
	}
	if m.World, err = formats.ParseRSW(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rswName, err)
	}
	m.Files = append(m.Files, rswName)

	gatName := orDefault(m.World.GatFile, name+".gat")
	if data, err = l.Load(gatName); err != nil {
		return nil, fmt.Errorf("loading %s: %w", gatName, err)
	}
	if m.Altitude, err = formats.ParseGAT(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", gatName, err)
	}
	m.Files = append(m.Files, gatName)

	gndName := orDefault(m.World.GndFile, name+".gnd")
	if data, err = l.Load(gndName); err != nil {
		return nil, fmt.Errorf("loading %s: %w", gndName, err)
	}
	if m.Ground, err = formats.ParseGNDHeader(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", gndName, err)
	}
	m.Files = append(m.Files, gndName)

	return m, nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
