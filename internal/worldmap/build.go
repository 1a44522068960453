package worldmap

import (
	"path"
	"strings"

	"github.com/Faultbox/sceneexport/internal/scene"
	"github.com/Faultbox/sceneexport/pkg/formats"
	"github.com/Faultbox/sceneexport/pkg/math"
)

// CellSize is the world size of one GAT cell.
const CellSize = 5

// Group node names under the map root.
const (
	GroupModels  = "models"
	GroupLights  = "lights"
	GroupSounds  = "sounds"
	GroupEffects = "effects"
	GroupGround  = "ground"
)

// Node tags.
const (
	TagMap    = "map"
	TagModel  = "model"
	TagLight  = "light"
	TagSound  = "sound"
	TagEffect = "effect"
	TagGround = "ground"
)

// Build creates the scene graph of m and returns it with the map root.
//
// RO stores altitude with Y pointing down; the graph is Y up. Object
// positions are already relative to the map center. The walkable GAT cells
// become the navigation mesh, one quad per cell, each triangle tagged with
// the cell type.
func Build(m *Map) (*scene.Graph, *scene.Node) {
	g := scene.NewGraph()
	root := g.Add(nil, scene.Info{Name: m.Name, Tag: TagMap, Static: true, Active: true})

	group := func(name string) *scene.Node {
		return g.Add(root, scene.Info{Name: name, Static: true, Active: true})
	}
	models := group(GroupModels)
	lights := group(GroupLights)
	sounds := group(GroupSounds)
	effects := group(GroupEffects)
	ground := g.Add(root, scene.Info{Name: GroupGround, Tag: TagGround, Static: true, Active: true})

	addSun(g, lights, m.World.Sun)

	for _, obj := range m.World.Objects {
		switch obj.Type {
		case formats.RSWObjectModel:
			addModel(g, models, obj.Model)
		case formats.RSWObjectLight:
			addLight(g, lights, obj.Light)
		case formats.RSWObjectSound:
			n := g.Add(sounds, scene.Info{Name: orDefault(obj.Sound.Name, obj.Sound.File), Tag: TagSound, Static: true, Active: true})
			n.Transform.Position = worldPosition(obj.Sound.Position)
		case formats.RSWObjectEffect:
			n := g.Add(effects, scene.Info{Name: obj.Effect.Name, Tag: TagEffect, Static: true, Active: true})
			n.Transform.Position = worldPosition(obj.Effect.Position)
		}
	}

	if m.Ground != nil {
		ground.Textures = groundTextures(m.Ground.Textures)
	}

	if m.Altitude != nil {
		g.NavMesh = NavMesh(m.Altitude)
	}
	return g, root
}

func worldPosition(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[0], Y: up(p[1]), Z: p[2]}
}

// up converts an RO altitude to Y up without producing negative zero.
func up(h float32) float32 {
	if h == 0 {
		return 0
	}
	return -h
}

func addModel(g *scene.Graph, parent *scene.Node, m *formats.RSWModel) {
	name := m.Name
	if name == "" {
		name = strings.TrimSuffix(path.Base(strings.ReplaceAll(m.ModelName, "\\", "/")), path.Ext(m.ModelName))
	}
	n := g.Add(parent, scene.Info{Name: name, Tag: TagModel, Static: true, Active: true})
	n.Transform = scene.Transform{
		Position: worldPosition(m.Position),
		Rotation: math.QuatFromEulerDegrees(m.Rotation[0], m.Rotation[1], m.Rotation[2]),
		Scale:    math.Vec3{X: m.Scale[0], Y: m.Scale[1], Z: m.Scale[2]},
	}
}

func addLight(g *scene.Graph, parent *scene.Node, l *formats.RSWLightSource) {
	n := g.Add(parent, scene.Info{Name: l.Name, Tag: TagLight, Static: true, Active: true})
	n.Transform.Position = worldPosition(l.Position)
	n.Light = &scene.Light{
		Type:      scene.LightPoint,
		Enabled:   true,
		Range:     l.Range,
		Intensity: 1,
		Color:     math.ColorFromArray(l.Color),
		Shadows:   scene.ShadowsNone,
	}
}

// addSun adds the global light. Latitude tilts it down from the horizon,
// longitude turns it around the vertical axis.
func addSun(g *scene.Graph, parent *scene.Node, sun formats.RSWSun) {
	n := g.Add(parent, scene.Info{Name: "sun", Tag: TagLight, Static: true, Active: true})
	n.Transform.Rotation = math.QuatFromEulerDegrees(float32(sun.Latitude), float32(sun.Longitude), 0)

	shadows := scene.ShadowsNone
	if sun.Opacity > 0 {
		shadows = scene.ShadowsSoft
	}
	n.Light = &scene.Light{
		Type:            scene.LightDirectional,
		Enabled:         true,
		Intensity:       1,
		BounceIntensity: (sun.Ambient[0] + sun.Ambient[1] + sun.Ambient[2]) / 3,
		Color:           math.ColorFromArray(sun.Diffuse),
		Shadows:         shadows,
	}
}

// groundTextures maps GND texture names to texture references. Names are
// relative to data/texture.
func groundTextures(names []string) []scene.Texture {
	textures := make([]scene.Texture, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		rel := strings.ReplaceAll(name, "\\", "/")
		textures = append(textures, scene.Texture{
			Name: name,
			Path: path.Join("texture", rel),
		})
	}
	return textures
}

// NavMesh triangulates the walkable cells of a GAT grid. Cell (x, y)
// covers [x, x+1] by [y, y+1] in cell units, centered on the map.
func NavMesh(gat *formats.GAT) scene.Triangulation {
	var tri scene.Triangulation
	origin := math.Vec3{X: float32(gat.Width), Z: float32(gat.Height)}.Scale(-float32(CellSize) / 2)

	for y := 0; y < int(gat.Height); y++ {
		for x := 0; x < int(gat.Width); x++ {
			c := gat.Cell(x, y)
			if !c.Type.IsWalkable() {
				continue
			}
			base := len(tri.Vertices)
			// Heights order: bottom-left, bottom-right, top-left, top-right.
			for i, h := range c.Heights {
				corner := math.Vec3{X: float32(x + i%2), Z: float32(y + i/2)}
				v := corner.Scale(CellSize).Add(origin)
				v.Y = up(h)
				tri.Vertices = append(tri.Vertices, v)
			}
			tri.Indices = append(tri.Indices,
				base, base+1, base+2,
				base+2, base+1, base+3,
			)
			tri.Areas = append(tri.Areas, int(c.Type), int(c.Type))
		}
	}
	return tri
}
