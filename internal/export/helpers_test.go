package export

import (
	"github.com/Faultbox/sceneexport/internal/scene"
	"github.com/Faultbox/sceneexport/pkg/math"
)

// lampScene builds Root with one child Lamp carrying a white point light.
func lampScene() (g *scene.Graph, root, lamp *scene.Node) {
	g = scene.NewGraph()
	root = g.Add(nil, scene.Info{Name: "Root", Active: true})
	lamp = g.Add(root, scene.Info{Name: "Lamp", Tag: "Light", Active: true})
	lamp.Transform.Position = math.Vec3{X: 1, Y: 2, Z: 3}
	lamp.Light = &scene.Light{
		Type:      scene.LightPoint,
		Enabled:   true,
		Range:     5,
		Intensity: 2,
		Color:     math.White,
		Shadows:   scene.ShadowsSoft,
	}
	return g, root, lamp
}

// prefixIDs makes ids that are easy to read in failures.
var prefixIDs = IDFunc(func(h scene.Handle) string {
	return "node-" + HandleIDs{}.ID(h)
})

// lightOnly wraps a scene and reports one fixed light for every node.
type lightOnly struct {
	*scene.Graph
	light scene.Light
}

func (s lightOnly) Light(scene.Handle) (scene.Light, bool) {
	return s.light, true
}
