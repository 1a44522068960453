package export

import (
	"github.com/Faultbox/sceneexport/internal/scene"
)

// Scene is the read-only host query surface the exporter needs.
// Implementations may panic on handles they did not issue.
type Scene interface {
	Subtree(root scene.Handle) []scene.Handle
	All() []scene.Handle
	SupportsWholeScene() bool
	Info(h scene.Handle) scene.Info
	Parent(h scene.Handle) (scene.Handle, bool)
	LocalTransform(h scene.Handle) scene.Transform
	Light(h scene.Handle) (scene.Light, bool)
	Textures(h scene.Handle) []scene.Texture
	NavMeshTriangulation() scene.Triangulation
}

// ConvertNode builds the document record for one node. The navigation mesh
// field is always left empty.
func ConvertNode(s Scene, ids IDProvider, h scene.Handle) Node {
	info := s.Info(h)
	tr := s.LocalTransform(h)

	n := Node{
		ID:       ids.ID(h),
		Name:     info.Name,
		Tag:      info.Tag,
		Layer:    info.Layer,
		IsStatic: info.Static,
		IsActive: info.Active,
		Transform: Transform{
			LocalPosition: Vec3ToArray(tr.Position),
			LocalRotation: Vec3ToArray(tr.Rotation.EulerDegrees()),
			LocalScale:    Vec3ToArray(tr.Scale),
		},
	}

	if p, ok := s.Parent(h); ok {
		pid := ids.ID(p)
		n.Transform.ParentID = &pid
	}

	if l, ok := s.Light(h); ok {
		n.Light = &Light{
			Enabled:            l.Enabled,
			Radius:             l.Range,
			Intensity:          l.Intensity,
			IndirectMultiplier: l.BounceIntensity,
			Kind:               ClassifyLight(l.Type),
			SpotAngle:          l.SpotAngle,
			Color:              ColorToRGBA(l.Color),
			ShadowsEnabled:     l.Shadows != scene.ShadowsNone,
		}
	}

	return n
}

// ClassifyLight maps a host light type onto the document's light codes.
// Anything other than directional, point or spot is LightUnknown.
func ClassifyLight(t scene.LightType) LightKind {
	switch t {
	case scene.LightDirectional:
		return LightDirectional
	case scene.LightPoint:
		return LightPoint
	case scene.LightSpot:
		return LightSpot
	default:
		return LightUnknown
	}
}
