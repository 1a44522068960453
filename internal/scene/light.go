package scene

import "github.com/Faultbox/sceneexport/pkg/math"

// LightType is the host's light kind. The numbering follows the engines the
// exported documents are usually fed back into, so it does not match the
// document's own light codes.
type LightType int

const (
	LightSpot LightType = iota
	LightDirectional
	LightPoint
	LightArea
	LightDisc
)

// String returns the light type name.
func (t LightType) String() string {
	switch t {
	case LightSpot:
		return "Spot"
	case LightDirectional:
		return "Directional"
	case LightPoint:
		return "Point"
	case LightArea:
		return "Area"
	case LightDisc:
		return "Disc"
	default:
		return "Unknown"
	}
}

// ShadowMode describes how a light casts shadows.
type ShadowMode int

const (
	ShadowsNone ShadowMode = iota
	ShadowsHard
	ShadowsSoft
)

// Light is the light capability of a node.
type Light struct {
	Type            LightType
	Enabled         bool
	Range           float32
	Intensity       float32
	BounceIntensity float32 // indirect lighting multiplier
	SpotAngle       float32 // degrees
	Color           math.Color
	Shadows         ShadowMode
}
