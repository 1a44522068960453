package export

import "github.com/Faultbox/sceneexport/pkg/math"

// Vec2ToArray returns [x, y].
func Vec2ToArray(v math.Vec2) [2]float32 {
	return [2]float32{v.X, v.Y}
}

// Vec3ToArray returns [x, y, z].
func Vec3ToArray(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// ColorToRGB returns [r, g, b]. Channels are not clamped.
func ColorToRGB(c math.Color) [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// ColorToRGBA returns [r, g, b, a]. Channels are not clamped.
func ColorToRGBA(c math.Color) [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Vec2ArrayToFlat flattens vectors into [x0, y0, x1, y1, ...].
// The result is never nil.
func Vec2ArrayToFlat(vs []math.Vec2) []float32 {
	out := make([]float32, 0, 2*len(vs))
	for _, v := range vs {
		out = append(out, v.X, v.Y)
	}
	return out
}

// Vec3ArrayToFlat flattens vectors into [x0, y0, z0, x1, ...].
// The result is never nil.
func Vec3ArrayToFlat(vs []math.Vec3) []float32 {
	out := make([]float32, 0, 3*len(vs))
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}
