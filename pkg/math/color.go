package math

// Color is a linear RGBA color. Channels are nominally in the 0-1 range but
// nothing here clamps them.
type Color struct {
	R, G, B, A float32
}

// White is opaque white.
var White = Color{1, 1, 1, 1}

// RGB builds an opaque color from three channels.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ColorFromArray builds an opaque color from an [r, g, b] triple, the way
// RO world files store light colors.
func ColorFromArray(c [3]float32) Color {
	return RGB(c[0], c[1], c[2])
}
