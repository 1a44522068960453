// Package math provides the small vector, color and rotation types shared
// by the scene graph and the exporter.
package math

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}
