package export

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sceneexport/internal/scene"
)

// Mode selects which nodes an export covers.
type Mode int

const (
	// ModeSubtree exports the root and its descendants, depth-first.
	ModeSubtree Mode = iota
	// ModeWholeScene exports every loaded node regardless of root.
	ModeWholeScene
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeWholeScene {
		return "whole-scene"
	}
	return "subtree"
}

// ErrWholeSceneUnsupported is returned when whole-scene mode is requested
// from a scene that cannot enumerate all of its nodes.
var ErrWholeSceneUnsupported = errors.New("scene does not support whole-scene enumeration")

// Collect returns the handles to export in document order. Inactive nodes
// are included.
func Collect(s Scene, root scene.Handle, mode Mode) ([]scene.Handle, error) {
	switch mode {
	case ModeWholeScene:
		if !s.SupportsWholeScene() {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, ErrWholeSceneUnsupported)
		}
		return s.All(), nil
	default:
		return s.Subtree(root), nil
	}
}
