// Package export converts a scene graph into a portable JSON document: an
// ordered array of node records whose parent references resolve within the
// same document, followed by one synthetic navigation mesh record.
package export

// LightKind is the numeric light code stored in documents.
type LightKind int

const (
	LightUnknown     LightKind = -1
	LightDirectional LightKind = 0
	LightPoint       LightKind = 1
	LightSpot        LightKind = 2
)

// String returns the light kind name.
func (k LightKind) String() string {
	switch k {
	case LightDirectional:
		return "Directional"
	case LightPoint:
		return "Point"
	case LightSpot:
		return "Spot"
	default:
		return "Unknown"
	}
}

// Transform is a node's placement relative to its parent.
// ParentID is nil for roots; it encodes as null.
type Transform struct {
	ParentID      *string    `json:"parentId"`
	LocalPosition [3]float32 `json:"localPosition"`
	LocalRotation [3]float32 `json:"localRotation"` // Euler degrees
	LocalScale    [3]float32 `json:"localScale"`
}

// Light describes a light attached to a node.
type Light struct {
	Enabled            bool       `json:"enabled"`
	Radius             float32    `json:"radius"`
	Intensity          float32    `json:"intensity"`
	IndirectMultiplier float32    `json:"indirectMultiplier"`
	Kind               LightKind  `json:"kind"`
	SpotAngle          float32    `json:"spotAngle"`
	Color              [4]float32 `json:"color"`
	ShadowsEnabled     bool       `json:"shadowsEnabled"`
}

// NavMeshData is the scene-wide navigation triangulation.
type NavMeshData struct {
	Vertices  [][3]float32 `json:"vertices"`
	Indices   []int        `json:"indices"`
	AreaCount int          `json:"areaCount"` // number of area entries, not distinct areas
	Areas     []int        `json:"areas"`
}

// Node is one document record.
type Node struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Tag       string       `json:"tag,omitempty"`
	Layer     int          `json:"layer"`
	IsStatic  bool         `json:"isStatic"`
	IsActive  bool         `json:"isActive"`
	Transform Transform    `json:"transform"`
	Light     *Light       `json:"light,omitempty"`
	NavMesh   *NavMeshData `json:"navMesh,omitempty"`
}
