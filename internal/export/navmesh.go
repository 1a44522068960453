package export

import (
	"github.com/Faultbox/sceneexport/internal/scene"
	"github.com/Faultbox/sceneexport/pkg/math"
)

// Sentinel id and name of the synthetic navigation record. Handle-derived
// ids are never non-numeric, and UUIDs have a different shape.
const (
	NavMeshID   = "navMeshId"
	NavMeshName = "navMesh"
)

// ConvertNavMesh copies a triangulation into document form, one triple per
// vertex. Empty inputs give empty, non-nil slices.
func ConvertNavMesh(tri scene.Triangulation) NavMeshData {
	data := NavMeshData{
		Vertices:  make([][3]float32, len(tri.Vertices)),
		Indices:   make([]int, len(tri.Indices)),
		AreaCount: len(tri.Areas),
		Areas:     make([]int, len(tri.Areas)),
	}
	for i, v := range tri.Vertices {
		data.Vertices[i] = Vec3ToArray(v)
	}
	copy(data.Indices, tri.Indices)
	copy(data.Areas, tri.Areas)
	return data
}

// NavMeshNode wraps the navigation mesh in its synthetic record. The record
// is static, inactive and parentless. Its scale is (1, 1, 1) unless
// legacyZeroScale asks for all zeros.
func NavMeshNode(tri scene.Triangulation, legacyZeroScale bool) Node {
	scale := math.Vec3One
	if legacyZeroScale {
		scale = math.Vec3{}
	}
	data := ConvertNavMesh(tri)
	return Node{
		ID:       NavMeshID,
		Name:     NavMeshName,
		IsStatic: true,
		IsActive: false,
		Transform: Transform{
			LocalScale: Vec3ToArray(scale),
		},
		NavMesh: &data,
	}
}
