// Package scene is an in-memory scene graph: nodes with local transforms,
// optional lights and texture references, plus one navigation
// triangulation for the whole scene. Graph answers the read-only queries
// the exporter makes.
package scene

import (
	"fmt"

	"github.com/Faultbox/sceneexport/pkg/math"
)

// Handle is the runtime identifier of a node. Handles are unique within a
// Graph and mean nothing outside it.
type Handle int64

// Info holds the descriptive fields of a node.
type Info struct {
	Name   string
	Tag    string
	Layer  int
	Static bool
	Active bool
}

// Transform is a node's transform relative to its parent.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// Identity returns the transform with no translation, rotation or scaling.
func Identity() Transform {
	return Transform{Rotation: math.QuatIdentity(), Scale: math.Vec3One}
}

// Texture is a texture referenced by a node.
type Texture struct {
	Name string
	Path string // relative to the data root
}

// Triangulation is the navigation mesh of a whole scene. Indices address
// Vertices three at a time; Areas carries one tag per triangle.
type Triangulation struct {
	Vertices []math.Vec3
	Indices  []int
	Areas    []int
}

// Node is one element of the graph. Nodes are created through Graph.Add.
type Node struct {
	Info
	Transform Transform
	Light     *Light
	Textures  []Texture

	handle   Handle
	parent   *Node
	children []*Node
}

// Handle returns the node's runtime handle.
func (n *Node) Handle() Handle {
	return n.handle
}

// Parent returns the parent node, or nil for roots.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// Graph is a scene graph. It is not safe for concurrent mutation.
type Graph struct {
	nodes      map[Handle]*Node
	loaded     []*Node
	next       Handle
	wholeScene bool

	// NavMesh is the scene-wide navigation triangulation.
	NavMesh Triangulation
}

// NewGraph creates an empty graph. Whole-scene enumeration is enabled.
func NewGraph() *Graph {
	return &Graph{
		nodes:      make(map[Handle]*Node),
		next:       1,
		wholeScene: true,
	}
}

// SetWholeSceneEnumeration toggles whether All may be used. Hosts that can
// only see the subtree they were invoked on turn it off.
func (g *Graph) SetWholeSceneEnumeration(enabled bool) {
	g.wholeScene = enabled
}

// Add creates a node under parent (nil for a root) with an identity
// transform and returns it.
func (g *Graph) Add(parent *Node, info Info) *Node {
	n := &Node{
		Info:      info,
		Transform: Identity(),
		handle:    g.next,
		parent:    parent,
	}
	g.next++
	g.nodes[n.handle] = n
	g.loaded = append(g.loaded, n)
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return n
}

// Roots returns the nodes without a parent in load order.
func (g *Graph) Roots() []*Node {
	var roots []*Node
	for _, n := range g.loaded {
		if n.parent == nil {
			roots = append(roots, n)
		}
	}
	return roots
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.loaded)
}

// node resolves a handle. An unknown handle is a caller bug.
func (g *Graph) node(h Handle) *Node {
	n, ok := g.nodes[h]
	if !ok {
		panic(fmt.Sprintf("scene: unknown node handle %d", h))
	}
	return n
}

// Subtree returns root and all of its descendants, depth-first pre-order.
func (g *Graph) Subtree(root Handle) []Handle {
	var out []Handle
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n.handle)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(g.node(root))
	return out
}

// All returns every node in load order.
func (g *Graph) All() []Handle {
	out := make([]Handle, len(g.loaded))
	for i, n := range g.loaded {
		out[i] = n.handle
	}
	return out
}

// SupportsWholeScene reports whether All may be used.
func (g *Graph) SupportsWholeScene() bool {
	return g.wholeScene
}

// Info returns the descriptive fields of a node.
func (g *Graph) Info(h Handle) Info {
	return g.node(h).Info
}

// Parent returns the parent handle; ok is false for roots.
func (g *Graph) Parent(h Handle) (Handle, bool) {
	p := g.node(h).parent
	if p == nil {
		return 0, false
	}
	return p.handle, true
}

// LocalTransform returns the node's transform relative to its parent.
func (g *Graph) LocalTransform(h Handle) Transform {
	return g.node(h).Transform
}

// Light returns the node's light, if it has one.
func (g *Graph) Light(h Handle) (Light, bool) {
	l := g.node(h).Light
	if l == nil {
		return Light{}, false
	}
	return *l, true
}

// Textures returns the textures referenced by the node.
func (g *Graph) Textures(h Handle) []Texture {
	return g.node(h).Textures
}

// NavMeshTriangulation returns the scene-wide navigation mesh.
func (g *Graph) NavMeshTriangulation() Triangulation {
	return g.NavMesh
}
