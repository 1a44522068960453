// Package worldmaptest builds small RO map files for tests.
package worldmaptest

import (
	"bytes"
	"encoding/binary"

	"github.com/Faultbox/sceneexport/pkg/encoding"
	"github.com/Faultbox/sceneexport/pkg/formats"
)

type builder struct {
	bytes.Buffer
}

func (b *builder) put(values ...any) {
	for _, v := range values {
		binary.Write(&b.Buffer, binary.LittleEndian, v)
	}
}

// name writes s as a NUL-padded EUC-KR field.
func (b *builder) name(s string, size int) {
	b.Write(encoding.FixedBytes(s, size))
}

// RSW returns a version 1.9 world that points at gnd and gat and holds one
// light source named "torch" at (10, -5, 20) with range 30.
func RSW(gnd, gat string) []byte {
	var b builder
	b.WriteString("GRSW")
	b.put(uint8(1), uint8(9))
	b.name("", 40)
	b.name(gnd, 40)
	b.name(gat, 40)
	b.name("", 40)
	b.Write(make([]byte, 24)) // water
	b.put(int32(45), int32(60))
	b.put([3]float32{1, 1, 1}, [3]float32{0.3, 0.3, 0.3})
	b.put(float32(0.5))
	b.Write(make([]byte, 16)) // ground bounds
	b.put(uint32(1), int32(formats.RSWObjectLight))
	b.name("torch", 80)
	b.put([3]float32{10, -5, 20}, [3]float32{1, 0.5, 0}, float32(30))
	return b.Bytes()
}

// GAT returns a version 1.2 altitude grid with flat cells of the given
// types, row by row.
func GAT(width, height uint32, types ...formats.GATCellType) []byte {
	var b builder
	b.WriteString("GRAT")
	b.put(uint8(2), uint8(1), width, height)
	for _, t := range types {
		b.put([4]float32{}, uint32(t))
	}
	return b.Bytes()
}

// GND returns a version 1.7 ground header with the given textures.
func GND(textures ...string) []byte {
	var b builder
	b.WriteString("GRGN")
	b.put(uint8(1), uint8(7), uint32(2), uint32(2), float32(10), uint32(len(textures)), uint32(80))
	for _, t := range textures {
		b.name(t, 80)
	}
	return b.Bytes()
}

// Files returns the three files of a map called name: a 2x1 grid with one
// walkable cell and a ground with one texture.
func Files(name string) map[string][]byte {
	return map[string][]byte{
		name + ".rsw": RSW(name+".gnd", name+".gat"),
		name + ".gat": GAT(2, 1, formats.GATWalkable, formats.GATBlocked),
		name + ".gnd": GND("grass.bmp"),
	}
}
