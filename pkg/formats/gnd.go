package formats

import (
	"errors"
	"fmt"
)

// GND format errors.
var (
	ErrInvalidGNDMagic       = errors.New("invalid GND magic: expected 'GRGN'")
	ErrUnsupportedGNDVersion = errors.New("unsupported GND version")
	ErrTruncatedGNDData      = errors.New("truncated GND data")
)

// GNDVersion represents the GND file version.
type GNDVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GNDVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// GNDHeader is the leading part of a ground file: grid size and the
// texture table. Lightmaps, surfaces and tiles follow it on disk and are not
// decoded here.
type GNDHeader struct {
	Version  GNDVersion
	Width    uint32
	Height   uint32
	Zoom     float32
	Textures []string
}

// ParseGNDHeader parses the header and texture table of a GND file.
func ParseGNDHeader(data []byte) (*GNDHeader, error) {
	if len(data) < 6 {
		return nil, ErrTruncatedGNDData
	}
	if string(data[0:4]) != "GRGN" {
		return nil, ErrInvalidGNDMagic
	}

	version := GNDVersion{Major: data[4], Minor: data[5]}
	if version.Major != 1 || version.Minor < 5 || version.Minor > 9 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGNDVersion, version)
	}

	r := newReader(data, ErrTruncatedGNDData)
	r.skip(6, "header")

	hdr := &GNDHeader{Version: version}
	hdr.Width = r.u32("width")
	hdr.Height = r.u32("height")
	hdr.Zoom = r.f32("zoom")

	count := r.u32("texture count")
	nameLen := r.u32("texture name length")
	if r.err != nil {
		return nil, r.err
	}
	if uint64(count)*uint64(nameLen) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: %d textures of %d bytes", ErrTruncatedGNDData, count, nameLen)
	}

	hdr.Textures = make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		name := r.str(int(nameLen), "texture name")
		if r.err != nil {
			return nil, fmt.Errorf("texture %d: %w", i, r.err)
		}
		hdr.Textures = append(hdr.Textures, name)
	}

	return hdr, nil
}
