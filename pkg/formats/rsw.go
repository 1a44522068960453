package formats

import (
	"errors"
	"fmt"
)

// RSW format errors.
var (
	ErrInvalidRSWMagic       = errors.New("invalid RSW magic: expected 'GRSW'")
	ErrUnsupportedRSWVersion = errors.New("unsupported RSW version")
	ErrTruncatedRSWData      = errors.New("truncated RSW data")
	ErrUnknownObjectType     = errors.New("unknown RSW object type")
)

// RSWVersion represents the RSW file version.
type RSWVersion struct {
	Major       uint8
	Minor       uint8
	BuildNumber uint32 // v2.2+ (uint8 for v2.2-2.4, uint32 for v2.5+)
}

// String returns the version as "Major.Minor" or "Major.Minor.Build".
func (v RSWVersion) String() string {
	if v.BuildNumber > 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.BuildNumber)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast returns true if version is >= major.minor.
func (v RSWVersion) AtLeast(major, minor uint8) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// RSWObjectType represents the type of object in the world.
type RSWObjectType int32

const (
	RSWObjectModel  RSWObjectType = 1 // 3D model (RSM file)
	RSWObjectLight  RSWObjectType = 2 // Light source
	RSWObjectSound  RSWObjectType = 3 // Sound source
	RSWObjectEffect RSWObjectType = 4 // Visual effect
)

// String returns a human-readable object type name.
func (t RSWObjectType) String() string {
	switch t {
	case RSWObjectModel:
		return "Model"
	case RSWObjectLight:
		return "Light"
	case RSWObjectSound:
		return "Sound"
	case RSWObjectEffect:
		return "Effect"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// RSWSun contains the global directional light.
type RSWSun struct {
	Longitude int32      // Horizontal angle in degrees
	Latitude  int32      // Elevation in degrees
	Diffuse   [3]float32 // RGB
	Ambient   [3]float32 // RGB
	Opacity   float32    // Shadow opacity (v1.7+)
}

// RSWModel represents a 3D model placed in the world.
type RSWModel struct {
	Name      string
	AnimType  int32
	AnimSpeed float32
	BlockType int32
	ModelName string // RSM file
	NodeName  string
	Position  [3]float32
	Rotation  [3]float32 // Degrees around X, Y, Z
	Scale     [3]float32
}

// RSWLightSource represents a point light in the world.
type RSWLightSource struct {
	Name     string
	Position [3]float32
	Color    [3]float32 // RGB, 0-1
	Range    float32
}

// RSWSoundSource represents a sound emitter in the world.
type RSWSoundSource struct {
	Name     string
	File     string
	Position [3]float32
	Volume   float32
	Width    int32
	Height   int32
	Range    float32
	Cycle    float32 // v2.0+
}

// RSWEffectSource represents a visual effect in the world.
type RSWEffectSource struct {
	Name     string
	Position [3]float32
	EffectID int32
	Delay    float32
	Param    [4]float32
}

// RSWObject represents any object in the world. Exactly one of the
// pointers is set, matching Type.
type RSWObject struct {
	Type   RSWObjectType
	Model  *RSWModel
	Light  *RSWLightSource
	Sound  *RSWSoundSource
	Effect *RSWEffectSource
}

// RSW represents a parsed Resource World file.
type RSW struct {
	Version RSWVersion
	IniFile string
	GndFile string
	GatFile string // v1.4+
	SrcFile string // v1.4+
	Sun     RSWSun
	Objects []RSWObject
}

// CountByType returns the count of objects for each type.
func (r *RSW) CountByType() map[RSWObjectType]int {
	counts := make(map[RSWObjectType]int)
	for _, obj := range r.Objects {
		counts[obj.Type]++
	}
	return counts
}

// ParseRSW parses a RSW file from raw bytes. The trailing quadtree of
// v2.1+ files is not read.
func ParseRSW(data []byte) (*RSW, error) {
	if len(data) < 6 {
		return nil, ErrTruncatedRSWData
	}
	if string(data[0:4]) != "GRSW" {
		return nil, ErrInvalidRSWMagic
	}

	rsw := &RSW{Version: RSWVersion{Major: data[4], Minor: data[5]}}
	v := &rsw.Version
	if v.Major < 1 || v.Major > 2 || (v.Major == 2 && v.Minor > 6) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRSWVersion, v)
	}

	r := newReader(data, ErrTruncatedRSWData)
	r.skip(6, "header")

	switch {
	case v.AtLeast(2, 5):
		v.BuildNumber = r.u32("build number")
		r.skip(1, "render flag")
	case v.AtLeast(2, 2):
		v.BuildNumber = uint32(r.u8("build number"))
	}

	rsw.IniFile = r.str(40, "ini file")
	rsw.GndFile = r.str(40, "gnd file")
	if v.AtLeast(1, 4) {
		rsw.GatFile = r.str(40, "gat file")
		rsw.SrcFile = r.str(40, "src file")
	}

	// Water moved to GND in 2.6.
	if v.AtLeast(1, 3) && !v.AtLeast(2, 6) {
		r.skip(24, "water settings")
	}

	if v.AtLeast(1, 5) {
		rsw.Sun.Longitude = r.i32("light longitude")
		rsw.Sun.Latitude = r.i32("light latitude")
		rsw.Sun.Diffuse = r.vec3("diffuse")
		rsw.Sun.Ambient = r.vec3("ambient")
	}
	if v.AtLeast(1, 7) {
		rsw.Sun.Opacity = r.f32("shadow opacity")
	}
	if v.AtLeast(1, 6) {
		r.skip(16, "ground bounds")
	}

	count := r.u32("object count")
	if r.err != nil {
		return nil, r.err
	}

	rsw.Objects = make([]RSWObject, 0, min(int(count), 4096))
	for i := uint32(0); i < count; i++ {
		obj, err := parseRSWObject(r, *v)
		if err != nil {
			return nil, fmt.Errorf("parsing object %d: %w", i, err)
		}
		rsw.Objects = append(rsw.Objects, obj)
	}

	return rsw, nil
}

func parseRSWObject(r *reader, v RSWVersion) (RSWObject, error) {
	obj := RSWObject{Type: RSWObjectType(r.i32("object type"))}
	if r.err != nil {
		return RSWObject{}, r.err
	}

	switch obj.Type {
	case RSWObjectModel:
		m := &RSWModel{}
		m.Name = r.str(40, "model name")
		m.AnimType = r.i32("anim type")
		m.AnimSpeed = r.f32("anim speed")
		m.BlockType = r.i32("block type")
		// 2.6.162+ adds a collision flag byte.
		if v.AtLeast(2, 6) && v.BuildNumber >= 162 {
			r.skip(1, "model flags")
		}
		m.ModelName = r.str(80, "model file name")
		m.NodeName = r.str(80, "node name")
		m.Position = r.vec3("model position")
		m.Rotation = r.vec3("model rotation")
		m.Scale = r.vec3("model scale")
		obj.Model = m

	case RSWObjectLight:
		l := &RSWLightSource{}
		l.Name = r.str(80, "light name")
		l.Position = r.vec3("light position")
		l.Color = r.vec3("light color")
		l.Range = r.f32("light range")
		obj.Light = l

	case RSWObjectSound:
		s := &RSWSoundSource{}
		s.Name = r.str(80, "sound name")
		s.File = r.str(80, "sound file")
		s.Position = r.vec3("sound position")
		s.Volume = r.f32("sound volume")
		s.Width = r.i32("sound width")
		s.Height = r.i32("sound height")
		s.Range = r.f32("sound range")
		if v.AtLeast(2, 0) {
			s.Cycle = r.f32("sound cycle")
		}
		obj.Sound = s

	case RSWObjectEffect:
		e := &RSWEffectSource{}
		e.Name = r.str(80, "effect name")
		e.Position = r.vec3("effect position")
		e.EffectID = r.i32("effect ID")
		e.Delay = r.f32("effect delay")
		for i := range e.Param {
			e.Param[i] = r.f32("effect param")
		}
		obj.Effect = e

	default:
		return RSWObject{}, fmt.Errorf("%w: %d", ErrUnknownObjectType, obj.Type)
	}

	if r.err != nil {
		return RSWObject{}, r.err
	}
	return obj, nil
}
