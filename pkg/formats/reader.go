package formats

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Faultbox/sceneexport/pkg/encoding"
)

// reader walks a little-endian byte slice. The first failure sticks: later
// reads return zero values and err reports what was being read when the
// data ran out.
type reader struct {
	data      []byte
	off       int
	err       error
	truncated error
}

func newReader(data []byte, truncated error) *reader {
	return &reader{data: data, truncated: truncated}
}

func (r *reader) take(n int, what string) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.data) {
		r.err = fmt.Errorf("%w: reading %s", r.truncated, what)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) skip(n int, what string) {
	r.take(n, what)
}

func (r *reader) u8(what string) uint8 {
	b := r.take(1, what)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) u32(what string) uint32 {
	b := r.take(4, what)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) i32(what string) int32 {
	return int32(r.u32(what))
}

func (r *reader) f32(what string) float32 {
	return math.Float32frombits(r.u32(what))
}

func (r *reader) vec3(what string) [3]float32 {
	return [3]float32{r.f32(what), r.f32(what), r.f32(what)}
}

// str reads a fixed-size, NUL-padded EUC-KR string and returns it as UTF-8.
func (r *reader) str(n int, what string) string {
	return encoding.FixedString(r.take(n, what))
}
