// Package encoding converts the EUC-KR names stored in Ragnarok Online
// files to and from UTF-8.
package encoding

import (
	"bytes"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// ToUTF8 decodes EUC-KR bytes. Input that does not decode is returned
// unchanged.
func ToUTF8(data []byte) string {
	out, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

// FromUTF8 encodes s as EUC-KR. Strings with characters EUC-KR cannot
// represent are returned as UTF-8 bytes.
func FromUTF8(s string) []byte {
	out, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

// FixedString decodes a NUL-padded EUC-KR field, cutting at the first NUL.
func FixedString(data []byte) string {
	if idx := bytes.IndexByte(data, 0); idx >= 0 {
		data = data[:idx]
	}
	return ToUTF8(data)
}

// FixedBytes encodes s into a NUL-padded field of size bytes. Longer names
// are truncated.
func FixedBytes(s string, size int) []byte {
	out := make([]byte, size)
	copy(out, FromUTF8(s))
	return out
}
