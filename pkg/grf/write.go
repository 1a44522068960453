package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Faultbox/sceneexport/pkg/encoding"
)

// File is one entry to pack with Write.
type File struct {
	Name string // archive path, e.g. `data\prontera.gat`
	Data []byte
}

// Write packs files into a version 0x200 archive. Entries are deflated and
// names are stored as EUC-KR.
func Write(w io.Writer, files []File) error {
	var body, table bytes.Buffer
	for _, f := range files {
		payload, err := deflate(f.Data)
		if err != nil {
			return fmt.Errorf("compressing %s: %w", f.Name, err)
		}
		// equal sizes mark a stored entry
		if len(payload) == len(f.Data) {
			payload = f.Data
		}
		offset := uint32(body.Len())
		body.Write(payload)

		table.Write(encoding.FromUTF8(f.Name))
		table.WriteByte(0)
		var meta [17]byte
		binary.LittleEndian.PutUint32(meta[0:], uint32(len(payload)))
		binary.LittleEndian.PutUint32(meta[4:], uint32(len(payload)))
		binary.LittleEndian.PutUint32(meta[8:], uint32(len(f.Data)))
		meta[12] = flagFile
		binary.LittleEndian.PutUint32(meta[13:], offset)
		table.Write(meta[:])
	}

	packed, err := deflate(table.Bytes())
	if err != nil {
		return fmt.Errorf("compressing file table: %w", err)
	}

	hdr := Header{
		TableOffset: uint32(body.Len()),
		FileCount:   uint32(len(files) + 7),
		Version:     version200,
	}
	copy(hdr.Magic[:], grfMagic)

	var sizes [8]byte
	binary.LittleEndian.PutUint32(sizes[0:], uint32(len(packed)))
	binary.LittleEndian.PutUint32(sizes[4:], uint32(table.Len()))

	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return err
	}
	for _, chunk := range [][]byte{body.Bytes(), sizes[:], packed} {
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
