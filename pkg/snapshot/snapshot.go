// Package snapshot persists a parsed edge list as a single compact
// file so repeated runs over the same dataset skip the parse stage.
//
// Snapshot format:
//
//	[Header: magic(4) | version(4) | vertex_count(8) | edge_count(8) |
//	         payload_size(8) | raw_size(8) | crc32(4)]
//	[Payload: snappy( names block | edges block )]
//
// The names block holds vertex_count length-prefixed accessions; the
// edges block holds edge_count (u,v) uint32 pairs. The checksum covers
// the compressed payload.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lazear/mcode/pkg/dataset"
)

const (
	Magic   = 0x4D434753 // "MCGS"
	Version = 1
)

// ErrCorruptSnapshot is the sentinel for snapshots that fail structural
// or checksum validation.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// ErrUnsupportedVersion is returned for snapshots written by an
// incompatible format version.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// Header is the fixed-size preamble of a snapshot file.
type Header struct {
	Magic       uint32
	Version     uint32
	VertexCount uint64
	EdgeCount   uint64
	PayloadSize uint64
	RawSize     uint64
	Checksum    uint32
}

var headerSize = binary.Size(Header{})

// IsCorrupt returns true if the error indicates a damaged snapshot.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptSnapshot)
}

func encodePayload(el *dataset.EdgeList) []byte {
	size := len(el.Edges) * 8
	for _, name := range el.Names {
		size += 4 + len(name)
	}

	buf := make([]byte, 0, size)
	var scratch [8]byte
	for _, name := range el.Names {
		binary.LittleEndian.PutUint32(scratch[:4], uint32(len(name)))
		buf = append(buf, scratch[:4]...)
		buf = append(buf, name...)
	}
	for _, e := range el.Edges {
		binary.LittleEndian.PutUint32(scratch[:4], uint32(e[0]))
		binary.LittleEndian.PutUint32(scratch[4:8], uint32(e[1]))
		buf = append(buf, scratch[:8]...)
	}
	return buf
}

func decodePayload(raw []byte, vertices, edges int) (*dataset.EdgeList, error) {
	names := make([]string, vertices)
	off := 0
	for i := range names {
		if off+4 > len(raw) {
			return nil, fmt.Errorf("%w: names block truncated at vertex %d", ErrCorruptSnapshot, i)
		}
		n := int(binary.LittleEndian.Uint32(raw[off:]))
		off += 4
		if off+n > len(raw) {
			return nil, fmt.Errorf("%w: name %d overruns payload", ErrCorruptSnapshot, i)
		}
		names[i] = string(raw[off : off+n])
		off += n
	}

	list := make([][2]int, edges)
	for i := range list {
		if off+8 > len(raw) {
			return nil, fmt.Errorf("%w: edges block truncated at edge %d", ErrCorruptSnapshot, i)
		}
		u := int(binary.LittleEndian.Uint32(raw[off:]))
		v := int(binary.LittleEndian.Uint32(raw[off+4:]))
		list[i] = [2]int{u, v}
		off += 8
	}
	if off != len(raw) {
		return nil, fmt.Errorf("%w: %d trailing payload bytes", ErrCorruptSnapshot, len(raw)-off)
	}
	return &dataset.EdgeList{Names: names, Edges: list}, nil
}
