package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/lazear/mcode/pkg/dataset"
)

// Load reads a snapshot through memory-mapped I/O and returns the edge
// list it holds.
func Load(path string) (*dataset.EdgeList, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer reader.Close()

	headerBuf := make([]byte, headerSize)
	if _, err := reader.ReadAt(headerBuf, 0); err != nil {
		return nil, fmt.Errorf("%w: short header", ErrCorruptSnapshot)
	}
	var header Header
	if err := binary.Read(bytes.NewReader(headerBuf), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("decoding snapshot header: %w", err)
	}
	if header.Magic != Magic {
		return nil, fmt.Errorf("%w: bad magic %#x", ErrCorruptSnapshot, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: version %d, supported %d", ErrUnsupportedVersion, header.Version, Version)
	}

	// The checksum covers only the payload, so the header's size fields
	// must be validated structurally before they size any allocation.
	avail := reader.Len() - headerSize
	if avail < 0 || header.PayloadSize != uint64(avail) {
		return nil, fmt.Errorf("%w: payload size %d, file holds %d", ErrCorruptSnapshot, header.PayloadSize, avail)
	}
	if header.VertexCount > header.RawSize/4 {
		return nil, fmt.Errorf("%w: %d vertices cannot fit in %d raw bytes", ErrCorruptSnapshot, header.VertexCount, header.RawSize)
	}
	if header.EdgeCount > (header.RawSize-4*header.VertexCount)/8 {
		return nil, fmt.Errorf("%w: %d edges cannot fit in %d raw bytes", ErrCorruptSnapshot, header.EdgeCount, header.RawSize)
	}

	compressed := make([]byte, header.PayloadSize)
	if _, err := reader.ReadAt(compressed, int64(headerSize)); err != nil {
		return nil, fmt.Errorf("%w: truncated payload", ErrCorruptSnapshot)
	}
	if sum := crc32.ChecksumIEEE(compressed); sum != header.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch (stored %#x, computed %#x)", ErrCorruptSnapshot, header.Checksum, sum)
	}
	if n, err := snappy.DecodedLen(compressed); err != nil || uint64(n) != header.RawSize {
		return nil, fmt.Errorf("%w: encoded length disagrees with raw size %d", ErrCorruptSnapshot, header.RawSize)
	}

	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if uint64(len(raw)) != header.RawSize {
		return nil, fmt.Errorf("%w: decompressed to %d bytes, header says %d", ErrCorruptSnapshot, len(raw), header.RawSize)
	}
	return decodePayload(raw, int(header.VertexCount), int(header.EdgeCount))
}
