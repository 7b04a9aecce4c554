package snapshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/snappy"

	"github.com/lazear/mcode/pkg/dataset"
)

// Write persists the edge list to path, replacing any existing
// snapshot atomically. It returns the number of bytes written.
func Write(path string, el *dataset.EdgeList) (int64, error) {
	if len(el.Names) > math.MaxUint32 {
		return 0, fmt.Errorf("snapshot cannot hold %d vertices", len(el.Names))
	}

	raw := encodePayload(el)
	compressed := snappy.Encode(nil, raw)
	header := Header{
		Magic:       Magic,
		Version:     Version,
		VertexCount: uint64(len(el.Names)),
		EdgeCount:   uint64(len(el.Edges)),
		PayloadSize: uint64(len(compressed)),
		RawSize:     uint64(len(raw)),
		Checksum:    crc32.ChecksumIEEE(compressed),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".partial-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp snapshot: %w", err)
	}

	writer := bufio.NewWriter(tmp)
	if err := binary.Write(writer, binary.LittleEndian, &header); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("writing snapshot header: %w", err)
	}
	if _, err := writer.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("writing snapshot payload: %w", err)
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("flushing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("moving snapshot into place: %w", err)
	}
	return int64(headerSize + len(compressed)), nil
}
