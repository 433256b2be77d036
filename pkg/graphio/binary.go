package graphio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
)

const (
	magicBytes = "BFSCSR01"
	version    = uint32(1)
	headerSize = 8 + 4 + 8 + 8 + 8 + 4
)

// fileHeader is the fixed binary header.
// Format: [Magic:8][Version:4][NumNodes:8][NumEdges:8][PayloadLen:8][Checksum:4]
type fileHeader struct {
	Magic      [8]byte
	Version    uint32
	NumNodes   uint64
	NumEdges   uint64
	PayloadLen uint64
	Checksum   uint32
}

// encodePayload packs the CSR arrays big-endian and snappy-compresses them.
func encodePayload(g *csr.Graph) []byte {
	raw := make([]byte, 0, 8*len(g.RowOffsets())+4*g.NumEdges())
	for _, off := range g.RowOffsets() {
		raw = binary.BigEndian.AppendUint64(raw, uint64(off))
	}
	for _, c := range g.ColIndices() {
		raw = binary.BigEndian.AppendUint32(raw, uint32(c))
	}
	return snappy.Encode(nil, raw)
}

// WriteBinary writes g to path. The file is written next to path and
// renamed into place, so readers never see a partial file.
func WriteBinary(path string, g *csr.Graph) error {
	payload := encodePayload(g)
	hdr := fileHeader{
		Version:    version,
		NumNodes:   uint64(g.NumNodes()),
		NumEdges:   uint64(g.NumEdges()),
		PayloadLen: uint64(len(payload)),
		Checksum:   crc32.ChecksumIEEE(payload),
	}
	copy(hdr.Magic[:], magicBytes)

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // clean up on error
	}()

	if err := binary.Write(f, binary.BigEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := f.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// ReadBinary memory-maps path and decodes the graph it holds.
func ReadBinary(path string) (*csr.Graph, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap graph: %w", err)
	}
	defer reader.Close()

	if reader.Len() < headerSize {
		return nil, fmt.Errorf("%w: file is %d bytes", ErrBadHeader, reader.Len())
	}
	headerBuf := make([]byte, headerSize)
	if _, err := reader.ReadAt(headerBuf, 0); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var hdr fileHeader
	if err := binary.Read(bytes.NewReader(headerBuf), binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}
	if string(hdr.Magic[:]) != magicBytes {
		return nil, fmt.Errorf("%w: magic %x", ErrBadHeader, hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("%w: version %d", ErrBadHeader, hdr.Version)
	}
	if hdr.PayloadLen != uint64(reader.Len()-headerSize) {
		return nil, fmt.Errorf("%w: payload length %d, file holds %d", ErrBadHeader, hdr.PayloadLen, reader.Len()-headerSize)
	}

	payload := make([]byte, hdr.PayloadLen)
	if _, err := reader.ReadAt(payload, headerSize); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	if crc32.ChecksumIEEE(payload) != hdr.Checksum {
		return nil, ErrChecksum
	}

	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChecksum, err)
	}
	want := 8*(hdr.NumNodes+1) + 4*hdr.NumEdges
	if uint64(len(raw)) != want {
		return nil, fmt.Errorf("%w: decoded %d bytes, want %d", ErrBadHeader, len(raw), want)
	}

	offsets := make([]int64, hdr.NumNodes+1)
	for i := range offsets {
		offsets[i] = int64(binary.BigEndian.Uint64(raw[8*i:]))
	}
	cols := make([]csr.NodeID, hdr.NumEdges)
	base := 8 * len(offsets)
	for i := range cols {
		cols[i] = csr.NodeID(binary.BigEndian.Uint32(raw[base+4*i:]))
	}
	return csr.New(offsets, cols)
}
