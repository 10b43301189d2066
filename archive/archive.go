// Package archive persists completed solve results in a self-describing
// container.
//
// An archive captures everything a consumer needs without re-running the
// solver: the solve parameters, assembly statistics and the translated
// result rows with their external identifiers. The container header records
// the codec and compression by name, so any build that knows the format can
// open any archive.
package archive

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/pcstgo/codec"
	"github.com/hupe1980/pcstgo/graph"
	"github.com/hupe1980/pcstgo/model"
	"github.com/hupe1980/pcstgo/stream"
)

const (
	// magicNumber identifies archive files (ASCII: "PCSA").
	magicNumber = 0x50435341
	// formatVersion is the current container format version.
	formatVersion = 1

	// maxCodecNameLen bounds the codec name field in the header.
	maxCodecNameLen = 255
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported format version")
	ErrUnknownCodec   = errors.New("unknown codec")
	ErrCorruptArchive = errors.New("corrupt archive")
)

// Archive is one persisted solve result.
type Archive struct {
	// Pruning and NumClusters are the parameters the result was solved
	// with.
	Pruning     string
	NumClusters int

	// Root is the external root identifier, or the zero Key for an
	// auto-selected root.
	Root model.Key

	// Stats are the assembly statistics of the run.
	Stats graph.Stats

	// Rows are the translated result rows, in selection order.
	Rows []model.ResultRow
}

// FromCursor drains a cursor into an archive. The cursor must be fresh or
// mid-stream; rows already pulled are not recovered.
func FromCursor(ctx context.Context, c *stream.Cursor) (*Archive, error) {
	a := &Archive{}
	for row, err := range c.All(ctx) {
		if err != nil {
			return nil, err
		}
		a.Rows = append(a.Rows, row)
	}
	if stats, ok := c.Stats(); ok {
		a.Stats = stats
	}
	return a, nil
}

// SaveOptions configures Save.
type SaveOptions struct {
	// Codec encodes the result document. Default: codec.Default.
	Codec codec.Codec

	// Compression compresses the encoded document. Default: CompressionZstd.
	Compression Compression
}

// Save writes the archive to w.
func (a *Archive) Save(w io.Writer, optFns ...func(*SaveOptions)) error {
	opts := SaveOptions{
		Codec:       codec.Default,
		Compression: CompressionZstd,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}

	payload, err := opts.Codec.Marshal(a.document())
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}

	compressed, compression, err := compress(payload, opts.Compression)
	if err != nil {
		return fmt.Errorf("compress archive: %w", err)
	}

	name := opts.Codec.Name()
	if len(name) > maxCodecNameLen {
		return fmt.Errorf("codec name too long: %q", name)
	}

	h := make([]byte, 0, 4+4+1+1+len(name)+8+8)
	h = binary.BigEndian.AppendUint32(h, magicNumber)
	h = binary.BigEndian.AppendUint32(h, formatVersion)
	h = append(h, byte(compression), byte(len(name)))
	h = append(h, name...)
	h = binary.BigEndian.AppendUint64(h, uint64(len(payload)))
	h = binary.BigEndian.AppendUint64(h, uint64(len(compressed)))

	if _, err := w.Write(h); err != nil {
		return err
	}
	_, err = w.Write(compressed)
	return err
}

// Load reads an archive from r.
func Load(r io.Reader) (*Archive, error) {
	var fixed [10]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	if binary.BigEndian.Uint32(fixed[0:4]) != magicNumber {
		return nil, ErrInvalidMagic
	}
	if v := binary.BigEndian.Uint32(fixed[4:8]); v != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, v)
	}
	compression := Compression(fixed[8])
	nameLen := int(fixed[9])

	rest := make([]byte, nameLen+16)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	codecName := string(rest[:nameLen])
	rawSize := binary.BigEndian.Uint64(rest[nameLen : nameLen+8])
	compressedSize := binary.BigEndian.Uint64(rest[nameLen+8:])

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	compressed := make([]byte, compressedSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	payload, err := decompress(compressed, compression, int(rawSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	var doc document
	if err := c.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	return doc.archive()
}
