// Package bundle persists a generated world: the composite surface, its
// heightmap and the parameters that produced it.
//
// A bundle file is a small archive of named, zlib-compressed entries:
//
//	header  magic "TGRIDBND", version u32, entry count u32, table offset u64
//	data    compressed entries, back to back
//	table   compressed u32 size + (name\0, compressed u64, uncompressed u64, offset u64) per entry
//
// All integers are little-endian.
package bundle

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

const (
	bundleMagic   = "TGRIDBND"
	bundleVersion = 1
	headerSize    = 24
)

// Bundle errors.
var (
	ErrInvalidMagic       = errors.New("invalid bundle magic: expected 'TGRIDBND'")
	ErrUnsupportedVersion = errors.New("unsupported bundle version")
	ErrTruncated          = errors.New("truncated bundle data")
	ErrMissingEntry       = errors.New("bundle entry not found")
)

// Header is the fixed-size bundle header.
type Header struct {
	Magic       [8]byte
	Version     uint32
	EntryCount  uint32
	TableOffset uint64
}

// Entry locates one compressed entry in the archive.
type Entry struct {
	Name             string
	CompressedSize   uint64
	UncompressedSize uint64
	Offset           uint64
}

// Archive is an opened bundle file.
type Archive struct {
	r       io.ReaderAt
	closer  io.Closer
	header  Header
	entries map[string]*Entry
}

// Open opens a bundle file for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	a, err := NewArchive(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	a.closer = file
	return a, nil
}

// NewArchive reads the header and entry table from r.
func NewArchive(r io.ReaderAt) (*Archive, error) {
	a := &Archive{r: r, entries: make(map[string]*Entry)}
	if err := a.readHeader(); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := a.readTable(); err != nil {
		return nil, fmt.Errorf("reading entry table: %w", err)
	}
	return a, nil
}

// Close closes the underlying file, if any.
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// Version returns the format version of the archive.
func (a *Archive) Version() uint32 {
	return a.header.Version
}

func (a *Archive) readHeader() error {
	buf := make([]byte, headerSize)
	if _, err := a.r.ReadAt(buf, 0); err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &a.header); err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if string(a.header.Magic[:]) != bundleMagic {
		return ErrInvalidMagic
	}
	if a.header.Version != bundleVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, a.header.Version)
	}
	return nil
}

func (a *Archive) readTable() error {
	var sizeBuf [4]byte
	if _, err := a.r.ReadAt(sizeBuf[:], int64(a.header.TableOffset)); err != nil {
		return fmt.Errorf("%w: table size: %v", ErrTruncated, err)
	}
	compressed := make([]byte, binary.LittleEndian.Uint32(sizeBuf[:]))
	if _, err := a.r.ReadAt(compressed, int64(a.header.TableOffset)+4); err != nil {
		return fmt.Errorf("%w: table: %v", ErrTruncated, err)
	}
	table, err := inflate(compressed)
	if err != nil {
		return err
	}

	offset := 0
	for i := uint32(0); i < a.header.EntryCount; i++ {
		nameEnd := bytes.IndexByte(table[offset:], 0)
		if nameEnd < 0 {
			return fmt.Errorf("%w: entry %d name", ErrTruncated, i)
		}
		name := string(table[offset : offset+nameEnd])
		offset += nameEnd + 1

		if offset+24 > len(table) {
			return fmt.Errorf("%w: entry %d", ErrTruncated, i)
		}
		a.entries[name] = &Entry{
			Name:             name,
			CompressedSize:   binary.LittleEndian.Uint64(table[offset:]),
			UncompressedSize: binary.LittleEndian.Uint64(table[offset+8:]),
			Offset:           binary.LittleEndian.Uint64(table[offset+16:]),
		}
		offset += 24
	}
	return nil
}

// List returns all entry names in sorted order.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.entries))
	for name := range a.entries {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Contains checks if an entry exists.
func (a *Archive) Contains(name string) bool {
	_, ok := a.entries[name]
	return ok
}

// Stat returns the table entry for name.
func (a *Archive) Stat(name string) (Entry, error) {
	e, ok := a.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrMissingEntry, name)
	}
	return *e, nil
}

// Read decompresses an entry.
func (a *Archive) Read(name string) ([]byte, error) {
	entry, ok := a.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingEntry, name)
	}

	compressed := make([]byte, entry.CompressedSize)
	if _, err := a.r.ReadAt(compressed, int64(entry.Offset)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTruncated, name, err)
	}
	data, err := inflate(compressed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if uint64(len(data)) != entry.UncompressedSize {
		return nil, fmt.Errorf("%w: %s: got %d of %d bytes", ErrTruncated, name, len(data), entry.UncompressedSize)
	}
	return data, nil
}

func inflate(compressed []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return data, nil
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

// Writer builds an archive in memory and writes it out on Close.
type Writer struct {
	w       io.Writer
	entries []Entry
	data    bytes.Buffer
	names   map[string]bool
}

// NewWriter creates a writer that emits the archive to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, names: make(map[string]bool)}
}

// Add compresses data under name. Names must be unique and free of NUL bytes.
func (w *Writer) Add(name string, data []byte) error {
	if name == "" || bytes.IndexByte([]byte(name), 0) >= 0 {
		return fmt.Errorf("invalid entry name %q", name)
	}
	if w.names[name] {
		return fmt.Errorf("duplicate entry %q", name)
	}
	compressed, err := deflate(data)
	if err != nil {
		return fmt.Errorf("compressing %s: %w", name, err)
	}
	w.entries = append(w.entries, Entry{
		Name:             name,
		CompressedSize:   uint64(len(compressed)),
		UncompressedSize: uint64(len(data)),
		Offset:           uint64(headerSize + w.data.Len()),
	})
	w.data.Write(compressed)
	w.names[name] = true
	return nil
}

// Close writes the header, entries and table.
func (w *Writer) Close() error {
	var table bytes.Buffer
	var scratch [8]byte
	for _, e := range w.entries {
		table.WriteString(e.Name)
		table.WriteByte(0)
		for _, v := range []uint64{e.CompressedSize, e.UncompressedSize, e.Offset} {
			binary.LittleEndian.PutUint64(scratch[:], v)
			table.Write(scratch[:])
		}
	}
	compressedTable, err := deflate(table.Bytes())
	if err != nil {
		return fmt.Errorf("compressing table: %w", err)
	}

	header := Header{
		Version:     bundleVersion,
		EntryCount:  uint32(len(w.entries)),
		TableOffset: uint64(headerSize + w.data.Len()),
	}
	copy(header.Magic[:], bundleMagic)

	if err := binary.Write(w.w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := w.w.Write(w.data.Bytes()); err != nil {
		return fmt.Errorf("writing entries: %w", err)
	}
	if err := binary.Write(w.w, binary.LittleEndian, uint32(len(compressedTable))); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	if _, err := w.w.Write(compressedTable); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}
