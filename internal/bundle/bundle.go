package bundle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/terragrid/internal/heightmap"
	tmath "github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

// Entry names.
const (
	EntryVertices  = "vertices"
	EntryTriangles = "triangles"
	EntryHeightmap = "heightmap"
	EntryParams    = "params"
)

// Bundle is the persisted output of one generation run.
type Bundle struct {
	Surface   *mesh.Surface
	Heightmap *heightmap.Heightmap
	Params    []byte // YAML document
}

// SetParams stores v as the YAML params entry.
func (b *Bundle) SetParams(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding params: %w", err)
	}
	b.Params = data
	return nil
}

// DecodeParams unmarshals the params entry into v.
func (b *Bundle) DecodeParams(v any) error {
	if err := yaml.Unmarshal(b.Params, v); err != nil {
		return fmt.Errorf("decoding params: %w", err)
	}
	return nil
}

// heightmapHeader precedes the row-major float64 samples.
type heightmapHeader struct {
	Width      uint32
	Height     uint32
	MinX       float64
	MinY       float64
	MaxX       float64
	MaxY       float64
	Resolution float64
}

// Write encodes b as an archive to w.
func Write(w io.Writer, b *Bundle) error {
	if b.Surface == nil || b.Heightmap == nil {
		return fmt.Errorf("bundle needs both a surface and a heightmap")
	}
	aw := NewWriter(w)
	entries := []struct {
		name string
		data []byte
	}{
		{EntryVertices, encodeVertices(b.Surface.Vertices)},
		{EntryTriangles, encodeTriangles(b.Surface.Triangles)},
		{EntryHeightmap, encodeHeightmap(b.Heightmap)},
		{EntryParams, b.Params},
	}
	for _, e := range entries {
		if err := aw.Add(e.name, e.data); err != nil {
			return err
		}
	}
	return aw.Close()
}

// WriteFile writes b to path.
func WriteFile(path string, b *Bundle) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Write(file, b); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Read decodes every entry of a.
func Read(a *Archive) (*Bundle, error) {
	raw := make(map[string][]byte, 4)
	for _, name := range []string{EntryVertices, EntryTriangles, EntryHeightmap, EntryParams} {
		data, err := a.Read(name)
		if err != nil {
			return nil, err
		}
		raw[name] = data
	}

	vertices, err := decodeVertices(raw[EntryVertices])
	if err != nil {
		return nil, err
	}
	triangles, err := decodeTriangles(raw[EntryTriangles], len(vertices))
	if err != nil {
		return nil, err
	}
	hm, err := decodeHeightmap(raw[EntryHeightmap])
	if err != nil {
		return nil, err
	}
	return &Bundle{
		Surface:   mesh.New(vertices, triangles),
		Heightmap: hm,
		Params:    raw[EntryParams],
	}, nil
}

// ReadFile opens and decodes the bundle at path.
func ReadFile(path string) (*Bundle, error) {
	a, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return Read(a)
}

func encodeVertices(vs []tmath.Vec3) []byte {
	buf := make([]byte, 4+24*len(vs))
	binary.LittleEndian.PutUint32(buf, uint32(len(vs)))
	off := 4
	for _, v := range vs {
		for _, f := range v.Array() {
			binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(f))
			off += 8
		}
	}
	return buf
}

func decodeVertices(data []byte) ([]tmath.Vec3, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: vertex count", ErrTruncated)
	}
	n := int(binary.LittleEndian.Uint32(data))
	if len(data) != 4+24*n {
		return nil, fmt.Errorf("%w: %d vertices in %d bytes", ErrTruncated, n, len(data))
	}
	vs := make([]tmath.Vec3, n)
	off := 4
	for i := range vs {
		vs[i] = tmath.Vec3{
			X: math.Float64frombits(binary.LittleEndian.Uint64(data[off:])),
			Y: math.Float64frombits(binary.LittleEndian.Uint64(data[off+8:])),
			Z: math.Float64frombits(binary.LittleEndian.Uint64(data[off+16:])),
		}
		off += 24
	}
	return vs, nil
}

func encodeTriangles(ts []mesh.Triangle) []byte {
	buf := make([]byte, 4+12*len(ts))
	binary.LittleEndian.PutUint32(buf, uint32(len(ts)))
	off := 4
	for _, t := range ts {
		for _, idx := range t {
			binary.LittleEndian.PutUint32(buf[off:], uint32(idx))
			off += 4
		}
	}
	return buf
}

func decodeTriangles(data []byte, numVertices int) ([]mesh.Triangle, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: triangle count", ErrTruncated)
	}
	n := int(binary.LittleEndian.Uint32(data))
	if len(data) != 4+12*n {
		return nil, fmt.Errorf("%w: %d triangles in %d bytes", ErrTruncated, n, len(data))
	}
	ts := make([]mesh.Triangle, n)
	off := 4
	for i := range ts {
		for k := 0; k < 3; k++ {
			idx := int(binary.LittleEndian.Uint32(data[off:]))
			if idx >= numVertices {
				return nil, fmt.Errorf("triangle %d references vertex %d of %d", i, idx, numVertices)
			}
			ts[i][k] = idx
			off += 4
		}
	}
	return ts, nil
}

func encodeHeightmap(hm *heightmap.Heightmap) []byte {
	var buf bytes.Buffer
	buf.Grow(48 + 8*len(hm.Data))
	binary.Write(&buf, binary.LittleEndian, heightmapHeader{
		Width:      uint32(hm.Width),
		Height:     uint32(hm.Height),
		MinX:       hm.Rect.MinX,
		MinY:       hm.Rect.MinY,
		MaxX:       hm.Rect.MaxX,
		MaxY:       hm.Rect.MaxY,
		Resolution: hm.Resolution,
	})
	binary.Write(&buf, binary.LittleEndian, hm.Data)
	return buf.Bytes()
}

func decodeHeightmap(data []byte) (*heightmap.Heightmap, error) {
	r := bytes.NewReader(data)
	var h heightmapHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: heightmap header", ErrTruncated)
	}
	n := int(h.Width) * int(h.Height)
	if r.Len() != 8*n {
		return nil, fmt.Errorf("%w: %dx%d heightmap in %d bytes", ErrTruncated, h.Width, h.Height, r.Len())
	}
	hm := &heightmap.Heightmap{
		Rect:       heightmap.Rect{MinX: h.MinX, MinY: h.MinY, MaxX: h.MaxX, MaxY: h.MaxY},
		Resolution: h.Resolution,
		Width:      int(h.Width),
		Height:     int(h.Height),
		Data:       make([]float64, n),
	}
	if err := binary.Read(r, binary.LittleEndian, hm.Data); err != nil {
		return nil, fmt.Errorf("%w: heightmap samples", ErrTruncated)
	}
	return hm, nil
}
