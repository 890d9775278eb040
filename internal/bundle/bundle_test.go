package bundle

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Faultbox/terragrid/internal/heightmap"
	tmath "github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

type testParams struct {
	Seed  int64    `yaml:"seed"`
	Names []string `yaml:"names"`
}

func testBundle(t *testing.T) *Bundle {
	t.Helper()
	hm, err := heightmap.New(heightmap.Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 2}, 2)
	if err != nil {
		t.Fatalf("heightmap.New: %v", err)
	}
	for i := range hm.Data {
		if i%3 != 0 {
			hm.Data[i] = float64(i) * 0.25
		}
	}
	b := &Bundle{
		Surface: mesh.New(
			[]tmath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0.5}, {X: 1, Y: 1, Z: -0.25}, {X: 0, Y: 1, Z: 1e-9}},
			[]mesh.Triangle{{0, 1, 2}, {0, 2, 3}},
		),
		Heightmap: hm,
	}
	if err := b.SetParams(testParams{Seed: 42, Names: []string{"flat", "perlin"}}); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	return b
}

func TestRoundTrip(t *testing.T) {
	want := testBundle(t)
	path := filepath.Join(t.TempDir(), "world.tgb")
	if err := WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	for i := range want.Surface.Vertices {
		if got.Surface.Vertices[i] != want.Surface.Vertices[i] {
			t.Errorf("vertex %d = %v, want %v", i, got.Surface.Vertices[i], want.Surface.Vertices[i])
		}
	}
	for i := range want.Surface.Triangles {
		if got.Surface.Triangles[i] != want.Surface.Triangles[i] {
			t.Errorf("triangle %d = %v, want %v", i, got.Surface.Triangles[i], want.Surface.Triangles[i])
		}
	}

	gh, wh := got.Heightmap, want.Heightmap
	if gh.Width != wh.Width || gh.Height != wh.Height || gh.Rect != wh.Rect || gh.Resolution != wh.Resolution {
		t.Fatalf("heightmap header %dx%d %+v @%g, want %dx%d %+v @%g",
			gh.Width, gh.Height, gh.Rect, gh.Resolution, wh.Width, wh.Height, wh.Rect, wh.Resolution)
	}
	for i := range wh.Data {
		if heightmap.IsNoData(wh.Data[i]) {
			if !heightmap.IsNoData(gh.Data[i]) {
				t.Errorf("sample %d lost its NoData marker: %g", i, gh.Data[i])
			}
			continue
		}
		if gh.Data[i] != wh.Data[i] {
			t.Errorf("sample %d = %g, want %g", i, gh.Data[i], wh.Data[i])
		}
	}

	var p testParams
	if err := got.DecodeParams(&p); err != nil {
		t.Fatalf("DecodeParams: %v", err)
	}
	if p.Seed != 42 || len(p.Names) != 2 || p.Names[1] != "perlin" {
		t.Errorf("params = %+v", p)
	}
}

func TestArchiveEntries(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testBundle(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	a, err := NewArchive(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewArchive: %v", err)
	}
	want := []string{EntryHeightmap, EntryParams, EntryTriangles, EntryVertices}
	got := a.List()
	if len(got) != len(want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if !a.Contains(EntryVertices) || a.Contains("mesh") {
		t.Error("Contains disagrees with List")
	}
	if e, err := a.Stat(EntryVertices); err != nil || e.UncompressedSize != 4+24*4 {
		t.Errorf("Stat(vertices) = %+v, %v", e, err)
	}
	if _, err := a.Read("mesh"); !errors.Is(err, ErrMissingEntry) {
		t.Errorf("expected ErrMissingEntry, got %v", err)
	}
	if a.Version() != bundleVersion {
		t.Errorf("version = %d", a.Version())
	}
}

func TestCorruptArchive(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testBundle(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	good := buf.Bytes()

	badMagic := append([]byte(nil), good...)
	copy(badMagic, "NOTABNDL")
	if _, err := NewArchive(bytes.NewReader(badMagic)); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("expected ErrInvalidMagic, got %v", err)
	}

	badVersion := append([]byte(nil), good...)
	badVersion[8] = 9
	if _, err := NewArchive(bytes.NewReader(badVersion)); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}

	if _, err := NewArchive(bytes.NewReader(good[:10])); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated for short header, got %v", err)
	}
	if _, err := NewArchive(bytes.NewReader(good[:len(good)-5])); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated for cut table, got %v", err)
	}
}

func TestWriterRejectsDuplicates(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	if err := w.Add("a", []byte("x")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Add("a", []byte("y")); err == nil {
		t.Error("expected duplicate entry error")
	}
	if err := w.Add("bad\x00name", nil); err == nil {
		t.Error("expected invalid name error")
	}
}
