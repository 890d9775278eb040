// Package heightmap samples a surface into a regular elevation grid.
//
// Data is row-major with rows along Y and columns along X: the sample at
// column ix and row iy sits at world point (MinX + ix/Resolution, MinY + iy/Resolution)
// and is stored at Data[iy*Width+ix]. Cells no ray hit hold NaN.
package heightmap

import (
	"errors"
	"fmt"
	"math"
)

// Heightmap errors.
var (
	ErrEmptyRange    = errors.New("heightmap range is empty")
	ErrEmptySurface  = errors.New("surface has no triangles")
	ErrInvalidOffset = errors.New("ray offset must stay below half a cell")
)

// NoData returns the value stored in cells without a sample.
func NoData() float64 {
	return math.NaN()
}

// IsNoData reports whether v marks a missing sample.
func IsNoData(v float64) bool {
	return math.IsNaN(v)
}

// Rect is an axis-aligned XY rectangle.
type Rect struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// Dimensions returns the sample counts along X and Y at resolution samples per meter.
func (r Rect) Dimensions(resolution float64) (width, height int) {
	return int(math.Round((r.MaxX - r.MinX) * resolution)), int(math.Round((r.MaxY - r.MinY) * resolution))
}

// Heightmap is a grid of elevations over Rect.
type Heightmap struct {
	Rect       Rect
	Resolution float64 // samples per meter
	Width      int     // samples along X
	Height     int     // samples along Y
	Data       []float64
}

// New allocates a heightmap over rect with every cell set to NoData.
func New(rect Rect, resolution float64) (*Heightmap, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("%w: resolution %g", ErrEmptyRange, resolution)
	}
	w, h := rect.Dimensions(resolution)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %gx%g m at %g samples/m", ErrEmptyRange, rect.MaxX-rect.MinX, rect.MaxY-rect.MinY, resolution)
	}
	hm := &Heightmap{Rect: rect, Resolution: resolution, Width: w, Height: h, Data: make([]float64, w*h)}
	for i := range hm.Data {
		hm.Data[i] = NoData()
	}
	return hm, nil
}

// At returns the sample at column ix, row iy.
func (hm *Heightmap) At(ix, iy int) float64 {
	return hm.Data[iy*hm.Width+ix]
}

// Set stores a sample at column ix, row iy.
func (hm *Heightmap) Set(ix, iy int, v float64) {
	hm.Data[iy*hm.Width+ix] = v
}

// Point returns the world XY of sample (ix, iy).
func (hm *Heightmap) Point(ix, iy int) (x, y float64) {
	return hm.Rect.MinX + float64(ix)/hm.Resolution, hm.Rect.MinY + float64(iy)/hm.Resolution
}

// Nearest returns the sample closest to world point (x, y).
func (hm *Heightmap) Nearest(x, y float64) (ix, iy int, ok bool) {
	ix = int(math.Round((x - hm.Rect.MinX) * hm.Resolution))
	iy = int(math.Round((y - hm.Rect.MinY) * hm.Resolution))
	if ix < 0 || iy < 0 || ix >= hm.Width || iy >= hm.Height {
		return 0, 0, false
	}
	return ix, iy, true
}

// Interpolate returns the bilinearly interpolated height at world point (x, y).
// It fails outside the grid or when any of the four surrounding samples is missing.
func (hm *Heightmap) Interpolate(x, y float64) (float64, bool) {
	fx := (x - hm.Rect.MinX) * hm.Resolution
	fy := (y - hm.Rect.MinY) * hm.Resolution
	if fx < 0 || fy < 0 || fx > float64(hm.Width-1) || fy > float64(hm.Height-1) {
		return 0, false
	}

	ix := min(int(fx), max(hm.Width-2, 0))
	iy := min(int(fy), max(hm.Height-2, 0))
	ix1 := min(ix+1, hm.Width-1)
	iy1 := min(iy+1, hm.Height-1)
	fracX := clamp(fx-float64(ix), 0, 1)
	fracY := clamp(fy-float64(iy), 0, 1)

	sw, se := hm.At(ix, iy), hm.At(ix1, iy)
	nw, ne := hm.At(ix, iy1), hm.At(ix1, iy1)
	if IsNoData(sw) || IsNoData(se) || IsNoData(nw) || IsNoData(ne) {
		return 0, false
	}

	south := sw*(1-fracX) + se*fracX
	north := nw*(1-fracX) + ne*fracX
	return south*(1-fracY) + north*fracY, true
}

// MinMax returns the extreme sampled heights, skipping NoData.
// ok is false when no cell holds a sample.
func (hm *Heightmap) MinMax() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range hm.Data {
		if IsNoData(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// Missing counts cells holding NoData.
func (hm *Heightmap) Missing() int {
	n := 0
	for _, v := range hm.Data {
		if IsNoData(v) {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
