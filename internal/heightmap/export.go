package heightmap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"
)

// Scale maps 16-bit image levels back to meters: z = Min + level/65535*(Max-Min).
// Level 0 also encodes NoData.
type Scale struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Gray16 quantizes the heightmap into a 16-bit grayscale image with row 0 at MinY.
// Sampled cells map to [1, 65535]; NoData maps to 0.
func (hm *Heightmap) Gray16() (*image.Gray16, Scale) {
	img := image.NewGray16(image.Rect(0, 0, hm.Width, hm.Height))
	lo, hi, ok := hm.MinMax()
	if !ok {
		return img, Scale{}
	}
	span := hi - lo
	for iy := 0; iy < hm.Height; iy++ {
		for ix := 0; ix < hm.Width; ix++ {
			v := hm.At(ix, iy)
			if IsNoData(v) {
				continue
			}
			level := uint16(65535)
			if span > 0 {
				level = uint16(1 + math.Round((v-lo)/span*65534))
			}
			img.SetGray16(ix, iy, color.Gray16{Y: level})
		}
	}
	return img, Scale{Min: lo, Max: hi}
}

// EncodeTIFF writes the heightmap as a deflate-compressed 16-bit TIFF.
func (hm *Heightmap) EncodeTIFF(w io.Writer) (Scale, error) {
	img, scale := hm.Gray16()
	if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
		return Scale{}, fmt.Errorf("encoding TIFF: %w", err)
	}
	return scale, nil
}

// terrainRamp is a blue-green-brown-white elevation colormap.
var terrainRamp = []struct {
	at  float64
	rgb [3]float64
}{
	{0.00, [3]float64{0.20, 0.20, 0.60}},
	{0.15, [3]float64{0.00, 0.60, 1.00}},
	{0.25, [3]float64{0.00, 0.80, 0.40}},
	{0.50, [3]float64{1.00, 1.00, 0.60}},
	{0.75, [3]float64{0.50, 0.36, 0.33}},
	{1.00, [3]float64{1.00, 1.00, 1.00}},
}

func rampColor(t float64) color.RGBA {
	t = clamp(t, 0, 1)
	for i := 1; i < len(terrainRamp); i++ {
		a, b := terrainRamp[i-1], terrainRamp[i]
		if t > b.at {
			continue
		}
		f := (t - a.at) / (b.at - a.at)
		var c [3]uint8
		for k := range c {
			c[k] = uint8(math.Round(255 * (a.rgb[k] + f*(b.rgb[k]-a.rgb[k]))))
		}
		return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// Preview renders the heightmap through the terrain colormap.
// Rows are flipped so +Y points up; NoData cells are transparent.
func (hm *Heightmap) Preview() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, hm.Width, hm.Height))
	lo, hi, ok := hm.MinMax()
	if !ok {
		return img
	}
	span := hi - lo
	for iy := 0; iy < hm.Height; iy++ {
		dstY := hm.Height - 1 - iy
		for ix := 0; ix < hm.Width; ix++ {
			v := hm.At(ix, iy)
			if IsNoData(v) {
				continue
			}
			t := 0.5
			if span > 0 {
				t = (v - lo) / span
			}
			img.SetRGBA(ix, dstY, rampColor(t))
		}
	}
	return img
}

// Exporter writes heightmap images into an output directory.
type Exporter struct {
	outputDir string
	prefix    string
}

// NewExporter creates an exporter writing <outputDir>/<prefix>_heightmap.<ext>.
func NewExporter(outputDir, prefix string) *Exporter {
	return &Exporter{outputDir: outputDir, prefix: prefix}
}

// Filename returns the output path for the given extension.
func (e *Exporter) Filename(ext string) string {
	name := fmt.Sprintf("%s_heightmap.%s", e.prefix, ext)
	if e.outputDir != "" {
		name = filepath.Join(e.outputDir, name)
	}
	return name
}

// save creates <prefix>_heightmap.<ext>, runs encode on it and closes it,
// returning the first error of the three.
func (e *Exporter) save(ext string, encode func(w io.Writer) error) (string, error) {
	if e.outputDir != "" {
		if err := os.MkdirAll(e.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	filename := e.Filename(ext)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := encode(file); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}
	return filename, nil
}

// SavePNG writes the colormap preview and returns its path.
func (e *Exporter) SavePNG(hm *Heightmap) (string, error) {
	return e.save("png", func(w io.Writer) error {
		if err := png.Encode(w, hm.Preview()); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
		return nil
	})
}

// SaveTIFF writes the 16-bit heightmap and returns its path and level scale.
func (e *Exporter) SaveTIFF(hm *Heightmap) (string, Scale, error) {
	var scale Scale
	filename, err := e.save("tiff", func(w io.Writer) error {
		var err error
		scale, err = hm.EncodeTIFF(w)
		return err
	})
	if err != nil {
		return "", Scale{}, err
	}
	return filename, scale, nil
}
