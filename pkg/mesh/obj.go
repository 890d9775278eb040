package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteOBJ writes s as a Wavefront OBJ document (1-based face indices).
func WriteOBJ(w io.Writer, s *Surface) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# vertices %d triangles %d\n", len(s.Vertices), len(s.Triangles))
	for _, v := range s.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, t := range s.Triangles {
		fmt.Fprintf(bw, "f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1)
	}
	return bw.Flush()
}

// WriteOBJFile writes s to path, creating parent directories.
func WriteOBJFile(path string, s *Surface) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := WriteOBJ(f, s); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return nil
}
