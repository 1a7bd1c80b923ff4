package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	n3m "github.com/flywave/go-n3m"
)

func writeOBJFiles(stem string, m *n3m.MeshData) error {
	mtlName := filepath.Base(stem) + ".mtl"
	if err := writeFile(stem+".mtl", func(w io.Writer) error { return writeMTL(w, m) }); err != nil {
		return err
	}
	return writeFile(stem+".obj", func(w io.Writer) error { return writeOBJ(w, m, mtlName) })
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func writeMTL(w io.Writer, m *n3m.MeshData) error {
	for i, g := range m.Groups {
		if _, err := fmt.Fprintf(w, "newmtl texture%d\nmap_Kd %s\n\n", i, g.Image); err != nil {
			return err
		}
	}
	return nil
}

// writeOBJ writes m as a Wavefront OBJ with one material per face group.
// OBJ indices are 1-based.
func writeOBJ(w io.Writer, m *n3m.MeshData, mtlName string) error {
	if _, err := fmt.Fprintf(w, "mtllib %s\n", mtlName); err != nil {
		return err
	}
	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(w, "v %.6f %.6f %.6f\n", v[0], v[1], v[2]); err != nil {
			return err
		}
	}
	for _, t := range m.TexCoords {
		if _, err := fmt.Fprintf(w, "vt %.6f %.6f\n", t[0], t[1]); err != nil {
			return err
		}
	}
	hasNormals := len(m.Normals) == len(m.Vertices)
	if hasNormals {
		for _, n := range m.Normals {
			if _, err := fmt.Fprintf(w, "vn %.6f %.6f %.6f\n", n[0], n[1], n[2]); err != nil {
				return err
			}
		}
	}
	for i, g := range m.Groups {
		if _, err := fmt.Fprintf(w, "usemtl texture%d\n", i); err != nil {
			return err
		}
		for _, f := range m.Faces[g.Start:g.End] {
			a, b, c := f[0]+1, f[1]+1, f[2]+1
			var err error
			if hasNormals {
				_, err = fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
			} else {
				_, err = fmt.Fprintf(w, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// octNormalBytes packs the oct-encoded normals of m, two bytes per vertex.
func octNormalBytes(m *n3m.MeshData) []byte {
	enc := m.OctNormals()
	buf := make([]byte, 0, 2*len(enc))
	for _, n := range enc {
		buf = append(buf, n[0], n[1])
	}
	return buf
}
