package meshconv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"k8s.io/klog/v2"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func objectName(m *Mesh, i int) string {
	name := strings.Join(strings.Fields(m.Name), "_")
	if name == "" {
		return fmt.Sprintf("object_%d", i)
	}
	return name
}

// WriteOBJ writes each mesh as its own "o" object. Vertex, texture and
// normal indices are global and 1-based across all objects.
func WriteOBJ(w io.Writer, meshes ...*Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# glb2obj")
	var vOff, tOff, nOff int
	for i, m := range meshes {
		fmt.Fprintf(bw, "o %s\n", objectName(m, i))
		for _, p := range m.Positions {
			fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
		}
		hasUVs, hasNormals := m.hasUVs(), m.hasNormals()
		if hasUVs {
			for _, t := range m.UVs {
				fmt.Fprintf(bw, "vt %s %s\n", formatFloat(t[0]), formatFloat(t[1]))
			}
		}
		if hasNormals {
			for _, n := range m.Normals {
				fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(n[0]), formatFloat(n[1]), formatFloat(n[2]))
			}
		}
		for _, f := range m.Faces {
			bw.WriteString("f")
			for _, idx := range f {
				v := strconv.Itoa(vOff + idx + 1)
				switch {
				case hasUVs && hasNormals:
					fmt.Fprintf(bw, " %s/%d/%d", v, tOff+idx+1, nOff+idx+1)
				case hasUVs:
					fmt.Fprintf(bw, " %s/%d", v, tOff+idx+1)
				case hasNormals:
					fmt.Fprintf(bw, " %s//%d", v, nOff+idx+1)
				default:
					fmt.Fprintf(bw, " %s", v)
				}
			}
			bw.WriteString("\n")
		}
		vOff += len(m.Positions)
		if hasUVs {
			tOff += len(m.UVs)
		}
		if hasNormals {
			nOff += len(m.Normals)
		}
	}
	return bw.Flush()
}

// exportMeshes picks the meshes to write for an asset. Scenes are flattened
// into one object per instance, a single mesh is written as is, and anything
// else is concatenated into one mesh first.
func exportMeshes(a Asset) []*Mesh {
	switch a := a.(type) {
	case *Scene:
		return a.Flatten()
	case *Mesh:
		return []*Mesh{a}
	default:
		return []*Mesh{Concatenate(a.Meshes())}
	}
}

// Export writes a to path as OBJ. A failed write can leave a partial file.
func Export(a Asset, path string) error {
	return writeFile(path, exportMeshes(a))
}

func writeFile(path string, meshes []*Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create '%s': %w", path, err)
	}
	if err := WriteOBJ(f, meshes...); err != nil {
		f.Close()
		return fmt.Errorf("unable to write '%s': %w", path, err)
	}
	return f.Close()
}

// Convert loads the GLB at in and writes it as OBJ to out. Nothing is
// created at out unless the input loads.
func Convert(in, out string) error {
	a, err := Load(in)
	if err != nil {
		return err
	}
	meshes := exportMeshes(a)
	var vertices, faces int
	for _, m := range meshes {
		vertices += len(m.Positions)
		faces += len(m.Faces)
	}
	klog.V(2).InfoS("Loaded asset", "path", in, "kind", a.Kind(), "objects", len(meshes), "vertices", vertices, "faces", faces)
	return writeFile(out, meshes)
}
