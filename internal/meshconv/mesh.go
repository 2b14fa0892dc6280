// Package meshconv converts binary glTF assets into Wavefront OBJ files.
package meshconv

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an indexed triangle mesh. Normals and UVs are either empty or hold
// one entry per position. UVs use a bottom-left origin, as OBJ does.
type Mesh struct {
	Name      string
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Faces     [][3]int
}

// Object places a mesh in a scene.
type Object struct {
	Name      string
	Mesh      *Mesh
	Transform mgl64.Mat4
}

// Scene is a flattened scene graph: every mesh instance with its world
// transform.
type Scene struct {
	Name    string
	Objects []Object
}

// Collection is a loose set of meshes that no scene places.
type Collection []*Mesh

// Asset is what Load produces: a *Scene, a single *Mesh or a Collection.
type Asset interface {
	Kind() string
	Meshes() []*Mesh
}

func (m *Mesh) Kind() string         { return "mesh" }
func (m *Mesh) Meshes() []*Mesh      { return []*Mesh{m} }
func (s *Scene) Kind() string        { return "scene" }
func (s *Scene) Meshes() []*Mesh     { return s.Flatten() }
func (c Collection) Kind() string    { return "collection" }
func (c Collection) Meshes() []*Mesh { return c }

func (m *Mesh) hasNormals() bool {
	return len(m.Normals) > 0 && len(m.Normals) == len(m.Positions)
}

func (m *Mesh) hasUVs() bool {
	return len(m.UVs) > 0 && len(m.UVs) == len(m.Positions)
}

// Transformed returns a copy of m with t applied to positions and normals.
// Mirroring transforms get their winding flipped so faces keep pointing out.
func (m *Mesh) Transformed(t mgl64.Mat4) *Mesh {
	out := &Mesh{
		Name:      m.Name,
		Positions: make([]mgl64.Vec3, len(m.Positions)),
		Faces:     make([][3]int, len(m.Faces)),
	}
	for i, p := range m.Positions {
		out.Positions[i] = t.Mul4x1(p.Vec4(1)).Vec3()
	}
	if m.hasNormals() {
		nm := t.Mat3().Inv().Transpose()
		out.Normals = make([]mgl64.Vec3, len(m.Normals))
		for i, n := range m.Normals {
			out.Normals[i] = safeNormalize(nm.Mul3x1(n))
		}
	}
	if m.hasUVs() {
		out.UVs = append([]mgl64.Vec2(nil), m.UVs...)
	}
	flip := t.Det() < 0
	for i, f := range m.Faces {
		if flip {
			f[1], f[2] = f[2], f[1]
		}
		out.Faces[i] = f
	}
	return out
}

func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

// Flatten returns one world-space mesh per object.
func (s *Scene) Flatten() []*Mesh {
	out := make([]*Mesh, 0, len(s.Objects))
	for _, o := range s.Objects {
		m := o.Mesh.Transformed(o.Transform)
		m.Name = o.Name
		out = append(out, m)
	}
	return out
}

// Concatenate joins meshes into one, offsetting face indices. Normals and
// UVs survive only if every input has them.
func Concatenate(meshes []*Mesh) *Mesh {
	out := &Mesh{Name: "combined"}
	if len(meshes) == 1 {
		out.Name = meshes[0].Name
	}
	keepNormals, keepUVs := len(meshes) > 0, len(meshes) > 0
	for _, m := range meshes {
		keepNormals = keepNormals && m.hasNormals()
		keepUVs = keepUVs && m.hasUVs()
	}
	for _, m := range meshes {
		base := len(out.Positions)
		out.Positions = append(out.Positions, m.Positions...)
		if keepNormals {
			out.Normals = append(out.Normals, m.Normals...)
		}
		if keepUVs {
			out.UVs = append(out.UVs, m.UVs...)
		}
		for _, f := range m.Faces {
			out.Faces = append(out.Faces, [3]int{f[0] + base, f[1] + base, f[2] + base})
		}
	}
	return out
}

func (m *Mesh) String() string {
	return fmt.Sprintf("%s (%d vertices, %d faces)", m.Name, len(m.Positions), len(m.Faces))
}
