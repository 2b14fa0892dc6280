package meshconv

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"k8s.io/klog/v2"
)

var errUnsupportedMode = errors.New("unsupported primitive mode")

type index interface {
	~int | ~uint32
}

// Load decodes a binary glTF file. A scene placing several meshes becomes a
// *Scene, a scene placing exactly one becomes a *Mesh with its transform
// applied, and meshes that no scene places become a Collection.
func Load(path string) (Asset, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to decode '%s': %w", path, err)
	}
	return fromDocument(doc)
}

func fromDocument(doc *gltf.Document) (Asset, error) {
	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("document has no meshes")
	}
	meshes := make([]*Mesh, len(doc.Meshes))
	for i, m := range doc.Meshes {
		mesh, err := readMesh(doc, m, i)
		if err != nil {
			return nil, err
		}
		meshes[i] = mesh
	}

	scene, err := defaultScene(doc)
	if err != nil {
		return nil, err
	}
	if scene == nil {
		return Collection(meshes), nil
	}

	w := &walker{doc: doc, meshes: meshes, visiting: map[*gltf.Node]bool{}, scene: &Scene{Name: scene.Name}}
	for _, n := range scene.Nodes {
		if err := visit(w, n, mgl64.Ident4()); err != nil {
			return nil, err
		}
	}
	switch len(w.scene.Objects) {
	case 0:
		return Collection(meshes), nil
	case 1:
		o := w.scene.Objects[0]
		m := o.Mesh.Transformed(o.Transform)
		m.Name = o.Name
		return m, nil
	}
	return w.scene, nil
}

func defaultScene(doc *gltf.Document) (*gltf.Scene, error) {
	if len(doc.Scenes) == 0 {
		return nil, nil
	}
	if doc.Scene == nil {
		return doc.Scenes[0], nil
	}
	return at(doc.Scenes, *doc.Scene, "scene")
}

func at[T any, I index](s []*T, i I, what string) (*T, error) {
	if int(i) < 0 || int(i) >= len(s) {
		return nil, fmt.Errorf("%s index %d out of range", what, i)
	}
	return s[i], nil
}

type walker struct {
	doc      *gltf.Document
	meshes   []*Mesh
	visiting map[*gltf.Node]bool
	scene    *Scene
}

// visit records every mesh instance under the node at i, depth first.
func visit[I index](w *walker, i I, parent mgl64.Mat4) error {
	node, err := at(w.doc.Nodes, i, "node")
	if err != nil {
		return err
	}
	if w.visiting[node] {
		return fmt.Errorf("node '%s' is its own ancestor", node.Name)
	}
	w.visiting[node] = true
	defer delete(w.visiting, node)

	world := parent.Mul4(localTransform(node))
	if node.Mesh != nil {
		mesh, err := at(w.meshes, *node.Mesh, "mesh")
		if err != nil {
			return err
		}
		name := node.Name
		if name == "" {
			name = mesh.Name
		}
		w.scene.Objects = append(w.scene.Objects, Object{Name: name, Mesh: mesh, Transform: world})
	}
	for _, c := range node.Children {
		if err := visit(w, c, world); err != nil {
			return err
		}
	}
	return nil
}

func toFloat64s[T float32 | float64](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// localTransform uses the node matrix when one is set and composes
// translation, rotation and scale otherwise.
func localTransform(n *gltf.Node) mgl64.Mat4 {
	m := n.MatrixOrDefault()
	var mat mgl64.Mat4
	copy(mat[:], toFloat64s(m[:]))
	if mat != mgl64.Ident4() {
		return mat
	}
	tv, rv, sv := n.TranslationOrDefault(), n.RotationOrDefault(), n.ScaleOrDefault()
	t, r, s := toFloat64s(tv[:]), toFloat64s(rv[:]), toFloat64s(sv[:])
	q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
	return mgl64.Translate3D(t[0], t[1], t[2]).Mul4(q.Mat4()).Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

func readMesh(doc *gltf.Document, m *gltf.Mesh, i int) (*Mesh, error) {
	name := m.Name
	if name == "" {
		name = fmt.Sprintf("mesh_%d", i)
	}
	var parts []*Mesh
	for j, p := range m.Primitives {
		part, err := readPrimitive(doc, p)
		if errors.Is(err, errUnsupportedMode) {
			klog.Warningf("Skipping primitive %d of mesh '%s': %v", j, name, err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("mesh '%s' primitive %d: %w", name, j, err)
		}
		parts = append(parts, part)
	}
	mesh := Concatenate(parts)
	mesh.Name = name
	return mesh, nil
}

func accessor[I index](doc *gltf.Document, i I) (*gltf.Accessor, error) {
	return at(doc.Accessors, i, "accessor")
}

func readPrimitive(doc *gltf.Document, p *gltf.Primitive) (*Mesh, error) {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no %s attribute", gltf.POSITION)
	}
	acr, err := accessor(doc, posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}
	mesh := &Mesh{Positions: make([]mgl64.Vec3, len(positions))}
	for i, v := range positions {
		mesh.Positions[i] = mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
	}

	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		acr, err := accessor(doc, idx)
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
		if len(normals) == len(positions) {
			mesh.Normals = make([]mgl64.Vec3, len(normals))
			for i, v := range normals {
				mesh.Normals[i] = mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
			}
		}
	}

	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := accessor(doc, idx)
		if err != nil {
			return nil, err
		}
		uvs, err := modeler.ReadTextureCoord(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading texture coordinates: %w", err)
		}
		if len(uvs) == len(positions) {
			mesh.UVs = make([]mgl64.Vec2, len(uvs))
			for i, v := range uvs {
				mesh.UVs[i] = mgl64.Vec2{float64(v[0]), 1 - float64(v[1])}
			}
		}
	}

	var indices []uint32
	if p.Indices != nil {
		acr, err := accessor(doc, *p.Indices)
		if err != nil {
			return nil, err
		}
		if indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, i := range indices {
		if int(i) >= len(positions) {
			return nil, fmt.Errorf("vertex index %d out of range (%d vertices)", i, len(positions))
		}
	}

	faces, err := triangulate(p.Mode, indices)
	if err != nil {
		return nil, err
	}
	mesh.Faces = faces
	return mesh, nil
}

// triangulate turns an index list into triangles for the three triangle
// topologies. Degenerate strip and fan triangles are dropped.
func triangulate(mode gltf.PrimitiveMode, indices []uint32) ([][3]int, error) {
	var faces [][3]int
	add := func(a, b, c uint32) {
		if a == b || b == c || a == c {
			return
		}
		faces = append(faces, [3]int{int(a), int(b), int(c)})
	}
	switch mode {
	case gltf.PrimitiveTriangles:
		for i := 0; i+2 < len(indices); i += 3 {
			faces = append(faces, [3]int{int(indices[i]), int(indices[i+1]), int(indices[i+2])})
		}
	case gltf.PrimitiveTriangleStrip:
		for i := 0; i+2 < len(indices); i++ {
			if i%2 == 0 {
				add(indices[i], indices[i+1], indices[i+2])
			} else {
				add(indices[i+1], indices[i], indices[i+2])
			}
		}
	case gltf.PrimitiveTriangleFan:
		for i := 1; i+1 < len(indices); i++ {
			add(indices[0], indices[i], indices[i+1])
		}
	default:
		return nil, fmt.Errorf("%w: %v", errUnsupportedMode, mode)
	}
	return faces, nil
}
