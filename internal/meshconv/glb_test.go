package meshconv

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/require"
)

// glbBuilder assembles binary glTF fixtures. All accessors share the
// document's single buffer, which the encoder stores in the BIN chunk.
type glbBuilder struct {
	doc *gltf.Document
}

func newGLB() *glbBuilder {
	doc := gltf.NewDocument()
	doc.Scene, doc.Scenes = nil, nil
	return &glbBuilder{doc: doc}
}

type primitive struct {
	positions [][3]float32
	normals   [][3]float32
	uvs       [][2]float32
	indices   []uint16
	mode      gltf.PrimitiveMode
}

func (b *glbBuilder) mesh(name string, prims ...primitive) uint32 {
	m := &gltf.Mesh{Name: name}
	for _, p := range prims {
		attrs := gltf.Attribute{"POSITION": modeler.WritePosition(b.doc, p.positions)}
		if p.normals != nil {
			attrs["NORMAL"] = modeler.WriteNormal(b.doc, p.normals)
		}
		if p.uvs != nil {
			attrs["TEXCOORD_0"] = modeler.WriteTextureCoord(b.doc, p.uvs)
		}
		prim := &gltf.Primitive{Attributes: attrs, Mode: p.mode}
		if p.indices != nil {
			prim.Indices = gltf.Index(modeler.WriteIndices(b.doc, p.indices))
		}
		m.Primitives = append(m.Primitives, prim)
	}
	b.doc.Meshes = append(b.doc.Meshes, m)
	return uint32(len(b.doc.Meshes) - 1)
}

func (b *glbBuilder) node(n *gltf.Node) uint32 {
	b.doc.Nodes = append(b.doc.Nodes, n)
	return uint32(len(b.doc.Nodes) - 1)
}

func (b *glbBuilder) scene(nodes ...uint32) {
	b.doc.Scenes = append(b.doc.Scenes, &gltf.Scene{Nodes: nodes})
	b.doc.Scene = gltf.Index(0)
}

func (b *glbBuilder) write(t *testing.T, name string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, gltf.SaveBinary(b.doc, path))
	return path
}

var (
	triangle = primitive{
		positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		normals:   [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		uvs:       [][2]float32{{0, 0}, {1, 0}, {0, 1}},
		indices:   []uint16{0, 1, 2},
	}
	quad = primitive{
		positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		indices:   []uint16{0, 1, 2, 0, 2, 3},
	}
)

// sceneGLB writes a scene with the triangle at the origin and the quad
// translated by +10 on X.
func sceneGLB(t *testing.T) string {
	b := newGLB()
	tri := b.mesh("Triangle", triangle)
	q := b.mesh("Quad", quad)
	n0 := b.node(&gltf.Node{Name: "tri", Mesh: gltf.Index(tri)})
	n1 := b.node(&gltf.Node{Name: "quad", Mesh: gltf.Index(q), Translation: [3]float32{10, 0, 0}})
	root := b.node(&gltf.Node{Name: "root", Children: []uint32{n0, n1}})
	b.scene(root)
	return b.write(t, "scene.glb")
}
