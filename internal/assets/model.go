package assets

import (
	"fmt"
	"image"
	gomath "math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/raging-sea/pkg/math"
)

// Mesh is one triangle primitive with node transforms baked in.
type Mesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32 // Nil when the primitive has no TEXCOORD_0
	Indices   []uint32

	BaseColor [4]float32
	Texture   int // Index into Model.Textures, -1 for none
}

// VertexStride is the number of floats per interleaved vertex:
// position (3), normal (3), texcoord (2).
const VertexStride = 8

// Interleaved packs the mesh into one vertex buffer. Missing texcoords are
// written as zero.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*VertexStride)
	for i, p := range m.Positions {
		n := [3]float32{0, 1, 0}
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		var uv [2]float32
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

// Model is a parsed glTF scene in CPU memory, ready for GPU upload.
type Model struct {
	Name     string
	Path     string
	Meshes   []Mesh
	Textures []*image.RGBA

	Min [3]float32
	Max [3]float32
}

// VertexCount returns the total vertex count over all meshes.
func (m *Model) VertexCount() int {
	n := 0
	for i := range m.Meshes {
		n += len(m.Meshes[i].Positions)
	}
	return n
}

// Size returns the extent of the model's bounding box.
func (m *Model) Size() math.Vec3 {
	return math.V3(m.Max).Sub(math.V3(m.Min))
}

// TriangleCount returns the total triangle count over all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for i := range m.Meshes {
		n += len(m.Meshes[i].Indices) / 3
	}
	return n
}

// LoadModel parses a .gltf or .glb file.
func LoadModel(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return importDocument(doc, path)
}

type importer struct {
	doc      *gltf.Document
	dir      string
	model    *Model
	textures map[int]int // glTF texture index -> Model.Textures index
}

func importDocument(doc *gltf.Document, path string) (*Model, error) {
	imp := &importer{
		doc: doc,
		dir: filepath.Dir(path),
		model: &Model{
			Name: modelName(doc, path),
			Path: path,
		},
		textures: make(map[int]int),
	}

	for _, root := range sceneRoots(doc) {
		if err := imp.walk(root, math.Identity(), 0); err != nil {
			return nil, err
		}
	}

	if len(imp.model.Meshes) == 0 {
		return nil, fmt.Errorf("%s: no triangle meshes", path)
	}

	imp.model.Min, imp.model.Max = bounds(imp.model.Meshes)
	return imp.model, nil
}

// sceneRoots returns the root nodes of the default scene. Files without
// scenes fall back to every node that is nobody's child.
func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}

	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

const maxNodeDepth = 64

func (imp *importer) walk(nodeIdx int, parent math.Mat4, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	if nodeIdx < 0 || nodeIdx >= len(imp.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIdx)
	}

	node := imp.doc.Nodes[nodeIdx]
	world := parent.Mul(nodeTransform(node))

	if node.Mesh != nil {
		if err := imp.addMesh(*node.Mesh, world); err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
	}

	for _, c := range node.Children {
		if err := imp.walk(c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

var identity16 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func nodeTransform(n *gltf.Node) math.Mat4 {
	if m := n.MatrixOrDefault(); m != identity16 {
		var out math.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math.Compose(
		math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])},
		math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	)
}

func (imp *importer) addMesh(meshIdx int, world math.Mat4) error {
	if meshIdx < 0 || meshIdx >= len(imp.doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", meshIdx)
	}
	gm := imp.doc.Meshes[meshIdx]

	for i, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		mesh, err := imp.readPrimitive(prim, world)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", gm.Name, i, err)
		}
		mesh.Name = gm.Name
		imp.model.Meshes = append(imp.model.Meshes, *mesh)
	}
	return nil
}

func (imp *importer) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(imp.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return imp.doc.Accessors[idx], nil
}

func (imp *importer) readPrimitive(prim *gltf.Primitive, world math.Mat4) (*Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	acr, err := imp.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(imp.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	mesh := &Mesh{
		Positions: positions,
		BaseColor: [4]float32{1, 1, 1, 1},
		Texture:   -1,
	}

	if prim.Indices != nil {
		acr, err := imp.accessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		if mesh.Indices, err = modeler.ReadIndices(imp.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		mesh.Indices = make([]uint32, len(positions))
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(i)
		}
	}
	for _, idx := range mesh.Indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
		}
	}

	if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		acr, err := imp.accessor(nIdx)
		if err != nil {
			return nil, err
		}
		if mesh.Normals, err = modeler.ReadNormal(imp.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
	}

	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := imp.accessor(uvIdx)
		if err != nil {
			return nil, err
		}
		if mesh.UVs, err = modeler.ReadTextureCoord(imp.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading texcoords: %w", err)
		}
	}

	for i, p := range mesh.Positions {
		mesh.Positions[i] = world.TransformPoint(p)
	}
	if len(mesh.Normals) == len(mesh.Positions) {
		for i, n := range mesh.Normals {
			mesh.Normals[i] = math.V3(world.TransformDirection(n)).Normalize().Array()
		}
	} else {
		mesh.Normals = generateNormals(mesh.Positions, mesh.Indices)
	}

	if prim.Material != nil {
		if err := imp.applyMaterial(mesh, *prim.Material); err != nil {
			return nil, err
		}
	}

	return mesh, nil
}

func (imp *importer) applyMaterial(mesh *Mesh, matIdx int) error {
	if matIdx < 0 || matIdx >= len(imp.doc.Materials) {
		return fmt.Errorf("material %d out of range", matIdx)
	}
	pbr := imp.doc.Materials[matIdx].PBRMetallicRoughness
	if pbr == nil {
		return nil
	}

	if pbr.BaseColorFactor != nil {
		f := *pbr.BaseColorFactor
		mesh.BaseColor = [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
	}

	if pbr.BaseColorTexture != nil && mesh.UVs != nil {
		tex, err := imp.texture(pbr.BaseColorTexture.Index)
		if err != nil {
			return err
		}
		mesh.Texture = tex
	}
	return nil
}

func (imp *importer) texture(texIdx int) (int, error) {
	if slot, ok := imp.textures[texIdx]; ok {
		return slot, nil
	}
	if texIdx < 0 || texIdx >= len(imp.doc.Textures) {
		return -1, fmt.Errorf("texture %d out of range", texIdx)
	}
	src := imp.doc.Textures[texIdx].Source
	if src == nil || *src >= len(imp.doc.Images) {
		return -1, fmt.Errorf("texture %d has no image", texIdx)
	}

	data, err := imp.imageData(imp.doc.Images[*src])
	if err != nil {
		return -1, fmt.Errorf("texture %d: %w", texIdx, err)
	}
	img, err := DecodeTexture(data)
	if err != nil {
		return -1, fmt.Errorf("texture %d: %w", texIdx, err)
	}

	slot := len(imp.model.Textures)
	imp.model.Textures = append(imp.model.Textures, img)
	imp.textures[texIdx] = slot
	return slot, nil
}

func (imp *importer) imageData(img *gltf.Image) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		if *img.BufferView >= len(imp.doc.BufferViews) {
			return nil, fmt.Errorf("buffer view %d out of range", *img.BufferView)
		}
		return modeler.ReadBufferView(imp.doc, imp.doc.BufferViews[*img.BufferView])
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "":
		return os.ReadFile(filepath.Join(imp.dir, filepath.FromSlash(img.URI)))
	default:
		return nil, fmt.Errorf("image has no data")
	}
}

func modelName(doc *gltf.Document, path string) string {
	for _, m := range doc.Meshes {
		if m.Name != "" {
			return m.Name
		}
	}
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// generateNormals computes smooth vertex normals by accumulating
// area-weighted face normals.
func generateNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	accum := make([]math.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		p0 := math.V3(positions[indices[i]])
		p1 := math.V3(positions[indices[i+1]])
		p2 := math.V3(positions[indices[i+2]])
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		for _, idx := range indices[i : i+3] {
			accum[idx] = accum[idx].Add(face)
		}
	}

	normals := make([][3]float32, len(positions))
	for i, n := range accum {
		if n.Length() < 1e-6 {
			normals[i] = [3]float32{0, 1, 0}
			continue
		}
		normals[i] = n.Normalize().Array()
	}
	return normals
}

func bounds(meshes []Mesh) (lo, hi [3]float32) {
	lo = [3]float32{gomath.MaxFloat32, gomath.MaxFloat32, gomath.MaxFloat32}
	hi = [3]float32{-gomath.MaxFloat32, -gomath.MaxFloat32, -gomath.MaxFloat32}
	for i := range meshes {
		for _, p := range meshes[i].Positions {
			for j := 0; j < 3; j++ {
				lo[j] = min(lo[j], p[j])
				hi[j] = max(hi[j], p[j])
			}
		}
	}
	return lo, hi
}
