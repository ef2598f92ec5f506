package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// writeTriangleGLB saves a single-triangle GLB raised by lift on Y.
func writeTriangleGLB(t *testing.T, dir, name string, lift float64, withMaterial bool) string {
	t.Helper()

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {0, 0, 1}, {1, 0, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	prim := &gltf.Primitive{
		Indices:    gltf.Index(idx),
		Attributes: map[string]int{gltf.POSITION: pos},
	}
	if withMaterial {
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: "yellow",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{1, 0.8, 0, 1},
			},
		})
		prim.Material = gltf.Index(0)
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: "Duck", Primitives: []*gltf.Primitive{prim}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:        "duck",
		Mesh:        gltf.Index(0),
		Translation: [3]float64{0, lift, 0},
		Rotation:    [4]float64{0, 0, 0, 1},
		Scale:       [3]float64{1, 1, 1},
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(dir, name)
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func TestLoadModel(t *testing.T) {
	path := writeTriangleGLB(t, t.TempDir(), "duck.glb", 2, true)

	m, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}

	if m.Name != "Duck" {
		t.Errorf("Name = %q, want Duck", m.Name)
	}
	if len(m.Meshes) != 1 {
		t.Fatalf("len(Meshes) = %d, want 1", len(m.Meshes))
	}
	if m.VertexCount() != 3 || m.TriangleCount() != 1 {
		t.Errorf("got %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}

	mesh := m.Meshes[0]
	for i, p := range mesh.Positions {
		if p[1] != 2 {
			t.Errorf("vertex %d Y = %v, want node translation 2", i, p[1])
		}
	}

	// No NORMAL attribute: generated from a counter-clockwise XZ triangle.
	for i, n := range mesh.Normals {
		if math.Abs(float64(n[1]-1)) > 1e-6 {
			t.Errorf("normal %d = %v, want +Y", i, n)
		}
	}

	if mesh.BaseColor != [4]float32{1, 0.8, 0, 1} {
		t.Errorf("BaseColor = %v", mesh.BaseColor)
	}
	if mesh.Texture != -1 {
		t.Errorf("Texture = %d, want -1", mesh.Texture)
	}

	if m.Min != [3]float32{0, 2, 0} || m.Max != [3]float32{1, 2, 1} {
		t.Errorf("bounds = %v..%v", m.Min, m.Max)
	}
	if size := m.Size(); size.X != 1 || size.Y != 0 || size.Z != 1 {
		t.Errorf("Size() = %v, want (1, 0, 1)", size)
	}
}

func TestLoadModelDefaultColor(t *testing.T) {
	path := writeTriangleGLB(t, t.TempDir(), "plain.glb", 0, false)

	m, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if got := m.Meshes[0].BaseColor; got != [4]float32{1, 1, 1, 1} {
		t.Errorf("BaseColor = %v, want white", got)
	}
}

func TestLoadModelErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadModel(filepath.Join(dir, "missing.glb")); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.glb")
	if err := os.WriteFile(garbage, []byte("not a model"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModel(garbage); err == nil {
		t.Error("expected error for garbage file")
	}
}

func TestManagerResolve(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()
	writeTriangleGLB(t, low, "duck.glb", 0, false)
	writeTriangleGLB(t, high, "duck.glb", 0, false)

	m := NewManager()
	m.AddSearchDir(low)
	m.AddSearchDir(high)

	got, err := m.Resolve("duck.glb")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(high, "duck.glb"); got != want {
		t.Errorf("Resolve = %s, want last added dir %s", got, want)
	}

	if _, err := m.Resolve("nope.glb"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(missing) err = %v, want ErrNotFound", err)
	}
	if _, err := m.Resolve(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(empty) err = %v, want ErrNotFound", err)
	}
}

func TestManagerCachesModels(t *testing.T) {
	dir := t.TempDir()
	writeTriangleGLB(t, dir, "duck.glb", 0, false)

	m := NewManager()
	m.AddSearchDir(dir)

	first, err := m.LoadModel("duck.glb")
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	second, err := m.LoadModel("duck.glb")
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if first != second {
		t.Error("second load should come from the cache")
	}

	hits, misses := m.Cache().Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats = %d hits, %d misses, want 1/1", hits, misses)
	}

	m.Close()
	if hits, misses := m.Cache().Stats(); hits != 0 || misses != 0 {
		t.Errorf("Close should reset stats, got %d/%d", hits, misses)
	}
}

func TestManagerLoadAsync(t *testing.T) {
	dir := t.TempDir()
	writeTriangleGLB(t, dir, "duck.glb", 0, false)

	m := NewManager()
	m.AddSearchDir(dir)

	res := <-m.Load("duck.glb")
	if res.Err != nil {
		t.Fatalf("Load: %v", res.Err)
	}
	if res.Model == nil || res.Path != "duck.glb" {
		t.Errorf("Result = %+v", res)
	}

	res = <-m.Load("missing.glb")
	if !errors.Is(res.Err, ErrNotFound) {
		t.Errorf("missing model err = %v, want ErrNotFound", res.Err)
	}
	if res.Model != nil {
		t.Error("failed load should carry no model")
	}
}

func TestFitTexture(t *testing.T) {
	tests := []struct {
		name       string
		w, h, max    int
		wantW, wantH int
	}{
		{"small passes through", 64, 32, 2048, 64, 32},
		{"wide downscale", 4096, 1024, 2048, 2048, 512},
		{"tall downscale", 100, 400, 200, 50, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := FitTexture(src, tt.max)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("size = %v, want %dx%d", got.Bounds().Size(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDecodeTexture(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.Set(1, 1, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeTexture(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeTexture: %v", err)
	}
	if r, _, _, a := img.At(1, 1).RGBA(); r>>8 != 255 || a>>8 != 255 {
		t.Errorf("pixel (1,1) = %v, want red", img.At(1, 1))
	}

	if _, err := DecodeTexture([]byte("nope")); err == nil {
		t.Error("expected error for invalid image data")
	}
}

func TestMeshInterleaved(t *testing.T) {
	m := Mesh{
		Positions: [][3]float32{{1, 2, 3}, {4, 5, 6}},
		Normals:   [][3]float32{{0, 0, 1}, {1, 0, 0}},
		UVs:       [][2]float32{{0.25, 0.75}},
	}

	got := m.Interleaved()
	want := []float32{
		1, 2, 3, 0, 0, 1, 0.25, 0.75,
		4, 5, 6, 1, 0, 0, 0, 0,
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
