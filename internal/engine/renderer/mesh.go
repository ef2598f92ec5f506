package renderer

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/raging-sea/internal/assets"
	"github.com/Faultbox/raging-sea/internal/engine/water"
)

// gpuMesh is an indexed VAO.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32

	baseColor [4]float32
	texture   int
}

func (m *gpuMesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
}

func (m *gpuMesh) destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	*m = gpuMesh{}
}

// newMesh uploads vertices and indices. attribs lists the component count
// of each vertex attribute in order.
func newMesh(vertices []float32, indices []uint32, attribs ...int32) *gpuMesh {
	m := &gpuMesh{count: int32(len(indices)), texture: -1}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	var stride int32
	for _, n := range attribs {
		stride += n
	}
	var offset uintptr
	for i, n := range attribs {
		gl.VertexAttribPointerWithOffset(uint32(i), n, gl.FLOAT, false, stride*4, offset)
		gl.EnableVertexAttribArray(uint32(i))
		offset += uintptr(n) * 4
	}

	gl.BindVertexArray(0)
	return m
}

func uploadGrid(g *water.Grid) *gpuMesh {
	return newMesh(g.Vertices, g.Indices, 3)
}

// gpuModel is an uploaded assets.Model.
type gpuModel struct {
	meshes   []*gpuMesh
	textures []uint32
}

func uploadModel(m *assets.Model) *gpuModel {
	gm := &gpuModel{}
	for _, img := range m.Textures {
		gm.textures = append(gm.textures, uploadTexture(img))
	}
	for i := range m.Meshes {
		src := &m.Meshes[i]
		if len(src.Positions) == 0 || len(src.Indices) == 0 {
			continue
		}
		mesh := newMesh(src.Interleaved(), src.Indices, 3, 3, 2)
		mesh.baseColor = src.BaseColor
		mesh.texture = src.Texture
		gm.meshes = append(gm.meshes, mesh)
	}
	return gm
}

func (gm *gpuModel) destroy() {
	for _, m := range gm.meshes {
		m.destroy()
	}
	if len(gm.textures) > 0 {
		gl.DeleteTextures(int32(len(gm.textures)), &gm.textures[0])
	}
	gm.meshes, gm.textures = nil, nil
}

func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}
