// Package renderer draws the sea scene with OpenGL.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/raging-sea/internal/assets"
	"github.com/Faultbox/raging-sea/internal/engine/debug"
	"github.com/Faultbox/raging-sea/internal/engine/framebuffer"
	"github.com/Faultbox/raging-sea/internal/engine/shader"
	"github.com/Faultbox/raging-sea/internal/engine/shaders"
	"github.com/Faultbox/raging-sea/internal/engine/water"
	"github.com/Faultbox/raging-sea/internal/logger"
	"github.com/Faultbox/raging-sea/internal/sea"
	"github.com/Faultbox/raging-sea/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	// Offscreen renders into a framebuffer texture instead of the window,
	// for hosts that show the scene inside a UI image.
	Offscreen bool
}

// Stats describes the last rendered frame.
type Stats struct {
	DrawCalls int
	Triangles int
	Width     int
	Height    int
}

// Renderer handles all OpenGL rendering. It implements sea.Renderer.
type Renderer struct {
	config Config

	surfaceProgram *shader.Program
	objectProgram  *shader.Program

	surface     *gpuMesh
	surfaceGrid *water.Grid

	models map[sea.ModelID]*gpuModel
	nextID sea.ModelID

	target *framebuffer.Framebuffer
	stats  Stats
}

var _ sea.Renderer = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Bool("offscreen", cfg.Offscreen))

	r := &Renderer{
		config: cfg,
		models: make(map[sea.ModelID]*gpuModel),
	}

	var err error
	r.surfaceProgram, err = shader.NewProgram("surface", shaders.SurfaceVertexShader, shaders.SurfaceFragmentShader)
	if err != nil {
		return nil, err
	}
	r.objectProgram, err = shader.NewProgram("object", shaders.ObjectVertexShader, shaders.ObjectFragmentShader)
	if err != nil {
		r.Close()
		return nil, err
	}

	if cfg.Offscreen {
		if r.target, err = framebuffer.New(1, 1); err != nil {
			r.Close()
			return nil, err
		}
	}

	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for id := range r.models {
		r.ReleaseModel(id)
	}
	if r.surface != nil {
		r.surface.destroy()
		r.surface = nil
	}
	if r.surfaceProgram != nil {
		r.surfaceProgram.Delete()
	}
	if r.objectProgram != nil {
		r.objectProgram.Delete()
	}
	if r.target != nil {
		r.target.Destroy()
		r.target = nil
	}
}

// UploadModel copies a parsed model to the GPU.
func (r *Renderer) UploadModel(m *assets.Model) (sea.ModelID, error) {
	if m == nil || len(m.Meshes) == 0 {
		return 0, fmt.Errorf("model has no meshes")
	}

	gm := uploadModel(m)
	r.nextID++
	r.models[r.nextID] = gm

	logger.Debug("model uploaded",
		zap.String("name", m.Name),
		zap.Uint32("id", uint32(r.nextID)),
		zap.Int("meshes", len(gm.meshes)),
		zap.Int("textures", len(gm.textures)))
	return r.nextID, nil
}

// ReleaseModel frees a model's GPU buffers. Unknown IDs are ignored.
func (r *Renderer) ReleaseModel(id sea.ModelID) {
	gm, ok := r.models[id]
	if !ok {
		return
	}
	gm.destroy()
	delete(r.models, id)
}

// Render draws one frame of s.
func (r *Renderer) Render(s *sea.Scene) error {
	if s.Surface != r.surfaceGrid {
		if r.surface != nil {
			r.surface.destroy()
		}
		r.surface = uploadGrid(s.Surface)
		r.surfaceGrid = s.Surface
	}

	width, height := s.Viewport.FramebufferSize()
	if width <= 0 || height <= 0 {
		return nil
	}

	if r.target != nil {
		r.target.Resize(width, height)
		restore := r.target.BindWithViewport()
		defer restore()
	} else {
		gl.Viewport(0, 0, int32(width), int32(height))
	}

	r.stats = Stats{Width: width, Height: height}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE) // the sea is seen from both sides
	gl.ClearColor(s.ClearColor[0], s.ClearColor[1], s.ClearColor[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := s.Camera.ViewMatrix()
	projection := s.Camera.ProjectionMatrix()

	r.drawSurface(s, view, projection)

	if st, ok := s.Object.(sea.Loaded); ok {
		r.drawObject(s, st.Object, view, projection)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("GL error 0x%x", code)
	}
	return nil
}

func (r *Renderer) setLights(p *shader.Program, s *sea.Scene) {
	p.SetVec3(shaders.UniformAmbientColor, s.Ambient.Color)
	p.SetFloat(shaders.UniformAmbientIntensity, s.Ambient.Intensity)
	p.SetVec3(shaders.UniformLightColor, s.Sun.Color)
	p.SetFloat(shaders.UniformLightIntensity, s.Sun.Intensity)
	p.SetVec3(shaders.UniformLightPosition, s.Sun.Position)
}

func (r *Renderer) drawSurface(s *sea.Scene, view, projection math.Mat4) {
	p := r.surfaceProgram
	p.Use()
	p.SetMat4(shaders.UniformModel, math.Identity())
	p.SetMat4(shaders.UniformView, view)
	p.SetMat4(shaders.UniformProjection, projection)
	p.Apply(s.Material)
	r.setLights(p, s)

	r.surface.draw()
	r.stats.DrawCalls++
	r.stats.Triangles += int(r.surface.count) / 3
}

func (r *Renderer) drawObject(s *sea.Scene, obj *sea.FloatingObject, view, projection math.Mat4) {
	gm, ok := r.models[obj.Model]
	if !ok {
		return
	}

	p := r.objectProgram
	p.Use()
	p.SetMat4(shaders.UniformModel, obj.Transform())
	p.SetMat4(shaders.UniformView, view)
	p.SetMat4(shaders.UniformProjection, projection)
	p.SetInt(shaders.UniformTexture, 0)
	r.setLights(p, s)

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ActiveTexture(gl.TEXTURE0)

	for _, m := range gm.meshes {
		p.SetVec4(shaders.UniformBaseColor, m.baseColor)
		if m.texture >= 0 && m.texture < len(gm.textures) {
			gl.BindTexture(gl.TEXTURE_2D, gm.textures[m.texture])
			p.SetInt(shaders.UniformUseTexture, 1)
		} else {
			gl.BindTexture(gl.TEXTURE_2D, 0)
			p.SetInt(shaders.UniformUseTexture, 0)
		}

		m.draw()
		r.stats.DrawCalls++
		r.stats.Triangles += int(m.count) / 3
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.CULL_FACE)
}

// ColorTexture returns the offscreen color texture, or 0 when rendering to
// the window.
func (r *Renderer) ColorTexture() uint32 {
	if r.target == nil {
		return 0
	}
	return r.target.ColorTexture()
}

// Stats returns counters for the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Capture reads back the last frame.
func (r *Renderer) Capture() (*image.RGBA, error) {
	if r.target != nil {
		return r.target.ReadImage(), nil
	}

	w, h := r.stats.Width, r.stats.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("nothing rendered yet")
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return debug.FlipRows(pixels, w, h), nil
}
