package sea

import (
	"github.com/Faultbox/raging-sea/internal/engine/shaders"
	"github.com/Faultbox/raging-sea/internal/wave"
)

// Controller applies settings changes. Each setter stores the value in
// Settings and makes one write downstream: a surface uniform or a scene
// light. The background color is the exception and also sets the clear
// color.
type Controller struct {
	scene *Scene
}

// NewController creates a controller for scene.
func NewController(scene *Scene) *Controller {
	return &Controller{scene: scene}
}

// Settings returns the live settings.
func (c *Controller) Settings() *Settings {
	return c.scene.Settings
}

// Apply replaces every setting, as when loading a saved file.
func (c *Controller) Apply(s Settings) {
	c.SetBigAmplitude(s.Wave.BigAmplitude)
	c.SetBigFrequency(s.Wave.BigFrequency.X, s.Wave.BigFrequency.Y)
	c.SetBigSpeed(s.Wave.BigSpeed)
	c.SetSmallAmplitude(s.Wave.SmallAmplitude)
	c.SetSmallFrequency(s.Wave.SmallFrequency)
	c.SetSmallSpeed(s.Wave.SmallSpeed)
	c.SetSmallIterations(s.Wave.SmallIterations)

	c.SetDepthColor(s.DepthColor)
	c.SetSurfaceColor(s.SurfaceColor)
	c.SetBackgroundColor(s.BackgroundColor)
	c.SetColorOffset(s.ColorOffset)
	c.SetColorMultiplier(s.ColorMultiplier)

	c.SetAmbientColor(s.Ambient.Color)
	c.SetAmbientIntensity(s.Ambient.Intensity)
	c.SetLightColor(s.Light.Color)
	c.SetLightIntensity(s.Light.Intensity)
	c.SetLightPosition(s.Light.Position)
}

// Waves

// SetBigAmplitude sets the swell height.
func (c *Controller) SetBigAmplitude(v float64) {
	c.scene.Settings.Wave.BigAmplitude = v
	c.scene.Material.SetFloat(shaders.UniformBigWavesElevation, float32(v))
}

// SetBigFrequency sets the swell frequency along world X and Z.
func (c *Controller) SetBigFrequency(x, y float64) {
	c.scene.Settings.Wave.BigFrequency.X = x
	c.scene.Settings.Wave.BigFrequency.Y = y
	c.scene.Material.SetVec2(shaders.UniformBigWavesFrequency, float32(x), float32(y))
}

// SetBigSpeed sets how fast the swell moves.
func (c *Controller) SetBigSpeed(v float64) {
	c.scene.Settings.Wave.BigSpeed = v
	c.scene.Material.SetFloat(shaders.UniformBigWavesSpeed, float32(v))
}

// SetSmallAmplitude sets the chop height.
func (c *Controller) SetSmallAmplitude(v float64) {
	c.scene.Settings.Wave.SmallAmplitude = v
	c.scene.Material.SetFloat(shaders.UniformSmallWavesElevation, float32(v))
}

// SetSmallFrequency sets the base chop frequency.
func (c *Controller) SetSmallFrequency(v float64) {
	c.scene.Settings.Wave.SmallFrequency = v
	c.scene.Material.SetFloat(shaders.UniformSmallWavesFrequency, float32(v))
}

// SetSmallSpeed sets how fast the chop moves.
func (c *Controller) SetSmallSpeed(v float64) {
	c.scene.Settings.Wave.SmallSpeed = v
	c.scene.Material.SetFloat(shaders.UniformSmallWavesSpeed, float32(v))
}

// SetSmallIterations sets the small-wave octave count, clamped to
// [0, wave.MaxSmallIterations].
func (c *Controller) SetSmallIterations(n int) {
	n = max(0, min(n, wave.MaxSmallIterations))
	c.scene.Settings.Wave.SmallIterations = n
	c.scene.Material.SetInt(shaders.UniformSmallWavesIterations, int32(n))
}

// Colors

// SetDepthColor sets the color of the troughs.
func (c *Controller) SetDepthColor(col Color) {
	c.scene.Settings.DepthColor = col
	c.scene.Material.SetVec3(shaders.UniformDepthColor, col.Array())
}

// SetSurfaceColor sets the color of the crests.
func (c *Controller) SetSurfaceColor(col Color) {
	c.scene.Settings.SurfaceColor = col
	c.scene.Material.SetVec3(shaders.UniformSurfaceColor, col.Array())
}

// SetBackgroundColor sets both the edge-fade uniform and the clear color,
// so the surface edge blends into the background.
func (c *Controller) SetBackgroundColor(col Color) {
	c.scene.Settings.BackgroundColor = col
	c.scene.Material.SetVec3(shaders.UniformBackgroundColor, col.Array())
	c.scene.ClearColor = col.Array()
}

// SetColorOffset shifts the depth-to-surface color mix.
func (c *Controller) SetColorOffset(v float64) {
	c.scene.Settings.ColorOffset = v
	c.scene.Material.SetFloat(shaders.UniformColorOffset, float32(v))
}

// SetColorMultiplier scales elevation before the color mix.
func (c *Controller) SetColorMultiplier(v float64) {
	c.scene.Settings.ColorMultiplier = v
	c.scene.Material.SetFloat(shaders.UniformColorMultiplier, float32(v))
}

// Lights

// SetAmbientColor sets the ambient light color.
func (c *Controller) SetAmbientColor(col Color) {
	c.scene.Settings.Ambient.Color = col
	c.scene.Ambient.Color = col.Array()
}

// SetAmbientIntensity sets the ambient light intensity.
func (c *Controller) SetAmbientIntensity(v float64) {
	c.scene.Settings.Ambient.Intensity = v
	c.scene.Ambient.Intensity = float32(v)
}

// SetLightColor sets the directional light color.
func (c *Controller) SetLightColor(col Color) {
	c.scene.Settings.Light.Color = col
	c.scene.Sun.Color = col.Array()
}

// SetLightIntensity sets the directional light intensity.
func (c *Controller) SetLightIntensity(v float64) {
	c.scene.Settings.Light.Intensity = v
	c.scene.Sun.Intensity = float32(v)
}

// SetLightPosition moves the directional light. It shines toward the origin.
func (c *Controller) SetLightPosition(p [3]float64) {
	c.scene.Settings.Light.Position = p
	c.scene.Sun.Position = [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
}
