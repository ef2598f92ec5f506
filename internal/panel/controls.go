// Package panel describes the debug panel: which settings it exposes, in
// which folders, with what ranges. Widgets are drawn by the host; every
// change goes through a Control so the range clamp and the controller
// setter are applied the same way everywhere.
package panel

import (
	"math"

	"github.com/Faultbox/raging-sea/internal/sea"
	"github.com/Faultbox/raging-sea/internal/wave"
)

// Width is the panel width in points.
const Width = 340

// Folder names, in display order.
const (
	FolderLight = "Light"
	FolderWaves = "Waves"
	FolderColor = "Color"
)

// Kind selects the widget a control is drawn with.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindColor:
		return "color"
	default:
		return "unknown"
	}
}

// Control binds one widget to one setting.
type Control struct {
	Folder string
	Name   string
	Kind   Kind

	// Numeric range. Unused for colors.
	Min, Max, Step float64

	get      func(*sea.Settings) float64
	set      func(*sea.Controller, float64)
	getColor func(*sea.Settings) sea.Color
	setColor func(*sea.Controller, sea.Color)
}

// Value reads the numeric setting.
func (c *Control) Value(s *sea.Settings) float64 {
	if c.get == nil {
		return 0
	}
	return c.get(s)
}

// Set clamps and quantizes v, applies it and returns the applied value.
func (c *Control) Set(ctrl *sea.Controller, v float64) float64 {
	if c.set == nil {
		return 0
	}
	v = c.Clamp(v)
	c.set(ctrl, v)
	return v
}

// Clamp limits v to [Min, Max] and snaps it to the nearest step.
func (c *Control) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		v = c.Min
	}
	if c.Step > 0 {
		v = c.Min + math.Round((v-c.Min)/c.Step)*c.Step
		v = math.Round(v*1e9) / 1e9
	}
	return math.Max(c.Min, math.Min(c.Max, v))
}

// Color reads the color setting.
func (c *Control) Color(s *sea.Settings) sea.Color {
	if c.getColor == nil {
		return sea.Color{}
	}
	return c.getColor(s)
}

// SetColor applies a color.
func (c *Control) SetColor(ctrl *sea.Controller, col sea.Color) {
	if c.setColor != nil {
		c.setColor(ctrl, col)
	}
}

// Panel is the ordered control table.
type Panel struct {
	ctrl     *sea.Controller
	controls []*Control
}

// New builds the standard control table over ctrl.
func New(ctrl *sea.Controller) *Panel {
	return &Panel{ctrl: ctrl, controls: standardControls()}
}

// Controller returns the controller changes are applied through.
func (p *Panel) Controller() *sea.Controller {
	return p.ctrl
}

// Settings returns the live settings.
func (p *Panel) Settings() *sea.Settings {
	return p.ctrl.Settings()
}

// Controls returns every control in display order.
func (p *Panel) Controls() []*Control {
	return p.controls
}

// Folders returns folder names in display order.
func (p *Panel) Folders() []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range p.controls {
		if !seen[c.Folder] {
			seen[c.Folder] = true
			out = append(out, c.Folder)
		}
	}
	return out
}

// InFolder returns the controls of one folder.
func (p *Panel) InFolder(folder string) []*Control {
	var out []*Control
	for _, c := range p.controls {
		if c.Folder == folder {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the control named name, or nil.
func (p *Panel) Find(name string) *Control {
	for _, c := range p.controls {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SetValue sets a numeric control by name. It reports false for unknown
// names and color controls.
func (p *Panel) SetValue(name string, v float64) (float64, bool) {
	c := p.Find(name)
	if c == nil || c.Kind == KindColor {
		return 0, false
	}
	return c.Set(p.ctrl, v), true
}

func slider(folder, name string, lo, hi, step float64,
	get func(*sea.Settings) float64, set func(*sea.Controller, float64)) *Control {
	return &Control{Folder: folder, Name: name, Kind: KindFloat, Min: lo, Max: hi, Step: step, get: get, set: set}
}

func picker(folder, name string,
	get func(*sea.Settings) sea.Color, set func(*sea.Controller, sea.Color)) *Control {
	return &Control{Folder: folder, Name: name, Kind: KindColor, getColor: get, setColor: set}
}

func standardControls() []*Control {
	const fine = 0.001

	lightAxis := func(i int) (func(*sea.Settings) float64, func(*sea.Controller, float64)) {
		return func(s *sea.Settings) float64 { return s.Light.Position[i] },
			func(c *sea.Controller, v float64) {
				p := c.Settings().Light.Position
				p[i] = v
				c.SetLightPosition(p)
			}
	}
	lx, slx := lightAxis(0)
	ly, sly := lightAxis(1)
	lz, slz := lightAxis(2)

	return []*Control{
		slider(FolderLight, "lightIntensity", 0, 10, fine,
			func(s *sea.Settings) float64 { return s.Light.Intensity },
			(*sea.Controller).SetLightIntensity),
		slider(FolderLight, "lightX", -10, 10, fine, lx, slx),
		slider(FolderLight, "lightY", -10, 10, fine, ly, sly),
		slider(FolderLight, "lightZ", -10, 10, fine, lz, slz),
		slider(FolderLight, "ambientIntensity", 0, 10, fine,
			func(s *sea.Settings) float64 { return s.Ambient.Intensity },
			(*sea.Controller).SetAmbientIntensity),

		slider(FolderWaves, "BigWavesElevation", 0, 1, fine,
			func(s *sea.Settings) float64 { return s.Wave.BigAmplitude },
			(*sea.Controller).SetBigAmplitude),
		slider(FolderWaves, "BigWavesFrequencyX", 0, 10, fine,
			func(s *sea.Settings) float64 { return s.Wave.BigFrequency.X },
			func(c *sea.Controller, v float64) {
				c.SetBigFrequency(v, c.Settings().Wave.BigFrequency.Y)
			}),
		slider(FolderWaves, "BigWavesFrequencyY", 0, 10, fine,
			func(s *sea.Settings) float64 { return s.Wave.BigFrequency.Y },
			func(c *sea.Controller, v float64) {
				c.SetBigFrequency(c.Settings().Wave.BigFrequency.X, v)
			}),
		slider(FolderWaves, "BigWavesSpeed", 0, 10, fine,
			func(s *sea.Settings) float64 { return s.Wave.BigSpeed },
			(*sea.Controller).SetBigSpeed),
		slider(FolderWaves, "SmallWavesElevation", 0, 1, fine,
			func(s *sea.Settings) float64 { return s.Wave.SmallAmplitude },
			(*sea.Controller).SetSmallAmplitude),
		slider(FolderWaves, "SmallWavesFrequency", 0, 30, fine,
			func(s *sea.Settings) float64 { return s.Wave.SmallFrequency },
			(*sea.Controller).SetSmallFrequency),
		slider(FolderWaves, "SmallWavesSpeed", 0, 4, fine,
			func(s *sea.Settings) float64 { return s.Wave.SmallSpeed },
			(*sea.Controller).SetSmallSpeed),
		{
			Folder: FolderWaves, Name: "SmallWavesIterations", Kind: KindInt,
			Min: 0, Max: wave.MaxSmallIterations, Step: 1,
			get: func(s *sea.Settings) float64 { return float64(s.Wave.SmallIterations) },
			set: func(c *sea.Controller, v float64) { c.SetSmallIterations(int(v)) },
		},

		picker(FolderColor, "depthColor",
			func(s *sea.Settings) sea.Color { return s.DepthColor },
			(*sea.Controller).SetDepthColor),
		picker(FolderColor, "surfaceColor",
			func(s *sea.Settings) sea.Color { return s.SurfaceColor },
			(*sea.Controller).SetSurfaceColor),
		picker(FolderColor, "backgroundColor",
			func(s *sea.Settings) sea.Color { return s.BackgroundColor },
			(*sea.Controller).SetBackgroundColor),
		slider(FolderColor, "ColorOffset", 0, 1, fine,
			func(s *sea.Settings) float64 { return s.ColorOffset },
			(*sea.Controller).SetColorOffset),
		slider(FolderColor, "ColorMultiplier", 0, 10, fine,
			func(s *sea.Settings) float64 { return s.ColorMultiplier },
			(*sea.Controller).SetColorMultiplier),
	}
}
