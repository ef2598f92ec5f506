// Package sea composes the water scene: tunable settings, the controller
// that pushes them into shader uniforms and lights, the scene itself and
// the per-frame loop that animates it.
package sea

import "github.com/Faultbox/raging-sea/internal/wave"

// AmbientLight is an unshadowed light applied equally everywhere.
type AmbientLight struct {
	Color     Color   `yaml:"color"`
	Intensity float64 `yaml:"intensity"`
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Color     Color      `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
	Position  [3]float64 `yaml:"position,flow"`
}

// Settings holds every tunable of the scene. The panel reads it and the
// Controller writes it, so both see the same values.
type Settings struct {
	Wave wave.Params `yaml:"wave"`

	DepthColor      Color   `yaml:"depth_color"`
	SurfaceColor    Color   `yaml:"surface_color"`
	BackgroundColor Color   `yaml:"background_color"`
	ColorOffset     float64 `yaml:"color_offset"`
	ColorMultiplier float64 `yaml:"color_multiplier"`

	Ambient AmbientLight     `yaml:"ambient"`
	Light   DirectionalLight `yaml:"light"`
}

// DefaultSettings returns the stock look.
func DefaultSettings() Settings {
	return Settings{
		Wave: wave.DefaultParams(),

		DepthColor:      MustParseColor("#559dc3"),
		SurfaceColor:    MustParseColor("#d6efff"),
		BackgroundColor: MustParseColor("#000000"),
		ColorOffset:     0.08,
		ColorMultiplier: 5,

		// Color and intensity are separate fields; the intensity is not
		// folded into the color.
		Ambient: AmbientLight{
			Color:     MustParseColor("#ffffff"),
			Intensity: 1.0,
		},
		Light: DirectionalLight{
			Color:     MustParseColor("#ffffff"),
			Intensity: 6,
			Position:  [3]float64{0, 6.5, 2.5},
		},
	}
}
