package sea

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"#559dc3", "#559dc3", false},
		{"d6efff", "#d6efff", false},
		{"#FFF", "#ffffff", false},
		{" #000000 ", "#000000", false},
		{"ffffff, 0.5", "", true},
		{"#12345", "", true},
		{"#gggggg", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if tt.err {
				if err == nil {
					t.Errorf("expected error, got %v", c)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor: %v", err)
			}
			if c.Hex() != tt.want {
				t.Errorf("Hex = %s, want %s", c.Hex(), tt.want)
			}
		})
	}
}

func TestColorChannels(t *testing.T) {
	c := MustParseColor("#ff8000")
	if c.R != 1 || c.B != 0 {
		t.Errorf("channels = %+v", c)
	}
	if got := FromArray(c.Array()); got != c {
		t.Errorf("FromArray(Array()) = %v, want %v", got, c)
	}
	if got := (Color{R: 2, G: -1, B: 0.5}).Hex(); got != "#ff0080" {
		t.Errorf("out-of-range channels clamp: %s", got)
	}
}

func TestSettingsYAML(t *testing.T) {
	s := DefaultSettings()

	out, err := yaml.Marshal(&s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	text := string(out)
	for _, want := range []string{"depth_color:", "#559dc3", "big_amplitude: 0.2", "intensity: 1"} {
		if !strings.Contains(text, want) {
			t.Errorf("YAML missing %q:\n%s", want, text)
		}
	}

	var back Settings
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != s {
		t.Errorf("YAML lost data:\n got %+v\nwant %+v", back, s)
	}
}

func TestSettingsYAMLBadColor(t *testing.T) {
	var s Settings
	err := yaml.Unmarshal([]byte("depth_color: 'ffffff, 0.5'\n"), &s)
	if err == nil {
		t.Fatal("expected error for malformed color")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("error should carry the line: %v", err)
	}
}
