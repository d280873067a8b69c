package palette

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/aircanvas/internal/geom"
)

// fileConfig is the YAML shape of a palette file.
//
//	center: {x: 0.5, y: 0.0}
//	inner_radius: 0.12
//	outer_radius: 0.22
//	entries:
//	  - name: RED
//	    color: "#FF0000"
//	    from: 0
//	    to: 90
//	  - name: CLEAR
//	    color: "#000000"
//	    from: 90
//	    to: 180
//	    clear: true
type fileConfig struct {
	Center      filePoint   `yaml:"center"`
	InnerRadius float64     `yaml:"inner_radius"`
	OuterRadius float64     `yaml:"outer_radius"`
	Entries     []fileEntry `yaml:"entries"`
}

type filePoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type fileEntry struct {
	Name  string  `yaml:"name"`
	Color string  `yaml:"color"`
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
	Clear bool    `yaml:"clear"`
}

// Load reads a palette from a YAML file. Geometry fields left at zero fall
// back to the default anchor and band. Overlapping sectors are not an
// error; HitTest order resolves them.
func Load(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette file: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse palette file: %w", err)
	}

	if len(cfg.Entries) == 0 {
		return nil, fmt.Errorf("palette file %s has no entries", path)
	}

	p := &Palette{
		Center:      geom.Point{X: cfg.Center.X, Y: cfg.Center.Y},
		InnerRadius: cfg.InnerRadius,
		OuterRadius: cfg.OuterRadius,
	}
	if p.Center == (geom.Point{}) {
		p.Center = geom.Point{X: 0.5, Y: 0}
	}
	if p.InnerRadius <= 0 {
		p.InnerRadius = defaultInnerRadius
	}
	if p.OuterRadius <= p.InnerRadius {
		p.OuterRadius = defaultOuterRadius
	}

	for i, e := range cfg.Entries {
		if e.Name == "" {
			return nil, fmt.Errorf("palette entry %d has no name", i)
		}
		c, err := parseHexColor(e.Color)
		if err != nil {
			return nil, fmt.Errorf("palette entry %s: %w", e.Name, err)
		}
		if e.To <= e.From {
			return nil, fmt.Errorf("palette entry %s: empty angle range [%v,%v]", e.Name, e.From, e.To)
		}
		p.Entries = append(p.Entries, Entry{
			Name:     e.Name,
			Color:    c,
			StartDeg: e.From,
			EndDeg:   e.To,
			Clear:    e.Clear,
		})
	}

	return p, nil
}

// parseHexColor parses "#RRGGBB" into an opaque RGBA color.
func parseHexColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
