package tritone

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preset is a named gradient.
type Preset struct {
	Name     string   `json:"name" yaml:"name"`
	Gradient Gradient `json:"gradient" yaml:"gradient"`
}

// PresetSet is an ordered collection of presets with a default entry.
// The built-in preset is always present unless overridden by name.
type PresetSet struct {
	Default string
	presets []Preset
}

type presetsFile struct {
	Default string        `yaml:"default"`
	Presets []presetEntry `yaml:"presets"`
}

type presetEntry struct {
	Name      string   `yaml:"name"`
	Shadow    string   `yaml:"shadow"`
	Mid       string   `yaml:"mid"`
	Highlight string   `yaml:"highlight"`
	TMid      *float64 `yaml:"t_mid"`
}

// BuiltinPresets returns a set holding only the default gradient.
func BuiltinPresets() *PresetSet {
	return &PresetSet{
		Default: DefaultPresetName,
		presets: []Preset{{Name: DefaultPresetName, Gradient: DefaultGradient()}},
	}
}

// ParsePresets reads presets from YAML, for example:
//
//	default: sunset
//	presets:
//	  - name: sunset
//	    shadow: "#2B1055"
//	    mid: "#D53369"
//	    highlight: "#FFD166"
//	    t_mid: 0.55
//
// Colors must be quoted, an unquoted # starts a YAML comment.
// A missing t_mid defaults to 1.
func ParsePresets(data []byte) (*PresetSet, error) {
	var f presetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	ps := BuiltinPresets()
	for i, e := range f.Presets {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("preset #%d: missing name", i)
		}
		tMid := defaultTMid
		if e.TMid != nil {
			tMid = *e.TMid
		}
		g, err := ParseGradient(e.Shadow, e.Mid, e.Highlight, tMid)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		ps.set(Preset{Name: name, Gradient: g})
	}

	if f.Default != "" {
		if _, ok := ps.Lookup(f.Default); !ok {
			return nil, fmt.Errorf("default preset %q is not defined", f.Default)
		}
		ps.Default = f.Default
	}
	return ps, nil
}

// LoadPresetsFile reads a YAML presets file.
func LoadPresetsFile(path string) (*PresetSet, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	return ParsePresets(data)
}

func (ps *PresetSet) set(p Preset) {
	for i := range ps.presets {
		if ps.presets[i].Name == p.Name {
			ps.presets[i] = p
			return
		}
	}
	ps.presets = append(ps.presets, p)
}

// Lookup finds a preset by name, an empty name selects the default.
func (ps *PresetSet) Lookup(name string) (Gradient, bool) {
	if name == "" {
		name = ps.Default
	}
	for _, p := range ps.presets {
		if p.Name == name {
			return p.Gradient, true
		}
	}
	return Gradient{}, false
}

// List returns the presets in definition order.
func (ps *PresetSet) List() []Preset {
	return append([]Preset(nil), ps.presets...)
}

// ErrUnknownPreset is returned when a preset name is not defined.
var ErrUnknownPreset = errors.New("unknown preset")

// Resolve is Lookup returning ErrUnknownPreset for missing names.
func (ps *PresetSet) Resolve(name string) (Gradient, error) {
	g, ok := ps.Lookup(name)
	if !ok {
		return Gradient{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return g, nil
}

// GradientOverride replaces individual fields of a preset, empty values keep the preset's.
type GradientOverride struct {
	Shadow    string
	Mid       string
	Highlight string
	TMid      *float64
}

// Apply resolves the named preset and applies the override on top of it.
func (ps *PresetSet) Apply(name string, o GradientOverride) (Gradient, error) {
	g, err := ps.Resolve(name)
	if err != nil {
		return g, err
	}
	for _, f := range []struct {
		label string
		hex   string
		dst   *Color
	}{
		{"shadow", o.Shadow, &g.Shadow},
		{"mid", o.Mid, &g.Mid},
		{"highlight", o.Highlight, &g.Highlight},
	} {
		if f.hex == "" {
			continue
		}
		c, err := ParseHexColor(f.hex)
		if err != nil {
			return g, fmt.Errorf("%s: %w", f.label, err)
		}
		*f.dst = c
	}
	if o.TMid != nil {
		g.TMid = *o.TMid
	}
	return g, g.Validate()
}
