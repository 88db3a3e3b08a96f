package tritone

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePresets = `
default: sunset
presets:
  - name: sunset
    shadow: "#2B1055"
    mid: "#D53369"
    highlight: "#FFD166"
    t_mid: 0.55
  - name: mono
    shadow: "#000000"
    mid: "#777777"
    highlight: "#FFFFFF"
`

func TestParsePresets(t *testing.T) {
	ps, err := ParsePresets([]byte(samplePresets))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	names := make([]string, 0, 3)
	for _, p := range ps.List() {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != DefaultPresetName+",sunset,mono" {
		t.Fatalf("unexpected presets %s", got)
	}

	g, ok := ps.Lookup("")
	if !ok || g.TMid != 0.55 || g.Mid != (Color{R: 0xD5, G: 0x33, B: 0x69}) {
		t.Fatalf("default lookup: %+v %v", g, ok)
	}

	g, ok = ps.Lookup("mono")
	if !ok || g.TMid != 1 {
		t.Fatalf("mono should default t_mid to 1, got %+v", g)
	}

	g, ok = ps.Lookup(DefaultPresetName)
	if !ok || g != DefaultGradient() {
		t.Fatalf("builtin preset missing: %+v", g)
	}

	if _, err := ps.Resolve("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestParsePresetsOverrideBuiltin(t *testing.T) {
	ps, err := ParsePresets([]byte(`
presets:
  - name: brave-pink-hero-green
    shadow: "#000000"
    mid: "#E44C99"
    highlight: "#01A923"
    t_mid: 0.5
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ps.List()) != 1 {
		t.Fatalf("expected the builtin to be replaced, got %d presets", len(ps.List()))
	}
	g, _ := ps.Lookup("")
	if g.Shadow != (Color{}) || g.TMid != 0.5 {
		t.Fatalf("override not applied: %+v", g)
	}
}

func TestParsePresetsErrors(t *testing.T) {
	cases := map[string]struct {
		yaml string
		is   error
	}{
		"unquoted color":  {yaml: "presets:\n  - name: a\n    shadow: #000000\n    mid: \"#111111\"\n    highlight: \"#222222\"\n", is: ErrInvalidColorFormat},
		"bad breakpoint":  {yaml: "presets:\n  - name: a\n    shadow: \"#000000\"\n    mid: \"#111111\"\n    highlight: \"#222222\"\n    t_mid: 1.5\n", is: ErrInvalidBreakpoint},
		"missing name":    {yaml: "presets:\n  - shadow: \"#000000\"\n"},
		"unknown default": {yaml: "default: ghost\n"},
		"not yaml":        {yaml: "presets: [\n"},
	}
	for name, c := range cases {
		_, err := ParsePresets([]byte(c.yaml))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if c.is != nil && !errors.Is(err, c.is) {
			t.Fatalf("%s: expected %v, got %v", name, c.is, err)
		}
	}
}

func TestLoadPresetsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte(samplePresets), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	ps, err := LoadPresetsFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ps.Default != "sunset" {
		t.Fatalf("default %q", ps.Default)
	}
}

func TestPresetApply(t *testing.T) {
	ps := BuiltinPresets()
	half := 0.5

	g, err := ps.Apply("", GradientOverride{Mid: "#FFFFFF", TMid: &half})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := DefaultGradient()
	want.Mid = Color{R: 255, G: 255, B: 255}
	want.TMid = 0.5
	if g != want {
		t.Fatalf("got %+v, want %+v", g, want)
	}

	if _, err := ps.Apply("", GradientOverride{Highlight: "green"}); !errors.Is(err, ErrInvalidColorFormat) {
		t.Fatalf("expected ErrInvalidColorFormat, got %v", err)
	}
	two := 2.0
	if _, err := ps.Apply("", GradientOverride{TMid: &two}); !errors.Is(err, ErrInvalidBreakpoint) {
		t.Fatalf("expected ErrInvalidBreakpoint, got %v", err)
	}
	if _, err := ps.Apply("missing", GradientOverride{}); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestLoadExamplePresets(t *testing.T) {
	set, err := LoadPresetsFile("presets.example.yaml")
	if err != nil {
		t.Fatalf("load example presets: %v", err)
	}
	if set.Default != DefaultPresetName || len(set.List()) != 3 {
		t.Fatalf("unexpected example set: default %q, %d presets", set.Default, len(set.List()))
	}
	if g, ok := set.Lookup("sepia"); !ok || g.TMid != 0.6 {
		t.Fatalf("sepia preset: %+v %v", g, ok)
	}
}
