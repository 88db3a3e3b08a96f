package mcptools

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vearutop/tritone"
)

var testImpl = &mcp.Implementation{Name: "tritone-test", Version: "0.1.0"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testImpl, nil)
	Register(srv, nil)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("CallTool(%s): empty content", name)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text, result.IsError
}

func TestPresets(t *testing.T) {
	session := mcpSession(t)

	text, isErr := callTool(t, session, "tritone_presets", map[string]any{})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	var resp presetsResult
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Default != tritone.DefaultPresetName || len(resp.Presets) != 1 ||
		resp.Presets[0].Gradient != tritone.DefaultGradient() {
		t.Fatalf("unexpected presets %+v", resp)
	}
}

func TestParseColor(t *testing.T) {
	session := mcpSession(t)

	text, isErr := callTool(t, session, "tritone_parse_color", map[string]any{"hex": "#e44c99"})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	var c colorResult
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c != (colorResult{Hex: "#E44C99", R: 228, G: 76, B: 153}) {
		t.Fatalf("unexpected color %+v", c)
	}

	text, isErr = callTool(t, session, "tritone_parse_color", map[string]any{"hex": "#ZZ0000"})
	if !isErr || !strings.Contains(text, "invalid color format") {
		t.Fatalf("expected invalid color error, got %q", text)
	}

	text, isErr = callTool(t, session, "tritone_parse_color", map[string]any{"hex": "#ZZ0000", "lenient": true})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Hex != "#000000" {
		t.Fatalf("lenient parse of garbage: %+v", c)
	}
}

func TestApply(t *testing.T) {
	session := mcpSession(t)
	dir := t.TempDir()

	img := image.NewNRGBA(image.Rect(0, 0, 40, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 40; x++ {
			v := uint8(x * 6)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	in := filepath.Join(dir, "in.png")
	f, err := os.Create(in)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	text, isErr := callTool(t, session, "tritone_apply", map[string]any{
		"in":        in,
		"t_mid":     0.5,
		"max_width": 20,
	})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	var res applyResult
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Out != filepath.Join(dir, tritone.DownloadFilename) {
		t.Fatalf("unexpected output path %q", res.Out)
	}
	if res.Width != 20 || res.Height != 5 || res.SourceWidth != 40 || res.SourceFormat != "png" {
		t.Fatalf("unexpected geometry %+v", res)
	}
	if res.Gradient.TMid != 0.5 || res.Gradient.Mid != tritone.BravePink {
		t.Fatalf("unexpected gradient %+v", res.Gradient)
	}

	out, err := os.Open(res.Out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer out.Close()
	cfg, err := png.DecodeConfig(out)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if cfg.Width != 20 || cfg.Height != 5 {
		t.Fatalf("output is %dx%d", cfg.Width, cfg.Height)
	}
}

func TestApplyErrors(t *testing.T) {
	session := mcpSession(t)
	missing := filepath.Join(t.TempDir(), "missing.png")

	for _, c := range []struct {
		args map[string]any
		want string
	}{
		{map[string]any{}, "in is required"},
		{map[string]any{"in": missing}, "load image"},
		{map[string]any{"in": missing, "preset": "ghost"}, "unknown preset"},
		{map[string]any{"in": missing, "t_mid": 2}, "breakpoint"},
		{map[string]any{"in": missing, "highlight": "#12"}, "invalid color format"},
		{map[string]any{"in": missing, "interpolation": "magic"}, "unknown interpolation"},
	} {
		text, isErr := callTool(t, session, "tritone_apply", c.args)
		if !isErr || !strings.Contains(text, c.want) {
			t.Fatalf("args %v: expected error containing %q, got %q", c.args, c.want, text)
		}
	}
}
