// Package mcptools exposes the tritone filter as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vearutop/tritone"
)

// Register adds the tritone tools to srv. Presets are fetched on every call so
// a reloaded set is picked up.
func Register(srv *mcp.Server, presets func() *tritone.PresetSet) {
	if presets == nil {
		presets = tritone.BuiltinPresets
	}
	registerApplyTool(srv, presets)
	registerParseColorTool(srv)
	registerPresetsTool(srv, presets)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// addTool decodes arguments into a fresh A and serializes the handler result as JSON text.
func addTool[A any](srv *mcp.Server, tool *mcp.Tool, handle func(ctx context.Context, args *A) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var (
			args A
			res  mcp.CallToolResult
		)
		if raw := req.Params.Arguments; len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				res.SetError(fmt.Errorf("invalid arguments: %w", err))
				return &res, nil
			}
		}

		out, err := handle(ctx, &args)
		if err != nil {
			res.SetError(err)
			return &res, nil
		}

		data, err := json.Marshal(out)
		if err != nil {
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		res.Content = []mcp.Content{&mcp.TextContent{Text: string(data)}}
		return &res, nil
	})
}

type applyArgs struct {
	In            string   `json:"in"`
	Out           string   `json:"out"`
	Preset        string   `json:"preset"`
	Shadow        string   `json:"shadow"`
	Mid           string   `json:"mid"`
	Highlight     string   `json:"highlight"`
	TMid          *float64 `json:"t_mid"`
	MaxWidth      int      `json:"max_width"`
	Interpolation string   `json:"interpolation"`
}

type applyResult struct {
	Out          string           `json:"out"`
	Width        int              `json:"width"`
	Height       int              `json:"height"`
	SourceFormat string           `json:"source_format"`
	SourceWidth  int              `json:"source_width"`
	SourceHeight int              `json:"source_height"`
	Gradient     tritone.Gradient `json:"gradient"`
}

func registerApplyTool(srv *mcp.Server, presets func() *tritone.PresetSet) {
	color := func(desc string) map[string]any {
		return map[string]any{"type": "string", "description": desc + " color as #RRGGBB"}
	}
	tool := &mcp.Tool{
		Name: "tritone_apply",
		Description: "Recolor an image file with a shadow/mid/highlight tritone gradient and write a PNG. " +
			"Unset colors come from the preset (default " + tritone.DefaultPresetName + ").",
		InputSchema: inputSchema(map[string]any{
			"in":            map[string]any{"type": "string", "description": "Input image path (JPEG, PNG, GIF, WebP, BMP, TIFF)"},
			"out":           map[string]any{"type": "string", "description": "Output PNG path, defaults to " + tritone.DownloadFilename + " next to the input"},
			"preset":        map[string]any{"type": "string", "description": "Preset name"},
			"shadow":        color("Shadow"),
			"mid":           color("Mid-tone"),
			"highlight":     color("Highlight"),
			"t_mid":         map[string]any{"type": "number", "minimum": 0, "maximum": 1, "description": "Luminance breakpoint of the mid stop"},
			"max_width":     map[string]any{"type": "integer", "minimum": 1, "description": "Downscale wider images to this width"},
			"interpolation": map[string]any{"type": "string", "description": "Resampling kernel: nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3"},
		}, []string{"in"}),
	}

	addTool(srv, tool, func(_ context.Context, a *applyArgs) (any, error) {
		if a.In == "" {
			return nil, errors.New("in is required")
		}
		g, err := presets().Apply(a.Preset, tritone.GradientOverride{
			Shadow:    a.Shadow,
			Mid:       a.Mid,
			Highlight: a.Highlight,
			TMid:      a.TMid,
		})
		if err != nil {
			return nil, err
		}

		interp := tritone.InterpolationBilinear
		if a.Interpolation != "" {
			if interp, err = tritone.ParseInterpolation(a.Interpolation); err != nil {
				return nil, err
			}
		}

		out := a.Out
		if out == "" {
			out = filepath.Join(filepath.Dir(a.In), tritone.DownloadFilename)
		}

		var result *tritone.ProcessResult
		err = tritone.ProcessImageFile(a.In, out, g, func(o *tritone.ProcessOptions) {
			if a.MaxWidth > 0 {
				o.MaxWidth = a.MaxWidth
			}
			o.Interpolation = interp
			o.OnResult = func(r *tritone.ProcessResult) { result = r }
		})
		if err != nil {
			var encErr *tritone.EncodeError
			if errors.As(err, &encErr) {
				return nil, fmt.Errorf("%w (%s)", err, encErr.Hint())
			}
			return nil, err
		}

		return applyResult{
			Out:          out,
			Width:        result.Width,
			Height:       result.Height,
			SourceFormat: result.SourceFormat,
			SourceWidth:  result.SourceWidth,
			SourceHeight: result.SourceHeight,
			Gradient:     g,
		}, nil
	})
}

type parseColorArgs struct {
	Hex     string `json:"hex"`
	Lenient bool   `json:"lenient"`
}

type colorResult struct {
	Hex string `json:"hex"`
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
}

func registerParseColorTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "tritone_parse_color",
		Description: "Parse a #RRGGBB color into channels. With lenient, malformed input is read like a permissive hex parser instead of failing.",
		InputSchema: inputSchema(map[string]any{
			"hex":     map[string]any{"type": "string", "description": "Color such as #E44C99"},
			"lenient": map[string]any{"type": "boolean", "description": "Accept malformed input"},
		}, []string{"hex"}),
	}

	addTool(srv, tool, func(_ context.Context, a *parseColorArgs) (any, error) {
		var (
			c   tritone.Color
			err error
		)
		if a.Lenient {
			c = tritone.ParseHexColorLenient(a.Hex)
		} else if c, err = tritone.ParseHexColor(a.Hex); err != nil {
			return nil, err
		}
		return colorResult{Hex: c.Hex(), R: c.R, G: c.G, B: c.B}, nil
	})
}

type presetsResult struct {
	Default string           `json:"default"`
	Presets []tritone.Preset `json:"presets"`
}

func registerPresetsTool(srv *mcp.Server, presets func() *tritone.PresetSet) {
	tool := &mcp.Tool{
		Name:        "tritone_presets",
		Description: "List the available gradient presets.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	addTool(srv, tool, func(_ context.Context, _ *struct{}) (any, error) {
		set := presets()
		return presetsResult{Default: set.Default, Presets: set.List()}, nil
	})
}
