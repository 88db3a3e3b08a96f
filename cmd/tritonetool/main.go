package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vearutop/tritone"
	"github.com/vearutop/tritone/internal/mcptools"
	"github.com/vearutop/tritone/internal/server"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "apply":
		err = runApply(os.Args[2:])
	case "detect":
		err = runDetect(os.Args[2:])
	case "color":
		err = runColor(os.Args[2:])
	case "presets":
		err = runPresets(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "mcp":
		err = runMCP(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fail(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: tritonetool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  apply   -in input.jpg [-out "+tritone.DownloadFilename+"] [-preset name] [-shadow #0D1E91] [-mid #E44C99] [-highlight #01A923] [-t-mid 1] [-w 1200] [-interp bilinear]")
	fmt.Fprintln(os.Stderr, "  detect  -in input.jpg")
	fmt.Fprintln(os.Stderr, "  color   [-lenient] #RRGGBB")
	fmt.Fprintln(os.Stderr, "  presets [-presets presets.yaml]")
	fmt.Fprintln(os.Stderr, "  serve   [-addr :8080] [-presets presets.yaml] [-max-upload-mb 32] [-w 1200] [-session-ttl 30m]")
	fmt.Fprintln(os.Stderr, "  mcp     [-presets presets.yaml]")
	fmt.Fprintln(os.Stderr, "Environment: ADDR, LOG_LEVEL, PRESETS_FILE, MAX_UPLOAD_MB, MAX_WIDTH, SESSION_TTL")
}

func runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image (JPEG, PNG, GIF, WebP, BMP, TIFF)")
	outPath := fs.String("out", tritone.DownloadFilename, "output PNG")
	presetsFile := fs.String("presets", env("PRESETS_FILE", ""), "presets YAML file")
	preset := fs.String("preset", "", "preset name")
	shadow := fs.String("shadow", "", "shadow color override")
	mid := fs.String("mid", "", "mid-tone color override")
	highlight := fs.String("highlight", "", "highlight color override")
	tMid := fs.Float64("t-mid", -1, "luminance breakpoint in [0, 1], negative keeps the preset value")
	width := fs.Int("w", envInt("MAX_WIDTH", 0), "max output width, 0 for 1200")
	interp := fs.String("interp", "bilinear", "downscale interpolation")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}

	presets, err := loadPresets(*presetsFile)
	if err != nil {
		return err
	}
	o := tritone.GradientOverride{Shadow: *shadow, Mid: *mid, Highlight: *highlight}
	if *tMid >= 0 {
		o.TMid = tMid
	}
	g, err := presets.Apply(*preset, o)
	if err != nil {
		return err
	}
	in, err := tritone.ParseInterpolation(*interp)
	if err != nil {
		return err
	}

	var res *tritone.ProcessResult
	err = tritone.ProcessImageFile(*inPath, *outPath, g, func(opt *tritone.ProcessOptions) {
		opt.MaxWidth = *width
		opt.Interpolation = in
		opt.OnResult = func(r *tritone.ProcessResult) { res = r }
	})
	if err != nil {
		var encErr *tritone.EncodeError
		if errors.As(err, &encErr) {
			fmt.Fprintln(os.Stderr, encErr.Hint())
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "%s %dx%d -> %s %dx%d\n",
		res.SourceFormat, res.SourceWidth, res.SourceHeight, *outPath, res.Width, res.Height)
	return nil
}

func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	info, err := tritone.DetectImageFile(*inPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s %dx%d\n", info.Format, info.Width, info.Height)
	return nil
}

func runColor(args []string) error {
	fs := flag.NewFlagSet("color", flag.ContinueOnError)
	lenient := fs.Bool("lenient", false, "accept malformed input")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one color")
	}

	var c tritone.Color
	if *lenient {
		c = tritone.ParseHexColorLenient(fs.Arg(0))
	} else {
		var err error
		if c, err = tritone.ParseHexColor(fs.Arg(0)); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stdout, "%s %d %d %d\n", c.Hex(), c.R, c.G, c.B)
	return nil
}

func runPresets(args []string) error {
	fs := flag.NewFlagSet("presets", flag.ContinueOnError)
	presetsFile := fs.String("presets", env("PRESETS_FILE", ""), "presets YAML file")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	presets, err := loadPresets(*presetsFile)
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(map[string]any{
		"default": presets.Default,
		"presets": presets.List(),
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(payload))
	return err
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", env("ADDR", ":8080"), "listen address")
	presetsFile := fs.String("presets", env("PRESETS_FILE", ""), "presets YAML file, reloaded on change")
	maxUploadMB := fs.Int("max-upload-mb", envInt("MAX_UPLOAD_MB", 32), "upload size limit in MiB")
	width := fs.Int("w", envInt("MAX_WIDTH", 1200), "max output width")
	interp := fs.String("interp", "bilinear", "downscale interpolation")
	ttl := fs.Duration("session-ttl", envDuration("SESSION_TTL", 30*time.Minute), "idle session expiry")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	in, err := tritone.ParseInterpolation(*interp)
	if err != nil {
		return err
	}

	logger := newLogger()
	srv, err := server.New(server.Config{
		Addr:           *addr,
		PresetsFile:    *presetsFile,
		MaxUploadBytes: int64(*maxUploadMB) << 20,
		MaxWidth:       *width,
		Interpolation:  in,
		SessionTTL:     *ttl,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func runMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	presetsFile := fs.String("presets", env("PRESETS_FILE", ""), "presets YAML file")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	presets, err := loadPresets(*presetsFile)
	if err != nil {
		return err
	}

	srv := mcp.NewServer(&mcp.Implementation{Name: "tritone", Version: version}, nil)
	mcptools.Register(srv, func() *tritone.PresetSet { return presets })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	newLogger().Info("mcp server starting", "transport", "stdio")
	return srv.Run(ctx, &mcp.StdioTransport{})
}

func loadPresets(path string) (*tritone.PresetSet, error) {
	if path == "" {
		return tritone.BuiltinPresets(), nil
	}
	return tritone.LoadPresetsFile(path)
}

// newLogger writes JSON to stderr so stdout stays free for command output and MCP framing.
func newLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(env("LOG_LEVEL", "info")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
