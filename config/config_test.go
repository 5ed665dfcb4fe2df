package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/shotplay/input"
	"github.com/lixenwraith/shotplay/render/renderers"
)

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve(New())
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if cfg.Engine.Size != 400 {
		t.Errorf("Size = %d, want 400", cfg.Engine.Size)
	}
	if cfg.Engine.ArcSegments != 30 {
		t.Errorf("ArcSegments = %d, want 30", cfg.Engine.ArcSegments)
	}
	if cfg.Engine.DiamondSize != 0.0095 {
		t.Errorf("DiamondSize = %v, want 0.0095", cfg.Engine.DiamondSize)
	}
	if cfg.Engine.Colors != renderers.DefaultTableColors() {
		t.Errorf("Colors = %+v, want defaults", cfg.Engine.Colors)
	}
	if !cfg.Engine.Trace || cfg.Engine.TraceLength != 100 {
		t.Errorf("trace = %v/%d, want enabled/100", cfg.Engine.Trace, cfg.Engine.TraceLength)
	}
	if cfg.HoldWindow != 60*time.Millisecond {
		t.Errorf("HoldWindow = %v, want 60ms", cfg.HoldWindow)
	}
	if !cfg.Audio.Enabled || cfg.Audio.MasterVolume != 0.5 {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.Log.Enabled || cfg.Log.Level != "info" || cfg.Log.Dir != "logs" || cfg.Log.MaxSize != 10485760 {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.DemoBalls != 10 {
		t.Errorf("DemoBalls = %d, want 10", cfg.DemoBalls)
	}
	if len(cfg.Engine.Help) == 0 {
		t.Error("help lines should be filled from the key table")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shotplay.toml")
	body := `
[screen]
size = 600

[colors]
cloth = "#102030"

[colors.balls]
cue = "#ff0000"

[keys]
x = "quit"
Up = "none"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	v := New()
	v.Set(KeyConfigFile, path)
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Engine.Size != 600 {
		t.Errorf("Size = %d, want 600", cfg.Engine.Size)
	}
	if want := (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}); cfg.Engine.Colors.Cloth != want {
		t.Errorf("Cloth = %v, want %v", cfg.Engine.Colors.Cloth, want)
	}
	if want := (color.NRGBA{R: 255, A: 255}); cfg.Engine.Palette.Color("cue") != want {
		t.Errorf("cue colour = %v, want %v", cfg.Engine.Palette.Color("cue"), want)
	}
	if cfg.Keys.Runes['x'] != input.ActionQuit {
		t.Errorf("x bound to %v, want quit", cfg.Keys.Runes['x'])
	}
	if _, ok := cfg.Keys.Keys[tcell.KeyUp]; ok {
		t.Error("Up binding should be removed")
	}
}

func TestLoadMissingFile(t *testing.T) {
	v := New()
	v.Set(KeyConfigFile, filepath.Join(t.TempDir(), "absent.toml"))
	if _, err := Load(v); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SHOTPLAY_TRACE_LENGTH", "25")
	t.Setenv("SHOTPLAY_INPUT_HOLD_WINDOW", "90ms")

	cfg, err := Resolve(New())
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Engine.TraceLength != 25 {
		t.Errorf("TraceLength = %d, want 25", cfg.Engine.TraceLength)
	}
	if cfg.HoldWindow != 90*time.Millisecond {
		t.Errorf("HoldWindow = %v, want 90ms", cfg.HoldWindow)
	}
}

func TestFlags(t *testing.T) {
	flags := Flags()
	if err := flags.Parse([]string{"--size", "300", "--mute", "--no-trace", "-d"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	v := New()
	if err := Bind(v, flags); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	cfg, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if cfg.Engine.Size != 300 {
		t.Errorf("Size = %d, want 300", cfg.Engine.Size)
	}
	if cfg.Audio.Enabled {
		t.Error("--mute should disable audio")
	}
	if cfg.Engine.Trace {
		t.Error("--no-trace should disable traces")
	}
	if !cfg.Debug {
		t.Error("-d should enable debug")
	}
}

func TestResolveRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"colour", KeyColorRail, "not-a-colour"},
		{"ball colour", KeyColorBalls, map[string]any{"cue": "#12"}},
		{"action", KeyKeys, map[string]any{"x": "fly"}},
		{"size", KeyScreenSize, 0},
		{"arcs", KeyArcSegments, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Set(tt.key, tt.value)
			if _, err := Resolve(v); err == nil {
				t.Errorf("expected error for %s=%v", tt.key, tt.value)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#2f7d4f", color.NRGBA{R: 0x2f, G: 0x7d, B: 0x4f, A: 255}},
		{"2f7d4f", color.NRGBA{R: 0x2f, G: 0x7d, B: 0x4f, A: 255}},
		{" #FFFFFF ", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SHOTPLAY_SHOT_DEMO_BALLS=4\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("SHOTPLAY_SHOT_DEMO_BALLS") })

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error: %v", err)
	}
	cfg, err := Resolve(New())
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.DemoBalls != 4 {
		t.Errorf("DemoBalls = %d, want 4", cfg.DemoBalls)
	}
}
