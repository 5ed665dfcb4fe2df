// Package config loads shotplay settings from defaults, an optional config
// file, a .env file, SHOTPLAY_* environment variables and command-line flags
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/shotplay/audio"
	"github.com/lixenwraith/shotplay/engine"
	"github.com/lixenwraith/shotplay/input"
	"github.com/lixenwraith/shotplay/render/renderers"
	"github.com/lixenwraith/shotplay/shot"
	"github.com/lixenwraith/shotplay/sprite"
)

// EnvPrefix is prepended to every environment override, e.g.
// SHOTPLAY_SCREEN_SIZE=600
const EnvPrefix = "SHOTPLAY"

// Setting keys
const (
	KeyScreenSize   = "screen.size"
	KeyArcSegments  = "table.arc_segments"
	KeyDiamondSize  = "table.diamond_size"
	KeyColorCloth   = "colors.cloth"
	KeyColorRail    = "colors.rail"
	KeyColorEdge    = "colors.edge"
	KeyColorDiamond = "colors.diamond"
	KeyColorBalls   = "colors.balls"
	KeyTraceEnabled = "trace.enabled"
	KeyTraceLength  = "trace.length"
	KeyHoldWindow   = "input.hold_window"
	KeyAudioEnabled = "audio.enabled"
	KeyAudioVolume  = "audio.volume"
	KeyLogEnabled   = "log.enabled"
	KeyLogLevel     = "log.level"
	KeyLogDir       = "log.dir"
	KeyLogMaxSize   = "log.max_size"
	KeyDemoBalls    = "shot.demo_balls"
	KeyFallbackRate = "playback.fallback_rate"
	KeyKeys         = "keys"
	KeyDebug        = "debug"
	KeyDemo         = "demo"
	KeyConfigFile   = "config"
)

const defaultLogMaxSize = 10 * 1024 * 1024

// LogConfig controls the file logger
type LogConfig struct {
	Enabled bool
	Level   string
	Dir     string
	MaxSize int64
}

// Config is the resolved application configuration
type Config struct {
	Engine     engine.Config
	Audio      audio.AudioConfig
	Keys       *input.KeyTable
	HoldWindow time.Duration
	Log        LogConfig
	DemoBalls  int
	Debug      bool
	Demo       bool
}

// SetDefaults registers every setting's default on v
func SetDefaults(v *viper.Viper) {
	colors := renderers.DefaultTableColors()

	v.SetDefault(KeyScreenSize, 400)
	v.SetDefault(KeyArcSegments, renderers.DefaultArcSegments)
	v.SetDefault(KeyDiamondSize, 0.0095)

	v.SetDefault(KeyColorCloth, hex(colors.Cloth))
	v.SetDefault(KeyColorRail, hex(colors.Rail))
	v.SetDefault(KeyColorEdge, hex(colors.Edge))
	v.SetDefault(KeyColorDiamond, hex(colors.Diamond))

	v.SetDefault(KeyTraceEnabled, true)
	v.SetDefault(KeyTraceLength, sprite.DefaultTraceLength)
	v.SetDefault(KeyHoldWindow, input.DefaultHoldWindow)
	v.SetDefault(KeyFallbackRate, engine.FallbackRate)

	v.SetDefault(KeyAudioEnabled, true)
	v.SetDefault(KeyAudioVolume, 0.5)

	v.SetDefault(KeyLogEnabled, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogDir, "logs")
	v.SetDefault(KeyLogMaxSize, defaultLogMaxSize)

	v.SetDefault(KeyDemoBalls, shot.DefaultSynthOptions().Balls)
}

// Flags returns the command-line flag set; Bind attaches it to a viper instance
func Flags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("shotplay", pflag.ContinueOnError)
	flags.StringP(KeyConfigFile, "c", "", "config file (toml, json or yaml)")
	flags.BoolP(KeyDebug, "d", false, "enable debug logging to the log directory")
	flags.Bool(KeyDemo, false, "play a generated demo shot")
	flags.Int("size", 400, "pixels along the larger table axis")
	flags.Bool("no-trace", false, "start with ball traces hidden")
	flags.Bool("mute", false, "disable audio")
	return flags
}

// Bind connects parsed flags to their setting keys
func Bind(v *viper.Viper, flags *pflag.FlagSet) error {
	binds := map[string]string{
		KeyConfigFile: KeyConfigFile,
		KeyDebug:      KeyDebug,
		KeyDemo:       KeyDemo,
		KeyScreenSize: "size",
	}
	for key, name := range binds {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	// Negative switches only override when given
	if f := flags.Lookup("no-trace"); f != nil && f.Changed {
		v.Set(KeyTraceEnabled, false)
	}
	if f := flags.Lookup("mute"); f != nil && f.Changed {
		v.Set(KeyAudioEnabled, false)
	}
	return nil
}

// LoadEnvFile reads KEY=VALUE pairs from path into the process environment
// A missing file is not an error
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// New returns a viper instance with defaults and environment lookup set up
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file named by the config key and resolves
// all settings
func Load(v *viper.Viper) (*Config, error) {
	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return Resolve(v)
}

// Resolve builds a Config from the current settings in v
func Resolve(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HoldWindow: v.GetDuration(KeyHoldWindow),
		DemoBalls:  v.GetInt(KeyDemoBalls),
		Debug:      v.GetBool(KeyDebug),
		Demo:       v.GetBool(KeyDemo),
		Log: LogConfig{
			Enabled: v.GetBool(KeyLogEnabled),
			Level:   v.GetString(KeyLogLevel),
			Dir:     v.GetString(KeyLogDir),
			MaxSize: v.GetInt64(KeyLogMaxSize),
		},
	}
	if cfg.HoldWindow <= 0 {
		cfg.HoldWindow = input.DefaultHoldWindow
	}

	ec := engine.DefaultConfig()
	ec.Size = v.GetInt(KeyScreenSize)
	ec.ArcSegments = v.GetInt(KeyArcSegments)
	ec.DiamondSize = v.GetFloat64(KeyDiamondSize)
	ec.Trace = v.GetBool(KeyTraceEnabled)
	ec.TraceLength = v.GetInt(KeyTraceLength)
	ec.FallbackRate = v.GetFloat64(KeyFallbackRate)
	if ec.Size <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", KeyScreenSize, ec.Size)
	}
	if ec.ArcSegments < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", KeyArcSegments, ec.ArcSegments)
	}

	colorKeys := []struct {
		key string
		dst *color.NRGBA
	}{
		{KeyColorCloth, &ec.Colors.Cloth},
		{KeyColorRail, &ec.Colors.Rail},
		{KeyColorEdge, &ec.Colors.Edge},
		{KeyColorDiamond, &ec.Colors.Diamond},
	}
	for _, ck := range colorKeys {
		c, err := ParseColor(v.GetString(ck.key))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ck.key, err)
		}
		*ck.dst = c
	}

	if balls := v.GetStringMapString(KeyColorBalls); len(balls) > 0 {
		overrides := make(map[string]color.NRGBA, len(balls))
		for id, s := range balls {
			c, err := ParseColor(s)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", KeyColorBalls, id, err)
			}
			overrides[id] = c
		}
		ec.Palette = ec.Palette.With(overrides)
	}
	cfg.Engine = ec

	ac := audio.DefaultAudioConfig()
	ac.Enabled = v.GetBool(KeyAudioEnabled)
	ac.MasterVolume = v.GetFloat64(KeyAudioVolume)
	ac.Clamp()
	cfg.Audio = *ac

	cfg.Keys = input.DefaultKeyTable()
	if bindings := v.GetStringMapString(KeyKeys); len(bindings) > 0 {
		override, err := input.ParseBindings(bindings)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyKeys, err)
		}
		cfg.Keys = input.MergeKeyTable(cfg.Keys, override)
	}
	cfg.Engine.Help = cfg.Keys.Help()

	return cfg, nil
}

// ParseColor accepts "#rrggbb" or "#rgb", with or without the leading '#',
// and returns an opaque colour
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func hex(c color.NRGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}
