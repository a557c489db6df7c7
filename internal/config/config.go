// Package config loads padsynth settings from flags, PADSYNTH_* environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/padsynth/internal/gamepad"
)

const envPrefix = "PADSYNTH"

// ErrInvalid wraps every validation failure returned by Load and Validate.
var ErrInvalid = errors.New("invalid configuration")

const (
	SourceSDL = "sdl"
	SourceSim = "sim"
)

var logLevels = []string{"trace", "debug", "info", "warn", "warning", "error"}

type Config struct {
	Addr         string        `mapstructure:"addr"`
	PollInterval time.Duration `mapstructure:"poll-interval"`
	Source       string        `mapstructure:"source"`
	Match        string        `mapstructure:"match"`
	Tray         bool          `mapstructure:"tray"`
	Log          LogConfig     `mapstructure:"log"`
	SDL          SDLConfig     `mapstructure:"sdl"`
	Sim          SimConfig     `mapstructure:"sim"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max-size"`
	MaxBackups int    `mapstructure:"max-backups"`
	Compress   bool   `mapstructure:"compress"`
}

type SDLConfig struct {
	Deadzone float64 `mapstructure:"deadzone"`
}

type SimConfig struct {
	Pads   int           `mapstructure:"pads"`
	Period time.Duration `mapstructure:"period"`
}

// MatchMode returns the parsed match setting.
func (c *Config) MatchMode() gamepad.MatchMode {
	m, _ := gamepad.ParseMatchMode(c.Match)
	return m
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "config file (yaml, toml, json, ...)")
	fs.String("addr", ":8080", "HTTP listen address")
	fs.Duration("poll-interval", gamepad.DefaultPollInterval, "gamepad poll interval")
	fs.String("source", SourceSDL, "gamepad source: sdl or sim")
	fs.String("match", gamepad.MatchByIndex.String(), "snapshot matching: index or first")
	fs.Bool("tray", runtime.GOOS == "windows", "show the system tray icon")
	fs.String("log.level", "info", "log level: trace, debug, info, warn, error")
	fs.String("log.file", "", "also write logs to this file")
	fs.Int("log.max-size", 10, "log file size in MB before rotation")
	fs.Int("log.max-backups", 3, "rotated log files to keep")
	fs.Bool("log.compress", false, "gzip rotated log files")
	fs.Float64("sdl.deadzone", 0.05, "stick deadzone for known controllers")
	fs.Int("sim.pads", 1, "simulated gamepads")
	fs.Duration("sim.period", 4*time.Second, "simulated input cycle")
	return fs
}

// Load parses args and returns the validated configuration. It returns
// pflag.ErrHelp when help was requested.
func Load(args []string) (*Config, error) {
	fs := newFlagSet("padsynth")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll-interval must be positive, got %s", c.PollInterval))
	}
	switch c.Source {
	case SourceSDL:
		if c.SDL.Deadzone < 0 || c.SDL.Deadzone >= 1 {
			errs = append(errs, fmt.Errorf("sdl.deadzone must be in [0, 1), got %g", c.SDL.Deadzone))
		}
	case SourceSim:
		if c.Sim.Pads < 1 {
			errs = append(errs, fmt.Errorf("sim.pads must be at least 1, got %d", c.Sim.Pads))
		}
		if c.Sim.Period <= 0 {
			errs = append(errs, fmt.Errorf("sim.period must be positive, got %s", c.Sim.Period))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source %q (want %s or %s)", c.Source, SourceSDL, SourceSim))
	}
	if _, err := gamepad.ParseMatchMode(c.Match); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}
	if c.Log.File != "" && c.Log.MaxSizeMB < 1 {
		errs = append(errs, fmt.Errorf("log.max-size must be at least 1, got %d", c.Log.MaxSizeMB))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
