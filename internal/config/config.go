// Package config loads runtime settings from defaults, an optional YAML file,
// an optional .env file and MUDRA_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/lpernett/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/player"
)

// Sink names accepted in Config.Sink.
const (
	SinkKeys   = "keys"
	SinkPlugin = "plugin"
)

// EnvFile is the dotenv file read from the working directory.
const EnvFile = ".env"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings for a gesture control session.
type Config struct {
	CameraID      int             `yaml:"camera_id"`
	WindowTitle   string          `yaml:"window_title"`
	Mirror        bool            `yaml:"mirror"`
	Cooldown      time.Duration   `yaml:"cooldown"`
	Sink          string          `yaml:"sink"`
	PluginDir     string          `yaml:"plugin_dir"`
	PluginTimeout time.Duration   `yaml:"plugin_timeout"`
	History       string          `yaml:"history"` // sqlite journal path, empty to disable
	Player        player.Config   `yaml:"player"`
	Detector      detector.Config `yaml:"detector"`
	Log           logging.Config  `yaml:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		CameraID:      0,
		WindowTitle:   "Mudra Gesture Control",
		Mirror:        true,
		Cooldown:      control.DefaultCooldown,
		Sink:          SinkKeys,
		PluginDir:     "plugins",
		PluginTimeout: 5 * time.Second,
		Player:        player.DefaultConfig(),
		Detector:      detector.DefaultConfig(),
		Log:           logging.Config{Level: "info"},
	}
}

// Load reads the YAML file at path (skipped when empty), then .env and the
// process environment. The result is validated.
func Load(path string) (Config, error) {
	return load(path, EnvFile, os.LookupEnv)
}

func load(path, envFile string, getenv func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = values
		case !errors.Is(err, fs.ErrNotExist):
			return cfg, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := getenv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// applyEnv overrides fields from MUDRA_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"MUDRA_WINDOW_TITLE": &c.WindowTitle,
		"MUDRA_SINK":         &c.Sink,
		"MUDRA_PLUGIN_DIR":   &c.PluginDir,
		"MUDRA_HISTORY":      &c.History,
		"MUDRA_PLAYER_NAME":  &c.Player.Name,
		"MUDRA_PLAYER_URL":   &c.Player.URL,
		"MUDRA_LOG_LEVEL":    &c.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup("MUDRA_CAMERA_ID"); ok {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MUDRA_CAMERA_ID: %w", err)
		}
		c.CameraID = id
	}

	durations := map[string]*time.Duration{
		"MUDRA_COOLDOWN":       &c.Cooldown,
		"MUDRA_PLUGIN_TIMEOUT": &c.PluginTimeout,
	}
	for key, dst := range durations {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}

	if v, ok := lookup("MUDRA_MIRROR"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MUDRA_MIRROR: %w", err)
		}
		c.Mirror = b
	}

	return nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.CameraID < 0:
		return fmt.Errorf("%w: camera_id must not be negative", ErrInvalid)
	case c.Cooldown <= 0:
		return fmt.Errorf("%w: cooldown must be positive", ErrInvalid)
	case c.Sink != SinkKeys && c.Sink != SinkPlugin:
		return fmt.Errorf("%w: sink must be %q or %q, got %q", ErrInvalid, SinkKeys, SinkPlugin, c.Sink)
	case c.Sink == SinkPlugin && c.PluginDir == "":
		return fmt.Errorf("%w: plugin sink needs plugin_dir", ErrInvalid)
	case c.Sink == SinkPlugin && c.PluginTimeout <= 0:
		return fmt.Errorf("%w: plugin_timeout must be positive", ErrInvalid)
	case c.Detector.MaxHands < 1:
		return fmt.Errorf("%w: detector.max_hands must be at least 1", ErrInvalid)
	case !unit(c.Detector.MinConfidence) || !unit(c.Detector.MinTrackingConf):
		return fmt.Errorf("%w: detector confidences must be within [0,1]", ErrInvalid)
	case c.Player.Name == "" && c.Player.URL == "":
		return fmt.Errorf("%w: player needs a name or url", ErrInvalid)
	}
	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
