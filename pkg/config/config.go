// Package config loads and validates engine settings.
//
// Settings live in a TOML file with one table per concern:
//
//	[layout]
//	iterations = 300
//	seed = 42
//	link_distance = 160.0
//
//	[layout.radii]
//	phase = 90.0
//
//	[anchors]
//	phase_gap = 640.0
//
//	[cache]
//	enabled = true
//
//	[log]
//	level = "info"
//
// Keys missing from the file keep their [Default] values. Every loaded
// config is checked with struct-tag validation before it is returned.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/mindscape/pkg/core/content"
	"github.com/matzehuels/mindscape/pkg/core/layout"
	mserrors "github.com/matzehuels/mindscape/pkg/errors"
)

// Config holds all engine settings.
type Config struct {
	Layout  layout.Config `toml:"layout"`
	Anchors content.Lanes `toml:"anchors"`
	Cache   CacheConfig   `toml:"cache"`
	Log     LogConfig     `toml:"log"`
}

// CacheConfig controls layout memoization.
type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	MaxEntries int    `toml:"max_entries" validate:"gt=0"`
	MaxBytes   int64  `toml:"max_bytes" validate:"gt=0"`
	Dir        string `toml:"dir"` // on-disk cache for CLI runs; empty keeps it in memory
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout:  layout.DefaultConfig(),
		Anchors: content.DefaultLanes(),
		Cache:   CacheConfig{Enabled: true, MaxEntries: 1024, MaxBytes: 16 << 20},
		Log:     LogConfig{Level: "info"},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field constraint and that all float settings are
// finite.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
			}
			return mserrors.New(mserrors.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
		}
		return mserrors.Wrap(mserrors.ErrCodeInvalidConfig, err, "validate")
	}
	l := c.Layout
	for name, v := range map[string]float64{
		"repulsion":          l.Repulsion,
		"link_distance":      l.LinkDistance,
		"link_strength":      l.LinkStrength,
		"collision_strength": l.CollisionStrength,
		"center_strength":    l.CenterStrength,
		"velocity_decay":     l.VelocityDecay,
		"initial_radius":     l.InitialRadius,
		"default_radius":     l.DefaultRadius,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return mserrors.New(mserrors.ErrCodeInvalidConfig, "layout.%s must be finite", name)
		}
	}
	return nil
}

// Load reads a TOML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, mserrors.Wrap(mserrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads TOML from r on top of Default and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, mserrors.Wrap(mserrors.ErrCodeInvalidConfig, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, mserrors.New(mserrors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML to w.
func Write(cfg *Config, w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(cfg, f)
}
