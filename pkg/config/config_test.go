package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mserrors "github.com/matzehuels/mindscape/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
[layout]
iterations = 50
seed = 7

[layout.radii]
phase = 120.0

[cache]
enabled = false

[log]
level = "debug"
`))
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Layout.Iterations)
	assert.Equal(t, uint64(7), cfg.Layout.Seed)
	assert.Equal(t, 120.0, cfg.Layout.Radii["phase"])
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched keys keep defaults.
	def := Default()
	assert.Equal(t, def.Layout.LinkDistance, cfg.Layout.LinkDistance)
	assert.Equal(t, def.Anchors, cfg.Anchors)
	assert.Equal(t, def.Cache.MaxEntries, cfg.Cache.MaxEntries)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"zero iterations", "[layout]\niterations = 0", "iterations"},
		{"strength above one", "[layout]\nlink_strength = 1.5", "link_strength"},
		{"negative radius", "[layout.radii]\nphase = -1.0", "radii"},
		{"bad log level", "[log]\nlevel = \"loud\"", "level"},
		{"unknown key", "[layout]\nspeed = 3", "unknown keys"},
		{"not toml", "[layout", "decode"},
		{"infinite repulsion", "[layout]\nrepulsion = inf", "repulsion"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.toml))
			require.Error(t, err)
			assert.True(t, mserrors.Is(err, mserrors.ErrCodeInvalidConfig), "code = %s", mserrors.GetCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, mserrors.Is(err, mserrors.ErrCodeFileNotFound))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "mindscape.toml")
	cfg := Default()
	cfg.Layout.Iterations = 123
	cfg.Log.Level = "warn"
	require.NoError(t, Save(cfg, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(Default(), &buf))
	out := buf.String()
	for _, section := range []string{"[layout]", "[layout.radii]", "[anchors]", "[cache]", "[log]"} {
		assert.Contains(t, out, section)
	}
	_, err := os.Stat("mindscape.toml")
	assert.True(t, os.IsNotExist(err), "Write must not touch the filesystem")
}
