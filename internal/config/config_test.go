package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
log_level: debug
formats:
  - name: bold
    tag: b
    aliases: [strong]
    style: { property: font-weight, values: [bold, "700"] }
  - name: size
    style: { property: font-size }
    value: 1.5em
  - name: shout
    script: scripts/shout.js
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	require.Len(t, cfg.Formats, 3)

	bold := cfg.Formats[0].Spec()
	assert.Equal(t, "b", bold.Tag)
	assert.Equal(t, []string{"strong"}, bold.Aliases)
	assert.Equal(t, "font-weight", bold.StyleProperty)
	assert.Equal(t, []string{"bold", "700"}, bold.StyleValues)
	assert.False(t, bold.Valued())

	size := cfg.Formats[1].Spec()
	assert.True(t, size.Valued())
	assert.Equal(t, "1.5em", size.Value)

	assert.Equal(t, "scripts/shout.js", cfg.ScriptPath(cfg.Formats[2]))
	assert.Equal(t, "", cfg.ScriptPath(cfg.Formats[0]))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Formats)
	assert.NoError(t, cfg.Validate())

	parsed, err := Parse([]byte("formats: []"))
	require.NoError(t, err)
	assert.Equal(t, "info", parsed.LogLevel)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vibedit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, filepath.Join(dir, "scripts", "shout.js"), cfg.ScriptPath(cfg.Formats[2]))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"unknown level", "log_level: loud", "log_level"},
		{"missing name", "formats: [{tag: b}]", "formats[0].name"},
		{"duplicate", "formats: [{name: a, tag: b}, {name: a, tag: i}]", "formats[1] (a)"},
		{"nothing to apply", "formats: [{name: a}]", "formats[0] (a)"},
		{"style without value", "formats: [{name: a, style: {property: color}}]", "formats[0] (a)"},
		{"style without property", "formats: [{name: a, tag: b, style: {values: [x]}}]", "formats[0] (a).style.property"},
		{"script with tag", "formats: [{name: a, tag: b, script: a.js}]", "formats[0] (a)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("formats: {"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalid)
	})
}
