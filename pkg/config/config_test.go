package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GAUSSNB_CONFIG_PATH", t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 1000, cfg.Data.Samples)
	assert.Equal(t, 10, cfg.Data.Features)
	assert.Equal(t, 2, cfg.Data.Classes)
	assert.Equal(t, uint64(123), cfg.Data.Seed)
	assert.Equal(t, 0.2, cfg.Split.TestSize)
	assert.False(t, cfg.Balance.Enabled)
	assert.Equal(t, 1, cfg.Model.NJobs)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gaussnb.yaml")
	content := "data:\n  samples: 300\n  seed: 7\nmodel:\n  strict: true\nsplit:\n  test_size: 0.3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("GAUSSNB_SPLIT_TEST_SIZE", "0.25")
	t.Setenv("GAUSSNB_BALANCE_ENABLED", "true")

	v := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("samples", 0, "")
	require.NoError(t, BindFlags(v, flags, map[string]string{"data.samples": "samples"}))
	require.NoError(t, flags.Parse([]string{"--samples", "500"}))

	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Data.Samples, "flag beats file")
	assert.Equal(t, uint64(7), cfg.Data.Seed, "file beats default")
	assert.True(t, cfg.Model.Strict)
	assert.Equal(t, 0.25, cfg.Split.TestSize, "env beats file")
	assert.True(t, cfg.Balance.Enabled)
}

func TestLoadSearchPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gaussnb.json"), []byte(`{"data":{"features":4}}`), 0o600))
	t.Setenv("GAUSSNB_CONFIG_PATH", dir)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Data.Features)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("GAUSSNB_CONFIG_PATH", t.TempDir())
	t.Setenv("GAUSSNB_LOG_FORMAT", "xml")
	_, err = Load(New(), "")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	v := New()
	assert.Error(t, BindFlags(v, pflag.NewFlagSet("x", pflag.ContinueOnError), map[string]string{"data.seed": "seed"}))
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Log:   LogConfig{Level: "info", Format: "json"},
			Data:  DataConfig{Samples: 10, Features: 2, Classes: 2},
			Split: SplitConfig{TestSize: 0.2},
		}
	}
	require.NoError(t, base().Validate())

	for name, mutate := range map[string]func(c *Config){
		"samples":   func(c *Config) { c.Data.Samples = 1 },
		"features":  func(c *Config) { c.Data.Features = 0 },
		"classes":   func(c *Config) { c.Data.Classes = 1 },
		"test size": func(c *Config) { c.Split.TestSize = 1 },
		"smoothing": func(c *Config) { c.Model.VarSmoothing = -1 },
	} {
		c := base()
		mutate(c)
		assert.Error(t, c.Validate(), name)
	}
}
