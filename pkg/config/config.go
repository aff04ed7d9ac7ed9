// Package config loads gaussnb CLI settings from defaults, an optional
// YAML/JSON file, GAUSSNB_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// EnvPrefix は環境変数の接頭辞（log.level -> GAUSSNB_LOG_LEVEL）
const EnvPrefix = "gaussnb"

// Config はCLI全体の設定
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Data       DataConfig       `mapstructure:"data"`
	Split      SplitConfig      `mapstructure:"split"`
	Balance    BalanceConfig    `mapstructure:"balance"`
	Preprocess PreprocessConfig `mapstructure:"preprocess"`
	Model      ModelConfig      `mapstructure:"model"`
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

// DataConfig は合成データ生成の設定
type DataConfig struct {
	Samples  int    `mapstructure:"samples"`
	Features int    `mapstructure:"features"`
	Classes  int    `mapstructure:"classes"`
	Seed     uint64 `mapstructure:"seed"`
}

// SplitConfig は train/test 分割の設定
type SplitConfig struct {
	TestSize float64 `mapstructure:"test_size"`
	Seed     uint64  `mapstructure:"seed"`
}

// BalanceConfig はクラスバランシングの設定
type BalanceConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Seed    uint64 `mapstructure:"seed"`
}

// PreprocessConfig は前処理の設定
type PreprocessConfig struct {
	Standardize bool `mapstructure:"standardize"`
}

// ModelConfig は GaussianNB のハイパーパラメータ
type ModelConfig struct {
	VarSmoothing float64 `mapstructure:"var_smoothing"`
	Strict       bool    `mapstructure:"strict"`
	NJobs        int     `mapstructure:"n_jobs"`
}

var defaults = map[string]interface{}{
	"log.level":              "info",
	"log.format":             "console",
	"data.samples":           1000,
	"data.features":          10,
	"data.classes":           2,
	"data.seed":              123,
	"split.test_size":        0.2,
	"split.seed":             123,
	"balance.enabled":        false,
	"balance.seed":           123,
	"preprocess.standardize": false,
	"model.var_smoothing":    0.0,
	"model.strict":           false,
	"model.n_jobs":           1,
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds each flag in names to a config key.
// A flag that was not defined is an error.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, names map[string]string) error {
	for key, name := range names {
		flag := flags.Lookup(name)
		if flag == nil {
			return errors.Newf("could not find flag %q to bind to %q", name, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "bind flag %q", name)
		}
	}
	return nil
}

// Load reads the config file and returns the merged settings. An empty path
// looks for gaussnb.{yaml,json,...} in $GAUSSNB_CONFIG_PATH or the working
// directory and tolerates its absence; an explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		altPath := os.Getenv("GAUSSNB_CONFIG_PATH")
		if altPath == "" {
			altPath = "."
		}
		v.AddConfigPath(altPath)
		v.SetConfigName("gaussnb")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値の範囲を検証する
func (c *Config) Validate() error {
	switch {
	case c.Log.Format != "json" && c.Log.Format != "console":
		return errors.NewValidationError("log.format", "must be json or console", c.Log.Format)
	case c.Data.Samples < 2:
		return errors.NewValidationError("data.samples", "must be at least 2", c.Data.Samples)
	case c.Data.Features < 1:
		return errors.NewValidationError("data.features", "must be positive", c.Data.Features)
	case c.Data.Classes < 2:
		return errors.NewValidationError("data.classes", "must be at least 2", c.Data.Classes)
	case !(c.Split.TestSize > 0 && c.Split.TestSize < 1):
		return errors.NewValidationError("split.test_size", "must be in (0, 1)", c.Split.TestSize)
	case c.Model.VarSmoothing < 0:
		return errors.NewValidationError("model.var_smoothing", "must be non-negative", c.Model.VarSmoothing)
	}
	return nil
}
