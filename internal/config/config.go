// Package config loads nanodesign settings from nanodesign.yaml, NANODESIGN_*
// environment variables and command line flags through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"nanodesign/internal/domain"
)

const (
	// DefaultSequenceDir holds the FASTA files of the scaffold sequence library
	DefaultSequenceDir = "~/.local/share/nanodesign/sequences"
	DefaultHTTPAddr    = ":8080"
	EnvPrefix          = "NANODESIGN"
)

// LogConfig selects the zap sink
type LogConfig struct {
	// debug, info, warn or error
	Level string `mapstructure:"level"`
	// console or json
	Format string `mapstructure:"format"`
	// named component loggers logged at debug level regardless of Level
	DebugModules []string `mapstructure:"debug_modules"`
}

// HTTPConfig is for the serve command
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config is the root-level settings struct
type Config struct {
	Params domain.Parameters `mapstructure:"params"`
	// apply insertions and deletions when building
	Modify bool `mapstructure:"modify"`
	// directory of FASTA scaffold sequences
	SequenceDir string `mapstructure:"sequence_dir"`
	// snapshot database; empty selects one per design under XDG_DATA_HOME
	StorePath string `mapstructure:"store_path"`
	// node exporter textfile written after each run; empty disables it
	MetricsFile string     `mapstructure:"metrics_file"`
	Log         LogConfig  `mapstructure:"log"`
	HTTP        HTTPConfig `mapstructure:"http"`
}

// New returns a viper instance with defaults, search paths and the
// NANODESIGN_ environment binding set up
func New() *viper.Viper {
	v := viper.New()

	p := domain.DefaultParameters()
	v.SetDefault("params.helix_diameter", p.HelixDiameter)
	v.SetDefault("params.helix_distance", p.HelixDistance)
	v.SetDefault("params.base_rise", p.BaseRise)
	v.SetDefault("params.honeycomb_twist", p.HoneycombTwist)
	v.SetDefault("params.square_twist", p.SquareTwist)
	v.SetDefault("params.minor_groove_angle", p.MinorGrooveAngle)
	v.SetDefault("modify", false)
	v.SetDefault("sequence_dir", DefaultSequenceDir)
	v.SetDefault("store_path", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.debug_modules", []string{})
	v.SetDefault("http.addr", DefaultHTTPAddr)

	v.SetConfigName("nanodesign")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(configHome())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (configFile, or nanodesign.yaml on the search
// path when empty) and decodes the merged settings. A missing file on the
// search path is not an error.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	c.SequenceDir = ExpandHome(c.SequenceDir)
	c.StorePath = ExpandHome(c.StorePath)
	c.MetricsFile = ExpandHome(c.MetricsFile)

	if err := c.Params.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid params: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return Config{}, fmt.Errorf("invalid log.format %q: expected console or json", c.Log.Format)
	}
	return c, nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "nanodesign")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nanodesign")
}

// Version is the release recorded in structure stores. Set with
// -ldflags "-X nanodesign/internal/config.Version=..."
var Version = "0.1.0"
