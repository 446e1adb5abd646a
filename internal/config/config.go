// Package config provides configuration types, defaults and loading for
// fontverify.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/spf13/viper"

	"github.com/roach88/fontverify/internal/isolate"
)

// FaceStyle is how a face is drawn by "fontverify show".
type FaceStyle struct {
	Fg        string `mapstructure:"fg"` // hex "#RRGGBB" or ANSI "0"-"255"
	Bold      bool   `mapstructure:"bold"`
	Italic    bool   `mapstructure:"italic"`
	Underline bool   `mapstructure:"underline"`
}

// Config holds all configuration options.
type Config struct {
	Mode      string               `mapstructure:"mode"`       // default mode for dump and show
	GoldenDir string               `mapstructure:"golden_dir"` // empty: golden/ beside each scenario
	DB        string               `mapstructure:"db"`         // results log; empty disables it
	Faces     map[string]FaceStyle `mapstructure:"faces"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Mode: "let",
		Faces: map[string]FaceStyle{
			"keyword":       {Fg: "#C678DD", Bold: true},
			"number":        {Fg: "#D19A66"},
			"constant":      {Fg: "#D19A66", Italic: true},
			"string":        {Fg: "#98C379"},
			"comment":       {Fg: "#5C6370", Italic: true},
			"operator":      {Fg: "#56B6C2"},
			"variable-name": {Fg: "#E06C75", Underline: true},
		},
	}
}

// Search locations, relative to the working directory and the home directory.
const (
	LocalConfig = ".fontverify/config.yaml"
	UserDir     = ".config/fontverify"
)

// Load reads the configuration. An explicit file must exist. Otherwise
// .fontverify/config.yaml is tried, then ~/.config/fontverify/config.yaml;
// finding neither leaves the defaults. Processes started by the isolated
// harness skip config files entirely and get the defaults.
func Load(file string) (Config, error) {
	if isolate.NoInit() {
		return Defaults(), nil
	}

	v := viper.New()
	setDefaults(v)

	switch {
	case file != "":
		v.SetConfigFile(file)
	case fileExists(LocalConfig):
		v.SetConfigFile(LocalConfig)
	default:
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, UserDir))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("FONTVERIFY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("mode", d.Mode)
	v.SetDefault("golden_dir", d.GoldenDir)
	v.SetDefault("db", d.DB)
	for name, st := range d.Faces {
		v.SetDefault("faces."+name+".fg", st.Fg)
		v.SetDefault("faces."+name+".bold", st.Bold)
		v.SetDefault("faces."+name+".italic", st.Italic)
		v.SetDefault("faces."+name+".underline", st.Underline)
	}
}

var colorPattern = regexp.MustCompile(`^(#[0-9A-Fa-f]{6}|[0-9]{1,3})$`)

// Validate checks that every face color is a hex or ANSI color.
func (c Config) Validate() error {
	if c.Mode == "" {
		return fmt.Errorf("mode must not be empty")
	}
	names := make([]string, 0, len(c.Faces))
	for name := range c.Faces {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fg := c.Faces[name].Fg
		if fg != "" && !colorPattern.MatchString(fg) {
			return fmt.Errorf("faces.%s.fg: invalid color %q (want #RRGGBB or 0-255)", name, fg)
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
