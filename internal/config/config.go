// Package config resolves the settings for one cmakeext invocation from
// defaults, an optional config file and the environment.
//
// This is the only place the process environment is read. The result is
// turned into an explicit cmakeext.BuildConfig before the driver runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	cmakeext "github.com/contriboss/cmake-extension-go"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "cmakeext"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "cmakeext"

	// EnvDebug selects a debug build when set to a non-zero integer or a true boolean.
	EnvDebug = "DEBUG"
	// EnvCMakeArgs carries extra whitespace-separated configure arguments.
	EnvCMakeArgs = "CMAKE_ARGS"
)

// Settings is the resolved configuration.
type Settings struct {
	Debug       bool     `toml:"debug"`
	CMakeArgs   []string `toml:"cmake_args"`
	BuildArgs   []string `toml:"build_args"`
	Parallel    int      `toml:"parallel"`
	Interpreter string   `toml:"interpreter"`
	Generator   string   `toml:"generator"`
	BuildTemp   string   `toml:"build_temp"`
	BuildLib    string   `toml:"build_lib"`
	Suffix      string   `toml:"suffix"`
	MinVersion  string   `toml:"min_version"`
	Env         []string `toml:"env,omitempty"` // KEY=VALUE entries

	// ConfigFile is the config file that was read, if any.
	ConfigFile string `toml:"-"`
}

// LoadOptions controls where Load looks for a config file.
type LoadOptions struct {
	// ConfigFilePath is used exclusively when set and must exist.
	ConfigFilePath string

	// SearchDirs are searched in order for cmakeext.toml, .yaml or .json.
	SearchDirs []string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	layout := cmakeext.DefaultLayout()
	return &Settings{
		BuildTemp:  layout.BuildTemp,
		BuildLib:   layout.BuildLib,
		Suffix:     layout.Suffix,
		MinVersion: cmakeext.DefaultMinVersion,
	}
}

// Load resolves settings. Precedence is environment, then config file, then
// defaults. Command-line flags are applied by the caller on top.
func Load(opts LoadOptions) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("debug", "")
	v.SetDefault("cmake_args", "")
	v.SetDefault("build_args", []string{})
	v.SetDefault("parallel", 0)
	v.SetDefault("interpreter", "")
	v.SetDefault("generator", "")
	v.SetDefault("build_temp", defaults.BuildTemp)
	v.SetDefault("build_lib", defaults.BuildLib)
	v.SetDefault("suffix", defaults.Suffix)
	v.SetDefault("min_version", defaults.MinVersion)
	v.SetDefault("env", []string{})

	if err := v.BindEnv("debug", EnvDebug); err != nil {
		return nil, err
	}
	if err := v.BindEnv("cmake_args", EnvCMakeArgs); err != nil {
		return nil, err
	}

	resolvedPath, err := readConfigFile(v, opts)
	if err != nil {
		return nil, err
	}

	debug, err := ParseDebug(v.GetString("debug"))
	if err != nil {
		return nil, err
	}

	return &Settings{
		Debug:       debug,
		CMakeArgs:   splitArgs(v.Get("cmake_args")),
		BuildArgs:   v.GetStringSlice("build_args"),
		Parallel:    v.GetInt("parallel"),
		Interpreter: v.GetString("interpreter"),
		Generator:   v.GetString("generator"),
		BuildTemp:   v.GetString("build_temp"),
		BuildLib:    v.GetString("build_lib"),
		Suffix:      v.GetString("suffix"),
		MinVersion:  v.GetString("min_version"),
		Env:         nonEmpty(v.GetStringSlice("env")),
		ConfigFile:  resolvedPath,
	}, nil
}

func readConfigFile(v *viper.Viper, opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if _, err := os.Stat(opts.ConfigFilePath); err != nil {
			return "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", opts.ConfigFilePath, err)
		}
		return opts.ConfigFilePath, nil
	}

	if len(opts.SearchDirs) == 0 {
		return "", nil
	}

	v.SetConfigName(ConfigFileName)
	for _, dir := range opts.SearchDirs {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// ParseDebug interprets a DEBUG value. Integers are true when non-zero;
// otherwise strconv.ParseBool rules apply. Empty means false.
func ParseDebug(value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n != 0, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: expected an integer or boolean", EnvDebug, value)
	}
	return b, nil
}

// splitArgs accepts either a whitespace-separated string (environment) or a
// list (config file) and drops empty tokens.
func splitArgs(raw any) []string {
	switch val := raw.(type) {
	case nil:
		return nil
	case string:
		return strings.Fields(val)
	case []string:
		return nonEmpty(val)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprint(item))
		}
		return nonEmpty(out)
	default:
		return strings.Fields(fmt.Sprint(val))
	}
}

func nonEmpty(values []string) []string {
	var out []string
	for _, s := range values {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Layout returns the packaging layout described by the settings.
func (s *Settings) Layout() cmakeext.Layout {
	layout := cmakeext.DefaultLayout()
	if s.BuildTemp != "" {
		layout.BuildTemp = s.BuildTemp
	}
	if s.BuildLib != "" {
		layout.BuildLib = s.BuildLib
	}
	if s.Suffix != "" {
		layout.Suffix = s.Suffix
	}
	return layout
}

// EnvMap parses the KEY=VALUE entries of Env. Entries are kept as a list in
// the config file because viper lower-cases map keys.
func (s *Settings) EnvMap() (map[string]string, error) {
	if len(s.Env) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(s.Env))
	for _, entry := range s.Env {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid env entry %q: expected KEY=VALUE", entry)
		}
		env[key] = value
	}
	return env, nil
}

// BuildConfig converts the settings into the driver's explicit configuration.
// toolDebug, when non-nil, overrides the DEBUG setting.
func (s *Settings) BuildConfig(toolDebug *bool) (*cmakeext.BuildConfig, error) {
	env, err := s.EnvMap()
	if err != nil {
		return nil, err
	}
	return &cmakeext.BuildConfig{
		Debug:       cmakeext.ResolveDebug(toolDebug, s.Debug),
		ExtraArgs:   append([]string(nil), s.CMakeArgs...),
		BuildArgs:   append([]string(nil), s.BuildArgs...),
		Env:         env,
		Interpreter: s.Interpreter,
		Generator:   s.Generator,
		Parallel:    s.Parallel,
		Layout:      s.Layout(),
	}, nil
}

// TOML renders the settings as a config file.
func (s *Settings) TOML() ([]byte, error) {
	return toml.Marshal(s)
}
