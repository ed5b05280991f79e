package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/launchpad/internal/logging"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the project directory.
const DefaultFile = "launchpad.yaml"

// DefaultEnvFile is the dotenv file loaded into the child environment when present.
const DefaultEnvFile = ".env"

// EnvPrefix prefixes environment variable overrides (LAUNCHPAD_VENV, LAUNCHPAD_PAUSE, ...).
const EnvPrefix = "LAUNCHPAD_"

// PauseMode controls the key-press prompt before the launcher exits.
type PauseMode string

const (
	// PauseAuto pauses only for an interactive console outside CI.
	PauseAuto   PauseMode = "auto"
	PauseAlways PauseMode = "always"
	PauseNever  PauseMode = "never"
)

// Config is the launcher configuration after all layers are merged.
type Config struct {
	// Dir is the project directory. It comes from the command line only.
	Dir string `mapstructure:"-"`
	// File is the configuration file that was read, if any.
	File string `mapstructure:"-"`
	// CI is set when the CI environment variable is truthy.
	CI bool `mapstructure:"-"`

	EnvDir            string    `mapstructure:"venv" yaml:"venv"`
	Manifest          string    `mapstructure:"manifest" yaml:"manifest"`
	Entry             string    `mapstructure:"entry" yaml:"entry"`
	Python            string    `mapstructure:"python" yaml:"python"`
	PipArgs           []string  `mapstructure:"pip_args" yaml:"pip_args"`
	ProgramArgs       []string  `mapstructure:"program_args" yaml:"program_args"`
	EnvFile           string    `mapstructure:"env_file" yaml:"env_file"`
	Pause             PauseMode `mapstructure:"pause" yaml:"pause"`
	Lang              string    `mapstructure:"lang" yaml:"lang"`
	Banner            bool      `mapstructure:"banner" yaml:"banner"`
	PropagateExitCode bool      `mapstructure:"propagate_exit_code" yaml:"propagate_exit_code"`
	Debug             bool      `mapstructure:"debug" yaml:"debug"`
	LogLevel          string    `mapstructure:"log_level" yaml:"log_level"`
	LogJSON           bool      `mapstructure:"log_json" yaml:"log_json"`
	MetricsFile       string    `mapstructure:"metrics_file" yaml:"metrics_file"`
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// Dir is the project directory. Defaults to ".".
	Dir string
	// File is an explicit configuration file. It must exist when set.
	File string
	// Environ is the environment used for LAUNCHPAD_* overrides. Defaults to os.Environ().
	Environ []string
	// Overrides are the highest-precedence values, keyed like the YAML file (flags).
	Overrides map[string]any
}

// Defaults returns the built-in configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		"venv":                "venv",
		"manifest":            "requirements.txt",
		"entry":               "src/main.py",
		"python":              "",
		"pip_args":            []string{},
		"program_args":        []string{},
		"env_file":            DefaultEnvFile,
		"pause":               string(PauseAuto),
		"lang":                "",
		"banner":              true,
		"propagate_exit_code": false,
		"debug":               false,
		"log_level":           "",
		"log_json":            false,
		"metrics_file":        "",
	}
}

// Load merges defaults, the YAML file, LAUNCHPAD_* variables and overrides, in that order.
func Load(opts LoadOptions) (Config, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Environ == nil {
		opts.Environ = os.Environ()
	}

	merged := Defaults()

	file, fileValues, err := readFile(opts.Dir, opts.File)
	if err != nil {
		return Config{}, err
	}
	for k, v := range fileValues {
		merged[k] = v
	}

	env := envMap(opts.Environ)
	for key := range Defaults() {
		if v, ok := env[EnvPrefix+strings.ToUpper(key)]; ok {
			merged[key] = v
		}
	}

	for k, v := range opts.Overrides {
		merged[k] = v
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       stringToFieldsHook,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(merged); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.Dir = opts.Dir
	cfg.File = file
	cfg.CI = DetectCI(opts.Environ)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that decoding alone cannot.
func (c Config) Validate() error {
	var errs []error
	switch c.Pause {
	case PauseAuto, PauseAlways, PauseNever:
	default:
		errs = append(errs, fmt.Errorf("pause: must be auto, always or never, got %q", c.Pause))
	}
	if c.EnvDir == "" {
		errs = append(errs, errors.New("venv: must not be empty"))
	}
	if c.Manifest == "" {
		errs = append(errs, errors.New("manifest: must not be empty"))
	}
	if c.Entry == "" {
		errs = append(errs, errors.New("entry: must not be empty"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ShouldPause decides whether to wait for a key-press before exiting.
func (c Config) ShouldPause(interactive bool) bool {
	switch c.Pause {
	case PauseAlways:
		return true
	case PauseNever:
		return false
	}
	return interactive && !c.CI
}

// Path resolves p against the project directory.
func (c Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

func readFile(dir, explicit string) (string, map[string]any, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(dir, DefaultFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && explicit == "" {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("failed to read config: %w", err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return "", nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return path, values, nil
}

func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

// DetectCI reports whether environ marks a CI run (CI set to anything but a false value).
func DetectCI(environ []string) bool {
	return truthy(envMap(environ)["CI"])
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

// stringToFieldsHook splits whitespace-separated strings for slice fields,
// so LAUNCHPAD_PIP_ARGS="--quiet --no-cache-dir" becomes two arguments.
func stringToFieldsHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	return strings.Fields(reflect.ValueOf(data).String()), nil
}
