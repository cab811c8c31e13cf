package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrInvalidTOML is returned when a configuration file cannot be parsed.
var ErrInvalidTOML = errors.New("invalid TOML")

const (
	// ProjectConfigFile is the configuration file looked up in the
	// working directory when no explicit path is given.
	ProjectConfigFile = "tempo.toml"

	// envPrefix namespaces tempo's environment variables.
	envPrefix = "TEMPO_"
)

// Loader loads configuration from multiple sources using koanf.
// Precedence order (highest to lowest):
// 1. CLI flags
// 2. Environment variables (TEMPO_*)
// 3. TOML file (explicit path, or tempo.toml in the working directory)
// 4. Defaults
type Loader struct {
	k         *koanf.Koanf
	path      string
	workDir   string
	unmarshal koanf.UnmarshalConf
}

// NewLoader creates a Loader. path may be empty, in which case the
// working directory is probed for tempo.toml.
func NewLoader(path string) (*Loader, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}

	return NewLoaderWithDir(path, workDir), nil
}

// NewLoaderWithDir creates a Loader with a custom working directory (for
// testing).
func NewLoaderWithDir(path, workDir string) *Loader {
	return &Loader{
		k:       koanf.New("."),
		path:    path,
		workDir: workDir,
		unmarshal: koanf.UnmarshalConf{
			Tag:       "koanf",
			FlatPaths: false,
		},
	}
}

// Load loads configuration from all sources with precedence and
// validates the result.
func (l *Loader) Load(flags map[string]any) (*Config, error) {
	// Reset koanf instance for a fresh load
	l.k = koanf.New(".")

	// 1. Defaults (lowest priority)
	if err := l.k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	// 2. TOML file
	if err := l.loadTOMLFile(); err != nil {
		return nil, err
	}

	// 3. Environment variables: TEMPO_*
	envOpt := env.Opt{
		Prefix:        envPrefix,
		TransformFunc: envTransform,
	}

	if err := l.k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	// 4. CLI flags (highest priority)
	if len(flags) > 0 {
		if err := l.k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var cfg Config
	if err := l.k.UnmarshalWithConf("", &cfg, l.unmarshal); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &cfg, nil
}

// loadTOMLFile merges the configured TOML file into the koanf state. An
// explicit path must exist; the implicit project file is optional.
func (l *Loader) loadTOMLFile() error {
	path := l.path
	if path == "" {
		path = filepath.Join(l.workDir, ProjectConfigFile)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
	}

	if err := l.k.Load(file.Provider(path), tomlparser.Parser()); err != nil {
		return errors.Wrapf(ErrInvalidTOML, "%s: %v", path, err)
	}

	return nil
}

// envTransform transforms environment variable names to config paths.
// TEMPO_REPORT_FORMAT → report.format
func envTransform(key, value string) (string, any) {
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", ".")

	return key, value
}
