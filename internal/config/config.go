// Package config resolves runtime settings for the prompt refiner.
//
// Settings are layered, lowest precedence first: built-in defaults, the YAML
// config file, .env files and the process environment, then CLI flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/csheth/promptrefiner/internal/refine"
)

const (
	// EnvBackend overrides the backend base URL.
	EnvBackend = "PROMPT_REFINER_BACKEND"
	// EnvLogFile overrides where diagnostics are written.
	EnvLogFile = "PROMPT_REFINER_LOG_FILE"

	appDirName     = "promptrefiner"
	configFileName = "config.yaml"
)

// Settings is the resolved configuration.
type Settings struct {
	BackendURL  string `yaml:"backend_url"`
	NoAltScreen bool   `yaml:"no_alt_screen"`
	LogFile     string `yaml:"log_file"`
}

// Overrides carries values supplied on the command line. Empty strings leave
// lower layers untouched.
type Overrides struct {
	ConfigPath  string
	EnvFiles    []string
	BackendURL  string
	LogFile     string
	NoAltScreen bool
}

func Default() Settings {
	return Settings{BackendURL: refine.DefaultBaseURL}
}

// DefaultPath is the config file consulted when -config is not given.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, appDirName, configFileName)
}

// Load resolves settings. A missing default config file or .env file is not
// an error; a missing file named explicitly is.
func Load(o Overrides) (Settings, error) {
	settings := Default()

	path := o.ConfigPath
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := settings.mergeFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Settings{}, err
			}
		}
	}

	envFiles := o.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	if err := loadEnvFiles(envFiles); err != nil {
		return Settings{}, err
	}
	if value := os.Getenv(EnvBackend); value != "" {
		settings.BackendURL = value
	}
	if value := os.Getenv(EnvLogFile); value != "" {
		settings.LogFile = value
	}

	if o.BackendURL != "" {
		settings.BackendURL = o.BackendURL
	}
	if o.LogFile != "" {
		settings.LogFile = o.LogFile
	}
	if o.NoAltScreen {
		settings.NoAltScreen = true
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *Settings) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// godotenv never overwrites variables that are already set, so the real
// environment wins over .env files.
func loadEnvFiles(paths []string) error {
	present := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat env file %s: %w", path, err)
		}
		present = append(present, path)
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// Validate requires an absolute http(s) backend URL.
func (s Settings) Validate() error {
	parsed, err := url.Parse(s.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend url %q: %w", s.BackendURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid backend url %q: scheme must be http or https", s.BackendURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid backend url %q: missing host", s.BackendURL)
	}
	return nil
}
