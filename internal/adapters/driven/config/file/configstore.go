package file

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigSource = (*ConfigStore)(nil)

const (
	// EnvPrefix prefixes every environment override, e.g. GRAPHSCOPE_APP_ID.
	EnvPrefix = "GRAPHSCOPE_"

	// FileName is the configuration file inside the config directory.
	FileName = "config.toml"
)

// ConfigStore resolves the application configuration from defaults,
// the TOML file and the environment. It is safe for concurrent use.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
	cfg      domain.AppConfig

	environ  map[string]string
	validate *validator.Validate
}

// Option configures a ConfigStore.
type Option func(*ConfigStore)

// WithEnvironment replaces the process environment used for overrides.
func WithEnvironment(environ map[string]string) Option {
	return func(s *ConfigStore) {
		s.environ = environ
	}
}

// DefaultDir returns ~/.graphscope.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".graphscope"), nil
}

// NewConfigStore creates a config store and loads the current configuration.
// If configDir is empty, defaults to ~/.graphscope/config.toml.
func NewConfigStore(configDir string, opts ...Option) (*ConfigStore, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, FileName),
		data:     make(map[string]any),
		cfg:      domain.DefaultAppConfig(),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.environ == nil {
		s.environ = env.ToMap(os.Environ())
	}

	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Config returns a copy of the current configuration.
func (s *ConfigStore) Config() domain.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.cfg
	cfg.Scopes = append([]string(nil), s.cfg.Scopes...)
	return cfg
}

// Get retrieves a value as written in the file.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// Set parses value for key, validates the resulting configuration and
// persists the file. The current configuration is unchanged on error.
func (s *ConfigStore) Set(key, value string) error {
	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data := maps.Clone(s.data)
	data[key] = parsed

	raw, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	cfg, err := s.resolve(raw)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	if err := os.WriteFile(s.filePath, raw, 0600); err != nil {
		return err
	}

	s.data = data
	s.cfg = cfg
	return nil
}

// Load reads the configuration file and re-applies the environment.
// A missing file resolves to defaults plus environment. On error the
// previous configuration is kept.
func (s *ConfigStore) Load() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var loaded map[string]any
	if len(raw) > 0 {
		if err := toml.Unmarshal(raw, &loaded); err != nil {
			return fmt.Errorf("parse %s: %w", s.filePath, err)
		}
	}
	if loaded == nil {
		loaded = make(map[string]any)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.resolve(raw)
	if err != nil {
		return err
	}

	s.data = loaded
	s.cfg = cfg
	logger.Debug("Loaded config from %s (app_id set: %t)", s.filePath, cfg.AppID != "")
	return nil
}

// resolve layers defaults, the TOML document raw and the environment,
// then validates the result.
func (s *ConfigStore) resolve(raw []byte) (domain.AppConfig, error) {
	fc := fromAppConfig(domain.DefaultAppConfig())

	dec := toml.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return domain.AppConfig{}, fmt.Errorf("%s: unknown keys:\n%s", s.filePath, strict.String())
		}
		return domain.AppConfig{}, fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	cfg, err := fc.toAppConfig()
	if err != nil {
		return domain.AppConfig{}, fmt.Errorf("%s: %w", s.filePath, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: s.environ,
	}); err != nil {
		return domain.AppConfig{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := s.validate.Struct(cfg); err != nil {
		return domain.AppConfig{}, validationError(err)
	}
	return cfg, nil
}

// validationError flattens validator errors into one readable message.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg += fmt.Sprintf(" (%s)", fe.Param())
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Marshal returns the resolved configuration as TOML.
func (s *ConfigStore) Marshal() ([]byte, error) {
	return toml.Marshal(fromAppConfig(s.Config()))
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
