// Package settings reads the application's settings file through the cache,
// so repeated lookups from handlers do not hit the disk.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ashpect/cachemgr/pkg/cache"
	"github.com/ashpect/cachemgr/pkg/logging"
)

// CacheKey is the cache entry holding the parsed settings file.
const CacheKey = "settings"

var ErrNotFound = errors.New("setting not found")

type Option func(*Store)

// WithTTL sets how long the parsed file stays cached. Zero uses the cache's default TTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Store serves settings from a YAML or JSON file.
type Store struct {
	path   string
	cache  cache.Cache[map[string]any]
	ttl    time.Duration
	logger *logging.Logger

	// serializes writers of the file
	mu sync.Mutex
}

func New(path string, c cache.Cache[map[string]any], opts ...Option) *Store {
	s := &Store{
		path:   path,
		cache:  c,
		logger: logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (any, error) {
	m, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v, nil
}

// GetOr returns the value under key, or fallback when it is missing or the file cannot be read.
func (s *Store) GetOr(key string, fallback any) any {
	v, err := s.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("settings lookup failed", "key", key, "error", err)
		}
		return fallback
	}
	return v
}

// GetString is GetOr for string settings. Non-string values are formatted with fmt.
func (s *Store) GetString(key, fallback string) string {
	switch v := s.GetOr(key, nil).(type) {
	case nil:
		return fallback
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// All returns a shallow copy of every setting.
func (s *Store) All() (map[string]any, error) {
	m, err := s.load()
	if err != nil {
		return nil, err
	}
	return maps.Clone(m), nil
}

// Set writes key to the settings file and drops the cached copy.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.readFile()
	if errors.Is(err, os.ErrNotExist) {
		m, err = map[string]any{}, nil
	}
	if err != nil {
		return err
	}
	m[key] = value

	if err := s.writeFile(m); err != nil {
		return err
	}
	s.Invalidate()
	s.logger.Info("setting updated", "key", key)
	return nil
}

// Invalidate drops the cached copy so the next lookup rereads the file.
func (s *Store) Invalidate() {
	s.cache.Delete(CacheKey)
}

func (s *Store) load() (map[string]any, error) {
	if m, ok := s.cache.Get(CacheKey); ok {
		return m, nil
	}

	m, err := s.readFile()
	if err != nil {
		return nil, err
	}
	s.cache.SetWithTTL(CacheKey, m, s.ttl)
	s.logger.Debug("settings loaded", "path", s.path, "keys", len(m))
	return m, nil
}

func (s *Store) readFile() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", s.path, err)
	}

	m := map[string]any{}
	// YAML is a superset of JSON, so one decoder covers settings.json too.
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	return m, nil
}

func (s *Store) writeFile(m map[string]any) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(s.path), ".json") {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = yaml.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*")
	if err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}
