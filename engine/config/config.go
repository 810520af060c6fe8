// Package config provides path-addressed configuration sections on top of a viper store.
// Tools read their settings from a class section and may write them back.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// File is an in-memory configuration store, optionally loaded from and saved to YAML.
type File struct {
	mu *sync.Mutex
	v  *viper.Viper
}

// NewFile creates an empty configuration store.
//
// Returns:
//   - *File: the empty store
func NewFile() *File {
	return &File{mu: &sync.Mutex{}, v: viper.New()}
}

// Load reads a configuration file. The format is taken from the file extension.
//
// Parameters:
//   - path: path to a YAML (or any viper-supported) configuration file
//
// Returns:
//   - *File: the loaded store
//   - error: error if the file cannot be read or parsed
func Load(path string) (*File, error) {
	f := NewFile()
	f.v.SetConfigFile(path)
	if err := f.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("configuration loaded")
	return f, nil
}

// LoadReader merges configuration read from r into the store.
//
// Parameters:
//   - r: the configuration source
//   - format: the source format, e.g. "yaml"
//
// Returns:
//   - error: error if the source cannot be parsed
func (f *File) LoadReader(r io.Reader, format string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.v.SetConfigType(format)
	if err := f.v.MergeConfig(r); err != nil {
		return fmt.Errorf("config: parse %s: %w", format, err)
	}
	return nil
}

// Section returns the section at the given dot-separated path.
//
// Parameters:
//   - path: section path, e.g. "tools.MouseCameraTool"
//
// Returns:
//   - Section: a view of the keys below path
func (f *File) Section(path string) Section {
	return Section{file: f, path: strings.Trim(path, ".")}
}

// WriteTo writes the whole store as YAML.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - int64: number of bytes written
//   - error: error if encoding or writing fails
func (f *File) WriteTo(w io.Writer) (int64, error) {
	f.mu.Lock()
	settings := f.v.AllSettings()
	f.mu.Unlock()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return 0, fmt.Errorf("config: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("config: encode: %w", err)
	}
	return buf.WriteTo(w)
}

// Save writes the whole store as YAML to path.
//
// Parameters:
//   - path: destination file path
//
// Returns:
//   - error: error if the file cannot be written
func (f *File) Save(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}
	defer out.Close()
	if _, err := f.WriteTo(out); err != nil {
		return err
	}
	return nil
}

func (f *File) get(key string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.v.IsSet(key) {
		return nil, false
	}
	return f.v.Get(key), true
}

func (f *File) set(key string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.v.Set(key, value)
}
