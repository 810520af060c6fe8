package config

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

// Section is a view of the keys below one path of a File. Keys are case-insensitive.
// A leading "./" on a key, meaning "relative to this section", is accepted and ignored.
type Section struct {
	file *File
	path string
}

// Path returns the section's dot-separated path.
func (s Section) Path() string {
	return s.path
}

// Sub returns the child section with the given name.
func (s Section) Sub(name string) Section {
	return Section{file: s.file, path: s.key(name)}
}

// Has reports whether key is set in this section.
func (s Section) Has(key string) bool {
	_, ok := s.file.get(s.key(key))
	return ok
}

// RetrieveString returns the string at key, or def if it is missing.
func (s Section) RetrieveString(key, def string) string {
	raw, ok := s.file.get(s.key(key))
	if !ok {
		return def
	}
	out, err := cast.ToStringE(raw)
	if err != nil {
		s.malformed(key, raw, err)
		return def
	}
	return out
}

// RetrieveInt returns the integer at key, or def if it is missing or malformed.
func (s Section) RetrieveInt(key string, def int) int {
	raw, ok := s.file.get(s.key(key))
	if !ok {
		return def
	}
	out, err := cast.ToIntE(raw)
	if err != nil {
		s.malformed(key, raw, err)
		return def
	}
	return out
}

// RetrieveFloat returns the number at key, or def if it is missing or malformed.
func (s Section) RetrieveFloat(key string, def float64) float64 {
	raw, ok := s.file.get(s.key(key))
	if !ok {
		return def
	}
	out, err := cast.ToFloat64E(raw)
	if err != nil {
		s.malformed(key, raw, err)
		return def
	}
	return out
}

// RetrieveBool returns the boolean at key, or def if it is missing or malformed.
func (s Section) RetrieveBool(key string, def bool) bool {
	raw, ok := s.file.get(s.key(key))
	if !ok {
		return def
	}
	out, err := cast.ToBoolE(raw)
	if err != nil {
		s.malformed(key, raw, err)
		return def
	}
	return out
}

// RetrieveVector returns the 3-vector at key, or def if it is missing or malformed.
// The value may be a list of three numbers or a string of the form "(x, y, z)".
//
// Parameters:
//   - key: the key within this section
//   - def: the default vector
//
// Returns:
//   - mgl64.Vec3: the stored or default vector
func (s Section) RetrieveVector(key string, def mgl64.Vec3) mgl64.Vec3 {
	raw, ok := s.file.get(s.key(key))
	if !ok {
		return def
	}
	out, err := ParseVector(raw)
	if err != nil {
		s.malformed(key, raw, err)
		return def
	}
	return out
}

// StoreString sets key to a string.
func (s Section) StoreString(key, value string) {
	s.file.set(s.key(key), value)
}

// StoreInt sets key to an integer.
func (s Section) StoreInt(key string, value int) {
	s.file.set(s.key(key), value)
}

// StoreFloat sets key to a number.
func (s Section) StoreFloat(key string, value float64) {
	s.file.set(s.key(key), value)
}

// StoreBool sets key to a boolean.
func (s Section) StoreBool(key string, value bool) {
	s.file.set(s.key(key), value)
}

// StoreVector sets key to a list of three numbers.
func (s Section) StoreVector(key string, value mgl64.Vec3) {
	s.file.set(s.key(key), []any{value[0], value[1], value[2]})
}

func (s Section) key(key string) string {
	key = strings.TrimPrefix(key, "./")
	if s.path == "" {
		return key
	}
	return s.path + "." + key
}

func (s Section) malformed(key string, raw any, err error) {
	log.Warn().Str("section", s.path).Str("key", key).Interface("value", raw).Err(err).Msg("malformed configuration value, using default")
}

// ParseVector converts a list of three numbers or a "(x, y, z)" string into a vector.
//
// Parameters:
//   - raw: the raw configuration value
//
// Returns:
//   - mgl64.Vec3: the parsed vector
//   - error: error if raw does not hold exactly three numbers
func ParseVector(raw any) (mgl64.Vec3, error) {
	var parts []any
	if str, ok := raw.(string); ok {
		str = strings.TrimSpace(str)
		str = strings.TrimPrefix(str, "(")
		str = strings.TrimSuffix(str, ")")
		for _, p := range strings.Split(str, ",") {
			parts = append(parts, strings.TrimSpace(p))
		}
	} else {
		list, err := cast.ToSliceE(raw)
		if err != nil {
			return mgl64.Vec3{}, err
		}
		parts = list
	}
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("config: vector needs 3 components, got %d", len(parts))
	}
	var out mgl64.Vec3
	for i, p := range parts {
		c, err := cast.ToFloat64E(p)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("config: vector component %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}
