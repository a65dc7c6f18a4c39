package model

import "strings"

// FormValues is the name-keyed map a dialog submits. A key that is absent
// means the control was never shown; a key mapped to the empty string means
// the control was shown and left blank. Constructors treat both as "no
// value" unless the field is required.
type FormValues map[string]string

// Lookup returns the raw value and whether the key was present at all.
func (v FormValues) Lookup(key string) (string, bool) {
	s, ok := v[key]
	return s, ok
}

// Get returns the trimmed value for key, or "" when absent or blank.
func (v FormValues) Get(key string) string {
	return strings.TrimSpace(v[key])
}

// Bool reports whether the named checkbox was ticked.
func (v FormValues) Bool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(v[key])) {
	case "true", "1", "on", "yes":
		return true
	}
	return false
}

// Required returns the trimmed value for key, or a ValidationError when the
// key is absent or blank.
func (v FormValues) Required(key string) (string, error) {
	s := v.Get(key)
	if s == "" {
		return "", &ValidationError{Key: key}
	}
	return s, nil
}
