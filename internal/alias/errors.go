package alias

import (
	"errors"
	"fmt"
)

// ErrorKind classifies alias configuration problems. None of them are fatal.
type ErrorKind int

const (
	// ConfigMissing means the alias file does not exist.
	ConfigMissing ErrorKind = iota + 1
	// ConfigParseError means the alias file exists but is not a valid document.
	ConfigParseError
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigMissing:
		return "config_missing"
	case ConfigParseError:
		return "config_parse_error"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrConfigMissing = errors.New("alias file not found")
	ErrConfigParse   = errors.New("alias file invalid")
)

// ConfigError describes why an alias file could not be used.
// Line and Column are 1-based and zero when unknown.
type ConfigError struct {
	Kind    ErrorKind
	Path    string
	Line    int
	Column  int
	Snippet string
	Err     error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Kind == ConfigMissing:
		return fmt.Sprintf("alias file %s not found", e.Path)
	case e.Line > 0 && e.Snippet != "":
		return fmt.Sprintf("parse alias file %s at line %d, column %d (%q): %v", e.Path, e.Line, e.Column, e.Snippet, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("parse alias file %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	default:
		return fmt.Sprintf("parse alias file %s: %v", e.Path, e.Err)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is matches the ErrConfigMissing and ErrConfigParse sentinels.
func (e *ConfigError) Is(target error) bool {
	switch target {
	case ErrConfigMissing:
		return e.Kind == ConfigMissing
	case ErrConfigParse:
		return e.Kind == ConfigParseError
	}
	return false
}

// Namespace identifies one of the two independent alias mappings.
type Namespace string

const (
	Teams   Namespace = "team"
	Leagues Namespace = "league"
)

// Conflict records two configured keys that normalize to the same key but
// name different canonical targets. The later entry won.
type Conflict struct {
	Namespace   Namespace
	Key         string // normalized key both entries collapse onto
	PreviousKey string // configured key that lost
	Previous    string
	WinnerKey   string // configured key that won
	Winner      string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s alias %q: %q -> %q overridden by %q -> %q",
		c.Namespace, c.Key, c.PreviousKey, c.Previous, c.WinnerKey, c.Winner)
}
