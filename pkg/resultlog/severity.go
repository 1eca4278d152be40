package resultlog

import (
	"log/slog"
	"strings"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

// Severity names the level at which a result is logged. It is a string
// so it can be set from configuration files and environment variables.
type Severity string

const (
	SeverityVerbose     Severity = "verbose"
	SeverityInformation Severity = "information"
	SeverityWarning     Severity = "warning"
	SeverityError       Severity = "error"
	SeverityCritical    Severity = "critical"
)

// LevelCritical sits above slog.LevelError so handlers filtering at
// error still emit critical records.
const LevelCritical = slog.LevelError + 4

// Level maps s to a slog level. Unknown values map to slog.LevelInfo.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityVerbose:
		return slog.LevelDebug
	case SeverityInformation:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	case SeverityCritical:
		return LevelCritical
	default:
		return slog.LevelInfo
	}
}

// Valid reports whether s is one of the declared severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityVerbose, SeverityInformation, SeverityWarning, SeverityError, SeverityCritical:
		return true
	}
	return false
}

// ParseSeverity parses a severity name case-insensitively.
func ParseSeverity(name string) (Severity, error) {
	s := Severity(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", sserr.Newf(sserr.CodeValidation, "resultlog: unknown severity %q", name)
	}
	return s, nil
}
