// Package diagnostic provides the Issue/Annotation/Level model the
// lint engine reports findings through: multiple annotations per
// issue, notes, and help text.
package diagnostic

import (
	"fmt"

	"github.com/mago-go/phrix/internal/span"
)

// Level is the severity of an Issue. Levels compose into a partial
// order where Off suppresses emission entirely.
type Level int

const (
	Off Level = iota
	Help
	Note
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Off:
		return "off"
	case Help:
		return "help"
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel maps a configuration string onto a Level. Unknown strings
// return (Off, false).
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "off":
		return Off, true
	case "help":
		return Help, true
	case "note":
		return Note, true
	case "warning":
		return Warning, true
	case "error":
		return Error, true
	default:
		return Off, false
	}
}

// Annotation pairs a span with an optional message. Primary
// annotations mark the focal point of an issue; secondary annotations
// add context (e.g. the target of a goto whose keyword is primary).
type Annotation struct {
	Span    span.Span
	Message string
	Primary bool
}

// Issue is a single diagnostic emitted by a lint rule.
type Issue struct {
	RunID       string // stamped by the engine, one id per Lint call (see internal/lint)
	Rule        string
	Level       Level
	Message     string
	Annotations []Annotation
	Notes       []string
	Help        string
}

// PrimaryAnnotation returns the first primary annotation, if any.
func (i Issue) PrimaryAnnotation() (Annotation, bool) {
	for _, a := range i.Annotations {
		if a.Primary {
			return a, true
		}
	}
	return Annotation{}, false
}

// IsWellFormed reports whether the issue carries at least one primary
// annotation and a non-empty message.
func (i Issue) IsWellFormed() bool {
	if i.Message == "" {
		return false
	}
	_, ok := i.PrimaryAnnotation()
	return ok
}

func (i Issue) String() string {
	loc := "?"
	if a, ok := i.PrimaryAnnotation(); ok {
		loc = a.Span.Start.String()
	}
	return fmt.Sprintf("[%s] %s at %s: %s", i.Level, i.Rule, loc, i.Message)
}
