// Package replerr defines the editor's error taxonomy and the one-shot
// logger installation hook shared by the rest of the module.
package replerr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Kind classifies what went wrong, independent of the underlying cause.
type Kind int

const (
	// IO covers filesystem and terminal I/O failures.
	IO Kind = iota
	// Serialization covers history file encode/decode failures.
	Serialization
	// PathConversion covers failures turning a path into the form the
	// editor needs. Nothing in this module returns it; a failure to create
	// the history file's directory is reported as IO.
	PathConversion
	// Formatting covers downstream output failures; the event loop tags
	// errors returned by the evaluator callback with this kind.
	Formatting
	// LoggerInstallation covers a second attempt to install the logger.
	LoggerInstallation
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "IO"
	case Serialization:
		return "Serialization"
	case PathConversion:
		return "PathConversion"
	case Formatting:
		return "Formatting"
	case LoggerInstallation:
		return "LoggerInstallation"
	default:
		return "Unknown"
	}
}

// Error is a Kind-tagged wrapper around an underlying cause.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Wrap tags cause with kind. Wrap(kind, nil) returns nil, matching the
// common "return replerr.Wrap(kind, err)" call site pattern where err may
// be nil on the success path.
func Wrap(kind Kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Cause: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// ErrLoggerAlreadyInstalled is returned by InstallLogger on any call after
// the first.
var ErrLoggerAlreadyInstalled = &Error{Kind: LoggerInstallation, Cause: errors.New("logger already installed")}

var installOnce sync.Once

// InstallLogger wires logrus's standard logger to the given level, at most
// once per process. Every call after the first returns
// ErrLoggerAlreadyInstalled and leaves the existing configuration in place.
func InstallLogger(level logrus.Level) error {
	ran := false
	installOnce.Do(func() {
		logrus.SetLevel(level)
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		ran = true
	})
	if ran {
		return nil
	}
	return ErrLoggerAlreadyInstalled
}
