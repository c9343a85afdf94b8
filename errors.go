package nostril

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputTooShort is matched by every *InputTooShortError.
	ErrInputTooShort = errors.New("nostril: input too short")

	// ErrUnsupportedLength is matched by every *UnsupportedLengthError.
	ErrUnsupportedLength = errors.New("nostril: unsupported n-gram length")

	// ErrModelLoad is matched by every *ModelLoadError.
	ErrModelLoad = errors.New("nostril: model load failed")

	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("nostril: invalid configuration")
)

// InputTooShortError is returned by a Detector when the sanitized input has
// fewer letters than the configured minimum. It is never turned into a
// "nonsense" verdict.
type InputTooShortError struct {
	Input     string
	Sanitized string
	MinLength int
}

func (e *InputTooShortError) Error() string {
	return fmt.Sprintf("nostril: input %q has %d letters after sanitizing, need at least %d",
		e.Input, len(e.Sanitized), e.MinLength)
}

func (e *InputTooShortError) Is(target error) bool { return target == ErrInputTooShort }

// UnsupportedLengthError is returned when a configuration asks for an n-gram
// length the loaded statistics were not trained for.
type UnsupportedLengthError struct {
	Length    int
	Available []int
}

func (e *UnsupportedLengthError) Error() string {
	avail := make([]string, len(e.Available))
	for i, l := range e.Available {
		avail[i] = fmt.Sprint(l)
	}
	return fmt.Sprintf("nostril: n-gram length %d is not in the model (have %s)",
		e.Length, strings.Join(avail, ","))
}

func (e *UnsupportedLengthError) Is(target error) bool { return target == ErrUnsupportedLength }

// ModelLoadError wraps any failure to read or decode persisted statistics.
type ModelLoadError struct {
	Path       string
	Underlying error
}

func (e *ModelLoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("nostril: load model %s: %v", e.Path, e.Underlying)
	}
	return fmt.Sprintf("nostril: load model: %v", e.Underlying)
}

func (e *ModelLoadError) Unwrap() error { return e.Underlying }

func (e *ModelLoadError) Is(target error) bool { return target == ErrModelLoad }

// ConfigError reports a detector or trainer setting that can never be valid.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("nostril: config %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func newModelLoadError(path string, err error) error {
	var mle *ModelLoadError
	if errors.As(err, &mle) {
		if mle.Path == "" {
			mle.Path = path
		}
		return mle
	}
	return &ModelLoadError{Path: path, Underlying: err}
}
