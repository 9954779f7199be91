package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPrecondition = errors.New("precondition failed")
	ErrStructural   = errors.New("structural violation")
	ErrConflict     = errors.New("rename conflict")
	ErrIO           = errors.New("i/o failure")
)

// Exit codes reported by the CLI for each marker.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitPrecondition = 2
	ExitStructural   = 3
	ExitConflict     = 4
)

// Wrap builds an error message that includes stage and path context while
// tagging it with the provided marker. The marker should be one of the
// exported sentinel errors above; nil falls back to ErrIO.
func Wrap(marker error, stage, path, message string, err error) error {
	detail := buildDetail(stage, path, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a run error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrPrecondition):
		return ExitPrecondition
	case errors.Is(err, ErrStructural):
		return ExitStructural
	case errors.Is(err, ErrConflict):
		return ExitConflict
	default:
		return ExitFailure
	}
}

// Kind returns a short label for the marker carried by err, for log fields.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrPrecondition):
		return "precondition"
	case errors.Is(err, ErrStructural):
		return "structural"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "unknown"
	}
}

func buildDetail(stage, path, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if path = strings.TrimSpace(path); path != "" {
		parts = append(parts, path)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "run failure"
	}
	return strings.Join(parts, ": ")
}
