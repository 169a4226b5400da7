package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ColorProvider supplies the escape sequences used when printing errors.
// It keeps this package independent from the ui package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColor struct{}

func (noColor) Red() string    { return "" }
func (noColor) Yellow() string { return "" }
func (noColor) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var timeoutErr TimeoutError
	var validationErr ValidationError
	var configErr ConfigError
	switch {
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &validationErr):
		return ExitErrorValidation
	case errors.As(err, &configErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleOrchestrationError prints a user-facing description of a failed
// submission to out and returns the matching exit code. A nil colors
// argument prints without color; a nil error prints nothing.
func HandleOrchestrationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColor{}
	}
	if out == nil {
		out = io.Discard
	}

	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sSubmission timed out after %s.%s\n", colors.Yellow(), duration.Round(time.Millisecond), colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sSubmission canceled after %s.%s\n", colors.Yellow(), duration.Round(time.Millisecond), colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %s%s\n", colors.Red(), UserMessage(err), colors.Reset())
		var fault OrchestrationFault
		if errors.As(err, &fault) && len(fault.Faults) > 0 {
			fmt.Fprintf(out, "Failed targets: %s\n", strings.Join(fault.FailedTargets(), ", "))
		}
	}
	return code
}
