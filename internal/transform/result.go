package transform

import (
	"errors"
	"fmt"

	"github.com/PolarWolf314/envseal/internal/dotenv"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// LineError is a failure on one assignment. Line is 1-based.
type LineError struct {
	Line int
	Key  string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Key, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

// LineWarning reports a line that was passed through without being parsed.
type LineWarning struct {
	Line    int
	Message string
}

func (w LineWarning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Result is the outcome of a transform.
type Result struct {
	// Document holds the transformed lines. The input document is not
	// modified.
	Document *dotenv.Document

	// Changed counts assignments whose value was replaced.
	Changed int

	Errors   []LineError
	Warnings []LineWarning
}

// Err joins the line errors behind ErrLinesFailed, or returns nil when every
// line succeeded.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Errors)+1)
	errs = append(errs, fmt.Errorf("%w: %d line(s)", kerrors.ErrLinesFailed, len(r.Errors)))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}
