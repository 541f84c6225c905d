package transform

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/PolarWolf314/envseal/internal/dotenv"
	"github.com/PolarWolf314/envseal/internal/envelope"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	logger "github.com/PolarWolf314/envseal/internal/logging"
)

// Options configures a single transform.
type Options struct {
	Policy Policy

	// Passphrase seals values, or unseals them for PolicyReveal.
	Passphrase []byte

	// OldPassphrase unseals values before they are resealed. Only used by
	// PolicyRotate.
	OldPassphrase []byte

	// FailFast stops at the first failing line and returns it as the error.
	FailFast bool

	// Workers is the number of lines processed concurrently. Values below 2
	// process lines one at a time. Output order never depends on Workers.
	Workers int
}

// Engine applies policies to documents using one codec.
type Engine struct {
	codec *envelope.Codec
	log   logger.Logger
}

// New returns an engine. A nil codec means envelope.DefaultCodec.
func New(codec *envelope.Codec, log logger.Logger) *Engine {
	if codec == nil {
		codec = envelope.DefaultCodec
	}
	return &Engine{codec: codec, log: log}
}

// outcome is the per-line result computed by a worker.
type outcome struct {
	value   string
	line    dotenv.Line
	changed bool
	err     error
}

// Transform applies opts.Policy to every assignment of doc and returns a new
// document. Invalid option values are returned as errors before any line is
// processed.
func (e *Engine) Transform(ctx context.Context, doc *dotenv.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", kerrors.ErrInvalidInput)
	}
	if err := validateOptions(&opts); err != nil {
		return nil, err
	}

	targets := doc.Assignments()
	outcomes := make([]outcome, len(targets))

	e.log.Debugf("Transforming %d assignment(s) with policy %s", len(targets), opts.Policy)

	var err error
	if opts.Workers > 1 && len(targets) > 1 {
		err = e.runParallel(ctx, doc, targets, outcomes, opts)
	} else {
		err = e.runSequential(ctx, doc, targets, outcomes, opts)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Document: doc.Clone()}
	for i, line := range doc.Lines {
		if line.Kind == dotenv.KindInvalid {
			e.log.Debugf("line %d: passed through: %s", i+1, line.Warning)
			result.Warnings = append(result.Warnings, LineWarning{Line: i + 1, Message: line.Warning})
		}
	}
	for n, idx := range targets {
		out := outcomes[n]
		line := doc.Lines[idx]
		if out.err != nil {
			result.Errors = append(result.Errors, LineError{Line: idx + 1, Key: line.Key, Err: out.err})
			continue
		}
		if out.changed {
			result.Document.Lines[idx] = out.line
			result.Changed++
		}
	}

	e.log.Debugf("Transform finished: %d changed, %d failed", result.Changed, len(result.Errors))
	return result, nil
}

// TransformText parses text, transforms it and renders the result.
func (e *Engine) TransformText(ctx context.Context, text string, opts Options) (string, *Result, error) {
	result, err := e.Transform(ctx, dotenv.Parse(text), opts)
	if err != nil {
		return "", nil, err
	}
	return result.Document.Render(), result, nil
}

func (e *Engine) runSequential(ctx context.Context, doc *dotenv.Document, targets []int, outcomes []outcome, opts Options) error {
	for n, idx := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcomes[n] = e.apply(doc.Lines[idx], opts)
		if outcomes[n].err != nil {
			e.log.Debugf("line %d (%s): %v", idx+1, doc.Lines[idx].Key, outcomes[n].err)
			if opts.FailFast {
				return LineError{Line: idx + 1, Key: doc.Lines[idx].Key, Err: outcomes[n].err}
			}
		}
	}
	return nil
}

func (e *Engine) runParallel(ctx context.Context, doc *dotenv.Document, targets []int, outcomes []outcome, opts Options) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for n, idx := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := e.apply(doc.Lines[idx], opts)
			outcomes[n] = out
			if out.err != nil {
				e.log.Debugf("line %d (%s): %v", idx+1, doc.Lines[idx].Key, out.err)
				if opts.FailFast {
					return LineError{Line: idx + 1, Key: doc.Lines[idx].Key, Err: out.err}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// Wait returns nil when the parent context is cancelled after the last
	// worker has started.
	return ctx.Err()
}

// apply computes the new value of one assignment and places it in the
// line. A value the line cannot hold, such as revealed plaintext with a
// newline, is an ErrFormat line error and leaves the line alone.
func (e *Engine) apply(line dotenv.Line, opts Options) outcome {
	out := e.decide(line, opts)
	if out.err != nil || !out.changed {
		return out
	}
	placed, ok := line.Place(out.value)
	if !ok {
		return outcome{err: fmt.Errorf("%w: value cannot be written back on a single line", kerrors.ErrFormat)}
	}
	out.line = placed
	return out
}

// decide chooses the new value of one assignment under the policy.
func (e *Engine) decide(line dotenv.Line, opts Options) outcome {
	value := line.Value

	switch opts.Policy {
	case PolicyAll:
		if envelope.IsSealed(value) {
			return outcome{}
		}
		return e.seal([]byte(value), opts.Passphrase)

	case PolicyMarkedOnly:
		if !envelope.HasMarker(value) || envelope.IsSealed(value) {
			return outcome{}
		}
		return e.seal([]byte(envelope.Payload(value)), opts.Passphrase)

	case PolicyRotate:
		if !envelope.HasMarker(value) {
			return outcome{}
		}
		plaintext, err := e.codec.Unseal(value, opts.OldPassphrase)
		if err != nil {
			return outcome{err: err}
		}
		defer envelope.Wipe(plaintext)
		return e.seal(plaintext, opts.Passphrase)

	case PolicyReveal:
		if !envelope.HasMarker(value) {
			return outcome{}
		}
		plaintext, err := e.codec.Unseal(value, opts.Passphrase)
		if err != nil {
			return outcome{err: err}
		}
		defer envelope.Wipe(plaintext)
		return outcome{value: string(plaintext), changed: true}
	}

	return outcome{err: fmt.Errorf("%w: %q", kerrors.ErrUnknownPolicy, opts.Policy)}
}

func (e *Engine) seal(plaintext, passphrase []byte) outcome {
	token, err := e.codec.Seal(plaintext, passphrase)
	if err != nil {
		return outcome{err: err}
	}
	return outcome{value: token, changed: true}
}

func validateOptions(opts *Options) error {
	if opts.Policy == "" {
		opts.Policy = PolicyAll
	}
	if _, err := ParsePolicy(string(opts.Policy)); err != nil {
		return err
	}
	if len(opts.Passphrase) == 0 {
		return fmt.Errorf("%w: passphrase is empty", kerrors.ErrInvalidInput)
	}
	if opts.Policy == PolicyRotate && len(opts.OldPassphrase) == 0 {
		return fmt.Errorf("%w: rotate needs the old passphrase", kerrors.ErrInvalidInput)
	}
	return nil
}
