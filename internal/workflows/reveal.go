package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/envseal/internal/envelope"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	logger "github.com/PolarWolf314/envseal/internal/logging"
	"github.com/PolarWolf314/envseal/internal/transform"
)

// RevealOptions configures the reveal workflow.
type RevealOptions struct {
	// Dir is the directory to run in. Defaults to the working directory.
	Dir string

	// FilePatterns specifies files to reveal. If empty, the configured
	// patterns are used.
	FilePatterns []string

	Passphrase []byte

	// Stdout returns the revealed documents in FileReport.Content instead of
	// writing them.
	Stdout bool

	// OutputPath writes the revealed document there instead of in place.
	// Only valid when a single file is revealed.
	OutputPath string

	// DryRun reports what would change without writing files.
	DryRun   bool
	NoBackup bool
	FailFast bool
	Workers  int

	Codec *envelope.Codec
	Log   logger.Logger
}

// RevealResult contains the outcome of a reveal operation.
type RevealResult struct {
	FilesResult
}

// Reveal unseals every sealed value of .env files.
//
// By default files are rewritten in place with plaintext values. With
// Stdout or OutputPath set, the source files are left untouched.
//
// Returns ErrNoFilesFound if no files match the patterns.
// Returns ErrInvalidInput if the passphrase is empty, or OutputPath is set
// while several files matched.
// Wrong passphrases and tampered values are reported per line as
// ErrAuthentication.
func Reveal(ctx context.Context, opts RevealOptions) (*RevealResult, error) {
	if len(opts.Passphrase) == 0 {
		return nil, fmt.Errorf("%w: passphrase must not be empty", kerrors.ErrInvalidInput)
	}

	proj, err := loadProject(opts.Dir)
	if err != nil {
		return nil, err
	}

	envFiles, err := proj.resolveFiles(opts.FilePatterns)
	if err != nil {
		return nil, err
	}

	r := &run{
		proj:  proj,
		files: envFiles,
		transform: transform.Options{
			Policy:     transform.PolicyReveal,
			Passphrase: opts.Passphrase,
			FailFast:   opts.FailFast || proj.config.Transform.FailFast,
			Workers:    proj.workers(opts.Workers),
		},
		codec:    opts.Codec,
		log:      opts.Log,
		noBackup: opts.NoBackup,
	}

	switch {
	case opts.DryRun:
		r.mode = writeNone
	case opts.Stdout:
		r.mode = writeCapture
	case opts.OutputPath != "":
		if len(envFiles) != 1 {
			return nil, fmt.Errorf("%w: --output needs exactly one file, %d matched", kerrors.ErrInvalidInput, len(envFiles))
		}
		r.mode = writeTo
		r.output = opts.OutputPath
	}

	reports, err := r.process(ctx)
	if err != nil {
		return nil, err
	}
	r.record("decrypt", reports)

	return &RevealResult{FilesResult{
		Files:       reports,
		ProjectPath: proj.root,
		DryRun:      opts.DryRun,
	}}, nil
}
