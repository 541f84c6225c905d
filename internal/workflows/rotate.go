package workflows

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PolarWolf314/envseal/internal/envelope"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	logger "github.com/PolarWolf314/envseal/internal/logging"
	"github.com/PolarWolf314/envseal/internal/transform"
)

// RotateOptions configures the rotate workflow.
type RotateOptions struct {
	// Dir is the directory to run in. Defaults to the working directory.
	Dir string

	// FilePatterns specifies files to rotate. If empty, the configured
	// patterns are used.
	FilePatterns []string

	// OldPassphrase unseals the current values.
	OldPassphrase []byte

	// NewPassphrase seals them again.
	NewPassphrase []byte

	DryRun   bool
	NoBackup bool
	FailFast bool
	Workers  int

	Codec *envelope.Codec
	Log   logger.Logger
}

// RotateResult contains the outcome of a rotate operation.
type RotateResult struct {
	FilesResult
}

// Rotate re-seals every sealed value under a new passphrase.
//
// Each value is unsealed with the old passphrase and sealed with the new one,
// getting a fresh salt and nonce. Plain values are left alone. A value that
// fails to unseal keeps its old token and is reported as a line error.
//
// Returns ErrInvalidInput if either passphrase is empty.
// Returns ErrPassphraseMismatch if both passphrases are the same.
func Rotate(ctx context.Context, opts RotateOptions) (*RotateResult, error) {
	if len(opts.OldPassphrase) == 0 || len(opts.NewPassphrase) == 0 {
		return nil, fmt.Errorf("%w: rotate needs the old and the new passphrase", kerrors.ErrInvalidInput)
	}
	if bytes.Equal(opts.OldPassphrase, opts.NewPassphrase) {
		return nil, fmt.Errorf("%w: the new passphrase must differ from the old one", kerrors.ErrPassphraseMismatch)
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
			Policy:        transform.PolicyRotate,
			Passphrase:    opts.NewPassphrase,
			OldPassphrase: opts.OldPassphrase,
			FailFast:      opts.FailFast || proj.config.Transform.FailFast,
			Workers:       proj.workers(opts.Workers),
		},
		codec:    opts.Codec,
		log:      opts.Log,
		noBackup: opts.NoBackup,
	}
	if opts.DryRun {
		r.mode = writeNone
	}

	reports, err := r.process(ctx)
	if err != nil {
		return nil, err
	}
	r.record("rotate", reports)

	return &RotateResult{FilesResult{
		Files:       reports,
		ProjectPath: proj.root,
		DryRun:      opts.DryRun,
	}}, nil
}
