package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/envseal/internal/envelope"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	logger "github.com/PolarWolf314/envseal/internal/logging"
	"github.com/PolarWolf314/envseal/internal/transform"
)

// SealOptions configures the seal workflow.
type SealOptions struct {
	// Dir is the directory to run in. Defaults to the working directory.
	Dir string

	// FilePatterns specifies files to seal. If empty, the configured
	// patterns are used.
	FilePatterns []string

	// Passphrase seals the values. It is not modified.
	Passphrase []byte

	// MarkedOnly seals only values written as ENC[v1]:<plaintext>,
	// overriding the configured policy.
	MarkedOnly bool

	// DryRun reports what would change without writing files.
	DryRun bool

	// NoBackup skips the backup copy even when backups are configured.
	NoBackup bool

	// FailFast stops at the first value that cannot be sealed.
	FailFast bool

	// Workers overrides the configured number of concurrent values.
	Workers int

	// Codec defaults to envelope.DefaultCodec.
	Codec *envelope.Codec
	Log   logger.Logger
}

// SealResult contains the outcome of a seal operation.
type SealResult struct {
	FilesResult

	// Policy is the policy that was applied.
	Policy transform.Policy
}

// Seal seals the values of .env files in place.
//
// Each file is parsed, transformed with the "all" or "marked-only" policy,
// backed up and written back atomically. Values that are already sealed are
// left alone, so running Seal twice changes nothing the second time.
//
// Returns ErrNoFilesFound if no files match the patterns.
// Returns ErrInvalidInput if the passphrase is empty.
// Line failures are reported per file and do not stop other files unless
// FailFast is set.
func Seal(ctx context.Context, opts SealOptions) (*SealResult, error) {
	if len(opts.Passphrase) == 0 {
		return nil, fmt.Errorf("%w: passphrase must not be empty", kerrors.ErrInvalidInput)
	}

	proj, err := loadProject(opts.Dir)
	if err != nil {
		return nil, err
	}

	policy, err := transform.ParsePolicy(proj.config.Transform.Policy)
	if err != nil {
		return nil, err
	}
	if opts.MarkedOnly {
		policy = transform.PolicyMarkedOnly
	}

	envFiles, err := proj.resolveFiles(opts.FilePatterns)
	if err != nil {
		return nil, err
	}

	r := &run{
		proj:  proj,
		files: envFiles,
		transform: transform.Options{
			Policy:     policy,
			Passphrase: opts.Passphrase,
			FailFast:   opts.FailFast || proj.config.Transform.FailFast,
			Workers:    proj.workers(opts.Workers),
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
	r.record("encrypt", reports)

	return &SealResult{
		FilesResult: FilesResult{
			Files:       reports,
			ProjectPath: proj.root,
			DryRun:      opts.DryRun,
		},
		Policy: policy,
	}, nil
}
