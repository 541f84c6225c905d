// Package workflows provides high-level orchestration for envseal commands.
//
// Workflows coordinate multiple operations across packages (configs, files,
// transform, audit) to implement complete user-facing features. Each
// workflow handles a single command's business logic, independent of CLI
// concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Resolves the passphrase
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Finding the project and loading .envseal.toml
//   - Resolving which .env files to touch
//   - Running the transform engine, backing up and writing files
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Seal: Seals plaintext values in .env files
//   - Reveal: Unseals sealed values, in place or to another destination
//   - Rotate: Re-seals sealed values under a new passphrase
//   - Status: Counts sealed, marked and plain values without a passphrase
//   - Load: Returns the unsealed variables without touching files
//   - Init: Creates .envseal.toml and ignores plaintext backups
//   - Log: Reads the audit log
//   - Doctor: Runs project health checks
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. Use errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Seal(ctx, opts)
//	if errors.Is(err, kerrors.ErrNoFilesFound) {
//	    // Show user-friendly message
//	}
//
// Failures of individual values do not fail a workflow; they are reported
// in FileReport.Errors.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Cancelling it stops processing between values.
package workflows
