// Package errors provides typed error values for envseal.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Envelope errors: ErrInvalidInput, ErrFormat, ErrAuthentication
//   - Passphrase errors: ErrPassphraseUnavailable, ErrPassphraseMismatch
//   - Transform errors: ErrLinesFailed, ErrUnknownPolicy
//   - File errors: ErrNoFilesFound, ErrFileNotFound, ErrInvalidFileType
//   - Config errors: ErrInvalidConfig, ErrConfigExists, ErrProjectNotInitialized
//   - Audit errors: ErrNoAuditLog, ErrInvalidDateFormat
//
// I/O failures are not wrapped in a sentinel; they surface as the
// underlying *fs.PathError from the file layer.
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(passphrase) == 0 {
//	    return nil, fmt.Errorf("%w: passphrase must not be empty", kerrors.ErrInvalidInput)
//	}
//
// Handle errors in the CLI layer:
//
//	_, err := envelope.Unseal(token, passphrase)
//	if errors.Is(err, kerrors.ErrAuthentication) {
//	    // Show user-friendly message
//	}
package errors
