package errors

import "errors"

// Envelope errors classify failures of a single seal or unseal operation.
var (
	// ErrInvalidInput indicates a malformed passphrase, salt, or key length.
	// It is a caller mistake and is never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFormat indicates a value does not carry a well-formed envelope token.
	ErrFormat = errors.New("malformed envelope token")

	// ErrAuthentication indicates the integrity check failed while opening a
	// token, either because the passphrase is wrong or the token was altered.
	ErrAuthentication = errors.New("authentication failed: wrong passphrase or tampered value")
)

// Passphrase errors indicate the passphrase could not be obtained.
var (
	// ErrPassphraseUnavailable indicates no configured source produced a passphrase.
	ErrPassphraseUnavailable = errors.New("no passphrase available")

	// ErrPassphraseMismatch indicates the confirmation prompt did not match.
	ErrPassphraseMismatch = errors.New("passphrases do not match")
)

// Transform errors indicate per-line failures inside a document.
var (
	// ErrLinesFailed indicates one or more lines of a document could not be
	// transformed. The individual line errors are reported alongside it.
	ErrLinesFailed = errors.New("one or more values could not be transformed")

	// ErrUnknownPolicy indicates the transform policy name is not recognised.
	ErrUnknownPolicy = errors.New("unknown transform policy")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFileType indicates the file is not of the expected type.
	ErrInvalidFileType = errors.New("invalid file type")
)

// Config errors indicate issues with the project configuration.
var (
	// ErrInvalidConfig indicates the configuration is malformed or inconsistent.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrConfigExists indicates a configuration file is already present.
	ErrConfigExists = errors.New("configuration already exists")

	// ErrProjectNotInitialized indicates no .envseal.toml was found.
	ErrProjectNotInitialized = errors.New("project not initialized: run 'envseal init' first")
)

// Audit errors indicate issues reading the audit log.
var (
	// ErrNoAuditLog indicates the project has no audit log yet.
	ErrNoAuditLog = errors.New("no audit log found")

	// ErrInvalidDateFormat indicates a date filter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
