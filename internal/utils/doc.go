// Package utils provides shared utility functions for envseal.
//
// # Filesystem Utilities
//
//   - FindProjectRoot: walks up directories to find .envseal.toml
//   - RelativePath, RelativePaths: shortens paths for display
//   - FormatPaths: formats file paths for human-readable output
//
// # System Utilities
//
//   - GetUsername, GetHostname: identify who ran an operation (audit log)
//   - GetProjectName: the project's directory name
//
// # I/O Utilities
//
//   - ReadStdin: reads a piped value to seal or unseal
//
// # Terminal Utilities
//
//   - ReadPassphrase, ReadPassphraseFromTTY: hidden passphrase input
//   - IsTerminal, IsStdoutTerminal, IsTTYAvailable: terminal detection
package utils
