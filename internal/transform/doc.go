// Package transform applies a sealing policy to every assignment of a parsed
// .env document.
//
// The engine never touches keys, comments, blank lines or formatting. Only
// the semantic value of selected assignments is replaced, so rendering the
// result differs from the input exactly where values changed.
//
// # Policies
//
//   - all: seal every value that is not already sealed
//   - marked-only: seal only values written as "ENC[v1]:<plaintext>"
//   - rotate: unseal with the old passphrase, seal with the new one
//   - reveal: unseal every sealed value
//
// Per-line failures are collected in Result.Errors and do not stop the
// remaining lines unless Options.FailFast is set.
package transform
