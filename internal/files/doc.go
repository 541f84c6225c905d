// Package files locates .env files and writes them back safely.
//
// Patterns passed to Resolve may be literal paths, directories (searched
// recursively) or glob patterns with ** support. Relative patterns are taken
// from the project root. The .envseal state directory, VCS directories and
// backup copies are never returned.
//
// Writes go through WriteAtomic, which writes a temporary file in the same
// directory and renames it over the target, so a crash never leaves a
// half-written secrets file behind.
package files
