// Package audit records envseal operations in a project-level log.
//
// Every command that changes files (encrypt, decrypt, rotate) appends an
// entry, so teams can see who sealed or revealed which files and when.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line), by
// default at:
//
//	.envseal/audit.jsonl
//
// Each entry contains:
//   - A random UUID and a timestamp (RFC3339 with microseconds, UTC)
//   - The OS user and host
//   - Operation name and policy
//   - Files touched and the number of changed and failed values
//
// Values, keys and passphrases are never written to the log.
//
// # Usage
//
//	entry := audit.NewEntry("encrypt")
//	entry.Files = files
//	audit.Log(logPath, entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
package audit
