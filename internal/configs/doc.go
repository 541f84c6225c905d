// Package configs manages project configuration for envseal.
//
// Configuration is stored in TOML format in .envseal.toml at the project
// root:
//
//	[files]
//	patterns = [".env"]
//	backup = true
//	backup_suffix = ".bak"
//
//	[transform]
//	policy = "all"          # or "marked-only"
//	fail_fast = false
//	workers = 1
//
//	[passphrase]
//	source = "env"          # env, file, keyring or prompt
//	env_var = "ENVSEAL_PASSPHRASE"
//	file = ""
//	keyring_service = "envseal"
//	keyring_key = "<project name>"
//
//	[audit]
//	enabled = true
//	path = ".envseal/audit.jsonl"
//
// Keys missing from the file keep the values of DefaultProjectConfig.
// Command-line flags override the file.
//
// # Settings
//
// Call InitProjectSettings() before accessing ProjectEnvsealSettings.
// It walks up the directory tree to find the nearest .envseal.toml. Commands
// also work outside a project, using defaults.
package configs
