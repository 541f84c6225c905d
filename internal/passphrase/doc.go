// Package passphrase obtains the passphrase that seals and unseals values.
//
// A Source is resolved once per command and the resulting bytes are passed
// into the transform engine by value. The engine never reads environment
// variables, files or keyrings itself.
//
// # Sources
//
//   - Literal: a value given on the command line
//   - Env: an environment variable (ENVSEAL_PASSPHRASE by default)
//   - File: the first line of a file
//   - Keyring: the operating system keyring (Keychain, Secret Service,
//     KWallet, Windows Credential Manager)
//   - Prompt: hidden terminal input, optionally asked twice
//   - Chain: the first source that yields a value
//
// Sources that have nothing to offer return ErrPassphraseUnavailable, which
// lets a Chain move on to the next source.
package passphrase
