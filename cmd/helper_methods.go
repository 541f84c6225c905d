package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/envseal/internal/configs"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/passphrase"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/briandowns/spinner"
	"github.com/spf13/pflag"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
//
// Start the spinner only after the passphrase is resolved, since a prompt
// cannot share the terminal with it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			log.SetOutput(os.Stderr)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// passphraseFlags are the command-line passphrase sources. At most one may
// be given; without any the project's configured source is used.
type passphraseFlags struct {
	literal string
	envVar  string
	file    string
	keyring bool
	prompt  bool
}

// register adds the flags to fs, each name prefixed with prefix.
func (f *passphraseFlags) register(fs *pflag.FlagSet, prefix string, withKeyring bool) {
	fs.StringVar(&f.literal, prefix+"passphrase", "", "passphrase to use (visible in shell history and process lists)")
	fs.StringVar(&f.envVar, prefix+"passphrase-env", "", "read the passphrase from this environment variable")
	fs.StringVar(&f.file, prefix+"passphrase-file", "", "read the passphrase from the first line of this file")
	if withKeyring {
		fs.BoolVar(&f.keyring, prefix+"keyring", false, "read the passphrase from the OS keyring")
	}
	fs.BoolVar(&f.prompt, prefix+"prompt", false, "always prompt for the passphrase")
}

func (f passphraseFlags) overrides() passphrase.Overrides {
	return passphrase.Overrides{
		Literal: f.literal,
		EnvVar:  f.envVar,
		File:    f.file,
		Keyring: f.keyring,
		Prompt:  f.prompt,
	}
}

// passphraseSource builds the source for the current project. confirm makes
// a prompt ask twice.
func passphraseSource(f passphraseFlags, label string, confirm bool) (passphrase.Source, error) {
	return workflows.PassphraseSource(workflows.PassphraseOptions{
		Overrides: f.overrides(),
		Label:     label,
		Confirm:   confirm,
		Log:       Logger,
	})
}

// resolvePassphrase resolves the passphrase for the current project. The
// caller must passphrase.Zero the result.
func resolvePassphrase(ctx context.Context, f passphraseFlags, label string, confirm bool) ([]byte, error) {
	source, err := passphraseSource(f, label, confirm)
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Resolving passphrase from %s", source.Name())
	return source.Resolve(ctx)
}

// sealingSource is the source for commands that seal. A typed passphrase is
// asked for twice: a typo would seal values under a passphrase nobody knows.
func sealingSource(f passphraseFlags) (passphrase.Source, error) {
	return passphraseSource(f, "Passphrase", true)
}

func resolveSealingPassphrase(ctx context.Context, f passphraseFlags) ([]byte, error) {
	source, err := sealingSource(f)
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Resolving passphrase from %s", source.Name())
	return source.Resolve(ctx)
}

// resolveNewPassphrase resolves a passphrase that is not configured for the
// project yet. Without flags it prompts twice.
func resolveNewPassphrase(ctx context.Context, f passphraseFlags) ([]byte, error) {
	source, err := passphrase.FromConfig(
		configs.PassphraseConfig{Source: configs.SourcePrompt},
		f.overrides(), "New passphrase", true, Logger,
	)
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Resolving new passphrase from %s", source.Name())
	return source.Resolve(ctx)
}

// transformFlags control how files are rewritten.
type transformFlags struct {
	dryRun   bool
	noBackup bool
	failFast bool
	workers  int
}

func (f *transformFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.dryRun, "dry-run", false, "show what would change without writing files")
	fs.BoolVar(&f.noBackup, "no-backup", false, "do not keep a backup copy of changed files")
	fs.BoolVar(&f.failFast, "fail-fast", false, "stop at the first value that fails")
	fs.IntVar(&f.workers, "workers", 0, "values processed concurrently (default from config)")
}

// formatError formats a workflow error for display to the user.
func formatError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound), errors.Is(err, kerrors.ErrFileNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Pass file paths or set " + ui.Code.Sprint("files.patterns") + " in " + ui.Path.Sprint(configs.ConfigFileName)

	case errors.Is(err, kerrors.ErrInvalidFileType):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Only " + ui.Path.Sprint(".env") + " files can be sealed"

	case errors.Is(err, kerrors.ErrPassphraseUnavailable):
		return ui.Error.Sprint("✗") + " No passphrase available\n" +
			ui.Info.Sprint("→") + " Set " + ui.Code.Sprint(configs.DefaultPassphraseEnvVar) +
			", run " + ui.Code.Sprint("envseal keyring set") + " or pass " + ui.Flag.Sprint("--prompt")

	case errors.Is(err, kerrors.ErrPassphraseMismatch):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrAuthentication):
		return ui.Error.Sprint("✗") + " Wrong passphrase or tampered value\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrFormat):
		return ui.Error.Sprint("✗") + " Malformed sealed value\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Error.Sprint("✗") + " Invalid " + ui.Path.Sprint(configs.ConfigFileName) + "\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrProjectNotInitialized):
		return ui.Error.Sprint("✗") + " envseal has not been initialized\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envseal init") + " first"

	case errors.Is(err, context.Canceled):
		return ui.Warning.Sprint("⚠") + " Cancelled"

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// formatFilesResult summarizes a file workflow. verb is the past tense of
// the operation, such as "sealed".
func formatFilesResult(result *workflows.FilesResult, verb string) string {
	var b strings.Builder

	for _, f := range result.Files {
		if f.Changed == 0 && len(f.Errors) == 0 && len(f.Warnings) == 0 {
			Logger.Debugf("%s: nothing %s", f.Path, verb)
			continue
		}
		fmt.Fprintf(&b, "  %s: %s %s", ui.Path.Sprint(f.Path), ui.Plural(f.Changed, "value"), verb)
		if f.Backup != "" {
			fmt.Fprintf(&b, " %s", ui.Muted.Sprint("backup "+f.Backup))
		}
		b.WriteString("\n")
		for _, lineErr := range f.Errors {
			fmt.Fprintf(&b, "    %s %s\n", ui.Error.Sprint("✗"), lineErr.Error())
		}
		for _, w := range f.Warnings {
			fmt.Fprintf(&b, "    %s %s\n", ui.Warning.Sprint("⚠"), w.String())
		}
	}

	changed, failed := result.Changed(), result.Failed()
	var headline string
	switch {
	case failed > 0:
		headline = ui.Error.Sprint("✗") + fmt.Sprintf(" %s could not be %s", ui.Plural(failed, "value"), verb)
	case changed == 0:
		headline = ui.Success.Sprint("✓") + fmt.Sprintf(" Nothing to do, no values %s", verb)
	default:
		headline = ui.Success.Sprint("✓") + fmt.Sprintf(" %s %s in %s",
			strings.ToUpper(verb[:1])+verb[1:], ui.Plural(changed, "value"), ui.Plural(len(result.Files), "file"))
	}
	if result.DryRun {
		headline += " " + ui.Muted.Sprint("dry run, no files written")
	}

	return b.String() + headline
}

// errLinesFailed is returned by file commands when some values failed, so
// the process exits non-zero after the report was printed.
func errLinesFailed(result *workflows.FilesResult) error {
	if result.Failed() == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d", kerrors.ErrLinesFailed, result.Failed())
}
