package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/envseal/internal/audit"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logUser      string
	logOperation string
	logSince     string
	logUntil     string
	logFile      string
	logFailed    bool
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "show at most this many entries")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "newest entries first")
	logCmd.Flags().StringVar(&logUser, "user", "", "only entries recorded by this user")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "only these operations, comma-separated (encrypt,decrypt,rotate,...)")
	logCmd.Flags().StringVar(&logSince, "since", "", "only entries on or after this date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "only entries on or before this date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logFile, "file", "", "only entries that touched this file or glob (e.g. 'services/**/.env')")
	logCmd.Flags().BoolVar(&logFailed, "failed", false, "only entries where some values could not be processed")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "one short line per entry")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "one JSON object per line, as stored")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logUser = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logFile = ""
	logFailed = false
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show who sealed, revealed or rotated which files",
	Long: `Prints the project's audit trail, oldest entry first.

Every in-place operation appends one entry: the operation and policy, the
files it touched, and how many values changed or failed. Values and
passphrases are never recorded.

Columns:
  WHEN     local time of the operation
  WHO      user@host that ran it
  OP       operation, with its policy (encrypt/marked-only)
  VALUES   +N values changed, !N values that failed
  FILES    files touched, relative to the project root

Examples:
  envseal log -n 5 --reverse               # Five newest entries
  envseal log --operation rotate           # Every passphrase rotation
  envseal log --file 'services/**/.env'    # History of matching files
  envseal log --failed --since 2024-01-01  # Partial failures this year
  envseal log --json | jq .files           # Feed into other tools`,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		User:       logUser,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
		File:       logFile,
		FailedOnly: logFailed,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		Logger.Debugf("Log workflow failed: %v", err)
		fmt.Println(formatLogError(err))
		if isLogUnexpectedError(err) {
			return err
		}
		return nil
	}
	Logger.Debugf("Showing %d of %d audit entries", len(result.Entries), result.TotalEntriesBeforeFilter)

	switch {
	case len(result.Entries) > 0:
	case result.TotalEntriesBeforeFilter == 0:
		fmt.Println("The audit log is empty.")
		return nil
	default:
		fmt.Printf("None of the %d audit entries match the filters.\n", result.TotalEntriesBeforeFilter)
		return nil
	}

	switch {
	case logJSON:
		return outputLogJSON(result.Entries)
	case logOneline:
		outputLogOneline(result.Entries)
	default:
		outputLogTable(result.Entries)
	}
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoAuditLog):
		return ui.Info.Sprint("ℹ") + " Nothing logged yet. Entries appear once files are sealed, revealed or rotated in place."

	case errors.Is(err, kerrors.ErrInvalidDateFormat), errors.Is(err, kerrors.ErrInvalidInput):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrProjectNotInitialized):
		return formatError(err)

	default:
		return ui.Error.Sprint("✗") + " Could not read the audit log: " + err.Error()
	}
}

// isLogUnexpectedError reports whether err should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrProjectNotInitialized),
		errors.Is(err, kerrors.ErrNoAuditLog),
		errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, kerrors.ErrInvalidInput):
		return false
	default:
		return true
	}
}

// outputLogJSON writes the entries in the log file's own JSON Lines shape.
func outputLogJSON(entries []audit.Entry) error {
	encoder := json.NewEncoder(os.Stdout)
	for _, e := range entries {
		if err := encoder.Encode(e); err != nil {
			return fmt.Errorf("failed to encode audit entry %s: %w", e.ID, err)
		}
	}
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%s %s %s %s\n",
			workflows.FormatDate(e.Timestamp), workflows.FormatOperation(e),
			workflows.FormatCounts(e), workflows.FormatFiles(e))
	}
}

const logRowFormat = "%-19s  %-24s  %-20s  %-7s  %s\n"

func outputLogTable(entries []audit.Entry) {
	fmt.Print(ui.Key.Sprintf(logRowFormat, "WHEN", "WHO", "OP", "VALUES", "FILES"))
	for _, e := range entries {
		fmt.Printf(logRowFormat,
			workflows.FormatDateTime(e.Timestamp), logWho(e), workflows.FormatOperation(e),
			workflows.FormatCounts(e), workflows.FormatFiles(e))
	}
}

func logWho(e audit.Entry) string {
	if e.Host == "" {
		return e.User
	}
	return e.User + "@" + e.Host
}
