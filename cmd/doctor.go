package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	doctorJSONOutput bool
	doctorStrict     bool
	// doctorExitFunc is the function called to exit with a specific code.
	// Can be overridden for testing.
	doctorExitFunc = os.Exit
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "print the checks as a JSON document")
	doctorCmd.Flags().BoolVar(&doctorStrict, "strict", false, "exit 2 on warnings too, for CI gates")
}

func resetDoctorCommandState() {
	doctorJSONOutput = false
	doctorStrict = false
	doctorExitFunc = os.Exit
}

// SetDoctorExitFunc sets the exit function for testing purposes.
func SetDoctorExitFunc(f func(int)) {
	doctorExitFunc = f
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that nothing secret is about to leak",
	Long: `Inspects the project for states where a secret could end up in git.

Checks:
  Project configuration     envseal.toml parses and its policy is known
  Passphrase source         the configured file or variable exists and the
                            passphrase file is readable only by you
  Gitignore configuration   plaintext backups are ignored by git
  Plaintext backups         no backup of a revealed file was left behind
  Unsealed values           no marked or plain value waits to be sealed

Each failing check prints the command or edit that fixes it.

Exit codes:
  0  every check passed
  1  warnings only (2 with --strict)
  2  at least one error

Examples:
  envseal doctor                # Human-readable report
  envseal doctor --strict       # Fail a pre-commit hook on any warning
  envseal doctor --json         # Machine-readable report`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting doctor command")

	result, err := workflows.Doctor(context.Background(), workflows.DoctorOptions{})
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " Could not inspect the project: " + err.Error())
		return err
	}

	for _, check := range result.Checks {
		Logger.Debugf("Check %s: status=%s, message=%s", check.Name, check.Status.String(), check.Message)
	}

	if doctorJSONOutput {
		if err := outputDoctorJSON(result); err != nil {
			return err
		}
	} else {
		printDoctorResults(result)
	}

	if code := doctorExitCode(result.Summary, doctorStrict); code != 0 {
		doctorExitFunc(code)
	}
	return nil
}

// doctorExitCode maps a summary to the process exit code.
func doctorExitCode(summary workflows.DoctorSummary, strict bool) int {
	switch {
	case summary.Errors > 0:
		return 2
	case summary.Warnings > 0 && strict:
		return 2
	case summary.Warnings > 0:
		return 1
	default:
		return 0
	}
}

// outputDoctorJSON outputs the result as JSON.
func outputDoctorJSON(result *workflows.DoctorResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// printDoctorResults prints one row per check, with the fix for each
// failing check directly beneath it.
func printDoctorResults(result *workflows.DoctorResult) {
	for _, check := range result.Checks {
		var label string
		switch check.Status {
		case workflows.CheckPass:
			label = ui.Success.Sprint("ok   ")
		case workflows.CheckWarning:
			label = ui.Warning.Sprint("warn ")
		case workflows.CheckError:
			label = ui.Error.Sprint("error")
		}
		fmt.Printf("%s  %-24s  %s\n", label, check.Name, check.Message)
		if check.Status != workflows.CheckPass && check.Suggestion != "" {
			fmt.Printf("       %-24s  %s %s\n", "", ui.Info.Sprint("fix:"), check.Suggestion)
		}
	}

	fmt.Println()
	summary := result.Summary
	total := summary.Passed + summary.Warnings + summary.Errors
	line := fmt.Sprintf("%d of %d checks passed", summary.Passed, total)
	switch {
	case summary.Errors > 0:
		fmt.Println(ui.Error.Sprint("✗") + " " + line + fmt.Sprintf(", %d with errors, %d with warnings", summary.Errors, summary.Warnings))
	case summary.Warnings > 0:
		fmt.Println(ui.Warning.Sprint("⚠") + " " + line + fmt.Sprintf(", %d with warnings", summary.Warnings))
	default:
		fmt.Println(ui.Success.Sprint("✓") + " " + line)
	}
}
