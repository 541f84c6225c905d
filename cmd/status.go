package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var statusJSONOutput bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSONOutput, "json", false, "output in JSON format")
}

func resetStatusCommandState() {
	statusJSONOutput = false
}

// statusFileJSON is the JSON shape of one file's status.
type statusFileJSON struct {
	Path    string   `json:"path"`
	Sealed  int      `json:"sealed"`
	Marked  int      `json:"marked"`
	Plain   int      `json:"plain"`
	Invalid int      `json:"invalid"`
	Pending []string `json:"pending,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status [files...]",
	Short: "Show which values are sealed",
	Long: `Counts the sealed, marked and plain values of each .env file.

  - sealed: the value is an ENC[v1] token
  - marked: the value is ENC[v1]:<plaintext>, waiting for 'envseal encrypt'
  - plain:  the value is plaintext

No passphrase is needed and no file is modified.

Use --json for machine-readable output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		result, err := workflows.Status(context.Background(), workflows.StatusOptions{FilePatterns: args})
		if err != nil {
			fmt.Println(formatError(err))
			return err
		}

		if statusJSONOutput {
			return outputStatusJSON(result)
		}

		printStatusTable(result)
		return nil
	},
}

func outputStatusJSON(result *workflows.StatusResult) error {
	files := make([]statusFileJSON, len(result.Files))
	for i, f := range result.Files {
		files[i] = statusFileJSON{
			Path:    f.Path,
			Sealed:  f.Sealed,
			Marked:  f.Marked,
			Plain:   f.Plain,
			Invalid: f.Invalid,
			Pending: append(append([]string(nil), f.MarkedKeys...), f.PlainKeys...),
		}
	}

	data, err := json.MarshalIndent(map[string]any{
		"project":     result.ProjectName,
		"initialized": result.Initialized,
		"files":       files,
		"summary":     result.Summary,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printStatusTable(result *workflows.StatusResult) {
	fmt.Printf("Project: %s\n", ui.Highlight.Sprint(result.ProjectName))
	if !result.Initialized {
		fmt.Println(ui.Warning.Sprint("⚠") + " No .envseal.toml found, using defaults. Run " + ui.Code.Sprint("envseal init") + " to create one")
	}
	fmt.Println()

	fmt.Printf("  %-32s %7s %7s %7s\n", "FILE", "SEALED", "MARKED", "PLAIN")
	for _, f := range result.Files {
		fmt.Printf("  %-32s %7d %7d %7d\n", f.Path, f.Sealed, f.Marked, f.Plain)
		if f.Marked > 0 {
			fmt.Printf("    marked: %s\n", ui.KeyList(f.MarkedKeys, 5))
		}
		if f.Plain > 0 && (verbose || debug) {
			fmt.Printf("    plain:  %s\n", ui.KeyList(f.PlainKeys, 5))
		}
		if f.Invalid > 0 {
			fmt.Printf("    %s %s\n", ui.Warning.Sprint("⚠"), ui.Plural(f.Invalid, "unparsed line"))
		}
	}
	fmt.Println()

	s := result.Summary
	fmt.Printf("Summary: %d sealed, %d marked, %d plain", s.Sealed, s.Marked, s.Plain)
	if s.Invalid > 0 {
		fmt.Printf(", %s", ui.Warning.Sprint(ui.Plural(s.Invalid, "unparsed line")))
	}
	fmt.Println()

	if s.Marked > 0 {
		fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envseal encrypt --marked-only") + " to seal marked values")
	}
}
