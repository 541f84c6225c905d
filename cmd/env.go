package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PolarWolf314/envseal/internal/passphrase"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	envFormat     string
	envPassphrase passphraseFlags
)

func init() {
	envCmd.Flags().StringVar(&envFormat, "format", "dotenv", "output format: dotenv, shell or json")
	envPassphrase.register(envCmd.Flags(), "", true)
}

func resetEnvCommandState() {
	envFormat = "dotenv"
	envPassphrase = passphraseFlags{}
}

var envCmd = &cobra.Command{
	Use:   "env [files...]",
	Short: "Print the unsealed environment",
	Long: `Unseals the given .env files, or the configured ones, and prints the
resulting variables without modifying any file. Later files override
earlier ones.

Any value that cannot be unsealed fails the whole command.

Examples:
  eval "$(envseal env --format shell)"
  envseal env --format json .env .env.local`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting env command")
		ctx := context.Background()

		switch envFormat {
		case "dotenv", "shell", "json":
		default:
			return fmt.Errorf("unknown format %q: use dotenv, shell or json", envFormat)
		}

		pass, err := resolvePassphrase(ctx, envPassphrase, "Passphrase", false)
		if err != nil {
			cmd.PrintErrln(formatError(err))
			return err
		}
		defer passphrase.Zero(pass)

		env, err := workflows.Load(ctx, workflows.LoadOptions{
			FilePatterns: args,
			Passphrase:   pass,
			Log:          Logger,
		})
		if err != nil {
			cmd.PrintErrln(formatError(err))
			return err
		}

		out := cmd.OutOrStdout()
		if envFormat == "json" {
			data, err := json.MarshalIndent(env, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal environment to JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		keys := make([]string, 0, len(env))
		for k := range env {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if envFormat == "shell" {
				fmt.Fprintf(out, "export %s=%s\n", k, shellQuote(env[k]))
			} else {
				fmt.Fprintf(out, "%s=%s\n", k, env[k])
			}
		}
		return nil
	},
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
