package cmd

import (
	"context"
	"errors"

	"github.com/PolarWolf314/envseal/internal/configs"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	initForce            bool
	initPassphraseSource string
	initPassphraseFile   string
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing "+configs.ConfigFileName)
	initCmd.Flags().StringVar(&initPassphraseSource, "source", "", "passphrase source: env, file, keyring or prompt")
	initCmd.Flags().StringVar(&initPassphraseFile, "passphrase-file", "", "use this file as the passphrase source")
}

func resetInitCommandState() {
	initForce = false
	initPassphraseSource = ""
	initPassphraseFile = ""
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create " + configs.ConfigFileName + " in the current directory",
	Long: `Creates a default ` + configs.ConfigFileName + ` in the current directory, which
becomes the project root, and adds plaintext backup patterns to .gitignore
in git repositories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing envseal...", verbose)
		defer cleanup()

		result, err := workflows.Init(context.Background(), workflows.InitOptions{
			Force:            initForce,
			PassphraseSource: initPassphraseSource,
			PassphraseFile:   initPassphraseFile,
		})
		if err != nil {
			Logger.Errorf("Init failed: %v", err)
			if errors.Is(err, kerrors.ErrConfigExists) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " envseal is already initialized\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envseal init --force") + " to overwrite " + ui.Path.Sprint(configs.ConfigFileName)
				return nil
			}
			spinner.FinalMSG = formatError(err)
			return err
		}

		Logger.Infof("Init command completed for project %s", result.ProjectName)
		finalMessage := ui.Success.Sprint("✓") + " Initialized envseal for " + ui.Highlight.Sprint(result.ProjectName) + "\n" +
			"Created " + ui.Path.Sprint(result.ConfigPath)
		if result.GitignoreUpdated {
			finalMessage += "\n" + "Added plaintext backup patterns to " + ui.Path.Sprint(".gitignore")
		}
		finalMessage += "\n" + ui.Info.Sprint("→") + " Set " + ui.Code.Sprint(configs.DefaultPassphraseEnvVar) +
			" or run " + ui.Code.Sprint("envseal keyring set") + ", then " + ui.Code.Sprint("envseal encrypt")

		spinner.FinalMSG = finalMessage
		return nil
	},
}
