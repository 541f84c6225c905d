package cmd

import (
	"context"

	"github.com/PolarWolf314/envseal/internal/passphrase"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var keyringPassphrase passphraseFlags

func init() {
	keyringPassphrase.register(keyringSetCmd.Flags(), "", false)

	keyringCmd.AddCommand(keyringSetCmd)
	keyringCmd.AddCommand(keyringDeleteCmd)
}

func resetKeyringCommandState() {
	keyringPassphrase = passphraseFlags{}
}

var keyringCmd = &cobra.Command{
	Use:   "keyring",
	Short: "Manage the passphrase stored in the OS keyring",
	Long: `Stores or removes the project passphrase in the OS keyring (macOS Keychain,
Windows Credential Manager, Secret Service or KWallet).

The entry is named by passphrase.keyring_service and passphrase.keyring_key
in .envseal.toml. Use 'envseal encrypt --keyring', or set
passphrase.source = "keyring", to read it.`,
}

var keyringSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the project passphrase in the OS keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keyring set command")

		k, err := workflows.ProjectKeyring("")
		if err != nil {
			cmd.Println(formatError(err))
			return err
		}

		pass, err := resolveNewPassphrase(context.Background(), keyringPassphrase)
		if err != nil {
			cmd.Println(formatError(err))
			return err
		}
		defer passphrase.Zero(pass)

		if err := k.Store(pass); err != nil {
			Logger.Errorf("Failed to store passphrase: %v", err)
			cmd.Println(formatError(err))
			return err
		}

		cmd.Println(ui.Success.Sprint("✓") + " Stored passphrase in keyring entry " + ui.Highlight.Sprint(k.Service+"/"+k.Key))
		return nil
	},
}

var keyringDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the project passphrase from the OS keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keyring delete command")

		k, err := workflows.ProjectKeyring("")
		if err != nil {
			cmd.Println(formatError(err))
			return err
		}

		if err := k.Delete(); err != nil {
			Logger.Errorf("Failed to delete passphrase: %v", err)
			cmd.Println(formatError(err))
			return err
		}

		cmd.Println(ui.Success.Sprint("✓") + " Removed keyring entry " + ui.Highlight.Sprint(k.Service+"/"+k.Key))
		return nil
	},
}
