package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jobdigest/internal/secrets"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage secrets in the OS keychain",
}

var secretSetCmd = &cobra.Command{
	Use:       "set {sendgrid|telegram}",
	Short:     "Store a secret in the OS keychain",
	Long:      "Prompts for the secret value and stores it under the jobdigest keychain service. Used when env vars are not an option.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"sendgrid", "telegram"},
	RunE:      runSecretSet,
}

var secretDeleteCmd = &cobra.Command{
	Use:       "delete {sendgrid|telegram}",
	Short:     "Remove a secret from the OS keychain",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"sendgrid", "telegram"},
	RunE:      runSecretDelete,
}

func init() {
	rootCmd.AddCommand(secretCmd)
	secretCmd.AddCommand(secretSetCmd)
	secretCmd.AddCommand(secretDeleteCmd)
}

func accountFor(name string) (string, error) {
	switch name {
	case "sendgrid":
		return secrets.AccountSendGrid, nil
	case "telegram":
		return secrets.AccountTelegram, nil
	default:
		return "", fmt.Errorf("unknown secret %q (want sendgrid or telegram)", name)
	}
}

func runSecretSet(cmd *cobra.Command, args []string) error {
	account, err := accountFor(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Enter %s secret: ", args[0])
	value, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading secret: %w", err)
	}

	if err := secrets.Set(account, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("storing secret: %w", err)
	}
	fmt.Fprintf(os.Stdout, "stored %s secret in keychain\n", args[0])
	return nil
}

func runSecretDelete(cmd *cobra.Command, args []string) error {
	account, err := accountFor(args[0])
	if err != nil {
		return err
	}
	if err := secrets.Delete(account); err != nil {
		return fmt.Errorf("deleting secret: %w", err)
	}
	fmt.Fprintf(os.Stdout, "deleted %s secret from keychain\n", args[0])
	return nil
}
