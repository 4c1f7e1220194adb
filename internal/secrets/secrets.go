package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this tool's secrets in the OS keychain.
const KeyringService = "jobdigest"

// Secret account names used with the keyring.
const (
	AccountSendGrid = "sendgrid_api_key"
	AccountTelegram = "telegram_bot_token"
)

// Resolve returns the configured value if non-empty, otherwise falls back to
// the OS keyring. Config values are already env-expanded by config.Load, so
// the lookup order is: config/env first, keychain second.
func Resolve(configured, account string) (string, error) {
	if strings.TrimSpace(configured) != "" {
		return configured, nil
	}

	secret, err := keyring.Get(KeyringService, account)
	if err == nil && strings.TrimSpace(secret) != "" {
		return secret, nil
	}
	return "", fmt.Errorf("secret %q not found in config, env, or keychain", account)
}

// Set stores a secret in the OS keyring.
func Set(account, value string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

// Delete removes a secret from the OS keyring.
func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
