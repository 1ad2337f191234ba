package keychain

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	serviceName  = "demobot"
	TokenAccount = "telegram-token"
)

// ErrNotFound is returned when no secret is stored for the account.
var ErrNotFound = keyring.ErrNotFound

// Get retrieves a secret from the system keychain.
func Get(account string) (string, error) {
	return keyring.Get(serviceName, account)
}

// Set stores a secret in the system keychain.
func Set(account, value string) error {
	return keyring.Set(serviceName, account, value)
}

// Delete removes a secret. Deleting a missing secret is not an error.
func Delete(account string) error {
	err := keyring.Delete(serviceName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
