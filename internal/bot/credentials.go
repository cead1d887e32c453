package bot

import "github.com/zalando/go-keyring"

// CredentialStore keeps the CardDAV password outside the settings file.
type CredentialStore interface {
	Get(user string) (string, error)
	Set(user, password string) error
}

// KeyringStore stores passwords in the OS keyring under Service.
type KeyringStore struct {
	Service string
}

func (k KeyringStore) Get(user string) (string, error) {
	return keyring.Get(k.Service, user)
}

func (k KeyringStore) Set(user, password string) error {
	return keyring.Set(k.Service, user, password)
}
