// Package keyring keeps connection passwords in the OS keyring.
package keyring

import (
	"errors"

	gokeyring "github.com/zalando/go-keyring"

	"docdrift/internal/ports"
)

// DefaultService is the keyring service name entries are stored under
const DefaultService = "docdrift"

// Store implements ports.CredentialStore
type Store struct {
	service string
}

var _ ports.CredentialStore = (*Store)(nil)

// NewStore creates a store for service, DefaultService when empty
func NewStore(service string) *Store {
	if service == "" {
		service = DefaultService
	}
	return &Store{service: service}
}

// Set stores the password of a connection
func (s *Store) Set(connection, password string) error {
	return gokeyring.Set(s.service, connection, password)
}

// Get returns the password of a connection, "" when none is stored
func (s *Store) Get(connection string) (string, error) {
	password, err := gokeyring.Get(s.service, connection)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", nil
	}
	return password, err
}

// Delete removes the password of a connection. Missing entries are ignored.
func (s *Store) Delete(connection string) error {
	err := gokeyring.Delete(s.service, connection)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return nil
	}
	return err
}
