package ports

import "docdrift/internal/domain"

// ConnectionRegistry stores named connection profiles
type ConnectionRegistry interface {
	Create(conn domain.Connection) error
	Get(name string) (domain.Connection, error)
	List() ([]domain.Connection, error)
	Remove(name string) error
	Close() error
}

// CredentialStore keeps connection passwords outside the registry
type CredentialStore interface {
	Set(connection, password string) error
	Get(connection string) (string, error)
	Delete(connection string) error
}
