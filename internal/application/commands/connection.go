package commands

import (
	"context"
	"fmt"

	"docdrift/internal/application"
	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

// CreateConnectionCommand registers a named connection
type CreateConnectionCommand struct {
	registry   ports.ConnectionRegistry
	Connection domain.Connection
}

// NewCreateConnectionCommand creates a new CreateConnectionCommand
func NewCreateConnectionCommand(registry ports.ConnectionRegistry, conn domain.Connection) *CreateConnectionCommand {
	return &CreateConnectionCommand{registry: registry, Connection: conn}
}

// Validate checks if the connection can be registered
func (c *CreateConnectionCommand) Validate() error {
	if err := application.ValidateConnectionName(c.Connection.Name); err != nil {
		return err
	}
	if err := application.ValidateURL("url", c.Connection.URL); err != nil {
		return err
	}
	if c.Connection.Scheme() != "file" {
		return application.ValidateRequired("database", c.Connection.Database)
	}
	return nil
}

// Execute runs the create connection command
func (c *CreateConnectionCommand) Execute(ctx context.Context) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if err := c.registry.Create(c.Connection); err != nil {
		return "", err
	}
	return fmt.Sprintf("Connection %s created", c.Connection.Name), nil
}

// ListConnections returns every registered connection ordered by name
func ListConnections(registry ports.ConnectionRegistry) ([]domain.Connection, error) {
	conns, err := registry.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return conns, nil
}

// RemoveConnection unregisters a connection. Removing an unknown name is an error.
func RemoveConnection(registry ports.ConnectionRegistry, name string) (string, error) {
	if err := application.ValidateRequired("name", name); err != nil {
		return "", err
	}
	if _, err := registry.Get(name); err != nil {
		return "", err
	}
	if err := registry.Remove(name); err != nil {
		return "", fmt.Errorf("failed to remove connection: %w", err)
	}
	return fmt.Sprintf("Connection %s removed", name), nil
}

// OpenConnection looks up a named connection and opens its database
func OpenConnection(ctx context.Context, registry ports.ConnectionRegistry, connector ports.Connector, name string) (ports.Database, error) {
	conn, err := registry.Get(name)
	if err != nil {
		return nil, err
	}
	db, err := connector.Open(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return db, nil
}

// TestConnection opens a connection and asks the server for its version
func TestConnection(ctx context.Context, registry ports.ConnectionRegistry, connector ports.Connector, name string) (string, error) {
	db, err := OpenConnection(ctx, registry, connector, name)
	if err != nil {
		return "", err
	}
	defer db.Close(ctx)

	version, err := db.Version(ctx)
	if err != nil {
		return "", &application.TransportError{Op: "version", Err: err}
	}
	return fmt.Sprintf("Connection %s OK (server %s)", name, version), nil
}
