package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Connection is a named database profile
type Connection struct {
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	Database string `json:"database" yaml:"database"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"-" yaml:"-"`
}

// NeedsAuth reports whether the connection authenticates with credentials
func (c Connection) NeedsAuth() bool {
	return c.Username != "" && c.Password != ""
}

// Scheme returns the lower-cased URL scheme, or "" when the URL has none
func (c Connection) Scheme() string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

func (c Connection) String() string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.URL, "/"), c.Database)
}
