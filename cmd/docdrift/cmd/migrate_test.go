package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"docdrift/internal/adapters/render"
)

func TestMigrationPath(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	existing := t.TempDir()

	tests := []struct {
		name string
		out  string
		want string
	}{
		{"default directory", "", filepath.Join("migrations", "20260304050607_prod_to_dev.js")},
		{"trailing slash", "out/", filepath.Join("out", "20260304050607_prod_to_dev.js")},
		{"existing directory", existing, filepath.Join(existing, "20260304050607_prod_to_dev.js")},
		{"file", "out/m.js", "out/m.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := migrationPath(tt.out, ".js", "prod", "dev", now)
			if got != tt.want {
				t.Errorf("migrationPath(%q) = %q, want %q", tt.out, got, tt.want)
			}
		})
	}
}

func TestMigrationExt(t *testing.T) {
	if got := migrationExt(render.NewPHP()); got != ".php" {
		t.Errorf("expected .php, got %q", got)
	}
	if got := migrationExt(render.NewTemplate("builtin:mongosh")); got != ".js" {
		t.Errorf("expected .js, got %q", got)
	}
}
