package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"docdrift/internal/application"
	"docdrift/internal/migration"
	"docdrift/internal/ports"
)

// MakeMigrationResult contains the result of generating a migration
type MakeMigrationResult struct {
	Compare *CompareResult
	Plan    *migration.Plan
	Path    string
	Content []byte
	Message string
}

// MakeMigrationCommand compares two environments and writes a migration
// that moves the compared one toward the reference
type MakeMigrationCommand struct {
	compare    *CompareCommand
	renderer   ports.Renderer
	OutputPath string
}

// NewMakeMigrationCommand creates a new MakeMigrationCommand
func NewMakeMigrationCommand(compare *CompareCommand, renderer ports.Renderer, outputPath string) *MakeMigrationCommand {
	return &MakeMigrationCommand{
		compare:    compare,
		renderer:   renderer,
		OutputPath: outputPath,
	}
}

// Validate checks if the migration can be generated
func (c *MakeMigrationCommand) Validate() error {
	return application.ValidateRequired("outputPath", c.OutputPath)
}

// Execute runs the comparison, renders the migration and writes it.
// Nothing is written when the environments are equal.
func (c *MakeMigrationCommand) Execute(ctx context.Context) (*MakeMigrationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.compare.ChecksumOnly = false
	cmp, err := c.compare.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if cmp.Equal() {
		return &MakeMigrationResult{Compare: cmp, Message: "Collections are equal"}, nil
	}

	plan, content, err := RenderMigration(c.renderer, cmp)
	if err != nil {
		return nil, err
	}
	if err := writeFile(c.OutputPath, content); err != nil {
		return nil, err
	}

	return &MakeMigrationResult{
		Compare: cmp,
		Plan:    plan,
		Path:    c.OutputPath,
		Content: content,
		Message: fmt.Sprintf("Created migration %s with %d actions", c.OutputPath, plan.Len()),
	}, nil
}

// BuildPlan synthesizes the actions for a comparison result into a fresh plan
func BuildPlan(cmp *CompareResult) (*migration.Plan, error) {
	plan := migration.NewPlan()
	plan.AddDelta(cmp.Delta)
	for _, d := range cmp.Diffs {
		if err := plan.AddDiff(d.Collection.Name, d.Records); err != nil {
			return nil, fmt.Errorf("failed to build actions for %s: %w", d.Collection.Name, err)
		}
	}
	return plan, nil
}

// RenderMigration builds the plan for a comparison result and renders it
func RenderMigration(renderer ports.Renderer, cmp *CompareResult) (*migration.Plan, []byte, error) {
	plan, err := BuildPlan(cmp)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	in := ports.RenderInput{Delta: cmp.Delta, Diffs: cmp.Diffs, Plan: plan}
	if err := renderer.Render(&buf, in); err != nil {
		return nil, nil, fmt.Errorf("failed to render migration: %w", err)
	}
	return plan, buf.Bytes(), nil
}

func writeFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write migration: %w", err)
	}
	return nil
}
