package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"docdrift/internal/adapters/clipboard"
	"docdrift/internal/adapters/editor"
	"docdrift/internal/adapters/render"
	"docdrift/internal/application/commands"
	"docdrift/internal/ports"
)

const defaultMigrationDir = "migrations"

var (
	migrationOutput   string
	migrationTemplate string
	migrationRenderer string
	migrationEdit     bool
	migrationCopy     bool
)

var makeMigrationsCmd = &cobra.Command{
	Use:   "make-migrations <reference> <compared>",
	Short: "Write a migration moving the compared connection toward the reference",
	Long: `Compare two connections and write a migration script whose actions
turn the compared database into the reference one. Nothing is written when
the collections are equal.

-o accepts a file or a directory; directories get a timestamped file name.

Examples:
  docdrift make-migrations prod staging
  docdrift make-migrations prod staging -o migrations/ --template builtin:mongosh
  docdrift make-migrations prod staging --renderer php -o Migration.php
  docdrift make-migrations prod staging --template ./my.tmpl --edit`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := application.Renderer(migrationRenderer, migrationTemplate)
		if err != nil {
			return err
		}
		path := migrationPath(migrationOutput, migrationExt(renderer), args[0], args[1], time.Now())

		ctx := cmd.Context()
		pair, err := application.OpenPair(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		defer pair.Close(ctx)

		progress, stop := progressReporter()
		migrate := commands.NewMakeMigrationCommand(application.NewCompare(pair, progress, false), renderer, path)
		result, err := migrate.Execute(ctx)
		stop()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		if result.Plan == nil {
			return nil
		}

		if migrationCopy {
			var cb ports.Clipboard = clipboard.System{}
			if err := cb.Copy(string(result.Content)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Copied migration to clipboard")
		}
		if migrationEdit {
			var ed ports.EditorOpener = editor.NewOpener(application.Config.Editor)
			return ed.OpenFile(result.Path)
		}
		return nil
	},
}

// migrationPath resolves -o. An empty value or a directory gets a
// <timestamp>_<reference>_to_<compared><ext> file inside it.
func migrationPath(out, ext, reference, compared string, now time.Time) string {
	if out == "" {
		out = defaultMigrationDir + string(filepath.Separator)
	}
	isDir := strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(filepath.Separator))
	if !isDir {
		if info, err := os.Stat(out); err == nil && info.IsDir() {
			isDir = true
		}
	}
	if !isDir {
		return out
	}
	name := fmt.Sprintf("%s_%s_to_%s%s", now.Format("20060102150405"), reference, compared, ext)
	return filepath.Join(out, name)
}

func migrationExt(r ports.Renderer) string {
	if _, ok := r.(render.PHP); ok {
		return ".php"
	}
	return ".js"
}

func init() {
	makeMigrationsCmd.Flags().StringVarP(&migrationOutput, "output", "o", "", "migration file or directory (default migrations/)")
	makeMigrationsCmd.Flags().StringVar(&migrationTemplate, "template", "", "template file or builtin:arangosh, builtin:mongosh")
	makeMigrationsCmd.Flags().StringVar(&migrationRenderer, "renderer", "", "renderer: template or php")
	makeMigrationsCmd.Flags().BoolVar(&migrationEdit, "edit", false, "open the migration in $EDITOR")
	makeMigrationsCmd.Flags().BoolVar(&migrationCopy, "copy", false, "copy the migration to the clipboard")

	rootCmd.AddCommand(makeMigrationsCmd)
}
