package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"docdrift/internal/adapters/filesystem"
	"docdrift/internal/application/commands"
)

var dumpOutput string

var dumpCmd = &cobra.Command{
	Use:   "dump <connection>",
	Short: "Dump all user collections of a connection",
	Long: `Write every user collection of a connection to a directory, one JSON
file per collection plus a manifest. Register the directory as a file://
connection to compare against it later.

Examples:
  docdrift dump prod -o ./dump
  docdrift connection create prod-snapshot file://./dump`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := commands.OpenConnection(ctx, application.Registry, application.Connector, args[0])
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		writer, err := filesystem.NewWriter(dumpOutput, args[0])
		if err != nil {
			return err
		}

		progress, stop := progressReporter()
		result, err := commands.NewDumpCommand(db, writer, progress).Execute(ctx)
		stop()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output-dir", "o", "./dump", "output directory")
	rootCmd.AddCommand(dumpCmd)
}
