package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"docdrift/internal/adapters/report"
	"docdrift/internal/adapters/tui"
	"docdrift/internal/application/commands"
	"docdrift/internal/domain"
)

var connectionCmd = &cobra.Command{
	Use:   "connection",
	Short: "Manage named database connections",
}

var (
	createInteractive bool
	createUsername    string
	createPassword    string
	removeYes         bool
)

var connectionCreateCmd = &cobra.Command{
	Use:   "create [name] [url] [database]",
	Short: "Create a connection",
	Long: `Register a named connection. Passwords are stored in the system
keyring unless credentials.keyring is disabled.

Examples:
  docdrift connection create local http://localhost:8529 _system
  docdrift connection create prod mongodb://db.example.com:27017 app -u admin -p secret
  docdrift connection create snapshot file://./dump
  docdrift connection create -i`,
	Args: cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn := domain.Connection{Username: createUsername, Password: createPassword}
		if len(args) > 0 {
			conn.Name = args[0]
		}
		if len(args) > 1 {
			conn.URL = args[1]
		}
		if len(args) > 2 {
			conn.Database = args[2]
		}

		if createInteractive {
			msg, err := tui.RunConnectionForm(application.Registry, conn)
			if errors.Is(err, tui.ErrCancelled) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		}

		msg, err := commands.NewCreateConnectionCommand(application.Registry, conn).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var connectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conns, err := commands.ListConnections(application.Registry)
		if err != nil {
			return err
		}
		if len(conns) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No connections")
			return nil
		}

		rows := make([][]string, 0, len(conns))
		for _, c := range conns {
			rows = append(rows, []string{c.Name, c.URL, c.Database, c.Username})
		}
		return report.WriteTable(cmd.OutOrStdout(), []string{"Name", "URL", "Database", "Username"}, rows)
	},
}

var connectionRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !removeYes && stdinIsTerminal() {
			conn, err := application.Registry.Get(args[0])
			if err != nil {
				return err
			}
			ok, err := tui.Confirm(fmt.Sprintf("Remove connection %s?", conn.Name), conn.String())
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		msg, err := commands.RemoveConnection(application.Registry, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var connectionTestCmd = &cobra.Command{
	Use:   "test <name>",
	Short: "Check that a connection can reach its database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := commands.TestConnection(cmd.Context(), application.Registry, application.Connector, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	connectionCreateCmd.Flags().BoolVarP(&createInteractive, "interactive", "i", false, "prompt for the connection settings")
	connectionCreateCmd.Flags().StringVarP(&createUsername, "username", "u", "", "username")
	connectionCreateCmd.Flags().StringVarP(&createPassword, "password", "p", "", "password")

	connectionRemoveCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "do not ask for confirmation")

	connectionCmd.AddCommand(connectionCreateCmd, connectionListCmd, connectionRemoveCmd, connectionTestCmd)
	rootCmd.AddCommand(connectionCmd)
}
