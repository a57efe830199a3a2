package cmd

import (
	"github.com/spf13/cobra"

	"docdrift/internal/adapters/report"
)

var (
	checksumOnly bool
	showDetails  bool
	outputFormat string
)

var compareCmd = &cobra.Command{
	Use:   "compare <reference> <compared>",
	Short: "Compare the collections of two connections",
	Long: `Compare the user collections of two connections. Collections that
exist on one side only are listed first, then collections whose content
checksums differ are diffed document by document.

Examples:
  docdrift compare prod staging
  docdrift compare prod staging --checksum-only
  docdrift compare prod staging --details
  docdrift compare prod staging --output json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		pair, err := application.OpenPair(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		defer pair.Close(ctx)

		progress, stop := progressReporter()
		compare := application.NewCompare(pair, progress, showDetails)
		compare.ChecksumOnly = checksumOnly
		result, err := compare.Execute(ctx)
		stop()
		if err != nil {
			return err
		}

		printer := report.NewPrinter(cmd.OutOrStdout(), report.Options{
			Format:       format,
			Details:      showDetails,
			Color:        stdoutIsTerminal(),
			ChecksumOnly: checksumOnly,
		})
		return printer.Print(result)
	},
}

func init() {
	compareCmd.Flags().BoolVarP(&checksumOnly, "checksum-only", "c", false, "only compare collection checksums")
	compareCmd.Flags().BoolVarP(&showDetails, "details", "d", false, "show side-by-side document diffs")
	compareCmd.Flags().StringVar(&outputFormat, "output", "text", "output format: text, json or yaml")

	rootCmd.AddCommand(compareCmd)
}
