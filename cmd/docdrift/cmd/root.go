package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"docdrift/internal/adapters/tui"
	"docdrift/internal/app"
	"docdrift/internal/config"
	"docdrift/internal/logger"
	"docdrift/internal/ports"
)

var (
	configFile  string
	settings    = config.New()
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "docdrift",
	Short: "Compare document databases and generate migrations",
	Long: `docdrift compares a reference database with a compared one, reports
the collections and documents that drifted, and writes a migration that
moves the compared database toward the reference.

ArangoDB (http://, https://), MongoDB (mongodb://, mongodb+srv://) and
dump directories (file://) are supported.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the root command and releases the application on every
// outcome; cobra skips post-run hooks when a command fails
func run(ctx context.Context) (err error) {
	defer func() {
		if cerr := closeApp(); err == nil {
			err = cerr
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func closeApp() error {
	if application == nil {
		return nil
	}
	a := application
	application = nil
	_ = a.Logger.Sync()
	return a.Close()
}

func init() {
	// Assigned here rather than in the literal: initApp reads rootCmd's
	// flags, which would otherwise form an initialization cycle
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return initApp(settings, configFile)
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/docdrift/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("registry", "", "connection registry database")
	rootCmd.PersistentFlags().Bool("no-progress", false, "disable the progress bar")

	_ = settings.BindPFlag(config.KeyDebug, rootCmd.PersistentFlags().Lookup("debug"))
	_ = settings.BindPFlag(config.KeyRegistryPath, rootCmd.PersistentFlags().Lookup("registry"))
}

func initApp(v *viper.Viper, file string) error {
	cfg, err := config.Load(v, file)
	if err != nil {
		return err
	}
	if noProgress, _ := rootCmd.PersistentFlags().GetBool("no-progress"); noProgress {
		cfg.Progress = false
	}

	log, err := logger.New(logger.Options{Debug: cfg.Debug, Color: stderrIsTerminal()})
	if err != nil {
		return err
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	application = a
	return nil
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// progressReporter returns a progress bar on a terminal and a logging
// reporter otherwise. stop must be called once the pipeline returns.
func progressReporter() (reporter ports.ProgressReporter, stop func()) {
	if application.Config.Progress && stderrIsTerminal() {
		p := tui.NewProgress(os.Stderr)
		return p, func() { _ = p.Close() }
	}
	return logger.NewProgress(application.Logger), func() {}
}
