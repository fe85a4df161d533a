package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/mkvrenamer/internal/config"
	xlog "github.com/Nomadcxx/mkvrenamer/internal/log"
	"github.com/Nomadcxx/mkvrenamer/internal/ui"
)

var (
	// Version information (set via -ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// app carries state shared by every subcommand of one invocation
type app struct {
	cfgFile string
	verbose bool
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "mkvrenamer",
		Short:         "Rename ripped series and movie files for encoding",
		Long:          longDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/mkvrenamer/config.toml)")

	rootCmd.AddCommand(newKindCmd(a, kindSeries))
	rootCmd.AddCommand(newKindCmd(a, kindMovie))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

const longDescription = `mkvrenamer renames ripped files in Rips/session<N>/disc<K>/ using series or
movie metadata, moves them into the session's renames/ directory, creates the
destination folder under Encodes/ and records it in renames/encode_dir.txt.`

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mkvrenamer %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", commit)
			fmt.Fprintf(out, "  Built:      %s\n", buildTime)
		},
	}
}

// setup loads config and configures logging before any subcommand runs
func (a *app) setup(cmd *cobra.Command) error {
	path, err := a.configPath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	a.cfg = cfg

	level := cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}

	stderr := cmd.ErrOrStderr()
	logger := xlog.Configure(xlog.Config{
		Level:   level,
		Output:  stderr,
		NoColor: !ui.ShouldColorize(stderr),
	})
	cliLog := xlog.WithComponent("cli")
	cliLog.Debug().Str("config", path).Str("version", version).Msg("starting")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(xlog.ContextWith(ctx, logger))
	return nil
}

func (a *app) configPath() (string, error) {
	if p := strings.TrimSpace(a.cfgFile); p != "" {
		return p, nil
	}
	return config.ConfigPath()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		ui.NewPrinter(os.Stderr).Fail(err.Error())
		stop()
		os.Exit(1)
	}
}
