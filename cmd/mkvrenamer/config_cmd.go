package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/mkvrenamer/internal/config"
	"github.com/Nomadcxx/mkvrenamer/internal/ui"
)

const exampleConfig = `[paths]
processing_dir = "/path/to/processing"  # default for -p

[layout]
split_encodes = true  # Encodes/tv and Encodes/movies

[logging]
level = "warn"  # debug, info, warn, error
`

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration file location and contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showConfig(cmd)
		},
	}
	cmd.AddCommand(newConfigInitCmd(a))
	return cmd
}

func (a *app) showConfig(cmd *cobra.Command) error {
	printer := ui.NewPrinter(cmd.OutOrStdout())

	path, err := a.configPath()
	if err != nil {
		return err
	}

	printer.Printf("Configuration file: %s\n\n", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		printer.Info("Config file does not exist; defaults are in use. Create it with:")
		printer.Println("\n  mkvrenamer config init")
		printer.Println("\nExample:")
		printer.Printf("%s", exampleConfig)
		return nil
	}

	cfg := a.cfg
	printer.Println("Current configuration:")
	printer.Printf("  Processing dir: %s\n", valueOr(cfg.Paths.ProcessingDir, "(not set)"))
	printer.Printf("  Split encodes:  %t\n", cfg.Layout.SplitEncodes)
	printer.Printf("  Log level:      %s\n", cfg.Logging.Level)
	return nil
}

func newConfigInitCmd(a *app) *cobra.Command {
	var (
		processingDir string
		force         bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := ui.NewPrinter(cmd.OutOrStdout())

			path, err := a.configPath()
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if processingDir != "" {
				if err := cfg.SetProcessingDir(processingDir); err != nil {
					return err
				}
			}

			if err := config.Save(cfg, path); err != nil {
				return err
			}

			printer.OK(fmt.Sprintf("Wrote configuration to %s", path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&processingDir, "processing-dir", "p", "", "default processing directory")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
