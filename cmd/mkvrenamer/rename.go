package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/mkvrenamer/internal/metadata"
	"github.com/Nomadcxx/mkvrenamer/internal/renamer"
	"github.com/Nomadcxx/mkvrenamer/internal/ui"
)

type kindSpec struct {
	use   string
	short string
	kind  metadata.Kind
}

var (
	kindSeries = kindSpec{use: "series", short: "Rename ripped episodes of one season", kind: metadata.Series}
	kindMovie  = kindSpec{use: "movie", short: "Rename a ripped movie", kind: metadata.Movie}
)

func newKindCmd(a *app, k kindSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   k.use,
		Short: k.short,
	}
	cmd.AddCommand(newRenameCmd(a, k))
	cmd.AddCommand(newExportCmd(k))
	return cmd
}

func newRenameCmd(a *app, k kindSpec) *cobra.Command {
	var (
		processingDir string
		session       int
		url           string
		file          string
		skipFiles     bool
	)

	cmd := &cobra.Command{
		Use:   "rename",
		Short: fmt.Sprintf("Rename %s files in Rips/session<N> using metadata", k.use),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := ui.NewPrinter(cmd.OutOrStdout())

			pd := a.cfg.ProcessingDirOr(processingDir)
			if pd == "" {
				return fmt.Errorf("processing directory is required: pass -p or set paths.processing_dir in the config")
			}

			wf := &renamer.Workflow{
				Printer:   printer,
				Confirmer: &renamer.PromptConfirmer{In: cmd.InOrStdin(), Printer: printer},
				Executor:  &renamer.Executor{},
			}

			res, err := wf.Rename(cmd.Context(), renamer.Options{
				Kind:          k.kind,
				ProcessingDir: pd,
				Session:       session,
				URL:           url,
				File:          file,
				Verbose:       a.verbose,
				SkipFiles:     skipFiles,
				SplitEncodes:  a.cfg.Layout.SplitEncodes,
			})
			if err != nil {
				return err
			}

			if res.Outcome == renamer.OutcomeUserCanceled {
				printer.Println("User canceled rename")
				return nil
			}

			if res.Plan != nil {
				printer.OK(fmt.Sprintf("Renamed %d file(s) into %s", len(res.Plan.Entries), res.Plan.RenamesDir))
			}
			printer.OK(fmt.Sprintf("Created %s", res.Container))
			return nil
		},
	}

	cmd.Flags().StringVarP(&processingDir, "processing-dir", "p", "", "directory containing Rips/ and Encodes/")
	cmd.Flags().IntVarP(&session, "session", "s", 0, "rip session number (1-99)")
	cmd.Flags().StringVarP(&url, "url", "u", "", "metadata page URL")
	cmd.Flags().StringVarP(&file, "file", "f", "", "metadata JSON file")
	cmd.Flags().BoolVarP(&a.verbose, "verbose", "v", false, "print directory roles and debug logs")
	cmd.Flags().BoolVar(&skipFiles, "skip-files", false, "only create the destination folder and marker file")

	cmd.MarkFlagRequired("session")
	cmd.MarkFlagsMutuallyExclusive("url", "file")
	cmd.MarkFlagsOneRequired("url", "file")

	return cmd
}

func newExportCmd(k kindSpec) *cobra.Command {
	var (
		url string
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: fmt.Sprintf("Scrape %s metadata from a URL into a JSON file", k.use),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := ui.NewPrinter(cmd.OutOrStdout())

			src := &metadata.RemoteSource{URL: url, Fetcher: &metadata.HTTPFetcher{}, Scraper: &metadata.HTMLScraper{}}
			catalog, err := metadata.Export(cmd.Context(), src, k.kind, out)
			if err != nil {
				return err
			}

			printer.OK(fmt.Sprintf("Exported %d name(s) for %s to %s", len(catalog.Names()), catalog.Title(), out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "metadata page URL")
	cmd.Flags().StringVarP(&out, "output", "o", "", "file to write; must not exist")
	cmd.MarkFlagRequired("url")
	cmd.MarkFlagRequired("output")

	return cmd
}
