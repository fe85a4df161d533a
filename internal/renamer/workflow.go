package renamer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Nomadcxx/mkvrenamer/internal/apperr"
	"github.com/Nomadcxx/mkvrenamer/internal/layout"
	xlog "github.com/Nomadcxx/mkvrenamer/internal/log"
	"github.com/Nomadcxx/mkvrenamer/internal/metadata"
	"github.com/Nomadcxx/mkvrenamer/internal/scanner"
	"github.com/Nomadcxx/mkvrenamer/internal/ui"
)

// Outcome is how a run ended when it did not fail
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeUserCanceled
)

func (o Outcome) String() string {
	if o == OutcomeUserCanceled {
		return "user canceled"
	}
	return "success"
}

// Options describe one rename run
type Options struct {
	Kind          metadata.Kind
	ProcessingDir string
	Session       int
	URL           string
	File          string
	Verbose       bool
	SkipFiles     bool
	SplitEncodes  bool
}

// Workflow runs the rename pipeline for one session
type Workflow struct {
	Printer   *ui.Printer
	Confirmer Confirmer
	Executor  *Executor

	// SelectSource defaults to metadata.SelectSource
	SelectSource func(url, file string) (metadata.Source, error)
}

// Result reports what a run did
type Result struct {
	Outcome   Outcome
	Plan      *Plan
	Container string
}

// Rename validates inputs, loads metadata, builds a plan, asks for
// confirmation and applies it. Nothing on disk changes before the user
// confirms, and nothing changes at all when validation fails.
func (w *Workflow) Rename(ctx context.Context, opts Options) (*Result, error) {
	logger := xlog.WithComponentFromContext(ctx, "workflow")

	session, err := layout.ParseSessionID(opts.Session)
	if err != nil {
		return nil, err
	}

	selectSource := w.SelectSource
	if selectSource == nil {
		selectSource = metadata.SelectSource
	}
	src, err := selectSource(opts.URL, opts.File)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(opts.ProcessingDir)
	if err != nil {
		return nil, apperr.New(apperr.ProcessingDirectoryMissing, opts.ProcessingDir, err)
	}
	pd := layout.ProcessingDir(root)

	if err := scanner.ValidateProcessingPaths(pd.String(), opts.File); err != nil {
		return nil, err
	}

	catalog, err := src.Load(ctx, opts.Kind)
	if err != nil {
		return nil, err
	}

	sessionDir := pd.SessionDir(session)
	renames := pd.RenamesDir(session)
	encodes := pd.EncodesDir(EncodesSubdir(opts.Kind, opts.SplitEncodes))
	container, err := ContainerPath(catalog, encodes)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("kind", opts.Kind.String()).
		Str("source", src.Describe()).
		Str("session", sessionDir.String()).
		Str("container", container).
		Msg("resolved directories")

	if opts.Verbose {
		w.dumpRoles(pd, session, encodes)
	}

	if opts.SkipFiles {
		if exists(container) {
			return nil, apperr.New(apperr.DestinationAlreadyExists, container, nil)
		}
		if err := w.executor().Stage(ctx, container, renames); err != nil {
			return nil, err
		}
		return &Result{Outcome: OutcomeSuccess, Container: container}, nil
	}

	files := scanner.Discover(sessionDir.String())
	logger.Debug().Int("files", len(files)).Int("names", len(catalog.Names())).Msg("discovered ripped files")

	if names := catalog.Names(); len(files) > len(names) {
		return nil, apperr.NotEnoughMetadata(len(names), len(files))
	}

	if exists(container) {
		return nil, apperr.New(apperr.DestinationAlreadyExists, container, nil)
	}

	plan, err := BuildPlan(files, catalog, renames, encodes)
	if err != nil {
		return nil, err
	}
	if plan.Empty() {
		return nil, &apperr.Error{Kind: apperr.NoFilesToRename}
	}
	if unused := len(catalog.Names()) - len(plan.Entries); unused > 0 && w.Printer != nil {
		w.Printer.Warn(fmt.Sprintf("%d metadata name(s) have no ripped file and will not be used", unused))
	}

	ok, err := w.Confirmer.Confirm(plan)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Info().Msg("user canceled rename")
		return &Result{Outcome: OutcomeUserCanceled, Plan: plan, Container: container}, nil
	}

	if err := w.executor().Apply(ctx, plan); err != nil {
		return nil, err
	}

	logger.Info().Int("renamed", len(plan.Entries)).Str("container", container).Msg("rename complete")
	return &Result{Outcome: OutcomeSuccess, Plan: plan, Container: container}, nil
}

func (w *Workflow) executor() *Executor {
	if w.Executor == nil {
		return &Executor{}
	}
	return w.Executor
}

func (w *Workflow) dumpRoles(pd layout.ProcessingDir, session layout.SessionID, encodes layout.EncodesDir) {
	if w.Printer == nil {
		return
	}

	roles := []ui.Role{
		{Name: "processing", Path: pd.String(), Status: dirStatus(pd.String())},
		{Name: "rips", Path: pd.RipsDir().String(), Status: dirStatus(pd.RipsDir().String())},
		{Name: "session", Path: pd.SessionDir(session).String(), Status: dirStatus(pd.SessionDir(session).String())},
		{Name: "renames", Path: pd.RenamesDir(session).String(), Status: dirStatus(pd.RenamesDir(session).String())},
		{Name: "encodes", Path: encodes.String(), Status: dirStatus(encodes.String())},
	}

	w.Printer.Title("Directories:")
	w.Printer.Block(w.Printer.RenderRoles(roles))
}

func dirStatus(path string) string {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return ui.StatusMissing
	case !info.IsDir():
		return ui.StatusNotDir
	case !scanner.CheckWritable(path):
		return ui.StatusReadOnly
	}
	return ui.StatusOK
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
