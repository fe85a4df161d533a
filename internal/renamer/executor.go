package renamer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/Nomadcxx/mkvrenamer/internal/apperr"
	"github.com/Nomadcxx/mkvrenamer/internal/layout"
	xlog "github.com/Nomadcxx/mkvrenamer/internal/log"
)

// Executor applies confirmed plans. Renames are not rolled back when a later
// step fails.
type Executor struct{}

// Apply renames every entry in order, then creates the container and writes
// the marker. The first failure stops the run.
func (x *Executor) Apply(ctx context.Context, plan *Plan) error {
	logger := xlog.WithComponentFromContext(ctx, "executor")

	if err := os.MkdirAll(plan.RenamesDir.String(), 0755); err != nil {
		first := Entry{Source: plan.RenamesDir.String()}
		if len(plan.Entries) > 0 {
			first = plan.Entries[0]
		}
		return &apperr.Error{Kind: apperr.RenameExecution, Path: first.Source, Other: first.Destination, Err: err}
	}

	for i, e := range plan.Entries {
		if _, err := os.Lstat(e.Destination); err == nil {
			return &apperr.Error{Kind: apperr.RenameExecution, Path: e.Source, Other: e.Destination, Err: fs.ErrExist}
		}

		if err := os.Rename(e.Source, e.Destination); err != nil {
			logger.Error().Err(err).Int("completed", i).Int("total", len(plan.Entries)).Msg("rename failed")
			return &apperr.Error{Kind: apperr.RenameExecution, Path: e.Source, Other: e.Destination, Err: err}
		}
		logger.Debug().Str("from", e.Source).Str("to", e.Destination).Msg("renamed")
	}

	return x.finish(ctx, plan.Container, plan.RenamesDir)
}

// Stage creates the container and marker without touching any ripped file
func (x *Executor) Stage(ctx context.Context, container string, renames layout.RenamesDir) error {
	if err := os.MkdirAll(renames.String(), 0755); err != nil {
		return apperr.New(apperr.MarkerFileWrite, renames.MarkerFile(), err)
	}
	return x.finish(ctx, container, renames)
}

func (x *Executor) finish(ctx context.Context, container string, renames layout.RenamesDir) error {
	logger := xlog.WithComponentFromContext(ctx, "executor")

	if err := CreateContainer(container); err != nil {
		return err
	}
	logger.Debug().Str("path", container).Msg("created container")

	marker := renames.MarkerFile()
	if err := WriteMarker(marker, container); err != nil {
		return err
	}
	logger.Debug().Str("path", marker).Msg("wrote marker")

	return nil
}

// CreateContainer creates dir and any missing parents. The leaf itself must
// not exist yet.
func CreateContainer(dir string) error {
	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return apperr.New(apperr.ContainerCreate, dir, err)
	}

	if err := os.Mkdir(dir, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return apperr.New(apperr.DestinationAlreadyExists, dir, err)
		}
		return apperr.New(apperr.ContainerCreate, dir, err)
	}
	return nil
}

// WriteMarker replaces path with a single line naming container, without a
// trailing newline
func WriteMarker(path, container string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.New(apperr.MarkerFileWrite, path, err)
	}

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return apperr.New(apperr.MarkerFileWrite, path, fmt.Errorf("create pending marker: %w", err))
	}
	defer pendingFile.Cleanup()

	if _, err := pendingFile.WriteString(container); err != nil {
		return apperr.New(apperr.MarkerFileWrite, path, err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return apperr.New(apperr.MarkerFileWrite, path, fmt.Errorf("replace marker: %w", err))
	}
	return nil
}

// ReadMarker returns the container path recorded in a renames directory
func ReadMarker(renames layout.RenamesDir) (string, error) {
	data, err := os.ReadFile(renames.MarkerFile())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
