// Package renamer pairs ripped files with metadata names, confirms the result
// with the user and applies it.
package renamer

import (
	"fmt"

	"github.com/Nomadcxx/mkvrenamer/internal/apperr"
	"github.com/Nomadcxx/mkvrenamer/internal/layout"
	"github.com/Nomadcxx/mkvrenamer/internal/metadata"
	"github.com/Nomadcxx/mkvrenamer/internal/scanner"
)

// Entry moves one ripped file into the renames directory
type Entry struct {
	Source      string
	Destination string
}

// Plan is everything a confirmed run will do
type Plan struct {
	Entries    []Entry
	Container  string // absolute path of the folder to create under Encodes
	RenamesDir layout.RenamesDir
	MarkerPath string
}

// Empty reports whether the plan moves no files
func (p *Plan) Empty() bool {
	return len(p.Entries) == 0
}

// BuildPlan pairs the i-th file, in path order, with the i-th metadata name.
// More files than names is an error; fewer is fine and leaves names unused.
// Every destination is a direct child of renames: a name that would nest or
// climb out of it fails the whole plan before anything is moved.
func BuildPlan(files []scanner.RippedFile, catalog *metadata.Catalog, renames layout.RenamesDir, encodes layout.EncodesDir) (*Plan, error) {
	sorted := make([]scanner.RippedFile, len(files))
	copy(sorted, files)
	scanner.SortFiles(sorted)

	names := catalog.Names()
	if len(sorted) > len(names) {
		return nil, apperr.NotEnoughMetadata(len(names), len(sorted))
	}

	container, err := ContainerPath(catalog, encodes)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Container:  container,
		RenamesDir: renames,
		MarkerPath: renames.MarkerFile(),
		Entries:    make([]Entry, 0, len(sorted)),
	}

	for i, f := range sorted {
		if i >= len(names) {
			panic(fmt.Sprintf("renamer: no metadata name for file index %d", i))
		}
		name := fileName(names[i], f.Ext)
		if err := checkPathElements(renames.String(), name); err != nil {
			return nil, err
		}
		plan.Entries = append(plan.Entries, Entry{
			Source:      f.Path,
			Destination: renames.Join(name),
		})
	}

	return plan, nil
}
