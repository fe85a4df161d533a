package renamer

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Nomadcxx/mkvrenamer/internal/metadata"
)

func thundercats(n int) *metadata.Catalog {
	all := []metadata.EpisodeDefinition{
		{Number: "S01E01", Name: "Exodus"},
		{Number: "S01E02", Name: "The Unholy Alliance"},
		{Number: "S01E03", Name: "Berbils"},
		{Number: "S01E04", Name: "The Slaves of Castle Plun-Darr"},
		{Number: "S01E05", Name: "Pumm-Ra"},
		{Number: "S01E06", Name: "The Terror of Hammerhand"},
	}
	return metadata.NewSeriesCatalog(metadata.EpisodesDefinition{
		Metadata: metadata.SeriesMetadata{Name: "Thundercats", TVDBID: "70355", SeasonNumber: "1"},
		Episodes: all[:n],
	})
}

func lebowski() *metadata.Catalog {
	return metadata.NewMovieCatalog(metadata.MovieDefinition{Name: "The Big Lebowski", TVDBID: "659"})
}

// writeTree creates files (slash-separated, relative to root) whose content
// is their own name
func writeTree(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// snapshot maps every path under root to its content, or "<dir>" for directories
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			out[rel] = "<dir>"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}
