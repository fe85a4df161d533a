package renamer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Nomadcxx/mkvrenamer/internal/apperr"
	"github.com/Nomadcxx/mkvrenamer/internal/layout"
	"github.com/Nomadcxx/mkvrenamer/internal/metadata"
)

// TitleCase upper-cases the first letter of each word and leaves the rest
// alone, so "AC/DC" and "McCoy" survive
func TitleCase(s string) string {
	caser := cases.Title(language.English, cases.NoLower)
	return caser.String(s)
}

// ContainerName is the destination folder for a catalog, relative to the
// encodes directory
func ContainerName(c *metadata.Catalog) string {
	title := TitleCase(c.Title())
	if c.Kind == metadata.Series && c.Series != nil {
		return layout.SeasonFolder(title, c.Series.TVDBID, c.Series.SeasonNumber)
	}
	return layout.MovieFolder(title, c.TVDBID())
}

// ContainerPath is the absolute container for a catalog. Titles, ids and
// season numbers holding a path separator are rejected so the container
// always sits at its fixed depth under encodes.
func ContainerPath(c *metadata.Catalog, encodes layout.EncodesDir) (string, error) {
	values := []string{c.Title(), c.TVDBID()}
	if c.Kind == metadata.Series && c.Series != nil {
		values = append(values, c.Series.SeasonNumber)
	}
	if err := checkPathElements(encodes.String(), values...); err != nil {
		return "", err
	}
	return encodes.Join(ContainerName(c)), nil
}

func checkPathElements(dir string, values ...string) error {
	for _, v := range values {
		if layout.HasSeparator(v) {
			return &apperr.Error{Kind: apperr.InvalidMetadataName, Path: v, Other: dir}
		}
	}
	return nil
}

// EncodesSubdir returns the Encodes subdirectory for kind, or "" for the flat layout
func EncodesSubdir(kind metadata.Kind, split bool) string {
	if !split {
		return ""
	}
	if kind == metadata.Movie {
		return layout.MoviesSubdir
	}
	return layout.TVSubdir
}

func fileName(base, ext string) string {
	return base + "." + ext
}
