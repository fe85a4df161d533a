// Package metadata loads the ordered list of names that ripped files are
// renamed to, either from a local JSON file or by scraping a metadata page.
package metadata

import (
	"fmt"

	"github.com/Nomadcxx/mkvrenamer/internal/layout"
)

// Kind selects between series and movie metadata
type Kind int

const (
	Series Kind = iota
	Movie
)

func (k Kind) String() string {
	switch k {
	case Series:
		return "series"
	case Movie:
		return "movie"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// SeriesMetadata describes the season being renamed
type SeriesMetadata struct {
	Name         string `json:"name"`
	TVDBID       string `json:"tvdb_id"`
	SeasonNumber string `json:"season_number"`
}

type EpisodeDefinition struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// EpisodesDefinition is the on-disk series document
type EpisodesDefinition struct {
	Metadata SeriesMetadata      `json:"metadata"`
	Episodes []EpisodeDefinition `json:"episodes"`
}

// MovieDefinition is the on-disk movie document
type MovieDefinition struct {
	Name   string `json:"name"`
	TVDBID string `json:"tvdb_id"`
}

// Catalog is what every Source produces. Exactly one of Series/Movie is set,
// matching Kind.
type Catalog struct {
	Kind     Kind
	Series   *SeriesMetadata
	Episodes []EpisodeDefinition
	Movie    *MovieDefinition
}

// NewSeriesCatalog wraps a decoded series document
func NewSeriesCatalog(def EpisodesDefinition) *Catalog {
	meta := def.Metadata
	return &Catalog{Kind: Series, Series: &meta, Episodes: def.Episodes}
}

// NewMovieCatalog wraps a decoded movie document
func NewMovieCatalog(def MovieDefinition) *Catalog {
	return &Catalog{Kind: Movie, Movie: &def}
}

// Names returns the base file names, without extension, in metadata order.
// A movie is a one-item list.
func (c *Catalog) Names() []string {
	switch c.Kind {
	case Series:
		names := make([]string, 0, len(c.Episodes))
		for _, ep := range c.Episodes {
			names = append(names, ep.Number+" - "+ep.Name)
		}
		return names
	case Movie:
		if c.Movie == nil {
			return nil
		}
		return []string{c.Movie.Name + " - " + layout.IDSuffix(c.Movie.TVDBID)}
	}
	return nil
}

// Title is the series or movie name
func (c *Catalog) Title() string {
	switch {
	case c.Kind == Series && c.Series != nil:
		return c.Series.Name
	case c.Kind == Movie && c.Movie != nil:
		return c.Movie.Name
	}
	return ""
}

// TVDBID is the identifier embedded in folder and file names
func (c *Catalog) TVDBID() string {
	switch {
	case c.Kind == Series && c.Series != nil:
		return c.Series.TVDBID
	case c.Kind == Movie && c.Movie != nil:
		return c.Movie.TVDBID
	}
	return ""
}

// Document returns the value written by Export
func (c *Catalog) Document() any {
	if c.Kind == Movie && c.Movie != nil {
		return c.Movie
	}
	def := EpisodesDefinition{Episodes: c.Episodes}
	if c.Series != nil {
		def.Metadata = *c.Series
	}
	if def.Episodes == nil {
		def.Episodes = []EpisodeDefinition{}
	}
	return def
}
