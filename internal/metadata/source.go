package metadata

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Nomadcxx/mkvrenamer/internal/apperr"
	xlog "github.com/Nomadcxx/mkvrenamer/internal/log"
)

// Source produces a Catalog for the requested kind
type Source interface {
	Load(ctx context.Context, kind Kind) (*Catalog, error)
	// Describe names the source for display: a file path or URL
	Describe() string
}

// SelectSource picks the metadata source. Exactly one of url and file must be
// set; this is decided before any I/O.
func SelectSource(url, file string) (Source, error) {
	switch {
	case url != "" && file != "":
		return nil, &apperr.Error{Kind: apperr.InvalidMetadataConfiguration, Detail: "both a metadata url and a metadata file were given"}
	case url != "":
		return &RemoteSource{URL: url, Fetcher: &HTTPFetcher{}, Scraper: &HTMLScraper{}}, nil
	case file != "":
		return &FileSource{Path: file}, nil
	}
	return nil, &apperr.Error{Kind: apperr.InvalidMetadataConfiguration, Detail: "either a metadata url or a metadata file is required"}
}

// FileSource reads a JSON metadata document from disk
type FileSource struct {
	Path string
}

func (s *FileSource) Describe() string { return s.Path }

func (s *FileSource) Load(ctx context.Context, kind Kind) (*Catalog, error) {
	logger := xlog.WithComponentFromContext(ctx, "metadata")

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, apperr.New(apperr.MetadataFileAccess, s.Path, err)
	}
	defer f.Close()

	catalog, err := Decode(bufio.NewReader(f), kind)
	if err != nil {
		return nil, apperr.New(apperr.MetadataFileDecode, s.Path, err)
	}

	logger.Debug().Str("path", s.Path).Str("kind", kind.String()).Int("names", len(catalog.Names())).Msg("loaded metadata file")
	return catalog, nil
}

type rawSeriesMetadata struct {
	Name         *string `json:"name"`
	TVDBID       *string `json:"tvdb_id"`
	SeasonNumber *string `json:"season_number"`
}

type rawEpisode struct {
	Number *string `json:"number"`
	Name   *string `json:"name"`
}

type rawEpisodes struct {
	Metadata *rawSeriesMetadata `json:"metadata"`
	Episodes *[]rawEpisode      `json:"episodes"`
}

type rawMovie struct {
	Name   *string `json:"name"`
	TVDBID *string `json:"tvdb_id"`
}

// Decode reads one metadata document of the given kind. Every field of the
// schema must be present; unknown fields are ignored.
func Decode(r io.Reader, kind Kind) (*Catalog, error) {
	dec := json.NewDecoder(r)

	switch kind {
	case Series:
		var raw rawEpisodes
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		return raw.catalog()
	case Movie:
		var raw rawMovie
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if err := requireFields("", map[string]*string{"name": raw.Name, "tvdb_id": raw.TVDBID}); err != nil {
			return nil, err
		}
		return NewMovieCatalog(MovieDefinition{Name: *raw.Name, TVDBID: *raw.TVDBID}), nil
	}
	return nil, fmt.Errorf("unsupported metadata kind %v", kind)
}

func (raw rawEpisodes) catalog() (*Catalog, error) {
	if raw.Metadata == nil {
		return nil, fmt.Errorf("missing field `metadata`")
	}
	if raw.Episodes == nil {
		return nil, fmt.Errorf("missing field `episodes`")
	}

	m := raw.Metadata
	if err := requireFields("metadata.", map[string]*string{
		"name":          m.Name,
		"tvdb_id":       m.TVDBID,
		"season_number": m.SeasonNumber,
	}); err != nil {
		return nil, err
	}

	def := EpisodesDefinition{
		Metadata: SeriesMetadata{Name: *m.Name, TVDBID: *m.TVDBID, SeasonNumber: *m.SeasonNumber},
		Episodes: make([]EpisodeDefinition, 0, len(*raw.Episodes)),
	}

	for i, ep := range *raw.Episodes {
		if err := requireFields(fmt.Sprintf("episodes[%d].", i), map[string]*string{"number": ep.Number, "name": ep.Name}); err != nil {
			return nil, err
		}
		def.Episodes = append(def.Episodes, EpisodeDefinition{Number: *ep.Number, Name: *ep.Name})
	}

	return NewSeriesCatalog(def), nil
}

func requireFields(prefix string, fields map[string]*string) error {
	// fixed order so the reported field is deterministic
	for _, name := range []string{"name", "tvdb_id", "season_number", "number"} {
		v, ok := fields[name]
		if ok && v == nil {
			return fmt.Errorf("missing field `%s%s`", prefix, name)
		}
	}
	return nil
}

// RemoteSource fetches a metadata page and scrapes it
type RemoteSource struct {
	URL     string
	Fetcher Fetcher
	Scraper Scraper
}

func (s *RemoteSource) Describe() string { return s.URL }

func (s *RemoteSource) Load(ctx context.Context, kind Kind) (*Catalog, error) {
	logger := xlog.WithComponentFromContext(ctx, "metadata")

	body, err := s.Fetcher.Fetch(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("url", s.URL).Int("bytes", len(body)).Msg("fetched metadata page")

	catalog, err := s.Scraper.Scrape(body, kind)
	if err != nil {
		return nil, apperr.New(apperr.MetadataScrape, s.URL, err)
	}

	logger.Debug().Str("title", catalog.Title()).Int("names", len(catalog.Names())).Msg("scraped metadata")
	return catalog, nil
}
