package metadata

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const seasonPage = `<!DOCTYPE html>
<html>
<head><title>Thundercats - Season 1 - TheTVDB.com</title></head>
<body>
  <div class="btn-group pull-right"><span>decoy</span></div>
  <div class="btn-group" data-permission="series-70355-artwork">
    <button>Artwork</button>
  </div>
  <table class="table">
    <thead><tr><th>Episode</th><th>Name</th><th>Aired</th></tr></thead>
    <tbody>
      <tr><td> S01E01 </td><td><a href="/e/1"> Exodus </a></td><td>1985</td></tr>
      <tr><td>S01E02</td><td><a href="/e/2">The Unholy Alliance</a><a href="/x">ignored</a></td><td>1985</td></tr>
      <tr><td>S01E03</td><td><a href="/e/3">Pumm-Ra &amp; Friends</a></td><td>1985</td></tr>
    </tbody>
  </table>
</body>
</html>`

const moviePage = `<html>
<head><title>The Big Lebowski - TheTVDB.com</title></head>
<body><div class="btn-group" data-permission="movie-659-artwork"></div></body>
</html>`

func TestScrapeSeries(t *testing.T) {
	catalog, err := (&HTMLScraper{}).Scrape(seasonPage, Series)
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}

	want := &Catalog{
		Kind:   Series,
		Series: &SeriesMetadata{Name: "Thundercats", TVDBID: "70355", SeasonNumber: "1"},
		Episodes: []EpisodeDefinition{
			{Number: "S01E01", Name: "Exodus"},
			{Number: "S01E02", Name: "The Unholy Alliance"},
			{Number: "S01E03", Name: "Pumm-Ra & Friends"},
		},
	}

	if diff := cmp.Diff(want, catalog); diff != "" {
		t.Errorf("Scrape() mismatch (-want +got):\n%s", diff)
	}
}

func TestScrapeMovie(t *testing.T) {
	catalog, err := (&HTMLScraper{}).Scrape(moviePage, Movie)
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}

	want := &Catalog{Kind: Movie, Movie: &MovieDefinition{Name: "The Big Lebowski", TVDBID: "659"}}
	if diff := cmp.Diff(want, catalog); diff != "" {
		t.Errorf("Scrape() mismatch (-want +got):\n%s", diff)
	}
}

func TestScrapeFailures(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		page    string
		wantMsg string
	}{
		{
			name:    "no title",
			kind:    Movie,
			page:    `<div class="btn-group" data-permission="movie-1-artwork"></div>`,
			wantMsg: "title",
		},
		{
			name:    "no btn-group",
			kind:    Movie,
			page:    `<title>X - Y</title><div class="other"></div>`,
			wantMsg: "btn-group",
		},
		{
			name:    "first btn-group lacks permission",
			kind:    Movie,
			page:    `<title>X</title><div class="btn-group"></div><div class="btn-group" data-permission="movie-1-artwork"></div>`,
			wantMsg: "data-permission",
		},
		{
			name:    "malformed permission",
			kind:    Movie,
			page:    `<title>X</title><div class="btn-group" data-permission="movie"></div>`,
			wantMsg: "form",
		},
		{
			name:    "no episodes",
			kind:    Series,
			page:    `<title>X</title><div class="btn-group" data-permission="series-1-artwork"></div><table><thead><tr><td>h</td></tr></thead></table>`,
			wantMsg: "episode rows",
		},
		{
			name:    "row without link",
			kind:    Series,
			page:    `<title>X</title><div class="btn-group" data-permission="series-1-artwork"></div><table><tbody><tr><td>S01E01</td><td>plain</td></tr></tbody></table>`,
			wantMsg: "could not get name",
		},
		{
			name:    "row with one cell",
			kind:    Series,
			page:    `<title>X</title><div class="btn-group" data-permission="series-1-artwork"></div><table><tbody><tr><td>S01E01</td></tr></tbody></table>`,
			wantMsg: "could not get name",
		},
		{
			name:    "unparseable season",
			kind:    Series,
			page:    `<title>X</title><div class="btn-group" data-permission="series-1-artwork"></div><table><tbody><tr><td>Special</td><td><a>One</a></td></tr></tbody></table>`,
			wantMsg: "season number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&HTMLScraper{}).Scrape(tt.page, tt.kind)
			if err == nil {
				t.Fatal("Scrape() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Scrape() error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestSeasonNumber(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"S01E02", "1"},
		{"S12E01", "12"},
		{"S00E05", "0"},
		{"S3E1", "3"},
	}

	for _, tt := range tests {
		got, err := seasonNumber([]EpisodeDefinition{{Number: tt.number}})
		if err != nil {
			t.Errorf("seasonNumber(%q) error = %v", tt.number, err)
			continue
		}
		if got != tt.want {
			t.Errorf("seasonNumber(%q) = %q, want %q", tt.number, got, tt.want)
		}
	}

	if _, err := seasonNumber(nil); err == nil {
		t.Error("seasonNumber(nil) should fail")
	}
}
