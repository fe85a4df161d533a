package metadata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Scraper turns a metadata page into a Catalog. Pages that do not have the
// expected structure are an error, never a partial result.
type Scraper interface {
	Scrape(body string, kind Kind) (*Catalog, error)
}

// HTMLScraper reads TheTVDB-style season and movie pages:
//
//	<title>Name - ...</title>
//	<div class="btn-group" data-permission="series-<ID>-artwork">
//	<tbody><tr><td>S01E01</td><td><a>Episode name</a></td>...</tr></tbody>
type HTMLScraper struct{}

var (
	errNoTitle      = errors.New("page has no <title>")
	errEmptyTitle   = errors.New("page title is empty")
	errNoIDGroup    = errors.New(`page has no div with class "btn-group"`)
	errNoPermission = errors.New(`btn-group div has no data-permission attribute`)
	errNoEpisodes   = errors.New("page has no episode rows")
)

func (s *HTMLScraper) Scrape(body string, kind Kind) (*Catalog, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	switch kind {
	case Series:
		def, err := scrapeSeries(doc)
		if err != nil {
			return nil, err
		}
		return NewSeriesCatalog(def), nil
	case Movie:
		def, err := scrapeMovie(doc)
		if err != nil {
			return nil, err
		}
		return NewMovieCatalog(def), nil
	}
	return nil, fmt.Errorf("unsupported metadata kind %v", kind)
}

func scrapeSeries(doc *html.Node) (EpisodesDefinition, error) {
	title, err := pageTitle(doc)
	if err != nil {
		return EpisodesDefinition{}, err
	}

	id, err := permissionID(doc)
	if err != nil {
		return EpisodesDefinition{}, err
	}

	episodes, err := episodeRows(doc)
	if err != nil {
		return EpisodesDefinition{}, err
	}

	season, err := seasonNumber(episodes)
	if err != nil {
		return EpisodesDefinition{}, err
	}

	return EpisodesDefinition{
		Metadata: SeriesMetadata{Name: title, TVDBID: id, SeasonNumber: season},
		Episodes: episodes,
	}, nil
}

func scrapeMovie(doc *html.Node) (MovieDefinition, error) {
	title, err := pageTitle(doc)
	if err != nil {
		return MovieDefinition{}, err
	}

	id, err := permissionID(doc)
	if err != nil {
		return MovieDefinition{}, err
	}

	return MovieDefinition{Name: title, TVDBID: id}, nil
}

// pageTitle returns the first <title> text up to the first '-'
func pageTitle(doc *html.Node) (string, error) {
	n := findFirst(doc, func(n *html.Node) bool { return isElement(n, atom.Title) })
	if n == nil {
		return "", errNoTitle
	}

	name, _, _ := strings.Cut(textContent(n), "-")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errEmptyTitle
	}
	return name, nil
}

// permissionID extracts <ID> from data-permission="<kind>-<ID>-artwork" on the
// first btn-group div
func permissionID(doc *html.Node) (string, error) {
	n := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, atom.Div) && hasAttr(n, "class", "btn-group")
	})
	if n == nil {
		return "", errNoIDGroup
	}

	perm, ok := attr(n, "data-permission")
	if !ok {
		return "", errNoPermission
	}

	parts := strings.Split(perm, "-")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("data-permission %q is not of the form <kind>-<id>-artwork", perm)
	}
	return parts[1], nil
}

// episodeRows reads every tr inside a tbody: cell 0 is the number, the first
// link in cell 1 is the name
func episodeRows(doc *html.Node) ([]EpisodeDefinition, error) {
	rows := findAll(doc, func(n *html.Node) bool {
		return isElement(n, atom.Tr) && hasAncestor(n, atom.Tbody)
	})

	episodes := make([]EpisodeDefinition, 0, len(rows))
	for i, tr := range rows {
		cells := findAll(tr, func(n *html.Node) bool { return isElement(n, atom.Td) })
		if len(cells) < 1 {
			return nil, fmt.Errorf("episode row %d: could not get number", i+1)
		}
		if len(cells) < 2 {
			return nil, fmt.Errorf("episode row %d: could not get name", i+1)
		}

		link := findFirst(cells[1], func(n *html.Node) bool { return isElement(n, atom.A) })
		if link == nil {
			return nil, fmt.Errorf("episode row %d: could not get name", i+1)
		}

		episodes = append(episodes, EpisodeDefinition{
			Number: strings.TrimSpace(textContent(cells[0])),
			Name:   strings.TrimSpace(textContent(link)),
		})
	}

	if len(episodes) == 0 {
		return nil, errNoEpisodes
	}
	return episodes, nil
}

// seasonNumber derives "1" from a first episode numbered "S01E02"
func seasonNumber(episodes []EpisodeDefinition) (string, error) {
	if len(episodes) == 0 {
		return "", errNoEpisodes
	}

	number := episodes[0].Number
	prefix, _, _ := strings.Cut(number, "E")
	digits := strings.TrimLeftFunc(prefix, unicode.IsLetter)

	n, err := strconv.ParseUint(digits, 10, 8)
	if err != nil {
		return "", fmt.Errorf("season number from episode %q: %w", number, err)
	}
	return strconv.FormatUint(n, 10), nil
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n.Type == html.ElementNode && n.DataAtom == a
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key, val string) bool {
	v, ok := attr(n, key)
	return ok && v == val
}

func hasAncestor(n *html.Node, a atom.Atom) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if isElement(p, a) {
			return true
		}
	}
	return false
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns matches in document order, including nested ones
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
