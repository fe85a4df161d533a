package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/Nomadcxx/mkvrenamer/internal/apperr"
)

// Fetcher retrieves a metadata page body
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

const userAgent = "mkvrenamer"

// HTTPFetcher issues a single GET. No timeout is applied beyond ctx and there
// are no retries.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperr.New(apperr.MetadataURLAccess, url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", apperr.New(apperr.MetadataURLAccess, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperr.New(apperr.MetadataURLAccess, url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.New(apperr.MetadataBodyDecode, url, err)
	}
	if !utf8.Valid(data) {
		return "", apperr.New(apperr.MetadataBodyDecode, url, fmt.Errorf("body is not valid UTF-8"))
	}

	return string(data), nil
}
