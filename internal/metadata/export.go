package metadata

import (
	"context"
	"encoding/json"
	"os"

	"github.com/Nomadcxx/mkvrenamer/internal/apperr"
	xlog "github.com/Nomadcxx/mkvrenamer/internal/log"
)

// Export loads metadata from src and writes it as an indented JSON document
// to path. An existing file at path is never overwritten.
func Export(ctx context.Context, src Source, kind Kind, path string) (*Catalog, error) {
	logger := xlog.WithComponentFromContext(ctx, "export")

	catalog, err := src.Load(ctx, kind)
	if err != nil {
		return nil, err
	}

	if err := writeNew(path, catalog.Document()); err != nil {
		return nil, &apperr.Error{Kind: apperr.MetadataExport, Path: src.Describe(), Other: path, Err: err}
	}

	logger.Info().Str("path", path).Str("kind", kind.String()).Msg("exported metadata")
	return catalog, nil
}

func writeNew(path string, doc any) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
