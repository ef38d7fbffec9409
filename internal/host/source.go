package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/robotsmeta/internal/catalog"
	"github.com/nao1215/robotsmeta/internal/model"
)

// ErrPageNotFound is returned by a PageSource for an unknown path.
var ErrPageNotFound = errors.New("page not found")

// PageSource looks up the crawler info of a request path.
type PageSource interface {
	Lookup(ctx context.Context, path string) (model.WebCrawlerInfo, error)
}

// StaticPages is an in-memory PageSource.
type StaticPages map[string]model.WebCrawlerInfo

// Lookup implements PageSource.
func (p StaticPages) Lookup(_ context.Context, path string) (model.WebCrawlerInfo, error) {
	info, ok := p[path]
	if !ok {
		return model.WebCrawlerInfo{}, fmt.Errorf("%w: %s", ErrPageNotFound, path)
	}
	return info, nil
}

// CatalogPages serves pages from a catalog.
type CatalogPages struct {
	Catalog *catalog.Catalog
}

// Lookup implements PageSource.
func (p CatalogPages) Lookup(ctx context.Context, path string) (model.WebCrawlerInfo, error) {
	page, err := p.Catalog.Get(ctx, path)
	if errors.Is(err, catalog.ErrPageNotFound) {
		return model.WebCrawlerInfo{}, fmt.Errorf("%w: %s", ErrPageNotFound, path)
	}
	if err != nil {
		return model.WebCrawlerInfo{}, err
	}
	return page.Info, nil
}
