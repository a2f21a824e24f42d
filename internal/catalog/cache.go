package catalog

import (
	"context"
	"errors"

	"github.com/arnoldart/shophub/internal/domain"
)

type ProductCache interface {
	Get(ctx context.Context, slug string) (*domain.Product, error)
	Set(ctx context.Context, slug string, product *domain.Product) error
	Delete(ctx context.Context, slug string) error
}

var ErrCacheMiss = errors.New("cache miss")

// NopCache misses on every read. Used when no redis is configured.
type NopCache struct{}

func (NopCache) Get(_ context.Context, _ string) (*domain.Product, error) {
	return nil, ErrCacheMiss
}

func (NopCache) Set(_ context.Context, _ string, _ *domain.Product) error { return nil }

func (NopCache) Delete(_ context.Context, _ string) error { return nil }
