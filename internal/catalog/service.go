// Package catalog supplies immutable product records: sqlite underneath, a
// redis read cache for by-slug lookups, and in-process filtering and sorting.
// Nothing here mutates products.
package catalog

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/arnoldart/shophub/internal/domain"
)

type Service struct {
	repo  Repo
	cache ProductCache
	sfg   singleflight.Group // Prevents cache stampede on hot products
}

func NewService(repo Repo, cache ProductCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// ListOptions narrows and orders a product listing. Zero value means
// everything, newest first.
type ListOptions struct {
	Query    string
	Category string
	Brands   []string
	SortBy   string // price-asc, price-desc, rating, newest
}

// GetBySlug serves product pages. Lookups go cache first; concurrent misses
// for the same slug collapse into one repository read.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	v, err, _ := s.sfg.Do(slug, func() (interface{}, error) {
		product, err := s.cache.Get(ctx, slug)
		if err == nil {
			return product, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("product cache get error: %v", err) // log cache error but continue
		}

		product, errGet := s.repo.GetBySlug(ctx, slug)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(ctx, slug, product); errSet != nil {
				log.Printf("product cache set error: %v", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

// GetByID fetches a product for cart validation; not cached, carts are keyed
// by id while the hot read path is by slug.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the catalog narrowed and ordered per opts.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*domain.Product, error) {
	var (
		products []*domain.Product
		err      error
	)
	if opts.Query != "" {
		products, err = s.repo.Search(ctx, opts.Query)
	} else {
		products, err = s.repo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	products = filterProducts(products, opts)
	sortProducts(products, opts.SortBy)
	return products, nil
}

// Search is the bare substring search over name and description.
func (s *Service) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	return s.repo.Search(ctx, query)
}

func filterProducts(products []*domain.Product, opts ListOptions) []*domain.Product {
	if opts.Category == "" && len(opts.Brands) == 0 {
		return products
	}

	brands := make(map[string]bool, len(opts.Brands))
	for _, b := range opts.Brands {
		brands[strings.ToLower(b)] = true
	}

	filtered := products[:0]
	for _, p := range products {
		if opts.Category != "" && !strings.EqualFold(p.Category, opts.Category) {
			continue
		}
		if len(brands) > 0 && !brands[strings.ToLower(p.Brand)] {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func sortProducts(products []*domain.Product, sortBy string) {
	switch sortBy {
	case "price-asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price-desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case "rating":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	default:
		// newest first is the repository's natural order
	}
}
