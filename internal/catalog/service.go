// Package catalog serves product browsing through a Redis read-through cache.
// The catalog is public and read-heavy; concurrent misses for the same query
// are collapsed with singleflight so the backend sees one upstream call.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

type Backend interface {
	FetchProducts(ctx context.Context, query string, page, limit int) (*domain.ProductPage, error)
	FetchProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type Service struct {
	backend Backend
	cache   Cache
	sfg     singleflight.Group
}

func NewService(b Backend, cache Cache) *Service {
	return &Service{backend: b, cache: cache}
}

// Products returns one page of catalog results, from cache when possible.
// Cache failures are logged and degrade to a direct backend call.
func (s *Service) Products(ctx context.Context, query string, page, limit int) (*domain.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	key := fmt.Sprintf("catalog:list:%s:%d:%d", query, page, limit)

	v, err, _ := s.sfg.Do(key, func() (any, error) {
		if cached, err := s.lookup(ctx, key); err == nil {
			var pageOut domain.ProductPage
			if err := json.Unmarshal(cached, &pageOut); err == nil {
				return &pageOut, nil
			}
		}

		pageOut, err := s.backend.FetchProducts(ctx, query, page, limit)
		if err != nil {
			return nil, err
		}
		s.fill(key, pageOut)
		return pageOut, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ProductPage), nil
}

// Product returns one product by id, cached the same way as pages.
func (s *Service) Product(ctx context.Context, id int64) (*domain.Product, error) {
	key := fmt.Sprintf("catalog:product:%d", id)

	v, err, _ := s.sfg.Do(key, func() (any, error) {
		if cached, err := s.lookup(ctx, key); err == nil {
			var product domain.Product
			if err := json.Unmarshal(cached, &product); err == nil {
				return &product, nil
			}
		}

		product, err := s.backend.FetchProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		s.fill(key, product)
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (s *Service) lookup(ctx context.Context, key string) ([]byte, error) {
	if s.cache == nil {
		return nil, ErrCacheMiss
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		log.Printf("catalog cache get error: %v", err)
	}
	return data, err
}

// fill writes the cache off the request path; a slow or down Redis must not
// delay the response.
func (s *Service) fill(key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Set(ctx, key, data); err != nil {
			log.Printf("catalog cache set error: %v", err)
		}
	}()
}
