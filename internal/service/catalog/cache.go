package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/you-humble/workshop/internal/model"
	"github.com/you-humble/workshop/platform/logger"
)

type CatalogBackend interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListServices(ctx context.Context, activeOnly bool) ([]model.Service, error)
}

const refreshKey = "catalog"

// Cache is a read-through cache of the product and service catalog. It never
// mutates the catalog; Refresh replaces the whole snapshot.
type Cache struct {
	backend CatalogBackend
	timeout time.Duration
	now     func() time.Time

	mu   sync.RWMutex
	snap *Snapshot

	group singleflight.Group
}

func NewCache(backend CatalogBackend, timeout time.Duration) *Cache {
	return &Cache{
		backend: backend,
		timeout: timeout,
		now:     time.Now,
	}
}

// Refresh fetches a new snapshot. Concurrent callers share one fetch. On failure
// the previous snapshot stays in place.
func (c *Cache) Refresh(ctx context.Context) (*Snapshot, error) {
	const op = "catalog.cache.Refresh"

	res, err, shared := c.group.Do(refreshKey, func() (any, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		logger.Error(ctx, "catalog refresh failed", logger.Bool("shared", shared), logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	snap := res.(*Snapshot)

	c.mu.Lock()
	if c.snap == nil || !snap.TakenAt().Before(c.snap.TakenAt()) {
		c.snap = snap
	}
	c.mu.Unlock()

	return snap, nil
}

// Snapshot returns the current snapshot, loading one if the cache is empty.
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()

	if snap != nil {
		return snap, nil
	}
	return c.Refresh(ctx)
}

func (c *Cache) ListProducts(ctx context.Context) ([]model.Product, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Products(), nil
}

func (c *Cache) ListServices(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Services(activeOnly), nil
}

// InStock lists the products a mechanic can pick from.
func (c *Cache) InStock(ctx context.Context) ([]model.Product, error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(products, func(p model.Product, _ int) bool { return p.Stock > 0 }), nil
}

// LowStock lists products at or below their minimum stock threshold.
func (c *Cache) LowStock(ctx context.Context) ([]model.Product, error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(products, func(p model.Product, _ int) bool { return p.LowStock() }), nil
}

func (c *Cache) fetch(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		products []model.Product
		services []model.Service
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		products, err = c.backend.ListProducts(egCtx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		services, err = c.backend.ListServices(egCtx, false)
		if err != nil {
			return fmt.Errorf("list services: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	snap := NewSnapshot(products, services, c.now())
	logger.Debug(ctx, "catalog refreshed",
		logger.Int("products", len(products)),
		logger.Int("services", len(services)),
	)

	return snap, nil
}
