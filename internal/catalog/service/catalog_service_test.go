package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/cache"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/domain"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/repository"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	getCalls int64
	delay    time.Duration
}

func newMockRepository(products ...*domain.Product) *mockRepository {
	m := &mockRepository{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	atomic.AddInt64(&m.getCalls, 1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *mockRepository) ListProducts(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Product
	for _, p := range m.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRepository) RunMigrations(*repository.Credentials) error { return nil }
func (m *mockRepository) Close() error                                { return nil }

type mockCache struct {
	mu       sync.Mutex
	store    map[int64]*domain.Product
	getCalls int
	setCalls int
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[int64]*domain.Product)}
}

func (m *mockCache) Get(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	p, ok := m.store[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return p, nil
}

func (m *mockCache) Set(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	m.store[product.ID] = product
	return nil
}

func (m *mockCache) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

func solitaireRing() *domain.Product {
	return &domain.Product{
		ID:          1,
		Name:        "Classic Solitaire Engagement Ring",
		Category:    pricing.CategoryRings,
		Subcategory: "engagement-rings",
		BasePrice:   pricing.Pesos(15000),
		InStock:     true,
		Options: pricing.OptionSet{
			Metals: []string{"14k White Gold", "18k Yellow Gold"},
			Stones: []string{"Signity", "Natural Diamond"},
			Carats: []string{"1", "3"},
			Sizes:  []string{"5", "6", "7"},
		},
		Pricing: pricing.Spec{Combinations: []pricing.Combination{
			{Stone: "Signity", Carat: "1", Metal: "14k White Gold", Price: pricing.Pesos(19000)},
			{Stone: "Natural Diamond", Carat: "3", Metal: "18k Yellow Gold", Price: pricing.Pesos(1559000)},
		}},
	}
}

func TestGetProduct_CacheHit(t *testing.T) {
	repo := newMockRepository(solitaireRing())
	c := newMockCache()
	require.NoError(t, c.Set(context.Background(), solitaireRing()))
	c.setCalls = 0

	svc := NewCatalogService(repo, c)
	product, err := svc.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Classic Solitaire Engagement Ring", product.Name)
	assert.Equal(t, int64(0), atomic.LoadInt64(&repo.getCalls), "cache hit must not touch the repository")
}

func TestGetProduct_CacheMissFallsThrough(t *testing.T) {
	repo := newMockRepository(solitaireRing())
	c := newMockCache()
	svc := NewCatalogService(repo, c)

	product, err := svc.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, int64(1), atomic.LoadInt64(&repo.getCalls))

	// cache population is async
	assert.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.setCalls == 1
	}, time.Second, 10*time.Millisecond)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := NewCatalogService(newMockRepository(), newMockCache())
	_, err := svc.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestGetProduct_ConcurrentMissesCollapse(t *testing.T) {
	repo := newMockRepository(solitaireRing())
	repo.delay = 50 * time.Millisecond
	svc := NewCatalogService(repo, newMockCache())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetProduct(context.Background(), 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&repo.getCalls), "concurrent misses should share one repository read")
}

func TestPreviewPrice_CombinationMatch(t *testing.T) {
	svc := NewCatalogService(newMockRepository(solitaireRing()), newMockCache())

	preview, err := svc.PreviewPrice(context.Background(), 1, pricing.Selection{
		Metal: "14k White Gold",
		Stone: "Signity",
		Carat: "1",
		Size:  "6",
	})
	require.NoError(t, err)
	assert.Equal(t, pricing.Pesos(19000), preview.Price)
	assert.False(t, preview.RequiresQuote)
	assert.False(t, preview.PairNotice)
}

func TestPreviewPrice_OversizeRequiresQuote(t *testing.T) {
	svc := NewCatalogService(newMockRepository(solitaireRing()), newMockCache())

	preview, err := svc.PreviewPrice(context.Background(), 1, pricing.Selection{
		Metal: "14k White Gold",
		Stone: "Signity",
		Carat: "1",
		Size:  "8.5",
	})
	require.NoError(t, err)
	assert.True(t, preview.RequiresQuote)
}

func TestDefaultSelection(t *testing.T) {
	svc := NewCatalogService(newMockRepository(solitaireRing()), newMockCache())

	sel, err := svc.DefaultSelection(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "14k White Gold", sel.Metal)
	assert.Equal(t, "Signity", sel.Stone)
	assert.Equal(t, "1", sel.Carat)
	assert.Equal(t, "5", sel.Size)
}

func TestListProducts_Filter(t *testing.T) {
	ring := solitaireRing()
	necklace := &domain.Product{ID: 3, Name: "Tennis Necklace", Category: pricing.CategoryNecklaces, InStock: true}
	svc := NewCatalogService(newMockRepository(ring, necklace), newMockCache())

	products, err := svc.ListProducts(context.Background(), domain.Filter{Category: pricing.CategoryRings})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, ring.ID, products[0].ID)
}
