package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nikolayk812/storefront-go/internal/domain"
	"github.com/nikolayk812/storefront-go/internal/port"
)

// ProductStore holds the catalog view: the current page of products, the
// category list, filter and pagination state, and the product detail.
type ProductStore struct {
	mu         sync.RWMutex
	products   []domain.Product
	categories []string
	current    *domain.Product
	filter     domain.ProductFilter
	pagination domain.Pagination
	loading    bool
	lastErr    string

	api     port.ProductAPI
	session port.SessionProvider
	log     logrus.FieldLogger
}

func NewProductStore(api port.ProductAPI, session port.SessionProvider, log logrus.FieldLogger) *ProductStore {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &ProductStore{
		filter:  domain.DefaultProductFilter(),
		api:     api,
		session: session,
		log:     log,
	}
}

// FetchProducts loads the page selected by the current filter state.
func (s *ProductStore) FetchProducts(ctx context.Context) {
	s.begin()
	defer s.end()

	s.mu.RLock()
	filter := s.filter
	s.mu.RUnlock()

	page, err := s.api.ListProducts(ctx, filter)
	if err != nil {
		s.fail(fmt.Errorf("api.ListProducts: %w", err))
		return
	}

	s.mu.Lock()
	s.products = page.Products
	s.pagination = page.Pagination
	s.mu.Unlock()
}

// FetchProductByID loads the product detail. The previous detail is
// dropped before the request so the UI never shows a stale product.
func (s *ProductStore) FetchProductByID(ctx context.Context, productID string) {
	s.begin()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	defer s.end()

	product, err := s.api.GetProduct(ctx, productID)
	if err != nil {
		s.fail(fmt.Errorf("api.GetProduct: %w", err))
		return
	}

	s.mu.Lock()
	s.current = &product
	s.mu.Unlock()
}

// FetchCategories asks the dedicated endpoint first and falls back to
// extracting distinct categories from a wide product listing when the
// endpoint is unavailable.
func (s *ProductStore) FetchCategories(ctx context.Context) {
	s.begin()
	defer s.end()

	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		page, fallbackErr := s.api.ListProducts(ctx, domain.ProductFilter{Page: 1, Limit: 100})
		if fallbackErr != nil {
			s.fail(fmt.Errorf("api.ListProducts: %w", fallbackErr))
			return
		}
		categories = distinctCategories(page.Products)
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
}

// CreateProduct is an admin operation. The catalog page is refreshed after
// a successful create.
func (s *ProductStore) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	s.begin()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		s.end()
		return domain.Product{}, err
	}

	created, err := s.api.CreateProduct(ctx, product)
	if err != nil {
		err = fmt.Errorf("api.CreateProduct: %w", err)
		s.fail(err)
		s.end()
		return domain.Product{}, err
	}

	s.end()
	s.FetchProducts(ctx)

	return created, nil
}

func (s *ProductStore) UpdateProduct(ctx context.Context, productID string, product domain.Product) (domain.Product, error) {
	s.begin()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		s.end()
		return domain.Product{}, err
	}

	updated, err := s.api.UpdateProduct(ctx, productID, product)
	if err != nil {
		err = fmt.Errorf("api.UpdateProduct: %w", err)
		s.fail(err)
		s.end()
		return domain.Product{}, err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == productID {
		s.current = &updated
	}
	s.mu.Unlock()

	s.end()
	s.FetchProducts(ctx)

	return updated, nil
}

func (s *ProductStore) DeleteProduct(ctx context.Context, productID string) error {
	s.begin()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		s.end()
		return err
	}

	if err := s.api.DeleteProduct(ctx, productID); err != nil {
		err = fmt.Errorf("api.DeleteProduct: %w", err)
		s.fail(err)
		s.end()
		return err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == productID {
		s.current = nil
	}
	s.mu.Unlock()

	s.end()
	s.FetchProducts(ctx)

	return nil
}

// ApplyFilter replaces the whole filter, jumps back to the first page when
// the caller left it unset, and refetches.
func (s *ProductStore) ApplyFilter(ctx context.Context, filter domain.ProductFilter) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultProductFilter().Limit
	}

	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()

	s.FetchProducts(ctx)
}

// SetCategory narrows the listing and jumps back to the first page.
func (s *ProductStore) SetCategory(ctx context.Context, category string) {
	s.mu.Lock()
	s.filter.Category = category
	s.filter.Page = 1
	s.mu.Unlock()

	s.FetchProducts(ctx)
}

// SetPriceRange narrows the listing and jumps back to the first page.
func (s *ProductStore) SetPriceRange(ctx context.Context, minPrice, maxPrice int) {
	s.mu.Lock()
	s.filter.MinPrice = minPrice
	s.filter.MaxPrice = maxPrice
	s.filter.Page = 1
	s.mu.Unlock()

	s.FetchProducts(ctx)
}

func (s *ProductStore) SetPage(ctx context.Context, page int) {
	s.mu.Lock()
	s.filter.Page = page
	s.mu.Unlock()

	s.FetchProducts(ctx)
}

func (s *ProductStore) ResetFilters(ctx context.Context) {
	s.mu.Lock()
	s.filter = domain.DefaultProductFilter()
	s.mu.Unlock()

	s.FetchProducts(ctx)
}

func (s *ProductStore) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

func (s *ProductStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.categories...)
}

// Current returns the product detail, or false when none is loaded.
func (s *ProductStore) Current() (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.Product{}, false
	}
	return *s.current, true
}

func (s *ProductStore) Filter() domain.ProductFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *ProductStore) Pagination() domain.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

func (s *ProductStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *ProductStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *ProductStore) requireSession() error {
	if s.session.Authenticated() {
		return nil
	}
	return ErrAuthRequired
}

func (s *ProductStore) begin() {
	s.mu.Lock()
	s.lastErr = ""
	s.loading = true
	s.mu.Unlock()
}

func (s *ProductStore) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *ProductStore) fail(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()

	s.log.WithError(err).Warn("catalog request failed")
}

func distinctCategories(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
