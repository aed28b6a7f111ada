package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nikolayk812/storefront-go/internal/domain"
	"github.com/nikolayk812/storefront-go/internal/port"
)

// CartStore owns the client-side cart state and reconciles it with the
// remote cart endpoint when a session exists. Without a session it is a
// purely local guest cart.
//
// Mutations are optimistic: local state is updated first and is never
// rolled back when the remote sync fails. Failures are recorded in
// LastError instead of being returned, see the package doc for the policy
// split between stores.
//
// Concurrent operations are not serialized against each other. The mutex
// protects the state only, it is never held across a network call, so the
// later resolution wins.
type CartStore struct {
	mu      sync.RWMutex
	items   []domain.CartItem
	syncing bool
	lastErr string

	api     port.CartAPI
	session port.SessionProvider
	storage port.CartStorage
	log     logrus.FieldLogger
}

// NewCartStore wires the cart against its collaborators. storage may be nil
// when guest carts should not survive the process.
func NewCartStore(api port.CartAPI, session port.SessionProvider, storage port.CartStorage, log logrus.FieldLogger) *CartStore {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &CartStore{
		api:     api,
		session: session,
		storage: storage,
		log:     log,
	}
}

// AddItem merges the product into the cart: an existing line's quantity is
// incremented, otherwise a new line is appended with a snapshot of the
// product's name and price. quantity 0 means 1. With a session the remote
// upsert carries the resulting total quantity, not the delta.
func (s *CartStore) AddItem(ctx context.Context, product domain.Product, quantity int) {
	if quantity == 0 {
		quantity = 1
	}

	s.begin()
	defer s.end()

	s.mu.Lock()
	total := quantity
	found := false
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			total = s.items[i].Quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  quantity,
		})
	}
	s.mu.Unlock()

	s.persist(ctx)

	if !s.session.Authenticated() {
		return
	}
	if err := s.api.UpsertItem(ctx, product.ID, total); err != nil {
		s.fail(fmt.Errorf("api.UpsertItem: %w", err))
	}
}

// UpdateItemQuantity sets (not increments) the line's quantity. A quantity
// of zero or less removes the line. An unknown id is a complete no-op, no
// line is created and no remote call is issued.
func (s *CartStore) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) {
	s.begin()
	defer s.end()

	s.mu.Lock()
	idx := -1
	for i := range s.items {
		if s.items[i].ProductID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	if quantity <= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	} else {
		s.items[idx].Quantity = quantity
	}
	s.mu.Unlock()

	s.persist(ctx)

	if !s.session.Authenticated() {
		return
	}

	if quantity <= 0 {
		if err := s.api.RemoveItem(ctx, itemID); err != nil {
			s.fail(fmt.Errorf("api.RemoveItem: %w", err))
		}
		return
	}
	if err := s.api.SetItemQuantity(ctx, itemID, quantity); err != nil {
		s.fail(fmt.Errorf("api.SetItemQuantity: %w", err))
	}
}

// RemoveItem drops the line locally, a no-op for unknown ids. With a
// session the remote delete is issued either way.
func (s *CartStore) RemoveItem(ctx context.Context, itemID string) {
	s.begin()
	defer s.end()

	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != itemID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()

	s.persist(ctx)

	if !s.session.Authenticated() {
		return
	}
	if err := s.api.RemoveItem(ctx, itemID); err != nil {
		s.fail(fmt.Errorf("api.RemoveItem: %w", err))
	}
}

// ClearCart empties the cart unconditionally.
func (s *CartStore) ClearCart(ctx context.Context) {
	s.begin()
	defer s.end()

	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.persist(ctx)

	if !s.session.Authenticated() {
		return
	}
	if err := s.api.ClearCart(ctx); err != nil {
		s.fail(fmt.Errorf("api.ClearCart: %w", err))
	}
}

// FetchCart replaces local state wholesale with the server's cart. Guests
// return immediately without any network call. On failure local state is
// left untouched.
func (s *CartStore) FetchCart(ctx context.Context) {
	if !s.session.Authenticated() {
		return
	}

	s.begin()
	defer s.end()

	cart, err := s.api.GetCart(ctx)
	if err != nil {
		s.fail(fmt.Errorf("api.GetCart: %w", err))
		return
	}

	s.mu.Lock()
	s.items = cart.Items
	s.mu.Unlock()

	s.persist(ctx)
}

// Hydrate restores a previously persisted guest cart. Meant to run once at
// startup, before any operation.
func (s *CartStore) Hydrate(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}

	items, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("storage.Load: %w", err)
	}
	if items == nil {
		return nil
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	return nil
}

// Reset drops all local state without talking to the backend. Wired to the
// sign-out transition by the composition root.
func (s *CartStore) Reset(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.lastErr = ""
	s.mu.Unlock()

	s.persist(ctx)
}

// Items returns a copy of the current line items.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CartItem(nil), s.items...)
}

func (s *CartStore) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Cart{Items: s.items}.TotalItems()
}

func (s *CartStore) TotalPrice() domain.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Cart{Items: s.items}.TotalPrice()
}

// Synchronizing reports whether a reconciliation is in flight.
func (s *CartStore) Synchronizing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.syncing
}

// LastError holds the message of the most recent failed operation, cleared
// at the start of the next one.
func (s *CartStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *CartStore) begin() {
	s.mu.Lock()
	s.lastErr = ""
	s.syncing = true
	s.mu.Unlock()
}

func (s *CartStore) end() {
	s.mu.Lock()
	s.syncing = false
	s.mu.Unlock()
}

func (s *CartStore) fail(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()

	s.log.WithError(err).Warn("cart sync failed")
}

// persist writes the current snapshot to storage, best effort.
func (s *CartStore) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}

	items := s.Items()
	if err := s.storage.Save(ctx, items); err != nil {
		s.log.WithError(err).Warn("cart persist failed")
	}
}
