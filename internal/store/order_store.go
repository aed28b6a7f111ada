package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nikolayk812/storefront-go/internal/domain"
	"github.com/nikolayk812/storefront-go/internal/port"
)

// OrderStore holds the signed-in user's orders and the order detail. Every
// operation needs a session.
type OrderStore struct {
	mu      sync.RWMutex
	orders  []domain.Order
	current *domain.Order
	loading bool
	lastErr string

	api     port.OrderAPI
	session port.SessionProvider
	log     logrus.FieldLogger
}

func NewOrderStore(api port.OrderAPI, session port.SessionProvider, log logrus.FieldLogger) *OrderStore {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &OrderStore{
		api:     api,
		session: session,
		log:     log,
	}
}

func (s *OrderStore) FetchOrders(ctx context.Context) {
	s.begin()
	defer s.end()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		return
	}

	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		s.fail(fmt.Errorf("api.ListOrders: %w", err))
		return
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
}

func (s *OrderStore) FetchOrderByID(ctx context.Context, orderID string) {
	s.begin()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	defer s.end()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		return
	}

	order, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		s.fail(fmt.Errorf("api.GetOrder: %w", err))
		return
	}

	s.mu.Lock()
	s.current = &order
	s.mu.Unlock()
}

// CreateOrder turns the server-side cart into an order shipped to the given
// address, paid by credit card. The new order is prepended to the list and
// becomes the current order.
func (s *OrderStore) CreateOrder(ctx context.Context, shipping domain.Address) (domain.Order, error) {
	s.begin()
	defer s.end()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		return domain.Order{}, err
	}

	order, err := s.api.CreateOrder(ctx, shipping, domain.PaymentMethodCreditCard)
	if err != nil {
		err = fmt.Errorf("api.CreateOrder: %w", err)
		s.fail(err)
		return domain.Order{}, err
	}

	s.mu.Lock()
	s.orders = append([]domain.Order{order}, s.orders...)
	s.current = &order
	s.mu.Unlock()

	return order, nil
}

// ProcessPayment pays for the order and refreshes the order list. The
// current order is marked paid when it is the one being paid for.
func (s *OrderStore) ProcessPayment(ctx context.Context, orderID string, details domain.PaymentDetails) (domain.Payment, error) {
	s.begin()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		s.end()
		return domain.Payment{}, err
	}

	payment, err := s.api.PayOrder(ctx, orderID, details)
	if err != nil {
		err = fmt.Errorf("api.PayOrder: %w", err)
		s.fail(err)
		s.end()
		return domain.Payment{}, err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == orderID {
		s.current.PaymentStatus = domain.PaymentStatusPaid
	}
	s.mu.Unlock()

	s.end()
	s.FetchOrders(ctx)

	return payment, nil
}

// UpdateOrderStatus is an admin operation. Both the list entry and the
// current order are patched with the new status.
func (s *OrderStore) UpdateOrderStatus(ctx context.Context, orderID, status string) (domain.Order, error) {
	s.begin()
	defer s.end()

	if err := s.requireSession(); err != nil {
		s.fail(err)
		return domain.Order{}, err
	}

	updated, err := s.api.SetOrderStatus(ctx, orderID, status)
	if err != nil {
		err = fmt.Errorf("api.SetOrderStatus: %w", err)
		s.fail(err)
		return domain.Order{}, err
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			break
		}
	}
	if s.current != nil && s.current.ID == orderID {
		s.current.Status = status
	}
	s.mu.Unlock()

	return updated, nil
}

func (s *OrderStore) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Order(nil), s.orders...)
}

// Current returns the order detail, or false when none is loaded.
func (s *OrderStore) Current() (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.Order{}, false
	}
	return *s.current, true
}

func (s *OrderStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *OrderStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *OrderStore) requireSession() error {
	if s.session.Authenticated() {
		return nil
	}
	return ErrAuthRequired
}

func (s *OrderStore) begin() {
	s.mu.Lock()
	s.lastErr = ""
	s.loading = true
	s.mu.Unlock()
}

func (s *OrderStore) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *OrderStore) fail(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()

	s.log.WithError(err).Warn("order request failed")
}
