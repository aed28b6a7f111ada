package store_test

import (
	"context"
	"sync"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

type stubSession struct {
	authenticated bool
}

func (s stubSession) Authenticated() bool {
	return s.authenticated
}

func (s stubSession) Token(_ context.Context, _ bool) (string, error) {
	return "test-token", nil
}

type mockCartAPI struct {
	mu    sync.Mutex
	cart  domain.Cart
	err   error
	calls map[string]int

	lastUpsertID  string
	lastUpsertQty int
	lastSetQty    int
	lastRemovedID string
}

func newMockCartAPI() *mockCartAPI {
	return &mockCartAPI{calls: make(map[string]int)}
}

func (m *mockCartAPI) record(name string) {
	m.calls[name]++
}

func (m *mockCartAPI) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockCartAPI) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total int
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *mockCartAPI) GetCart(context.Context) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("GetCart")

	if m.err != nil {
		return domain.Cart{}, m.err
	}
	return m.cart, nil
}

func (m *mockCartAPI) UpsertItem(_ context.Context, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("UpsertItem")

	m.lastUpsertID = productID
	m.lastUpsertQty = quantity
	return m.err
}

func (m *mockCartAPI) SetItemQuantity(_ context.Context, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SetItemQuantity")

	m.lastUpsertID = productID
	m.lastSetQty = quantity
	return m.err
}

func (m *mockCartAPI) RemoveItem(_ context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("RemoveItem")

	m.lastRemovedID = productID
	return m.err
}

func (m *mockCartAPI) ClearCart(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ClearCart")
	return m.err
}

type mockProductAPI struct {
	mu         sync.Mutex
	page       domain.ProductPage
	product    domain.Product
	categories []string

	listErr       error
	getErr        error
	categoriesErr error
	mutateErr     error

	calls      map[string]int
	lastFilter domain.ProductFilter
}

func newMockProductAPI() *mockProductAPI {
	return &mockProductAPI{calls: make(map[string]int)}
}

func (m *mockProductAPI) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockProductAPI) ListProducts(_ context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["ListProducts"]++
	m.lastFilter = filter

	if m.listErr != nil {
		return domain.ProductPage{}, m.listErr
	}
	return m.page, nil
}

func (m *mockProductAPI) GetProduct(_ context.Context, _ string) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["GetProduct"]++

	if m.getErr != nil {
		return domain.Product{}, m.getErr
	}
	return m.product, nil
}

func (m *mockProductAPI) ListCategories(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["ListCategories"]++

	if m.categoriesErr != nil {
		return nil, m.categoriesErr
	}
	return m.categories, nil
}

func (m *mockProductAPI) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["CreateProduct"]++

	if m.mutateErr != nil {
		return domain.Product{}, m.mutateErr
	}
	return product, nil
}

func (m *mockProductAPI) UpdateProduct(_ context.Context, productID string, product domain.Product) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["UpdateProduct"]++

	if m.mutateErr != nil {
		return domain.Product{}, m.mutateErr
	}
	product.ID = productID
	return product, nil
}

func (m *mockProductAPI) DeleteProduct(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["DeleteProduct"]++
	return m.mutateErr
}

type mockOrderAPI struct {
	mu      sync.Mutex
	orders  []domain.Order
	order   domain.Order
	payment domain.Payment
	err     error

	calls map[string]int
}

func newMockOrderAPI() *mockOrderAPI {
	return &mockOrderAPI{calls: make(map[string]int)}
}

func (m *mockOrderAPI) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockOrderAPI) ListOrders(context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["ListOrders"]++

	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *mockOrderAPI) GetOrder(_ context.Context, _ string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["GetOrder"]++

	if m.err != nil {
		return domain.Order{}, m.err
	}
	return m.order, nil
}

func (m *mockOrderAPI) CreateOrder(_ context.Context, shipping domain.Address, paymentMethod string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["CreateOrder"]++

	if m.err != nil {
		return domain.Order{}, m.err
	}

	order := m.order
	order.Shipping = shipping
	order.Status = domain.OrderStatusPending
	_ = paymentMethod
	return order, nil
}

func (m *mockOrderAPI) PayOrder(_ context.Context, orderID string, _ domain.PaymentDetails) (domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["PayOrder"]++

	if m.err != nil {
		return domain.Payment{}, m.err
	}

	payment := m.payment
	payment.OrderID = orderID
	return payment, nil
}

func (m *mockOrderAPI) SetOrderStatus(_ context.Context, orderID, status string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["SetOrderStatus"]++

	if m.err != nil {
		return domain.Order{}, m.err
	}

	order := m.order
	order.ID = orderID
	order.Status = status
	return order, nil
}

type mockAddressAPI struct {
	mu        sync.Mutex
	addresses []domain.Address
	err       error
	nextID    string
}

func (m *mockAddressAPI) ListAddresses(context.Context) ([]domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return m.addresses, nil
}

func (m *mockAddressAPI) CreateAddress(_ context.Context, address domain.Address) (domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return domain.Address{}, m.err
	}
	address.ID = m.nextID
	return address, nil
}

func (m *mockAddressAPI) UpdateAddress(_ context.Context, addressID string, address domain.Address) (domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return domain.Address{}, m.err
	}
	address.ID = addressID
	return address, nil
}

func (m *mockAddressAPI) DeleteAddress(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
