package port

import (
	"context"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

// CartAPI is the remote cart endpoint. UpsertItem carries the resulting
// total quantity for the product, not the delta.
type CartAPI interface {
	GetCart(ctx context.Context) (domain.Cart, error)
	UpsertItem(ctx context.Context, productID string, quantity int) error
	SetItemQuantity(ctx context.Context, productID string, quantity int) error
	RemoveItem(ctx context.Context, productID string) error
	ClearCart(ctx context.Context) error
}

type ProductAPI interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error)
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)

	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type OrderAPI interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	CreateOrder(ctx context.Context, shipping domain.Address, paymentMethod string) (domain.Order, error)
	PayOrder(ctx context.Context, orderID string, details domain.PaymentDetails) (domain.Payment, error)
	SetOrderStatus(ctx context.Context, orderID, status string) (domain.Order, error)
}

type AddressAPI interface {
	ListAddresses(ctx context.Context) ([]domain.Address, error)
	CreateAddress(ctx context.Context, address domain.Address) (domain.Address, error)
	UpdateAddress(ctx context.Context, addressID string, address domain.Address) (domain.Address, error)
	DeleteAddress(ctx context.Context, addressID string) error
}

type AuthAPI interface {
	SyncUser(ctx context.Context) (domain.Profile, error)
	Profile(ctx context.Context) (domain.Profile, error)
	UpdateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error)
}
