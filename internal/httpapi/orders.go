package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

type orderItemPayload struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type orderPayload struct {
	ID            string             `json:"id"`
	Items         []orderItemPayload `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	State         string             `json:"state"`
	ZipCode       string             `json:"zip_code"`
	CreatedAt     time.Time          `json:"created_at"`
}

type paymentPayload struct {
	ID      string          `json:"id"`
	OrderID string          `json:"order_id"`
	Status  string          `json:"status"`
	Amount  decimal.Decimal `json:"amount"`
}

func (c *Client) toDomainOrder(p orderPayload) domain.Order {
	order := domain.Order{
		ID:            p.ID,
		Total:         domain.NewMoney(p.Total, c.currency),
		Status:        p.Status,
		PaymentStatus: p.PaymentStatus,
		Shipping: domain.Address{
			Street:  p.Address,
			City:    p.City,
			State:   p.State,
			ZipCode: p.ZipCode,
		},
		CreatedAt: p.CreatedAt,
	}

	for _, item := range p.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: domain.NewMoney(item.Price, c.currency),
			Quantity:  item.Quantity,
		})
	}

	return order
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var payload []orderPayload
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &payload); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var orders []domain.Order
	for _, p := range payload {
		orders = append(orders, c.toDomainOrder(p))
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	var payload orderPayload
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderID), nil, &payload); err != nil {
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}
	return c.toDomainOrder(payload), nil
}

// CreateOrder turns the server-side cart into an order shipped to the
// given address.
func (c *Client) CreateOrder(ctx context.Context, shipping domain.Address, paymentMethod string) (domain.Order, error) {
	body := struct {
		Address       string `json:"address"`
		City          string `json:"city"`
		State         string `json:"state"`
		ZipCode       string `json:"zip_code"`
		PaymentMethod string `json:"payment_method"`
	}{
		Address:       shipping.Street,
		City:          shipping.City,
		State:         shipping.State,
		ZipCode:       shipping.ZipCode,
		PaymentMethod: paymentMethod,
	}

	var payload orderPayload
	if err := c.do(ctx, http.MethodPost, "/api/orders", body, &payload); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return c.toDomainOrder(payload), nil
}

func (c *Client) PayOrder(ctx context.Context, orderID string, details domain.PaymentDetails) (domain.Payment, error) {
	body := struct {
		OrderID       string `json:"order_id"`
		PaymentMethod string `json:"payment_method"`
		CardNumber    string `json:"card_number,omitempty"`
		CardExpiry    string `json:"card_expiry,omitempty"`
		CardCVC       string `json:"card_cvc,omitempty"`
	}{
		OrderID:       orderID,
		PaymentMethod: details.Method,
		CardNumber:    details.CardNumber,
		CardExpiry:    details.CardExpiry,
		CardCVC:       details.CardCVC,
	}

	var payload paymentPayload
	if err := c.do(ctx, http.MethodPost, "/api/payments", body, &payload); err != nil {
		return domain.Payment{}, fmt.Errorf("pay order: %w", err)
	}

	return domain.Payment{
		ID:      payload.ID,
		OrderID: payload.OrderID,
		Status:  payload.Status,
		Amount:  domain.NewMoney(payload.Amount, c.currency),
	}, nil
}

func (c *Client) SetOrderStatus(ctx context.Context, orderID, status string) (domain.Order, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}

	var payload orderPayload
	if err := c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(orderID)+"/status", body, &payload); err != nil {
		return domain.Order{}, fmt.Errorf("set order status: %w", err)
	}
	return c.toDomainOrder(payload), nil
}
