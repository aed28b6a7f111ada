package domain

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"

	PaymentMethodCreditCard = "credit_card"
)

type OrderItem struct {
	ProductID string
	Name      string
	UnitPrice Money
	Quantity  int
}

type Order struct {
	ID            string
	Items         []OrderItem
	Total         Money
	Status        string
	PaymentStatus string
	Shipping      Address
	CreatedAt     time.Time
}

type PaymentDetails struct {
	Method     string
	CardNumber string
	CardExpiry string
	CardCVC    string
}

type Payment struct {
	ID      string
	OrderID string
	Status  string
	Amount  Money
}
