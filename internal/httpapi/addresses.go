package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

type addressPayload struct {
	ID      string `json:"id,omitempty"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

func toDomainAddress(p addressPayload) domain.Address {
	return domain.Address{
		ID:      p.ID,
		Street:  p.Address,
		City:    p.City,
		State:   p.State,
		ZipCode: p.ZipCode,
	}
}

func toAddressPayload(a domain.Address) addressPayload {
	return addressPayload{
		Address: a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
	}
}

func (c *Client) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	var payload []addressPayload
	if err := c.do(ctx, http.MethodGet, "/api/shipping/addresses", nil, &payload); err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	var addresses []domain.Address
	for _, p := range payload {
		addresses = append(addresses, toDomainAddress(p))
	}
	return addresses, nil
}

func (c *Client) CreateAddress(ctx context.Context, address domain.Address) (domain.Address, error) {
	var payload addressPayload
	if err := c.do(ctx, http.MethodPost, "/api/shipping/addresses", toAddressPayload(address), &payload); err != nil {
		return domain.Address{}, fmt.Errorf("create address: %w", err)
	}
	return toDomainAddress(payload), nil
}

func (c *Client) UpdateAddress(ctx context.Context, addressID string, address domain.Address) (domain.Address, error) {
	var payload addressPayload
	if err := c.do(ctx, http.MethodPut, "/api/shipping/addresses/"+url.PathEscape(addressID), toAddressPayload(address), &payload); err != nil {
		return domain.Address{}, fmt.Errorf("update address: %w", err)
	}
	return toDomainAddress(payload), nil
}

func (c *Client) DeleteAddress(ctx context.Context, addressID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/shipping/addresses/"+url.PathEscape(addressID), nil, nil); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}
