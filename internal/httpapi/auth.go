package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

type profilePayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toDomainProfile(p profilePayload) domain.Profile {
	return domain.Profile{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role,
	}
}

// SyncUser makes sure the signed-in identity exists in the backend and
// returns its profile, including the role.
func (c *Client) SyncUser(ctx context.Context) (domain.Profile, error) {
	var payload profilePayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/sync", nil, &payload); err != nil {
		return domain.Profile{}, fmt.Errorf("sync user: %w", err)
	}
	return toDomainProfile(payload), nil
}

func (c *Client) Profile(ctx context.Context) (domain.Profile, error) {
	var payload profilePayload
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &payload); err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return toDomainProfile(payload), nil
}

func (c *Client) UpdateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	body := struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}{Name: profile.Name, Email: profile.Email}

	var payload profilePayload
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", body, &payload); err != nil {
		return domain.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return toDomainProfile(payload), nil
}
