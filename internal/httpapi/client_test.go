package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolayk812/storefront-go/internal/domain"
	"github.com/nikolayk812/storefront-go/internal/httpapi"
)

// fakeSession hands out tokens from a list, advancing on each forced
// refresh. refreshErr makes the forced refresh fail.
type fakeSession struct {
	mu            sync.Mutex
	authenticated bool
	tokens        []string
	idx           int
	refreshErr    error
	refreshes     int
}

func (s *fakeSession) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *fakeSession) Token(_ context.Context, forceRefresh bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if forceRefresh {
		s.refreshes++
		if s.refreshErr != nil {
			return "", s.refreshErr
		}
		if s.idx < len(s.tokens)-1 {
			s.idx++
		}
	}
	return s.tokens[s.idx], nil
}

func newTestClient(t *testing.T, handler http.Handler, session *fakeSession) *httpapi.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := httpapi.New(server.URL, session, httpapi.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return client
}

func TestNew_Validation(t *testing.T) {
	_, err := httpapi.New("", &fakeSession{})
	require.EqualError(t, err, "baseURL is empty")

	_, err = httpapi.New("http://localhost", nil)
	require.EqualError(t, err, "session is nil")
}

func TestClient_BearerAttached(t *testing.T) {
	var gotAuth, gotAccept, gotRequestID string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`{}`))
	}), &fakeSession{authenticated: true, tokens: []string{"abc"}})

	_, err := client.GetCart(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_PublicCatalogSkipsBearer(t *testing.T) {
	headers := make(map[string]string)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers[r.URL.Path] = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"products":[],"pagination":{}}`))
	}), &fakeSession{authenticated: true, tokens: []string{"abc"}})

	_, err := client.ListProducts(context.Background(), domain.DefaultProductFilter())
	require.NoError(t, err)

	assert.Empty(t, headers["/api/products"])
}

func TestClient_GuestSkipsBearer(t *testing.T) {
	var gotAuth string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}), &fakeSession{authenticated: false, tokens: []string{"unused"}})

	_, err := client.GetCart(context.Background())
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
}

func TestClient_RefreshRetryOn401(t *testing.T) {
	session := &fakeSession{authenticated: true, tokens: []string{"stale", "fresh"}}

	var hits int
	var bodies []string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++

		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))

		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}), session)

	err := client.UpsertItem(context.Background(), "p1", 3)
	require.NoError(t, err)

	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, session.refreshes)

	// The buffered body is replayed on the retry.
	require.Len(t, bodies, 2)
	assert.JSONEq(t, `{"product_id":"p1","quantity":3}`, bodies[1])
	assert.Equal(t, bodies[0], bodies[1])
}

func TestClient_RefreshRetryHappensOnce(t *testing.T) {
	session := &fakeSession{authenticated: true, tokens: []string{"stale", "still-stale"}}

	var hits int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	}), session)

	_, err := client.GetCart(context.Background())
	require.Error(t, err)

	// One original request plus one retry, never a loop.
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, session.refreshes)
	assert.ErrorContains(t, err, "token expired")
}

func TestClient_RefreshFailure(t *testing.T) {
	session := &fakeSession{
		authenticated: true,
		tokens:        []string{"stale"},
		refreshErr:    errors.New("refresh endpoint down"),
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), session)

	_, err := client.GetCart(context.Background())
	require.ErrorIs(t, err, httpapi.ErrSessionExpired)
	assert.ErrorContains(t, err, "refresh endpoint down")
}

func TestClient_GetCart_Mapping(t *testing.T) {
	payload := `{
		"cart": {
			"cartItems": [
				{
					"product_id": "p1",
					"product": {"name": "Widget", "price": 19.99, "image_url": "http://img/p1"},
					"quantity": 2
				}
			]
		}
	}`

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		_, _ = w.Write([]byte(payload))
	}), &fakeSession{authenticated: true, tokens: []string{"abc"}})

	cart, err := client.GetCart(context.Background())
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	item := cart.Items[0]
	assert.Equal(t, "p1", item.ProductID)
	assert.Equal(t, "Widget", item.Name)
	assert.True(t, decimal.NewFromFloat(19.99).Equal(item.UnitPrice.Amount))
	assert.Equal(t, domain.DefaultCurrency, item.UnitPrice.Currency)
	assert.Equal(t, "http://img/p1", item.ImageURL)
	assert.Equal(t, 2, item.Quantity)
}

func TestClient_GetCart_MissingCartIsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}), &fakeSession{authenticated: true, tokens: []string{"abc"}})

	cart, err := client.GetCart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestClient_ServerErrorMessageVerbatim(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "error field",
			body: `{"error":"cart not found"}`,
			want: "cart not found",
		},
		{
			name: "message field",
			body: `{"message":"insufficient stock"}`,
			want: "insufficient stock",
		},
		{
			name: "unparseable body",
			body: `<html>boom</html>`,
			want: "unexpected status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}), &fakeSession{authenticated: true, tokens: []string{"abc"}})

			_, err := client.GetCart(context.Background())
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestClient_ListProducts_QueryParams(t *testing.T) {
	var gotQuery map[string][]string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"products":[],"pagination":{"page":2,"pages":5,"total":42}}`))
	}), &fakeSession{})

	page, err := client.ListProducts(context.Background(), domain.ProductFilter{
		Category: "books",
		MinPrice: 5,
		MaxPrice: 100,
		Page:     2,
		Limit:    20,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"books"}, gotQuery["category"])
	assert.Equal(t, []string{"5"}, gotQuery["minPrice"])
	assert.Equal(t, []string{"100"}, gotQuery["maxPrice"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"20"}, gotQuery["limit"])

	assert.Equal(t, domain.Pagination{Page: 2, Pages: 5, Total: 42}, page.Pagination)
}

func TestClient_CreateOrder_Payload(t *testing.T) {
	var got map[string]any

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"o1","status":"pending"}`))
	}), &fakeSession{authenticated: true, tokens: []string{"abc"}})

	shipping := domain.Address{Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701"}

	order, err := client.CreateOrder(context.Background(), shipping, domain.PaymentMethodCreditCard)
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)

	assert.Equal(t, "1 Main St", got["address"])
	assert.Equal(t, "Springfield", got["city"])
	assert.Equal(t, "IL", got["state"])
	assert.Equal(t, "62701", got["zip_code"])
	assert.Equal(t, "credit_card", got["payment_method"])
}
