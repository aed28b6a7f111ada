package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

type productPayload struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock"`
}

type productListPayload struct {
	Products   []productPayload `json:"products"`
	Pagination struct {
		Total int `json:"total"`
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Pages int `json:"pages"`
	} `json:"pagination"`
}

func (c *Client) toDomainProduct(p productPayload) domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       domain.NewMoney(p.Price, c.currency),
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
	}
}

func toProductPayload(p domain.Product) productPayload {
	return productPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price.Amount,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
	}
}

func (c *Client) ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	params := url.Values{}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	if filter.MinPrice > 0 {
		params.Set("minPrice", strconv.Itoa(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(filter.MaxPrice))
	}
	params.Set("page", strconv.Itoa(filter.Page))
	params.Set("limit", strconv.Itoa(filter.Limit))

	var payload productListPayload
	if err := c.do(ctx, http.MethodGet, "/api/products?"+params.Encode(), nil, &payload); err != nil {
		return domain.ProductPage{}, fmt.Errorf("list products: %w", err)
	}

	page := domain.ProductPage{
		Pagination: domain.Pagination{
			Total: payload.Pagination.Total,
			Page:  payload.Pagination.Page,
			Limit: payload.Pagination.Limit,
			Pages: payload.Pagination.Pages,
		},
	}
	for _, p := range payload.Products {
		page.Products = append(page.Products, c.toDomainProduct(p))
	}

	return page, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	var payload productPayload
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(productID), nil, &payload); err != nil {
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return c.toDomainProduct(payload), nil
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/api/products/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (c *Client) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	var payload productPayload
	if err := c.do(ctx, http.MethodPost, "/api/products", toProductPayload(product), &payload); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return c.toDomainProduct(payload), nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, product domain.Product) (domain.Product, error) {
	var payload productPayload
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(productID), toProductPayload(product), &payload); err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}
	return c.toDomainProduct(payload), nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(productID), nil, nil); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
