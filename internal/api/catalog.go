package api

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product mirrors the catalog endpoints. ImageURL holds the first image
// only; the backend already strips the rest.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	SellerID    int             `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
	Category    struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"category"`
}

type CatalogClient struct{ c *Client }

func NewCatalogClient(c *Client) *CatalogClient { return &CatalogClient{c: c} }

// ListProducts returns the approved catalog (GET /products).
func (cc *CatalogClient) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := cc.c.getJSON(ctx, "/products", "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one product (GET /products/{id}); this is where the
// cart snapshots name, price, image and shop from.
func (cc *CatalogClient) GetProduct(ctx context.Context, productID int) (*Product, error) {
	var p Product
	if err := cc.c.getJSON(ctx, fmt.Sprintf("/products/%d", productID), "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}
