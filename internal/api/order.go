package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// OrderCreateError carries the backend's reason for rejecting POST /orders
// (empty remote cart, out-of-stock item, missing address). Message is the
// server-provided text and may be empty.
type OrderCreateError struct {
	Status  int
	Message string
}

func (e *OrderCreateError) Error() string {
	if e.Message != "" {
		return "order creation failed: " + e.Message
	}
	return fmt.Sprintf("order creation failed with status %d", e.Status)
}

// OrderItem is one line of GET /orders, which returns order items flattened
// across the buyer's orders, newest first.
type OrderItem struct {
	OrderID     int             `json:"order_id"`
	OrderItemID int             `json:"order_item_id"`
	ProductID   int             `json:"product_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Image       string          `json:"image"`
	Shop        string          `json:"shop"`
	SellerID    int             `json:"seller_id"`
	OrderDate   string          `json:"orderDate"`
	Status      string          `json:"status"`
}

type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

// SyncItem pushes one cart line into the buyer's remote cart (POST /cart).
// Only the status code is consumed; the endpoint is not guaranteed
// idempotent, so re-syncing an already-synced line adds to its quantity
// server-side.
func (oc *OrderClient) SyncItem(ctx context.Context, buyerID int, productID string, quantity int) error {
	pid, err := strconv.Atoi(productID)
	if err != nil {
		return fmt.Errorf("product id %q is not numeric: %w", productID, err)
	}

	body := struct {
		BuyerID   int `json:"buyer_id"`
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}{BuyerID: buyerID, ProductID: pid, Quantity: quantity}

	resp, err := oc.c.postJSON(ctx, "/cart", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg := serverMessage(resp); msg != "" {
			return fmt.Errorf("cart sync rejected: %s", msg)
		}
		return fmt.Errorf("cart sync rejected with status %d", resp.StatusCode)
	}
	return nil
}

// CreateOrder converts the buyer's previously-synced cart lines into a
// persisted order (POST /orders) and returns the new order id.
func (oc *OrderClient) CreateOrder(ctx context.Context, buyerID int) (int, error) {
	body := struct {
		BuyerID int `json:"buyer_id"`
	}{BuyerID: buyerID}

	resp, err := oc.c.postJSON(ctx, "/orders", body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &OrderCreateError{Status: resp.StatusCode, Message: serverMessage(resp)}
	}

	var created struct {
		OrderID int `json:"order_id"`
	}
	if err := decodeBody(resp, &created); err != nil {
		// Order exists server-side; only the id was lost.
		return 0, nil
	}
	return created.OrderID, nil
}

// ListOrders fetches the buyer's order history (GET /orders?buyer_id=).
func (oc *OrderClient) ListOrders(ctx context.Context, buyerID int) ([]OrderItem, error) {
	q := url.Values{"buyer_id": {strconv.Itoa(buyerID)}}
	var items []OrderItem
	if err := oc.c.getJSON(ctx, "/orders", q.Encode(), &items); err != nil {
		return nil, err
	}
	return items, nil
}
