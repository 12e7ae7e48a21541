package checkout

import (
	"context"

	"github.com/andreasstove999/storefront-client-go/internal/api"
	"github.com/andreasstove999/storefront-client-go/internal/cart"
)

// GatewayMock implements Gateway for tests.
type GatewayMock struct {
	SyncItemFunc    func(ctx context.Context, buyerID int, productID string, quantity int) error
	CreateOrderFunc func(ctx context.Context, buyerID int) (int, error)
}

func (m *GatewayMock) SyncItem(ctx context.Context, buyerID int, productID string, quantity int) error {
	if m.SyncItemFunc == nil {
		return nil
	}
	return m.SyncItemFunc(ctx, buyerID, productID, quantity)
}

func (m *GatewayMock) CreateOrder(ctx context.Context, buyerID int) (int, error) {
	if m.CreateOrderFunc == nil {
		return 1, nil
	}
	return m.CreateOrderFunc(ctx, buyerID)
}

// GateMock implements ProfileGate for tests.
type GateMock struct {
	FetchFunc    func(ctx context.Context, buyerID int) (*api.BuyerProfile, error)
	EligibleFunc func(p *api.BuyerProfile) bool
}

func (m *GateMock) Fetch(ctx context.Context, buyerID int) (*api.BuyerProfile, error) {
	if m.FetchFunc == nil {
		return &api.BuyerProfile{AddressLine: "12 Le Loi"}, nil
	}
	return m.FetchFunc(ctx, buyerID)
}

func (m *GateMock) Eligible(p *api.BuyerProfile) bool {
	if m.EligibleFunc == nil {
		return p != nil && p.AddressLine != ""
	}
	return m.EligibleFunc(p)
}

// ManagerMock implements CartManager for tests.
type ManagerMock struct {
	LoadFunc  func(ctx context.Context) (*cart.Cart, error)
	ClearFunc func(ctx context.Context) error
}

func (m *ManagerMock) Load(ctx context.Context) (*cart.Cart, error) {
	if m.LoadFunc == nil {
		return &cart.Cart{}, nil
	}
	return m.LoadFunc(ctx)
}

func (m *ManagerMock) Clear(ctx context.Context) error {
	if m.ClearFunc == nil {
		return nil
	}
	return m.ClearFunc(ctx)
}

// ConfirmerMock implements Confirmer for tests.
type ConfirmerMock struct {
	ConfirmFunc func(ctx context.Context, s *Session) (bool, error)
}

func (m *ConfirmerMock) Confirm(ctx context.Context, s *Session) (bool, error) {
	if m.ConfirmFunc == nil {
		return true, nil
	}
	return m.ConfirmFunc(ctx, s)
}
