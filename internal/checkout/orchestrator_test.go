package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/storefront-client-go/internal/api"
	"github.com/andreasstove999/storefront-client-go/internal/cart"
	"github.com/andreasstove999/storefront-client-go/internal/profile"
)

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func twoItemCart() *cart.Cart {
	return &cart.Cart{Items: []cart.Item{
		{ProductID: "1", Name: "Ao thun", Price: decimal.NewFromInt(100000), Quantity: 2},
		{ProductID: "2", Name: "Non luoi trai", Price: decimal.NewFromInt(50000), Quantity: 1},
	}}
}

func TestRunEmptyCartIsNoop(t *testing.T) {
	manager := &ManagerMock{LoadFunc: func(ctx context.Context) (*cart.Cart, error) { return &cart.Cart{}, nil }}
	gateway := &GatewayMock{SyncItemFunc: func(ctx context.Context, buyerID int, productID string, quantity int) error {
		t.Fatal("no sync expected for an empty cart")
		return nil
	}}
	orch := New(7, manager, &GateMock{}, gateway, &ConfirmerMock{}, testLogger())

	s, err := orch.Run(context.Background())
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Nil(t, s)
}

func TestRunProfileFetchFailure(t *testing.T) {
	fetchErr := fmt.Errorf("%w: connection refused", profile.ErrFetch)
	gate := &GateMock{FetchFunc: func(ctx context.Context, buyerID int) (*api.BuyerProfile, error) {
		return nil, fetchErr
	}}
	gateway := &GatewayMock{SyncItemFunc: func(ctx context.Context, buyerID int, productID string, quantity int) error {
		t.Fatal("no sync expected when validation fails")
		return nil
	}}
	manager := &ManagerMock{LoadFunc: func(ctx context.Context) (*cart.Cart, error) { return twoItemCart(), nil }}
	orch := New(7, manager, gate, gateway, &ConfirmerMock{}, testLogger())

	s, err := orch.Run(context.Background())
	require.ErrorIs(t, err, profile.ErrFetch)
	require.Equal(t, PhaseFailed, s.Phase)
}

func TestRunMissingAddressBlocksCheckout(t *testing.T) {
	gate := &GateMock{FetchFunc: func(ctx context.Context, buyerID int) (*api.BuyerProfile, error) {
		return &api.BuyerProfile{FullName: "Nguyen Van A", AddressLine: ""}, nil
	}}
	syncCalls := 0
	gateway := &GatewayMock{SyncItemFunc: func(ctx context.Context, buyerID int, productID string, quantity int) error {
		syncCalls++
		return nil
	}}
	manager := &ManagerMock{LoadFunc: func(ctx context.Context) (*cart.Cart, error) { return twoItemCart(), nil }}
	orch := New(7, manager, gate, gateway, &ConfirmerMock{}, testLogger())

	s, err := orch.Run(context.Background())
	require.ErrorIs(t, err, ErrMissingAddress)
	require.Equal(t, PhaseFailed, s.Phase)
	require.Zero(t, syncCalls)
}

func TestRunCancelLeavesCartUntouched(t *testing.T) {
	cleared := false
	manager := &ManagerMock{
		LoadFunc:  func(ctx context.Context) (*cart.Cart, error) { return twoItemCart(), nil },
		ClearFunc: func(ctx context.Context) error { cleared = true; return nil },
	}
	gateway := &GatewayMock{SyncItemFunc: func(ctx context.Context, buyerID int, productID string, quantity int) error {
		t.Fatal("no sync expected after cancel")
		return nil
	}}
	confirmer := &ConfirmerMock{ConfirmFunc: func(ctx context.Context, s *Session) (bool, error) {
		require.Equal(t, PhaseAwaitingConfirmation, s.Phase)
		require.NotNil(t, s.Profile)
		return false, nil
	}}
	orch := New(7, manager, &GateMock{}, gateway, confirmer, testLogger())

	s, err := orch.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, PhaseCancelled, s.Phase)
	require.False(t, cleared)
}

func TestRunSequentialSyncStopsAtFirstFailure(t *testing.T) {
	items := &cart.Cart{Items: []cart.Item{
		{ProductID: "1", Quantity: 1}, {ProductID: "2", Quantity: 1},
		{ProductID: "3", Quantity: 1}, {ProductID: "4", Quantity: 1},
	}}
	var synced []string
	gateway := &GatewayMock{
		SyncItemFunc: func(ctx context.Context, buyerID int, productID string, quantity int) error {
			synced = append(synced, productID)
			if productID == "3" {
				return errors.New("backend down")
			}
			return nil
		},
		CreateOrderFunc: func(ctx context.Context, buyerID int) (int, error) {
			t.Fatal("createOrder must not run after a sync failure")
			return 0, nil
		},
	}
	cleared := false
	manager := &ManagerMock{
		LoadFunc:  func(ctx context.Context) (*cart.Cart, error) { return items, nil },
		ClearFunc: func(ctx context.Context) error { cleared = true; return nil },
	}
	orch := New(7, manager, &GateMock{}, gateway, &ConfirmerMock{}, testLogger())

	s, err := orch.Run(context.Background())

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	require.Equal(t, 2, syncErr.Index)
	require.Equal(t, "3", syncErr.ProductID)
	// Exactly k calls, in cart order; nothing after the failure.
	require.Equal(t, []string{"1", "2", "3"}, synced)
	require.Equal(t, []string{"1", "2"}, s.Synced)
	require.Equal(t, PhaseFailed, s.Phase)
	require.False(t, cleared)
}

func TestRunSuccessClearsOnlyAfterOrderCreation(t *testing.T) {
	var calls []string
	gateway := &GatewayMock{
		SyncItemFunc: func(ctx context.Context, buyerID int, productID string, quantity int) error {
			require.Equal(t, 7, buyerID)
			calls = append(calls, "sync:"+productID)
			return nil
		},
		CreateOrderFunc: func(ctx context.Context, buyerID int) (int, error) {
			calls = append(calls, "create")
			return 55, nil
		},
	}
	manager := &ManagerMock{
		LoadFunc:  func(ctx context.Context) (*cart.Cart, error) { return twoItemCart(), nil },
		ClearFunc: func(ctx context.Context) error { calls = append(calls, "clear"); return nil },
	}
	orch := New(7, manager, &GateMock{}, gateway, &ConfirmerMock{}, testLogger())

	s, err := orch.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, PhaseCompleted, s.Phase)
	require.Equal(t, 55, s.OrderID)
	require.Equal(t, []string{"sync:1", "sync:2", "create", "clear"}, calls)
}

func TestRunOrderCreationFailurePreservesCart(t *testing.T) {
	gateway := &GatewayMock{CreateOrderFunc: func(ctx context.Context, buyerID int) (int, error) {
		return 0, &api.OrderCreateError{Status: 400, Message: "cart is empty"}
	}}

	// Back the manager with a real store so "preserved" means persisted bytes.
	store := cart.NewFileStore(filepath.Join(t.TempDir(), "cart.json"))
	realManager := cart.NewManager(store)
	ctx := context.Background()
	_, err := realManager.AddItem(ctx, cart.Item{ProductID: "1", Price: decimal.NewFromInt(100000)}, 2)
	require.NoError(t, err)
	_, err = realManager.AddItem(ctx, cart.Item{ProductID: "2", Price: decimal.NewFromInt(50000)}, 1)
	require.NoError(t, err)

	orch := New(7, realManager, &GateMock{}, gateway, &ConfirmerMock{}, testLogger())

	s, err := orch.Run(ctx)
	var createErr *api.OrderCreateError
	require.ErrorAs(t, err, &createErr)
	require.Equal(t, PhaseFailed, s.Phase)

	preserved, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, preserved.Items, 2)
	require.Equal(t, 2, preserved.Items[0].Quantity)
}

func TestRunRejectsConcurrentCheckout(t *testing.T) {
	confirmStarted := make(chan struct{})
	release := make(chan struct{})
	confirmCalls := 0
	confirmer := &ConfirmerMock{ConfirmFunc: func(ctx context.Context, s *Session) (bool, error) {
		confirmCalls++
		if confirmCalls == 1 {
			close(confirmStarted)
			<-release
			return false, nil
		}
		return true, nil
	}}
	manager := &ManagerMock{LoadFunc: func(ctx context.Context) (*cart.Cart, error) { return twoItemCart(), nil }}
	orch := New(7, manager, &GateMock{}, &GatewayMock{}, confirmer, testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = orch.Run(context.Background())
	}()

	<-confirmStarted
	_, err := orch.Run(context.Background())
	require.ErrorIs(t, err, ErrCheckoutInFlight)

	close(release)
	<-done

	// The guard lifts once the first run terminates.
	s, err := orch.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, PhaseCompleted, s.Phase)
}

func TestRunCompensationHookRunsNewestFirst(t *testing.T) {
	gateway := &GatewayMock{CreateOrderFunc: func(ctx context.Context, buyerID int) (int, error) {
		return 0, errors.New("order service down")
	}}
	manager := &ManagerMock{LoadFunc: func(ctx context.Context) (*cart.Cart, error) { return twoItemCart(), nil }}

	var compensated []string
	orch := New(7, manager, &GateMock{}, gateway, &ConfirmerMock{}, testLogger()).
		WithCompensation(func(ctx context.Context, buyerID int, productID string) error {
			compensated = append(compensated, productID)
			return nil
		})

	_, err := orch.Run(context.Background())
	require.Error(t, err)
	require.Equal(t, []string{"2", "1"}, compensated)
}

func TestReason(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"empty cart", ErrEmptyCart, "Your cart is empty."},
		{"missing address", ErrMissingAddress, "Please update your delivery address before ordering."},
		{"profile fetch", fmt.Errorf("%w: timeout", profile.ErrFetch), "Could not verify your delivery details. Please try again."},
		{"sync failure", &SyncError{Index: 1, ProductID: "2", Err: errors.New("boom")},
			"Your order could not be completed. Some items may already have been submitted; retrying will submit them again."},
		{"server message", &api.OrderCreateError{Status: 400, Message: "cart is empty"}, "cart is empty"},
		{"server without message", &api.OrderCreateError{Status: 500}, "Could not place the order. Please try again."},
		{"unknown", errors.New("boom"), "Could not place the order. Please try again."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Reason(tc.err))
		})
	}
}
