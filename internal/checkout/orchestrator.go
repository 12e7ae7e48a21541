package checkout

import (
	"context"
	"log"
	"sync"

	"github.com/andreasstove999/storefront-client-go/internal/api"
	"github.com/andreasstove999/storefront-client-go/internal/cart"
)

// Gateway is the remote order service boundary: one call per cart line, then
// one call converting the synced lines into an order.
type Gateway interface {
	SyncItem(ctx context.Context, buyerID int, productID string, quantity int) error
	CreateOrder(ctx context.Context, buyerID int) (int, error)
}

type ProfileGate interface {
	Fetch(ctx context.Context, buyerID int) (*api.BuyerProfile, error)
	Eligible(p *api.BuyerProfile) bool
}

// CartManager is the slice of the cart manager checkout needs: a snapshot to
// operate on and a clear instruction for after the order is confirmed.
// Checkout never writes item-level state itself.
type CartManager interface {
	Load(ctx context.Context) (*cart.Cart, error)
	Clear(ctx context.Context) error
}

// Confirmer presents the cart snapshot and delivery profile to the buyer and
// reports their decision. It may block indefinitely; there is no timeout on
// the confirmation step.
type Confirmer interface {
	Confirm(ctx context.Context, s *Session) (bool, error)
}

// CompensateFunc undoes one synced cart line after a later step fails. The
// flow is non-transactional; nothing is wired here today, the hook exists so
// rollback can be added without restructuring the sequence.
type CompensateFunc func(ctx context.Context, buyerID int, productID string) error

// Orchestrator drives one checkout at a time through
// validate -> confirm -> sync -> create -> clear. Once syncing starts there
// is no cancellation path: the run ends Completed or Failed.
type Orchestrator struct {
	buyerID int
	carts   CartManager
	gate    ProfileGate
	gateway Gateway
	confirm Confirmer
	logger  *log.Logger

	compensate CompensateFunc

	mu   sync.Mutex
	busy bool
}

func New(buyerID int, carts CartManager, gate ProfileGate, gateway Gateway, confirm Confirmer, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		buyerID: buyerID,
		carts:   carts,
		gate:    gate,
		gateway: gateway,
		confirm: confirm,
		logger:  logger,
	}
}

// WithCompensation installs the saga compensation hook. On a sync or order
// creation failure it runs for each already-synced line, newest first,
// best-effort.
func (o *Orchestrator) WithCompensation(fn CompensateFunc) *Orchestrator {
	o.compensate = fn
	return o
}

// Run executes one full checkout. An empty cart returns ErrEmptyCart with a
// nil session (the machine never leaves idle). A second Run while one is in
// flight returns ErrCheckoutInFlight.
func (o *Orchestrator) Run(ctx context.Context) (*Session, error) {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}
	o.busy = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
	}()

	snapshot, err := o.carts.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot.Empty() {
		return nil, ErrEmptyCart
	}

	s := newSession(o.buyerID, *snapshot)
	o.logger.Printf("checkout %s: validating profile for buyer %d", s.ID, s.BuyerID)

	p, err := o.gate.Fetch(ctx, s.BuyerID)
	if err != nil {
		return o.fail(s, err)
	}
	if !o.gate.Eligible(p) {
		return o.fail(s, ErrMissingAddress)
	}
	s.Profile = p

	s.Phase = PhaseAwaitingConfirmation
	ok, err := o.confirm.Confirm(ctx, s)
	if err != nil {
		return o.fail(s, err)
	}
	if !ok {
		s.Phase = PhaseCancelled
		o.logger.Printf("checkout %s: cancelled by buyer, cart untouched", s.ID)
		return s, nil
	}

	// Sequential by design: one item at a time, in cart order, so a failure
	// points at exactly one line and the backend is never flooded.
	s.Phase = PhaseSyncing
	for i, it := range s.Cart.Items {
		if err := o.gateway.SyncItem(ctx, s.BuyerID, it.ProductID, it.Quantity); err != nil {
			serr := &SyncError{Index: i, ProductID: it.ProductID, Err: err}
			o.rollback(ctx, s)
			return o.fail(s, serr)
		}
		s.Synced = append(s.Synced, it.ProductID)
	}

	s.Phase = PhaseCreating
	orderID, err := o.gateway.CreateOrder(ctx, s.BuyerID)
	if err != nil {
		o.rollback(ctx, s)
		return o.fail(s, err)
	}
	s.OrderID = orderID

	// Clear strictly after the server confirmed the order, never before.
	if err := o.carts.Clear(ctx); err != nil {
		// The order exists; a stale local cart is the only damage.
		o.logger.Printf("checkout %s: clear local cart: %v", s.ID, err)
	}

	s.Phase = PhaseCompleted
	o.logger.Printf("checkout %s: order %d created for buyer %d", s.ID, s.OrderID, s.BuyerID)
	return s, nil
}

func (o *Orchestrator) fail(s *Session, err error) (*Session, error) {
	s.Phase = PhaseFailed
	s.Err = err
	o.logger.Printf("checkout %s: failed: %v", s.ID, err)
	return s, err
}

func (o *Orchestrator) rollback(ctx context.Context, s *Session) {
	if o.compensate == nil {
		return
	}
	for i := len(s.Synced) - 1; i >= 0; i-- {
		if err := o.compensate(ctx, s.BuyerID, s.Synced[i]); err != nil {
			o.logger.Printf("checkout %s: compensate product %s: %v", s.ID, s.Synced[i], err)
		}
	}
}
