package checkout

import (
	"github.com/google/uuid"

	"github.com/andreasstove999/storefront-client-go/internal/api"
	"github.com/andreasstove999/storefront-client-go/internal/cart"
)

type Phase string

const (
	PhaseIdle                 Phase = "IDLE"
	PhaseValidating           Phase = "VALIDATING"
	PhaseAwaitingConfirmation Phase = "AWAITING_CONFIRMATION"
	PhaseSyncing              Phase = "SYNCING"
	PhaseCreating             Phase = "CREATING"
	PhaseCompleted            Phase = "COMPLETED"
	PhaseCancelled            Phase = "CANCELLED"
	PhaseFailed               Phase = "FAILED"
)

func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseCancelled || p == PhaseFailed
}

func (p Phase) String() string { return string(p) }

// Session is one in-flight checkout. It holds the cart snapshot the whole
// sequence operates on; cart mutations made elsewhere after the snapshot are
// not picked up. Sessions are never persisted.
type Session struct {
	ID      string
	BuyerID int
	Cart    cart.Cart
	Profile *api.BuyerProfile
	Phase   Phase
	Err     error

	// Synced lists product ids already accepted by the remote cart, in sync
	// order. On failure these are NOT rolled back unless a compensator is
	// configured.
	Synced []string

	OrderID int
}

func newSession(buyerID int, snapshot cart.Cart) *Session {
	return &Session{
		ID:      uuid.NewString(),
		BuyerID: buyerID,
		Cart:    snapshot,
		Phase:   PhaseValidating,
	}
}
