package checkout

import (
	"errors"
	"fmt"

	"github.com/andreasstove999/storefront-client-go/internal/api"
	"github.com/andreasstove999/storefront-client-go/internal/profile"
)

var (
	ErrEmptyCart        = errors.New("cart is empty, nothing to check out")
	ErrCheckoutInFlight = errors.New("another checkout is already in flight")
	ErrMissingAddress   = errors.New("delivery address is missing")
)

// SyncError reports which cart line the sequential sync stopped at. Lines
// before Index were accepted by the remote cart and stay applied there.
type SyncError struct {
	Index     int
	ProductID string
	Err       error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync of item %d (product %s) failed: %v", e.Index+1, e.ProductID, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// Reason translates a checkout failure into the message shown to the buyer.
// Raw transport errors never reach the user.
func Reason(err error) string {
	var syncErr *SyncError
	var createErr *api.OrderCreateError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyCart):
		return "Your cart is empty."
	case errors.Is(err, ErrMissingAddress):
		return "Please update your delivery address before ordering."
	case errors.Is(err, profile.ErrFetch):
		return "Could not verify your delivery details. Please try again."
	case errors.As(err, &syncErr):
		return "Your order could not be completed. Some items may already have been submitted; retrying will submit them again."
	case errors.As(err, &createErr) && createErr.Message != "":
		return createErr.Message
	default:
		return "Could not place the order. Please try again."
	}
}
