package cart

import (
	"context"
	"errors"
)

// ErrStorage marks local persistence failures. Loads never return it: a
// missing or unreadable cart reads as empty. Saves surface it to the caller.
var ErrStorage = errors.New("cart storage unavailable")

// Store persists the whole cart as one serialized blob under a fixed key.
// Every Save is a full overwrite; there is no versioning, so concurrent
// writers are last-write-wins.
type Store interface {
	Load(ctx context.Context) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
}
