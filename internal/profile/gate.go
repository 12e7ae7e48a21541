package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andreasstove999/storefront-client-go/internal/api"
)

// ErrFetch marks profile lookups that failed at the network or server level.
var ErrFetch = errors.New("could not load buyer profile")

type Fetcher interface {
	GetBuyer(ctx context.Context, buyerID int) (*api.BuyerProfile, error)
}

// Gate decides whether checkout may proceed for a buyer. The only business
// rule is a non-empty delivery address: an order with no deliverable
// destination must never reach the order service.
type Gate struct {
	fetcher Fetcher
}

func NewGate(fetcher Fetcher) *Gate { return &Gate{fetcher: fetcher} }

func (g *Gate) Fetch(ctx context.Context, buyerID int) (*api.BuyerProfile, error) {
	p, err := g.fetcher.GetBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return p, nil
}

func (g *Gate) Eligible(p *api.BuyerProfile) bool {
	return p != nil && strings.TrimSpace(p.AddressLine) != ""
}
