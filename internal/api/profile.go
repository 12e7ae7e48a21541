package api

import (
	"context"
	"fmt"
)

// BuyerProfile mirrors GET /profile/buyer/{id}. AddressLine is the only
// field checkout validates; the rest is display data for the confirmation
// step.
type BuyerProfile struct {
	ID          int    `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	Role        string `json:"role"`
}

type ProfileClient struct{ c *Client }

func NewProfileClient(c *Client) *ProfileClient { return &ProfileClient{c: c} }

func (pc *ProfileClient) GetBuyer(ctx context.Context, buyerID int) (*BuyerProfile, error) {
	var p BuyerProfile
	if err := pc.c.getJSON(ctx, fmt.Sprintf("/profile/buyer/%d", buyerID), "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}
