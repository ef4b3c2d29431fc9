package entities

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus tracks the listing lifecycle. A terminated listing never
// becomes active again; re-listing an asset creates a new listing.
type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "ACTIVE"
	ListingStatusSold      ListingStatus = "SOLD"
	ListingStatusCancelled ListingStatus = "CANCELLED"
)

// Listing is an offer to sell a nickname asset at a fixed price
type Listing struct {
	ID        uuid.UUID     `json:"id"`
	AssetID   uuid.UUID     `json:"assetId"`
	Nickname  string        `json:"nickname"`
	Seller    string        `json:"seller"`
	Price     float64       `json:"price"`
	CustodyID uuid.UUID     `json:"custodyId"`
	Status    ListingStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	ClosedAt  *time.Time    `json:"closedAt,omitempty"`
}

// IsActive reports whether the listing can still be bought or cancelled
func (l *Listing) IsActive() bool {
	return l.Status == ListingStatusActive
}

// CreateListingInput represents input for listing a nickname for sale
type CreateListingInput struct {
	Nickname string  `json:"nickname" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
}
