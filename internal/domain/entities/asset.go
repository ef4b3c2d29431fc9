package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// NicknameAsset represents a unique nickname-backed token. While listed for
// sale the asset is held in custody and CustodyID is set; it is then a member
// of no wallet's owned set until the listing terminates.
type NicknameAsset struct {
	ID            uuid.UUID     `json:"id"`
	Nickname      string        `json:"nickname"`
	Owner         string        `json:"owner"`
	ForSale       bool          `json:"isForSale"`
	Price         null.Float64  `json:"price,omitempty"`
	LastSalePrice null.Float64  `json:"lastSalePrice,omitempty"`
	CustodyID     *uuid.UUID    `json:"custodyId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	SaleHistory   []*SaleRecord `json:"saleHistory,omitempty"`
}

// SaleRecord is an append-only record of a completed sale
type SaleRecord struct {
	ID        uuid.UUID `json:"id"`
	AssetID   uuid.UUID `json:"assetId"`
	Nickname  string    `json:"nickname"`
	Seller    string    `json:"seller"`
	Buyer     string    `json:"buyer"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// MintAssetInput represents input for minting a nickname asset
type MintAssetInput struct {
	Nickname string `json:"nickname" binding:"required"`
}

// MarketplaceStats aggregates exchange activity
type MarketplaceStats struct {
	ActiveListings int     `json:"activeListings"`
	TotalAssets    int     `json:"totalAssets"`
	TotalSales     int     `json:"totalSales"`
	TotalVolume    float64 `json:"totalVolume"`
	AveragePrice   float64 `json:"averagePrice"`
	FloorPrice     float64 `json:"floorPrice"`
}
