package repositories

import (
	"context"

	"github.com/google/uuid"
	"nick-exchange.backend/internal/domain/entities"
)

// ListingRepository persists marketplace listings
type ListingRepository interface {
	Create(ctx context.Context, listing *entities.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error)
	Update(ctx context.Context, listing *entities.Listing) error
	// ListActive returns all active listings, newest first
	ListActive(ctx context.Context) ([]*entities.Listing, error)
}
