package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/infrastructure/models"
)

// ListingRepository implements marketplace listing persistence
type ListingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create creates a new listing
func (r *ListingRepository) Create(ctx context.Context, listing *entities.Listing) error {
	db := GetDB(ctx, r.db)
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	m := r.toModel(listing)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	listing.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a listing by ID
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error) {
	db := GetDB(ctx, r.db)
	var m models.Listing
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists the listing status transition
func (r *ListingRepository) Update(ctx context.Context, listing *entities.Listing) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", listing.ID).
		Updates(map[string]interface{}{
			"status":    string(listing.Status),
			"closed_at": listing.ClosedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListActive returns all active listings, newest first
func (r *ListingRepository) ListActive(ctx context.Context) ([]*entities.Listing, error) {
	db := GetDB(ctx, r.db)
	var ms []models.Listing
	if err := db.WithContext(ctx).
		Where("status = ?", string(entities.ListingStatusActive)).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	listings := make([]*entities.Listing, 0, len(ms))
	for _, m := range ms {
		model := m
		listings = append(listings, r.toEntity(&model))
	}
	return listings, nil
}

func (r *ListingRepository) toModel(listing *entities.Listing) *models.Listing {
	return &models.Listing{
		ID:        listing.ID,
		AssetID:   listing.AssetID,
		Nickname:  listing.Nickname,
		Seller:    listing.Seller,
		Price:     listing.Price,
		CustodyID: listing.CustodyID,
		Status:    string(listing.Status),
		CreatedAt: listing.CreatedAt,
		ClosedAt:  listing.ClosedAt,
	}
}

func (r *ListingRepository) toEntity(m *models.Listing) *entities.Listing {
	return &entities.Listing{
		ID:        m.ID,
		AssetID:   m.AssetID,
		Nickname:  m.Nickname,
		Seller:    m.Seller,
		Price:     m.Price,
		CustodyID: m.CustodyID,
		Status:    entities.ListingStatus(m.Status),
		CreatedAt: m.CreatedAt,
		ClosedAt:  m.ClosedAt,
	}
}
