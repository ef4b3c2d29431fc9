package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/infrastructure/models"
)

// AssetRepository implements nickname asset persistence
type AssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create creates a new nickname asset
func (r *AssetRepository) Create(ctx context.Context, asset *entities.NicknameAsset) error {
	db := GetDB(ctx, r.db)
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	m := r.toModel(asset)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	asset.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.NicknameAsset, error) {
	db := GetDB(ctx, r.db)
	var m models.NicknameAsset
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.withHistory(ctx, &m)
}

// GetByNickname gets an asset by its nickname
func (r *AssetRepository) GetByNickname(ctx context.Context, nickname string) (*entities.NicknameAsset, error) {
	db := GetDB(ctx, r.db)
	var m models.NicknameAsset
	if err := db.WithContext(ctx).Where("nickname = ?", nickname).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.withHistory(ctx, &m)
}

// GetByOwner gets all assets owned by a wallet, newest first
func (r *AssetRepository) GetByOwner(ctx context.Context, owner string) ([]*entities.NicknameAsset, error) {
	db := GetDB(ctx, r.db)
	var ms []models.NicknameAsset
	if err := db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	assets := make([]*entities.NicknameAsset, 0, len(ms))
	for _, m := range ms {
		model := m
		assets = append(assets, r.toEntity(&model))
	}
	return assets, nil
}

// Update persists all mutable fields of the asset
func (r *AssetRepository) Update(ctx context.Context, asset *entities.NicknameAsset) error {
	db := GetDB(ctx, r.db)
	m := r.toModel(asset)
	result := db.WithContext(ctx).Model(&models.NicknameAsset{}).
		Where("id = ?", asset.ID).
		Select("owner", "for_sale", "price", "last_sale_price", "custody_id", "updated_at").
		Updates(map[string]interface{}{
			"owner":           m.Owner,
			"for_sale":        m.ForSale,
			"price":           m.Price,
			"last_sale_price": m.LastSalePrice,
			"custody_id":      m.CustodyID,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an asset. Used to undo a failed mint.
func (r *AssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.NicknameAsset{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Count returns the total number of minted assets
func (r *AssetRepository) Count(ctx context.Context) (int64, error) {
	db := GetDB(ctx, r.db)
	var total int64
	if err := db.WithContext(ctx).Model(&models.NicknameAsset{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// AppendSale records a completed sale against the asset
func (r *AssetRepository) AppendSale(ctx context.Context, sale *entities.SaleRecord) error {
	db := GetDB(ctx, r.db)
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	m := models.SaleRecord{
		ID:        sale.ID,
		AssetID:   sale.AssetID,
		Nickname:  sale.Nickname,
		Seller:    sale.Seller,
		Buyer:     sale.Buyer,
		Price:     sale.Price,
		Timestamp: sale.Timestamp,
	}
	return db.WithContext(ctx).Create(&m).Error
}

// SalesHistory returns the most recent sales across all assets, newest first
func (r *AssetRepository) SalesHistory(ctx context.Context, limit int) ([]*entities.SaleRecord, error) {
	db := GetDB(ctx, r.db)
	var ms []models.SaleRecord
	if err := db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toSaleEntities(ms), nil
}

// SaleAggregates returns the total sale count and volume
func (r *AssetRepository) SaleAggregates(ctx context.Context) (int64, float64, error) {
	db := GetDB(ctx, r.db)
	var row struct {
		Count  int64
		Volume float64
	}
	if err := db.WithContext(ctx).Model(&models.SaleRecord{}).
		Select("COUNT(*) AS count, COALESCE(SUM(price), 0) AS volume").
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Count, row.Volume, nil
}

func (r *AssetRepository) withHistory(ctx context.Context, m *models.NicknameAsset) (*entities.NicknameAsset, error) {
	db := GetDB(ctx, r.db)
	var sales []models.SaleRecord
	if err := db.WithContext(ctx).
		Where("asset_id = ?", m.ID).
		Order("timestamp DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	asset := r.toEntity(m)
	asset.SaleHistory = toSaleEntities(sales)
	return asset, nil
}

func (r *AssetRepository) toModel(asset *entities.NicknameAsset) *models.NicknameAsset {
	return &models.NicknameAsset{
		ID:            asset.ID,
		Nickname:      asset.Nickname,
		Owner:         asset.Owner,
		ForSale:       asset.ForSale,
		Price:         asset.Price.Ptr(),
		LastSalePrice: asset.LastSalePrice.Ptr(),
		CustodyID:     asset.CustodyID,
		CreatedAt:     asset.CreatedAt,
	}
}

func (r *AssetRepository) toEntity(m *models.NicknameAsset) *entities.NicknameAsset {
	return &entities.NicknameAsset{
		ID:            m.ID,
		Nickname:      m.Nickname,
		Owner:         m.Owner,
		ForSale:       m.ForSale,
		Price:         null.Float64FromPtr(m.Price),
		LastSalePrice: null.Float64FromPtr(m.LastSalePrice),
		CustodyID:     m.CustodyID,
		CreatedAt:     m.CreatedAt,
	}
}

func toSaleEntities(ms []models.SaleRecord) []*entities.SaleRecord {
	sales := make([]*entities.SaleRecord, 0, len(ms))
	for _, m := range ms {
		sales = append(sales, &entities.SaleRecord{
			ID:        m.ID,
			AssetID:   m.AssetID,
			Nickname:  m.Nickname,
			Seller:    m.Seller,
			Buyer:     m.Buyer,
			Price:     m.Price,
			Timestamp: m.Timestamp,
		})
	}
	return sales
}
