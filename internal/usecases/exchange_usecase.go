package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/domain/gateways"
	"nick-exchange.backend/internal/domain/repositories"
	"nick-exchange.backend/pkg/logger"
)

// ownershipRegistry is the slice of the registry the exchange coordinates
// with. Cap enforcement stays inside the registry; the exchange only
// prechecks and compensates.
type ownershipRegistry interface {
	Acquire(ctx context.Context, wallet, nickname string) error
	Release(ctx context.Context, wallet, nickname string) error
	Ownership(ctx context.Context, wallet string) (*entities.NicknameOwnership, error)
}

// nicknameAllocator reserves globally-unique names for minting
type nicknameAllocator interface {
	ReserveUnique(ctx context.Context, candidate string) (string, error)
}

// ExchangeUsecase mediates escrow-based listing and sale of nickname assets.
// Every multi-step effect runs as a saga; per-listing serialization stops
// two buyers from both observing an active listing.
type ExchangeUsecase struct {
	assetRepo   repositories.AssetRepository
	listingRepo repositories.ListingRepository
	registry    ownershipRegistry
	custody     gateways.CustodyService
	balances    gateways.BalanceService
	allocator   nicknameAllocator
	locks       gateways.KeyLocker
	uow         repositories.UnitOfWork
	clock       Clock
}

// NewExchangeUsecase creates a new exchange usecase
func NewExchangeUsecase(
	assetRepo repositories.AssetRepository,
	listingRepo repositories.ListingRepository,
	registry ownershipRegistry,
	custody gateways.CustodyService,
	balances gateways.BalanceService,
	allocator nicknameAllocator,
	locks gateways.KeyLocker,
	uow repositories.UnitOfWork,
	clock Clock,
) *ExchangeUsecase {
	return &ExchangeUsecase{
		assetRepo:   assetRepo,
		listingRepo: listingRepo,
		registry:    registry,
		custody:     custody,
		balances:    balances,
		allocator:   allocator,
		locks:       locks,
		uow:         uow,
		clock:       clock,
	}
}

func listingKey(id uuid.UUID) string { return "listing:" + id.String() }

// Mint reserves a unique nickname, creates the backing asset and assigns
// ownership to the wallet.
func (u *ExchangeUsecase) Mint(ctx context.Context, wallet, nickname string) (*entities.NicknameAsset, error) {
	ownership, err := u.registry.Ownership(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if !ownership.CanAcquireMore {
		return nil, fmt.Errorf("wallet %s: %w", wallet, domainerrors.ErrLimitExceeded)
	}

	reserved, err := u.allocator.ReserveUnique(ctx, nickname)
	if err != nil {
		return nil, fmt.Errorf("reserving nickname %q: %w", nickname, err)
	}

	asset := &entities.NicknameAsset{
		ID:        uuid.New(),
		Nickname:  reserved,
		Owner:     wallet,
		CreatedAt: u.clock.Now(),
	}

	mint := newSaga("mint")
	mint.add("create asset",
		func(ctx context.Context) error { return u.assetRepo.Create(ctx, asset) },
		func(ctx context.Context) error { return u.assetRepo.Delete(ctx, asset.ID) },
	)
	mint.add("acquire ownership",
		func(ctx context.Context) error { return u.registry.Acquire(ctx, wallet, reserved) },
		nil,
	)
	if err := mint.execute(ctx); err != nil {
		return nil, err
	}
	return asset, nil
}

// List places an owned nickname in escrow and creates an active listing.
// The nickname leaves the seller's owned set for the duration of the listing.
func (u *ExchangeUsecase) List(ctx context.Context, seller, nickname string, price float64) (*entities.Listing, error) {
	if price <= 0 {
		return nil, fmt.Errorf("price must be positive: %w", domainerrors.ErrInvalidInput)
	}

	asset, err := u.assetRepo.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if asset.ForSale {
		return nil, fmt.Errorf("nickname %q is already listed: %w", nickname, domainerrors.ErrAlreadyExists)
	}

	ownership, err := u.registry.Ownership(ctx, seller)
	if err != nil {
		return nil, err
	}
	if !contains(ownership.OwnedNicknames, nickname) {
		return nil, fmt.Errorf("wallet %s, nickname %q: %w", seller, nickname, domainerrors.ErrNotOwned)
	}

	listing := &entities.Listing{
		ID:        uuid.New(),
		AssetID:   asset.ID,
		Nickname:  nickname,
		Seller:    seller,
		Price:     price,
		Status:    entities.ListingStatusActive,
		CreatedAt: u.clock.Now(),
	}

	var custodyID uuid.UUID
	list := newSaga("list")
	list.add("hold custody",
		func(ctx context.Context) error {
			id, err := u.custody.Hold(ctx, asset.ID)
			if err != nil {
				return fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
			}
			custodyID = id
			return nil
		},
		func(ctx context.Context) error { return u.custody.Release(ctx, custodyID) },
	)
	list.add("release ownership",
		func(ctx context.Context) error { return u.registry.Release(ctx, seller, nickname) },
		func(ctx context.Context) error { return u.registry.Acquire(ctx, seller, nickname) },
	)
	list.add("mark asset escrowed",
		func(ctx context.Context) error {
			asset.ForSale = true
			asset.Price = null.Float64From(price)
			asset.CustodyID = &custodyID
			return u.assetRepo.Update(ctx, asset)
		},
		func(ctx context.Context) error {
			asset.ForSale = false
			asset.Price = null.Float64{}
			asset.CustodyID = nil
			return u.assetRepo.Update(ctx, asset)
		},
	)
	list.add("create listing",
		func(ctx context.Context) error {
			listing.CustodyID = custodyID
			return u.listingRepo.Create(ctx, listing)
		},
		nil,
	)
	if err := list.execute(ctx); err != nil {
		return nil, err
	}

	logger.Info(ctx, "nickname listed",
		zap.String("nickname", nickname),
		zap.String("seller", seller),
		zap.Float64("price", price),
	)
	return listing, nil
}

// Buy purchases an active listing. The sale does not proceed and no funds
// move when the buyer is at the ownership cap or short on balance.
func (u *ExchangeUsecase) Buy(ctx context.Context, listingID uuid.UUID, buyer string) (*entities.SaleRecord, error) {
	unlock, err := u.locks.Lock(ctx, listingKey(listingID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	listing, err := u.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsActive() {
		return nil, fmt.Errorf("listing %s: %w", listingID, domainerrors.ErrAlreadyClosed)
	}
	if listing.Seller == buyer {
		return nil, fmt.Errorf("cannot buy own listing: %w", domainerrors.ErrForbidden)
	}

	ownership, err := u.registry.Ownership(ctx, buyer)
	if err != nil {
		return nil, err
	}
	if !ownership.CanAcquireMore {
		return nil, fmt.Errorf("wallet %s: %w", buyer, domainerrors.ErrLimitExceeded)
	}

	balance, err := u.balances.GetBalance(ctx, buyer, entities.TokenSUI)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
	}
	if balance < listing.Price {
		return nil, fmt.Errorf("wallet %s has %.4f SUI, needs %.4f: %w",
			buyer, balance, listing.Price, domainerrors.ErrInsufficientFunds)
	}

	asset, err := u.assetRepo.GetByID(ctx, listing.AssetID)
	if err != nil {
		return nil, err
	}

	sale := &entities.SaleRecord{
		ID:        uuid.New(),
		AssetID:   asset.ID,
		Nickname:  listing.Nickname,
		Seller:    listing.Seller,
		Buyer:     buyer,
		Price:     listing.Price,
		Timestamp: u.clock.Now(),
	}

	buy := newSaga("buy")
	buy.add("debit buyer",
		func(ctx context.Context) error {
			if err := u.balances.Debit(ctx, buyer, entities.TokenSUI, listing.Price); err != nil {
				return fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
			}
			return nil
		},
		func(ctx context.Context) error { return u.balances.Credit(ctx, buyer, entities.TokenSUI, listing.Price) },
	)
	buy.add("transfer custody",
		func(ctx context.Context) error {
			if err := u.custody.Transfer(ctx, listing.CustodyID, buyer); err != nil {
				return fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
			}
			return nil
		},
		nil,
	)
	buy.add("acquire ownership",
		// The registry re-checks the cap under its own wallet lock, so a
		// concurrent acquire by the same buyer fails here and rolls the
		// payment back instead of bypassing the cap.
		func(ctx context.Context) error { return u.registry.Acquire(ctx, buyer, listing.Nickname) },
		func(ctx context.Context) error { return u.registry.Release(ctx, buyer, listing.Nickname) },
	)
	buy.add("credit seller",
		func(ctx context.Context) error {
			if err := u.balances.Credit(ctx, listing.Seller, entities.TokenSUI, listing.Price); err != nil {
				return fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
			}
			return nil
		},
		func(ctx context.Context) error { return u.balances.Debit(ctx, listing.Seller, entities.TokenSUI, listing.Price) },
	)
	buy.add("settle records",
		func(ctx context.Context) error { return u.settleSale(ctx, listing, asset, sale, buyer) },
		nil,
	)
	if err := buy.execute(ctx); err != nil {
		return nil, err
	}

	logger.Info(ctx, "nickname sold",
		zap.String("nickname", listing.Nickname),
		zap.String("seller", listing.Seller),
		zap.String("buyer", buyer),
		zap.Float64("price", listing.Price),
	)
	return sale, nil
}

// settleSale commits the listing close, asset handover and sale record in
// one transaction so a partial settle never becomes visible.
func (u *ExchangeUsecase) settleSale(ctx context.Context, listing *entities.Listing, asset *entities.NicknameAsset, sale *entities.SaleRecord, buyer string) error {
	return u.uow.Do(ctx, func(ctx context.Context) error {
		now := u.clock.Now()
		listing.Status = entities.ListingStatusSold
		listing.ClosedAt = &now
		if err := u.listingRepo.Update(ctx, listing); err != nil {
			return err
		}

		asset.Owner = buyer
		asset.ForSale = false
		asset.LastSalePrice = null.Float64From(listing.Price)
		asset.Price = null.Float64{}
		asset.CustodyID = nil
		if err := u.assetRepo.Update(ctx, asset); err != nil {
			return err
		}
		return u.assetRepo.AppendSale(ctx, sale)
	})
}

// Cancel delists a nickname and returns it to the seller. If the seller has
// meanwhile re-acquired up to the ownership cap the cancel is rejected with
// LimitExceeded; the seller must free a slot first. Ownership is restored
// before any escrow state is touched so a rejection leaves nothing applied.
func (u *ExchangeUsecase) Cancel(ctx context.Context, listingID uuid.UUID, seller string) error {
	unlock, err := u.locks.Lock(ctx, listingKey(listingID))
	if err != nil {
		return err
	}
	defer unlock()

	listing, err := u.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.Seller != seller {
		return fmt.Errorf("listing %s: %w", listingID, domainerrors.ErrNotFound)
	}
	if !listing.IsActive() {
		return fmt.Errorf("listing %s: %w", listingID, domainerrors.ErrAlreadyClosed)
	}

	asset, err := u.assetRepo.GetByID(ctx, listing.AssetID)
	if err != nil {
		return err
	}

	cancel := newSaga("cancel")
	cancel.add("restore ownership",
		func(ctx context.Context) error { return u.registry.Acquire(ctx, seller, listing.Nickname) },
		func(ctx context.Context) error { return u.registry.Release(ctx, seller, listing.Nickname) },
	)
	cancel.add("release custody",
		func(ctx context.Context) error {
			err := u.custody.Release(ctx, listing.CustodyID)
			if err != nil && !errors.Is(err, domainerrors.ErrAlreadyClosed) {
				return fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
			}
			// AlreadyClosed means a prior cancel attempt released custody
			// but was interrupted before closing the listing. Under the
			// listing lock no other flow can have closed it, so the re-run
			// proceeds to finish the cancel.
			return nil
		},
		nil,
	)
	cancel.add("close listing",
		func(ctx context.Context) error {
			return u.uow.Do(ctx, func(ctx context.Context) error {
				now := u.clock.Now()
				listing.Status = entities.ListingStatusCancelled
				listing.ClosedAt = &now
				if err := u.listingRepo.Update(ctx, listing); err != nil {
					return err
				}
				asset.ForSale = false
				asset.Price = null.Float64{}
				asset.CustodyID = nil
				return u.assetRepo.Update(ctx, asset)
			})
		},
		nil,
	)
	if err := cancel.execute(ctx); err != nil {
		return err
	}

	logger.Info(ctx, "listing cancelled",
		zap.String("nickname", listing.Nickname),
		zap.String("seller", seller),
	)
	return nil
}

// ActiveListings returns all open listings, newest first
func (u *ExchangeUsecase) ActiveListings(ctx context.Context) ([]*entities.Listing, error) {
	return u.listingRepo.ListActive(ctx)
}

// GetListing returns a listing by id
func (u *ExchangeUsecase) GetListing(ctx context.Context, id uuid.UUID) (*entities.Listing, error) {
	return u.listingRepo.GetByID(ctx, id)
}

// GetAsset returns an asset with its sale history
func (u *ExchangeUsecase) GetAsset(ctx context.Context, id uuid.UUID) (*entities.NicknameAsset, error) {
	return u.assetRepo.GetByID(ctx, id)
}

// WalletAssets returns the assets a wallet currently owns
func (u *ExchangeUsecase) WalletAssets(ctx context.Context, owner string) ([]*entities.NicknameAsset, error) {
	return u.assetRepo.GetByOwner(ctx, owner)
}

// SalesHistory returns the most recent sales, newest first
func (u *ExchangeUsecase) SalesHistory(ctx context.Context, limit int) ([]*entities.SaleRecord, error) {
	if limit <= 0 {
		limit = DefaultSalesHistoryLimit
	}
	return u.assetRepo.SalesHistory(ctx, limit)
}

// MarketStats aggregates exchange activity
func (u *ExchangeUsecase) MarketStats(ctx context.Context) (*entities.MarketplaceStats, error) {
	active, err := u.listingRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	totalAssets, err := u.assetRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	saleCount, volume, err := u.assetRepo.SaleAggregates(ctx)
	if err != nil {
		return nil, err
	}

	stats := &entities.MarketplaceStats{
		ActiveListings: len(active),
		TotalAssets:    int(totalAssets),
		TotalSales:     int(saleCount),
		TotalVolume:    volume,
	}
	if saleCount > 0 {
		stats.AveragePrice = volume / float64(saleCount)
	}
	for _, l := range active {
		if stats.FloorPrice == 0 || l.Price < stats.FloorPrice {
			stats.FloorPrice = l.Price
		}
	}
	return stats, nil
}
