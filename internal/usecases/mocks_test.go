package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"nick-exchange.backend/internal/domain/entities"
	"nick-exchange.backend/internal/domain/repositories"
)

// Mock OwnershipRepository
type MockOwnershipRepository struct {
	mock.Mock
}

func (m *MockOwnershipRepository) GetOwned(ctx context.Context, wallet string) ([]string, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOwnershipRepository) GetActive(ctx context.Context, wallet string) (string, error) {
	args := m.Called(ctx, wallet)
	return args.String(0), args.Error(1)
}

func (m *MockOwnershipRepository) Append(ctx context.Context, wallet, nickname string) error {
	args := m.Called(ctx, wallet, nickname)
	return args.Error(0)
}

func (m *MockOwnershipRepository) Remove(ctx context.Context, wallet, nickname string) error {
	args := m.Called(ctx, wallet, nickname)
	return args.Error(0)
}

func (m *MockOwnershipRepository) SetActive(ctx context.Context, wallet, nickname string) error {
	args := m.Called(ctx, wallet, nickname)
	return args.Error(0)
}

func (m *MockOwnershipRepository) ClearActive(ctx context.Context, wallet string) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockOwnershipRepository) AllOwned(ctx context.Context) (map[string][]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]string), args.Error(1)
}

func (m *MockOwnershipRepository) AllActive(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// Mock AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *entities.NicknameAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.NicknameAsset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NicknameAsset), args.Error(1)
}

func (m *MockAssetRepository) GetByNickname(ctx context.Context, nickname string) (*entities.NicknameAsset, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NicknameAsset), args.Error(1)
}

func (m *MockAssetRepository) GetByOwner(ctx context.Context, owner string) ([]*entities.NicknameAsset, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.NicknameAsset), args.Error(1)
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *entities.NicknameAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssetRepository) AppendSale(ctx context.Context, sale *entities.SaleRecord) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockAssetRepository) SalesHistory(ctx context.Context, limit int) ([]*entities.SaleRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SaleRecord), args.Error(1)
}

func (m *MockAssetRepository) SaleAggregates(ctx context.Context) (int64, float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(float64), args.Error(2)
}

// Mock ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *entities.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Listing), args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *entities.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) ListActive(ctx context.Context) ([]*entities.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Listing), args.Error(1)
}

// Mock StakeRepository
type MockStakeRepository struct {
	mock.Mock
}

func (m *MockStakeRepository) Create(ctx context.Context, stake *entities.Stake) error {
	args := m.Called(ctx, stake)
	return args.Error(0)
}

func (m *MockStakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Stake, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Stake), args.Error(1)
}

func (m *MockStakeRepository) GetByWallet(ctx context.Context, wallet string) ([]*entities.Stake, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Stake), args.Error(1)
}

func (m *MockStakeRepository) Update(ctx context.Context, stake *entities.Stake) error {
	args := m.Called(ctx, stake)
	return args.Error(0)
}

func (m *MockStakeRepository) AddClaimed(ctx context.Context, id uuid.UUID, reward float64) error {
	args := m.Called(ctx, id, reward)
	return args.Error(0)
}

func (m *MockStakeRepository) Aggregates(ctx context.Context) (*repositories.StakeAggregates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.StakeAggregates), args.Error(1)
}

// Mock PoolRepository
type MockPoolRepository struct {
	mock.Mock
}

func (m *MockPoolRepository) Get(ctx context.Context) (*entities.LiquidityPool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LiquidityPool), args.Error(1)
}

func (m *MockPoolRepository) Seed(ctx context.Context, pool *entities.LiquidityPool) error {
	args := m.Called(ctx, pool)
	return args.Error(0)
}

func (m *MockPoolRepository) CompareAndSwap(ctx context.Context, pool *entities.LiquidityPool, fromVersion int64) error {
	args := m.Called(ctx, pool, fromVersion)
	return args.Error(0)
}

func (m *MockPoolRepository) CreateSwap(ctx context.Context, swap *entities.SwapRecord) error {
	args := m.Called(ctx, swap)
	return args.Error(0)
}

func (m *MockPoolRepository) SwapsByWallet(ctx context.Context, wallet string) ([]*entities.SwapRecord, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SwapRecord), args.Error(1)
}

// Mock BalanceService
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) GetBalance(ctx context.Context, wallet string, token entities.Token) (float64, error) {
	args := m.Called(ctx, wallet, token)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBalanceService) Debit(ctx context.Context, wallet string, token entities.Token, amount float64) error {
	args := m.Called(ctx, wallet, token, amount)
	return args.Error(0)
}

func (m *MockBalanceService) Credit(ctx context.Context, wallet string, token entities.Token, amount float64) error {
	args := m.Called(ctx, wallet, token, amount)
	return args.Error(0)
}

// Mock CustodyService
type MockCustodyService struct {
	mock.Mock
}

func (m *MockCustodyService) Hold(ctx context.Context, assetID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockCustodyService) Release(ctx context.Context, custodyID uuid.UUID) error {
	args := m.Called(ctx, custodyID)
	return args.Error(0)
}

func (m *MockCustodyService) Transfer(ctx context.Context, custodyID uuid.UUID, toWallet string) error {
	args := m.Called(ctx, custodyID, toWallet)
	return args.Error(0)
}

// Mock NicknameAllocator
type MockNicknameAllocator struct {
	mock.Mock
}

func (m *MockNicknameAllocator) ReserveUnique(ctx context.Context, candidate string) (string, error) {
	args := m.Called(ctx, candidate)
	return args.String(0), args.Error(1)
}

// noopProfileSync satisfies ProfileSync; mirroring is best-effort and not
// what these tests assert on.
type noopProfileSync struct{}

func (noopProfileSync) SetDisplayNickname(ctx context.Context, wallet, nickname string) error {
	return nil
}

// noopLocker satisfies KeyLocker without any serialization
type noopLocker struct{}

func (noopLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	return func() {}, nil
}

// passthroughUnitOfWork runs the scope inline and counts invocations so
// tests can assert which writes demanded a transaction.
type passthroughUnitOfWork struct {
	scopes int
}

func (u *passthroughUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	u.scopes++
	return fn(ctx)
}

// fakeClock returns a fixed instant, advanced explicitly by tests
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }
