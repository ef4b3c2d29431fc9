package usecases

// Ownership limits
const (
	// MaxNicknamesPerWallet caps how many nicknames one wallet may own
	MaxNicknamesPerWallet = 4
)

// Staking parameters
const (
	// MinStakeAmount is the smallest accepted principal, in WAL
	MinStakeAmount = 1.0
	// StakingAPY is the fixed annual percentage yield
	StakingAPY = 12.5
	// LockPeriodDays is the stake lock period
	LockPeriodDays = 30
	// DustRewardThreshold rejects claims that would settle less than this,
	// avoiding zero-value settlements
	DustRewardThreshold = 0.001
)

// Swap parameters
const (
	// MinSwapAmount is the smallest accepted swap input
	MinSwapAmount = 0.01
	// SwapFeeRate is deducted from the input before pricing (0.3%)
	SwapFeeRate = 0.003
	// DefaultSlippageTolerance bounds execution when the caller sets no
	// explicit minimum output (5%)
	DefaultSlippageTolerance = 0.05
)

// Seed reserves for a fresh liquidity pool
const (
	SeedReserveSUI = 1_000_000.0
	SeedReserveWAL = 500_000.0
)

// Query defaults
const (
	DefaultSalesHistoryLimit = 50
	DefaultSearchLimit       = 50
)

// StakePoolName labels the single staking pool exposed by Pools
const StakePoolName = "Walrus Main Pool"
