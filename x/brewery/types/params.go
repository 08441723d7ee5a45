package types

import (
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const (
	// BasisPoints is the denominator of every fee and split ratio.
	BasisPoints = 10_000

	// MaxDepositFeeBP caps the per-pool deposit fee at 5%.
	MaxDepositFeeBP = 500

	// DefaultForfeitedDistributionBP returns 95% of a forfeiture to the pool.
	DefaultForfeitedDistributionBP = 9_500

	// DevShareDivisor mints reward/DevShareDivisor to the dev address on every accrual.
	DevShareDivisor = 10

	DefaultRewardDenom = "ubrew"
)

// Params defines the global reward configuration.
type Params struct {
	RewardDenom             string   `json:"reward_denom" yaml:"reward_denom"`
	RewardPerSecond         math.Int `json:"reward_per_second" yaml:"reward_per_second"`
	StartTime               int64    `json:"start_time" yaml:"start_time"`
	ForfeitedDistributionBP uint32   `json:"forfeited_distribution_bp" yaml:"forfeited_distribution_bp"`
	DevAddress              string   `json:"dev_address" yaml:"dev_address"`
	FeeAddress              string   `json:"fee_address" yaml:"fee_address"`
}

// DefaultParams returns params with emission disabled and both sinks pointed at gov.
func DefaultParams() Params {
	gov := authtypes.NewModuleAddress(GovModuleName).String()
	return Params{
		RewardDenom:             DefaultRewardDenom,
		RewardPerSecond:         math.ZeroInt(),
		StartTime:               0,
		ForfeitedDistributionBP: DefaultForfeitedDistributionBP,
		DevAddress:              gov,
		FeeAddress:              gov,
	}
}

// Validate checks param bounds. ForfeitedDistributionBP is left unbounded:
// the admin setter can store any value, and redistribution rejects one above
// BasisPoints when it is used.
func (p Params) Validate() error {
	if err := sdk.ValidateDenom(p.RewardDenom); err != nil {
		return fmt.Errorf("reward_denom: %w", err)
	}
	if p.RewardPerSecond.IsNil() {
		return fmt.Errorf("reward_per_second cannot be nil")
	}
	if p.RewardPerSecond.IsNegative() {
		return fmt.Errorf("reward_per_second cannot be negative")
	}
	if p.StartTime < 0 {
		return fmt.Errorf("start_time cannot be negative")
	}
	if err := validateAddress(p.DevAddress, "dev_address"); err != nil {
		return err
	}
	return validateAddress(p.FeeAddress, "fee_address")
}

// DevAddr returns the decoded dev address. Params are validated on write.
func (p Params) DevAddr() (sdk.AccAddress, error) { return sdk.AccAddressFromBech32(p.DevAddress) }

// FeeAddr returns the decoded fee address.
func (p Params) FeeAddr() (sdk.AccAddress, error) { return sdk.AccAddressFromBech32(p.FeeAddress) }

// ValidateForfeitedDistributionBP rejects a split that would return everything
// (or more) to the pool.
func ValidateForfeitedDistributionBP(bp uint32) error {
	if bp >= BasisPoints {
		return errorsmod.Wrapf(ErrInvalidConfig, "forfeited_distribution_bp must be below %d, got %d", BasisPoints, bp)
	}
	return nil
}

// ValidateDepositFeeBP enforces the deposit fee cap.
func ValidateDepositFeeBP(bp uint32) error {
	if bp > MaxDepositFeeBP {
		return errorsmod.Wrapf(ErrInvalidConfig, "deposit fee %d bp exceeds cap of %d bp", bp, MaxDepositFeeBP)
	}
	return nil
}

func validateAddress(addr, name string) error {
	if strings.TrimSpace(addr) == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
