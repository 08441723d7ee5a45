package types

import (
	"fmt"
	stdmath "math"

	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Pool is one staking pool of the registry. Pools are append-only and
// identified by their registry index.
type Pool struct {
	ID                uint64   `json:"id" yaml:"id"`
	StakedDenom       string   `json:"staked_denom" yaml:"staked_denom"`
	AllocPoint        uint64   `json:"alloc_point" yaml:"alloc_point"`
	LastRewardTime    int64    `json:"last_reward_time" yaml:"last_reward_time"`
	AccRewardPerShare math.Int `json:"acc_reward_per_share" yaml:"acc_reward_per_share"`
	DepositFeeBP      uint32   `json:"deposit_fee_bp" yaml:"deposit_fee_bp"`
	BrewingTime       uint64   `json:"brewing_time" yaml:"brewing_time"`
	TotalStaked       math.Int `json:"total_staked" yaml:"total_staked"`
}

// NewPool returns an empty pool whose accrual starts at lastRewardTime.
func NewPool(id uint64, stakedDenom string, allocPoint uint64, depositFeeBP uint32, brewingTime uint64, lastRewardTime int64) Pool {
	return Pool{
		ID:                id,
		StakedDenom:       stakedDenom,
		AllocPoint:        allocPoint,
		LastRewardTime:    lastRewardTime,
		AccRewardPerShare: math.ZeroInt(),
		DepositFeeBP:      depositFeeBP,
		BrewingTime:       brewingTime,
		TotalStaked:       math.ZeroInt(),
	}
}

// ValidatePoolConfig checks the admin-supplied pool settings.
func ValidatePoolConfig(stakedDenom string, depositFeeBP uint32, brewingTime uint64) error {
	if err := sdk.ValidateDenom(stakedDenom); err != nil {
		return errorsmod.Wrapf(ErrInvalidConfig, "staked denom: %v", err)
	}
	return ValidatePoolSettings(depositFeeBP, brewingTime)
}

// ValidatePoolSettings checks the mutable settings of a pool.
func ValidatePoolSettings(depositFeeBP uint32, brewingTime uint64) error {
	if err := ValidateDepositFeeBP(depositFeeBP); err != nil {
		return err
	}
	if brewingTime > stdmath.MaxInt64 {
		return errorsmod.Wrapf(ErrInvalidConfig, "brewing time %d out of range", brewingTime)
	}
	return nil
}

// Validate performs stateless checks on a stored pool.
func (p Pool) Validate() error {
	if err := ValidatePoolConfig(p.StakedDenom, p.DepositFeeBP, p.BrewingTime); err != nil {
		return err
	}
	if p.AccRewardPerShare.IsNil() || p.AccRewardPerShare.IsNegative() {
		return fmt.Errorf("pool %d: acc_reward_per_share must be non-negative", p.ID)
	}
	if p.TotalStaked.IsNil() || p.TotalStaked.IsNegative() {
		return fmt.Errorf("pool %d: total_staked must be non-negative", p.ID)
	}
	return nil
}

// UserInfo is a depositor's position in one pool.
type UserInfo struct {
	Amount      math.Int `json:"amount" yaml:"amount"`
	DepositTime int64    `json:"deposit_time" yaml:"deposit_time"`
	RewardDebt  math.Int `json:"reward_debt" yaml:"reward_debt"`
}

// NewUserInfo returns an empty position.
func NewUserInfo() UserInfo {
	return UserInfo{Amount: math.ZeroInt(), RewardDebt: math.ZeroInt()}
}

// IsEmpty reports whether the position holds no stake.
func (u UserInfo) IsEmpty() bool { return !u.Amount.IsPositive() }

// PendingAt returns the full, vesting-unaware reward owed at accumulator acc.
func (u UserInfo) PendingAt(acc math.Int) math.Int {
	pending := RewardDebtAt(u.Amount, acc).Sub(u.RewardDebt)
	if pending.IsNegative() {
		return math.ZeroInt()
	}
	return pending
}

// Validate performs stateless checks on a stored position.
func (u UserInfo) Validate() error {
	if u.Amount.IsNil() || u.Amount.IsNegative() {
		return fmt.Errorf("amount must be non-negative")
	}
	if u.RewardDebt.IsNil() || u.RewardDebt.IsNegative() {
		return fmt.Errorf("reward_debt must be non-negative")
	}
	return nil
}
