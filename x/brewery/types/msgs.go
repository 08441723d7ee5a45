package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Messages are plain Go values carried as JSON; every field that names an
// account is a bech32 string resolved by the msg server.

type MsgAddPool struct {
	Authority    string `json:"authority"`
	AllocPoint   uint64 `json:"alloc_point"`
	StakedDenom  string `json:"staked_denom"`
	DepositFeeBP uint32 `json:"deposit_fee_bp"`
	BrewingTime  uint64 `json:"brewing_time"`
}

type MsgAddPoolResponse struct {
	PoolID uint64 `json:"pool_id"`
}

type MsgSetPool struct {
	Authority    string `json:"authority"`
	PoolID       uint64 `json:"pool_id"`
	AllocPoint   uint64 `json:"alloc_point"`
	DepositFeeBP uint32 `json:"deposit_fee_bp"`
	BrewingTime  uint64 `json:"brewing_time"`
}

type MsgSetPoolResponse struct{}

type MsgSetRewardRate struct {
	Authority       string   `json:"authority"`
	RewardPerSecond math.Int `json:"reward_per_second"`
}

type MsgSetRewardRateResponse struct{}

type MsgSetForfeitedDistributionBP struct {
	Authority      string `json:"authority"`
	DistributionBP uint32 `json:"distribution_bp"`
}

type MsgSetForfeitedDistributionBPResponse struct{}

// MsgSetDevAddress is signed by the current dev address.
type MsgSetDevAddress struct {
	Sender     string `json:"sender"`
	NewAddress string `json:"new_address"`
}

type MsgSetDevAddressResponse struct{}

// MsgSetFeeAddress is signed by the current fee address.
type MsgSetFeeAddress struct {
	Sender     string `json:"sender"`
	NewAddress string `json:"new_address"`
}

type MsgSetFeeAddressResponse struct{}

type MsgSetStartTime struct {
	Authority string `json:"authority"`
	StartTime int64  `json:"start_time"`
}

type MsgSetStartTimeResponse struct{}

type MsgDeposit struct {
	Depositor string   `json:"depositor"`
	PoolID    uint64   `json:"pool_id"`
	Amount    math.Int `json:"amount"`
}

type MsgDepositResponse struct {
	Receipt DepositReceipt `json:"receipt"`
}

type MsgWithdraw struct {
	Depositor string   `json:"depositor"`
	PoolID    uint64   `json:"pool_id"`
	Amount    math.Int `json:"amount"`
}

type MsgWithdrawResponse struct {
	Harvest Harvest `json:"harvest"`
}

type MsgEmergencyWithdraw struct {
	Depositor string `json:"depositor"`
	PoolID    uint64 `json:"pool_id"`
}

type MsgEmergencyWithdrawResponse struct {
	Amount math.Int `json:"amount"`
}

// Harvest summarises the reward settlement of a deposit or withdrawal.
// Paid can fall short of Vested when the treasury is underfunded.
type Harvest struct {
	Vested    math.Int `json:"vested"`
	Forfeited math.Int `json:"forfeited"`
	Paid      math.Int `json:"paid"`
}

// NewHarvest returns an empty settlement.
func NewHarvest() Harvest {
	return Harvest{Vested: math.ZeroInt(), Forfeited: math.ZeroInt(), Paid: math.ZeroInt()}
}

// DepositReceipt reports what a deposit actually credited.
type DepositReceipt struct {
	Received math.Int `json:"received"`
	Fee      math.Int `json:"fee"`
	Staked   math.Int `json:"staked"`
	Harvest  Harvest  `json:"harvest"`
}

func validateBech32(addr, field string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return errorsmod.Wrapf(ErrInvalidAddress, "%s: %s", field, err)
	}
	return nil
}

func validateNonNegative(amt math.Int, field string) error {
	if amt.IsNil() || amt.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidAmount, "%s must be non-negative", field)
	}
	return nil
}

func (m MsgAddPool) ValidateBasic() error {
	if err := validateBech32(m.Authority, "authority"); err != nil {
		return err
	}
	return ValidatePoolConfig(m.StakedDenom, m.DepositFeeBP, m.BrewingTime)
}

func (m MsgSetPool) ValidateBasic() error {
	if err := validateBech32(m.Authority, "authority"); err != nil {
		return err
	}
	return ValidatePoolSettings(m.DepositFeeBP, m.BrewingTime)
}

func (m MsgSetRewardRate) ValidateBasic() error {
	if err := validateBech32(m.Authority, "authority"); err != nil {
		return err
	}
	return validateNonNegative(m.RewardPerSecond, "reward_per_second")
}

// ValidateBasic only checks the signer. The ratio itself is checked against
// the stored value by the keeper.
func (m MsgSetForfeitedDistributionBP) ValidateBasic() error {
	return validateBech32(m.Authority, "authority")
}

func (m MsgSetDevAddress) ValidateBasic() error {
	if err := validateBech32(m.Sender, "sender"); err != nil {
		return err
	}
	return validateBech32(m.NewAddress, "new_address")
}

func (m MsgSetFeeAddress) ValidateBasic() error {
	if err := validateBech32(m.Sender, "sender"); err != nil {
		return err
	}
	return validateBech32(m.NewAddress, "new_address")
}

func (m MsgSetStartTime) ValidateBasic() error {
	if err := validateBech32(m.Authority, "authority"); err != nil {
		return err
	}
	if m.StartTime < 0 {
		return errorsmod.Wrap(ErrInvalidConfig, "start_time cannot be negative")
	}
	return nil
}

func (m MsgDeposit) ValidateBasic() error {
	if err := validateBech32(m.Depositor, "depositor"); err != nil {
		return err
	}
	return validateNonNegative(m.Amount, "amount")
}

func (m MsgWithdraw) ValidateBasic() error {
	if err := validateBech32(m.Depositor, "depositor"); err != nil {
		return err
	}
	return validateNonNegative(m.Amount, "amount")
}

func (m MsgEmergencyWithdraw) ValidateBasic() error {
	return validateBech32(m.Depositor, "depositor")
}

// MsgServer is the brewery message service.
type MsgServer interface {
	AddPool(context.Context, *MsgAddPool) (*MsgAddPoolResponse, error)
	SetPool(context.Context, *MsgSetPool) (*MsgSetPoolResponse, error)
	SetRewardRate(context.Context, *MsgSetRewardRate) (*MsgSetRewardRateResponse, error)
	SetForfeitedDistributionBP(context.Context, *MsgSetForfeitedDistributionBP) (*MsgSetForfeitedDistributionBPResponse, error)
	SetDevAddress(context.Context, *MsgSetDevAddress) (*MsgSetDevAddressResponse, error)
	SetFeeAddress(context.Context, *MsgSetFeeAddress) (*MsgSetFeeAddressResponse, error)
	SetStartTime(context.Context, *MsgSetStartTime) (*MsgSetStartTimeResponse, error)
	Deposit(context.Context, *MsgDeposit) (*MsgDepositResponse, error)
	Withdraw(context.Context, *MsgWithdraw) (*MsgWithdrawResponse, error)
	EmergencyWithdraw(context.Context, *MsgEmergencyWithdraw) (*MsgEmergencyWithdrawResponse, error)
}
