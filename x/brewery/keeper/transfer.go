package keeper

import (
	"context"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"brewchain/x/brewery/types"
)

// safeRewardTransfer pays up to amount of the reward denom from the treasury.
// A shortfall is absorbed by paying whatever the treasury holds, so an
// underfunded treasury never blocks staking or withdrawals.
func (k Keeper) safeRewardTransfer(ctx context.Context, params types.Params, to sdk.AccAddress, amount math.Int) (math.Int, error) {
	if !amount.IsPositive() {
		return math.ZeroInt(), nil
	}
	available := k.bankKeeper.GetBalance(ctx, k.TreasuryAddress(), params.RewardDenom).Amount
	if amount.GT(available) {
		k.Logger(ctx).Info("treasury shortfall, paying available balance",
			"to", to.String(), "requested", amount.String(), "available", available.String())
		amount = available
	}
	if !amount.IsPositive() {
		return math.ZeroInt(), nil
	}
	coins := sdk.NewCoins(sdk.NewCoin(params.RewardDenom, amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.TreasuryName, to, coins); err != nil {
		return math.Int{}, err
	}
	return amount, nil
}

// transferIn pulls amount of denom from sender into custody and returns what
// custody actually gained, which is what gets credited.
func (k Keeper) transferIn(ctx context.Context, from sdk.AccAddress, denom string, amount math.Int) (math.Int, error) {
	custody := k.CustodyAddress()
	before := k.bankKeeper.GetBalance(ctx, custody, denom).Amount
	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, from, types.ModuleName, coins); err != nil {
		return math.Int{}, err
	}
	after := k.bankKeeper.GetBalance(ctx, custody, denom).Amount
	received := after.Sub(before)
	if received.IsNegative() {
		return math.ZeroInt(), nil
	}
	return received, nil
}

// transferOut releases staked assets from custody.
func (k Keeper) transferOut(ctx context.Context, to sdk.AccAddress, denom string, amount math.Int) error {
	if !amount.IsPositive() {
		return nil
	}
	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, to, coins)
}
