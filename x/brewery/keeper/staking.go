package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"brewchain/x/brewery/types"
)

// Deposit settles the depositor's pending reward and stakes amount into the
// pool. A zero amount only harvests.
func (k Keeper) Deposit(ctx context.Context, poolID uint64, depositor sdk.AccAddress, amount math.Int) (types.DepositReceipt, error) {
	if amount.IsNil() || amount.IsNegative() {
		return types.DepositReceipt{}, errorsmod.Wrap(types.ErrInvalidAmount, "deposit amount must be non-negative")
	}
	pool, params, total, err := k.loadPool(ctx, poolID)
	if err != nil {
		return types.DepositReceipt{}, err
	}

	// Settle rewards before mutating stake.
	if err := k.accrue(ctx, &pool, params, total); err != nil {
		return types.DepositReceipt{}, err
	}
	user, err := k.GetUserInfo(ctx, poolID, depositor)
	if err != nil {
		return types.DepositReceipt{}, err
	}
	now := k.now(ctx)

	receipt := types.DepositReceipt{
		Received: math.ZeroInt(),
		Fee:      math.ZeroInt(),
		Harvest:  types.NewHarvest(),
	}
	if user.Amount.IsPositive() {
		receipt.Harvest, err = k.settle(ctx, &pool, params, depositor, user, pool.TotalStaked, now)
		if err != nil {
			return types.DepositReceipt{}, err
		}
	}

	user.DepositTime = types.NextDepositTime(user.Amount, amount, user.DepositTime, pool.BrewingTime, now)

	if amount.IsPositive() {
		received, err := k.transferIn(ctx, depositor, pool.StakedDenom, amount)
		if err != nil {
			return types.DepositReceipt{}, err
		}
		fee := types.DepositFee(received, pool.DepositFeeBP)
		if fee.IsPositive() {
			feeAddr, err := params.FeeAddr()
			if err != nil {
				return types.DepositReceipt{}, err
			}
			if err := k.transferOut(ctx, feeAddr, pool.StakedDenom, fee); err != nil {
				return types.DepositReceipt{}, err
			}
		}
		credited := received.Sub(fee)
		user.Amount = user.Amount.Add(credited)
		pool.TotalStaked = pool.TotalStaked.Add(credited)
		receipt.Received = received
		receipt.Fee = fee
	}
	user.RewardDebt = types.RewardDebtAt(user.Amount, pool.AccRewardPerShare)
	receipt.Staked = user.Amount

	if err := k.Pools.Set(ctx, poolID, pool); err != nil {
		return types.DepositReceipt{}, err
	}
	if err := k.setUserInfo(ctx, poolID, depositor, user); err != nil {
		return types.DepositReceipt{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventDeposit,
			sdk.NewAttribute(types.AttrPoolID, strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute(types.AttrUser, depositor.String()),
			sdk.NewAttribute(types.AttrAmount, amount.String()),
			sdk.NewAttribute(types.AttrReceived, receipt.Received.String()),
			sdk.NewAttribute(types.AttrDepositFee, receipt.Fee.String()),
		),
	)
	return receipt, nil
}

// Withdraw settles the depositor's pending reward and returns amount of stake.
// A zero amount only harvests. Any withdrawal restarts the vesting clock.
func (k Keeper) Withdraw(ctx context.Context, poolID uint64, depositor sdk.AccAddress, amount math.Int) (types.Harvest, error) {
	if amount.IsNil() || amount.IsNegative() {
		return types.Harvest{}, errorsmod.Wrap(types.ErrInvalidAmount, "withdraw amount must be non-negative")
	}
	pool, params, total, err := k.loadPool(ctx, poolID)
	if err != nil {
		return types.Harvest{}, err
	}
	user, err := k.GetUserInfo(ctx, poolID, depositor)
	if err != nil {
		return types.Harvest{}, err
	}
	if amount.GT(user.Amount) {
		return types.Harvest{}, errorsmod.Wrapf(types.ErrInsufficientBalance, "staked %s, requested %s", user.Amount, amount)
	}

	if err := k.accrue(ctx, &pool, params, total); err != nil {
		return types.Harvest{}, err
	}
	now := k.now(ctx)

	// The withdrawn amount is leaving, so it takes no part in the redistribution.
	harvest, err := k.settle(ctx, &pool, params, depositor, user, subFloor(pool.TotalStaked, amount), now)
	if err != nil {
		return types.Harvest{}, err
	}

	user.DepositTime = now
	user.Amount = user.Amount.Sub(amount)
	pool.TotalStaked = subFloor(pool.TotalStaked, amount)
	if err := k.transferOut(ctx, depositor, pool.StakedDenom, amount); err != nil {
		return types.Harvest{}, err
	}
	user.RewardDebt = types.RewardDebtAt(user.Amount, pool.AccRewardPerShare)

	if err := k.Pools.Set(ctx, poolID, pool); err != nil {
		return types.Harvest{}, err
	}
	if err := k.setUserInfo(ctx, poolID, depositor, user); err != nil {
		return types.Harvest{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventWithdraw,
			sdk.NewAttribute(types.AttrPoolID, strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute(types.AttrUser, depositor.String()),
			sdk.NewAttribute(types.AttrAmount, amount.String()),
		),
	)
	return harvest, nil
}

// EmergencyWithdraw returns the depositor's whole stake without any reward
// accounting. Pending rewards are abandoned.
func (k Keeper) EmergencyWithdraw(ctx context.Context, poolID uint64, depositor sdk.AccAddress) (math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, err
	}
	user, err := k.GetUserInfo(ctx, poolID, depositor)
	if err != nil {
		return math.Int{}, err
	}
	amount := user.Amount

	pool.TotalStaked = subFloor(pool.TotalStaked, amount)
	if err := k.setUserInfo(ctx, poolID, depositor, types.NewUserInfo()); err != nil {
		return math.Int{}, err
	}
	if err := k.Pools.Set(ctx, poolID, pool); err != nil {
		return math.Int{}, err
	}
	if err := k.transferOut(ctx, depositor, pool.StakedDenom, amount); err != nil {
		return math.Int{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventEmergencyWithdraw,
			sdk.NewAttribute(types.AttrPoolID, strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute(types.AttrUser, depositor.String()),
			sdk.NewAttribute(types.AttrAmount, amount.String()),
		),
	)
	return amount, nil
}

// settle splits the user's full pending reward at the pool's current
// accumulator, routes the forfeited part and pays the vested part.
func (k Keeper) settle(
	ctx context.Context,
	pool *types.Pool,
	params types.Params,
	depositor sdk.AccAddress,
	user types.UserInfo,
	remainingStaked math.Int,
	now int64,
) (types.Harvest, error) {
	full := user.PendingAt(pool.AccRewardPerShare)
	vested, forfeited := types.SplitVested(full, user.DepositTime, pool.BrewingTime, now)
	if forfeited.IsPositive() {
		if err := k.redistribute(ctx, pool, params, forfeited, remainingStaked); err != nil {
			return types.Harvest{}, err
		}
	}
	paid, err := k.safeRewardTransfer(ctx, params, depositor, vested)
	if err != nil {
		return types.Harvest{}, err
	}

	if vested.IsPositive() || forfeited.IsPositive() {
		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventHarvest,
				sdk.NewAttribute(types.AttrPoolID, strconv.FormatUint(pool.ID, 10)),
				sdk.NewAttribute(types.AttrUser, depositor.String()),
				sdk.NewAttribute(types.AttrVested, vested.String()),
				sdk.NewAttribute(types.AttrForfeited, forfeited.String()),
				sdk.NewAttribute(types.AttrPaid, paid.String()),
			),
		)
	}
	return types.Harvest{Vested: vested, Forfeited: forfeited, Paid: paid}, nil
}

// redistribute sends the fee share of a forfeiture to the fee address and
// folds the rest into the accumulator over remainingStaked. With nothing left
// staked the returned share stays in the treasury uncredited.
func (k Keeper) redistribute(ctx context.Context, pool *types.Pool, params types.Params, forfeited, remainingStaked math.Int) error {
	back, toFeeSink, err := types.SplitForfeit(forfeited, params.ForfeitedDistributionBP)
	if err != nil {
		return err
	}
	feeAddr, err := params.FeeAddr()
	if err != nil {
		return err
	}
	if _, err := k.safeRewardTransfer(ctx, params, feeAddr, toFeeSink); err != nil {
		return err
	}

	stranded := math.ZeroInt()
	if remainingStaked.IsPositive() {
		pool.AccRewardPerShare = pool.AccRewardPerShare.Add(types.AccPerShareDelta(back, remainingStaked))
	} else if back.IsPositive() {
		stranded = back
		k.Logger(ctx).Info("forfeited reward stranded, pool has no remaining stake",
			"pool_id", pool.ID, "amount", back.String())
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventForfeit,
			sdk.NewAttribute(types.AttrPoolID, strconv.FormatUint(pool.ID, 10)),
			sdk.NewAttribute(types.AttrForfeited, forfeited.String()),
			sdk.NewAttribute(types.AttrDistributedBack, back.String()),
			sdk.NewAttribute(types.AttrToFeeSink, toFeeSink.String()),
			sdk.NewAttribute(types.AttrStranded, stranded.String()),
		),
	)
	return nil
}

func (k Keeper) loadPool(ctx context.Context, poolID uint64) (types.Pool, types.Params, uint64, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.Pool{}, types.Params{}, 0, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.Pool{}, types.Params{}, 0, err
	}
	total, err := k.GetTotalAllocPoint(ctx)
	if err != nil {
		return types.Pool{}, types.Params{}, 0, err
	}
	return pool, params, total, nil
}

func subFloor(a, b math.Int) math.Int {
	if b.GTE(a) {
		return math.ZeroInt()
	}
	return a.Sub(b)
}
