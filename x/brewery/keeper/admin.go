package keeper

import (
	"bytes"
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"brewchain/x/brewery/types"
)

func (k Keeper) checkAuthority(signer sdk.AccAddress) error {
	if !bytes.Equal(signer, k.authority) {
		expected, _ := k.addressCodec.BytesToString(k.authority)
		return errorsmod.Wrapf(types.ErrUnauthorized, "expected %s, got %s", expected, signer.String())
	}
	return nil
}

// AddPool appends a pool staking stakedDenom. A denom can back one pool only.
func (k Keeper) AddPool(ctx context.Context, signer sdk.AccAddress, allocPoint uint64, stakedDenom string, depositFeeBP uint32, brewingTime uint64) (uint64, error) {
	if err := k.checkAuthority(signer); err != nil {
		return 0, err
	}
	if err := types.ValidatePoolConfig(stakedDenom, depositFeeBP, brewingTime); err != nil {
		return 0, err
	}
	has, err := k.PoolByDenom.Has(ctx, stakedDenom)
	if err != nil {
		return 0, err
	}
	if has {
		return 0, errorsmod.Wrapf(types.ErrInvalidConfig, "denom %s already has a pool", stakedDenom)
	}

	if err := k.AccrueAll(ctx); err != nil {
		return 0, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return 0, err
	}
	total, err := k.GetTotalAllocPoint(ctx)
	if err != nil {
		return 0, err
	}

	lastRewardTime := k.now(ctx)
	if params.StartTime > lastRewardTime {
		lastRewardTime = params.StartTime
	}
	id, err := k.PoolSeq.Next(ctx)
	if err != nil {
		return 0, err
	}
	pool := types.NewPool(id, stakedDenom, allocPoint, depositFeeBP, brewingTime, lastRewardTime)
	if err := k.Pools.Set(ctx, id, pool); err != nil {
		return 0, err
	}
	if err := k.PoolByDenom.Set(ctx, stakedDenom, id); err != nil {
		return 0, err
	}
	if err := k.TotalAllocPoint.Set(ctx, total+allocPoint); err != nil {
		return 0, err
	}

	k.Logger(ctx).Info("pool added", "pool_id", id, "denom", stakedDenom, "alloc_point", allocPoint)
	emitPoolEvent(ctx, types.EventPoolAdded, pool)
	return id, nil
}

// SetPool changes a pool's weight, deposit fee and brewing time.
func (k Keeper) SetPool(ctx context.Context, signer sdk.AccAddress, poolID uint64, allocPoint uint64, depositFeeBP uint32, brewingTime uint64) error {
	if err := k.checkAuthority(signer); err != nil {
		return err
	}
	if err := types.ValidatePoolSettings(depositFeeBP, brewingTime); err != nil {
		return err
	}
	if _, err := k.GetPool(ctx, poolID); err != nil {
		return err
	}

	if err := k.AccrueAll(ctx); err != nil {
		return err
	}
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	total, err := k.GetTotalAllocPoint(ctx)
	if err != nil {
		return err
	}

	total = total - pool.AllocPoint + allocPoint
	pool.AllocPoint = allocPoint
	pool.DepositFeeBP = depositFeeBP
	pool.BrewingTime = brewingTime
	if err := k.Pools.Set(ctx, poolID, pool); err != nil {
		return err
	}
	if err := k.TotalAllocPoint.Set(ctx, total); err != nil {
		return err
	}

	k.Logger(ctx).Info("pool updated", "pool_id", poolID, "alloc_point", allocPoint, "deposit_fee_bp", depositFeeBP, "brewing_time", brewingTime)
	emitPoolEvent(ctx, types.EventPoolUpdated, pool)
	return nil
}

// SetRewardRate changes the global emission per second.
func (k Keeper) SetRewardRate(ctx context.Context, signer sdk.AccAddress, rate math.Int) error {
	if err := k.checkAuthority(signer); err != nil {
		return err
	}
	if rate.IsNil() || rate.IsNegative() {
		return errorsmod.Wrap(types.ErrInvalidAmount, "reward rate must be non-negative")
	}
	if err := k.AccrueAll(ctx); err != nil {
		return err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	params.RewardPerSecond = rate
	if err := k.Params.Set(ctx, params); err != nil {
		return err
	}
	k.Logger(ctx).Info("reward rate updated", "reward_per_second", rate.String())
	emitParamEvent(ctx, "reward_per_second", rate.String())
	return nil
}

// SetForfeitedDistributionBP changes the share of forfeitures returned to the
// pool. The cap is checked against the stored value, not the incoming one:
// an out-of-range value is accepted once and rejects every later change.
func (k Keeper) SetForfeitedDistributionBP(ctx context.Context, signer sdk.AccAddress, bp uint32) error {
	if err := k.checkAuthority(signer); err != nil {
		return err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if err := types.ValidateForfeitedDistributionBP(params.ForfeitedDistributionBP); err != nil {
		return err
	}
	params.ForfeitedDistributionBP = bp
	if err := k.Params.Set(ctx, params); err != nil {
		return err
	}
	k.Logger(ctx).Info("forfeited distribution updated", "bp", bp)
	emitParamEvent(ctx, "forfeited_distribution_bp", strconv.FormatUint(uint64(bp), 10))
	return nil
}

// SetDevAddress hands the dev share to a new address. Only the current dev
// address may call it.
func (k Keeper) SetDevAddress(ctx context.Context, sender, newAddr sdk.AccAddress) error {
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if sender.String() != params.DevAddress {
		return errorsmod.Wrap(types.ErrUnauthorized, "only the dev address can replace itself")
	}
	if newAddr.Empty() {
		return errorsmod.Wrap(types.ErrInvalidAddress, "new dev address is empty")
	}
	params.DevAddress = newAddr.String()
	if err := k.Params.Set(ctx, params); err != nil {
		return err
	}
	emitParamEvent(ctx, "dev_address", params.DevAddress)
	return nil
}

// SetFeeAddress moves the fee sink. Only the current fee address may call it.
func (k Keeper) SetFeeAddress(ctx context.Context, sender, newAddr sdk.AccAddress) error {
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if sender.String() != params.FeeAddress {
		return errorsmod.Wrap(types.ErrUnauthorized, "only the fee address can replace itself")
	}
	if newAddr.Empty() {
		return errorsmod.Wrap(types.ErrInvalidAddress, "new fee address is empty")
	}
	params.FeeAddress = newAddr.String()
	if err := k.Params.Set(ctx, params); err != nil {
		return err
	}
	emitParamEvent(ctx, "fee_address", params.FeeAddress)
	return nil
}

// SetStartTime moves emission start. It is only allowed before emission has
// started and the new start must still be in the future.
func (k Keeper) SetStartTime(ctx context.Context, signer sdk.AccAddress, startTime int64) error {
	if err := k.checkAuthority(signer); err != nil {
		return err
	}
	now := k.now(ctx)
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if now >= params.StartTime {
		return errorsmod.Wrapf(types.ErrInvalidConfig, "emission already started at %d", params.StartTime)
	}
	if startTime <= now {
		return errorsmod.Wrapf(types.ErrInvalidConfig, "start time %d is not in the future", startTime)
	}

	pools, err := k.GetPools(ctx)
	if err != nil {
		return err
	}
	for _, pool := range pools {
		pool.LastRewardTime = startTime
		if err := k.Pools.Set(ctx, pool.ID, pool); err != nil {
			return err
		}
	}
	params.StartTime = startTime
	if err := k.Params.Set(ctx, params); err != nil {
		return err
	}
	emitParamEvent(ctx, "start_time", strconv.FormatInt(startTime, 10))
	return nil
}

func emitPoolEvent(ctx context.Context, eventType string, pool types.Pool) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttrPoolID, strconv.FormatUint(pool.ID, 10)),
			sdk.NewAttribute(types.AttrDenom, pool.StakedDenom),
			sdk.NewAttribute(types.AttrAllocPoint, strconv.FormatUint(pool.AllocPoint, 10)),
			sdk.NewAttribute(types.AttrDepositFeeBP, strconv.FormatUint(uint64(pool.DepositFeeBP), 10)),
			sdk.NewAttribute(types.AttrBrewingTime, strconv.FormatUint(pool.BrewingTime, 10)),
		),
	)
}

func emitParamEvent(ctx context.Context, param, value string) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventParamsUpdated,
			sdk.NewAttribute(types.AttrParam, param),
			sdk.NewAttribute(types.AttrValue, value),
		),
	)
}
