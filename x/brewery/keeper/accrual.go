package keeper

import (
	"context"
	"strconv"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"brewchain/x/brewery/types"
)

// accrue brings pool's accumulator up to the current block time, minting the
// pool's reward into the treasury and the dev share to the dev address. The
// pool is updated in place and must be persisted by the caller.
func (k Keeper) accrue(ctx context.Context, pool *types.Pool, params types.Params, totalAllocPoint uint64) error {
	now := k.now(ctx)
	if now <= pool.LastRewardTime {
		return nil
	}
	if !pool.TotalStaked.IsPositive() || totalAllocPoint == 0 {
		pool.LastRewardTime = now
		return nil
	}

	multiplier := types.Multiplier(pool.LastRewardTime, now, params.StartTime)
	reward := types.PoolReward(multiplier, params.RewardPerSecond, pool.AllocPoint, totalAllocPoint)
	if reward.IsPositive() {
		devReward, err := k.mintRewards(ctx, params, reward)
		if err != nil {
			return err
		}
		pool.AccRewardPerShare = pool.AccRewardPerShare.Add(types.AccPerShareDelta(reward, pool.TotalStaked))

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventAccrue,
				sdk.NewAttribute(types.AttrPoolID, strconv.FormatUint(pool.ID, 10)),
				sdk.NewAttribute(types.AttrReward, reward.String()),
				sdk.NewAttribute(types.AttrDevReward, devReward.String()),
				sdk.NewAttribute(types.AttrAccPerShare, pool.AccRewardPerShare.String()),
			),
		)
	}
	pool.LastRewardTime = now
	return nil
}

// mintRewards mints reward plus the dev share into the treasury and forwards
// the dev share.
func (k Keeper) mintRewards(ctx context.Context, params types.Params, reward math.Int) (math.Int, error) {
	devReward := types.DevReward(reward)
	minted := sdk.NewCoins(sdk.NewCoin(params.RewardDenom, reward.Add(devReward)))
	if err := k.bankKeeper.MintCoins(ctx, types.TreasuryName, minted); err != nil {
		return math.Int{}, err
	}
	if !devReward.IsPositive() {
		return devReward, nil
	}
	devAddr, err := params.DevAddr()
	if err != nil {
		return math.Int{}, err
	}
	dev := sdk.NewCoins(sdk.NewCoin(params.RewardDenom, devReward))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.TreasuryName, devAddr, dev); err != nil {
		return math.Int{}, err
	}
	return devReward, nil
}

// Accrue updates a single pool. Calling it again in the same block is a no-op.
func (k Keeper) Accrue(ctx context.Context, poolID uint64) error {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	total, err := k.GetTotalAllocPoint(ctx)
	if err != nil {
		return err
	}
	if err := k.accrue(ctx, &pool, params, total); err != nil {
		return err
	}
	return k.Pools.Set(ctx, poolID, pool)
}

// AccrueAll updates every pool. Admin operations call it before touching
// weights or rates so already elapsed time is paid at the old settings.
func (k Keeper) AccrueAll(ctx context.Context) error {
	pools, err := k.GetPools(ctx)
	if err != nil {
		return err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	total, err := k.GetTotalAllocPoint(ctx)
	if err != nil {
		return err
	}
	for i := range pools {
		if err := k.accrue(ctx, &pools[i], params, total); err != nil {
			return err
		}
		if err := k.Pools.Set(ctx, pools[i].ID, pools[i]); err != nil {
			return err
		}
	}
	return nil
}
