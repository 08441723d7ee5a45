package keeper

import (
	"context"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"brewchain/x/brewery/types"
)

func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	if err := k.SetParams(ctx, gs.Params); err != nil {
		return err
	}

	for _, p := range gs.Pools {
		if err := k.Pools.Set(ctx, p.ID, p); err != nil {
			return err
		}
		if err := k.PoolByDenom.Set(ctx, p.StakedDenom, p.ID); err != nil {
			return err
		}
	}
	if err := k.PoolSeq.Set(ctx, uint64(len(gs.Pools))); err != nil {
		return err
	}
	if err := k.TotalAllocPoint.Set(ctx, gs.TotalAllocPoint()); err != nil {
		return err
	}

	for _, u := range gs.Users {
		addr, err := sdk.AccAddressFromBech32(u.Address)
		if err != nil {
			return err
		}
		if err := k.setUserInfo(ctx, u.PoolID, addr, u.Info); err != nil {
			return err
		}
	}
	return nil
}

func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	pools, err := k.GetPools(ctx)
	if err != nil {
		return nil, err
	}
	gs := &types.GenesisState{Params: params, Pools: pools}

	err = k.Users.Walk(ctx, nil, func(key collections.Pair[uint64, sdk.AccAddress], info types.UserInfo) (bool, error) {
		gs.Users = append(gs.Users, types.UserRecord{PoolID: key.K1(), Address: key.K2().String(), Info: info})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return gs, nil
}
