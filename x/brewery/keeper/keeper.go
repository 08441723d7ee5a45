package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"brewchain/x/brewery/types"
)

type Keeper struct {
	storeService store.KVStoreService
	addressCodec address.Codec
	bankKeeper   types.BankKeeper

	// authority is the address allowed to add pools and change rates.
	authority []byte

	Schema collections.Schema

	Params          collections.Item[types.Params]
	TotalAllocPoint collections.Item[uint64]
	PoolSeq         collections.Sequence
	Pools           collections.Map[uint64, types.Pool]
	PoolByDenom     collections.Map[string, uint64]
	Users           collections.Map[collections.Pair[uint64, sdk.AccAddress], types.UserInfo]
}

func NewKeeper(
	storeService store.KVStoreService,
	addressCodec address.Codec,
	authority []byte,
	bankKeeper types.BankKeeper,
) Keeper {
	if _, err := addressCodec.BytesToString(authority); err != nil {
		panic(fmt.Sprintf("invalid authority address %x: %s", authority, err))
	}

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		storeService: storeService,
		addressCodec: addressCodec,
		bankKeeper:   bankKeeper,
		authority:    authority,

		Params:          collections.NewItem(sb, types.ParamsKey, "params", paramsValueCodec),
		TotalAllocPoint: collections.NewItem(sb, types.TotalAllocPointKey, "total_alloc_point", collections.Uint64Value),
		PoolSeq:         collections.NewSequence(sb, types.PoolSeqKey, "pool_seq"),
		Pools:           collections.NewMap(sb, types.PoolKeyPrefix, "pools", collections.Uint64Key, poolValueCodec),
		PoolByDenom:     collections.NewMap(sb, types.PoolByDenomKeyPrefix, "pool_by_denom", collections.StringKey, collections.Uint64Value),
		Users:           collections.NewMap(sb, types.UserInfoKeyPrefix, "users", types.UserKeyCodec, userValueCodec),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

func (k Keeper) Authority() []byte { return k.authority }

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// CustodyAddress holds every pool's staked assets.
func (k Keeper) CustodyAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
}

// TreasuryAddress holds minted rewards until they are paid out.
func (k Keeper) TreasuryAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.TreasuryName)
}

// now is the host clock in unix seconds.
func (k Keeper) now(ctx context.Context) int64 {
	return sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
}

func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	p, err := k.Params.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.DefaultParams(), nil
		}
		return types.Params{}, err
	}
	return p, nil
}

func (k Keeper) SetParams(ctx context.Context, p types.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return k.Params.Set(ctx, p)
}

func (k Keeper) GetTotalAllocPoint(ctx context.Context) (uint64, error) {
	v, err := k.TotalAllocPoint.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}

// GetPool returns the pool at index poolID.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	p, err := k.Pools.Get(ctx, poolID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Pool{}, errorsmod.Wrapf(types.ErrPoolNotFound, "pool %d", poolID)
		}
		return types.Pool{}, err
	}
	return p, nil
}

// GetPools returns every pool in registry order.
func (k Keeper) GetPools(ctx context.Context) ([]types.Pool, error) {
	iter, err := k.Pools.Iterate(ctx, nil)
	if err != nil {
		return nil, err
	}
	return iter.Values()
}

// PoolLength is the number of registered pools.
func (k Keeper) PoolLength(ctx context.Context) (uint64, error) {
	return k.PoolSeq.Peek(ctx)
}

// GetUserInfo returns the user's position in a pool, empty when none exists.
func (k Keeper) GetUserInfo(ctx context.Context, poolID uint64, user sdk.AccAddress) (types.UserInfo, error) {
	v, err := k.Users.Get(ctx, collections.Join(poolID, user))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.NewUserInfo(), nil
		}
		return types.UserInfo{}, err
	}
	return v, nil
}

func (k Keeper) setUserInfo(ctx context.Context, poolID uint64, user sdk.AccAddress, info types.UserInfo) error {
	return k.Users.Set(ctx, collections.Join(poolID, user), info)
}

// PendingReward is the vested reward the user would be paid by a deposit or
// withdrawal executed in the current block.
func (k Keeper) PendingReward(ctx context.Context, poolID uint64, user sdk.AccAddress) (math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, err
	}
	info, err := k.GetUserInfo(ctx, poolID, user)
	if err != nil {
		return math.Int{}, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return math.Int{}, err
	}
	total, err := k.GetTotalAllocPoint(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return types.PendingReward(pool, info, params, total, k.now(ctx)), nil
}

// Multiplier returns the reward-bearing seconds between from and to.
func (k Keeper) Multiplier(ctx context.Context, from, to int64) (uint64, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return 0, err
	}
	return types.Multiplier(from, to, params.StartTime), nil
}

// sumPositions adds up every user's stake in a pool.
func (k Keeper) sumPositions(ctx context.Context, poolID uint64) (math.Int, error) {
	sum := math.ZeroInt()
	rng := collections.NewPrefixedPairRange[uint64, sdk.AccAddress](poolID)
	err := k.Users.Walk(ctx, rng, func(_ collections.Pair[uint64, sdk.AccAddress], info types.UserInfo) (bool, error) {
		sum = sum.Add(info.Amount)
		return false, nil
	})
	return sum, err
}
