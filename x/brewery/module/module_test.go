package module_test

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/depinject"
	math "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	"brewchain/x/brewery/keeper"
	"brewchain/x/brewery/module"
	brewtestutil "brewchain/x/brewery/testutil"
	"brewchain/x/brewery/types"
)

func newModule(t *testing.T) (sdk.Context, keeper.Keeper, module.AppModule) {
	t.Helper()
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	storeService := runtime.NewKVStoreService(storeKey)
	ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx
	bank := brewtestutil.NewBank(storeService)

	var (
		k    keeper.Keeper
		mods map[string]module.AppModule
	)
	err := depinject.Inject(
		depinject.Configs(
			depinject.ProvideInModule(types.ModuleName, module.ProvideModule),
			depinject.Supply(
				storeService,
				addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
				bank,
				module.ModuleConfig{Authority: types.GovModuleName},
			),
		),
		&k, &mods,
	)
	require.NoError(t, err)

	am, ok := mods[types.ModuleName]
	require.True(t, ok)
	return ctx, k, am
}

func TestProvideAndGenesisRoundTrip(t *testing.T) {
	ctx, k, am := newModule(t)
	require.Equal(t, []byte(authtypes.NewModuleAddress(types.GovModuleName)), k.Authority())

	alice := authtypes.NewModuleAddress("alice")
	gs := types.DefaultGenesis()
	gs.Pools = []types.Pool{types.NewPool(0, "ustake", 10, 50, 600, 0)}
	gs.Pools[0].TotalStaked = math.NewInt(9)
	gs.Users = []types.UserRecord{{
		PoolID:  0,
		Address: alice.String(),
		Info:    types.UserInfo{Amount: math.NewInt(9), DepositTime: 0, RewardDebt: math.ZeroInt()},
	}}
	bz, err := json.Marshal(gs)
	require.NoError(t, err)
	require.NoError(t, am.ValidateGenesis(nil, nil, bz))

	am.InitGenesis(ctx, nil, bz)
	exported := am.ExportGenesis(ctx, nil)
	require.JSONEq(t, string(bz), string(exported))
}

func TestDefaultGenesisValidates(t *testing.T) {
	var basic module.AppModuleBasic
	bz := basic.DefaultGenesis(nil)
	require.NoError(t, basic.ValidateGenesis(nil, nil, bz))
	require.NoError(t, basic.ValidateGenesis(nil, nil, nil))
	require.Error(t, basic.ValidateGenesis(nil, nil, json.RawMessage(`{"params":{"reward_denom":""}}`)))
}

func TestInitGenesisEmptyUsesDefaults(t *testing.T) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	storeService := runtime.NewKVStoreService(storeKey)
	ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx

	k := keeper.NewKeeper(storeService,
		addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		authtypes.NewModuleAddress(types.GovModuleName),
		brewtestutil.NewBank(storeService))
	am := module.NewAppModule(k)
	am.InitGenesis(ctx, nil, nil)

	params, err := k.GetParams(ctx)
	require.NoError(t, err)
	require.Equal(t, types.DefaultRewardDenom, params.RewardDenom)
	require.Equal(t, uint64(1), am.ConsensusVersion())
}

func TestExportedFullReturnSplitImports(t *testing.T) {
	ctx, k, am := newModule(t)
	authority := authtypes.NewModuleAddress(types.GovModuleName)
	require.NoError(t, k.SetParams(ctx, types.DefaultParams()))
	require.NoError(t, k.SetForfeitedDistributionBP(ctx, authority, types.BasisPoints))

	exported := am.ExportGenesis(ctx, nil)
	require.NoError(t, am.ValidateGenesis(nil, nil, exported))

	freshCtx, freshKeeper, fresh := newModule(t)
	require.NotPanics(t, func() { fresh.InitGenesis(freshCtx, nil, exported) })
	params, err := freshKeeper.GetParams(freshCtx)
	require.NoError(t, err)
	require.Equal(t, uint32(types.BasisPoints), params.ForfeitedDistributionBP)
	require.JSONEq(t, string(exported), string(fresh.ExportGenesis(freshCtx, nil)))
}
