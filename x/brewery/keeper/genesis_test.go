package keeper_test

import (
	"encoding/json"
	"testing"

	math "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"brewchain/x/brewery/types"
)

func TestGenesis(t *testing.T) {
	alice := user("alice")
	genesisState := types.GenesisState{
		Params: types.DefaultParams(),
		Pools: []types.Pool{
			types.NewPool(0, "ua", 10, 0, 100, 5),
			types.NewPool(1, "ub", 30, 200, 0, 5),
		},
		Users: []types.UserRecord{
			{
				PoolID:  1,
				Address: alice.String(),
				Info: types.UserInfo{
					Amount:      math.NewInt(700),
					DepositTime: 3,
					RewardDebt:  math.NewInt(12),
				},
			},
		},
	}
	genesisState.Pools[1].TotalStaked = math.NewInt(700)

	f := initFixture(t)
	require.NoError(t, f.keeper.InitGenesis(f.ctx, genesisState))

	total, err := f.keeper.GetTotalAllocPoint(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(40), total)

	n, err := f.keeper.PoolLength(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), n)

	got, err := f.keeper.ExportGenesis(f.ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	want, err := json.Marshal(genesisState)
	require.NoError(t, err)
	exported, err := json.Marshal(got)
	require.NoError(t, err)
	require.JSONEq(t, string(want), string(exported))

	// The next pool continues the imported sequence.
	id, err := f.keeper.AddPool(f.ctx, f.authority, 1, "uc", 0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(2), id)

	_, err = f.keeper.AddPool(f.ctx, f.authority, 1, "ua", 0, 0)
	require.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestInitGenesisRejectsInvalidState(t *testing.T) {
	f := initFixture(t)
	gs := types.GenesisState{
		Params: types.DefaultParams(),
		Pools:  []types.Pool{types.NewPool(3, "ua", 10, 0, 0, 0)},
	}
	require.Error(t, f.keeper.InitGenesis(f.ctx, gs))
}

func TestGenesisRoundTripKeepsStoredDistribution(t *testing.T) {
	for _, bp := range []uint32{types.BasisPoints, 2 * types.BasisPoints} {
		f := initFixture(t)
		id := f.brewPool(t, 100, 10, 0, 1000)
		alice := user("alice")
		f.fund(t, alice, stakeDenom, 1000)
		_, err := f.keeper.Deposit(f.ctx, id, alice, math.NewInt(1000))
		require.NoError(t, err)

		require.NoError(t, f.keeper.SetForfeitedDistributionBP(f.ctx, f.authority, bp))

		exported, err := f.keeper.ExportGenesis(f.ctx)
		require.NoError(t, err)
		require.Equal(t, bp, exported.Params.ForfeitedDistributionBP)
		require.NoError(t, exported.Validate())

		g := initFixture(t)
		require.NoError(t, g.keeper.InitGenesis(g.ctx, *exported))

		params, err := g.keeper.GetParams(g.ctx)
		require.NoError(t, err)
		require.Equal(t, bp, params.ForfeitedDistributionBP)

		reexported, err := g.keeper.ExportGenesis(g.ctx)
		require.NoError(t, err)
		want, err := json.Marshal(exported)
		require.NoError(t, err)
		got, err := json.Marshal(reexported)
		require.NoError(t, err)
		require.JSONEq(t, string(want), string(got))
	}
}
