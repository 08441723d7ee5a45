package types_test

import (
	"testing"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"brewchain/x/brewery/types"
)

func TestGenesisValidate(t *testing.T) {
	addr := sdk.AccAddress([]byte("genesis_user_______")).String()
	user := types.NewUserInfo()
	user.Amount = math.NewInt(10)

	testCases := []struct {
		name   string
		mutate func(gs *types.GenesisState)
		expErr string
	}{
		{"default", func(*types.GenesisState) {}, ""},
		{"valid pools and users", func(gs *types.GenesisState) {
			gs.Pools = []types.Pool{types.NewPool(0, "ulp", 10, 0, 100, 0), types.NewPool(1, "uatom", 5, 400, 0, 0)}
			gs.Users = []types.UserRecord{{PoolID: 1, Address: addr, Info: user}}
		}, ""},
		{"fee above cap", func(gs *types.GenesisState) {
			gs.Pools = []types.Pool{types.NewPool(0, "ulp", 10, 501, 100, 0)}
		}, "deposit fee"},
		{"duplicate denom", func(gs *types.GenesisState) {
			gs.Pools = []types.Pool{types.NewPool(0, "ulp", 10, 0, 100, 0), types.NewPool(1, "ulp", 10, 0, 100, 0)}
		}, "duplicate staked denom"},
		{"out of order id", func(gs *types.GenesisState) {
			gs.Pools = []types.Pool{types.NewPool(3, "ulp", 10, 0, 100, 0)}
		}, "has id 3"},
		{"user of unknown pool", func(gs *types.GenesisState) {
			gs.Users = []types.UserRecord{{PoolID: 0, Address: addr, Info: user}}
		}, "unknown pool"},
		{"distribution bp at cap", func(gs *types.GenesisState) {
			gs.Params.ForfeitedDistributionBP = types.BasisPoints
		}, ""},
		{"distribution bp above cap", func(gs *types.GenesisState) {
			gs.Params.ForfeitedDistributionBP = 2 * types.BasisPoints
		}, ""},
		{"negative rate", func(gs *types.GenesisState) {
			gs.Params.RewardPerSecond = math.NewInt(-1)
		}, "negative"},
		{"bad fee address", func(gs *types.GenesisState) {
			gs.Params.FeeAddress = "nope"
		}, "fee_address"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gs := types.DefaultGenesis()
			tc.mutate(gs)
			err := gs.Validate()
			if tc.expErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.expErr)
		})
	}
}

func TestGenesisTotalAllocPoint(t *testing.T) {
	gs := types.GenesisState{Pools: []types.Pool{types.NewPool(0, "ulp", 10, 0, 0, 0), types.NewPool(1, "uatom", 32, 0, 0, 0)}}
	require.Equal(t, uint64(42), gs.TotalAllocPoint())
}
