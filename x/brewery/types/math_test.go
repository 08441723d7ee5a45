package types_test

import (
	"testing"

	math "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"brewchain/x/brewery/types"
)

func TestMultiplier(t *testing.T) {
	testCases := []struct {
		name            string
		from, to, start int64
		exp             uint64
	}{
		{"before start", 0, 50, 100, 0},
		{"straddles start", 50, 150, 100, 50},
		{"after start", 200, 260, 100, 60},
		{"no time passed", 300, 300, 0, 0},
		{"clock behind", 300, 200, 0, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.exp, types.Multiplier(tc.from, tc.to, tc.start))
		})
	}
}

func TestPoolReward(t *testing.T) {
	rate := math.NewInt(100)
	require.Equal(t, math.NewInt(50_000), types.PoolReward(500, rate, 10, 10))
	// 3 * 100 * 1 / 3 = 100, truncation applies after the product.
	require.Equal(t, math.NewInt(100), types.PoolReward(3, rate, 1, 3))
	require.Equal(t, math.NewInt(33), types.PoolReward(1, rate, 1, 3))
	require.True(t, types.PoolReward(10, rate, 1, 0).IsZero())
	require.True(t, types.PoolReward(10, rate, 0, 5).IsZero())
	require.Equal(t, math.NewInt(3), types.DevReward(math.NewInt(33)))
}

func TestSplitVested(t *testing.T) {
	full := math.NewInt(1_000)
	testCases := []struct {
		name         string
		depositTime  int64
		brewingTime  uint64
		now          int64
		expVested    int64
		expForfeited int64
	}{
		{"just deposited", 100, 1000, 100, 0, 1000},
		{"half brewed", 0, 1000, 500, 500, 500},
		{"truncates", 0, 3, 1, 333, 667},
		{"exactly matured", 0, 1000, 1000, 1000, 0},
		{"long matured", 0, 1000, 5000, 1000, 0},
		{"instant maturity", 10, 0, 10, 1000, 0},
		{"deposit time ahead of clock", 20, 1000, 10, 0, 1000},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vested, forfeited := types.SplitVested(full, tc.depositTime, tc.brewingTime, tc.now)
			require.Equal(t, math.NewInt(tc.expVested), vested)
			require.Equal(t, math.NewInt(tc.expForfeited), forfeited)
			require.Equal(t, full, vested.Add(forfeited))
		})
	}
}

func TestSplitForfeit(t *testing.T) {
	back, fee, err := types.SplitForfeit(math.NewInt(1_000), 9_500)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(950), back)
	require.Equal(t, math.NewInt(50), fee)

	back, fee, err = types.SplitForfeit(math.NewInt(7), 9_500)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(6), back)
	require.Equal(t, math.NewInt(1), fee)

	back, fee, err = types.SplitForfeit(math.NewInt(7), types.BasisPoints)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(7), back)
	require.True(t, fee.IsZero())

	_, _, err = types.SplitForfeit(math.NewInt(7), types.BasisPoints+1)
	require.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestNextDepositTime(t *testing.T) {
	testCases := []struct {
		name        string
		existing    int64
		deposit     int64
		depositTime int64
		brewingTime uint64
		now         int64
		exp         int64
	}{
		{"first deposit", 0, 500, 0, 1000, 42, 42},
		{"double top-up resets", 100, 200, 1000, 1000, 1500, 1500},
		{"more than double resets", 100, 350, 1000, 1000, 1500, 1500},
		{"matured small top-up", 1000, 100, 0, 1000, 5000, 4050},
		{"matured zero top-up stays matured", 1000, 0, 0, 1000, 5000, 4000},
		{"brewing small top-up advances", 1000, 100, 1000, 1000, 1200, 1050},
		{"brewing top-up clamps at now", 100, 199, 1000, 1000, 1010, 1010},
		{"brewing zero top-up keeps clock", 1000, 0, 1000, 1000, 1200, 1000},
		{"instant maturity", 1000, 100, 0, 0, 500, 500},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := types.NextDepositTime(math.NewInt(tc.existing), math.NewInt(tc.deposit), tc.depositTime, tc.brewingTime, tc.now)
			require.Equal(t, tc.exp, got)
			require.LessOrEqual(t, got, tc.now)
		})
	}
}

func TestPendingReward(t *testing.T) {
	params := types.DefaultParams()
	params.RewardPerSecond = math.NewInt(100)

	pool := types.NewPool(0, "ulp", 10, 0, 1000, 0)
	pool.TotalStaked = math.NewInt(1_000)

	user := types.NewUserInfo()
	user.Amount = math.NewInt(1_000)

	// 500s * 100/s over 1000 staked, half vested.
	require.Equal(t, math.NewInt(25_000), types.PendingReward(pool, user, params, 10, 500))
	// Matured: everything is claimable.
	require.Equal(t, math.NewInt(100_000), types.PendingReward(pool, user, params, 10, 1000))
	// Projection does not move the stored accumulator.
	require.True(t, pool.AccRewardPerShare.IsZero())

	// Deposit time now: nothing vested yet.
	user.DepositTime = 1000
	require.True(t, types.PendingReward(pool, user, params, 10, 1000).IsZero())

	// Empty registry weight projects no accrual.
	user.DepositTime = 0
	require.True(t, types.PendingReward(pool, user, params, 0, 1000).IsZero())
}

func TestUserPendingAt(t *testing.T) {
	u := types.NewUserInfo()
	u.Amount = math.NewInt(3)
	u.RewardDebt = math.NewInt(1)
	// 3 * 2e12 / 1e12 - 1
	require.Equal(t, math.NewInt(5), u.PendingAt(math.NewInt(2_000_000_000_000)))
	require.True(t, u.PendingAt(math.ZeroInt()).IsZero())
}
