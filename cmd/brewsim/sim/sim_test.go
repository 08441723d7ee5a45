package sim_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cosmossdk.io/log"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"brewchain/cmd/brewsim/sim"
	"brewchain/x/brewery/types"
)

func runScenario(t *testing.T, path string) (sim.Report, *sim.Host) {
	t.Helper()
	s, err := sim.LoadScenario(path)
	require.NoError(t, err)

	host, err := sim.NewHost(log.NewNopLogger(), s.Authority)
	require.NoError(t, err)

	r := sim.NewRunner(host, s, log.NewNopLogger())
	require.NoError(t, r.Init())
	rep, err := r.Run()
	require.NoError(t, err)
	return rep, host
}

func TestBrewingScenario(t *testing.T) {
	rep, host := runScenario(t, filepath.Join("testdata", "brewing.yaml"))

	require.Equal(t, "half-brewed harvest", rep.Scenario)
	require.Zero(t, rep.Mismatches)
	require.Empty(t, rep.Invariants)
	require.Len(t, rep.Steps, 8)

	require.Equal(t, "0", rep.Steps[0].Result["pool_id"])
	require.Equal(t, "25000", rep.Steps[2].Result["pending"])
	require.Equal(t, "25000", rep.Steps[3].Result["vested"])
	require.Equal(t, "25000", rep.Steps[3].Result["forfeited"])
	require.False(t, rep.Steps[5].OK)
	require.Contains(t, rep.Steps[5].Error, "insufficient")
	require.False(t, rep.Steps[6].OK)
	require.Equal(t, "1000", rep.Steps[7].Result["amount"])

	require.Len(t, rep.Pools, 1)
	require.Equal(t, "123750000000", rep.Pools[0].AccRewardPerShare)
	require.Equal(t, "1000", rep.Pools[0].TotalStaked)

	require.Equal(t, 2, rep.Events[types.EventAccrue])
	require.Equal(t, 1, rep.Events[types.EventForfeit])
	require.Equal(t, 1, rep.Events[types.EventEmergencyWithdraw])

	var aliceReward string
	for _, b := range rep.Balances {
		if b.Account == "alice" && b.Denom == types.DefaultRewardDenom {
			aliceReward = b.Amount
		}
	}
	require.Equal(t, "25000", aliceReward)
	require.Equal(t, int64(1500), host.Now())
}

func TestFailedBlockIsDiscarded(t *testing.T) {
	host, err := sim.NewHost(log.NewNopLogger(), "")
	require.NoError(t, err)

	authority := sim.AccountAddress(sim.AuthorityName, "")
	alice, bob := sim.AccountAddress("alice", ""), sim.AccountAddress("bob", "")

	_, err = host.Exec(0, func(ctx sdk.Context) error {
		if err := host.Keeper.InitGenesis(ctx, *types.DefaultGenesis()); err != nil {
			return err
		}
		if err := host.Keeper.SetRewardRate(ctx, authority, math.NewInt(10)); err != nil {
			return err
		}
		if _, err := host.Keeper.AddPool(ctx, authority, 1, "ustake", 0, 0); err != nil {
			return err
		}
		if err := host.Bank.Fund(ctx, bob, sdk.NewCoins(sdk.NewInt64Coin("ustake", 100))); err != nil {
			return err
		}
		_, err := host.Keeper.Deposit(ctx, 0, bob, math.NewInt(100))
		return err
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), host.Height())

	// Accrual mints before the unfunded transfer fails.
	_, err = host.Exec(10, func(ctx sdk.Context) error {
		_, err := host.Keeper.Deposit(ctx, 0, alice, math.NewInt(5))
		return err
	})
	require.Error(t, err)
	require.Equal(t, int64(1), host.Height())
	require.Equal(t, int64(0), host.Now())

	require.NoError(t, host.Query(10, func(ctx sdk.Context) error {
		require.True(t, host.Bank.GetSupply(ctx, types.DefaultRewardDenom).IsZero())
		pool, err := host.Keeper.GetPool(ctx, 0)
		require.NoError(t, err)
		require.Equal(t, int64(0), pool.LastRewardTime)
		return nil
	}))

	_, err = host.Exec(-1, func(sdk.Context) error { return nil })
	require.Error(t, err)
}

func TestReportEncoding(t *testing.T) {
	rep, _ := runScenario(t, filepath.Join("testdata", "brewing.yaml"))

	var buf bytes.Buffer
	require.NoError(t, rep.Encode(&buf, sim.FormatJSON))
	var fromJSON sim.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	require.Equal(t, rep.Pools, fromJSON.Pools)

	buf.Reset()
	require.NoError(t, rep.Encode(&buf, sim.FormatYAML))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	require.Equal(t, "half-brewed harvest", fromYAML["scenario"])

	require.Error(t, rep.Encode(&buf, "toml"))
}

func TestLoadScenarioRejects(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"backwards time", "steps:\n  - {at: 10, action: accrue}\n  - {at: 5, action: accrue}\n"},
		{"unknown action", "steps:\n  - {at: 0, action: brew}\n"},
		{"unknown field", "steps:\n  - {at: 0, action: accrue, colour: amber}\n"},
		{"bad balance", "accounts:\n  alice:\n    ustake: lots\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o600))
			_, err := sim.LoadScenario(path)
			require.Error(t, err)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      any
		want    string
		wantErr bool
	}{
		{in: 42, want: "42"},
		{in: "1000000000000000000000", want: "1000000000000000000000"},
		{in: " 7 ", want: "7"},
		{in: "1.5", wantErr: true},
		{in: []int{1}, wantErr: true},
	}
	for _, tc := range tests {
		got, err := sim.ParseAmount(tc.in)
		if tc.wantErr {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tc.want, got.String())
	}
}
