package keeper_test

import (
	"testing"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"brewchain/x/brewery/keeper"
	"brewchain/x/brewery/types"
)

func TestInvariantsHold(t *testing.T) {
	f := initFixture(t)
	id := f.brewPool(t, 100, 10, 100, 1000)
	_, err := f.keeper.AddPool(f.ctx, f.authority, 30, "uother", 0, 0)
	require.NoError(t, err)

	alice, bob := user("alice"), user("bob")
	f.fund(t, alice, stakeDenom, 5000)
	f.fund(t, bob, stakeDenom, 5000)

	_, err = f.keeper.Deposit(f.ctx, id, alice, math.NewInt(3000))
	require.NoError(t, err)
	f.at(120)
	_, err = f.keeper.Deposit(f.ctx, id, bob, math.NewInt(2000))
	require.NoError(t, err)
	f.at(400)
	_, err = f.keeper.Withdraw(f.ctx, id, alice, math.NewInt(1234))
	require.NoError(t, err)
	_, err = f.keeper.EmergencyWithdraw(f.ctx, id, bob)
	require.NoError(t, err)

	msg, broken := keeper.AllocPointInvariant(f.keeper)(f.ctx)
	require.False(t, broken, msg)
	msg, broken = keeper.CustodyInvariant(f.keeper)(f.ctx)
	require.False(t, broken, msg)
}

func TestCustodyInvariantDetectsShortfall(t *testing.T) {
	f := initFixture(t)
	id := f.brewPool(t, 0, 10, 0, 0)

	alice := user("alice")
	f.fund(t, alice, stakeDenom, 100)
	_, err := f.keeper.Deposit(f.ctx, id, alice, math.NewInt(100))
	require.NoError(t, err)

	require.NoError(t, f.bank.SendCoinsFromModuleToAccount(f.ctx, types.ModuleName, alice,
		sdk.NewCoins(sdk.NewInt64Coin(stakeDenom, 1))))

	_, broken := keeper.CustodyInvariant(f.keeper)(f.ctx)
	require.True(t, broken)
}
