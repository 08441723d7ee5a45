package app_test

import (
	"strings"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	"brewchain/app"
	"brewchain/x/brewery/types"
)

func TestAddressPrefix(t *testing.T) {
	addr := authtypes.NewModuleAddress(types.ModuleName).String()
	require.True(t, strings.HasPrefix(addr, app.AccountAddressPrefix+"1"), addr)
	require.Equal(t, app.BondDenom, sdk.DefaultBondDenom)
	require.Equal(t, types.DefaultRewardDenom, app.BondDenom)
}
