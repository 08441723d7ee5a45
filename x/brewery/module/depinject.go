package module

import (
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/store"
	"cosmossdk.io/depinject"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"brewchain/x/brewery/keeper"
	"brewchain/x/brewery/types"
)

var _ depinject.OnePerModuleType = AppModule{}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface.
func (AppModule) IsOnePerModuleType() {}

// ModuleConfig carries the wiring options of the brewery module.
type ModuleConfig struct {
	// Authority is a bech32 address or a module name. Defaults to gov.
	Authority string
}

type ModuleInputs struct {
	depinject.In

	Config       ModuleConfig `optional:"true"`
	StoreService store.KVStoreService
	AddressCodec address.Codec
	BankKeeper   types.BankKeeper
}

type ModuleOutputs struct {
	depinject.Out

	BreweryKeeper keeper.Keeper
	Module        AppModule
}

func ProvideModule(in ModuleInputs) ModuleOutputs {
	authority := authtypes.NewModuleAddress(types.GovModuleName)
	if in.Config.Authority != "" {
		if addr, err := sdk.AccAddressFromBech32(in.Config.Authority); err == nil {
			authority = addr
		} else {
			authority = authtypes.NewModuleAddress(in.Config.Authority)
		}
	}

	k := keeper.NewKeeper(in.StoreService, in.AddressCodec, authority, in.BankKeeper)
	m := NewAppModule(k)
	return ModuleOutputs{BreweryKeeper: k, Module: m}
}
