package module

import (
	"encoding/json"

	"cosmossdk.io/core/appmodule"
	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	brewerycli "brewchain/x/brewery/client/cli"
	"brewchain/x/brewery/client/rest"
	"brewchain/x/brewery/keeper"
	"brewchain/x/brewery/types"
)

// AppModuleBasic defines the basic application module used by the brewery module.
type AppModuleBasic struct{}

func (AppModuleBasic) Name() string { return types.ModuleName }

func (AppModuleBasic) RegisterLegacyAminoCodec(_ *codec.LegacyAmino) {}

func (AppModuleBasic) RegisterInterfaces(_ codectypes.InterfaceRegistry) {}

func (AppModuleBasic) DefaultGenesis(_ codec.JSONCodec) json.RawMessage {
	bz, _ := json.Marshal(types.DefaultGenesis())
	return bz
}

func (AppModuleBasic) ValidateGenesis(_ codec.JSONCodec, _ client.TxEncodingConfig, bz json.RawMessage) error {
	if len(bz) == 0 {
		return nil
	}
	var gs types.GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return err
	}
	return gs.Validate()
}

func (AppModuleBasic) GetTxCmd() *cobra.Command { return nil }

func (AppModuleBasic) GetQueryCmd() *cobra.Command {
	return brewerycli.GetQueryCmd()
}

// AppModule implements an application module for the brewery module.
type AppModule struct {
	AppModuleBasic
	keeper keeper.Keeper
}

// IsAppModule marks compatibility with appmodule wiring helpers.
func (AppModule) IsAppModule() {}

var _ appmodule.AppModule = AppModule{}
var _ module.HasName = AppModule{}

func NewAppModule(k keeper.Keeper) AppModule {
	return AppModule{keeper: k}
}

// RegisterRESTRoutes mounts the read-only query routes on r.
func (am AppModule) RegisterRESTRoutes(r *mux.Router, ctxFn rest.ContextFunc) {
	rest.RegisterRoutes(r, am.keeper, ctxFn)
}

func (am AppModule) InitGenesis(ctx sdk.Context, _ codec.JSONCodec, data json.RawMessage) []abci.ValidatorUpdate {
	gs := types.DefaultGenesis()
	if len(data) > 0 {
		if err := json.Unmarshal(data, gs); err != nil {
			panic(err)
		}
	}
	if err := am.keeper.InitGenesis(ctx, *gs); err != nil {
		panic(err)
	}
	return nil
}

func (am AppModule) ExportGenesis(ctx sdk.Context, _ codec.JSONCodec) json.RawMessage {
	gs, err := am.keeper.ExportGenesis(ctx)
	if err != nil {
		panic(err)
	}
	bz, err := json.Marshal(gs)
	if err != nil {
		panic(err)
	}
	return bz
}

func (am AppModule) ConsensusVersion() uint64 { return 1 }

// RegisterInvariants implements the InvariantRegistry.
func (am AppModule) RegisterInvariants(ir sdk.InvariantRegistry) {
	keeper.RegisterInvariants(ir, am.keeper)
}
