package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/depinject"
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"brewchain/x/brewery/keeper"
	"brewchain/x/brewery/module"
	brewtestutil "brewchain/x/brewery/testutil"
	"brewchain/x/brewery/types"
)

// Host runs the brewery keeper on an in-memory multistore. Every Exec runs in
// its own cache and is committed as one block only when it succeeds.
type Host struct {
	mu sync.Mutex

	cms    storetypes.CommitMultiStore
	logger log.Logger

	Keeper keeper.Keeper
	Module module.AppModule
	Bank   *brewtestutil.Bank

	height int64
	now    int64
}

func NewHost(logger log.Logger, authority string) (*Host, error) {
	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, nil)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}

	storeService := runtime.NewKVStoreService(storeKey)
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
				module.ModuleConfig{Authority: authority},
			),
		),
		&k, &mods,
	)
	if err != nil {
		return nil, fmt.Errorf("wire brewery module: %w", err)
	}

	return &Host{
		cms:    cms,
		logger: logger,
		Keeper: k,
		Module: mods[types.ModuleName],
		Bank:   bank,
	}, nil
}

// Now is the time of the last committed block.
func (h *Host) Now() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

// Height is the number of committed blocks.
func (h *Host) Height() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.height
}

// Exec runs fn in a block at unix time at. State and events are kept only if
// fn succeeds.
func (h *Host) Exec(at int64, fn func(ctx sdk.Context) error) (sdk.Events, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if at < h.now {
		return nil, fmt.Errorf("block time %d is before the last block %d", at, h.now)
	}
	cache := h.cms.CacheMultiStore()
	ctx := h.newContext(cache, h.height+1, at)
	if err := fn(ctx); err != nil {
		return nil, err
	}
	cache.Write()
	h.cms.Commit()
	h.height++
	h.now = at
	return ctx.EventManager().Events(), nil
}

// Query runs fn against the committed state at unix time at and discards any
// writes.
func (h *Host) Query(at int64, fn func(ctx sdk.Context) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.newContext(h.cms.CacheMultiStore(), h.height, at))
}

// QueryContext returns a read-only view at the last block time. The caller
// must hold the host through Lock while it uses the context.
func (h *Host) QueryContext() context.Context {
	return h.newContext(h.cms.CacheMultiStore(), h.height, h.now)
}

func (h *Host) Lock()   { h.mu.Lock() }
func (h *Host) Unlock() { h.mu.Unlock() }

func (h *Host) newContext(ms storetypes.MultiStore, height, at int64) sdk.Context {
	header := cmtproto.Header{
		ChainID: "brewsim",
		Height:  height,
		Time:    time.Unix(at, 0).UTC(),
	}
	return sdk.NewContext(ms, header, false, h.logger)
}
