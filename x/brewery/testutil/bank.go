package testutil

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"brewchain/x/brewery/types"
)

var (
	BalancesPrefix = collections.NewPrefix("xb_bal")
	SupplyPrefix   = collections.NewPrefix("xb_sup")
)

var _ types.BankKeeper = (*Bank)(nil)

// Bank is a store-backed stand-in for x/bank. Balances live in the same KV
// store as the module under test, so a discarded cache context rolls back
// transfers together with module state.
type Bank struct {
	Balances collections.Map[collections.Pair[sdk.AccAddress, string], math.Int]
	Supply   collections.Map[string, math.Int]

	// transferTaxBP burns a share of every deposit of the denom into a module
	// account, modelling fee-on-transfer assets.
	transferTaxBP map[string]uint32
}

func NewBank(storeService store.KVStoreService) *Bank {
	sb := collections.NewSchemaBuilder(storeService)
	b := &Bank{
		Balances: collections.NewMap(sb, BalancesPrefix, "balances",
			collections.PairKeyCodec(sdk.AccAddressKey, collections.StringKey), sdk.IntValue),
		Supply:        collections.NewMap(sb, SupplyPrefix, "supply", collections.StringKey, sdk.IntValue),
		transferTaxBP: map[string]uint32{},
	}
	if _, err := sb.Build(); err != nil {
		panic(err)
	}
	return b
}

// SetTransferTax makes transfers of denom into module accounts lose bp/10000
// of the amount in flight.
func (b *Bank) SetTransferTax(denom string, bp uint32) {
	b.transferTaxBP[denom] = bp
}

func (b *Bank) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	amt, err := b.Balances.Get(ctx, collections.Join(addr, denom))
	if err != nil {
		return sdk.NewCoin(denom, math.ZeroInt())
	}
	return sdk.NewCoin(denom, amt)
}

func (b *Bank) GetSupply(ctx context.Context, denom string) math.Int {
	amt, err := b.Supply.Get(ctx, denom)
	if err != nil {
		return math.ZeroInt()
	}
	return amt
}

// Fund mints coins straight into addr.
func (b *Bank) Fund(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	for _, c := range amt {
		if err := b.add(ctx, addr, c.Denom, c.Amount); err != nil {
			return err
		}
		if err := b.Supply.Set(ctx, c.Denom, b.GetSupply(ctx, c.Denom).Add(c.Amount)); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bank) MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	return b.Fund(ctx, authtypes.NewModuleAddress(moduleName), amt)
}

func (b *Bank) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	if err := b.send(ctx, senderAddr, authtypes.NewModuleAddress(recipientModule), amt); err != nil {
		return err
	}
	return b.applyTax(ctx, authtypes.NewModuleAddress(recipientModule), amt)
}

func (b *Bank) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return b.send(ctx, authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

func (b *Bank) send(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	for _, c := range amt {
		if err := b.sub(ctx, from, c.Denom, c.Amount); err != nil {
			return err
		}
		if err := b.add(ctx, to, c.Denom, c.Amount); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bank) applyTax(ctx context.Context, holder sdk.AccAddress, amt sdk.Coins) error {
	for _, c := range amt {
		bp, ok := b.transferTaxBP[c.Denom]
		if !ok || bp == 0 {
			continue
		}
		tax := c.Amount.MulRaw(int64(bp)).QuoRaw(types.BasisPoints)
		if !tax.IsPositive() {
			continue
		}
		if err := b.sub(ctx, holder, c.Denom, tax); err != nil {
			return err
		}
		if err := b.Supply.Set(ctx, c.Denom, b.GetSupply(ctx, c.Denom).Sub(tax)); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bank) add(ctx context.Context, addr sdk.AccAddress, denom string, amt math.Int) error {
	bal := b.GetBalance(ctx, addr, denom).Amount
	return b.Balances.Set(ctx, collections.Join(addr, denom), bal.Add(amt))
}

func (b *Bank) sub(ctx context.Context, addr sdk.AccAddress, denom string, amt math.Int) error {
	bal, err := b.Balances.Get(ctx, collections.Join(addr, denom))
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return err
	}
	if bal.IsNil() {
		bal = math.ZeroInt()
	}
	if bal.LT(amt) {
		return errorsmod.Wrapf(sdkerrors.ErrInsufficientFunds, "%s: spendable %s%s, need %s%s", addr, bal, denom, amt, denom)
	}
	return b.Balances.Set(ctx, collections.Join(addr, denom), bal.Sub(amt))
}
