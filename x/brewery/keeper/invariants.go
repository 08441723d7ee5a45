package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"brewchain/x/brewery/types"
)

func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "alloc-point-sum", AllocPointInvariant(k))
	ir.RegisterRoute(types.ModuleName, "custody-covers-stake", CustodyInvariant(k))
}

// AllocPointInvariant checks that the stored total weight is the sum of the
// pools' weights.
func AllocPointInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		pools, err := k.GetPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "alloc-point-sum", err.Error()), true
		}
		total, err := k.GetTotalAllocPoint(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "alloc-point-sum", err.Error()), true
		}
		var sum uint64
		for _, p := range pools {
			sum += p.AllocPoint
		}
		broken := sum != total
		return sdk.FormatInvariant(types.ModuleName, "alloc-point-sum",
			fmt.Sprintf("sum of pool weights %d, stored total %d", sum, total)), broken
	}
}

// CustodyInvariant checks that custody holds at least every pool's recorded
// stake and that each pool's stake is the sum of its positions.
func CustodyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		pools, err := k.GetPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "custody-covers-stake", err.Error()), true
		}
		var (
			msg    string
			broken bool
		)
		custody := k.CustodyAddress()
		for _, p := range pools {
			held := k.bankKeeper.GetBalance(ctx, custody, p.StakedDenom).Amount
			if held.LT(p.TotalStaked) {
				broken = true
				msg += fmt.Sprintf("\tpool %d: custody holds %s%s, staked %s\n", p.ID, held, p.StakedDenom, p.TotalStaked)
			}

			sum, err := k.sumPositions(ctx, p.ID)
			if err != nil {
				return sdk.FormatInvariant(types.ModuleName, "custody-covers-stake", err.Error()), true
			}
			if !sum.Equal(p.TotalStaked) {
				broken = true
				msg += fmt.Sprintf("\tpool %d: positions sum to %s, pool records %s\n", p.ID, sum, p.TotalStaked)
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "custody-covers-stake", msg), broken
	}
}
