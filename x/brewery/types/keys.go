package types

import (
	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "brewery"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey is the message route for the module
	RouterKey = ModuleName

	// MemStoreKey defines the in-memory store key
	MemStoreKey = "mem_brewery"

	// TreasuryName is the module account that holds minted, not yet paid rewards.
	// Staked assets live in the ModuleName account so the two never mix.
	TreasuryName = "brewery_treasury"

	// GovModuleName duplicates the gov module's name to avoid a dependency with x/gov.
	GovModuleName = "gov"
)

var (
	ParamsKey            = collections.NewPrefix("p_brewery")
	TotalAllocPointKey   = collections.NewPrefix("t_brewery")
	PoolSeqKey           = collections.NewPrefix("n_brewery")
	PoolKeyPrefix        = collections.NewPrefix("pl_brewery")
	PoolByDenomKeyPrefix = collections.NewPrefix("pd_brewery")
	UserInfoKeyPrefix    = collections.NewPrefix("u_brewery")
)

// UserKeyCodec encodes the (pool id, depositor) key of a user account.
var UserKeyCodec = collections.PairKeyCodec(collections.Uint64Key, sdk.AccAddressKey)

// PoolStoreKey returns the raw store key of a pool record.
func PoolStoreKey(poolID uint64) ([]byte, error) {
	return collections.EncodeKeyWithPrefix(PoolKeyPrefix.Bytes(), collections.Uint64Key, poolID)
}

// UserStoreKey returns the raw store key of a user account record.
func UserStoreKey(poolID uint64, user sdk.AccAddress) ([]byte, error) {
	return collections.EncodeKeyWithPrefix(UserInfoKeyPrefix.Bytes(), UserKeyCodec, collections.Join(poolID, user))
}
