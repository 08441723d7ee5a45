package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// UserRecord is an exported user position.
type UserRecord struct {
	PoolID  uint64   `json:"pool_id" yaml:"pool_id"`
	Address string   `json:"address" yaml:"address"`
	Info    UserInfo `json:"info" yaml:"info"`
}

// GenesisState is the brewery module's genesis state.
type GenesisState struct {
	Params Params       `json:"params" yaml:"params"`
	Pools  []Pool       `json:"pools" yaml:"pools"`
	Users  []UserRecord `json:"users" yaml:"users"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Params: DefaultParams()}
}

// TotalAllocPoint sums the allocation weight of every pool.
func (gs GenesisState) TotalAllocPoint() uint64 {
	var total uint64
	for _, p := range gs.Pools {
		total += p.AllocPoint
	}
	return total
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	seenDenoms := make(map[string]struct{}, len(gs.Pools))
	for i, p := range gs.Pools {
		if p.ID != uint64(i) {
			return fmt.Errorf("pools: pool at index %d has id %d", i, p.ID)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("pools: %w", err)
		}
		if _, ok := seenDenoms[p.StakedDenom]; ok {
			return fmt.Errorf("pools: duplicate staked denom %q", p.StakedDenom)
		}
		seenDenoms[p.StakedDenom] = struct{}{}
	}

	type userKey struct {
		pool uint64
		addr string
	}
	seenUsers := make(map[userKey]struct{}, len(gs.Users))
	for _, u := range gs.Users {
		if u.PoolID >= uint64(len(gs.Pools)) {
			return fmt.Errorf("users: unknown pool %d", u.PoolID)
		}
		if _, err := sdk.AccAddressFromBech32(u.Address); err != nil {
			return fmt.Errorf("users: %w", err)
		}
		if err := u.Info.Validate(); err != nil {
			return fmt.Errorf("users: pool %d %s: %w", u.PoolID, u.Address, err)
		}
		k := userKey{u.PoolID, u.Address}
		if _, ok := seenUsers[k]; ok {
			return fmt.Errorf("users: duplicate position pool %d %s", u.PoolID, u.Address)
		}
		seenUsers[k] = struct{}{}
	}
	return nil
}
