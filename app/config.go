package app

import sdk "github.com/cosmos/cosmos-sdk/types"

const (
	// AccountAddressPrefix is the prefix for accounts addresses.
	AccountAddressPrefix = "brew"
	// ChainCoinType is the coin type of the chain.
	ChainCoinType = 118
	// BondDenom is the default staking and reward denom.
	BondDenom = "ubrew"
)

func init() {
	// Set bond denom
	sdk.DefaultBondDenom = BondDenom

	// Set address prefixes
	accountPubKeyPrefix := AccountAddressPrefix + "pub"
	validatorAddressPrefix := AccountAddressPrefix + "valoper"
	validatorPubKeyPrefix := AccountAddressPrefix + "valoperpub"
	consNodeAddressPrefix := AccountAddressPrefix + "valcons"
	consNodePubKeyPrefix := AccountAddressPrefix + "valconspub"

	// Set and seal config
	config := sdk.GetConfig()
	config.SetPurpose(sdk.Purpose)
	config.SetCoinType(ChainCoinType)
	config.SetBech32PrefixForAccount(AccountAddressPrefix, accountPubKeyPrefix)
	config.SetBech32PrefixForValidator(validatorAddressPrefix, validatorPubKeyPrefix)
	config.SetBech32PrefixForConsensusNode(consNodeAddressPrefix, consNodePubKeyPrefix)
	config.Seal()
}
