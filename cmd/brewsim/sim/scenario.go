package sim

import (
	"fmt"
	"strings"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"brewchain/x/brewery/types"
)

// Step actions.
const (
	ActionAddPool           = "add_pool"
	ActionSetPool           = "set_pool"
	ActionSetRewardRate     = "set_reward_rate"
	ActionSetDistribution   = "set_distribution_bp"
	ActionSetDevAddress     = "set_dev_address"
	ActionSetFeeAddress     = "set_fee_address"
	ActionSetStartTime      = "set_start_time"
	ActionDeposit           = "deposit"
	ActionWithdraw          = "withdraw"
	ActionEmergencyWithdraw = "emergency_withdraw"
	ActionAccrue            = "accrue"
	ActionPending           = "pending"
	ActionFund              = "fund"
)

// AuthorityName resolves to the module authority in signer fields.
const AuthorityName = "authority"

// Scenario is a scripted run of the brewery module.
type Scenario struct {
	Name      string                    `mapstructure:"name"`
	Authority string                    `mapstructure:"authority"`
	Genesis   GenesisConfig             `mapstructure:"genesis"`
	Accounts  map[string]map[string]any `mapstructure:"accounts"`
	Steps     []Step                    `mapstructure:"steps"`
}

type GenesisConfig struct {
	RewardDenom             string `mapstructure:"reward_denom"`
	RewardPerSecond         any    `mapstructure:"reward_per_second"`
	StartTime               int64  `mapstructure:"start_time"`
	ForfeitedDistributionBP *int64 `mapstructure:"forfeited_distribution_bp"`
	DevAddress              string `mapstructure:"dev_address"`
	FeeAddress              string `mapstructure:"fee_address"`
}

// Step is one message, query or funding action executed in its own block.
type Step struct {
	At          int64          `mapstructure:"at"`
	Action      string         `mapstructure:"action"`
	Signer      string         `mapstructure:"signer"`
	Pool        any            `mapstructure:"pool"`
	Amount      any            `mapstructure:"amount"`
	Denom       string         `mapstructure:"denom"`
	AllocPoint  uint64         `mapstructure:"alloc_point"`
	FeeBP       uint32         `mapstructure:"deposit_fee_bp"`
	BrewingTime uint64         `mapstructure:"brewing_time"`
	Value       any            `mapstructure:"value"`
	Address     string         `mapstructure:"address"`
	ExpectError bool           `mapstructure:"expect_error"`
	Extra       map[string]any `mapstructure:",remain"`
}

// LoadScenario reads a scenario file in any format viper understands.
func LoadScenario(path string) (Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Validate checks the parts of a scenario that do not need state.
func (s Scenario) Validate() error {
	var last int64
	for i, st := range s.Steps {
		if st.At < last {
			return fmt.Errorf("step %d: time %d goes backwards from %d", i, st.At, last)
		}
		last = st.At
		if !knownAction(st.Action) {
			return fmt.Errorf("step %d: unknown action %q", i, st.Action)
		}
		if len(st.Extra) > 0 {
			keys := make([]string, 0, len(st.Extra))
			for k := range st.Extra {
				keys = append(keys, k)
			}
			return fmt.Errorf("step %d: unknown fields %s", i, strings.Join(keys, ", "))
		}
	}
	for name, balances := range s.Accounts {
		for denom, amt := range balances {
			if _, err := ParseAmount(amt); err != nil {
				return fmt.Errorf("account %s %s: %w", name, denom, err)
			}
		}
	}
	return nil
}

func knownAction(a string) bool {
	switch a {
	case ActionAddPool, ActionSetPool, ActionSetRewardRate, ActionSetDistribution,
		ActionSetDevAddress, ActionSetFeeAddress, ActionSetStartTime, ActionDeposit,
		ActionWithdraw, ActionEmergencyWithdraw, ActionAccrue, ActionPending, ActionFund:
		return true
	}
	return false
}

// Params builds the genesis params, filling unset fields with defaults.
func (g GenesisConfig) Params(resolve func(string) sdk.AccAddress) (types.Params, error) {
	p := types.DefaultParams()
	if g.RewardDenom != "" {
		p.RewardDenom = g.RewardDenom
	}
	if g.RewardPerSecond != nil {
		rate, err := ParseAmount(g.RewardPerSecond)
		if err != nil {
			return types.Params{}, fmt.Errorf("reward_per_second: %w", err)
		}
		p.RewardPerSecond = rate
	}
	p.StartTime = g.StartTime
	if g.ForfeitedDistributionBP != nil {
		p.ForfeitedDistributionBP = uint32(*g.ForfeitedDistributionBP)
	}
	if g.DevAddress != "" {
		p.DevAddress = resolve(g.DevAddress).String()
	}
	if g.FeeAddress != "" {
		p.FeeAddress = resolve(g.FeeAddress).String()
	}
	return p, p.Validate()
}

// ParseAmount accepts integers, numeric strings and decimal strings without a
// fractional part.
func ParseAmount(v any) (math.Int, error) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return math.Int{}, err
	}
	s = strings.TrimSpace(s)
	amt, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid amount %q", s)
	}
	return amt, nil
}

// AccountAddress derives a stable address for a scenario account name.
// Bech32 strings pass through unchanged.
func AccountAddress(name, authority string) sdk.AccAddress {
	if name == AuthorityName {
		return authorityAddress(authority)
	}
	if addr, err := sdk.AccAddressFromBech32(name); err == nil {
		return addr
	}
	return authtypes.NewModuleAddress("brewsim/" + name)
}

func authorityAddress(authority string) sdk.AccAddress {
	if authority == "" {
		return authtypes.NewModuleAddress(types.GovModuleName)
	}
	if addr, err := sdk.AccAddressFromBech32(authority); err == nil {
		return addr
	}
	return authtypes.NewModuleAddress(authority)
}
