package sim

import (
	"fmt"
	"sort"
	"strconv"

	"cosmossdk.io/log"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"

	"brewchain/x/brewery/keeper"
	"brewchain/x/brewery/types"
)

// Report is the outcome of a scenario run.
type Report struct {
	Scenario   string            `json:"scenario" yaml:"scenario"`
	Height     int64             `json:"height" yaml:"height"`
	Time       int64             `json:"time" yaml:"time"`
	Steps      []StepResult      `json:"steps" yaml:"steps"`
	Pools      []PoolReport      `json:"pools" yaml:"pools"`
	Balances   []BalanceReport   `json:"balances" yaml:"balances"`
	Events     map[string]int    `json:"events" yaml:"events"`
	Invariants map[string]string `json:"broken_invariants,omitempty" yaml:"broken_invariants,omitempty"`
	Mismatches int               `json:"mismatches" yaml:"mismatches"`
}

type StepResult struct {
	Index  int               `json:"index" yaml:"index"`
	At     int64             `json:"at" yaml:"at"`
	Action string            `json:"action" yaml:"action"`
	Signer string            `json:"signer,omitempty" yaml:"signer,omitempty"`
	OK     bool              `json:"ok" yaml:"ok"`
	Error  string            `json:"error,omitempty" yaml:"error,omitempty"`
	Result map[string]string `json:"result,omitempty" yaml:"result,omitempty"`
}

type PoolReport struct {
	ID                uint64 `json:"id" yaml:"id"`
	StakedDenom       string `json:"staked_denom" yaml:"staked_denom"`
	AllocPoint        uint64 `json:"alloc_point" yaml:"alloc_point"`
	DepositFeeBP      uint32 `json:"deposit_fee_bp" yaml:"deposit_fee_bp"`
	BrewingTime       uint64 `json:"brewing_time" yaml:"brewing_time"`
	LastRewardTime    int64  `json:"last_reward_time" yaml:"last_reward_time"`
	AccRewardPerShare string `json:"acc_reward_per_share" yaml:"acc_reward_per_share"`
	TotalStaked       string `json:"total_staked" yaml:"total_staked"`
}

type BalanceReport struct {
	Account string `json:"account" yaml:"account"`
	Address string `json:"address" yaml:"address"`
	Denom   string `json:"denom" yaml:"denom"`
	Amount  string `json:"amount" yaml:"amount"`
}

// Runner drives a Host through a Scenario.
type Runner struct {
	host     *Host
	scenario Scenario
	msgs     types.MsgServer
	logger   log.Logger

	names  map[string]sdk.AccAddress
	denoms map[string]struct{}
	events map[string]int
}

func NewRunner(host *Host, s Scenario, logger log.Logger) *Runner {
	return &Runner{
		host:     host,
		scenario: s,
		msgs:     keeper.NewMsgServerImpl(host.Keeper),
		logger:   logger,
		names:    map[string]sdk.AccAddress{},
		denoms:   map[string]struct{}{},
		events:   map[string]int{},
	}
}

func (r *Runner) resolve(name string) sdk.AccAddress {
	addr := AccountAddress(name, r.scenario.Authority)
	if _, ok := r.names[name]; !ok {
		r.names[name] = addr
	}
	return addr
}

// Init writes genesis and funds the scenario accounts in the first block.
func (r *Runner) Init() error {
	params, err := r.scenario.Genesis.Params(r.resolve)
	if err != nil {
		return fmt.Errorf("genesis: %w", err)
	}
	r.denoms[params.RewardDenom] = struct{}{}
	r.resolve(AuthorityName)

	names := make([]string, 0, len(r.scenario.Accounts))
	for name := range r.scenario.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	events, err := r.host.Exec(0, func(ctx sdk.Context) error {
		gs := types.DefaultGenesis()
		gs.Params = params
		if err := r.host.Keeper.InitGenesis(ctx, *gs); err != nil {
			return err
		}
		for _, name := range names {
			coins := sdk.NewCoins()
			for denom, v := range r.scenario.Accounts[name] {
				amt, err := ParseAmount(v)
				if err != nil {
					return fmt.Errorf("account %s: %w", name, err)
				}
				coins = coins.Add(sdk.NewCoin(denom, amt))
				r.denoms[denom] = struct{}{}
			}
			if err := r.host.Bank.Fund(ctx, r.resolve(name), coins); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.count(events)
	return nil
}

// Run executes every step and builds the report. A step whose outcome does
// not match ExpectError counts as a mismatch.
func (r *Runner) Run() (Report, error) {
	rep := Report{Scenario: r.scenario.Name}
	for i, st := range r.scenario.Steps {
		res := r.step(i, st)
		if res.OK == st.ExpectError {
			rep.Mismatches++
			r.logger.Error("unexpected step outcome", "step", i, "action", st.Action, "err", res.Error)
		} else {
			r.logger.Debug("step", "step", i, "action", st.Action, "ok", res.OK)
		}
		rep.Steps = append(rep.Steps, res)
	}
	if err := r.snapshot(&rep); err != nil {
		return Report{}, err
	}
	return rep, nil
}

func (r *Runner) step(i int, st Step) StepResult {
	res := StepResult{Index: i, At: st.At, Action: st.Action, Signer: st.Signer}
	var out map[string]string

	run := r.host.Exec
	if st.Action == ActionPending {
		run = func(at int64, fn func(sdk.Context) error) (sdk.Events, error) {
			return nil, r.host.Query(at, fn)
		}
	}
	events, err := run(st.At, func(ctx sdk.Context) error {
		var err error
		out, err = r.apply(ctx, st)
		return err
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}
	r.count(events)
	res.OK = true
	res.Result = out
	return res
}

func (r *Runner) apply(ctx sdk.Context, st Step) (map[string]string, error) {
	var signer string
	if st.Signer != "" {
		signer = r.resolve(st.Signer).String()
	}
	switch st.Action {
	case ActionFund:
		amt, err := ParseAmount(st.Amount)
		if err != nil {
			return nil, err
		}
		r.denoms[st.Denom] = struct{}{}
		return nil, r.host.Bank.Fund(ctx, r.resolve(st.Signer), sdk.NewCoins(sdk.NewCoin(st.Denom, amt)))

	case ActionAddPool:
		res, err := r.msgs.AddPool(ctx, &types.MsgAddPool{
			Authority:    signer,
			AllocPoint:   st.AllocPoint,
			StakedDenom:  st.Denom,
			DepositFeeBP: st.FeeBP,
			BrewingTime:  st.BrewingTime,
		})
		if err != nil {
			return nil, err
		}
		r.denoms[st.Denom] = struct{}{}
		return map[string]string{"pool_id": strconv.FormatUint(res.PoolID, 10)}, nil

	case ActionSetPool:
		id, err := r.poolID(ctx, st.Pool)
		if err != nil {
			return nil, err
		}
		_, err = r.msgs.SetPool(ctx, &types.MsgSetPool{
			Authority:    signer,
			PoolID:       id,
			AllocPoint:   st.AllocPoint,
			DepositFeeBP: st.FeeBP,
			BrewingTime:  st.BrewingTime,
		})
		return nil, err

	case ActionSetRewardRate:
		rate, err := ParseAmount(st.Value)
		if err != nil {
			return nil, err
		}
		_, err = r.msgs.SetRewardRate(ctx, &types.MsgSetRewardRate{Authority: signer, RewardPerSecond: rate})
		return nil, err

	case ActionSetDistribution:
		bp, err := cast.ToUint32E(st.Value)
		if err != nil {
			return nil, err
		}
		_, err = r.msgs.SetForfeitedDistributionBP(ctx, &types.MsgSetForfeitedDistributionBP{Authority: signer, DistributionBP: bp})
		return nil, err

	case ActionSetDevAddress:
		_, err := r.msgs.SetDevAddress(ctx, &types.MsgSetDevAddress{Sender: signer, NewAddress: r.resolve(st.Address).String()})
		return nil, err

	case ActionSetFeeAddress:
		_, err := r.msgs.SetFeeAddress(ctx, &types.MsgSetFeeAddress{Sender: signer, NewAddress: r.resolve(st.Address).String()})
		return nil, err

	case ActionSetStartTime:
		start, err := cast.ToInt64E(st.Value)
		if err != nil {
			return nil, err
		}
		_, err = r.msgs.SetStartTime(ctx, &types.MsgSetStartTime{Authority: signer, StartTime: start})
		return nil, err

	case ActionDeposit:
		id, amt, err := r.poolAndAmount(ctx, st)
		if err != nil {
			return nil, err
		}
		res, err := r.msgs.Deposit(ctx, &types.MsgDeposit{Depositor: signer, PoolID: id, Amount: amt})
		if err != nil {
			return nil, err
		}
		out := harvestResult(res.Receipt.Harvest)
		out["received"] = res.Receipt.Received.String()
		out["fee"] = res.Receipt.Fee.String()
		out["staked"] = res.Receipt.Staked.String()
		return out, nil

	case ActionWithdraw:
		id, amt, err := r.poolAndAmount(ctx, st)
		if err != nil {
			return nil, err
		}
		res, err := r.msgs.Withdraw(ctx, &types.MsgWithdraw{Depositor: signer, PoolID: id, Amount: amt})
		if err != nil {
			return nil, err
		}
		return harvestResult(res.Harvest), nil

	case ActionEmergencyWithdraw:
		id, err := r.poolID(ctx, st.Pool)
		if err != nil {
			return nil, err
		}
		res, err := r.msgs.EmergencyWithdraw(ctx, &types.MsgEmergencyWithdraw{Depositor: signer, PoolID: id})
		if err != nil {
			return nil, err
		}
		return map[string]string{"amount": res.Amount.String()}, nil

	case ActionAccrue:
		if st.Pool == nil {
			return nil, r.host.Keeper.AccrueAll(ctx)
		}
		id, err := r.poolID(ctx, st.Pool)
		if err != nil {
			return nil, err
		}
		return nil, r.host.Keeper.Accrue(ctx, id)

	case ActionPending:
		id, err := r.poolID(ctx, st.Pool)
		if err != nil {
			return nil, err
		}
		amt, err := r.host.Keeper.PendingReward(ctx, id, r.resolve(st.Signer))
		if err != nil {
			return nil, err
		}
		return map[string]string{"pending": amt.String()}, nil
	}
	return nil, fmt.Errorf("unknown action %q", st.Action)
}

// poolID accepts a numeric id or the staked denom of a pool.
func (r *Runner) poolID(ctx sdk.Context, v any) (uint64, error) {
	if s, ok := v.(string); ok {
		if id, err := r.host.Keeper.PoolByDenom.Get(ctx, s); err == nil {
			return id, nil
		}
	}
	id, err := cast.ToUint64E(v)
	if err != nil {
		return 0, fmt.Errorf("pool %v: %w", v, err)
	}
	return id, nil
}

func (r *Runner) poolAndAmount(ctx sdk.Context, st Step) (uint64, math.Int, error) {
	id, err := r.poolID(ctx, st.Pool)
	if err != nil {
		return 0, math.Int{}, err
	}
	if st.Amount == nil {
		return id, math.ZeroInt(), nil
	}
	amt, err := ParseAmount(st.Amount)
	return id, amt, err
}

func (r *Runner) count(events sdk.Events) {
	for _, e := range events {
		r.events[e.Type]++
	}
}

func (r *Runner) snapshot(rep *Report) error {
	rep.Height = r.host.Height()
	rep.Time = r.host.Now()
	rep.Events = r.events

	return r.host.Query(rep.Time, func(ctx sdk.Context) error {
		pools, err := r.host.Keeper.GetPools(ctx)
		if err != nil {
			return err
		}
		for _, p := range pools {
			rep.Pools = append(rep.Pools, PoolReport{
				ID:                p.ID,
				StakedDenom:       p.StakedDenom,
				AllocPoint:        p.AllocPoint,
				DepositFeeBP:      p.DepositFeeBP,
				BrewingTime:       p.BrewingTime,
				LastRewardTime:    p.LastRewardTime,
				AccRewardPerShare: p.AccRewardPerShare.String(),
				TotalStaked:       p.TotalStaked.String(),
			})
		}

		accounts := map[string]sdk.AccAddress{
			"custody":  r.host.Keeper.CustodyAddress(),
			"treasury": r.host.Keeper.TreasuryAddress(),
		}
		for name, addr := range r.names {
			accounts[name] = addr
		}
		names := make([]string, 0, len(accounts))
		for name := range accounts {
			names = append(names, name)
		}
		sort.Strings(names)
		denoms := make([]string, 0, len(r.denoms))
		for d := range r.denoms {
			denoms = append(denoms, d)
		}
		sort.Strings(denoms)

		for _, name := range names {
			for _, denom := range denoms {
				bal := r.host.Bank.GetBalance(ctx, accounts[name], denom)
				if bal.IsZero() {
					continue
				}
				rep.Balances = append(rep.Balances, BalanceReport{
					Account: name,
					Address: accounts[name].String(),
					Denom:   denom,
					Amount:  bal.Amount.String(),
				})
			}
		}

		for route, inv := range map[string]sdk.Invariant{
			"alloc-point-sum":      keeper.AllocPointInvariant(r.host.Keeper),
			"custody-covers-stake": keeper.CustodyInvariant(r.host.Keeper),
		} {
			if msg, broken := inv(ctx); broken {
				if rep.Invariants == nil {
					rep.Invariants = map[string]string{}
				}
				rep.Invariants[route] = msg
			}
		}
		return nil
	})
}

func harvestResult(h types.Harvest) map[string]string {
	return map[string]string{
		"vested":    h.Vested.String(),
		"forfeited": h.Forfeited.String(),
		"paid":      h.Paid.String(),
	}
}
