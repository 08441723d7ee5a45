package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cosmossdk.io/collections"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"brewchain/x/brewery/types"
)

const flagAt = "at"

func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the brewery module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		getParamsCmd(),
		getPoolCmd(),
		getPoolsCmd(),
		getUserInfoCmd(),
		getPendingCmd(),
	)
	return cmd
}

func getParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Shows the parameters of the module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			p, err := queryParams(clientCtx)
			if err != nil {
				return err
			}
			return printJSON(clientCtx, p)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func getPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Shows a single pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id %q: %w", args[0], err)
			}
			pool, err := queryPool(clientCtx, id)
			if err != nil {
				return err
			}
			return printJSON(clientCtx, pool)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func getPoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "Lists every pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			n, err := queryUint64(clientCtx, types.PoolSeqKey.Bytes())
			if err != nil {
				return err
			}
			pools := make([]types.Pool, 0, n)
			for id := uint64(0); id < n; id++ {
				pool, err := queryPool(clientCtx, id)
				if err != nil {
					return err
				}
				pools = append(pools, pool)
			}
			return printJSON(clientCtx, pools)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func getUserInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user-info [pool-id] [address]",
		Short: "Shows a depositor's position in a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			id, addr, err := parsePoolAndUser(args)
			if err != nil {
				return err
			}
			info, err := queryUserInfo(clientCtx, id, addr)
			if err != nil {
				return err
			}
			return printJSON(clientCtx, info)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func getPendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending [pool-id] [address]",
		Short: "Shows the vested reward a harvest would pay",
		Long: `Projects the reward a deposit or withdrawal would pay at the given unix time
(default: now) from the committed pool and position state.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			id, addr, err := parsePoolAndUser(args)
			if err != nil {
				return err
			}
			at, err := cmd.Flags().GetInt64(flagAt)
			if err != nil {
				return err
			}
			if at == 0 {
				at = time.Now().Unix()
			}

			params, err := queryParams(clientCtx)
			if err != nil {
				return err
			}
			pool, err := queryPool(clientCtx, id)
			if err != nil {
				return err
			}
			info, err := queryUserInfo(clientCtx, id, addr)
			if err != nil {
				return err
			}
			total, err := queryUint64(clientCtx, types.TotalAllocPointKey.Bytes())
			if err != nil {
				return err
			}

			pending := types.PendingReward(pool, info, params, total, at)
			return printJSON(clientCtx, map[string]any{
				"pool_id": id,
				"user":    addr.String(),
				"at":      at,
				"pending": pending,
			})
		},
	}

	cmd.Flags().Int64(flagAt, 0, "unix time to project to")
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func parsePoolAndUser(args []string) (uint64, sdk.AccAddress, error) {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid pool id %q: %w", args[0], err)
	}
	addr, err := sdk.AccAddressFromBech32(args[1])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid address %q: %w", args[1], err)
	}
	return id, addr, nil
}

func queryParams(clientCtx client.Context) (types.Params, error) {
	bz, _, err := clientCtx.QueryStore(types.ParamsKey.Bytes(), types.StoreKey)
	if err != nil || len(bz) == 0 {
		// Unset params read as defaults.
		return types.DefaultParams(), nil
	}
	var p types.Params
	if err := json.Unmarshal(bz, &p); err != nil {
		return types.Params{}, err
	}
	return p, nil
}

func queryPool(clientCtx client.Context, id uint64) (types.Pool, error) {
	key, err := types.PoolStoreKey(id)
	if err != nil {
		return types.Pool{}, err
	}
	bz, _, err := clientCtx.QueryStore(key, types.StoreKey)
	if err != nil {
		return types.Pool{}, err
	}
	if len(bz) == 0 {
		return types.Pool{}, fmt.Errorf("%w: pool %d", types.ErrPoolNotFound, id)
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, err
	}
	return pool, nil
}

func queryUserInfo(clientCtx client.Context, id uint64, addr sdk.AccAddress) (types.UserInfo, error) {
	key, err := types.UserStoreKey(id, addr)
	if err != nil {
		return types.UserInfo{}, err
	}
	bz, _, err := clientCtx.QueryStore(key, types.StoreKey)
	if err != nil {
		return types.UserInfo{}, err
	}
	if len(bz) == 0 {
		return types.NewUserInfo(), nil
	}
	var info types.UserInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return types.UserInfo{}, err
	}
	return info, nil
}

// queryUint64 reads a collections Item or Sequence holding a uint64.
func queryUint64(clientCtx client.Context, key []byte) (uint64, error) {
	bz, _, err := clientCtx.QueryStore(key, types.StoreKey)
	if err != nil {
		return 0, err
	}
	if len(bz) == 0 {
		return 0, nil
	}
	return collections.Uint64Value.Decode(bz)
}

func printJSON(clientCtx client.Context, v any) error {
	out, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return clientCtx.PrintString(string(out) + "\n")
}
