package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"brewchain/x/brewery/client/rest"
	"brewchain/x/brewery/types"
)

type stubQuerier struct {
	pools []types.Pool
	users map[string]types.UserInfo
}

func (s stubQuerier) GetParams(context.Context) (types.Params, error) {
	return types.DefaultParams(), nil
}

func (s stubQuerier) GetPools(context.Context) ([]types.Pool, error) { return s.pools, nil }

func (s stubQuerier) GetPool(_ context.Context, id uint64) (types.Pool, error) {
	if id >= uint64(len(s.pools)) {
		return types.Pool{}, errorsmod.Wrapf(types.ErrPoolNotFound, "pool %d", id)
	}
	return s.pools[id], nil
}

func (s stubQuerier) PoolLength(context.Context) (uint64, error) { return uint64(len(s.pools)), nil }

func (s stubQuerier) GetUserInfo(_ context.Context, _ uint64, addr sdk.AccAddress) (types.UserInfo, error) {
	if info, ok := s.users[addr.String()]; ok {
		return info, nil
	}
	return types.NewUserInfo(), nil
}

func (s stubQuerier) PendingReward(_ context.Context, id uint64, _ sdk.AccAddress) (math.Int, error) {
	if id >= uint64(len(s.pools)) {
		return math.Int{}, errorsmod.Wrapf(types.ErrPoolNotFound, "pool %d", id)
	}
	return math.NewInt(42), nil
}

func newRouter(ctxErr error) *mux.Router {
	alice := authtypes.NewModuleAddress("alice")
	q := stubQuerier{
		pools: []types.Pool{types.NewPool(0, "ustake", 10, 0, 100, 0)},
		users: map[string]types.UserInfo{
			alice.String(): {Amount: math.NewInt(5), DepositTime: 1, RewardDebt: math.ZeroInt()},
		},
	}
	r := mux.NewRouter()
	rest.RegisterRoutes(r, q, func(*http.Request) (context.Context, error) {
		if ctxErr != nil {
			return nil, ctxErr
		}
		return context.Background(), nil
	})
	return r
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRoutes(t *testing.T) {
	r := newRouter(nil)
	alice := authtypes.NewModuleAddress("alice").String()

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"params", "/brewery/params", http.StatusOK},
		{"pools", "/brewery/pools", http.StatusOK},
		{"pool", "/brewery/pools/0", http.StatusOK},
		{"missing pool", "/brewery/pools/3", http.StatusNotFound},
		{"non numeric pool", "/brewery/pools/abc", http.StatusNotFound},
		{"user", "/brewery/pools/0/users/" + alice, http.StatusOK},
		{"bad user", "/brewery/pools/0/users/nope", http.StatusBadRequest},
		{"pending", "/brewery/pools/0/users/" + alice + "/pending", http.StatusOK},
		{"pending missing pool", "/brewery/pools/9/users/" + alice + "/pending", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, r, tc.path)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestPoolsBody(t *testing.T) {
	rec := get(t, newRouter(nil), "/brewery/pools")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res rest.PoolsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, uint64(1), res.Length)
	require.Len(t, res.Pools, 1)
	require.Equal(t, "ustake", res.Pools[0].StakedDenom)
}

func TestPendingBody(t *testing.T) {
	alice := authtypes.NewModuleAddress("alice").String()
	rec := get(t, newRouter(nil), "/brewery/pools/0/users/"+alice+"/pending")
	require.Equal(t, http.StatusOK, rec.Code)

	var res rest.PendingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, alice, res.User)
	require.Equal(t, "42", res.Pending.String())
}

func TestUnavailableState(t *testing.T) {
	rec := get(t, newRouter(errors.New("no committed state")), "/brewery/params")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "no committed state")
}
