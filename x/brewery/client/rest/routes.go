package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	math "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gorilla/mux"

	"brewchain/x/brewery/types"
)

// Querier is the read side of the brewery keeper.
type Querier interface {
	GetParams(ctx context.Context) (types.Params, error)
	GetPools(ctx context.Context) ([]types.Pool, error)
	GetPool(ctx context.Context, poolID uint64) (types.Pool, error)
	PoolLength(ctx context.Context) (uint64, error)
	GetUserInfo(ctx context.Context, poolID uint64, user sdk.AccAddress) (types.UserInfo, error)
	PendingReward(ctx context.Context, poolID uint64, user sdk.AccAddress) (math.Int, error)
}

// ContextFunc returns the state view a request is served from.
type ContextFunc func(r *http.Request) (context.Context, error)

type PoolsResponse struct {
	Length uint64       `json:"length"`
	Pools  []types.Pool `json:"pools"`
}

type PendingResponse struct {
	PoolID  uint64   `json:"pool_id"`
	User    string   `json:"user"`
	Pending math.Int `json:"pending"`
}

// RegisterRoutes mounts the brewery query routes under /brewery.
func RegisterRoutes(r *mux.Router, q Querier, ctxFn ContextFunc) {
	h := handler{q: q, ctxFn: ctxFn}
	sub := r.PathPrefix("/" + types.ModuleName).Subrouter()
	sub.HandleFunc("/params", h.params).Methods(http.MethodGet)
	sub.HandleFunc("/pools", h.pools).Methods(http.MethodGet)
	sub.HandleFunc("/pools/{id:[0-9]+}", h.pool).Methods(http.MethodGet)
	sub.HandleFunc("/pools/{id:[0-9]+}/users/{addr}", h.userInfo).Methods(http.MethodGet)
	sub.HandleFunc("/pools/{id:[0-9]+}/users/{addr}/pending", h.pending).Methods(http.MethodGet)
}

type handler struct {
	q     Querier
	ctxFn ContextFunc
}

func (h handler) params(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.context(w, r)
	if !ok {
		return
	}
	p, err := h.q.GetParams(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h handler) pools(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.context(w, r)
	if !ok {
		return
	}
	n, err := h.q.PoolLength(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	pools, err := h.q.GetPools(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PoolsResponse{Length: n, Pools: pools})
}

func (h handler) pool(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.context(w, r)
	if !ok {
		return
	}
	id, ok := poolID(w, r)
	if !ok {
		return
	}
	p, err := h.q.GetPool(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h handler) userInfo(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.context(w, r)
	if !ok {
		return
	}
	id, addr, ok := poolAndUser(w, r)
	if !ok {
		return
	}
	if _, err := h.q.GetPool(ctx, id); err != nil {
		writeError(w, err)
		return
	}
	info, err := h.q.GetUserInfo(ctx, id, addr)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h handler) pending(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.context(w, r)
	if !ok {
		return
	}
	id, addr, ok := poolAndUser(w, r)
	if !ok {
		return
	}
	amt, err := h.q.PendingReward(ctx, id, addr)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PendingResponse{PoolID: id, User: addr.String(), Pending: amt})
}

func (h handler) context(w http.ResponseWriter, r *http.Request) (context.Context, bool) {
	ctx, err := h.ctxFn(r)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Message: err.Error()})
		return nil, false
	}
	return ctx, true
}

func poolID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid pool id"})
		return 0, false
	}
	return id, true
}

func poolAndUser(w http.ResponseWriter, r *http.Request) (uint64, sdk.AccAddress, bool) {
	id, ok := poolID(w, r)
	if !ok {
		return 0, nil, false
	}
	addr, err := sdk.AccAddressFromBech32(mux.Vars(r)["addr"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid address: " + err.Error()})
		return 0, nil, false
	}
	return id, addr, true
}

type errorBody struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, types.ErrPoolNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorBody{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	bz, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bz)
}
