package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"brewchain/x/brewery/types"
)

type msgServer struct {
	Keeper
}

var _ types.MsgServer = msgServer{}

func NewMsgServerImpl(k Keeper) types.MsgServer {
	return &msgServer{Keeper: k}
}

func (m msgServer) signer(addr string) (sdk.AccAddress, error) {
	bz, err := m.addressCodec.StringToBytes(addr)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidSigner, "invalid address %q: %s", addr, err)
	}
	return bz, nil
}

func (m msgServer) AddPool(ctx context.Context, req *types.MsgAddPool) (*types.MsgAddPoolResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidSigner, "empty request")
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	authority, err := m.signer(req.Authority)
	if err != nil {
		return nil, err
	}
	id, err := m.Keeper.AddPool(ctx, authority, req.AllocPoint, req.StakedDenom, req.DepositFeeBP, req.BrewingTime)
	if err != nil {
		return nil, err
	}
	return &types.MsgAddPoolResponse{PoolID: id}, nil
}

func (m msgServer) SetPool(ctx context.Context, req *types.MsgSetPool) (*types.MsgSetPoolResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidSigner, "empty request")
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	authority, err := m.signer(req.Authority)
	if err != nil {
		return nil, err
	}
	if err := m.Keeper.SetPool(ctx, authority, req.PoolID, req.AllocPoint, req.DepositFeeBP, req.BrewingTime); err != nil {
		return nil, err
	}
	return &types.MsgSetPoolResponse{}, nil
}

func (m msgServer) SetRewardRate(ctx context.Context, req *types.MsgSetRewardRate) (*types.MsgSetRewardRateResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidSigner, "empty request")
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	authority, err := m.signer(req.Authority)
	if err != nil {
		return nil, err
	}
	if err := m.Keeper.SetRewardRate(ctx, authority, req.RewardPerSecond); err != nil {
		return nil, err
	}
	return &types.MsgSetRewardRateResponse{}, nil
}

func (m msgServer) SetForfeitedDistributionBP(ctx context.Context, req *types.MsgSetForfeitedDistributionBP) (*types.MsgSetForfeitedDistributionBPResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidSigner, "empty request")
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	authority, err := m.signer(req.Authority)
	if err != nil {
		return nil, err
	}
	if err := m.Keeper.SetForfeitedDistributionBP(ctx, authority, req.DistributionBP); err != nil {
		return nil, err
	}
	return &types.MsgSetForfeitedDistributionBPResponse{}, nil
}

func (m msgServer) SetDevAddress(ctx context.Context, req *types.MsgSetDevAddress) (*types.MsgSetDevAddressResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidSigner, "empty request")
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	sender, err := m.signer(req.Sender)
	if err != nil {
		return nil, err
	}
	newAddr, err := m.signer(req.NewAddress)
	if err != nil {
		return nil, err
	}
	if err := m.Keeper.SetDevAddress(ctx, sender, newAddr); err != nil {
		return nil, err
	}
	return &types.MsgSetDevAddressResponse{}, nil
}

func (m msgServer) SetFeeAddress(ctx context.Context, req *types.MsgSetFeeAddress) (*types.MsgSetFeeAddressResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidSigner, "empty request")
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	sender, err := m.signer(req.Sender)
	if err != nil {
		return nil, err
	}
	newAddr, err := m.signer(req.NewAddress)
	if err != nil {
		return nil, err
	}
	if err := m.Keeper.SetFeeAddress(ctx, sender, newAddr); err != nil {
		return nil, err
	}
	return &types.MsgSetFeeAddressResponse{}, nil
}

func (m msgServer) SetStartTime(ctx context.Context, req *types.MsgSetStartTime) (*types.MsgSetStartTimeResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidSigner, "empty request")
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	authority, err := m.signer(req.Authority)
	if err != nil {
		return nil, err
	}
	if err := m.Keeper.SetStartTime(ctx, authority, req.StartTime); err != nil {
		return nil, err
	}
	return &types.MsgSetStartTimeResponse{}, nil
}

func (m msgServer) Deposit(ctx context.Context, req *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidAmount, "empty request")
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	depositor, err := m.signer(req.Depositor)
	if err != nil {
		return nil, err
	}
	receipt, err := m.Keeper.Deposit(ctx, req.PoolID, depositor, req.Amount)
	if err != nil {
		return nil, err
	}
	telemetry.IncrCounter(1, types.ModuleName, "deposit")
	return &types.MsgDepositResponse{Receipt: receipt}, nil
}

func (m msgServer) Withdraw(ctx context.Context, req *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidAmount, "empty request")
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	depositor, err := m.signer(req.Depositor)
	if err != nil {
		return nil, err
	}
	harvest, err := m.Keeper.Withdraw(ctx, req.PoolID, depositor, req.Amount)
	if err != nil {
		return nil, err
	}
	telemetry.IncrCounter(1, types.ModuleName, "withdraw")
	return &types.MsgWithdrawResponse{Harvest: harvest}, nil
}

func (m msgServer) EmergencyWithdraw(ctx context.Context, req *types.MsgEmergencyWithdraw) (*types.MsgEmergencyWithdrawResponse, error) {
	if req == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidAmount, "empty request")
	}
	if err := req.ValidateBasic(); err != nil {
		return nil, err
	}
	depositor, err := m.signer(req.Depositor)
	if err != nil {
		return nil, err
	}
	amount, err := m.Keeper.EmergencyWithdraw(ctx, req.PoolID, depositor)
	if err != nil {
		return nil, err
	}
	telemetry.IncrCounter(1, types.ModuleName, "emergency_withdraw")
	return &types.MsgEmergencyWithdrawResponse{Amount: amount}, nil
}
