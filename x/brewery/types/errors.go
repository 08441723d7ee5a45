package types

import errorsmod "cosmossdk.io/errors"

// DONTCOVER

var (
	ErrInvalidSigner       = errorsmod.Register(ModuleName, 1100, "invalid signer")
	ErrUnauthorized        = errorsmod.Register(ModuleName, 1101, "unauthorized")
	ErrInvalidConfig       = errorsmod.Register(ModuleName, 1102, "invalid configuration")
	ErrInvalidAmount       = errorsmod.Register(ModuleName, 1103, "invalid amount")
	ErrInvalidAddress      = errorsmod.Register(ModuleName, 1104, "invalid address")
	ErrPoolNotFound        = errorsmod.Register(ModuleName, 1105, "pool not found")
	ErrInsufficientBalance = errorsmod.Register(ModuleName, 1106, "insufficient staked balance")
)
