package types

import (
	errorsmod "cosmossdk.io/errors"
	math "cosmossdk.io/math"
)

// ShareScale is the fixed-point scale of AccRewardPerShare.
var ShareScale = math.NewInt(1_000_000_000_000)

// Multiplier returns the number of reward-bearing seconds in [from, to]. Nothing
// accrues before startTime.
func Multiplier(from, to, startTime int64) uint64 {
	if from < startTime {
		from = startTime
	}
	if to <= from {
		return 0
	}
	return uint64(to - from)
}

// PoolReward is the pool's slice of the global emission over multiplier seconds.
// A zero totalAllocPoint yields zero instead of dividing.
func PoolReward(multiplier uint64, rewardPerSecond math.Int, allocPoint, totalAllocPoint uint64) math.Int {
	if multiplier == 0 || totalAllocPoint == 0 || allocPoint == 0 {
		return math.ZeroInt()
	}
	return math.NewIntFromUint64(multiplier).
		Mul(rewardPerSecond).
		Mul(math.NewIntFromUint64(allocPoint)).
		Quo(math.NewIntFromUint64(totalAllocPoint))
}

// DevReward is minted to the dev address alongside every pool reward.
func DevReward(reward math.Int) math.Int {
	return reward.QuoRaw(DevShareDivisor)
}

// AccPerShareDelta converts an amount into an accumulator increment over totalStaked.
func AccPerShareDelta(amount, totalStaked math.Int) math.Int {
	if !totalStaked.IsPositive() || !amount.IsPositive() {
		return math.ZeroInt()
	}
	return amount.Mul(ShareScale).Quo(totalStaked)
}

// RewardDebtAt is the settled reward snapshot of amount at accumulator acc.
func RewardDebtAt(amount, acc math.Int) math.Int {
	return amount.Mul(acc).Quo(ShareScale)
}

// SplitVested divides a full pending reward into the part vested after
// now-depositTime seconds of a linear brewingTime ramp and the forfeited rest.
func SplitVested(fullPending math.Int, depositTime int64, brewingTime uint64, now int64) (vested, forfeited math.Int) {
	brewed := now - depositTime
	if brewed < 0 {
		brewed = 0
	}
	if brewingTime == 0 || uint64(brewed) >= brewingTime {
		return fullPending, math.ZeroInt()
	}
	vested = fullPending.Mul(math.NewInt(brewed)).Quo(math.NewIntFromUint64(brewingTime))
	return vested, fullPending.Sub(vested)
}

// SplitForfeit divides a forfeited reward into the part returned to the pool
// and the part sent to the fee address. A ratio above BasisPoints cannot be
// honoured and is reported as a configuration error.
func SplitForfeit(forfeited math.Int, distributionBP uint32) (distributedBack, toFeeSink math.Int, err error) {
	if distributionBP > BasisPoints {
		return math.Int{}, math.Int{}, errorsmod.Wrapf(ErrInvalidConfig, "forfeited distribution %d bp exceeds %d", distributionBP, BasisPoints)
	}
	distributedBack = forfeited.MulRaw(int64(distributionBP)).QuoRaw(BasisPoints)
	return distributedBack, forfeited.Sub(distributedBack), nil
}

// DepositFee is the pool's cut of an actually received deposit.
func DepositFee(received math.Int, depositFeeBP uint32) math.Int {
	if depositFeeBP == 0 {
		return math.ZeroInt()
	}
	return received.MulRaw(int64(depositFeeBP)).QuoRaw(BasisPoints)
}

// NextDepositTime moves the vesting clock of a position that already holds
// existing when depositAmount more is added at now. The result approximates a
// stake-weighted average start time without per-deposit history:
//   - first deposit, or a top-up of at least twice the stake: restart at now
//   - matured position: anchor at now-brewingTime, then advance by
//     depositAmount*brewingTime/existing/2
//   - otherwise advance the current clock by the same amount, never past now
func NextDepositTime(existing, depositAmount math.Int, depositTime int64, brewingTime uint64, now int64) int64 {
	if !existing.IsPositive() {
		return now
	}
	if depositAmount.GTE(existing.MulRaw(2)) {
		return now
	}
	advance := depositAmount.Mul(math.NewIntFromUint64(brewingTime)).Quo(existing).QuoRaw(2)
	// depositAmount < 2*existing keeps advance below brewingTime, which fits int64.
	step := advance.Int64()
	if now-depositTime >= int64(brewingTime) {
		return now - int64(brewingTime) + step
	}
	next := depositTime + step
	if next > now {
		return now
	}
	return next
}

// PendingReward projects the vested reward a user would receive if the pool
// were settled at now. It mirrors the accrual and vesting math exactly and
// touches no state.
func PendingReward(pool Pool, user UserInfo, params Params, totalAllocPoint uint64, now int64) math.Int {
	acc := pool.AccRewardPerShare
	if now > pool.LastRewardTime && pool.TotalStaked.IsPositive() && totalAllocPoint > 0 {
		reward := PoolReward(Multiplier(pool.LastRewardTime, now, params.StartTime), params.RewardPerSecond, pool.AllocPoint, totalAllocPoint)
		acc = acc.Add(AccPerShareDelta(reward, pool.TotalStaked))
	}
	vested, _ := SplitVested(user.PendingAt(acc), user.DepositTime, pool.BrewingTime, now)
	return vested
}
