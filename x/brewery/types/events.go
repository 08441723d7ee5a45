package types

const (
	EventDeposit           = "brewery.deposit"
	EventWithdraw          = "brewery.withdraw"
	EventEmergencyWithdraw = "brewery.emergency_withdraw"
	EventHarvest           = "brewery.harvest"
	EventForfeit           = "brewery.forfeit"
	EventAccrue            = "brewery.accrue"
	EventPoolAdded         = "brewery.pool_added"
	EventPoolUpdated       = "brewery.pool_updated"
	EventParamsUpdated     = "brewery.params_updated"
)

const (
	AttrPoolID          = "pool_id"
	AttrUser            = "user"
	AttrAmount          = "amount"
	AttrReceived        = "received"
	AttrDepositFee      = "deposit_fee"
	AttrVested          = "vested"
	AttrForfeited       = "forfeited"
	AttrPaid            = "paid"
	AttrDistributedBack = "distributed_back"
	AttrToFeeSink       = "to_fee_sink"
	AttrStranded        = "stranded"
	AttrReward          = "reward"
	AttrDevReward       = "dev_reward"
	AttrAccPerShare     = "acc_reward_per_share"
	AttrDenom           = "denom"
	AttrAllocPoint      = "alloc_point"
	AttrDepositFeeBP    = "deposit_fee_bp"
	AttrBrewingTime     = "brewing_time"
	AttrParam           = "param"
	AttrValue           = "value"
)
