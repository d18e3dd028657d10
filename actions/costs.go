package actions

const (
	// CreateMarketComputeUnits covers two slot allocations.
	CreateMarketComputeUnits uint64 = 100

	BuyComputeUnits   uint64 = 50
	SellComputeUnits  uint64 = 50
	CloseComputeUnits uint64 = 25
	ClaimComputeUnits uint64 = 75
)
