package marketplace

import "github.com/shopspring/decimal"

// Policy holds the fixed deployment parameters the engine reads but never
// persists. The starting-price floor protects minters: an auction can never
// open below the mint price plus one increment.
type Policy struct {
	MinBidIncrement  decimal.Decimal
	MinStartingPrice decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		MinBidIncrement:  decimal.RequireFromString("0.01"),
		MinStartingPrice: decimal.RequireFromString("0.03"),
	}
}

func (p Policy) startingPriceFloor(mintPrice decimal.Decimal) decimal.Decimal {
	floor := mintPrice.Add(p.MinBidIncrement)
	if floor.LessThan(p.MinStartingPrice) {
		return p.MinStartingPrice
	}

	return floor
}
