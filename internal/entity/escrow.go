package entity

import "github.com/shopspring/decimal"

type EscrowPurpose string

const (
	EscrowBid  EscrowPurpose = "bid"
	EscrowSale EscrowPurpose = "sale"
)

// EscrowEntry holds value on behalf of a party pending settlement or refund.
// An entry is released exactly once; release deletes it.
type EscrowEntry struct {
	TokenId uint64          `json:"tokenId"`
	Purpose EscrowPurpose   `json:"purpose"`
	Amount  decimal.Decimal `json:"amount"`
	From    string          `json:"from"`
}
