package marketplace

import (
	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type escrowKey struct {
	tokenId uint64
	purpose entity.EscrowPurpose
}

// EscrowLedger holds value attached to active bids and pending sale proceeds.
// Release deletes the entry atomically with the payout, so a second release
// of the same entry always fails with ErrNoEscrow instead of paying twice.
type EscrowLedger struct {
	entries  map[escrowKey]entity.EscrowEntry
	balances map[string]decimal.Decimal
}

func NewEscrowLedger() *EscrowLedger {
	return &EscrowLedger{
		entries:  make(map[escrowKey]entity.EscrowEntry),
		balances: make(map[string]decimal.Decimal),
	}
}

func (l *EscrowLedger) Hold(tokenId uint64, purpose entity.EscrowPurpose, amount decimal.Decimal, from string) {
	l.entries[escrowKey{tokenId, purpose}] = entity.EscrowEntry{
		TokenId: tokenId,
		Purpose: purpose,
		Amount:  amount,
		From:    from,
	}
}

// Release pays the held value out to the recipient: the original depositor on
// refund, the seller on settlement.
func (l *EscrowLedger) Release(tokenId uint64, purpose entity.EscrowPurpose, to string) (decimal.Decimal, error) {
	key := escrowKey{tokenId, purpose}
	entry, ok := l.entries[key]
	if !ok {
		zap.L().With(
			zap.Uint64("tokenId", tokenId),
			zap.String("purpose", string(purpose)),
		).Error("Escrow: Release without matching entry")

		return decimal.Zero, ErrNoEscrow
	}

	delete(l.entries, key)
	l.credit(to, entry.Amount)

	return entry.Amount, nil
}

// Refund credits value straight back to a principal without an entry. Used
// for the slice of a direct-sale payment above the listed price.
func (l *EscrowLedger) Refund(principal string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	l.credit(principal, amount)
}

func (l *EscrowLedger) Held(tokenId uint64, purpose entity.EscrowPurpose) (entity.EscrowEntry, bool) {
	entry, ok := l.entries[escrowKey{tokenId, purpose}]

	return entry, ok
}

func (l *EscrowLedger) BalanceOf(principal string) decimal.Decimal {
	balance, ok := l.balances[principal]
	if !ok {
		return decimal.Zero
	}

	return balance
}

func (l *EscrowLedger) credit(principal string, amount decimal.Decimal) {
	l.balances[principal] = l.BalanceOf(principal).Add(amount)
}
