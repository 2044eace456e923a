package marketplace

// ErrorKind classifies every failure the engine can surface. Authorization:
// the caller lacks standing. StateConflict: the target is not in the required
// lifecycle state. ValueError: an economic or temporal parameter violates a
// policy bound. Integrity: an invariant the engine itself should have upheld
// was violated; this signals a defect, not caller misuse.
type ErrorKind string

const (
	Authorization ErrorKind = "authorization"
	StateConflict ErrorKind = "stateConflict"
	ValueError    ErrorKind = "valueError"
	Integrity     ErrorKind = "integrity"
)

type Error struct {
	Kind  ErrorKind
	Field string
	msg   string
}

func (e *Error) Error() string {
	return e.msg
}

var (
	ErrNotOwner     = &Error{Authorization, "seller", "you don't own this nft"}
	ErrNotSeller    = &Error{Authorization, "caller", "only the seller can do this"}
	ErrSelfBid      = &Error{Authorization, "bidder", "cannot bid on your own auction"}
	ErrSelfPurchase = &Error{Authorization, "buyer", "cannot buy your own nft"}

	ErrAlreadyListed   = &Error{StateConflict, "mode", "nft is already listed"}
	ErrNotListed       = &Error{StateConflict, "mode", "nft is not listed"}
	ErrNotOpen         = &Error{StateConflict, "state", "auction is not open for bids"}
	ErrAuctionNotEnded = &Error{StateConflict, "state", "auction has not ended yet"}
	ErrHasBids         = &Error{StateConflict, "state", "auction already has bids"}

	ErrInvalidPrice      = &Error{ValueError, "price", "price must be greater than zero"}
	ErrPriceTooLow       = &Error{ValueError, "startingPrice", "starting price below minimum"}
	ErrBidTooLow         = &Error{ValueError, "amount", "bid must exceed the current highest bid"}
	ErrInsufficientFunds = &Error{ValueError, "amount", "insufficient funds to buy nft"}
	ErrInvalidWindow     = &Error{ValueError, "endTime", "auction window is invalid"}

	ErrNoEscrow = &Error{Integrity, "escrow", "no escrow entry to release"}
)
