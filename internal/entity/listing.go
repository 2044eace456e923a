package entity

import (
	"fmt"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

type ListingMode string

const (
	ModeNone       ListingMode = "none"
	ModeDirectSale ListingMode = "sale"
	ModeAuction    ListingMode = "auction"
)

type AuctionState string

const (
	AuctionScheduled AuctionState = "scheduled"
	AuctionOpen      AuctionState = "open"
	AuctionEnded     AuctionState = "ended"
	AuctionClosed    AuctionState = "closed"
)

type Listing struct {
	Id      uint64      `json:"listingId"`
	TokenId uint64      `json:"tokenId"`
	Mode    ListingMode `json:"mode"`
	Seller  string      `json:"seller"`

	Price decimal.Decimal `json:"price"`

	StartingPrice decimal.Decimal `json:"startingPrice"`
	StartTime     int64           `json:"startTime"`
	EndTime       int64           `json:"endTime"`
	HighestBid    *Bid            `json:"highestBid,omitempty"`

	Active bool `json:"active"`
}

type Bid struct {
	Bidder   string          `json:"bidder"`
	Amount   decimal.Decimal `json:"amount"`
	PlacedAt int64           `json:"placedAt"`
}

// State is evaluated lazily against the supplied clock value. Nothing fires
// when a deadline passes; a deadline only changes what the next call may do.
func (l Listing) State(now int64) AuctionState {
	if l.Mode != ModeAuction || !l.Active {
		return AuctionClosed
	}
	if now < l.StartTime {
		return AuctionScheduled
	}
	if now < l.EndTime {
		return AuctionOpen
	}
	return AuctionEnded
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.TokenId)
}

func CreateListingSlug(tokenId uint64) string {
	return slug.Make(fmt.Sprintf("listing-%d", tokenId))
}
