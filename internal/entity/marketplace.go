package entity

import "github.com/shopspring/decimal"

type MarketplaceListing struct {
	ListingId uint64          `json:"listingId"`
	Nft       Nft             `json:"nft"`
	Price     decimal.Decimal `json:"price"`
	Seller    string          `json:"seller"`
	Time      int64           `json:"time"`
}

type MarketplaceDelisting struct {
	Nft    Nft    `json:"nft"`
	Seller string `json:"seller"`
	Time   int64  `json:"time"`
}

type MarketplaceSale struct {
	Nft    Nft             `json:"nft"`
	Seller string          `json:"seller"`
	Buyer  string          `json:"buyer"`
	Cost   decimal.Decimal `json:"cost"`
	Time   int64           `json:"time"`
}

type MarketplaceAuction struct {
	ListingId     uint64          `json:"listingId"`
	Nft           Nft             `json:"nft"`
	Seller        string          `json:"seller"`
	StartingPrice decimal.Decimal `json:"startingPrice"`
	StartTime     int64           `json:"startTime"`
	EndTime       int64           `json:"endTime"`
}

type MarketplaceBid struct {
	Nft      Nft             `json:"nft"`
	Bidder   string          `json:"bidder"`
	Amount   decimal.Decimal `json:"amount"`
	Refunded *Bid            `json:"refunded,omitempty"`
	Time     int64           `json:"time"`
}

type NftTransfer struct {
	Nft  Nft    `json:"nft"`
	From string `json:"from"`
	To   string `json:"to"`
	Time int64  `json:"time"`
}

// Winner is empty when an auction ends without a single bid.
type MarketplaceSettlement struct {
	Nft    Nft             `json:"nft"`
	Seller string          `json:"seller"`
	Winner string          `json:"winner"`
	Amount decimal.Decimal `json:"amount"`
	Time   int64           `json:"time"`
}
