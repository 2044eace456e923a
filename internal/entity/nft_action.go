package entity

import (
	"crypto/md5"
	"fmt"
)

type NftAction struct {
	TokenId    uint64     `json:"tokenId"`
	Collection uint64     `json:"collection"`
	Action     ActionType `json:"action"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	Cost       string     `json:"cost"`
	Time       int64      `json:"time"`
}

type ActionType string

const (
	MintAction             ActionType = "mint"
	TransferAction         ActionType = "transfer"
	ListingAction          ActionType = "listing"
	DelistingAction        ActionType = "delisting"
	SaleAction             ActionType = "sale"
	AuctionCreatedAction   ActionType = "auctionCreated"
	BidAction              ActionType = "bid"
	AuctionSettledAction   ActionType = "auctionSettled"
	AuctionCancelledAction ActionType = "auctionCancelled"
)

func (n NftAction) Slug() string {
	return CreateNftActionSlug(n.TokenId, string(n.Action), n.Time)
}

func CreateNftActionSlug(tokenId uint64, action string, time int64) string {
	data := []byte(fmt.Sprintf("nftaction-%d-%s-%d", tokenId, action, time))
	return fmt.Sprintf("%x", md5.Sum(data))
}
