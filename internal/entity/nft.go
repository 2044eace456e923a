package entity

import (
	"fmt"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

type Nft struct {
	TokenId    uint64          `json:"tokenId"`
	Collection uint64          `json:"collection"`
	Name       string          `json:"name"`
	Owner      string          `json:"owner"`
	MintPrice  decimal.Decimal `json:"mintPrice"`
	MintedAt   int64           `json:"mintedAt"`
	Exists     bool            `json:"exists"`
	BurnedAt   int64           `json:"burnedAt"`
}

func (n Nft) Slug() string {
	return CreateNftSlug(n.TokenId)
}

func CreateNftSlug(tokenId uint64) string {
	return slug.Make(fmt.Sprintf("nft-%d", tokenId))
}
