package elastic_search

import (
	"fmt"

	"github.com/ZilDuck/nft-marketplace-engine/internal/config"
)

type Indices string

var (
	CollectionIndex Indices = "collection"
	NftIndex        Indices = "nft"
	ListingIndex    Indices = "listing"
	NftActionIndex  Indices = "nftaction"
	DevErrorIndex   Indices = "deverror"
)

// Sets the network and returns the full string
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}
