package elastic_search

import (
	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"go.uber.org/zap"
)

// Pending requests for the same document are folded together before persist
// so a transfer landing on top of an unflushed mint updates the same doc.
func mergeRequests(index string, cached Request, action RequestAction, e entity.Entity) entity.Entity {
	switch {
	case index == CollectionIndex.Get():
		result := cached.Entity.(entity.Collection)
		if action == CollectionUpdate {
			result.Active = e.(entity.Collection).Active
		}
		return result

	case index == NftIndex.Get():
		result := cached.Entity.(entity.Nft)
		if action == NftTransfer {
			result.Owner = e.(entity.Nft).Owner
		}
		return result

	case index == ListingIndex.Get():
		if action == ListingClose {
			result := cached.Entity.(entity.Listing)
			result.Mode = e.(entity.Listing).Mode
			result.Active = false
			return result
		}
		return e.(entity.Listing)

	case index == NftActionIndex.Get():
		return e.(entity.NftAction)
	}

	zap.L().With(zap.String("index", index)).Warn("ElasticCache: No merge rule for index")

	return e
}
