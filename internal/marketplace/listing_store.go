package marketplace

import (
	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/ZilDuck/nft-marketplace-engine/internal/registry"
	"github.com/shopspring/decimal"
)

// ListingStore is the per-item record of current exchange state. An item is
// in at most one non-None mode at any instant; the mode change on Close is
// the sole synchronization point that hands the item back for relisting.
type ListingStore struct {
	registry registry.AssetRegistry
	policy   Policy

	listings      map[uint64]*entity.Listing
	nextListingId uint64
}

func NewListingStore(assetRegistry registry.AssetRegistry, policy Policy) *ListingStore {
	return &ListingStore{
		registry:      assetRegistry,
		policy:        policy,
		listings:      make(map[uint64]*entity.Listing),
		nextListingId: 1,
	}
}

func (s *ListingStore) OpenSale(tokenId uint64, seller string, price decimal.Decimal) (*entity.Listing, error) {
	if err := s.checkOwnership(tokenId, seller); err != nil {
		return nil, err
	}
	if s.ModeOf(tokenId) != entity.ModeNone {
		return nil, ErrAlreadyListed
	}
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	listing := &entity.Listing{
		Id:      s.nextListingId,
		TokenId: tokenId,
		Mode:    entity.ModeDirectSale,
		Seller:  seller,
		Price:   price,
		Active:  true,
	}
	s.listings[tokenId] = listing
	s.nextListingId++

	return listing, nil
}

func (s *ListingStore) OpenAuction(tokenId uint64, seller string, startingPrice decimal.Decimal, startTime, endTime, now int64) (*entity.Listing, error) {
	if err := s.checkOwnership(tokenId, seller); err != nil {
		return nil, err
	}
	if s.ModeOf(tokenId) != entity.ModeNone {
		return nil, ErrAlreadyListed
	}
	if startTime >= endTime || endTime <= now {
		return nil, ErrInvalidWindow
	}

	nft, err := s.registry.GetNft(tokenId)
	if err != nil {
		return nil, err
	}
	if startingPrice.LessThan(s.policy.startingPriceFloor(nft.MintPrice)) {
		return nil, ErrPriceTooLow
	}

	listing := &entity.Listing{
		Id:            s.nextListingId,
		TokenId:       tokenId,
		Mode:          entity.ModeAuction,
		Seller:        seller,
		StartingPrice: startingPrice,
		StartTime:     startTime,
		EndTime:       endTime,
		Active:        true,
	}
	s.listings[tokenId] = listing
	s.nextListingId++

	return listing, nil
}

// Close resets the item to mode None. It is called only by the engines as
// part of their own completion or cancellation paths.
func (s *ListingStore) Close(tokenId uint64) {
	delete(s.listings, tokenId)
}

// Get returns the active listing, or nil when the item is in mode None.
func (s *ListingStore) Get(tokenId uint64) *entity.Listing {
	listing, ok := s.listings[tokenId]
	if !ok || !listing.Active {
		return nil
	}

	return listing
}

func (s *ListingStore) ModeOf(tokenId uint64) entity.ListingMode {
	listing := s.Get(tokenId)
	if listing == nil {
		return entity.ModeNone
	}

	return listing.Mode
}

func (s *ListingStore) IsListedForSale(tokenId uint64) bool {
	return s.ModeOf(tokenId) == entity.ModeDirectSale
}

func (s *ListingStore) IsInAuction(tokenId uint64) bool {
	return s.ModeOf(tokenId) == entity.ModeAuction
}

func (s *ListingStore) checkOwnership(tokenId uint64, seller string) error {
	owner, err := s.registry.OwnerOf(tokenId)
	if err != nil {
		return err
	}
	if owner != seller {
		return ErrNotOwner
	}

	return nil
}
