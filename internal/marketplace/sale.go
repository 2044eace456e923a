package marketplace

import (
	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/ZilDuck/nft-marketplace-engine/internal/event"
	"github.com/ZilDuck/nft-marketplace-engine/internal/registry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleEngine owns the DirectSale listing mode.
type SaleEngine struct {
	registry registry.AssetRegistry
	listings *ListingStore
	escrow   *EscrowLedger
	clock    registry.Clock
}

func NewSaleEngine(assetRegistry registry.AssetRegistry, listings *ListingStore, escrow *EscrowLedger, clock registry.Clock) *SaleEngine {
	return &SaleEngine{assetRegistry, listings, escrow, clock}
}

func (e *SaleEngine) Sell(tokenId uint64, seller string, price decimal.Decimal) (*entity.Listing, error) {
	listing, err := e.listings.OpenSale(tokenId, seller, price)
	if err != nil {
		return nil, err
	}

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", seller),
		zap.String("price", price.String()),
	).Info("Marketplace: NFT listed for sale")

	nft, _ := e.registry.GetNft(tokenId)
	event.EmitEvent(event.ListedEvent, entity.MarketplaceListing{
		ListingId: listing.Id,
		Nft:       *nft,
		Price:     price,
		Seller:    seller,
		Time:      e.clock.Now(),
	})

	return listing, nil
}

func (e *SaleEngine) CancelSell(tokenId uint64, caller string) error {
	listing := e.listings.Get(tokenId)
	if listing == nil || listing.Mode != entity.ModeDirectSale {
		return ErrNotListed
	}
	if listing.Seller != caller {
		return ErrNotSeller
	}

	e.listings.Close(tokenId)

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", caller),
	).Info("Marketplace: Sale cancelled")

	nft, _ := e.registry.GetNft(tokenId)
	event.EmitEvent(event.SaleCancelledEvent, entity.MarketplaceDelisting{
		Nft:    *nft,
		Seller: caller,
		Time:   e.clock.Now(),
	})

	return nil
}

// Buy settles a direct sale. All checks run before any state is touched;
// ownership moves first, then funds, then the listing closes, then observers
// are notified (mutate-then-notify).
func (e *SaleEngine) Buy(tokenId uint64, buyer string, paid decimal.Decimal) error {
	listing := e.listings.Get(tokenId)
	if listing == nil || listing.Mode != entity.ModeDirectSale {
		return ErrNotListed
	}
	if buyer == listing.Seller {
		return ErrSelfPurchase
	}
	if paid.LessThan(listing.Price) {
		return ErrInsufficientFunds
	}

	// The seller could have moved the item through the registry since the
	// listing opened. Re-checking here keeps the settle path all-or-nothing.
	owner, err := e.registry.OwnerOf(tokenId)
	if err != nil {
		return err
	}
	if owner != listing.Seller {
		return ErrNotOwner
	}

	if err := e.registry.Transfer(tokenId, listing.Seller, buyer); err != nil {
		return err
	}

	e.escrow.Hold(tokenId, entity.EscrowSale, listing.Price, buyer)
	if _, err := e.escrow.Release(tokenId, entity.EscrowSale, listing.Seller); err != nil {
		return err
	}
	e.escrow.Refund(buyer, paid.Sub(listing.Price))

	seller := listing.Seller
	price := listing.Price
	e.listings.Close(tokenId)

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", seller),
		zap.String("buyer", buyer),
		zap.String("price", price.String()),
	).Info("Marketplace: NFT sold")

	nft, _ := e.registry.GetNft(tokenId)
	event.EmitEvent(event.SoldEvent, entity.MarketplaceSale{
		Nft:    *nft,
		Seller: seller,
		Buyer:  buyer,
		Cost:   price,
		Time:   e.clock.Now(),
	})

	return nil
}
