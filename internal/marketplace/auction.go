package marketplace

import (
	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/ZilDuck/nft-marketplace-engine/internal/event"
	"github.com/ZilDuck/nft-marketplace-engine/internal/registry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AuctionEngine owns the Auction listing mode. State transitions are driven
// by wall-clock comparisons evaluated at call time; there is no scheduler.
type AuctionEngine struct {
	registry registry.AssetRegistry
	listings *ListingStore
	escrow   *EscrowLedger
	clock    registry.Clock
}

func NewAuctionEngine(assetRegistry registry.AssetRegistry, listings *ListingStore, escrow *EscrowLedger, clock registry.Clock) *AuctionEngine {
	return &AuctionEngine{assetRegistry, listings, escrow, clock}
}

func (e *AuctionEngine) CreateAuction(tokenId uint64, seller string, startingPrice decimal.Decimal, startTime, endTime int64) (*entity.Listing, error) {
	listing, err := e.listings.OpenAuction(tokenId, seller, startingPrice, startTime, endTime, e.clock.Now())
	if err != nil {
		return nil, err
	}

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", seller),
		zap.String("startingPrice", startingPrice.String()),
		zap.Int64("startTime", startTime),
		zap.Int64("endTime", endTime),
	).Info("Marketplace: Auction created")

	nft, _ := e.registry.GetNft(tokenId)
	event.EmitEvent(event.AuctionCreatedEvent, entity.MarketplaceAuction{
		ListingId:     listing.Id,
		Nft:           *nft,
		Seller:        seller,
		StartingPrice: startingPrice,
		StartTime:     startTime,
		EndTime:       endTime,
	})

	return listing, nil
}

// PlaceBid admits a strictly higher bid. The displaced bidder is refunded
// before the new bid is held, so the ledger never carries two bids claiming
// the same highest slot.
func (e *AuctionEngine) PlaceBid(tokenId uint64, bidder string, amount decimal.Decimal) error {
	listing := e.listings.Get(tokenId)
	if listing == nil || listing.Mode != entity.ModeAuction {
		return ErrNotOpen
	}
	if bidder == listing.Seller {
		return ErrSelfBid
	}

	now := e.clock.Now()
	if listing.State(now) != entity.AuctionOpen {
		return ErrNotOpen
	}

	if amount.LessThan(listing.StartingPrice) {
		return ErrBidTooLow
	}
	if listing.HighestBid != nil && amount.LessThanOrEqual(listing.HighestBid.Amount) {
		return ErrBidTooLow
	}

	var refunded *entity.Bid
	if listing.HighestBid != nil {
		displaced := *listing.HighestBid
		if _, err := e.escrow.Release(tokenId, entity.EscrowBid, displaced.Bidder); err != nil {
			return err
		}
		refunded = &displaced

		zap.L().With(
			zap.Uint64("tokenId", tokenId),
			zap.String("bidder", displaced.Bidder),
			zap.String("amount", displaced.Amount.String()),
		).Info("Marketplace: Displaced bid refunded")
	}

	e.escrow.Hold(tokenId, entity.EscrowBid, amount, bidder)
	listing.HighestBid = &entity.Bid{Bidder: bidder, Amount: amount, PlacedAt: now}

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("bidder", bidder),
		zap.String("amount", amount.String()),
	).Info("Marketplace: Bid placed")

	nft, _ := e.registry.GetNft(tokenId)
	event.EmitEvent(event.BidPlacedEvent, entity.MarketplaceBid{
		Nft:      *nft,
		Bidder:   bidder,
		Amount:   amount,
		Refunded: refunded,
		Time:     now,
	})

	return nil
}

// Finalize is the permissionless settle step: once the window has passed,
// any party may close the auction out.
func (e *AuctionEngine) Finalize(tokenId uint64, caller string) (*entity.MarketplaceSettlement, error) {
	listing := e.listings.Get(tokenId)
	if listing == nil || listing.Mode != entity.ModeAuction {
		return nil, ErrNotListed
	}

	now := e.clock.Now()
	if state := listing.State(now); state == entity.AuctionScheduled || state == entity.AuctionOpen {
		return nil, ErrAuctionNotEnded
	}

	seller := listing.Seller

	if listing.HighestBid == nil {
		e.listings.Close(tokenId)

		zap.L().With(
			zap.Uint64("tokenId", tokenId),
			zap.String("caller", caller),
		).Info("Marketplace: Auction finalized without bids")

		nft, _ := e.registry.GetNft(tokenId)
		settlement := entity.MarketplaceSettlement{
			Nft:    *nft,
			Seller: seller,
			Winner: "",
			Amount: decimal.Zero,
			Time:   now,
		}
		event.EmitEvent(event.AuctionFinalizedEvent, settlement)

		return &settlement, nil
	}

	winner := listing.HighestBid.Bidder
	amount := listing.HighestBid.Amount

	owner, err := e.registry.OwnerOf(tokenId)
	if err != nil {
		return nil, err
	}
	if owner != seller {
		// The seller moved the item through the registry mid-auction, so
		// the sale cannot settle. The held bid goes back to the bidder and
		// the listing closes; the escrow entry must never outlive it.
		if _, err := e.escrow.Release(tokenId, entity.EscrowBid, winner); err != nil {
			return nil, err
		}
		e.listings.Close(tokenId)

		zap.L().With(
			zap.Uint64("tokenId", tokenId),
			zap.String("seller", seller),
			zap.String("bidder", winner),
			zap.String("amount", amount.String()),
		).Warn("Marketplace: Auction voided, seller no longer owns item")

		nft, _ := e.registry.GetNft(tokenId)
		settlement := entity.MarketplaceSettlement{
			Nft:    *nft,
			Seller: seller,
			Winner: "",
			Amount: decimal.Zero,
			Time:   now,
		}
		event.EmitEvent(event.AuctionFinalizedEvent, settlement)

		return &settlement, nil
	}

	if err := e.registry.Transfer(tokenId, seller, winner); err != nil {
		return nil, err
	}
	if _, err := e.escrow.Release(tokenId, entity.EscrowBid, seller); err != nil {
		return nil, err
	}
	e.listings.Close(tokenId)

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("winner", winner),
		zap.String("amount", amount.String()),
	).Info("Marketplace: Auction finalized")

	nft, _ := e.registry.GetNft(tokenId)
	settlement := entity.MarketplaceSettlement{
		Nft:    *nft,
		Seller: seller,
		Winner: winner,
		Amount: amount,
		Time:   now,
	}
	event.EmitEvent(event.AuctionFinalizedEvent, settlement)

	return &settlement, nil
}

// Cancel lets the seller withdraw an auction nobody has committed capital to.
func (e *AuctionEngine) Cancel(tokenId uint64, caller string) error {
	listing := e.listings.Get(tokenId)
	if listing == nil || listing.Mode != entity.ModeAuction {
		return ErrNotListed
	}
	if listing.Seller != caller {
		return ErrNotSeller
	}
	if listing.HighestBid != nil {
		return ErrHasBids
	}

	e.listings.Close(tokenId)

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", caller),
	).Info("Marketplace: Auction cancelled")

	nft, _ := e.registry.GetNft(tokenId)
	event.EmitEvent(event.AuctionCancelledEvent, entity.MarketplaceDelisting{
		Nft:    *nft,
		Seller: caller,
		Time:   e.clock.Now(),
	})

	return nil
}
