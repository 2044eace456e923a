package indexer

import (
	"errors"

	"github.com/ZilDuck/nft-marketplace-engine/internal/dev"
	"github.com/ZilDuck/nft-marketplace-engine/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/ZilDuck/nft-marketplace-engine/internal/factory"
	"go.uber.org/zap"
)

var errUnexpectedPayload = errors.New("unexpected event payload")

// ActionIndexer projects marketplace notifications into the nftaction index
// (and keeps the nft document's owner current). It consumes events after the
// engines have committed; it never reads its output back into the core.
type ActionIndexer interface {
	OnCollectionCreated(el interface{})
	OnCollectionUpdated(el interface{})
	OnNftMinted(el interface{})
	OnNftTransfer(el interface{})
	OnListed(el interface{})
	OnSaleCancelled(el interface{})
	OnSold(el interface{})
	OnAuctionCreated(el interface{})
	OnBidPlaced(el interface{})
	OnAuctionFinalized(el interface{})
	OnAuctionCancelled(el interface{})
}

type actionIndexer struct {
	elastic elastic_search.Index
}

func NewActionIndexer(elastic elastic_search.Index) ActionIndexer {
	return actionIndexer{elastic}
}

func (i actionIndexer) OnCollectionCreated(el interface{}) {
	collection, ok := el.(entity.Collection)
	if !ok {
		i.badPayload("OnCollectionCreated", el)
		return
	}

	i.elastic.AddIndexRequest(elastic_search.CollectionIndex.Get(), collection, elastic_search.CollectionCreate)
}

func (i actionIndexer) OnCollectionUpdated(el interface{}) {
	collection, ok := el.(entity.Collection)
	if !ok {
		i.badPayload("OnCollectionUpdated", el)
		return
	}

	i.elastic.AddUpdateRequest(elastic_search.CollectionIndex.Get(), collection, elastic_search.CollectionUpdate)
}

func (i actionIndexer) OnNftMinted(el interface{}) {
	nft, ok := el.(entity.Nft)
	if !ok {
		i.badPayload("OnNftMinted", el)
		return
	}

	i.elastic.AddIndexRequest(elastic_search.NftIndex.Get(), nft, elastic_search.NftMint)
	i.elastic.AddIndexRequest(elastic_search.NftActionIndex.Get(), factory.CreateMintAction(nft), elastic_search.NftAction)
}

func (i actionIndexer) OnNftTransfer(el interface{}) {
	transfer, ok := el.(entity.NftTransfer)
	if !ok {
		i.badPayload("OnNftTransfer", el)
		return
	}

	i.elastic.AddUpdateRequest(elastic_search.NftIndex.Get(), transfer.Nft, elastic_search.NftTransfer)
	i.elastic.AddIndexRequest(elastic_search.NftActionIndex.Get(), factory.CreateTransferAction(transfer), elastic_search.NftAction)
}

func (i actionIndexer) OnListed(el interface{}) {
	listing, ok := el.(entity.MarketplaceListing)
	if !ok {
		i.badPayload("OnListed", el)
		return
	}

	zap.L().With(
		zap.Uint64("tokenId", listing.Nft.TokenId),
		zap.String("cost", listing.Price.String()),
	).Info("ActionIndexer: Marketplace listing")

	i.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), entity.Listing{
		Id:      listing.ListingId,
		TokenId: listing.Nft.TokenId,
		Mode:    entity.ModeDirectSale,
		Seller:  listing.Seller,
		Price:   listing.Price,
		Active:  true,
	}, elastic_search.ListingOpen)
	i.elastic.AddIndexRequest(elastic_search.NftActionIndex.Get(), factory.CreateListingAction(listing), elastic_search.NftAction)
}

func (i actionIndexer) OnSaleCancelled(el interface{}) {
	delisting, ok := el.(entity.MarketplaceDelisting)
	if !ok {
		i.badPayload("OnSaleCancelled", el)
		return
	}

	i.closeListing(delisting.Nft.TokenId)
	i.elastic.AddIndexRequest(elastic_search.NftActionIndex.Get(), factory.CreateDelistingAction(delisting, entity.DelistingAction), elastic_search.NftAction)
}

func (i actionIndexer) OnSold(el interface{}) {
	sale, ok := el.(entity.MarketplaceSale)
	if !ok {
		i.badPayload("OnSold", el)
		return
	}

	zap.L().With(
		zap.Uint64("tokenId", sale.Nft.TokenId),
		zap.String("from", sale.Seller),
		zap.String("to", sale.Buyer),
		zap.String("cost", sale.Cost.String()),
	).Info("ActionIndexer: Marketplace trade")

	i.closeListing(sale.Nft.TokenId)
	i.elastic.AddIndexRequest(elastic_search.NftActionIndex.Get(), factory.CreateSaleAction(sale), elastic_search.NftAction)
}

func (i actionIndexer) OnAuctionCreated(el interface{}) {
	auction, ok := el.(entity.MarketplaceAuction)
	if !ok {
		i.badPayload("OnAuctionCreated", el)
		return
	}

	i.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), entity.Listing{
		Id:            auction.ListingId,
		TokenId:       auction.Nft.TokenId,
		Mode:          entity.ModeAuction,
		Seller:        auction.Seller,
		StartingPrice: auction.StartingPrice,
		StartTime:     auction.StartTime,
		EndTime:       auction.EndTime,
		Active:        true,
	}, elastic_search.ListingOpen)
	i.elastic.AddIndexRequest(elastic_search.NftActionIndex.Get(), factory.CreateAuctionCreatedAction(auction), elastic_search.NftAction)
}

func (i actionIndexer) OnBidPlaced(el interface{}) {
	bid, ok := el.(entity.MarketplaceBid)
	if !ok {
		i.badPayload("OnBidPlaced", el)
		return
	}

	i.elastic.AddIndexRequest(elastic_search.NftActionIndex.Get(), factory.CreateBidAction(bid), elastic_search.NftAction)
}

func (i actionIndexer) OnAuctionFinalized(el interface{}) {
	settlement, ok := el.(entity.MarketplaceSettlement)
	if !ok {
		i.badPayload("OnAuctionFinalized", el)
		return
	}

	zap.L().With(
		zap.Uint64("tokenId", settlement.Nft.TokenId),
		zap.String("winner", settlement.Winner),
		zap.String("amount", settlement.Amount.String()),
	).Info("ActionIndexer: Auction settled")

	i.closeListing(settlement.Nft.TokenId)
	i.elastic.AddIndexRequest(elastic_search.NftActionIndex.Get(), factory.CreateSettlementAction(settlement), elastic_search.NftAction)
}

func (i actionIndexer) OnAuctionCancelled(el interface{}) {
	delisting, ok := el.(entity.MarketplaceDelisting)
	if !ok {
		i.badPayload("OnAuctionCancelled", el)
		return
	}

	i.closeListing(delisting.Nft.TokenId)
	i.elastic.AddIndexRequest(elastic_search.NftActionIndex.Get(), factory.CreateDelistingAction(delisting, entity.AuctionCancelledAction), elastic_search.NftAction)
}

func (i actionIndexer) closeListing(tokenId uint64) {
	i.elastic.AddUpdateRequest(elastic_search.ListingIndex.Get(), entity.Listing{
		TokenId: tokenId,
		Mode:    entity.ModeNone,
		Active:  false,
	}, elastic_search.ListingClose)
}

// badPayload records a listener wired to the wrong event type. This is a
// defect in the process wiring, so it lands in the dev error index.
func (i actionIndexer) badPayload(handler string, el interface{}) {
	zap.L().With(zap.String("handler", handler)).Error("ActionIndexer: Unexpected payload")

	i.elastic.AddIndexRequest(
		elastic_search.DevErrorIndex.Get(),
		dev.NewError("actionIndexer", handler, errUnexpectedPayload, map[string]interface{}{"payload": el}),
		elastic_search.DevError,
	)
}
