package factory

import "github.com/ZilDuck/nft-marketplace-engine/internal/entity"

func CreateMintAction(nft entity.Nft) entity.NftAction {
	return entity.NftAction{
		TokenId:    nft.TokenId,
		Collection: nft.Collection,
		Action:     entity.MintAction,
		From:       "",
		To:         nft.Owner,
		Cost:       nft.MintPrice.String(),
		Time:       nft.MintedAt,
	}
}

func CreateTransferAction(transfer entity.NftTransfer) entity.NftAction {
	return entity.NftAction{
		TokenId:    transfer.Nft.TokenId,
		Collection: transfer.Nft.Collection,
		Action:     entity.TransferAction,
		From:       transfer.From,
		To:         transfer.To,
		Time:       transfer.Time,
	}
}

func CreateListingAction(listing entity.MarketplaceListing) entity.NftAction {
	return entity.NftAction{
		TokenId:    listing.Nft.TokenId,
		Collection: listing.Nft.Collection,
		Action:     entity.ListingAction,
		From:       listing.Seller,
		Cost:       listing.Price.String(),
		Time:       listing.Time,
	}
}

func CreateDelistingAction(delisting entity.MarketplaceDelisting, action entity.ActionType) entity.NftAction {
	return entity.NftAction{
		TokenId:    delisting.Nft.TokenId,
		Collection: delisting.Nft.Collection,
		Action:     action,
		From:       delisting.Seller,
		Time:       delisting.Time,
	}
}

func CreateSaleAction(sale entity.MarketplaceSale) entity.NftAction {
	return entity.NftAction{
		TokenId:    sale.Nft.TokenId,
		Collection: sale.Nft.Collection,
		Action:     entity.SaleAction,
		From:       sale.Seller,
		To:         sale.Buyer,
		Cost:       sale.Cost.String(),
		Time:       sale.Time,
	}
}

func CreateAuctionCreatedAction(auction entity.MarketplaceAuction) entity.NftAction {
	return entity.NftAction{
		TokenId:    auction.Nft.TokenId,
		Collection: auction.Nft.Collection,
		Action:     entity.AuctionCreatedAction,
		From:       auction.Seller,
		Cost:       auction.StartingPrice.String(),
		Time:       auction.StartTime,
	}
}

func CreateBidAction(bid entity.MarketplaceBid) entity.NftAction {
	return entity.NftAction{
		TokenId:    bid.Nft.TokenId,
		Collection: bid.Nft.Collection,
		Action:     entity.BidAction,
		From:       bid.Bidder,
		Cost:       bid.Amount.String(),
		Time:       bid.Time,
	}
}

func CreateSettlementAction(settlement entity.MarketplaceSettlement) entity.NftAction {
	return entity.NftAction{
		TokenId:    settlement.Nft.TokenId,
		Collection: settlement.Nft.Collection,
		Action:     entity.AuctionSettledAction,
		From:       settlement.Seller,
		To:         settlement.Winner,
		Cost:       settlement.Amount.String(),
		Time:       settlement.Time,
	}
}
