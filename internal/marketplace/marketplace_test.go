package marketplace

import (
	"testing"

	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/ZilDuck/nft-marketplace-engine/internal/registry"
	"github.com/shopspring/decimal"
)

type fakeClock struct {
	now int64
}

func (c *fakeClock) Now() int64 {
	return c.now
}

func newTestMarket(now int64) (*Marketplace, registry.AssetRegistry, *fakeClock) {
	clock := &fakeClock{now: now}
	assetRegistry := registry.NewAssetRegistry(clock)
	market := NewMarketplace(assetRegistry, DefaultPolicy(), clock)

	return market, assetRegistry, clock
}

func mintToken(t *testing.T, assetRegistry registry.AssetRegistry, owner, price string) uint64 {
	t.Helper()

	collection, err := assetRegistry.CreateCollection("Test Collection", owner)
	if err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	nft, err := assetRegistry.MintNft(collection.Id, owner, "Test NFT", decimal.RequireFromString(price))
	if err != nil {
		t.Fatalf("MintNft: %v", err)
	}

	return nft.TokenId
}

func d(t *testing.T, value string) decimal.Decimal {
	t.Helper()

	return decimal.RequireFromString(value)
}

func TestReturnedListingIsDetachedFromStore(t *testing.T) {
	market, assetRegistry, clock := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	listing, err := market.SellNFT(tokenId, "0xalice", d(t, "1.5"))
	if err != nil {
		t.Fatalf("SellNFT: %v", err)
	}

	listing.Price = d(t, "99")
	listing.Active = false

	got, err := market.GetListing(tokenId)
	if err != nil {
		t.Fatalf("GetListing: %v", err)
	}
	if !got.Price.Equal(d(t, "1.5")) {
		t.Errorf("price = %s, want 1.5", got.Price)
	}
	if !got.Active {
		t.Error("listing should still be active")
	}
	if err := market.BuyNFT(tokenId, "0xbob", d(t, "1.5")); err != nil {
		t.Fatalf("BuyNFT: %v", err)
	}

	auctionToken := mintToken(t, assetRegistry, "0xbob", "0.05")
	auction, err := market.CreateAuction(auctionToken, "0xbob", d(t, "1.0"), 2000, 3000)
	if err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}
	clock.now = 2500
	if err := market.PlaceBid(auctionToken, "0xcarol", d(t, "1.0")); err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}

	auction.HighestBid = &entity.Bid{Bidder: "0xmallory", Amount: d(t, "0.01"), PlacedAt: 2500}

	got, err = market.GetListing(auctionToken)
	if err != nil {
		t.Fatalf("GetListing: %v", err)
	}
	if got.HighestBid == nil || got.HighestBid.Bidder != "0xcarol" {
		t.Errorf("highest bid = %+v, want bidder 0xcarol", got.HighestBid)
	}

	got.HighestBid.Amount = d(t, "50")
	fresh, err := market.GetListing(auctionToken)
	if err != nil {
		t.Fatalf("GetListing: %v", err)
	}
	if !fresh.HighestBid.Amount.Equal(d(t, "1.0")) {
		t.Errorf("highest bid amount = %s, want 1.0", fresh.HighestBid.Amount)
	}
}

func assertBalance(t *testing.T, market *Marketplace, principal, want string) {
	t.Helper()

	if got := market.EscrowBalanceOf(principal); !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("balance of %s = %s, want %s", principal, got, want)
	}
}
