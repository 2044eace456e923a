package marketplace

import (
	"errors"
	"testing"

	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
)

func TestCreateAuction(t *testing.T) {
	market, assetRegistry, _ := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	listing, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000)
	if err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}
	if listing.Mode != entity.ModeAuction {
		t.Errorf("mode = %s, want %s", listing.Mode, entity.ModeAuction)
	}
	if !market.NftInAuction(tokenId) {
		t.Error("expected token in auction")
	}
	if got := listing.State(1000); got != entity.AuctionScheduled {
		t.Errorf("state = %s, want %s", got, entity.AuctionScheduled)
	}
}

func TestCreateAuctionInvalidWindow(t *testing.T) {
	market, assetRegistry, _ := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	tests := []struct {
		name      string
		startTime int64
		endTime   int64
	}{
		{"start equals end", 2000, 2000},
		{"start after end", 3000, 2000},
		{"end in the past", 100, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), tt.startTime, tt.endTime); !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("err = %v, want ErrInvalidWindow", err)
			}
		})
	}
}

func TestCreateAuctionPriceTooLow(t *testing.T) {
	market, assetRegistry, _ := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	// Floor is mint price plus one increment: 0.06.
	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "0.05"), 2000, 3000); !errors.Is(err, ErrPriceTooLow) {
		t.Errorf("err = %v, want ErrPriceTooLow", err)
	}

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "0.06"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction at floor: %v", err)
	}
}

func TestCreateAuctionGlobalFloor(t *testing.T) {
	market, assetRegistry, _ := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.01")

	// Mint price plus increment is 0.02 but the global floor is 0.03.
	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "0.02"), 2000, 3000); !errors.Is(err, ErrPriceTooLow) {
		t.Errorf("err = %v, want ErrPriceTooLow", err)
	}

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "0.03"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction at global floor: %v", err)
	}
}

func TestCreateAuctionExclusive(t *testing.T) {
	market, assetRegistry, _ := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	if _, err := market.SellNFT(tokenId, "0xalice", d(t, "1.5")); !errors.Is(err, ErrAlreadyListed) {
		t.Errorf("sell during auction err = %v, want ErrAlreadyListed", err)
	}
	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); !errors.Is(err, ErrAlreadyListed) {
		t.Errorf("second auction err = %v, want ErrAlreadyListed", err)
	}
}

func TestPlaceBidBeforeStart(t *testing.T) {
	market, assetRegistry, _ := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	if err := market.PlaceBid(tokenId, "0xbob", d(t, "1.0")); !errors.Is(err, ErrNotOpen) {
		t.Errorf("bid before start err = %v, want ErrNotOpen", err)
	}
}

func TestPlaceBidWindowBoundaries(t *testing.T) {
	market, assetRegistry, clock := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	// The window is inclusive of startTime.
	clock.now = 2000
	if err := market.PlaceBid(tokenId, "0xbob", d(t, "1.0")); err != nil {
		t.Fatalf("bid at startTime: %v", err)
	}

	// And exclusive of endTime.
	clock.now = 3000
	if err := market.PlaceBid(tokenId, "0xcarol", d(t, "1.1")); !errors.Is(err, ErrNotOpen) {
		t.Errorf("bid at endTime err = %v, want ErrNotOpen", err)
	}
}

func TestPlaceBidSelfBid(t *testing.T) {
	market, assetRegistry, clock := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	clock.now = 2500
	if err := market.PlaceBid(tokenId, "0xalice", d(t, "1.0")); !errors.Is(err, ErrSelfBid) {
		t.Errorf("err = %v, want ErrSelfBid", err)
	}
}

func TestPlaceBidTooLow(t *testing.T) {
	market, assetRegistry, clock := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	clock.now = 2500
	if err := market.PlaceBid(tokenId, "0xbob", d(t, "0.99")); !errors.Is(err, ErrBidTooLow) {
		t.Errorf("bid below starting price err = %v, want ErrBidTooLow", err)
	}

	if err := market.PlaceBid(tokenId, "0xbob", d(t, "1.0")); err != nil {
		t.Fatalf("bid at starting price: %v", err)
	}

	if err := market.PlaceBid(tokenId, "0xcarol", d(t, "1.0")); !errors.Is(err, ErrBidTooLow) {
		t.Errorf("bid equal to highest err = %v, want ErrBidTooLow", err)
	}
}

func TestPlaceBidRefundsDisplaced(t *testing.T) {
	market, assetRegistry, clock := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	clock.now = 2500
	for _, bid := range []struct {
		bidder string
		amount string
	}{
		{"0xbob", "1.0"},
		{"0xcarol", "1.1"},
		{"0xdave", "1.2"},
	} {
		if err := market.PlaceBid(tokenId, bid.bidder, d(t, bid.amount)); err != nil {
			t.Fatalf("PlaceBid(%s, %s): %v", bid.bidder, bid.amount, err)
		}
	}

	// Every displaced bidder got their principal back; only the leading
	// bid stays locked.
	assertBalance(t, market, "0xbob", "1.0")
	assertBalance(t, market, "0xcarol", "1.1")
	assertBalance(t, market, "0xdave", "0")

	if held := market.EscrowHeld(tokenId, entity.EscrowBid); !held.Equal(d(t, "1.2")) {
		t.Errorf("held = %s, want 1.2", held)
	}

	listing, err := market.GetListing(tokenId)
	if err != nil {
		t.Fatalf("GetListing: %v", err)
	}
	if listing.HighestBid == nil || listing.HighestBid.Bidder != "0xdave" {
		t.Errorf("highest bid = %+v, want 0xdave", listing.HighestBid)
	}
}

func TestFinalizeBeforeEnd(t *testing.T) {
	market, assetRegistry, clock := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	if _, err := market.FinalizeAuction(tokenId, "0xalice"); !errors.Is(err, ErrAuctionNotEnded) {
		t.Errorf("finalize while scheduled err = %v, want ErrAuctionNotEnded", err)
	}

	clock.now = 2500
	if _, err := market.FinalizeAuction(tokenId, "0xalice"); !errors.Is(err, ErrAuctionNotEnded) {
		t.Errorf("finalize while open err = %v, want ErrAuctionNotEnded", err)
	}
}

func TestFinalizeNoBids(t *testing.T) {
	market, assetRegistry, clock := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	clock.now = 3000
	settlement, err := market.FinalizeAuction(tokenId, "0xbob")
	if err != nil {
		t.Fatalf("FinalizeAuction: %v", err)
	}
	if settlement.Winner != "" {
		t.Errorf("winner = %s, want empty", settlement.Winner)
	}

	owner, _ := assetRegistry.OwnerOf(tokenId)
	if owner != "0xalice" {
		t.Errorf("owner = %s, want 0xalice", owner)
	}
	if market.NftInAuction(tokenId) {
		t.Error("auction should be closed")
	}

	if _, err := market.SellNFT(tokenId, "0xalice", d(t, "1.0")); err != nil {
		t.Fatalf("relist after no-bid auction: %v", err)
	}
}

func TestFinalizeWithWinner(t *testing.T) {
	market, assetRegistry, clock := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	clock.now = 2500
	if err := market.PlaceBid(tokenId, "0xbob", d(t, "1.0")); err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}
	if err := market.PlaceBid(tokenId, "0xcarol", d(t, "1.4")); err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}

	// Anybody can settle once the window is over.
	clock.now = 3500
	settlement, err := market.FinalizeAuction(tokenId, "0xrandom")
	if err != nil {
		t.Fatalf("FinalizeAuction: %v", err)
	}
	if settlement.Winner != "0xcarol" {
		t.Errorf("winner = %s, want 0xcarol", settlement.Winner)
	}
	if !settlement.Amount.Equal(d(t, "1.4")) {
		t.Errorf("amount = %s, want 1.4", settlement.Amount)
	}

	owner, _ := assetRegistry.OwnerOf(tokenId)
	if owner != "0xcarol" {
		t.Errorf("owner = %s, want 0xcarol", owner)
	}
	assertBalance(t, market, "0xalice", "1.4")
	assertBalance(t, market, "0xbob", "1.0")

	if held := market.EscrowHeld(tokenId, entity.EscrowBid); !held.IsZero() {
		t.Errorf("held = %s, want 0", held)
	}

	if _, err := market.FinalizeAuction(tokenId, "0xrandom"); !errors.Is(err, ErrNotListed) {
		t.Errorf("second finalize err = %v, want ErrNotListed", err)
	}
}

func TestFinalizeRefundsBidderWhenSellerMovedItem(t *testing.T) {
	market, assetRegistry, clock := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	clock.now = 2500
	if err := market.PlaceBid(tokenId, "0xbob", d(t, "1.0")); err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}

	// The seller moves the item away through the registry while the bid
	// is held.
	if err := assetRegistry.Transfer(tokenId, "0xalice", "0xcarol"); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	clock.now = 3500
	settlement, err := market.FinalizeAuction(tokenId, "0xbob")
	if err != nil {
		t.Fatalf("FinalizeAuction: %v", err)
	}
	if settlement.Winner != "" {
		t.Errorf("winner = %s, want empty for a voided auction", settlement.Winner)
	}

	// The bidder gets their principal back and nothing stays locked.
	assertBalance(t, market, "0xbob", "1.0")
	if held := market.EscrowHeld(tokenId, entity.EscrowBid); !held.IsZero() {
		t.Errorf("held = %s, want 0", held)
	}

	if market.NftInAuction(tokenId) {
		t.Error("auction should be closed")
	}
	owner, _ := assetRegistry.OwnerOf(tokenId)
	if owner != "0xcarol" {
		t.Errorf("owner = %s, want 0xcarol", owner)
	}
	assertBalance(t, market, "0xalice", "0")

	if _, err := market.SellNFT(tokenId, "0xcarol", d(t, "1.0")); err != nil {
		t.Fatalf("relist by current owner: %v", err)
	}
}

func TestCancelAuction(t *testing.T) {
	market, assetRegistry, _ := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	if err := market.CancelAuction(tokenId, "0xbob"); !errors.Is(err, ErrNotSeller) {
		t.Errorf("cancel by stranger err = %v, want ErrNotSeller", err)
	}

	if err := market.CancelAuction(tokenId, "0xalice"); err != nil {
		t.Fatalf("CancelAuction: %v", err)
	}
	if market.NftInAuction(tokenId) {
		t.Error("auction should be closed")
	}
}

func TestCancelAuctionWithBids(t *testing.T) {
	market, assetRegistry, clock := newTestMarket(1000)
	tokenId := mintToken(t, assetRegistry, "0xalice", "0.05")

	if _, err := market.CreateAuction(tokenId, "0xalice", d(t, "1.0"), 2000, 3000); err != nil {
		t.Fatalf("CreateAuction: %v", err)
	}

	clock.now = 2500
	if err := market.PlaceBid(tokenId, "0xbob", d(t, "1.0")); err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}

	if err := market.CancelAuction(tokenId, "0xalice"); !errors.Is(err, ErrHasBids) {
		t.Errorf("err = %v, want ErrHasBids", err)
	}
	if !market.NftInAuction(tokenId) {
		t.Error("auction should remain open")
	}
}
