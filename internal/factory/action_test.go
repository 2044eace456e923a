package factory

import (
	"testing"

	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/shopspring/decimal"
)

func TestCreateMintAction(t *testing.T) {
	nft := entity.Nft{
		TokenId:    7,
		Collection: 2,
		Owner:      "0xalice",
		MintPrice:  decimal.RequireFromString("0.05"),
		MintedAt:   1000,
	}

	action := CreateMintAction(nft)

	if action.Action != entity.MintAction {
		t.Errorf("action = %s, want %s", action.Action, entity.MintAction)
	}
	if action.From != "" {
		t.Errorf("from = %s, want empty", action.From)
	}
	if action.To != "0xalice" {
		t.Errorf("to = %s, want 0xalice", action.To)
	}
	if action.Cost != "0.05" {
		t.Errorf("cost = %s, want 0.05", action.Cost)
	}
}

func TestCreateSaleAction(t *testing.T) {
	sale := entity.MarketplaceSale{
		Nft:    entity.Nft{TokenId: 7, Collection: 2},
		Seller: "0xalice",
		Buyer:  "0xbob",
		Cost:   decimal.RequireFromString("1.5"),
		Time:   2000,
	}

	action := CreateSaleAction(sale)

	if action.Action != entity.SaleAction {
		t.Errorf("action = %s, want %s", action.Action, entity.SaleAction)
	}
	if action.From != "0xalice" || action.To != "0xbob" {
		t.Errorf("from/to = %s/%s, want 0xalice/0xbob", action.From, action.To)
	}
	if action.Cost != "1.5" {
		t.Errorf("cost = %s, want 1.5", action.Cost)
	}
}

func TestCreateSettlementActionNoWinner(t *testing.T) {
	settlement := entity.MarketplaceSettlement{
		Nft:    entity.Nft{TokenId: 7, Collection: 2},
		Seller: "0xalice",
		Winner: "",
		Amount: decimal.Zero,
		Time:   3000,
	}

	action := CreateSettlementAction(settlement)

	if action.Action != entity.AuctionSettledAction {
		t.Errorf("action = %s, want %s", action.Action, entity.AuctionSettledAction)
	}
	if action.To != "" {
		t.Errorf("to = %s, want empty for a no-bid settlement", action.To)
	}
}

func TestCreateDelistingAction(t *testing.T) {
	delisting := entity.MarketplaceDelisting{
		Nft:    entity.Nft{TokenId: 7, Collection: 2},
		Seller: "0xalice",
		Time:   2500,
	}

	cancelled := CreateDelistingAction(delisting, entity.AuctionCancelledAction)
	if cancelled.Action != entity.AuctionCancelledAction {
		t.Errorf("action = %s, want %s", cancelled.Action, entity.AuctionCancelledAction)
	}

	delisted := CreateDelistingAction(delisting, entity.DelistingAction)
	if delisted.Action != entity.DelistingAction {
		t.Errorf("action = %s, want %s", delisted.Action, entity.DelistingAction)
	}
}
