package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestListingState(t *testing.T) {
	listing := Listing{
		TokenId:       1,
		Mode:          ModeAuction,
		Seller:        "0xseller",
		StartingPrice: decimal.RequireFromString("0.10"),
		StartTime:     100,
		EndTime:       200,
		Active:        true,
	}

	tests := []struct {
		name string
		now  int64
		want AuctionState
	}{
		{"before start", 99, AuctionScheduled},
		{"at start", 100, AuctionOpen},
		{"mid window", 150, AuctionOpen},
		{"at end", 200, AuctionEnded},
		{"after end", 300, AuctionEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listing.State(tt.now); got != tt.want {
				t.Errorf("State(%d) = %s, want %s", tt.now, got, tt.want)
			}
		})
	}
}

func TestListingStateInactive(t *testing.T) {
	listing := Listing{Mode: ModeAuction, StartTime: 100, EndTime: 200, Active: false}
	if got := listing.State(150); got != AuctionClosed {
		t.Errorf("State = %s, want %s", got, AuctionClosed)
	}
}

func TestListingStateDirectSale(t *testing.T) {
	listing := Listing{Mode: ModeDirectSale, Active: true}
	if got := listing.State(150); got != AuctionClosed {
		t.Errorf("State = %s, want %s", got, AuctionClosed)
	}
}
