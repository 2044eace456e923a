package marketplace

import (
	"sync"

	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/ZilDuck/nft-marketplace-engine/internal/registry"
	"github.com/shopspring/decimal"
)

// Marketplace is the single entry point for every exchange operation. A
// mutex serializes state-changing calls so each one executes to completion
// before any other can observe intermediate state (single-writer model).
type Marketplace struct {
	mu sync.Mutex

	registry registry.AssetRegistry
	listings *ListingStore
	escrow   *EscrowLedger
	sales    *SaleEngine
	auctions *AuctionEngine
	clock    registry.Clock
}

func NewMarketplace(assetRegistry registry.AssetRegistry, policy Policy, clock registry.Clock) *Marketplace {
	listings := NewListingStore(assetRegistry, policy)
	escrow := NewEscrowLedger()

	return &Marketplace{
		registry: assetRegistry,
		listings: listings,
		escrow:   escrow,
		sales:    NewSaleEngine(assetRegistry, listings, escrow, clock),
		auctions: NewAuctionEngine(assetRegistry, listings, escrow, clock),
		clock:    clock,
	}
}

func (m *Marketplace) SellNFT(tokenId uint64, seller string, price decimal.Decimal) (*entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	listing, err := m.sales.Sell(tokenId, seller, price)
	if err != nil {
		return nil, err
	}

	return copyListing(listing), nil
}

func (m *Marketplace) CancelSell(tokenId uint64, caller string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sales.CancelSell(tokenId, caller)
}

func (m *Marketplace) BuyNFT(tokenId uint64, buyer string, paid decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sales.Buy(tokenId, buyer, paid)
}

func (m *Marketplace) CreateAuction(tokenId uint64, seller string, startingPrice decimal.Decimal, startTime, endTime int64) (*entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	listing, err := m.auctions.CreateAuction(tokenId, seller, startingPrice, startTime, endTime)
	if err != nil {
		return nil, err
	}

	return copyListing(listing), nil
}

func (m *Marketplace) PlaceBid(tokenId uint64, bidder string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.auctions.PlaceBid(tokenId, bidder, amount)
}

func (m *Marketplace) FinalizeAuction(tokenId uint64, caller string) (*entity.MarketplaceSettlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.auctions.Finalize(tokenId, caller)
}

func (m *Marketplace) CancelAuction(tokenId uint64, caller string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.auctions.Cancel(tokenId, caller)
}

func (m *Marketplace) GetListing(tokenId uint64) (*entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	listing := m.listings.Get(tokenId)
	if listing == nil {
		return nil, ErrNotListed
	}

	return copyListing(listing), nil
}

// copyListing detaches a listing from the store so callers cannot mutate
// state that only the facade's mutex should guard.
func copyListing(listing *entity.Listing) *entity.Listing {
	copied := *listing
	if listing.HighestBid != nil {
		bid := *listing.HighestBid
		copied.HighestBid = &bid
	}

	return &copied
}

func (m *Marketplace) IsListedForSale(tokenId uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listings.IsListedForSale(tokenId)
}

func (m *Marketplace) NftInAuction(tokenId uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listings.IsInAuction(tokenId)
}

func (m *Marketplace) GetCurrentTime() int64 {
	return m.clock.Now()
}

func (m *Marketplace) EscrowBalanceOf(principal string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.escrow.BalanceOf(principal)
}

// EscrowHeld reports the value currently locked for an item, zero when none.
func (m *Marketplace) EscrowHeld(tokenId uint64, purpose entity.EscrowPurpose) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.escrow.Held(tokenId, purpose)
	if !ok {
		return decimal.Zero
	}

	return entry.Amount
}
