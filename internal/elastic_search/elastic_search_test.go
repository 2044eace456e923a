package elastic_search

import (
	"testing"

	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

func newTestIndex() index {
	return index{nil, cache.New(cache.NoExpiration, 0), "wait_for"}
}

func TestRequestsAreBufferedUntilCleared(t *testing.T) {
	i := newTestIndex()

	i.AddIndexRequest(NftIndex.Get(), entity.Nft{TokenId: 1, Owner: "0xalice"}, NftMint)
	i.AddIndexRequest(NftIndex.Get(), entity.Nft{TokenId: 2, Owner: "0xalice"}, NftMint)

	if got := len(i.GetRequests()); got != 2 {
		t.Fatalf("buffered requests = %d, want 2", got)
	}

	i.ClearRequests()
	if got := len(i.GetRequests()); got != 0 {
		t.Errorf("buffered requests after clear = %d, want 0", got)
	}
}

func TestUpdateMergesIntoPendingIndexRequest(t *testing.T) {
	i := newTestIndex()

	i.AddIndexRequest(NftIndex.Get(), entity.Nft{TokenId: 1, Owner: "0xalice", MintPrice: decimal.RequireFromString("0.05")}, NftMint)
	i.AddUpdateRequest(NftIndex.Get(), entity.Nft{TokenId: 1, Owner: "0xbob"}, NftTransfer)

	req := i.GetRequest(entity.CreateNftSlug(1))
	if req == nil {
		t.Fatal("expected a pending request")
	}
	if req.Type != IndexRequest {
		t.Errorf("type = %s, want %s (transfer folded into unflushed mint)", req.Type, IndexRequest)
	}
	if got := req.Entity.(entity.Nft).Owner; got != "0xbob" {
		t.Errorf("owner = %s, want 0xbob", got)
	}
	if got := len(i.GetRequests()); got != 1 {
		t.Errorf("buffered requests = %d, want 1", got)
	}
}

func TestBatchPersistBelowThreshold(t *testing.T) {
	i := newTestIndex()

	i.AddIndexRequest(NftIndex.Get(), entity.Nft{TokenId: 1}, NftMint)

	if i.BatchPersist() {
		t.Error("BatchPersist should no-op below the bulk threshold")
	}
	if got := len(i.GetRequests()); got != 1 {
		t.Errorf("buffered requests = %d, want 1 (nothing flushed)", got)
	}
}
