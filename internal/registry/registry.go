package registry

import (
	"errors"
	"sync"

	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/ZilDuck/nft-marketplace-engine/internal/event"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrCollectionNotFound  = errors.New("collection not found")
	ErrNftNotFound         = errors.New("nft not found")
	ErrNotCollectionOwner  = errors.New("you don't own this collection")
	ErrCollectionInactive  = errors.New("collection is not active")
	ErrEmptyCollectionName = errors.New("collection name cannot be empty")
	ErrNotNftOwner         = errors.New("you don't own this nft")
	ErrInvalidMintPrice    = errors.New("mint price must be greater than zero")
)

// AssetRegistry is the authoritative record of collections and NFTs.
// Transfer is the only path by which ownership changes hands.
type AssetRegistry interface {
	CreateCollection(name, owner string) (*entity.Collection, error)
	ActivateCollection(collectionId uint64, caller string) error
	DeactivateCollection(collectionId uint64, caller string) error
	GetCollection(collectionId uint64) (*entity.Collection, error)
	IsActive(collectionId uint64) bool

	MintNft(collectionId uint64, caller, name string, price decimal.Decimal) (*entity.Nft, error)
	GetNft(tokenId uint64) (*entity.Nft, error)
	OwnerOf(tokenId uint64) (string, error)
	Transfer(tokenId uint64, from, to string) error
}

type assetRegistry struct {
	mu    sync.RWMutex
	clock Clock

	collections      map[uint64]*entity.Collection
	nfts             map[uint64]*entity.Nft
	nextCollectionId uint64
	nextTokenId      uint64
}

func NewAssetRegistry(clock Clock) AssetRegistry {
	return &assetRegistry{
		clock:            clock,
		collections:      make(map[uint64]*entity.Collection),
		nfts:             make(map[uint64]*entity.Nft),
		nextCollectionId: 1,
		nextTokenId:      1,
	}
}

func (r *assetRegistry) CreateCollection(name, owner string) (*entity.Collection, error) {
	if name == "" {
		return nil, ErrEmptyCollectionName
	}

	r.mu.Lock()

	collection := &entity.Collection{
		Id:        r.nextCollectionId,
		Name:      name,
		Owner:     owner,
		Active:    true,
		CreatedAt: r.clock.Now(),
	}
	r.collections[collection.Id] = collection
	r.nextCollectionId++
	created := *collection
	r.mu.Unlock()

	zap.L().With(
		zap.Uint64("collectionId", created.Id),
		zap.String("owner", owner),
	).Info("Registry: Collection created")

	event.EmitEvent(event.CollectionCreatedEvent, created)

	return &created, nil
}

func (r *assetRegistry) ActivateCollection(collectionId uint64, caller string) error {
	return r.setCollectionActive(collectionId, caller, true)
}

func (r *assetRegistry) DeactivateCollection(collectionId uint64, caller string) error {
	return r.setCollectionActive(collectionId, caller, false)
}

func (r *assetRegistry) setCollectionActive(collectionId uint64, caller string, active bool) error {
	r.mu.Lock()

	collection, ok := r.collections[collectionId]
	if !ok {
		r.mu.Unlock()
		return ErrCollectionNotFound
	}
	if collection.Owner != caller {
		r.mu.Unlock()
		return ErrNotCollectionOwner
	}
	collection.Active = active
	updated := *collection
	r.mu.Unlock()

	event.EmitEvent(event.CollectionUpdatedEvent, updated)

	return nil
}

func (r *assetRegistry) GetCollection(collectionId uint64) (*entity.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	collection, ok := r.collections[collectionId]
	if !ok {
		return nil, ErrCollectionNotFound
	}

	return copyCollection(collection), nil
}

func (r *assetRegistry) IsActive(collectionId uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	collection, ok := r.collections[collectionId]

	return ok && collection.Active
}

func (r *assetRegistry) MintNft(collectionId uint64, caller, name string, price decimal.Decimal) (*entity.Nft, error) {
	r.mu.Lock()

	collection, ok := r.collections[collectionId]
	if !ok {
		r.mu.Unlock()
		return nil, ErrCollectionNotFound
	}
	if collection.Owner != caller {
		r.mu.Unlock()
		return nil, ErrNotCollectionOwner
	}
	if !collection.Active {
		r.mu.Unlock()
		return nil, ErrCollectionInactive
	}
	if !price.IsPositive() {
		r.mu.Unlock()
		return nil, ErrInvalidMintPrice
	}

	nft := &entity.Nft{
		TokenId:    r.nextTokenId,
		Collection: collectionId,
		Name:       name,
		Owner:      caller,
		MintPrice:  price,
		MintedAt:   r.clock.Now(),
		Exists:     true,
	}
	r.nfts[nft.TokenId] = nft
	r.nextTokenId++
	minted := *nft
	r.mu.Unlock()

	zap.L().With(
		zap.Uint64("tokenId", minted.TokenId),
		zap.Uint64("collectionId", collectionId),
		zap.String("owner", caller),
	).Info("Registry: NFT minted")

	event.EmitEvent(event.NftMintedEvent, minted)

	return &minted, nil
}

func (r *assetRegistry) GetNft(tokenId uint64) (*entity.Nft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nft, ok := r.nfts[tokenId]
	if !ok || !nft.Exists {
		return nil, ErrNftNotFound
	}
	copied := *nft

	return &copied, nil
}

func (r *assetRegistry) OwnerOf(tokenId uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nft, ok := r.nfts[tokenId]
	if !ok || !nft.Exists {
		return "", ErrNftNotFound
	}

	return nft.Owner, nil
}

func (r *assetRegistry) Transfer(tokenId uint64, from, to string) error {
	r.mu.Lock()

	nft, ok := r.nfts[tokenId]
	if !ok || !nft.Exists {
		r.mu.Unlock()
		return ErrNftNotFound
	}
	if nft.Owner != from {
		r.mu.Unlock()
		return ErrNotNftOwner
	}

	nft.Owner = to
	transferred := *nft
	r.mu.Unlock()

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("from", from),
		zap.String("to", to),
	).Info("Registry: NFT transferred")

	event.EmitEvent(event.NftTransferEvent, entity.NftTransfer{
		Nft:  transferred,
		From: from,
		To:   to,
		Time: r.clock.Now(),
	})

	return nil
}

func copyCollection(c *entity.Collection) *entity.Collection {
	copied := *c

	return &copied
}
