package repository

import (
	"encoding/json"
	"errors"

	"github.com/ZilDuck/nft-marketplace-engine/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/olivere/elastic/v7"
)

var (
	ErrNftNotFound = errors.New("nft not found")
)

type NftRepository interface {
	GetNft(tokenId uint64) (*entity.Nft, error)
	GetNftsByOwner(owner string) ([]entity.Nft, error)
	GetNftsByCollection(collectionId uint64) ([]entity.Nft, error)
}

type nftRepository struct {
	elastic elastic_search.Index
}

func NewNftRepository(elastic elastic_search.Index) NftRepository {
	return nftRepository{elastic}
}

func (r nftRepository) GetNft(tokenId uint64) (*entity.Nft, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("tokenId", tokenId),
	)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.NftIndex.Get()).
		Query(query).
		Size(1))

	return r.findOne(result, err)
}

func (r nftRepository) GetNftsByOwner(owner string) ([]entity.Nft, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("owner", owner),
	)

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.NftIndex.Get()).
		Query(query).
		Sort("tokenId", true).
		Size(100))

	return r.findAll(results, err)
}

func (r nftRepository) GetNftsByCollection(collectionId uint64) ([]entity.Nft, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("collection", collectionId),
	)

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.NftIndex.Get()).
		Query(query).
		Sort("tokenId", true).
		Size(100))

	return r.findAll(results, err)
}

func (r nftRepository) findOne(results *elastic.SearchResult, err error) (*entity.Nft, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrNftNotFound
	}

	var nft entity.Nft
	hit := results.Hits.Hits[0]
	err = json.Unmarshal(hit.Source, &nft)

	return &nft, err
}

func (r nftRepository) findAll(results *elastic.SearchResult, err error) ([]entity.Nft, error) {
	nfts := make([]entity.Nft, 0)
	if err != nil {
		return nfts, err
	}

	for _, hit := range results.Hits.Hits {
		var nft entity.Nft
		if err := json.Unmarshal(hit.Source, &nft); err == nil {
			nfts = append(nfts, nft)
		}
	}

	return nfts, nil
}
