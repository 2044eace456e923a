package repository

import (
	"encoding/json"
	"errors"

	"github.com/ZilDuck/nft-marketplace-engine/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/olivere/elastic/v7"
)

var (
	ErrNftActionNotFound = errors.New("nft action not found")
)

type NftActionRepository interface {
	GetActions(tokenId uint64) ([]entity.NftAction, error)
	GetSales(tokenId uint64) ([]entity.NftAction, error)
	GetLatestAction(tokenId uint64) (*entity.NftAction, error)
}

type nftActionRepository struct {
	elastic elastic_search.Index
}

func NewNftActionRepository(elastic elastic_search.Index) NftActionRepository {
	return nftActionRepository{elastic}
}

func (r nftActionRepository) GetActions(tokenId uint64) ([]entity.NftAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("tokenId", tokenId),
	)

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.NftActionIndex.Get()).
		Query(query).
		Sort("time", true).
		Size(100))

	return r.findAll(results, err)
}

func (r nftActionRepository) GetSales(tokenId uint64) ([]entity.NftAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("tokenId", tokenId),
		elastic.NewTermsQuery("action", string(entity.SaleAction), string(entity.AuctionSettledAction)),
	)

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.NftActionIndex.Get()).
		Query(query).
		Sort("time", true).
		Size(100))

	return r.findAll(results, err)
}

func (r nftActionRepository) GetLatestAction(tokenId uint64) (*entity.NftAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("tokenId", tokenId),
	)

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.NftActionIndex.Get()).
		Query(query).
		Sort("time", false).
		Size(1))

	return r.findOne(results, err)
}

func (r nftActionRepository) findOne(results *elastic.SearchResult, err error) (*entity.NftAction, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrNftActionNotFound
	}

	var action entity.NftAction
	hit := results.Hits.Hits[0]
	err = json.Unmarshal(hit.Source, &action)

	return &action, err
}

func (r nftActionRepository) findAll(results *elastic.SearchResult, err error) ([]entity.NftAction, error) {
	actions := make([]entity.NftAction, 0)
	if err != nil {
		return actions, err
	}

	for _, hit := range results.Hits.Hits {
		var action entity.NftAction
		if err := json.Unmarshal(hit.Source, &action); err == nil {
			actions = append(actions, action)
		}
	}

	return actions, nil
}
