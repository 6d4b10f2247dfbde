package repository

import (
	"encoding/json"
	"errors"
	"github.com/fashionmkt/fashion-market-core/internal/elastic_search"
	"github.com/fashionmkt/fashion-market-core/internal/entity"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"github.com/olivere/elastic/v7"
)

var ErrMarketActionNotFound = errors.New("market action not found")

type MarketActionRepository interface {
	GetActionsByMint(mint ledger.Address, size int) ([]entity.MarketAction, error)
	GetSale(mint ledger.Address) (entity.MarketAction, error)
}

type marketActionRepository struct {
	elastic elastic_search.Index
}

func NewMarketActionRepository(elastic elastic_search.Index) MarketActionRepository {
	return marketActionRepository{elastic}
}

func (r marketActionRepository) GetActionsByMint(mint ledger.Address, size int) ([]entity.MarketAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("mint.keyword", mint.String()),
	)

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(query).
		Sort("time", false).
		Size(size))

	return r.findMany(results, err)
}

func (r marketActionRepository) GetSale(mint ledger.Address) (entity.MarketAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("mint.keyword", mint.String()),
		elastic.NewTermQuery("action.keyword", string(entity.SaleAction)),
	)

	results, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(query).
		Size(1))

	return r.findOne(results, err)
}

func (r marketActionRepository) findOne(results *elastic.SearchResult, err error) (entity.MarketAction, error) {
	if err != nil {
		return entity.MarketAction{}, err
	}

	if len(results.Hits.Hits) == 0 {
		return entity.MarketAction{}, ErrMarketActionNotFound
	}

	var action entity.MarketAction
	err = json.Unmarshal(results.Hits.Hits[0].Source, &action)

	return action, err
}

func (r marketActionRepository) findMany(results *elastic.SearchResult, err error) ([]entity.MarketAction, error) {
	actions := make([]entity.MarketAction, 0)
	if err != nil {
		return actions, err
	}

	for _, hit := range results.Hits.Hits {
		var action entity.MarketAction
		if err := json.Unmarshal(hit.Source, &action); err != nil {
			return actions, err
		}
		actions = append(actions, action)
	}

	return actions, nil
}
