package indexer

import (
	"github.com/fashionmkt/fashion-market-core/internal/elastic_search"
	"github.com/fashionmkt/fashion-market-core/internal/entity"
	"go.uber.org/zap"
)

type MarketIndexer interface {
	IndexAction(msg interface{})
}

type marketIndexer struct {
	elastic elastic_search.Index
}

func NewMarketIndexer(elastic elastic_search.Index) MarketIndexer {
	return marketIndexer{elastic}
}

// IndexAction archives a committed market action and keeps the listing read
// index in step with it. The ledger stays the source of truth; this index
// only serves history queries.
func (i marketIndexer) IndexAction(msg interface{}) {
	action, ok := msg.(entity.MarketAction)
	if !ok {
		zap.L().Error("MarketIndexer: Unexpected event payload")
		return
	}

	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), action, elastic_search.MarketActionCreate)

	switch action.Action {
	case entity.ListingAction:
		listing := entity.Listing{Seller: action.Seller, Mint: action.Mint, Price: action.Price, IsActive: true}
		i.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), listing, elastic_search.ListingCreate)
	case entity.DelistingAction:
		i.elastic.DeleteByID(entity.CreateListingSlug(action.Mint), elastic_search.ListingIndex.Get())
	case entity.SaleAction:
		listing := entity.Listing{Seller: action.Seller, Mint: action.Mint, Price: action.Price, IsActive: false}
		i.elastic.AddUpdateRequest(elastic_search.ListingIndex.Get(), listing, elastic_search.ListingSold)
	}

	zap.L().With(
		zap.String("mint", action.Mint.String()),
		zap.String("action", string(action.Action)),
	).Info("MarketIndexer: Action indexed")
}
