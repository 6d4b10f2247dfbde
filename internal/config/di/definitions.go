package di

import (
	"github.com/fashionmkt/fashion-market-core/internal/api"
	"github.com/fashionmkt/fashion-market-core/internal/config"
	"github.com/fashionmkt/fashion-market-core/internal/daemon"
	"github.com/fashionmkt/fashion-market-core/internal/elastic_search"
	"github.com/fashionmkt/fashion-market-core/internal/indexer"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"github.com/fashionmkt/fashion-market-core/internal/market"
	"github.com/fashionmkt/fashion-market-core/internal/messenger"
	"github.com/fashionmkt/fashion-market-core/internal/repository"
	"github.com/fashionmkt/fashion-market-core/internal/token"
	"github.com/patrickmn/go-cache"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
	"time"
)

var Definitions = []di.Def{
	{
		Name: "ledger",
		Build: func(ctn di.Container) (interface{}, error) {
			l, err := ledger.New(config.Get().LedgerPath)
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to open ledger")
			}

			return l, nil
		},
		Close: func(obj interface{}) error {
			return obj.(*ledger.Ledger).Close()
		},
	},
	{
		Name: "cache",
		Build: func(ctn di.Container) (interface{}, error) {
			return cache.New(1*time.Minute, 5*time.Minute), nil
		},
	},
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "token",
		Build: func(ctn di.Container) (interface{}, error) {
			return token.NewService(), nil
		},
	},
	{
		Name: "market",
		Build: func(ctn di.Container) (interface{}, error) {
			return market.NewService(
				ctn.Get("ledger").(*ledger.Ledger),
				ctn.Get("token").(token.Service),
			), nil
		},
	},
	{
		Name: "listing.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewListingRepository(
				ctn.Get("ledger").(*ledger.Ledger),
				ctn.Get("cache").(*cache.Cache),
			), nil
		},
	},
	{
		Name: "action.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewMarketActionRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "market.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			return indexer.NewMarketIndexer(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(config.Get().Messenger.Uri), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("market").(market.Service),
				ctn.Get("listing.repo").(repository.ListingRepository),
				ctn.Get("action.repo").(repository.MarketActionRepository),
			), nil
		},
	},
	{
		Name: "daemon",
		Build: func(ctn di.Container) (interface{}, error) {
			return daemon.NewDaemon(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("api").(api.Server),
			), nil
		},
	},
}
