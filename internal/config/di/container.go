package di

import (
	"github.com/fashionmkt/fashion-market-core/internal/api"
	"github.com/fashionmkt/fashion-market-core/internal/daemon"
	"github.com/fashionmkt/fashion-market-core/internal/elastic_search"
	"github.com/fashionmkt/fashion-market-core/internal/indexer"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"github.com/fashionmkt/fashion-market-core/internal/market"
	"github.com/fashionmkt/fashion-market-core/internal/messenger"
	"github.com/fashionmkt/fashion-market-core/internal/repository"
	"github.com/fashionmkt/fashion-market-core/internal/token"
	"github.com/sarulabs/di/v2"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetLedger() *ledger.Ledger {
	return c.ctn.Get("ledger").(*ledger.Ledger)
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetTokenService() token.Service {
	return c.ctn.Get("token").(token.Service)
}

func (c *Container) GetMarketService() market.Service {
	return c.ctn.Get("market").(market.Service)
}

func (c *Container) GetListingRepo() repository.ListingRepository {
	return c.ctn.Get("listing.repo").(repository.ListingRepository)
}

func (c *Container) GetMarketActionRepo() repository.MarketActionRepository {
	return c.ctn.Get("action.repo").(repository.MarketActionRepository)
}

func (c *Container) GetMarketIndexer() indexer.MarketIndexer {
	return c.ctn.Get("market.indexer").(indexer.MarketIndexer)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetApi() api.Server {
	return c.ctn.Get("api").(api.Server)
}

func (c *Container) GetDaemon() *daemon.Daemon {
	return c.ctn.Get("daemon").(*daemon.Daemon)
}

func (c *Container) Delete() error {
	return c.ctn.Delete()
}
