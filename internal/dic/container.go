package dic

import (
	"github.com/ZilDuck/nft-marketplace-engine/internal/api"
	"github.com/ZilDuck/nft-marketplace-engine/internal/config"
	"github.com/ZilDuck/nft-marketplace-engine/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace-engine/internal/indexer"
	"github.com/ZilDuck/nft-marketplace-engine/internal/marketplace"
	"github.com/ZilDuck/nft-marketplace-engine/internal/messenger"
	"github.com/ZilDuck/nft-marketplace-engine/internal/registry"
	"github.com/ZilDuck/nft-marketplace-engine/internal/repository"
	"github.com/ZilDuck/nft-marketplace-engine/internal/webhook"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sarulabs/di/v2"
	"github.com/shopspring/decimal"
)

const (
	serviceClock         = "clock"
	serviceRegistry      = "registry"
	serviceMarketplace   = "marketplace"
	serviceElastic       = "elastic"
	serviceActionIndexer = "actionIndexer"
	serviceNftActionRepo = "nftActionRepo"
	serviceNftRepo       = "nftRepo"
	serviceMessenger     = "messenger"
	servicePublisher     = "publisher"
	serviceWebhook       = "webhook"
	serviceApiServer     = "apiServer"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(definitions()...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func definitions() []di.Def {
	return []di.Def{
		{
			Name: serviceClock,
			Build: func(ctn di.Container) (interface{}, error) {
				return registry.NewSystemClock(), nil
			},
		},
		{
			Name: serviceRegistry,
			Build: func(ctn di.Container) (interface{}, error) {
				return registry.NewAssetRegistry(ctn.Get(serviceClock).(registry.Clock)), nil
			},
		},
		{
			Name: serviceMarketplace,
			Build: func(ctn di.Container) (interface{}, error) {
				policy := marketplace.Policy{
					MinBidIncrement:  decimal.RequireFromString(config.Get().Marketplace.MinBidIncrement),
					MinStartingPrice: decimal.RequireFromString(config.Get().Marketplace.MinStartingPrice),
				}

				return marketplace.NewMarketplace(
					ctn.Get(serviceRegistry).(registry.AssetRegistry),
					policy,
					ctn.Get(serviceClock).(registry.Clock),
				), nil
			},
		},
		{
			Name: serviceElastic,
			Build: func(ctn di.Container) (interface{}, error) {
				return elastic_search.New()
			},
		},
		{
			Name: serviceActionIndexer,
			Build: func(ctn di.Container) (interface{}, error) {
				return indexer.NewActionIndexer(ctn.Get(serviceElastic).(elastic_search.Index)), nil
			},
		},
		{
			Name: serviceNftActionRepo,
			Build: func(ctn di.Container) (interface{}, error) {
				return repository.NewNftActionRepository(ctn.Get(serviceElastic).(elastic_search.Index)), nil
			},
		},
		{
			Name: serviceNftRepo,
			Build: func(ctn di.Container) (interface{}, error) {
				return repository.NewNftRepository(ctn.Get(serviceElastic).(elastic_search.Index)), nil
			},
		},
		{
			Name: serviceMessenger,
			Build: func(ctn di.Container) (interface{}, error) {
				return messenger.NewMessenger()
			},
		},
		{
			Name: servicePublisher,
			Build: func(ctn di.Container) (interface{}, error) {
				return messenger.NewPublisher(ctn.Get(serviceMessenger).(messenger.MessageService)), nil
			},
		},
		{
			Name: serviceWebhook,
			Build: func(ctn di.Container) (interface{}, error) {
				client := retryablehttp.NewClient()
				client.RetryMax = config.Get().Webhook.Retries
				client.Logger = nil

				return webhook.NewService(config.Get().Webhook.Url, client), nil
			},
		},
		{
			Name: serviceApiServer,
			Build: func(ctn di.Container) (interface{}, error) {
				return api.NewServer(
					ctn.Get(serviceRegistry).(registry.AssetRegistry),
					ctn.Get(serviceMarketplace).(*marketplace.Marketplace),
					ctn.Get(serviceNftActionRepo).(repository.NftActionRepository),
				), nil
			},
		},
	}
}

func (c *Container) GetClock() registry.Clock {
	return c.ctn.Get(serviceClock).(registry.Clock)
}

func (c *Container) GetRegistry() registry.AssetRegistry {
	return c.ctn.Get(serviceRegistry).(registry.AssetRegistry)
}

func (c *Container) GetMarketplace() *marketplace.Marketplace {
	return c.ctn.Get(serviceMarketplace).(*marketplace.Marketplace)
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get(serviceElastic).(elastic_search.Index)
}

func (c *Container) GetActionIndexer() indexer.ActionIndexer {
	return c.ctn.Get(serviceActionIndexer).(indexer.ActionIndexer)
}

func (c *Container) GetNftActionRepo() repository.NftActionRepository {
	return c.ctn.Get(serviceNftActionRepo).(repository.NftActionRepository)
}

func (c *Container) GetNftRepo() repository.NftRepository {
	return c.ctn.Get(serviceNftRepo).(repository.NftRepository)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get(serviceMessenger).(messenger.MessageService)
}

func (c *Container) GetPublisher() messenger.Publisher {
	return c.ctn.Get(servicePublisher).(messenger.Publisher)
}

func (c *Container) GetWebhook() webhook.Service {
	return c.ctn.Get(serviceWebhook).(webhook.Service)
}

func (c *Container) GetApiServer() api.Server {
	return c.ctn.Get(serviceApiServer).(api.Server)
}
