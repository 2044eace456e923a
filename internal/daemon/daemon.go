package daemon

import (
	"net/http"
	"time"

	"github.com/ZilDuck/nft-marketplace-engine/internal/config"
	"github.com/ZilDuck/nft-marketplace-engine/internal/dic"
	"github.com/ZilDuck/nft-marketplace-engine/internal/event"
	"go.uber.org/zap"
)

var container *dic.Container

func Execute() {
	initialize()

	container.GetElastic().InstallMappings()

	if config.Get().Reindex == true {
		zap.L().Info("Reindex complete")
		return
	}

	registerListeners()

	go persistLoop()

	serve()
}

func initialize() {
	config.Init()

	var err error
	container, err = dic.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	zap.L().Info("Marketplace Started")
}

func registerListeners() {
	actionIndexer := container.GetActionIndexer()

	event.AddEventListener(event.CollectionCreatedEvent, actionIndexer.OnCollectionCreated)
	event.AddEventListener(event.CollectionUpdatedEvent, actionIndexer.OnCollectionUpdated)
	event.AddEventListener(event.NftMintedEvent, actionIndexer.OnNftMinted)
	event.AddEventListener(event.NftTransferEvent, actionIndexer.OnNftTransfer)
	event.AddEventListener(event.ListedEvent, actionIndexer.OnListed)
	event.AddEventListener(event.SaleCancelledEvent, actionIndexer.OnSaleCancelled)
	event.AddEventListener(event.SoldEvent, actionIndexer.OnSold)
	event.AddEventListener(event.AuctionCreatedEvent, actionIndexer.OnAuctionCreated)
	event.AddEventListener(event.BidPlacedEvent, actionIndexer.OnBidPlaced)
	event.AddEventListener(event.AuctionFinalizedEvent, actionIndexer.OnAuctionFinalized)
	event.AddEventListener(event.AuctionCancelledEvent, actionIndexer.OnAuctionCancelled)

	publisher := container.GetPublisher()
	event.AddEventListener(event.SoldEvent, publisher.PublishSale)
	event.AddEventListener(event.AuctionFinalizedEvent, publisher.PublishSettlement)

	if config.Get().Webhook.Url != "" {
		hook := container.GetWebhook()
		event.AddEventListener(event.SoldEvent, hook.NotifierFor(string(event.SoldEvent)))
		event.AddEventListener(event.AuctionFinalizedEvent, hook.NotifierFor(string(event.AuctionFinalizedEvent)))
	}
}

// persistLoop flushes whatever is buffered on every tick. BatchPersist alone
// would sit on small batches forever on a quiet marketplace.
func persistLoop() {
	for {
		time.Sleep(5 * time.Second)
		container.GetElastic().Persist()
	}
}

func serve() {
	server := container.GetApiServer()

	port := config.Get().ApiPort
	zap.L().With(zap.String("port", port)).Info("Api listening")

	if err := http.ListenAndServe(":"+port, server.Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Api server failed")
	}
}
