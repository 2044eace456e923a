package main

import (
	"encoding/json"

	"github.com/ZilDuck/nft-marketplace-engine/internal/config"
	"github.com/ZilDuck/nft-marketplace-engine/internal/dev"
	"github.com/ZilDuck/nft-marketplace-engine/internal/dic"
	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"github.com/ZilDuck/nft-marketplace-engine/internal/messenger"
	"github.com/aws/aws-sdk-go/service/sqs"
	"go.uber.org/zap"
)

var messageService messenger.MessageService

func main() {
	config.Init()

	container, err := dic.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	messageService = container.GetMessenger()

	go pollSales()
	go pollSettlements()

	select {}
}

func pollSales() {
	zap.L().Info("Subscribing to sale settlements")
	messages := make(chan *sqs.Message, 10)
	go messageService.PollMessages(messenger.SaleSettled, messages)

	for message := range messages {
		var sale entity.MarketplaceSale
		if err := json.Unmarshal([]byte(*message.Body), &sale); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to read sale message")
			continue
		}
		dev.Dump(sale)

		zap.L().With(
			zap.Uint64("tokenId", sale.Nft.TokenId),
			zap.String("seller", sale.Seller),
			zap.String("buyer", sale.Buyer),
			zap.String("cost", sale.Cost.String()),
		).Info("Sale settled")

		if err := messageService.DeleteMessage(messenger.SaleSettled, message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}
	}
}

func pollSettlements() {
	zap.L().Info("Subscribing to auction settlements")
	messages := make(chan *sqs.Message, 10)
	go messageService.PollMessages(messenger.AuctionSettled, messages)

	for message := range messages {
		var settlement entity.MarketplaceSettlement
		if err := json.Unmarshal([]byte(*message.Body), &settlement); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to read settlement message")
			continue
		}
		dev.Dump(settlement)

		zap.L().With(
			zap.Uint64("tokenId", settlement.Nft.TokenId),
			zap.String("winner", settlement.Winner),
			zap.String("amount", settlement.Amount.String()),
		).Info("Auction settled")

		if err := messageService.DeleteMessage(messenger.AuctionSettled, message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}
	}
}
