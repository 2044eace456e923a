package messenger

import (
	"encoding/json"

	"github.com/ZilDuck/nft-marketplace-engine/internal/entity"
	"go.uber.org/zap"
)

// Publisher forwards settlement notifications onto the queue so downstream
// consumers (royalty payout, analytics) see every completed exchange.
type Publisher struct {
	messenger MessageService
}

func NewPublisher(messenger MessageService) Publisher {
	return Publisher{messenger}
}

func (p Publisher) PublishSale(el interface{}) {
	sale, ok := el.(entity.MarketplaceSale)
	if !ok {
		zap.L().Error("Publisher: Unexpected sale payload")
		return
	}

	body, err := json.Marshal(sale)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Publisher: Failed to marshal sale")
		return
	}

	if err := p.messenger.SendMessage(SaleSettled, body); err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("tokenId", sale.Nft.TokenId)).Error("Publisher: Failed to publish sale")
	}
}

func (p Publisher) PublishSettlement(el interface{}) {
	settlement, ok := el.(entity.MarketplaceSettlement)
	if !ok {
		zap.L().Error("Publisher: Unexpected settlement payload")
		return
	}

	body, err := json.Marshal(settlement)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Publisher: Failed to marshal settlement")
		return
	}

	if err := p.messenger.SendMessage(AuctionSettled, body); err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("tokenId", settlement.Nft.TokenId)).Error("Publisher: Failed to publish settlement")
	}
}
