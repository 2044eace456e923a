package event

type Type string

const (
	CollectionCreatedEvent Type = "CollectionCreatedEvent"
	CollectionUpdatedEvent Type = "CollectionUpdatedEvent"

	NftMintedEvent        Type = "NftMintedEvent"
	NftTransferEvent      Type = "NftTransferEvent"
	ListedEvent           Type = "ListedEvent"
	SaleCancelledEvent    Type = "SaleCancelledEvent"
	SoldEvent             Type = "SoldEvent"
	AuctionCreatedEvent   Type = "AuctionCreatedEvent"
	BidPlacedEvent        Type = "BidPlacedEvent"
	AuctionFinalizedEvent Type = "AuctionFinalizedEvent"
	AuctionCancelledEvent Type = "AuctionCancelledEvent"
)
