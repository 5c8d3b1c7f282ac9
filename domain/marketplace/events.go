package marketplace

import (
	"time"

	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
)

// Events mirror the notices the reference marketplace emits on every
// successful state transition. They are published after the state
// change committed; the mongo sink persists them as activity records.

type ListingCreatedEvent struct {
	Owner        domain.Address `json:"owner"`
	Nft          domain.Address `json:"nft"`
	TokenId      domain.TokenId `json:"tokenId"`
	Quantity     int64          `json:"quantity"`
	PayToken     domain.Address `json:"payToken"`
	PricePerItem string         `json:"pricePerItem"`
	StartingTime time.Time      `json:"startingTime"`
}

type ListingUpdatedEvent struct {
	Owner        domain.Address `json:"owner"`
	Nft          domain.Address `json:"nft"`
	TokenId      domain.TokenId `json:"tokenId"`
	PayToken     domain.Address `json:"payToken"`
	PricePerItem string         `json:"pricePerItem"`
}

type ListingCanceledEvent struct {
	Owner   domain.Address `json:"owner"`
	Nft     domain.Address `json:"nft"`
	TokenId domain.TokenId `json:"tokenId"`
}

type SoldEvent struct {
	Seller       domain.Address `json:"seller"`
	Buyer        domain.Address `json:"buyer"`
	Nft          domain.Address `json:"nft"`
	TokenId      domain.TokenId `json:"tokenId"`
	Quantity     int64          `json:"quantity"`
	PayToken     domain.Address `json:"payToken"`
	PricePerItem string         `json:"pricePerItem"`
}

type OfferCreatedEvent struct {
	Creator      domain.Address `json:"creator"`
	Nft          domain.Address `json:"nft"`
	TokenId      domain.TokenId `json:"tokenId"`
	Quantity     int64          `json:"quantity"`
	PayToken     domain.Address `json:"payToken"`
	PricePerItem string         `json:"pricePerItem"`
	Deadline     time.Time      `json:"deadline"`
}

type OfferCanceledEvent struct {
	Creator domain.Address `json:"creator"`
	Nft     domain.Address `json:"nft"`
	TokenId domain.TokenId `json:"tokenId"`
}

type OfferAcceptedEvent struct {
	Creator      domain.Address `json:"creator"`
	Seller       domain.Address `json:"seller"`
	Nft          domain.Address `json:"nft"`
	TokenId      domain.TokenId `json:"tokenId"`
	Quantity     int64          `json:"quantity"`
	PayToken     domain.Address `json:"payToken"`
	PricePerItem string         `json:"pricePerItem"`
}

// EventSink receives marketplace notices. Sink failures are logged by
// the caller but never undo the state transition that was already
// committed.
type EventSink interface {
	ListingCreated(ctx.Ctx, *ListingCreatedEvent) error
	ListingUpdated(ctx.Ctx, *ListingUpdatedEvent) error
	ListingCanceled(ctx.Ctx, *ListingCanceledEvent) error
	Sold(ctx.Ctx, *SoldEvent) error
	OfferCreated(ctx.Ctx, *OfferCreatedEvent) error
	OfferCanceled(ctx.Ctx, *OfferCanceledEvent) error
	OfferAccepted(ctx.Ctx, *OfferAcceptedEvent) error
}
