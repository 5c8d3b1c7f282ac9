package repository

import (
	"time"

	"github.com/google/uuid"

	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain/marketplace"
)

// activitySink persists marketplace events as activity documents.
type activitySink struct {
	repo marketplace.ActivityRepo
}

func NewActivitySink(repo marketplace.ActivityRepo) marketplace.EventSink {
	return &activitySink{repo}
}

func (s *activitySink) insert(ctx bCtx.Ctx, activity *marketplace.Activity) error {
	activity.Id = uuid.NewString()
	activity.Time = time.Now()
	return s.repo.Insert(ctx, activity)
}

func (s *activitySink) ListingCreated(ctx bCtx.Ctx, evt *marketplace.ListingCreatedEvent) error {
	return s.insert(ctx, &marketplace.Activity{
		Collection:   evt.Nft,
		TokenId:      evt.TokenId,
		Type:         marketplace.ActivityTypeList,
		Account:      evt.Owner,
		Quantity:     evt.Quantity,
		PricePerItem: evt.PricePerItem,
		PayToken:     evt.PayToken,
	})
}

func (s *activitySink) ListingUpdated(ctx bCtx.Ctx, evt *marketplace.ListingUpdatedEvent) error {
	return s.insert(ctx, &marketplace.Activity{
		Collection:   evt.Nft,
		TokenId:      evt.TokenId,
		Type:         marketplace.ActivityTypeUpdateListing,
		Account:      evt.Owner,
		PricePerItem: evt.PricePerItem,
		PayToken:     evt.PayToken,
	})
}

func (s *activitySink) ListingCanceled(ctx bCtx.Ctx, evt *marketplace.ListingCanceledEvent) error {
	return s.insert(ctx, &marketplace.Activity{
		Collection: evt.Nft,
		TokenId:    evt.TokenId,
		Type:       marketplace.ActivityTypeCancelListing,
		Account:    evt.Owner,
	})
}

func (s *activitySink) Sold(ctx bCtx.Ctx, evt *marketplace.SoldEvent) error {
	return s.insert(ctx, &marketplace.Activity{
		Collection:   evt.Nft,
		TokenId:      evt.TokenId,
		Type:         marketplace.ActivityTypeSold,
		Account:      evt.Seller,
		To:           evt.Buyer,
		Quantity:     evt.Quantity,
		PricePerItem: evt.PricePerItem,
		PayToken:     evt.PayToken,
	})
}

func (s *activitySink) OfferCreated(ctx bCtx.Ctx, evt *marketplace.OfferCreatedEvent) error {
	return s.insert(ctx, &marketplace.Activity{
		Collection:   evt.Nft,
		TokenId:      evt.TokenId,
		Type:         marketplace.ActivityTypeCreateOffer,
		Account:      evt.Creator,
		Quantity:     evt.Quantity,
		PricePerItem: evt.PricePerItem,
		PayToken:     evt.PayToken,
		Deadline:     evt.Deadline,
	})
}

func (s *activitySink) OfferCanceled(ctx bCtx.Ctx, evt *marketplace.OfferCanceledEvent) error {
	return s.insert(ctx, &marketplace.Activity{
		Collection: evt.Nft,
		TokenId:    evt.TokenId,
		Type:       marketplace.ActivityTypeCancelOffer,
		Account:    evt.Creator,
	})
}

func (s *activitySink) OfferAccepted(ctx bCtx.Ctx, evt *marketplace.OfferAcceptedEvent) error {
	return s.insert(ctx, &marketplace.Activity{
		Collection:   evt.Nft,
		TokenId:      evt.TokenId,
		Type:         marketplace.ActivityTypeAcceptOffer,
		Account:      evt.Seller,
		To:           evt.Creator,
		Quantity:     evt.Quantity,
		PricePerItem: evt.PricePerItem,
		PayToken:     evt.PayToken,
	})
}
