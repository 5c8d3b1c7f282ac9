package marketplace

import (
	"time"

	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
)

type CreateListingParams struct {
	Collection   domain.Address `json:"collection"`
	TokenId      domain.TokenId `json:"tokenId"`
	Owner        domain.Address `json:"owner"`
	Quantity     int64          `json:"quantity"`
	PayToken     domain.Address `json:"payToken"`
	PricePerItem string         `json:"pricePerItem"`
	StartingTime time.Time      `json:"startingTime"`
}

type UpdateListingParams struct {
	Collection   domain.Address `json:"collection"`
	TokenId      domain.TokenId `json:"tokenId"`
	Owner        domain.Address `json:"owner"`
	PayToken     domain.Address `json:"payToken"`
	PricePerItem string         `json:"pricePerItem"`
}

type BuyParams struct {
	Collection domain.Address `json:"collection"`
	TokenId    domain.TokenId `json:"tokenId"`
	Seller     domain.Address `json:"seller"`
	Buyer      domain.Address `json:"buyer"`
	PayToken   domain.Address `json:"payToken"`
	// DesiredPrice is the total price the buyer saw when submitting;
	// settlement refuses to charge more than this.
	DesiredPrice string `json:"desiredPrice"`
}

type CreateOfferParams struct {
	Collection   domain.Address `json:"collection"`
	TokenId      domain.TokenId `json:"tokenId"`
	Creator      domain.Address `json:"creator"`
	PayToken     domain.Address `json:"payToken"`
	Quantity     int64          `json:"quantity"`
	PricePerItem string         `json:"pricePerItem"`
	Deadline     time.Time      `json:"deadline"`
}

type AcceptOfferParams struct {
	Collection domain.Address `json:"collection"`
	TokenId    domain.TokenId `json:"tokenId"`
	Creator    domain.Address `json:"creator"`
	Seller     domain.Address `json:"seller"`
}

// FeeConfig is the platform cut applied by every settlement.
type FeeConfig struct {
	Recipient   domain.Address `json:"recipient"`
	BasisPoints int64          `json:"basisPoints"`
}

// UseCase is the listing & offer state machine with escrow-free
// settlement. Every operation runs as one indivisible unit: it either
// completes with all its transfers and record changes applied, or
// fails with one of the domain error kinds and no observable effect.
type UseCase interface {
	CreateListing(ctx.Ctx, *CreateListingParams) (*Listing, error)
	UpdateListing(ctx.Ctx, *UpdateListingParams) (*Listing, error)
	CancelListing(ctx.Ctx, ListingId) error
	Buy(ctx.Ctx, *BuyParams) error

	CreateOffer(ctx.Ctx, *CreateOfferParams) (*Offer, error)
	CancelOffer(ctx.Ctx, OfferId) error
	AcceptOffer(ctx.Ctx, *AcceptOfferParams) error

	GetListing(ctx.Ctx, ListingId) (*Listing, error)
	GetListings(ctx.Ctx, ...ListingFindAllOptionsFunc) ([]*Listing, error)
	// GetOffer returns the zero record for a cleared or never-created
	// offer: empty payToken, zero deadline.
	GetOffer(ctx.Ctx, OfferId) (*Offer, error)
	GetOffers(ctx.Ctx, ...OfferFindAllOptionsFunc) ([]*Offer, error)

	GetFeeConfig(ctx.Ctx) FeeConfig
	UpdateFeeConfig(ctx.Ctx, FeeConfig) error
}
