package marketplace

import (
	"time"

	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
)

// Offer is a buyer's standing, time-bounded bid on one asset. At most
// one unexpired offer exists per (collection, tokenId, creator).
//
// An offer whose deadline has passed counts as non-existent for every
// read, accept and cancel purpose even though its document is not
// eagerly removed; only cancel/accept clear it, and a fresh create may
// overwrite it.
type Offer struct {
	Collection   domain.Address `json:"collection" bson:"collection"`
	TokenId      domain.TokenId `json:"tokenId" bson:"tokenId"`
	Creator      domain.Address `json:"creator" bson:"creator"`
	PayToken     domain.Address `json:"payToken" bson:"payToken"`
	Quantity     int64          `json:"quantity" bson:"quantity"`
	PricePerItem string         `json:"pricePerItem" bson:"pricePerItem"`
	Deadline     time.Time      `json:"deadline" bson:"deadline"`

	// additional info
	DisplayPrice  string    `json:"displayPrice" bson:"displayPrice"`
	PriceInUsd    float64   `json:"priceInUsd" bson:"priceInUsd"`
	PriceInNative float64   `json:"priceInNative" bson:"priceInNative"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type OfferId struct {
	Collection domain.Address `bson:"collection"`
	TokenId    domain.TokenId `bson:"tokenId"`
	Creator    domain.Address `bson:"creator"`
}

func (o *Offer) ToId() *OfferId {
	return &OfferId{
		Collection: o.Collection,
		TokenId:    o.TokenId,
		Creator:    o.Creator,
	}
}

// Alive reports whether the offer exists at the given instant.
func (o *Offer) Alive(now time.Time) bool {
	return o != nil && o.Deadline.After(now)
}

type OfferFindAllOptions struct {
	Collection *domain.Address
	TokenId    *domain.TokenId
	Creator    *domain.Address
	AliveAt    *time.Time
}

type OfferFindAllOptionsFunc func(*OfferFindAllOptions) error

func GetOfferFindAllOptions(opts ...OfferFindAllOptionsFunc) (OfferFindAllOptions, error) {
	res := OfferFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func OfferWithCollection(collection domain.Address) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.Collection = collection.ToLowerPtr()
		return nil
	}
}

func OfferWithTokenId(tokenId domain.TokenId) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func OfferWithCreator(creator domain.Address) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.Creator = creator.ToLowerPtr()
		return nil
	}
}

// OfferAliveAt filters out offers whose deadline has already passed.
func OfferAliveAt(now time.Time) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.AliveAt = &now
		return nil
	}
}

type OfferRepo interface {
	FindOne(ctx.Ctx, OfferId) (*Offer, error)
	FindAll(ctx.Ctx, ...OfferFindAllOptionsFunc) ([]*Offer, error)
	Upsert(ctx.Ctx, *Offer) error
	Remove(ctx.Ctx, OfferId) error
}
