package marketplace

import (
	"time"

	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
)

// Listing is a seller's standing fixed-price sale for one asset.
// At most one active listing exists per (collection, tokenId, owner).
type Listing struct {
	Collection   domain.Address `json:"collection" bson:"collection"`
	TokenId      domain.TokenId `json:"tokenId" bson:"tokenId"`
	Owner        domain.Address `json:"owner" bson:"owner"`
	Quantity     int64          `json:"quantity" bson:"quantity"`
	PayToken     domain.Address `json:"payToken" bson:"payToken"`
	PricePerItem string         `json:"pricePerItem" bson:"pricePerItem"`
	StartingTime time.Time      `json:"startTime" bson:"startTime"`

	// additional info
	DisplayPrice  string    `json:"displayPrice" bson:"displayPrice"` // payment token, exact
	PriceInUsd    float64   `json:"priceInUsd" bson:"priceInUsd"`
	PriceInNative float64   `json:"priceInNative" bson:"priceInNative"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type ListingId struct {
	Collection domain.Address `bson:"collection"`
	TokenId    domain.TokenId `bson:"tokenId"`
	Owner      domain.Address `bson:"owner"`
}

func (l *Listing) ToId() *ListingId {
	return &ListingId{
		Collection: l.Collection,
		TokenId:    l.TokenId,
		Owner:      l.Owner,
	}
}

type ListingFindAllOptions struct {
	Collection *domain.Address
	TokenId    *domain.TokenId
	Owner      *domain.Address
	PayToken   *domain.Address
}

type ListingFindAllOptionsFunc func(*ListingFindAllOptions) error

func GetListingFindAllOptions(opts ...ListingFindAllOptionsFunc) (ListingFindAllOptions, error) {
	res := ListingFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func ListingWithCollection(collection domain.Address) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.Collection = collection.ToLowerPtr()
		return nil
	}
}

func ListingWithTokenId(tokenId domain.TokenId) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func ListingWithOwner(owner domain.Address) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.Owner = owner.ToLowerPtr()
		return nil
	}
}

func ListingWithPayToken(payToken domain.Address) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.PayToken = payToken.ToLowerPtr()
		return nil
	}
}

type ListingRepo interface {
	FindOne(ctx.Ctx, ListingId) (*Listing, error)
	FindAll(ctx.Ctx, ...ListingFindAllOptionsFunc) ([]*Listing, error)
	Upsert(ctx.Ctx, *Listing) error
	Remove(ctx.Ctx, ListingId) error
}
