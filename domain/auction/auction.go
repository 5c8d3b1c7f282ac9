package auction

import (
	"time"

	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
)

// Auction is the slice of auction state the marketplace cares about:
// one record per (collection, tokenId), live until resulted or
// cancelled. Bidding, extensions and reserve handling live in the
// auction service proper and are not modelled here.
type Auction struct {
	Collection   domain.Address `json:"collection" bson:"collection"`
	TokenId      domain.TokenId `json:"tokenId" bson:"tokenId"`
	Owner        domain.Address `json:"owner" bson:"owner"`
	PayToken     domain.Address `json:"payToken" bson:"payToken"`
	ReservePrice string         `json:"reservePrice" bson:"reservePrice"`
	StartTime    time.Time      `json:"startTime" bson:"startTime"`
	EndTime      time.Time      `json:"endTime" bson:"endTime"`
	Resulted     bool           `json:"resulted" bson:"resulted"`
}

type AuctionId struct {
	Collection domain.Address `bson:"collection"`
	TokenId    domain.TokenId `bson:"tokenId"`
}

func (a *Auction) ToId() *AuctionId {
	return &AuctionId{
		Collection: a.Collection,
		TokenId:    a.TokenId,
	}
}

type Repo interface {
	FindOne(ctx.Ctx, AuctionId) (*Auction, error)
	Upsert(ctx.Ctx, *Auction) error
	Remove(ctx.Ctx, AuctionId) error
}

// LiveChecker is the exclusivity predicate consumed by the
// marketplace. Callers must re-query it on every dependent operation;
// results are never cached.
type LiveChecker interface {
	HasLiveAuction(ctx.Ctx, domain.Address, domain.TokenId) (bool, error)
}

type CreateAuctionParams struct {
	Collection   domain.Address `json:"collection"`
	TokenId      domain.TokenId `json:"tokenId"`
	Owner        domain.Address `json:"owner"`
	PayToken     domain.Address `json:"payToken"`
	ReservePrice string         `json:"reservePrice"`
	StartTime    time.Time      `json:"startTime"`
	EndTime      time.Time      `json:"endTime"`
}

type UseCase interface {
	LiveChecker
	CreateAuction(ctx.Ctx, *CreateAuctionParams) (*Auction, error)
	ResultAuction(ctx.Ctx, AuctionId, domain.Address) error
	CancelAuction(ctx.Ctx, AuctionId, domain.Address) error
	GetAuction(ctx.Ctx, AuctionId) (*Auction, error)
}
