package marketplace

import (
	"time"

	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
)

type ActivityType string

const (
	ActivityTypeList          ActivityType = "list"
	ActivityTypeUpdateListing ActivityType = "updateListing"
	ActivityTypeCancelListing ActivityType = "cancelListing"
	ActivityTypeSold          ActivityType = "sold"
	ActivityTypeCreateOffer   ActivityType = "createOffer"
	ActivityTypeCancelOffer   ActivityType = "cancelOffer"
	ActivityTypeAcceptOffer   ActivityType = "acceptOffer"
)

// Activity is the persisted form of a marketplace event, doubling as
// the account activity feed.
type Activity struct {
	Id           string         `json:"id" bson:"id"`
	Collection   domain.Address `json:"collection" bson:"collection"`
	TokenId      domain.TokenId `json:"tokenId" bson:"tokenId"`
	Type         ActivityType   `json:"type" bson:"type"`
	Account      domain.Address `json:"account" bson:"account"`
	To           domain.Address `json:"to,omitempty" bson:"to,omitempty"`
	Quantity     int64          `json:"quantity,omitempty" bson:"quantity,omitempty"`
	PricePerItem string         `json:"pricePerItem,omitempty" bson:"pricePerItem,omitempty"`
	PayToken     domain.Address `json:"payToken,omitempty" bson:"payToken,omitempty"`
	Deadline     time.Time      `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Time         time.Time      `json:"time" bson:"time"`
}

type ActivityRepo interface {
	Insert(ctx.Ctx, *Activity) error
	FindAllByAccount(ctx.Ctx, domain.Address) ([]*Activity, error)
	FindAllByToken(ctx.Ctx, domain.Address, domain.TokenId) ([]*Activity, error)
}
