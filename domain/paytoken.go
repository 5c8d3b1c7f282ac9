package domain

import (
	"github.com/mosaic-xyz/goapi/base/ctx"
)

type PayToken struct {
	Name          string  `json:"name" bson:"name"`
	Symbol        string  `json:"symbol" bson:"symbol"`
	TokenDecimals int32   `json:"tokenDecimals" bson:"tokenDecimals"`
	Address       Address `json:"address" bson:"address"`
	CoinGeckoId   string  `json:"coinGeckoId" bson:"coinGeckoId"`
	Enabled       bool    `json:"enabled" bson:"enabled"`
}

type PayTokenId struct {
	Address Address `bson:"address"`
}

func (t *PayToken) ToId() *PayTokenId {
	return &PayTokenId{Address: t.Address}
}

type PayTokenRepo interface {
	FindOne(ctx.Ctx, Address) (*PayToken, error)
	Create(ctx.Ctx, *PayToken) error
	Upsert(ctx.Ctx, *PayToken) error
}

// PayTokenRegistry is the enabled-token lookup consumed by the
// marketplace and auction engines.
type PayTokenRegistry interface {
	IsEnabled(ctx.Ctx, Address) (bool, error)
	Get(ctx.Ctx, Address) (*PayToken, error)
	Add(ctx.Ctx, *PayToken) error
	Disable(ctx.Ctx, Address) error
}
