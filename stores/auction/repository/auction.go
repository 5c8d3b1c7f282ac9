package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/database/mongoclient"
	"github.com/mosaic-xyz/goapi/base/log"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/auction"
	"github.com/mosaic-xyz/goapi/service/query"
)

type auctionMongoRepo struct {
	q query.Mongo
}

func NewAuctionRepo(q query.Mongo) auction.Repo {
	return &auctionMongoRepo{q}
}

func auctionSelector(id auction.AuctionId) (bson.M, error) {
	return mongoclient.MakeBsonM(&auction.AuctionId{
		Collection: id.Collection.ToLower(),
		TokenId:    id.TokenId,
	})
}

func (im *auctionMongoRepo) FindOne(ctx bCtx.Ctx, id auction.AuctionId) (*auction.Auction, error) {
	selector, err := auctionSelector(id)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}
	a := &auction.Auction{}
	if err := im.q.FindOne(ctx, domain.TableAuctions, selector, a); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return a, nil
}

func (im *auctionMongoRepo) Upsert(ctx bCtx.Ctx, a *auction.Auction) error {
	selector, err := auctionSelector(*a.ToId())
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := im.q.Upsert(ctx, domain.TableAuctions, selector, a); err != nil {
		ctx.WithFields(log.Fields{
			"id":  a.ToId(),
			"err": err,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *auctionMongoRepo) Remove(ctx bCtx.Ctx, id auction.AuctionId) error {
	selector, err := auctionSelector(id)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := im.q.Remove(ctx, domain.TableAuctions, selector); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
