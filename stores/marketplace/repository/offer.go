package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/database/mongoclient"
	"github.com/mosaic-xyz/goapi/base/log"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/marketplace"
	"github.com/mosaic-xyz/goapi/service/query"
)

type offerMongoRepo struct {
	q query.Mongo
}

func NewOfferRepo(q query.Mongo) marketplace.OfferRepo {
	return &offerMongoRepo{q}
}

func offerSelector(id marketplace.OfferId) (bson.M, error) {
	return mongoclient.MakeBsonM(&marketplace.OfferId{
		Collection: id.Collection.ToLower(),
		TokenId:    id.TokenId,
		Creator:    id.Creator.ToLower(),
	})
}

func (im *offerMongoRepo) makeQuery(options marketplace.OfferFindAllOptions) bson.M {
	qry := bson.M{}
	if options.Collection != nil {
		qry["collection"] = *options.Collection
	}
	if options.TokenId != nil {
		qry["tokenId"] = *options.TokenId
	}
	if options.Creator != nil {
		qry["creator"] = *options.Creator
	}
	if options.AliveAt != nil {
		qry["deadline"] = bson.M{"$gt": *options.AliveAt}
	}
	return qry
}

func (im *offerMongoRepo) FindOne(ctx bCtx.Ctx, id marketplace.OfferId) (*marketplace.Offer, error) {
	selector, err := offerSelector(id)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}
	offer := &marketplace.Offer{}
	if err := im.q.FindOne(ctx, domain.TableOffers, selector, offer); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return offer, nil
}

func (im *offerMongoRepo) FindAll(ctx bCtx.Ctx, opts ...marketplace.OfferFindAllOptionsFunc) ([]*marketplace.Offer, error) {
	options, err := marketplace.GetOfferFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	res := []*marketplace.Offer{}
	if err := im.q.Search(ctx, domain.TableOffers, 0, 0, "-createdAt", im.makeQuery(options), &res); err != nil {
		ctx.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *offerMongoRepo) Upsert(ctx bCtx.Ctx, offer *marketplace.Offer) error {
	selector, err := offerSelector(*offer.ToId())
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := im.q.Upsert(ctx, domain.TableOffers, selector, offer); err != nil {
		ctx.WithFields(log.Fields{
			"id":  offer.ToId(),
			"err": err,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *offerMongoRepo) Remove(ctx bCtx.Ctx, id marketplace.OfferId) error {
	selector, err := offerSelector(id)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := im.q.Remove(ctx, domain.TableOffers, selector); err == query.ErrNotFound {
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
