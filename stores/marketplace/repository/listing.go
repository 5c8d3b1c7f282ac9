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

type listingMongoRepo struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) marketplace.ListingRepo {
	return &listingMongoRepo{q}
}

func listingSelector(id marketplace.ListingId) (bson.M, error) {
	return mongoclient.MakeBsonM(&marketplace.ListingId{
		Collection: id.Collection.ToLower(),
		TokenId:    id.TokenId,
		Owner:      id.Owner.ToLower(),
	})
}

func (im *listingMongoRepo) makeQuery(options marketplace.ListingFindAllOptions) bson.M {
	qry := bson.M{}
	if options.Collection != nil {
		qry["collection"] = *options.Collection
	}
	if options.TokenId != nil {
		qry["tokenId"] = *options.TokenId
	}
	if options.Owner != nil {
		qry["owner"] = *options.Owner
	}
	if options.PayToken != nil {
		qry["payToken"] = *options.PayToken
	}
	return qry
}

func (im *listingMongoRepo) FindOne(ctx bCtx.Ctx, id marketplace.ListingId) (*marketplace.Listing, error) {
	selector, err := listingSelector(id)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}
	listing := &marketplace.Listing{}
	if err := im.q.FindOne(ctx, domain.TableListings, selector, listing); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return listing, nil
}

func (im *listingMongoRepo) FindAll(ctx bCtx.Ctx, opts ...marketplace.ListingFindAllOptionsFunc) ([]*marketplace.Listing, error) {
	options, err := marketplace.GetListingFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	res := []*marketplace.Listing{}
	if err := im.q.Search(ctx, domain.TableListings, 0, 0, "-createdAt", im.makeQuery(options), &res); err != nil {
		ctx.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *listingMongoRepo) Upsert(ctx bCtx.Ctx, listing *marketplace.Listing) error {
	selector, err := listingSelector(*listing.ToId())
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := im.q.Upsert(ctx, domain.TableListings, selector, listing); err != nil {
		ctx.WithFields(log.Fields{
			"id":  listing.ToId(),
			"err": err,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *listingMongoRepo) Remove(ctx bCtx.Ctx, id marketplace.ListingId) error {
	selector, err := listingSelector(id)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := im.q.Remove(ctx, domain.TableListings, selector); err == query.ErrNotFound {
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
