package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/log"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/marketplace"
	"github.com/mosaic-xyz/goapi/service/query"
)

type activityMongoRepo struct {
	q query.Mongo
}

func NewActivityRepo(q query.Mongo) marketplace.ActivityRepo {
	return &activityMongoRepo{q}
}

func (im *activityMongoRepo) Insert(ctx bCtx.Ctx, activity *marketplace.Activity) error {
	if err := im.q.Insert(ctx, domain.TableActivities, activity); err != nil {
		ctx.WithFields(log.Fields{
			"activity": activity,
			"err":      err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *activityMongoRepo) FindAllByAccount(ctx bCtx.Ctx, account domain.Address) ([]*marketplace.Activity, error) {
	res := []*marketplace.Activity{}
	qry := bson.M{"account": account.ToLower()}
	if err := im.q.Search(ctx, domain.TableActivities, 0, 0, "-time", qry, &res); err != nil {
		ctx.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *activityMongoRepo) FindAllByToken(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) ([]*marketplace.Activity, error) {
	res := []*marketplace.Activity{}
	qry := bson.M{"collection": collection.ToLower(), "tokenId": tokenId}
	if err := im.q.Search(ctx, domain.TableActivities, 0, 0, "-time", qry, &res); err != nil {
		ctx.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
