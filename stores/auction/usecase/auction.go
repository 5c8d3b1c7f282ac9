package usecase

import (
	"sync"

	"github.com/benbjohnson/clock"

	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/log"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/auction"
	"github.com/mosaic-xyz/goapi/domain/ledger"
	"github.com/mosaic-xyz/goapi/domain/registry"
)

type AuctionCfg struct {
	Repo     auction.Repo
	Registry registry.ServiceRegistry
	Assets   ledger.AssetLedger
	Clock    clock.Clock
	Operator domain.Address
}

type impl struct {
	mu       sync.Mutex
	repo     auction.Repo
	registry registry.ServiceRegistry
	assets   ledger.AssetLedger
	clock    clock.Clock
	operator domain.Address
}

func New(cfg *AuctionCfg) auction.UseCase {
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &impl{
		repo:     cfg.Repo,
		registry: cfg.Registry,
		assets:   cfg.Assets,
		clock:    c,
		operator: cfg.Operator.ToLower(),
	}
}

// HasLiveAuction treats any unresulted record as live: an auction past
// its end time still locks the item until it is resulted or cancelled.
func (im *impl) HasLiveAuction(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (bool, error) {
	a, err := im.repo.FindOne(ctx, auction.AuctionId{Collection: collection.ToLower(), TokenId: tokenId})
	if err == domain.ErrNotFound {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return !a.Resulted, nil
}

func (im *impl) CreateAuction(ctx bCtx.Ctx, params *auction.CreateAuctionParams) (*auction.Auction, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	collection := params.Collection.ToLower()
	owner := params.Owner.ToLower()
	payToken := params.PayToken.ToLower()

	if !params.EndTime.After(params.StartTime) || !params.EndTime.After(im.clock.Now()) {
		return nil, domain.ErrBadParamInput
	}

	holding, err := im.assets.HoldingOf(ctx, collection, params.TokenId, owner)
	if err != nil {
		ctx.WithField("err", err).Error("assets.HoldingOf failed")
		return nil, err
	}
	if holding < 1 {
		return nil, domain.ErrNotOwningItem
	}
	approved, err := im.assets.IsApprovedForAll(ctx, collection, owner, im.operator)
	if err != nil {
		ctx.WithField("err", err).Error("assets.IsApprovedForAll failed")
		return nil, err
	}
	if !approved {
		return nil, domain.ErrNotApproved
	}

	tokens, err := im.registry.TokenRegistry(ctx)
	if err != nil {
		return nil, err
	}
	if enabled, err := tokens.IsEnabled(ctx, payToken); err != nil {
		return nil, err
	} else if !enabled {
		return nil, domain.ErrInvalidPaymentToken
	}

	id := auction.AuctionId{Collection: collection, TokenId: params.TokenId}
	if existing, err := im.repo.FindOne(ctx, id); err == nil && !existing.Resulted {
		return nil, domain.ErrAuctionAlreadyStarted
	} else if err != nil && err != domain.ErrNotFound {
		return nil, err
	}

	a := &auction.Auction{
		Collection:   collection,
		TokenId:      params.TokenId,
		Owner:        owner,
		PayToken:     payToken,
		ReservePrice: params.ReservePrice,
		StartTime:    params.StartTime,
		EndTime:      params.EndTime,
	}
	if err := im.repo.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (im *impl) ResultAuction(ctx bCtx.Ctx, id auction.AuctionId, caller domain.Address) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	id.Collection = id.Collection.ToLower()
	a, err := im.repo.FindOne(ctx, id)
	if err == domain.ErrNotFound {
		return domain.ErrAuctionNotFound
	} else if err != nil {
		return err
	}
	if !a.Owner.Equals(caller) {
		return domain.ErrUnauthorized
	}
	if a.Resulted {
		return domain.ErrAuctionAlreadyResulted
	}

	a.Resulted = true
	if err := im.repo.Upsert(ctx, a); err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("repo.Upsert failed")
		return err
	}
	return nil
}

func (im *impl) CancelAuction(ctx bCtx.Ctx, id auction.AuctionId, caller domain.Address) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	id.Collection = id.Collection.ToLower()
	a, err := im.repo.FindOne(ctx, id)
	if err == domain.ErrNotFound {
		return domain.ErrAuctionNotFound
	} else if err != nil {
		return err
	}
	if !a.Owner.Equals(caller) {
		return domain.ErrUnauthorized
	}
	if a.Resulted {
		return domain.ErrAuctionAlreadyResulted
	}
	return im.repo.Remove(ctx, id)
}

func (im *impl) GetAuction(ctx bCtx.Ctx, id auction.AuctionId) (*auction.Auction, error) {
	id.Collection = id.Collection.ToLower()
	a, err := im.repo.FindOne(ctx, id)
	if err == domain.ErrNotFound {
		return nil, domain.ErrAuctionNotFound
	}
	return a, err
}
