package usecase

import (
	"math/big"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/shopspring/decimal"

	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/log"
	"github.com/mosaic-xyz/goapi/base/pricefeed"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/ledger"
	"github.com/mosaic-xyz/goapi/domain/marketplace"
	"github.com/mosaic-xyz/goapi/domain/registry"
)

type MarketplaceCfg struct {
	ListingRepo marketplace.ListingRepo
	OfferRepo   marketplace.OfferRepo
	Registry    registry.ServiceRegistry
	Assets      ledger.AssetLedger
	Settler     ledger.Settler
	Events      marketplace.EventSink
	Prices      pricefeed.PriceFormatter
	Clock       clock.Clock
	// Operator is the engine's own transfer identity: the spender of
	// buyer allowances and the operator of seller approvals.
	Operator domain.Address
	Fee      marketplace.FeeConfig
}

type impl struct {
	// mu serializes the public operations so each one runs as an
	// indivisible unit against listings, offers and the ledger.
	mu sync.Mutex

	listingRepo marketplace.ListingRepo
	offerRepo   marketplace.OfferRepo
	registry    registry.ServiceRegistry
	assets      ledger.AssetLedger
	settler     ledger.Settler
	events      marketplace.EventSink
	prices      pricefeed.PriceFormatter
	clock       clock.Clock
	operator    domain.Address
	fee         marketplace.FeeConfig
}

func New(cfg *MarketplaceCfg) marketplace.UseCase {
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &impl{
		listingRepo: cfg.ListingRepo,
		offerRepo:   cfg.OfferRepo,
		registry:    cfg.Registry,
		assets:      cfg.Assets,
		settler:     cfg.Settler,
		events:      cfg.Events,
		prices:      cfg.Prices,
		clock:       c,
		operator:    cfg.Operator.ToLower(),
		fee:         cfg.Fee,
	}
}

// hasLiveAuction re-resolves the auction subsystem through the service
// registry on every call; a deployment without one has no live
// auctions.
func (im *impl) hasLiveAuction(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (bool, error) {
	checker, err := im.registry.Auction(ctx)
	if err == domain.ErrServiceUnregistered {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return checker.HasLiveAuction(ctx, collection, tokenId)
}

func (im *impl) isPayTokenEnabled(ctx bCtx.Ctx, token domain.Address) (bool, error) {
	reg, err := im.registry.TokenRegistry(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("registry.TokenRegistry failed")
		return false, err
	}
	return reg.IsEnabled(ctx, token)
}

// ownsAndApproved checks the live asset state: the party holds at least
// quantity units and has authorized the engine to move them.
func (im *impl) ownsAndApproved(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId, party domain.Address, quantity int64) error {
	holding, err := im.assets.HoldingOf(ctx, collection, tokenId, party)
	if err != nil {
		ctx.WithField("err", err).Error("assets.HoldingOf failed")
		return err
	}
	if holding < quantity {
		return domain.ErrNotOwningItem
	}
	approved, err := im.assets.IsApprovedForAll(ctx, collection, party, im.operator)
	if err != nil {
		ctx.WithField("err", err).Error("assets.IsApprovedForAll failed")
		return err
	}
	if !approved {
		return domain.ErrNotApproved
	}
	return nil
}

func (im *impl) CreateListing(ctx bCtx.Ctx, params *marketplace.CreateListingParams) (*marketplace.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	collection := params.Collection.ToLower()
	owner := params.Owner.ToLower()
	payToken := params.PayToken.ToLower()

	if params.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	pricePerItem, err := parsePrice(params.PricePerItem)
	if err != nil {
		return nil, err
	}

	if err := im.ownsAndApproved(ctx, collection, params.TokenId, owner, params.Quantity); err != nil {
		return nil, err
	}

	if enabled, err := im.isPayTokenEnabled(ctx, payToken); err != nil {
		return nil, err
	} else if !enabled {
		return nil, domain.ErrInvalidPaymentToken
	}

	id := marketplace.ListingId{Collection: collection, TokenId: params.TokenId, Owner: owner}
	if _, err := im.listingRepo.FindOne(ctx, id); err == nil {
		return nil, domain.ErrAlreadyListed
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	displayPrice, priceInUsd, priceInNative, err := im.prices.GetPrices(ctx, payToken, pricePerItem)
	if err != nil {
		ctx.WithFields(log.Fields{
			"payToken": payToken,
			"err":      err,
		}).Error("prices.GetPrices failed")
		return nil, err
	}

	listing := &marketplace.Listing{
		Collection:    collection,
		TokenId:       params.TokenId,
		Owner:         owner,
		Quantity:      params.Quantity,
		PayToken:      payToken,
		PricePerItem:  pricePerItem.String(),
		StartingTime:  params.StartingTime,
		DisplayPrice:  displayPrice.String(),
		PriceInUsd:    priceInUsd,
		PriceInNative: priceInNative,
		CreatedAt:     im.clock.Now(),
	}
	if err := im.listingRepo.Upsert(ctx, listing); err != nil {
		return nil, err
	}

	if err := im.events.ListingCreated(ctx, &marketplace.ListingCreatedEvent{
		Owner:        owner,
		Nft:          collection,
		TokenId:      params.TokenId,
		Quantity:     params.Quantity,
		PayToken:     payToken,
		PricePerItem: listing.PricePerItem,
		StartingTime: params.StartingTime,
	}); err != nil {
		ctx.WithField("err", err).Warn("events.ListingCreated failed")
	}
	return listing, nil
}

func (im *impl) UpdateListing(ctx bCtx.Ctx, params *marketplace.UpdateListingParams) (*marketplace.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	collection := params.Collection.ToLower()
	owner := params.Owner.ToLower()
	payToken := params.PayToken.ToLower()

	pricePerItem, err := parsePrice(params.PricePerItem)
	if err != nil {
		return nil, err
	}

	id := marketplace.ListingId{Collection: collection, TokenId: params.TokenId, Owner: owner}
	listing, err := im.listingRepo.FindOne(ctx, id)
	if err == domain.ErrNotFound {
		return nil, domain.ErrNotListed
	} else if err != nil {
		return nil, err
	}

	if enabled, err := im.isPayTokenEnabled(ctx, payToken); err != nil {
		return nil, err
	} else if !enabled {
		return nil, domain.ErrInvalidPaymentToken
	}

	displayPrice, priceInUsd, priceInNative, err := im.prices.GetPrices(ctx, payToken, pricePerItem)
	if err != nil {
		ctx.WithFields(log.Fields{
			"payToken": payToken,
			"err":      err,
		}).Error("prices.GetPrices failed")
		return nil, err
	}

	listing.PayToken = payToken
	listing.PricePerItem = pricePerItem.String()
	listing.DisplayPrice = displayPrice.String()
	listing.PriceInUsd = priceInUsd
	listing.PriceInNative = priceInNative
	if err := im.listingRepo.Upsert(ctx, listing); err != nil {
		return nil, err
	}

	if err := im.events.ListingUpdated(ctx, &marketplace.ListingUpdatedEvent{
		Owner:        owner,
		Nft:          collection,
		TokenId:      params.TokenId,
		PayToken:     payToken,
		PricePerItem: listing.PricePerItem,
	}); err != nil {
		ctx.WithField("err", err).Warn("events.ListingUpdated failed")
	}
	return listing, nil
}

func (im *impl) CancelListing(ctx bCtx.Ctx, id marketplace.ListingId) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	id.Collection = id.Collection.ToLower()
	id.Owner = id.Owner.ToLower()

	if _, err := im.listingRepo.FindOne(ctx, id); err == domain.ErrNotFound {
		return domain.ErrNotListed
	} else if err != nil {
		return err
	}
	if err := im.listingRepo.Remove(ctx, id); err != nil {
		return err
	}

	if err := im.events.ListingCanceled(ctx, &marketplace.ListingCanceledEvent{
		Owner:   id.Owner,
		Nft:     id.Collection,
		TokenId: id.TokenId,
	}); err != nil {
		ctx.WithField("err", err).Warn("events.ListingCanceled failed")
	}
	return nil
}

func (im *impl) Buy(ctx bCtx.Ctx, params *marketplace.BuyParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	collection := params.Collection.ToLower()
	seller := params.Seller.ToLower()
	buyer := params.Buyer.ToLower()
	now := im.clock.Now()

	id := marketplace.ListingId{Collection: collection, TokenId: params.TokenId, Owner: seller}
	listing, err := im.listingRepo.FindOne(ctx, id)
	if err == domain.ErrNotFound {
		return domain.ErrNotListed
	} else if err != nil {
		return err
	}

	if !params.PayToken.Equals(listing.PayToken) {
		return domain.ErrInvalidPaymentToken
	}
	if now.Before(listing.StartingTime) {
		return domain.ErrNotBuyable
	}

	// the exclusivity predicate is authoritative and re-checked on
	// every purchase; a listed item becomes un-buyable the moment an
	// auction goes live on it.
	if live, err := im.hasLiveAuction(ctx, collection, params.TokenId); err != nil {
		return err
	} else if live {
		return domain.ErrAuctionInProgress
	}

	pricePerItem, err := parsePrice(listing.PricePerItem)
	if err != nil {
		return err
	}
	total := new(big.Int).Mul(pricePerItem, big.NewInt(listing.Quantity))
	desired, err := parsePrice(params.DesiredPrice)
	if err != nil {
		return err
	}
	if desired.Cmp(total) < 0 {
		return domain.ErrPriceMismatch
	}

	// seller authorization is validated lazily, at the moment of
	// purchase, against the live asset state.
	if err := im.ownsAndApproved(ctx, collection, params.TokenId, seller, listing.Quantity); err != nil {
		return err
	}

	if err := im.settle(ctx, listing.PayToken, buyer, seller, total, collection, params.TokenId, listing.Quantity); err != nil {
		return err
	}

	if err := im.listingRepo.Remove(ctx, id); err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("listingRepo.Remove failed after settlement")
		return err
	}

	if err := im.events.Sold(ctx, &marketplace.SoldEvent{
		Seller:       seller,
		Buyer:        buyer,
		Nft:          collection,
		TokenId:      params.TokenId,
		Quantity:     listing.Quantity,
		PayToken:     listing.PayToken,
		PricePerItem: listing.PricePerItem,
	}); err != nil {
		ctx.WithField("err", err).Warn("events.Sold failed")
	}
	return nil
}

func (im *impl) CreateOffer(ctx bCtx.Ctx, params *marketplace.CreateOfferParams) (*marketplace.Offer, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	collection := params.Collection.ToLower()
	creator := params.Creator.ToLower()
	payToken := params.PayToken.ToLower()
	now := im.clock.Now()

	if params.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	pricePerItem, err := parsePrice(params.PricePerItem)
	if err != nil {
		return nil, err
	}
	if !params.Deadline.After(now) {
		return nil, domain.ErrInvalidExpiration
	}

	if live, err := im.hasLiveAuction(ctx, collection, params.TokenId); err != nil {
		return nil, err
	} else if live {
		return nil, domain.ErrAuctionInProgress
	}

	if enabled, err := im.isPayTokenEnabled(ctx, payToken); err != nil {
		return nil, err
	} else if !enabled {
		return nil, domain.ErrInvalidPaymentToken
	}

	// an expired record does not block a fresh offer; only a live one
	// does. The stale document is simply overwritten.
	id := marketplace.OfferId{Collection: collection, TokenId: params.TokenId, Creator: creator}
	existing, err := im.offerRepo.FindOne(ctx, id)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	if existing.Alive(now) {
		return nil, domain.ErrOfferAlreadyExists
	}

	displayPrice, priceInUsd, priceInNative, err := im.prices.GetPrices(ctx, payToken, pricePerItem)
	if err != nil {
		ctx.WithFields(log.Fields{
			"payToken": payToken,
			"err":      err,
		}).Error("prices.GetPrices failed")
		return nil, err
	}

	offer := &marketplace.Offer{
		Collection:    collection,
		TokenId:       params.TokenId,
		Creator:       creator,
		PayToken:      payToken,
		Quantity:      params.Quantity,
		PricePerItem:  pricePerItem.String(),
		Deadline:      params.Deadline,
		DisplayPrice:  displayPrice.String(),
		PriceInUsd:    priceInUsd,
		PriceInNative: priceInNative,
		CreatedAt:     now,
	}
	if err := im.offerRepo.Upsert(ctx, offer); err != nil {
		return nil, err
	}

	if err := im.events.OfferCreated(ctx, &marketplace.OfferCreatedEvent{
		Creator:      creator,
		Nft:          collection,
		TokenId:      params.TokenId,
		Quantity:     params.Quantity,
		PayToken:     payToken,
		PricePerItem: offer.PricePerItem,
		Deadline:     params.Deadline,
	}); err != nil {
		ctx.WithField("err", err).Warn("events.OfferCreated failed")
	}
	return offer, nil
}

func (im *impl) CancelOffer(ctx bCtx.Ctx, id marketplace.OfferId) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	id.Collection = id.Collection.ToLower()
	id.Creator = id.Creator.ToLower()
	now := im.clock.Now()

	offer, err := im.offerRepo.FindOne(ctx, id)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	// an expired offer is indistinguishable from absence; cancelling
	// it is an error, not a no-op.
	if !offer.Alive(now) {
		return domain.ErrOfferNotFoundOrExpired
	}

	if err := im.offerRepo.Remove(ctx, id); err != nil {
		return err
	}

	if err := im.events.OfferCanceled(ctx, &marketplace.OfferCanceledEvent{
		Creator: id.Creator,
		Nft:     id.Collection,
		TokenId: id.TokenId,
	}); err != nil {
		ctx.WithField("err", err).Warn("events.OfferCanceled failed")
	}
	return nil
}

func (im *impl) AcceptOffer(ctx bCtx.Ctx, params *marketplace.AcceptOfferParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	collection := params.Collection.ToLower()
	creator := params.Creator.ToLower()
	seller := params.Seller.ToLower()
	now := im.clock.Now()

	id := marketplace.OfferId{Collection: collection, TokenId: params.TokenId, Creator: creator}
	offer, err := im.offerRepo.FindOne(ctx, id)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	if !offer.Alive(now) {
		return domain.ErrOfferNotFoundOrExpired
	}

	// acceptance authority comes from the live asset state, not from
	// any listing record; an unlisted item's offer is acceptable too.
	if err := im.ownsAndApproved(ctx, collection, params.TokenId, seller, offer.Quantity); err != nil {
		return err
	}

	pricePerItem, err := parsePrice(offer.PricePerItem)
	if err != nil {
		return err
	}
	total := new(big.Int).Mul(pricePerItem, big.NewInt(offer.Quantity))

	if err := im.settle(ctx, offer.PayToken, creator, seller, total, collection, params.TokenId, offer.Quantity); err != nil {
		return err
	}

	if err := im.offerRepo.Remove(ctx, id); err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("offerRepo.Remove failed after settlement")
		return err
	}
	// the accepting seller's own listing is stale now that custody
	// changed hands; other sellers' listings are left alone.
	listingId := marketplace.ListingId{Collection: collection, TokenId: params.TokenId, Owner: seller}
	if err := im.listingRepo.Remove(ctx, listingId); err != nil && err != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"id":  listingId,
			"err": err,
		}).Error("listingRepo.Remove failed after settlement")
		return err
	}

	if err := im.events.OfferAccepted(ctx, &marketplace.OfferAcceptedEvent{
		Creator:      creator,
		Seller:       seller,
		Nft:          collection,
		TokenId:      params.TokenId,
		Quantity:     offer.Quantity,
		PayToken:     offer.PayToken,
		PricePerItem: offer.PricePerItem,
	}); err != nil {
		ctx.WithField("err", err).Warn("events.OfferAccepted failed")
	}
	return nil
}

// settle splits total into the platform fee and the seller proceeds and
// moves them together with asset custody as one atomic step. The
// settler validates every leg before applying any, so a failing leg
// leaves records and balances untouched.
func (im *impl) settle(ctx bCtx.Ctx, payToken, buyer, seller domain.Address, total *big.Int, collection domain.Address, tokenId domain.TokenId, quantity int64) error {
	feeAmount := new(big.Int).Div(new(big.Int).Mul(total, big.NewInt(im.fee.BasisPoints)), domain.Big10000)
	proceeds := new(big.Int).Sub(total, feeAmount)

	settlement := &ledger.Settlement{
		TokenLegs: []ledger.TokenLeg{
			{Token: payToken, From: buyer, To: im.fee.Recipient, Spender: im.operator, Amount: feeAmount},
			{Token: payToken, From: buyer, To: seller, Spender: im.operator, Amount: proceeds},
		},
		AssetLegs: []ledger.AssetLeg{
			{Collection: collection, TokenId: tokenId, From: seller, To: buyer, Operator: im.operator, Quantity: quantity},
		},
	}
	if err := im.settler.Settle(ctx, settlement); err != nil {
		ctx.WithFields(log.Fields{
			"payToken": payToken,
			"buyer":    buyer,
			"seller":   seller,
			"total":    total.String(),
			"err":      err,
		}).Warn("settlement rejected")
		return err
	}
	return nil
}

// refreshValuation re-derives the usd/native values of a stored display
// price so reads quote the current oracle level instead of the snapshot
// taken at write time. Best effort: on feed failure the stored values
// stand.
func (im *impl) refreshValuation(ctx bCtx.Ctx, payToken domain.Address, displayPrice string, priceInUsd, priceInNative *float64) {
	dp, err := decimal.NewFromString(displayPrice)
	if err != nil {
		return
	}
	usd, native, err := im.prices.GetPricesFromDisplayPrice(ctx, payToken, dp)
	if err != nil {
		ctx.WithFields(log.Fields{
			"payToken": payToken,
			"err":      err,
		}).Warn("prices.GetPricesFromDisplayPrice failed")
		return
	}
	*priceInUsd = usd
	*priceInNative = native
}

func (im *impl) GetListing(ctx bCtx.Ctx, id marketplace.ListingId) (*marketplace.Listing, error) {
	id.Collection = id.Collection.ToLower()
	id.Owner = id.Owner.ToLower()
	listing, err := im.listingRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	im.refreshValuation(ctx, listing.PayToken, listing.DisplayPrice, &listing.PriceInUsd, &listing.PriceInNative)
	return listing, nil
}

func (im *impl) GetListings(ctx bCtx.Ctx, opts ...marketplace.ListingFindAllOptionsFunc) ([]*marketplace.Listing, error) {
	listings, err := im.listingRepo.FindAll(ctx, opts...)
	if err != nil {
		return nil, err
	}
	for _, l := range listings {
		im.refreshValuation(ctx, l.PayToken, l.DisplayPrice, &l.PriceInUsd, &l.PriceInNative)
	}
	return listings, nil
}

func (im *impl) GetOffer(ctx bCtx.Ctx, id marketplace.OfferId) (*marketplace.Offer, error) {
	id.Collection = id.Collection.ToLower()
	id.Creator = id.Creator.ToLower()

	offer, err := im.offerRepo.FindOne(ctx, id)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	// cleared, expired and never-created offers all read back as the
	// zero record: empty payToken, zero deadline.
	if !offer.Alive(im.clock.Now()) {
		return &marketplace.Offer{
			Collection: id.Collection,
			TokenId:    id.TokenId,
			Creator:    id.Creator,
		}, nil
	}
	im.refreshValuation(ctx, offer.PayToken, offer.DisplayPrice, &offer.PriceInUsd, &offer.PriceInNative)
	return offer, nil
}

func (im *impl) GetOffers(ctx bCtx.Ctx, opts ...marketplace.OfferFindAllOptionsFunc) ([]*marketplace.Offer, error) {
	offers, err := im.offerRepo.FindAll(ctx, opts...)
	if err != nil {
		return nil, err
	}
	for _, o := range offers {
		im.refreshValuation(ctx, o.PayToken, o.DisplayPrice, &o.PriceInUsd, &o.PriceInNative)
	}
	return offers, nil
}

func (im *impl) GetFeeConfig(ctx bCtx.Ctx) marketplace.FeeConfig {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.fee
}

func (im *impl) UpdateFeeConfig(ctx bCtx.Ctx, fee marketplace.FeeConfig) error {
	if fee.BasisPoints < 0 || fee.BasisPoints > 10000 || fee.Recipient.IsEmpty() {
		return domain.ErrBadParamInput
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.fee = marketplace.FeeConfig{
		Recipient:   fee.Recipient.ToLower(),
		BasisPoints: fee.BasisPoints,
	}
	return nil
}

func parsePrice(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, domain.ErrInvalidNumberFormat
	}
	return n, nil
}
