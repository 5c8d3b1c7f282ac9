package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	pMocks "github.com/mosaic-xyz/goapi/base/pricefeed/mocks"
	"github.com/mosaic-xyz/goapi/domain"
	aMocks "github.com/mosaic-xyz/goapi/domain/auction/mocks"
	"github.com/mosaic-xyz/goapi/domain/ledger"
	dMocks "github.com/mosaic-xyz/goapi/domain/mocks"
	"github.com/mosaic-xyz/goapi/domain/marketplace"
	mMocks "github.com/mosaic-xyz/goapi/domain/marketplace/mocks"
	"github.com/mosaic-xyz/goapi/domain/registry"
	svcLedger "github.com/mosaic-xyz/goapi/service/ledger"
	svcRegistry "github.com/mosaic-xyz/goapi/service/registry"
)

const (
	collection   = domain.Address("0x19snlp6imtrz7e9482cadb9lmxhpnmyzk7ev84je")
	wftm         = domain.Address("0x21be370d5312f44cb42ce377bc9b8a0cef1a4c83")
	usdc         = domain.Address("0x04068da6c83afcfa0e13ba15a6696662335d5b75")
	seller       = domain.Address("0xaaa0b8c1e5b2481b06b8907582de0f21ca7e0975")
	buyer        = domain.Address("0xbbb82a26951e9ebca205b097a19d0d32e931b0ae")
	creator      = domain.Address("0xccc9a743346e264786f6a94977d4f5e36926ed2a")
	operator     = domain.Address("0x0f7031cd6dcb49eb2ef5e8b2b48928ea6a23ae18")
	feeRecipient = domain.Address("0xfee455c23a4f9371d4b8a38b653cae4a5f2fea50")

	tokenId = domain.TokenId("7")
)

// memListingRepo and memOfferRepo are flat in-memory repositories; the
// engine tests drive multi-step sequences, which would be unreadable as
// call-by-call mock expectations.
type memListingRepo struct {
	items map[marketplace.ListingId]marketplace.Listing
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{items: map[marketplace.ListingId]marketplace.Listing{}}
}

func (r *memListingRepo) FindOne(c bCtx.Ctx, id marketplace.ListingId) (*marketplace.Listing, error) {
	if l, ok := r.items[id]; ok {
		return &l, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memListingRepo) FindAll(c bCtx.Ctx, optFns ...marketplace.ListingFindAllOptionsFunc) ([]*marketplace.Listing, error) {
	opts, err := marketplace.GetListingFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}
	res := []*marketplace.Listing{}
	for _, l := range r.items {
		l := l
		if opts.Collection != nil && !l.Collection.Equals(*opts.Collection) {
			continue
		}
		if opts.TokenId != nil && l.TokenId != *opts.TokenId {
			continue
		}
		if opts.Owner != nil && !l.Owner.Equals(*opts.Owner) {
			continue
		}
		if opts.PayToken != nil && !l.PayToken.Equals(*opts.PayToken) {
			continue
		}
		res = append(res, &l)
	}
	return res, nil
}

func (r *memListingRepo) Upsert(c bCtx.Ctx, listing *marketplace.Listing) error {
	r.items[*listing.ToId()] = *listing
	return nil
}

func (r *memListingRepo) Remove(c bCtx.Ctx, id marketplace.ListingId) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type memOfferRepo struct {
	items map[marketplace.OfferId]marketplace.Offer
}

func newMemOfferRepo() *memOfferRepo {
	return &memOfferRepo{items: map[marketplace.OfferId]marketplace.Offer{}}
}

func (r *memOfferRepo) FindOne(c bCtx.Ctx, id marketplace.OfferId) (*marketplace.Offer, error) {
	if o, ok := r.items[id]; ok {
		return &o, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memOfferRepo) FindAll(c bCtx.Ctx, optFns ...marketplace.OfferFindAllOptionsFunc) ([]*marketplace.Offer, error) {
	opts, err := marketplace.GetOfferFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}
	res := []*marketplace.Offer{}
	for _, o := range r.items {
		o := o
		if opts.Collection != nil && !o.Collection.Equals(*opts.Collection) {
			continue
		}
		if opts.TokenId != nil && o.TokenId != *opts.TokenId {
			continue
		}
		if opts.Creator != nil && !o.Creator.Equals(*opts.Creator) {
			continue
		}
		if opts.AliveAt != nil && !o.Deadline.After(*opts.AliveAt) {
			continue
		}
		res = append(res, &o)
	}
	return res, nil
}

func (r *memOfferRepo) Upsert(c bCtx.Ctx, offer *marketplace.Offer) error {
	r.items[*offer.ToId()] = *offer
	return nil
}

func (r *memOfferRepo) Remove(c bCtx.Ctx, id marketplace.OfferId) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type marketplaceTestSuite struct {
	suite.Suite

	im        marketplace.UseCase
	listings  *memListingRepo
	offers    *memOfferRepo
	ledger    *svcLedger.Ledger
	registry  registry.ServiceRegistry
	auctions  *aMocks.LiveChecker
	payTokens *dMocks.PayTokenRegistry
	prices    *pMocks.PriceFormatter
	sink      *mMocks.EventSink
	clock     *clock.Mock
	ctx       bCtx.Ctx
}

func TestMarketplaceSuite(t *testing.T) {
	suite.Run(t, new(marketplaceTestSuite))
}

func (s *marketplaceTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.listings = newMemListingRepo()
	s.offers = newMemOfferRepo()
	s.ledger = svcLedger.New()
	s.registry = svcRegistry.New()
	s.auctions = &aMocks.LiveChecker{}
	s.payTokens = &dMocks.PayTokenRegistry{}
	s.prices = &pMocks.PriceFormatter{}
	s.sink = &mMocks.EventSink{}
	s.clock = clock.NewMock()
	s.clock.Set(time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC))

	s.payTokens.On("IsEnabled", mock.Anything, wftm).Return(true, nil).Maybe()
	s.payTokens.On("IsEnabled", mock.Anything, mock.Anything).Return(false, nil).Maybe()
	s.auctions.On("HasLiveAuction", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Maybe()
	s.prices.On("GetPrices", mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, float64(0), float64(0), nil).Maybe()
	s.prices.On("GetPricesFromDisplayPrice", mock.Anything, mock.Anything, mock.Anything).Return(float64(0), float64(0), nil).Maybe()
	for _, method := range []string{
		"ListingCreated", "ListingUpdated", "ListingCanceled", "Sold",
		"OfferCreated", "OfferCanceled", "OfferAccepted",
	} {
		s.sink.On(method, mock.Anything, mock.Anything).Return(nil).Maybe()
	}

	s.Nil(s.registry.Update(s.ctx, registry.RoleAuction, s.auctions))
	s.Nil(s.registry.Update(s.ctx, registry.RoleTokenRegistry, s.payTokens))

	s.im = New(&MarketplaceCfg{
		ListingRepo: s.listings,
		OfferRepo:   s.offers,
		Registry:    s.registry,
		Assets:      s.ledger,
		Settler:     s.ledger,
		Events:      s.sink,
		Prices:      s.prices,
		Clock:       s.clock,
		Operator:    operator,
		Fee:         marketplace.FeeConfig{Recipient: feeRecipient, BasisPoints: 250},
	})
}

func (s *marketplaceTestSuite) fund(owner domain.Address, amount int64) {
	s.Nil(s.ledger.Mint(s.ctx, wftm, owner, big.NewInt(amount)))
	s.Nil(s.ledger.Approve(s.ctx, wftm, owner, operator, big.NewInt(amount)))
}

func (s *marketplaceTestSuite) giveAsset(owner domain.Address, quantity int64) {
	s.Nil(s.ledger.MintAsset(s.ctx, collection, tokenId, owner, quantity))
	s.Nil(s.ledger.SetApprovalForAll(s.ctx, collection, owner, operator, true))
}

func (s *marketplaceTestSuite) list(quantity int64, pricePerItem string) *marketplace.Listing {
	listing, err := s.im.CreateListing(s.ctx, &marketplace.CreateListingParams{
		Collection:   collection,
		TokenId:      tokenId,
		Owner:        seller,
		Quantity:     quantity,
		PayToken:     wftm,
		PricePerItem: pricePerItem,
	})
	s.Require().Nil(err)
	return listing
}

func (s *marketplaceTestSuite) offer(deadline time.Time) *marketplace.Offer {
	offer, err := s.im.CreateOffer(s.ctx, &marketplace.CreateOfferParams{
		Collection:   collection,
		TokenId:      tokenId,
		Creator:      creator,
		PayToken:     wftm,
		Quantity:     1,
		PricePerItem: "100",
		Deadline:     deadline,
	})
	s.Require().Nil(err)
	return offer
}

func (s *marketplaceTestSuite) balance(token, owner domain.Address) int64 {
	b, err := s.ledger.BalanceOf(s.ctx, token, owner)
	s.Require().Nil(err)
	return b.Int64()
}

func (s *marketplaceTestSuite) holding(owner domain.Address) int64 {
	h, err := s.ledger.HoldingOf(s.ctx, collection, tokenId, owner)
	s.Require().Nil(err)
	return h
}

func (s *marketplaceTestSuite) TestCreateListing() {
	s.giveAsset(seller, 2)

	listing := s.list(2, "100")
	s.Equal(seller, listing.Owner)
	s.Equal("100", listing.PricePerItem)

	got, err := s.im.GetListing(s.ctx, *listing.ToId())
	s.Nil(err)
	s.Equal(listing.Quantity, got.Quantity)

	_, err = s.im.CreateListing(s.ctx, &marketplace.CreateListingParams{
		Collection:   collection,
		TokenId:      tokenId,
		Owner:        seller,
		Quantity:     2,
		PayToken:     wftm,
		PricePerItem: "150",
	})
	s.Equal(domain.ErrAlreadyListed, err)
}

func (s *marketplaceTestSuite) TestCreateListingRequiresOwnershipAndApproval() {
	_, err := s.im.CreateListing(s.ctx, &marketplace.CreateListingParams{
		Collection:   collection,
		TokenId:      tokenId,
		Owner:        seller,
		Quantity:     1,
		PayToken:     wftm,
		PricePerItem: "100",
	})
	s.Equal(domain.ErrNotOwningItem, err)

	s.Nil(s.ledger.MintAsset(s.ctx, collection, tokenId, seller, 1))
	_, err = s.im.CreateListing(s.ctx, &marketplace.CreateListingParams{
		Collection:   collection,
		TokenId:      tokenId,
		Owner:        seller,
		Quantity:     1,
		PayToken:     wftm,
		PricePerItem: "100",
	})
	s.Equal(domain.ErrNotApproved, err)
}

func (s *marketplaceTestSuite) TestCreateListingRejectsDisabledPayToken() {
	s.giveAsset(seller, 1)
	_, err := s.im.CreateListing(s.ctx, &marketplace.CreateListingParams{
		Collection:   collection,
		TokenId:      tokenId,
		Owner:        seller,
		Quantity:     1,
		PayToken:     usdc,
		PricePerItem: "100",
	})
	s.Equal(domain.ErrInvalidPaymentToken, err)
}

func (s *marketplaceTestSuite) TestUpdateAndCancelListing() {
	s.giveAsset(seller, 1)
	listing := s.list(1, "100")

	updated, err := s.im.UpdateListing(s.ctx, &marketplace.UpdateListingParams{
		Collection:   collection,
		TokenId:      tokenId,
		Owner:        seller,
		PayToken:     wftm,
		PricePerItem: "250",
	})
	s.Nil(err)
	s.Equal("250", updated.PricePerItem)

	s.Nil(s.im.CancelListing(s.ctx, *listing.ToId()))
	s.Equal(domain.ErrNotListed, s.im.CancelListing(s.ctx, *listing.ToId()))

	_, err = s.im.UpdateListing(s.ctx, &marketplace.UpdateListingParams{
		Collection:   collection,
		TokenId:      tokenId,
		Owner:        seller,
		PayToken:     wftm,
		PricePerItem: "300",
	})
	s.Equal(domain.ErrNotListed, err)
}

func (s *marketplaceTestSuite) TestBuySettlesAtomically() {
	s.giveAsset(seller, 2)
	s.fund(buyer, 1000)
	s.list(2, "100")

	err := s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection:   collection,
		TokenId:      tokenId,
		Seller:       seller,
		Buyer:        buyer,
		PayToken:     wftm,
		DesiredPrice: "200",
	})
	s.Nil(err)

	// 250 bps of 200 is 5
	s.EqualValues(5, s.balance(wftm, feeRecipient))
	s.EqualValues(195, s.balance(wftm, seller))
	s.EqualValues(800, s.balance(wftm, buyer))
	s.EqualValues(2, s.holding(buyer))
	s.EqualValues(0, s.holding(seller))

	_, err = s.im.GetListing(s.ctx, marketplace.ListingId{Collection: collection, TokenId: tokenId, Owner: seller})
	s.Equal(domain.ErrNotFound, err)
	s.sink.AssertCalled(s.T(), "Sold", mock.Anything, mock.Anything)
}

func (s *marketplaceTestSuite) TestBuyValidations() {
	s.giveAsset(seller, 1)
	s.fund(buyer, 1000)

	err := s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection: collection, TokenId: tokenId, Seller: seller, Buyer: buyer,
		PayToken: wftm, DesiredPrice: "100",
	})
	s.Equal(domain.ErrNotListed, err)

	s.list(1, "100")

	err = s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection: collection, TokenId: tokenId, Seller: seller, Buyer: buyer,
		PayToken: usdc, DesiredPrice: "100",
	})
	s.Equal(domain.ErrInvalidPaymentToken, err)

	err = s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection: collection, TokenId: tokenId, Seller: seller, Buyer: buyer,
		PayToken: wftm, DesiredPrice: "99",
	})
	s.Equal(domain.ErrPriceMismatch, err)
}

func (s *marketplaceTestSuite) TestBuyNotStartedYet() {
	s.giveAsset(seller, 1)
	s.fund(buyer, 1000)

	_, err := s.im.CreateListing(s.ctx, &marketplace.CreateListingParams{
		Collection:   collection,
		TokenId:      tokenId,
		Owner:        seller,
		Quantity:     1,
		PayToken:     wftm,
		PricePerItem: "100",
		StartingTime: s.clock.Now().Add(time.Hour),
	})
	s.Require().Nil(err)

	err = s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection: collection, TokenId: tokenId, Seller: seller, Buyer: buyer,
		PayToken: wftm, DesiredPrice: "100",
	})
	s.Equal(domain.ErrNotBuyable, err)

	s.clock.Add(2 * time.Hour)
	err = s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection: collection, TokenId: tokenId, Seller: seller, Buyer: buyer,
		PayToken: wftm, DesiredPrice: "100",
	})
	s.Nil(err)
}

func (s *marketplaceTestSuite) TestBuyBlockedByLiveAuction() {
	s.giveAsset(seller, 1)
	s.fund(buyer, 1000)
	s.list(1, "100")

	live := &aMocks.LiveChecker{}
	live.On("HasLiveAuction", mock.Anything, collection, tokenId).Return(true, nil)
	s.Nil(s.registry.Update(s.ctx, registry.RoleAuction, live))

	err := s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection: collection, TokenId: tokenId, Seller: seller, Buyer: buyer,
		PayToken: wftm, DesiredPrice: "100",
	})
	s.Equal(domain.ErrAuctionInProgress, err)
}

func (s *marketplaceTestSuite) TestBuyRevalidatesSellerLazily() {
	s.giveAsset(seller, 1)
	s.fund(buyer, 1000)
	s.list(1, "100")

	// the seller walks its approval back after listing; the stale
	// listing must not settle.
	s.Nil(s.ledger.SetApprovalForAll(s.ctx, collection, seller, operator, false))
	err := s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection: collection, TokenId: tokenId, Seller: seller, Buyer: buyer,
		PayToken: wftm, DesiredPrice: "100",
	})
	s.Equal(domain.ErrNotApproved, err)

	// and after the asset leaves the seller entirely
	s.Nil(s.ledger.SetApprovalForAll(s.ctx, collection, seller, operator, true))
	s.Nil(s.ledger.Settle(s.ctx, &ledger.Settlement{
		AssetLegs: []ledger.AssetLeg{
			{Collection: collection, TokenId: tokenId, From: seller, To: creator, Operator: seller, Quantity: 1},
		},
	}))
	err = s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection: collection, TokenId: tokenId, Seller: seller, Buyer: buyer,
		PayToken: wftm, DesiredPrice: "100",
	})
	s.Equal(domain.ErrNotOwningItem, err)
}

func (s *marketplaceTestSuite) TestBuyFailureLeavesNoTrace() {
	s.giveAsset(seller, 1)
	// funded below the asking price
	s.fund(buyer, 50)
	s.list(1, "100")

	err := s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection: collection, TokenId: tokenId, Seller: seller, Buyer: buyer,
		PayToken: wftm, DesiredPrice: "100",
	})
	s.Equal(domain.ErrInsufficientBalance, err)

	// no partial effect: listing intact, custody and funds untouched
	_, err = s.im.GetListing(s.ctx, marketplace.ListingId{Collection: collection, TokenId: tokenId, Owner: seller})
	s.Nil(err)
	s.EqualValues(50, s.balance(wftm, buyer))
	s.EqualValues(0, s.balance(wftm, seller))
	s.EqualValues(1, s.holding(seller))
	s.sink.AssertNotCalled(s.T(), "Sold", mock.Anything, mock.Anything)
}

func (s *marketplaceTestSuite) TestCreateOffer() {
	deadline := s.clock.Now().Add(time.Hour)
	offer := s.offer(deadline)
	s.Equal(wftm, offer.PayToken)

	_, err := s.im.CreateOffer(s.ctx, &marketplace.CreateOfferParams{
		Collection: collection, TokenId: tokenId, Creator: creator,
		PayToken: wftm, Quantity: 1, PricePerItem: "120",
		Deadline: deadline,
	})
	s.Equal(domain.ErrOfferAlreadyExists, err)
}

func (s *marketplaceTestSuite) TestCreateOfferRejectsPastDeadline() {
	_, err := s.im.CreateOffer(s.ctx, &marketplace.CreateOfferParams{
		Collection: collection, TokenId: tokenId, Creator: creator,
		PayToken: wftm, Quantity: 1, PricePerItem: "100",
		Deadline: s.clock.Now(),
	})
	s.Equal(domain.ErrInvalidExpiration, err)

	_, err = s.im.CreateOffer(s.ctx, &marketplace.CreateOfferParams{
		Collection: collection, TokenId: tokenId, Creator: creator,
		PayToken: wftm, Quantity: 1, PricePerItem: "100",
		Deadline: s.clock.Now().Add(-time.Hour),
	})
	s.Equal(domain.ErrInvalidExpiration, err)
}

func (s *marketplaceTestSuite) TestCreateOfferBlockedByLiveAuction() {
	live := &aMocks.LiveChecker{}
	live.On("HasLiveAuction", mock.Anything, collection, tokenId).Return(true, nil)
	s.Nil(s.registry.Update(s.ctx, registry.RoleAuction, live))

	_, err := s.im.CreateOffer(s.ctx, &marketplace.CreateOfferParams{
		Collection: collection, TokenId: tokenId, Creator: creator,
		PayToken: wftm, Quantity: 1, PricePerItem: "100",
		Deadline: s.clock.Now().Add(time.Hour),
	})
	s.Equal(domain.ErrAuctionInProgress, err)
}

func (s *marketplaceTestSuite) TestCreateOfferWithoutAuctionSubsystem() {
	// a deployment with no auction subsystem registered simply has no
	// live auctions
	s.Nil(s.registry.Update(s.ctx, registry.RoleAuction, nil))
	s.offer(s.clock.Now().Add(time.Hour))
}

func (s *marketplaceTestSuite) TestCancelOffer() {
	offer := s.offer(s.clock.Now().Add(time.Hour))

	s.Nil(s.im.CancelOffer(s.ctx, *offer.ToId()))
	s.Equal(domain.ErrOfferNotFoundOrExpired, s.im.CancelOffer(s.ctx, *offer.ToId()))

	got, err := s.im.GetOffer(s.ctx, *offer.ToId())
	s.Nil(err)
	s.True(got.PayToken.IsEmpty())
	s.True(got.Deadline.IsZero())
}

func (s *marketplaceTestSuite) TestOfferExpiresLazily() {
	offer := s.offer(s.clock.Now().Add(time.Hour))
	id := *offer.ToId()

	s.clock.Add(2 * time.Hour)

	// the document is still stored but the offer no longer exists
	s.Len(s.offers.items, 1)
	s.Equal(domain.ErrOfferNotFoundOrExpired, s.im.CancelOffer(s.ctx, id))

	got, err := s.im.GetOffer(s.ctx, id)
	s.Nil(err)
	s.True(got.PayToken.IsEmpty())
	s.True(got.Deadline.IsZero())

	// an expired record does not block a fresh offer
	fresh := s.offer(s.clock.Now().Add(time.Hour))
	s.Len(s.offers.items, 1)
	got, err = s.im.GetOffer(s.ctx, id)
	s.Nil(err)
	s.Equal(fresh.Deadline, got.Deadline)
}

func (s *marketplaceTestSuite) TestGetOffersFiltersExpired() {
	s.offer(s.clock.Now().Add(time.Hour))
	s.clock.Add(2 * time.Hour)

	alive, err := s.im.GetOffers(s.ctx,
		marketplace.OfferWithCollection(collection),
		marketplace.OfferAliveAt(s.clock.Now()),
	)
	s.Nil(err)
	s.Len(alive, 0)
}

func (s *marketplaceTestSuite) TestAcceptOffer() {
	s.giveAsset(seller, 1)
	s.fund(creator, 1000)
	s.list(1, "500")
	offer := s.offer(s.clock.Now().Add(time.Hour))

	err := s.im.AcceptOffer(s.ctx, &marketplace.AcceptOfferParams{
		Collection: collection, TokenId: tokenId, Creator: creator, Seller: seller,
	})
	s.Nil(err)

	// 250 bps of 100 is 2
	s.EqualValues(2, s.balance(wftm, feeRecipient))
	s.EqualValues(98, s.balance(wftm, seller))
	s.EqualValues(900, s.balance(wftm, creator))
	s.EqualValues(1, s.holding(creator))

	// offer cleared, and the seller's stale listing went with it
	got, err := s.im.GetOffer(s.ctx, *offer.ToId())
	s.Nil(err)
	s.True(got.Deadline.IsZero())
	_, err = s.im.GetListing(s.ctx, marketplace.ListingId{Collection: collection, TokenId: tokenId, Owner: seller})
	s.Equal(domain.ErrNotFound, err)
	s.sink.AssertCalled(s.T(), "OfferAccepted", mock.Anything, mock.Anything)
}

func (s *marketplaceTestSuite) TestAcceptOfferRequiresOwnership() {
	s.fund(creator, 1000)
	s.offer(s.clock.Now().Add(time.Hour))

	err := s.im.AcceptOffer(s.ctx, &marketplace.AcceptOfferParams{
		Collection: collection, TokenId: tokenId, Creator: creator, Seller: seller,
	})
	s.Equal(domain.ErrNotOwningItem, err)
}

func (s *marketplaceTestSuite) TestAcceptExpiredOffer() {
	s.giveAsset(seller, 1)
	s.fund(creator, 1000)
	s.offer(s.clock.Now().Add(time.Hour))

	s.clock.Add(2 * time.Hour)
	err := s.im.AcceptOffer(s.ctx, &marketplace.AcceptOfferParams{
		Collection: collection, TokenId: tokenId, Creator: creator, Seller: seller,
	})
	s.Equal(domain.ErrOfferNotFoundOrExpired, err)
}

func (s *marketplaceTestSuite) TestAcceptOfferFailureKeepsOfferAlive() {
	s.giveAsset(seller, 1)
	// creator minted funds but never granted the allowance
	s.Nil(s.ledger.Mint(s.ctx, wftm, creator, big.NewInt(1000)))
	offer := s.offer(s.clock.Now().Add(time.Hour))

	err := s.im.AcceptOffer(s.ctx, &marketplace.AcceptOfferParams{
		Collection: collection, TokenId: tokenId, Creator: creator, Seller: seller,
	})
	s.Equal(domain.ErrInsufficientAllowance, err)

	got, err := s.im.GetOffer(s.ctx, *offer.ToId())
	s.Nil(err)
	s.Equal(offer.Deadline, got.Deadline)
	s.EqualValues(1, s.holding(seller))
}

func (s *marketplaceTestSuite) TestReadsRefreshValuations() {
	s.giveAsset(seller, 1)
	listing := s.list(1, "100")
	offer := s.offer(s.clock.Now().Add(time.Hour))

	// the oracle moved since the records were written
	prices := &pMocks.PriceFormatter{}
	prices.On("GetPricesFromDisplayPrice", mock.Anything, wftm, mock.Anything).Return(42.5, 7.25, nil)
	im := New(&MarketplaceCfg{
		ListingRepo: s.listings,
		OfferRepo:   s.offers,
		Registry:    s.registry,
		Assets:      s.ledger,
		Settler:     s.ledger,
		Events:      s.sink,
		Prices:      prices,
		Clock:       s.clock,
		Operator:    operator,
		Fee:         marketplace.FeeConfig{Recipient: feeRecipient, BasisPoints: 250},
	})

	got, err := im.GetListing(s.ctx, *listing.ToId())
	s.Nil(err)
	s.Equal(42.5, got.PriceInUsd)
	s.Equal(7.25, got.PriceInNative)

	listings, err := im.GetListings(s.ctx, marketplace.ListingWithCollection(collection))
	s.Nil(err)
	s.Require().Len(listings, 1)
	s.Equal(42.5, listings[0].PriceInUsd)

	o, err := im.GetOffer(s.ctx, *offer.ToId())
	s.Nil(err)
	s.Equal(42.5, o.PriceInUsd)
	s.Equal(7.25, o.PriceInNative)
}

func (s *marketplaceTestSuite) TestOfferEventPayloads() {
	deadline := s.clock.Now().Add(time.Hour)
	s.offer(deadline)

	created := &marketplace.OfferCreatedEvent{
		Creator:      creator,
		Nft:          collection,
		TokenId:      tokenId,
		Quantity:     1,
		PayToken:     wftm,
		PricePerItem: "100",
		Deadline:     deadline,
	}
	s.sink.AssertCalled(s.T(), "OfferCreated", mock.Anything, created)

	s.Nil(s.im.CancelOffer(s.ctx, marketplace.OfferId{Collection: collection, TokenId: tokenId, Creator: creator}))
	s.sink.AssertCalled(s.T(), "OfferCanceled", mock.Anything, &marketplace.OfferCanceledEvent{
		Creator: creator,
		Nft:     collection,
		TokenId: tokenId,
	})

	// re-creating after cancel announces the identical full payload
	s.offer(deadline)
	announced := 0
	for _, call := range s.sink.Calls {
		if call.Method != "OfferCreated" {
			continue
		}
		s.Equal(created, call.Arguments.Get(1))
		announced++
	}
	s.Equal(2, announced)
}

func (s *marketplaceTestSuite) TestSoldEventPayload() {
	s.giveAsset(seller, 2)
	s.fund(buyer, 1000)
	s.list(2, "100")

	s.sink.AssertCalled(s.T(), "ListingCreated", mock.Anything, &marketplace.ListingCreatedEvent{
		Owner:        seller,
		Nft:          collection,
		TokenId:      tokenId,
		Quantity:     2,
		PayToken:     wftm,
		PricePerItem: "100",
	})

	s.Nil(s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection: collection, TokenId: tokenId, Seller: seller, Buyer: buyer,
		PayToken: wftm, DesiredPrice: "200",
	}))
	s.sink.AssertCalled(s.T(), "Sold", mock.Anything, &marketplace.SoldEvent{
		Seller:       seller,
		Buyer:        buyer,
		Nft:          collection,
		TokenId:      tokenId,
		Quantity:     2,
		PayToken:     wftm,
		PricePerItem: "100",
	})
}

func (s *marketplaceTestSuite) TestOfferAcceptedEventPayload() {
	s.giveAsset(seller, 1)
	s.fund(creator, 1000)
	s.offer(s.clock.Now().Add(time.Hour))

	s.Nil(s.im.AcceptOffer(s.ctx, &marketplace.AcceptOfferParams{
		Collection: collection, TokenId: tokenId, Creator: creator, Seller: seller,
	}))
	s.sink.AssertCalled(s.T(), "OfferAccepted", mock.Anything, &marketplace.OfferAcceptedEvent{
		Creator:      creator,
		Seller:       seller,
		Nft:          collection,
		TokenId:      tokenId,
		Quantity:     1,
		PayToken:     wftm,
		PricePerItem: "100",
	})
}

func (s *marketplaceTestSuite) TestFeeConfig() {
	s.Equal(domain.ErrBadParamInput, s.im.UpdateFeeConfig(s.ctx, marketplace.FeeConfig{
		Recipient: feeRecipient, BasisPoints: 10001,
	}))
	s.Equal(domain.ErrBadParamInput, s.im.UpdateFeeConfig(s.ctx, marketplace.FeeConfig{
		BasisPoints: 100,
	}))

	s.Nil(s.im.UpdateFeeConfig(s.ctx, marketplace.FeeConfig{
		Recipient: feeRecipient, BasisPoints: 1000,
	}))
	s.EqualValues(1000, s.im.GetFeeConfig(s.ctx).BasisPoints)

	s.giveAsset(seller, 1)
	s.fund(buyer, 1000)
	s.list(1, "100")
	s.Nil(s.im.Buy(s.ctx, &marketplace.BuyParams{
		Collection: collection, TokenId: tokenId, Seller: seller, Buyer: buyer,
		PayToken: wftm, DesiredPrice: "100",
	}))
	s.EqualValues(10, s.balance(wftm, feeRecipient))
	s.EqualValues(90, s.balance(wftm, seller))
}
