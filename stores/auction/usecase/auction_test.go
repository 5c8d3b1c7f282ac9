package usecase

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/auction"
	aMocks "github.com/mosaic-xyz/goapi/domain/auction/mocks"
	dMocks "github.com/mosaic-xyz/goapi/domain/mocks"
	"github.com/mosaic-xyz/goapi/domain/registry"
	svcLedger "github.com/mosaic-xyz/goapi/service/ledger"
	svcRegistry "github.com/mosaic-xyz/goapi/service/registry"
)

const (
	collection = domain.Address("0x19snlp6imtrz7e9482cadb9lmxhpnmyzk7ev84je")
	wftm       = domain.Address("0x21be370d5312f44cb42ce377bc9b8a0cef1a4c83")
	owner      = domain.Address("0xaaa0b8c1e5b2481b06b8907582de0f21ca7e0975")
	stranger   = domain.Address("0xbbb82a26951e9ebca205b097a19d0d32e931b0ae")
	operator   = domain.Address("0x0f7031cd6dcb49eb2ef5e8b2b48928ea6a23ae18")

	tokenId = domain.TokenId("7")
)

type auctionTestSuite struct {
	suite.Suite

	im        auction.UseCase
	repo      *aMocks.Repo
	ledger    *svcLedger.Ledger
	payTokens *dMocks.PayTokenRegistry
	clock     *clock.Mock
	ctx       bCtx.Ctx
}

func TestAuctionSuite(t *testing.T) {
	suite.Run(t, new(auctionTestSuite))
}

func (s *auctionTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.repo = &aMocks.Repo{}
	s.ledger = svcLedger.New()
	s.payTokens = &dMocks.PayTokenRegistry{}
	s.clock = clock.NewMock()
	s.clock.Set(time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC))

	s.payTokens.On("IsEnabled", mock.Anything, wftm).Return(true, nil).Maybe()
	s.payTokens.On("IsEnabled", mock.Anything, mock.Anything).Return(false, nil).Maybe()

	reg := svcRegistry.New()
	s.Require().Nil(reg.Update(s.ctx, registry.RoleTokenRegistry, s.payTokens))

	s.im = New(&AuctionCfg{
		Repo:     s.repo,
		Registry: reg,
		Assets:   s.ledger,
		Clock:    s.clock,
		Operator: operator,
	})
}

func (s *auctionTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func (s *auctionTestSuite) giveAsset() {
	s.Nil(s.ledger.MintAsset(s.ctx, collection, tokenId, owner, 1))
	s.Nil(s.ledger.SetApprovalForAll(s.ctx, collection, owner, operator, true))
}

func (s *auctionTestSuite) params() *auction.CreateAuctionParams {
	return &auction.CreateAuctionParams{
		Collection:   collection,
		TokenId:      tokenId,
		Owner:        owner,
		PayToken:     wftm,
		ReservePrice: "100",
		StartTime:    s.clock.Now(),
		EndTime:      s.clock.Now().Add(time.Hour),
	}
}

func (s *auctionTestSuite) TestCreateAuction() {
	s.giveAsset()
	id := auction.AuctionId{Collection: collection, TokenId: tokenId}
	s.repo.On("FindOne", mock.Anything, id).Return(nil, domain.ErrNotFound).Once()
	s.repo.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()

	a, err := s.im.CreateAuction(s.ctx, s.params())
	s.Nil(err)
	s.Equal(owner, a.Owner)
	s.False(a.Resulted)
}

func (s *auctionTestSuite) TestCreateAuctionValidations() {
	p := s.params()
	p.EndTime = p.StartTime
	_, err := s.im.CreateAuction(s.ctx, p)
	s.Equal(domain.ErrBadParamInput, err)

	_, err = s.im.CreateAuction(s.ctx, s.params())
	s.Equal(domain.ErrNotOwningItem, err)

	s.giveAsset()
	p = s.params()
	p.PayToken = "0x0000000000000000000000000000000000000001"
	_, err = s.im.CreateAuction(s.ctx, p)
	s.Equal(domain.ErrInvalidPaymentToken, err)
}

func (s *auctionTestSuite) TestCreateAuctionAlreadyStarted() {
	s.giveAsset()
	id := auction.AuctionId{Collection: collection, TokenId: tokenId}
	s.repo.On("FindOne", mock.Anything, id).
		Return(&auction.Auction{Collection: collection, TokenId: tokenId, Owner: owner}, nil).Once()

	_, err := s.im.CreateAuction(s.ctx, s.params())
	s.Equal(domain.ErrAuctionAlreadyStarted, err)
}

func (s *auctionTestSuite) TestHasLiveAuction() {
	id := auction.AuctionId{Collection: collection, TokenId: tokenId}

	s.repo.On("FindOne", mock.Anything, id).Return(nil, domain.ErrNotFound).Once()
	live, err := s.im.HasLiveAuction(s.ctx, collection, tokenId)
	s.Nil(err)
	s.False(live)

	s.repo.On("FindOne", mock.Anything, id).
		Return(&auction.Auction{Collection: collection, TokenId: tokenId}, nil).Once()
	live, err = s.im.HasLiveAuction(s.ctx, collection, tokenId)
	s.Nil(err)
	s.True(live)

	s.repo.On("FindOne", mock.Anything, id).
		Return(&auction.Auction{Collection: collection, TokenId: tokenId, Resulted: true}, nil).Once()
	live, err = s.im.HasLiveAuction(s.ctx, collection, tokenId)
	s.Nil(err)
	s.False(live)
}

func (s *auctionTestSuite) TestResultAuction() {
	id := auction.AuctionId{Collection: collection, TokenId: tokenId}

	s.repo.On("FindOne", mock.Anything, id).Return(nil, domain.ErrNotFound).Once()
	s.Equal(domain.ErrAuctionNotFound, s.im.ResultAuction(s.ctx, id, owner))

	s.repo.On("FindOne", mock.Anything, id).
		Return(&auction.Auction{Collection: collection, TokenId: tokenId, Owner: owner}, nil).Once()
	s.Equal(domain.ErrUnauthorized, s.im.ResultAuction(s.ctx, id, stranger))

	s.repo.On("FindOne", mock.Anything, id).
		Return(&auction.Auction{Collection: collection, TokenId: tokenId, Owner: owner}, nil).Once()
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(a *auction.Auction) bool {
		return a.Resulted
	})).Return(nil).Once()
	s.Nil(s.im.ResultAuction(s.ctx, id, owner))

	s.repo.On("FindOne", mock.Anything, id).
		Return(&auction.Auction{Collection: collection, TokenId: tokenId, Owner: owner, Resulted: true}, nil).Once()
	s.Equal(domain.ErrAuctionAlreadyResulted, s.im.ResultAuction(s.ctx, id, owner))
}

func (s *auctionTestSuite) TestCancelAuction() {
	id := auction.AuctionId{Collection: collection, TokenId: tokenId}

	s.repo.On("FindOne", mock.Anything, id).
		Return(&auction.Auction{Collection: collection, TokenId: tokenId, Owner: owner}, nil).Once()
	s.repo.On("Remove", mock.Anything, id).Return(nil).Once()
	s.Nil(s.im.CancelAuction(s.ctx, id, owner))

	s.repo.On("FindOne", mock.Anything, id).
		Return(&auction.Auction{Collection: collection, TokenId: tokenId, Owner: owner, Resulted: true}, nil).Once()
	s.Equal(domain.ErrAuctionAlreadyResulted, s.im.CancelAuction(s.ctx, id, owner))
}
