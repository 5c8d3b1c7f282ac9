package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
	mDomain "github.com/mosaic-xyz/goapi/domain/mocks"
)

type payTokenSuite struct {
	suite.Suite

	repo *mDomain.PayTokenRepo
	im   domain.PayTokenRegistry
}

func TestPayTokenSuite(t *testing.T) {
	suite.Run(t, new(payTokenSuite))
}

func (s *payTokenSuite) SetupTest() {
	s.repo = &mDomain.PayTokenRepo{}
	s.im = New(s.repo)
}

func (s *payTokenSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func (s *payTokenSuite) TestIsEnabled() {
	ctx := bCtx.Background()
	wftm := domain.Address("0x00000000000000000000000000000000000000e0")
	unknown := domain.Address("0x00000000000000000000000000000000000000e1")
	disabled := domain.Address("0x00000000000000000000000000000000000000e2")

	s.repo.On("FindOne", mock.Anything, wftm).Return(&domain.PayToken{Address: wftm, Enabled: true}, nil)
	s.repo.On("FindOne", mock.Anything, unknown).Return(nil, nil)
	s.repo.On("FindOne", mock.Anything, disabled).Return(&domain.PayToken{Address: disabled}, nil)

	enabled, err := s.im.IsEnabled(ctx, wftm)
	s.NoError(err)
	s.True(enabled)

	enabled, err = s.im.IsEnabled(ctx, unknown)
	s.NoError(err)
	s.False(enabled)

	enabled, err = s.im.IsEnabled(ctx, disabled)
	s.NoError(err)
	s.False(enabled)
}

func (s *payTokenSuite) TestAddLowercasesAndEnables() {
	ctx := bCtx.Background()
	s.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(t *domain.PayToken) bool {
		return t.Address == domain.Address("0x00000000000000000000000000000000000000ab") && t.Enabled
	})).Return(nil)

	err := s.im.Add(ctx, &domain.PayToken{Address: "0x00000000000000000000000000000000000000AB", Symbol: "WFTM"})
	s.NoError(err)
}

func (s *payTokenSuite) TestDisableUnknownToken() {
	ctx := bCtx.Background()
	token := domain.Address("0x00000000000000000000000000000000000000e3")
	s.repo.On("FindOne", mock.Anything, token).Return(nil, nil)

	err := s.im.Disable(ctx, token)
	s.Equal(domain.ErrNotFound, err)
}
