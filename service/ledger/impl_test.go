package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"
	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/ledger"
)

var (
	token      = domain.Address("0x00000000000000000000000000000000000000e0")
	collection = domain.Address("0x00000000000000000000000000000000000000c0")
	alice      = domain.Address("0x00000000000000000000000000000000000000a1")
	bob        = domain.Address("0x00000000000000000000000000000000000000b1")
	feeWallet  = domain.Address("0x00000000000000000000000000000000000000f1")
	operator   = domain.Address("0x000000000000000000000000000000000000000e")
)

type ledgerSuite struct {
	suite.Suite

	ctx bCtx.Ctx
	l   *Ledger
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(ledgerSuite))
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.l = New()
}

func (s *ledgerSuite) TestMintAndBalance() {
	s.NoError(s.l.Mint(s.ctx, token, alice, big.NewInt(100)))
	b, err := s.l.BalanceOf(s.ctx, token, alice)
	s.NoError(err)
	s.Equal(int64(100), b.Int64())
}

func (s *ledgerSuite) TestSettleSpendsAllowance() {
	s.NoError(s.l.Mint(s.ctx, token, alice, big.NewInt(100)))
	s.NoError(s.l.MintAsset(s.ctx, collection, "1", bob, 1))
	s.NoError(s.l.Approve(s.ctx, token, alice, operator, big.NewInt(100)))
	s.NoError(s.l.SetApprovalForAll(s.ctx, collection, bob, operator, true))

	err := s.l.Settle(s.ctx, &ledger.Settlement{
		TokenLegs: []ledger.TokenLeg{
			{Token: token, From: alice, To: feeWallet, Spender: operator, Amount: big.NewInt(5)},
			{Token: token, From: alice, To: bob, Spender: operator, Amount: big.NewInt(95)},
		},
		AssetLegs: []ledger.AssetLeg{
			{Collection: collection, TokenId: "1", From: bob, To: alice, Operator: operator, Quantity: 1},
		},
	})
	s.NoError(err)

	b, _ := s.l.BalanceOf(s.ctx, token, bob)
	s.Equal(int64(95), b.Int64())
	b, _ = s.l.BalanceOf(s.ctx, token, feeWallet)
	s.Equal(int64(5), b.Int64())
	b, _ = s.l.BalanceOf(s.ctx, token, alice)
	s.Equal(int64(0), b.Int64())
	a, _ := s.l.Allowance(s.ctx, token, alice, operator)
	s.Equal(int64(0), a.Int64())
	h, _ := s.l.HoldingOf(s.ctx, collection, "1", alice)
	s.Equal(int64(1), h)
	h, _ = s.l.HoldingOf(s.ctx, collection, "1", bob)
	s.Equal(int64(0), h)
}

func (s *ledgerSuite) TestSettleAllOrNothing() {
	s.NoError(s.l.Mint(s.ctx, token, alice, big.NewInt(100)))
	s.NoError(s.l.MintAsset(s.ctx, collection, "1", bob, 1))
	// allowance covers the seller leg but not the fee leg on top
	s.NoError(s.l.Approve(s.ctx, token, alice, operator, big.NewInt(95)))
	s.NoError(s.l.SetApprovalForAll(s.ctx, collection, bob, operator, true))

	err := s.l.Settle(s.ctx, &ledger.Settlement{
		TokenLegs: []ledger.TokenLeg{
			{Token: token, From: alice, To: bob, Spender: operator, Amount: big.NewInt(95)},
			{Token: token, From: alice, To: feeWallet, Spender: operator, Amount: big.NewInt(5)},
		},
		AssetLegs: []ledger.AssetLeg{
			{Collection: collection, TokenId: "1", From: bob, To: alice, Operator: operator, Quantity: 1},
		},
	})
	s.Equal(domain.ErrInsufficientAllowance, err)

	// no partial effect
	b, _ := s.l.BalanceOf(s.ctx, token, alice)
	s.Equal(int64(100), b.Int64())
	b, _ = s.l.BalanceOf(s.ctx, token, bob)
	s.Equal(int64(0), b.Int64())
	h, _ := s.l.HoldingOf(s.ctx, collection, "1", bob)
	s.Equal(int64(1), h)
}

func (s *ledgerSuite) TestSettleRequiresOperatorApproval() {
	s.NoError(s.l.Mint(s.ctx, token, alice, big.NewInt(10)))
	s.NoError(s.l.MintAsset(s.ctx, collection, "2", bob, 1))
	s.NoError(s.l.Approve(s.ctx, token, alice, operator, big.NewInt(10)))

	err := s.l.Settle(s.ctx, &ledger.Settlement{
		TokenLegs: []ledger.TokenLeg{
			{Token: token, From: alice, To: bob, Spender: operator, Amount: big.NewInt(10)},
		},
		AssetLegs: []ledger.AssetLeg{
			{Collection: collection, TokenId: "2", From: bob, To: alice, Operator: operator, Quantity: 1},
		},
	})
	s.Equal(domain.ErrNotApproved, err)

	b, _ := s.l.BalanceOf(s.ctx, token, alice)
	s.Equal(int64(10), b.Int64())
}

func (s *ledgerSuite) TestSettleRejectsOverdraw() {
	s.NoError(s.l.Mint(s.ctx, token, alice, big.NewInt(10)))
	err := s.l.Settle(s.ctx, &ledger.Settlement{
		TokenLegs: []ledger.TokenLeg{
			{Token: token, From: alice, To: bob, Spender: alice, Amount: big.NewInt(11)},
		},
	})
	s.Equal(domain.ErrInsufficientBalance, err)
}

func (s *ledgerSuite) TestSettleAggregatesLegsPerAccount() {
	s.NoError(s.l.Mint(s.ctx, token, alice, big.NewInt(10)))
	// each leg alone fits the balance, together they overdraw
	err := s.l.Settle(s.ctx, &ledger.Settlement{
		TokenLegs: []ledger.TokenLeg{
			{Token: token, From: alice, To: bob, Spender: alice, Amount: big.NewInt(6)},
			{Token: token, From: alice, To: feeWallet, Spender: alice, Amount: big.NewInt(6)},
		},
	})
	s.Equal(domain.ErrInsufficientBalance, err)
}
