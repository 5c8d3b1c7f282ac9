package ledger

import (
	"math/big"

	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
)

// TokenLedger exposes erc20-style balances with authorize-then-transfer
// semantics. The marketplace never takes custody; it spends a party's
// pre-granted allowance at settlement time.
type TokenLedger interface {
	BalanceOf(ctx.Ctx, domain.Address, domain.Address) (*big.Int, error)
	Allowance(ctx ctx.Ctx, token, owner, spender domain.Address) (*big.Int, error)
	Approve(ctx ctx.Ctx, token, owner, spender domain.Address, amount *big.Int) error
	Mint(ctx ctx.Ctx, token, to domain.Address, amount *big.Int) error
}

// AssetLedger exposes erc1155-style holdings and operator approvals.
type AssetLedger interface {
	HoldingOf(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId, owner domain.Address) (int64, error)
	IsApprovedForAll(ctx ctx.Ctx, collection, owner, operator domain.Address) (bool, error)
	SetApprovalForAll(ctx ctx.Ctx, collection, owner, operator domain.Address, approved bool) error
	MintAsset(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId, to domain.Address, quantity int64) error
}

// TokenLeg moves Amount of Token from From to To, spending From's
// allowance to Spender when Spender differs from From.
type TokenLeg struct {
	Token   domain.Address
	From    domain.Address
	To      domain.Address
	Spender domain.Address
	Amount  *big.Int
}

// AssetLeg moves Quantity units of (Collection, TokenId) custody from
// From to To on behalf of Operator.
type AssetLeg struct {
	Collection domain.Address
	TokenId    domain.TokenId
	From       domain.Address
	To         domain.Address
	Operator   domain.Address
	Quantity   int64
}

type Settlement struct {
	TokenLegs []TokenLeg
	AssetLegs []AssetLeg
}

// Settler applies a settlement atomically: every leg is validated
// against balances, allowances, holdings and approvals before anything
// moves, so a failing leg leaves no partial transfer behind.
type Settler interface {
	Settle(ctx.Ctx, *Settlement) error
}
