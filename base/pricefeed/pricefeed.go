package pricefeed

import (
	"math/big"

	"github.com/shopspring/decimal"
	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
)

// PriceFormatter normalizes raw payment-token amounts into a display
// price and reference-currency values, so fee and minimum-price checks
// compare like against like regardless of the token used.
type PriceFormatter interface {
	GetPrices(ctx bCtx.Ctx, token domain.Address, value *big.Int) (decimal.Decimal, float64, float64, error)
	GetPricesFromDisplayPrice(ctx bCtx.Ctx, token domain.Address, displayPrice decimal.Decimal) (float64, float64, error)
}
