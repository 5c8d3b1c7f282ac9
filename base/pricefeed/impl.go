package pricefeed

import (
	"math/big"

	"github.com/shopspring/decimal"
	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/log"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/service/coingecko"
)

type PriceFormatterCfg struct {
	Paytokens domain.PayTokenRegistry
	CoinGecko coingecko.Client
	// NativeCoinGeckoId prices the chain's native coin, used for the
	// priceInNative normalization.
	NativeCoinGeckoId string
}

type impl struct {
	paytokens         domain.PayTokenRegistry
	coinGecko         coingecko.Client
	nativeCoinGeckoId string
}

func NewPriceFormatter(cfg *PriceFormatterCfg) PriceFormatter {
	return &impl{
		paytokens:         cfg.Paytokens,
		coinGecko:         cfg.CoinGecko,
		nativeCoinGeckoId: cfg.NativeCoinGeckoId,
	}
}

func (f *impl) formatToken(ctx bCtx.Ctx, token domain.Address, value *big.Int) (decimal.Decimal, *domain.PayToken, error) {
	p, err := f.paytokens.Get(ctx, token)
	if err != nil {
		ctx.WithFields(log.Fields{
			"token": token,
			"err":   err,
		}).Error("paytokens.Get failed")
		return decimal.Zero, nil, err
	}
	if p == nil {
		return decimal.Zero, nil, domain.ErrNoPriceFeed
	}
	return decimal.NewFromBigInt(value, -p.TokenDecimals), p, nil
}

// GetPrices returns displayPrice, priceInUsd, priceInNative, error
func (f *impl) GetPrices(ctx bCtx.Ctx, token domain.Address, value *big.Int) (decimal.Decimal, float64, float64, error) {
	displayPrice, payToken, err := f.formatToken(ctx, token, value)
	if err != nil {
		ctx.WithField("err", err).Error("failed to parse price")
		return decimal.Zero, 0, 0, err
	}
	// a feed outage degrades the valuation to zero instead of failing
	// the state transition.
	priceInUsd, priceInNative, err := f.getPrices(ctx, payToken, displayPrice)
	if err != nil {
		ctx.WithFields(log.Fields{
			"token":        token,
			"displayPrice": displayPrice,
			"err":          err,
		}).Error("getPrices failed")
	}
	return displayPrice, priceInUsd, priceInNative, nil
}

func (f *impl) GetPricesFromDisplayPrice(ctx bCtx.Ctx, token domain.Address, displayPrice decimal.Decimal) (float64, float64, error) {
	p, err := f.paytokens.Get(ctx, token)
	if err != nil {
		return 0, 0, err
	}
	if p == nil {
		return 0, 0, domain.ErrNoPriceFeed
	}
	return f.getPrices(ctx, p, displayPrice)
}

func (f *impl) getPrices(ctx bCtx.Ctx, payToken *domain.PayToken, displayPrice decimal.Decimal) (float64, float64, error) {
	if len(payToken.CoinGeckoId) == 0 {
		return 0, 0, domain.ErrNoPriceFeed
	}
	payTokenPrice, err := f.coinGecko.GetPrice(ctx, payToken.CoinGeckoId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"coinGeckoId": payToken.CoinGeckoId,
			"err":         err,
		}).Error("coinGecko.GetPrice failed")
		return 0, 0, err
	}
	priceInUsd, _ := displayPrice.Mul(payTokenPrice).Float64()

	nativePrice, err := f.coinGecko.GetPrice(ctx, f.nativeCoinGeckoId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"coinGeckoId": f.nativeCoinGeckoId,
			"err":         err,
		}).Error("coinGecko.GetPrice failed")
		return 0, 0, err
	}
	priceInNative := 0.0
	if !nativePrice.IsZero() {
		priceInNative, _ = displayPrice.Mul(payTokenPrice).Div(nativePrice).Float64()
	}
	return priceInUsd, priceInNative, nil
}
