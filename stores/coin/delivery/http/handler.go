package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/delivery"
	mMiddleware "github.com/mosaic-xyz/goapi/middleware"
	"github.com/mosaic-xyz/goapi/service/coingecko"
)

type handler struct {
	client coingecko.Client
}

func New(e *echo.Echo, coingeckoClient coingecko.Client) {
	h := &handler{
		client: coingeckoClient,
	}

	g := e.Group("/coin")
	g.GET("/:coinId", h.getCoin, mMiddleware.CacheHttp(time.Minute))
	g.GET("/:coinId/history/:date", h.getCoinAtDate, mMiddleware.CacheHttp(time.Hour))
}

func (h *handler) getCoin(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		CoinId string `param:"coinId" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	val, err := h.client.GetPrice(ctx, p.CoinId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, val)
}

func (h *handler) getCoinAtDate(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		CoinId string `param:"coinId" validate:"required"`
		// Date is in coingecko's dd-mm-yyyy form
		Date string `param:"date" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	val, err := h.client.GetPriceAtDate(ctx, p.CoinId, p.Date)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, val)
}
