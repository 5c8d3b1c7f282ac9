package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/delivery"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/auction"
	authMiddleware "github.com/mosaic-xyz/goapi/stores/auth/delivery/http/middleware"
)

type auctionHandler struct {
	auction auction.UseCase
}

func New(e *echo.Echo, uc auction.UseCase, am *authMiddleware.AuthMiddleware) {
	h := &auctionHandler{auction: uc}

	g := e.Group("/auction")

	g.GET("/collection/:collection/token/:tokenId", h.getAuction)
	g.POST("", h.createAuction, am.Auth())
	g.POST("/result", h.resultAuction, am.Auth())
	g.DELETE("", h.cancelAuction, am.Auth())
}

func (h *auctionHandler) createAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		Collection   domain.Address `json:"collection"`
		TokenId      domain.TokenId `json:"tokenId"`
		PayToken     domain.Address `json:"payToken"`
		ReservePrice string         `json:"reservePrice"`
		StartTime    int64          `json:"startTime"`
		EndTime      int64          `json:"endTime"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.auction.CreateAuction(ctx, &auction.CreateAuctionParams{
		Collection:   p.Collection,
		TokenId:      p.TokenId,
		Owner:        address,
		PayToken:     p.PayToken,
		ReservePrice: p.ReservePrice,
		StartTime:    time.Unix(p.StartTime, 0),
		EndTime:      time.Unix(p.EndTime, 0),
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, a)
}

func (h *auctionHandler) resultAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		Collection domain.Address `json:"collection"`
		TokenId    domain.TokenId `json:"tokenId"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auction.ResultAuction(ctx, auction.AuctionId{
		Collection: p.Collection,
		TokenId:    p.TokenId,
	}, address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *auctionHandler) cancelAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		Collection domain.Address `json:"collection"`
		TokenId    domain.TokenId `json:"tokenId"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auction.CancelAuction(ctx, auction.AuctionId{
		Collection: p.Collection,
		TokenId:    p.TokenId,
	}, address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *auctionHandler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	a, err := h.auction.GetAuction(ctx, auction.AuctionId{
		Collection: domain.Address(c.Param("collection")),
		TokenId:    domain.TokenId(c.Param("tokenId")),
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}
