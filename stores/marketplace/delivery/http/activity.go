package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/delivery"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/marketplace"
	mMiddleware "github.com/mosaic-xyz/goapi/middleware"
)

type activityHandler struct {
	activities marketplace.ActivityRepo
}

func NewActivity(e *echo.Echo, activities marketplace.ActivityRepo) {
	h := &activityHandler{activities: activities}

	g := e.Group("/activities")
	g.GET("/account/:address", h.getByAccount, mMiddleware.IsValidAddress("address"))
	g.GET("/collection/:collection/token/:tokenId", h.getByToken)
}

func (h *activityHandler) getByAccount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	acts, err := h.activities.FindAllByAccount(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, acts)
}

func (h *activityHandler) getByToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	acts, err := h.activities.FindAllByToken(ctx, domain.Address(c.Param("collection")), domain.TokenId(c.Param("tokenId")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, acts)
}
