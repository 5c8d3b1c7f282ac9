package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/delivery"
	"github.com/mosaic-xyz/goapi/domain"
	mMiddleware "github.com/mosaic-xyz/goapi/middleware"
	authMiddleware "github.com/mosaic-xyz/goapi/stores/auth/delivery/http/middleware"
)

type payTokenHandler struct {
	paytokens domain.PayTokenRegistry
}

func New(e *echo.Echo, paytokens domain.PayTokenRegistry, am *authMiddleware.AuthMiddleware) {
	h := &payTokenHandler{paytokens: paytokens}

	g := e.Group("/paytoken")

	g.GET("/:address", h.getPayToken, mMiddleware.IsValidAddress("address"))
	g.POST("", h.addPayToken, am.Auth(), am.IsAdmin())
	g.DELETE("/:address", h.disablePayToken, am.Auth(), am.IsAdmin())
}

func (h *payTokenHandler) getPayToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	token, err := h.paytokens.Get(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	if token == nil {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.ErrNotFound)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, token)
}

func (h *payTokenHandler) addPayToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &domain.PayToken{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.paytokens.Add(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, p)
}

func (h *payTokenHandler) disablePayToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.paytokens.Disable(ctx, domain.Address(c.Param("address"))); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
