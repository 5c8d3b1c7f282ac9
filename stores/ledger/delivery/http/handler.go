package http

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/delivery"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/ledger"
	authMiddleware "github.com/mosaic-xyz/goapi/stores/auth/delivery/http/middleware"
)

type ledgerHandler struct {
	tokens ledger.TokenLedger
	assets ledger.AssetLedger
}

// New registers the ledger endpoints. Minting is an admin faucet for
// development and staging rigs; approvals are always granted by the
// authenticated caller over its own funds.
func New(e *echo.Echo, tokens ledger.TokenLedger, assets ledger.AssetLedger, am *authMiddleware.AuthMiddleware) {
	h := &ledgerHandler{tokens: tokens, assets: assets}

	g := e.Group("/ledger")

	g.GET("/balance", h.getBalance)
	g.GET("/allowance", h.getAllowance)
	g.GET("/holding", h.getHolding)
	g.POST("/mint", h.mint, am.Auth(), am.IsAdmin())
	g.POST("/mintAsset", h.mintAsset, am.Auth(), am.IsAdmin())
	g.POST("/approve", h.approve, am.Auth())
	g.POST("/approveAll", h.approveAll, am.Auth())
}

func parseAmount(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, domain.ErrInvalidNumberFormat
	}
	return n, nil
}

func (h *ledgerHandler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Token domain.Address `query:"token"`
		Owner domain.Address `query:"owner"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	b, err := h.tokens.BalanceOf(ctx, p.Token, p.Owner)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, b.String())
}

func (h *ledgerHandler) getAllowance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Token   domain.Address `query:"token"`
		Owner   domain.Address `query:"owner"`
		Spender domain.Address `query:"spender"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.tokens.Allowance(ctx, p.Token, p.Owner, p.Spender)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a.String())
}

func (h *ledgerHandler) getHolding(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Collection domain.Address `query:"collection"`
		TokenId    domain.TokenId `query:"tokenId"`
		Owner      domain.Address `query:"owner"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	holding, err := h.assets.HoldingOf(ctx, p.Collection, p.TokenId, p.Owner)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, holding)
}

func (h *ledgerHandler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Token  domain.Address `json:"token"`
		To     domain.Address `json:"to"`
		Amount string         `json:"amount"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := parseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.tokens.Mint(ctx, p.Token, p.To, amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *ledgerHandler) mintAsset(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Collection domain.Address `json:"collection"`
		TokenId    domain.TokenId `json:"tokenId"`
		To         domain.Address `json:"to"`
		Quantity   int64          `json:"quantity"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.assets.MintAsset(ctx, p.Collection, p.TokenId, p.To, p.Quantity); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *ledgerHandler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		Token   domain.Address `json:"token"`
		Spender domain.Address `json:"spender"`
		Amount  string         `json:"amount"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := parseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.tokens.Approve(ctx, p.Token, address, p.Spender, amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *ledgerHandler) approveAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		Collection domain.Address `json:"collection"`
		Operator   domain.Address `json:"operator"`
		Approved   bool           `json:"approved"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.assets.SetApprovalForAll(ctx, p.Collection, address, p.Operator, p.Approved); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
