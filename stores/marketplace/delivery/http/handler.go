package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/delivery"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/marketplace"
	mMiddleware "github.com/mosaic-xyz/goapi/middleware"
	authMiddleware "github.com/mosaic-xyz/goapi/stores/auth/delivery/http/middleware"
)

type marketplaceHandler struct {
	marketplace marketplace.UseCase
}

// New registers the trading endpoints. The caller's identity always
// comes from the access token, never from the payload, so a request can
// only list, buy, offer and cancel on its own behalf.
func New(e *echo.Echo, uc marketplace.UseCase, am *authMiddleware.AuthMiddleware) {
	h := &marketplaceHandler{marketplace: uc}

	g := e.Group("/marketplace")

	g.GET("/listings", h.getListings)
	g.GET("/collection/:collection/token/:tokenId/listing/:owner", h.getListing, mMiddleware.IsValidAddress("owner"))
	g.POST("/listing", h.createListing, am.Auth())
	g.PUT("/listing", h.updateListing, am.Auth())
	g.DELETE("/listing", h.cancelListing, am.Auth())
	g.POST("/buy", h.buy, am.Auth())

	g.GET("/offers", h.getOffers)
	g.GET("/collection/:collection/token/:tokenId/offer/:creator", h.getOffer, mMiddleware.IsValidAddress("creator"))
	g.POST("/offer", h.createOffer, am.Auth())
	g.DELETE("/offer", h.cancelOffer, am.Auth())
	g.POST("/offer/accept", h.acceptOffer, am.Auth())

	g.GET("/fee", h.getFeeConfig, mMiddleware.CacheHttp(time.Minute))
	g.PUT("/fee", h.updateFeeConfig, am.Auth(), am.IsAdmin())
}

func (h *marketplaceHandler) createListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		Collection   domain.Address `json:"collection"`
		TokenId      domain.TokenId `json:"tokenId"`
		Quantity     int64          `json:"quantity"`
		PayToken     domain.Address `json:"payToken"`
		PricePerItem string         `json:"pricePerItem"`
		StartingTime int64          `json:"startingTime"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	listing, err := h.marketplace.CreateListing(ctx, &marketplace.CreateListingParams{
		Collection:   p.Collection,
		TokenId:      p.TokenId,
		Owner:        address,
		Quantity:     p.Quantity,
		PayToken:     p.PayToken,
		PricePerItem: p.PricePerItem,
		StartingTime: time.Unix(p.StartingTime, 0),
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, listing)
}

func (h *marketplaceHandler) updateListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		Collection   domain.Address `json:"collection"`
		TokenId      domain.TokenId `json:"tokenId"`
		PayToken     domain.Address `json:"payToken"`
		PricePerItem string         `json:"pricePerItem"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	listing, err := h.marketplace.UpdateListing(ctx, &marketplace.UpdateListingParams{
		Collection:   p.Collection,
		TokenId:      p.TokenId,
		Owner:        address,
		PayToken:     p.PayToken,
		PricePerItem: p.PricePerItem,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listing)
}

func (h *marketplaceHandler) cancelListing(c echo.Context) error {
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

	if err := h.marketplace.CancelListing(ctx, marketplace.ListingId{
		Collection: p.Collection,
		TokenId:    p.TokenId,
		Owner:      address,
	}); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *marketplaceHandler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		Collection   domain.Address `json:"collection"`
		TokenId      domain.TokenId `json:"tokenId"`
		Seller       domain.Address `json:"seller"`
		PayToken     domain.Address `json:"payToken"`
		DesiredPrice string         `json:"desiredPrice"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.marketplace.Buy(ctx, &marketplace.BuyParams{
		Collection:   p.Collection,
		TokenId:      p.TokenId,
		Seller:       p.Seller,
		Buyer:        address,
		PayToken:     p.PayToken,
		DesiredPrice: p.DesiredPrice,
	}); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *marketplaceHandler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	listing, err := h.marketplace.GetListing(ctx, marketplace.ListingId{
		Collection: domain.Address(c.Param("collection")),
		TokenId:    domain.TokenId(c.Param("tokenId")),
		Owner:      domain.Address(c.Param("owner")),
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listing)
}

func (h *marketplaceHandler) getListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Collection *domain.Address `query:"collection"`
		TokenId    *domain.TokenId `query:"tokenId"`
		Owner      *domain.Address `query:"owner"`
		PayToken   *domain.Address `query:"payToken"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []marketplace.ListingFindAllOptionsFunc{}
	if p.Collection != nil {
		opts = append(opts, marketplace.ListingWithCollection(*p.Collection))
	}
	if p.TokenId != nil {
		opts = append(opts, marketplace.ListingWithTokenId(*p.TokenId))
	}
	if p.Owner != nil {
		opts = append(opts, marketplace.ListingWithOwner(*p.Owner))
	}
	if p.PayToken != nil {
		opts = append(opts, marketplace.ListingWithPayToken(*p.PayToken))
	}

	listings, err := h.marketplace.GetListings(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listings)
}

func (h *marketplaceHandler) createOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		Collection   domain.Address `json:"collection"`
		TokenId      domain.TokenId `json:"tokenId"`
		PayToken     domain.Address `json:"payToken"`
		Quantity     int64          `json:"quantity"`
		PricePerItem string         `json:"pricePerItem"`
		Deadline     int64          `json:"deadline"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	offer, err := h.marketplace.CreateOffer(ctx, &marketplace.CreateOfferParams{
		Collection:   p.Collection,
		TokenId:      p.TokenId,
		Creator:      address,
		PayToken:     p.PayToken,
		Quantity:     p.Quantity,
		PricePerItem: p.PricePerItem,
		Deadline:     time.Unix(p.Deadline, 0),
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, offer)
}

func (h *marketplaceHandler) cancelOffer(c echo.Context) error {
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

	if err := h.marketplace.CancelOffer(ctx, marketplace.OfferId{
		Collection: p.Collection,
		TokenId:    p.TokenId,
		Creator:    address,
	}); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *marketplaceHandler) acceptOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type params struct {
		Collection domain.Address `json:"collection"`
		TokenId    domain.TokenId `json:"tokenId"`
		Creator    domain.Address `json:"creator"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.marketplace.AcceptOffer(ctx, &marketplace.AcceptOfferParams{
		Collection: p.Collection,
		TokenId:    p.TokenId,
		Creator:    p.Creator,
		Seller:     address,
	}); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *marketplaceHandler) getOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	offer, err := h.marketplace.GetOffer(ctx, marketplace.OfferId{
		Collection: domain.Address(c.Param("collection")),
		TokenId:    domain.TokenId(c.Param("tokenId")),
		Creator:    domain.Address(c.Param("creator")),
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, offer)
}

func (h *marketplaceHandler) getOffers(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Collection *domain.Address `query:"collection"`
		TokenId    *domain.TokenId `query:"tokenId"`
		Creator    *domain.Address `query:"creator"`
		AliveOnly  bool            `query:"aliveOnly"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []marketplace.OfferFindAllOptionsFunc{}
	if p.Collection != nil {
		opts = append(opts, marketplace.OfferWithCollection(*p.Collection))
	}
	if p.TokenId != nil {
		opts = append(opts, marketplace.OfferWithTokenId(*p.TokenId))
	}
	if p.Creator != nil {
		opts = append(opts, marketplace.OfferWithCreator(*p.Creator))
	}
	if p.AliveOnly {
		opts = append(opts, marketplace.OfferAliveAt(time.Now()))
	}

	offers, err := h.marketplace.GetOffers(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, offers)
}

func (h *marketplaceHandler) getFeeConfig(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.marketplace.GetFeeConfig(ctx))
}

func (h *marketplaceHandler) updateFeeConfig(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &marketplace.FeeConfig{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.marketplace.UpdateFeeConfig(ctx, *p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
