package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, query.ErrNotFound),
		errors.Is(err, domain.ErrNotListed),
		errors.Is(err, domain.ErrOfferNotFoundOrExpired),
		errors.Is(err, domain.ErrAuctionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyListed),
		errors.Is(err, domain.ErrOfferAlreadyExists),
		errors.Is(err, domain.ErrAuctionAlreadyStarted),
		errors.Is(err, domain.ErrAuctionAlreadyResulted),
		errors.Is(err, domain.ErrAuctionInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrNotOwningItem),
		errors.Is(err, domain.ErrNotApproved):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidExpiration),
		errors.Is(err, domain.ErrInvalidPaymentToken),
		errors.Is(err, domain.ErrNotBuyable),
		errors.Is(err, domain.ErrPriceMismatch),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrInsufficientAllowance),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidNumberFormat),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	}
	return 0
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		if s := statusOf(err); s != 0 {
			status = s
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
