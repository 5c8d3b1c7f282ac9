package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
	ErrUnauthorized   = errors.New("unauthorized")

	// marketplace state machine, wording follows the on-chain reference
	ErrInvalidExpiration      = errors.New("invalid expiration")
	ErrAuctionInProgress      = errors.New("cannot place an offer if auction is going on")
	ErrOfferAlreadyExists     = errors.New("offer already created")
	ErrOfferNotFoundOrExpired = errors.New("offer not exists or expired")
	ErrNotOwningItem          = errors.New("not owning item")
	ErrInvalidPaymentToken    = errors.New("invalid pay token")
	ErrNotListed              = errors.New("not listed item")
	ErrAlreadyListed          = errors.New("already listed")
	ErrPriceMismatch          = errors.New("invalid price")
	ErrNotBuyable             = errors.New("item not buyable")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrNotApproved            = errors.New("item not approved")

	// auction subsystem
	ErrAuctionAlreadyStarted  = errors.New("auction already started")
	ErrAuctionNotFound        = errors.New("no auction exists")
	ErrAuctionAlreadyResulted = errors.New("auction already resulted")

	// collaborators
	ErrServiceUnregistered   = errors.New("service not registered")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrNoPriceFeed           = errors.New("no price feed")
)
