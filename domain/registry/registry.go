package registry

import (
	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/auction"
)

// Role names a logical subsystem slot. The admin may repoint a role at
// a new component at runtime; consumers therefore resolve by role on
// every call instead of caching the handle.
type Role string

const (
	RoleMarketplace       Role = "marketplace"
	RoleAuction           Role = "auction"
	RoleBundleMarketplace Role = "bundle_marketplace"
	RoleTokenRegistry     Role = "token_registry"
	RolePriceFeed         Role = "price_feed"
)

// ServiceRegistry is the single source of truth for cross-component
// discovery. Resolve errors with domain.ErrServiceUnregistered when the
// role has no binding; Auction is the exception — a deployment without
// an auction subsystem simply has no live auctions, which Resolve
// callers handle by treating the predicate as false.
type ServiceRegistry interface {
	Update(ctx.Ctx, Role, interface{}) error
	Resolve(ctx.Ctx, Role) (interface{}, error)

	Auction(ctx.Ctx) (auction.LiveChecker, error)
	TokenRegistry(ctx.Ctx) (domain.PayTokenRegistry, error)
}
