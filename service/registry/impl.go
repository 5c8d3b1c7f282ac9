package registry

import (
	"sync"

	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/log"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/auction"
	"github.com/mosaic-xyz/goapi/domain/registry"
)

type impl struct {
	mu       sync.RWMutex
	bindings map[registry.Role]interface{}
}

func New() registry.ServiceRegistry {
	return &impl{
		bindings: make(map[registry.Role]interface{}),
	}
}

func (im *impl) Update(ctx ctx.Ctx, role registry.Role, handle interface{}) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if handle == nil {
		delete(im.bindings, role)
		return nil
	}
	im.bindings[role] = handle
	return nil
}

func (im *impl) Resolve(ctx ctx.Ctx, role registry.Role) (interface{}, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	handle, ok := im.bindings[role]
	if !ok {
		return nil, domain.ErrServiceUnregistered
	}
	return handle, nil
}

func (im *impl) Auction(ctx ctx.Ctx) (auction.LiveChecker, error) {
	handle, err := im.Resolve(ctx, registry.RoleAuction)
	if err != nil {
		return nil, err
	}
	checker, ok := handle.(auction.LiveChecker)
	if !ok {
		ctx.WithFields(log.Fields{
			"role": registry.RoleAuction,
		}).Error("registered handle does not implement auction.LiveChecker")
		return nil, domain.ErrServiceUnregistered
	}
	return checker, nil
}

func (im *impl) TokenRegistry(ctx ctx.Ctx) (domain.PayTokenRegistry, error) {
	handle, err := im.Resolve(ctx, registry.RoleTokenRegistry)
	if err != nil {
		return nil, err
	}
	reg, ok := handle.(domain.PayTokenRegistry)
	if !ok {
		ctx.WithFields(log.Fields{
			"role": registry.RoleTokenRegistry,
		}).Error("registered handle does not implement domain.PayTokenRegistry")
		return nil, domain.ErrServiceUnregistered
	}
	return reg, nil
}
