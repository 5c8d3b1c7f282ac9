package registry

import (
	"testing"

	"github.com/stretchr/testify/suite"
	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
	mAuction "github.com/mosaic-xyz/goapi/domain/auction/mocks"
	"github.com/mosaic-xyz/goapi/domain/registry"
)

type registrySuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(registrySuite))
}

func (s *registrySuite) TestResolveUnregistered() {
	ctx := bCtx.Background()
	r := New()
	_, err := r.Resolve(ctx, registry.RoleAuction)
	s.Equal(domain.ErrServiceUnregistered, err)
	_, err = r.Auction(ctx)
	s.Equal(domain.ErrServiceUnregistered, err)
}

func (s *registrySuite) TestUpdateAndResolve() {
	ctx := bCtx.Background()
	r := New()
	checker := &mAuction.LiveChecker{}
	s.NoError(r.Update(ctx, registry.RoleAuction, checker))
	got, err := r.Auction(ctx)
	s.NoError(err)
	s.Equal(checker, got)

	// swapping the binding takes effect on the next resolve
	checker2 := &mAuction.LiveChecker{}
	s.NoError(r.Update(ctx, registry.RoleAuction, checker2))
	got, err = r.Auction(ctx)
	s.NoError(err)
	s.Equal(checker2, got)

	// unbinding restores the unregistered error
	s.NoError(r.Update(ctx, registry.RoleAuction, nil))
	_, err = r.Auction(ctx)
	s.Equal(domain.ErrServiceUnregistered, err)
}

func (s *registrySuite) TestWrongHandleType() {
	ctx := bCtx.Background()
	r := New()
	s.NoError(r.Update(ctx, registry.RoleTokenRegistry, "not a registry"))
	_, err := r.TokenRegistry(ctx)
	s.Equal(domain.ErrServiceUnregistered, err)
}
