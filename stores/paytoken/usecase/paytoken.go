package usecase

import (
	bCtx "github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/log"
	"github.com/mosaic-xyz/goapi/domain"
)

type impl struct {
	repo domain.PayTokenRepo
}

// New builds the payment-token registry: an admin-curated allow list of
// tokens the marketplace settles in.
func New(repo domain.PayTokenRepo) domain.PayTokenRegistry {
	return &impl{repo: repo}
}

func (im *impl) IsEnabled(ctx bCtx.Ctx, token domain.Address) (bool, error) {
	payToken, err := im.repo.FindOne(ctx, token)
	if err != nil {
		ctx.WithFields(log.Fields{
			"token": token,
			"err":   err,
		}).Error("repo.FindOne failed")
		return false, err
	}
	return payToken != nil && payToken.Enabled, nil
}

func (im *impl) Get(ctx bCtx.Ctx, token domain.Address) (*domain.PayToken, error) {
	payToken, err := im.repo.FindOne(ctx, token)
	if err != nil {
		ctx.WithFields(log.Fields{
			"token": token,
			"err":   err,
		}).Error("repo.FindOne failed")
		return nil, err
	}
	return payToken, nil
}

func (im *impl) Add(ctx bCtx.Ctx, payToken *domain.PayToken) error {
	payToken.Address = payToken.Address.ToLower()
	payToken.Enabled = true
	if err := im.repo.Upsert(ctx, payToken); err != nil {
		ctx.WithFields(log.Fields{
			"token": payToken.Address,
			"err":   err,
		}).Error("repo.Upsert failed")
		return err
	}
	return nil
}

func (im *impl) Disable(ctx bCtx.Ctx, token domain.Address) error {
	payToken, err := im.repo.FindOne(ctx, token)
	if err != nil {
		return err
	}
	if payToken == nil {
		return domain.ErrNotFound
	}
	payToken.Enabled = false
	if err := im.repo.Upsert(ctx, payToken); err != nil {
		ctx.WithFields(log.Fields{
			"token": token,
			"err":   err,
		}).Error("repo.Upsert failed")
		return err
	}
	return nil
}
