package usecase

import (
	"github.com/mosaic-xyz/goapi/base/ctx"
	hcdomain "github.com/mosaic-xyz/goapi/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(context ctx.Ctx) hcdomain.Status {
	return hcdomain.Status{
		Mongo: im.repo.PingMongo(context) == nil,
		Redis: im.repo.PingRedis(context) == nil,
	}
}
