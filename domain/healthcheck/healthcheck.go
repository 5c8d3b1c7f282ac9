package healthcheck

import (
	"github.com/mosaic-xyz/goapi/base/ctx"
)

// Status reports the reachability of each backing dependency
type Status struct {
	Mongo bool `json:"mongo"`
	Redis bool `json:"redis"`
}

func (s Status) Healthy() bool {
	return s.Mongo && s.Redis
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) Status
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingMongo(context ctx.Ctx) error
	PingRedis(context ctx.Ctx) error
}
