package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/mosaic-xyz/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"address"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, str string) (string, error)
}
