package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	address := "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D"

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", time.Hour)
	tkn, err := u.SignToken(ctx, domain.Address(address))
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", ads)
}

func TestSignTokenRejectsBadAddress(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", time.Hour)
	_, err := u.SignToken(ctx, "not-an-address")
	assert.Equal(t, domain.ErrInvalidAddress, err)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	address := "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D"

	ctx := ctx.Background()
	signer := usecase.New("jwt-secret", time.Hour)
	tkn, err := signer.SignToken(ctx, domain.Address(address))
	assert.NoError(t, err)

	verifier := usecase.New("other-secret", time.Hour)
	_, err = verifier.ParseToken(ctx, tkn)
	assert.Error(t, err)
}
