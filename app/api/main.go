package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/mosaic-xyz/goapi/base/ctx"
	"github.com/mosaic-xyz/goapi/base/database/mongoclient"
	"github.com/mosaic-xyz/goapi/base/database/redisclient"
	"github.com/mosaic-xyz/goapi/base/log"
	"github.com/mosaic-xyz/goapi/base/metrics"
	"github.com/mosaic-xyz/goapi/base/pricefeed"
	bValidator "github.com/mosaic-xyz/goapi/base/validator"
	"github.com/mosaic-xyz/goapi/domain"
	"github.com/mosaic-xyz/goapi/domain/marketplace"
	"github.com/mosaic-xyz/goapi/domain/registry"
	mmiddleware "github.com/mosaic-xyz/goapi/middleware"
	"github.com/mosaic-xyz/goapi/service/coingecko"
	ledger_service "github.com/mosaic-xyz/goapi/service/ledger"
	"github.com/mosaic-xyz/goapi/service/query"
	"github.com/mosaic-xyz/goapi/service/redis"
	registry_service "github.com/mosaic-xyz/goapi/service/registry"
	auction_delivery "github.com/mosaic-xyz/goapi/stores/auction/delivery/http"
	auction_repository "github.com/mosaic-xyz/goapi/stores/auction/repository"
	auction_usecase "github.com/mosaic-xyz/goapi/stores/auction/usecase"
	auth_delivery "github.com/mosaic-xyz/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/mosaic-xyz/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/mosaic-xyz/goapi/stores/auth/usecase"
	coin_delivery "github.com/mosaic-xyz/goapi/stores/coin/delivery/http"
	hc_delivery "github.com/mosaic-xyz/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/mosaic-xyz/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/mosaic-xyz/goapi/stores/healthcheck/usecase"
	ledger_delivery "github.com/mosaic-xyz/goapi/stores/ledger/delivery/http"
	marketplace_delivery "github.com/mosaic-xyz/goapi/stores/marketplace/delivery/http"
	marketplace_repository "github.com/mosaic-xyz/goapi/stores/marketplace/repository"
	marketplace_usecase "github.com/mosaic-xyz/goapi/stores/marketplace/usecase"
	paytoken_delivery "github.com/mosaic-xyz/goapi/stores/paytoken/delivery/http"
	paytoken_repository "github.com/mosaic-xyz/goapi/stores/paytoken/repository"
	paytoken_usecase "github.com/mosaic-xyz/goapi/stores/paytoken/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	coinGecko := coingecko.NewClient(&coingecko.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    10 * time.Second,
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	paytokenRepo := paytoken_repository.NewPayTokenRepo(q)
	listingRepo := marketplace_repository.NewListingRepo(q)
	offerRepo := marketplace_repository.NewOfferRepo(q)
	activityRepo := marketplace_repository.NewActivityRepo(q)
	auctionRepo := auction_repository.NewAuctionRepo(q)

	hc := hc_usecase.New(hcRepo)
	paytokens := paytoken_usecase.New(paytokenRepo)
	priceFormatter := pricefeed.NewPriceFormatter(&pricefeed.PriceFormatterCfg{
		Paytokens:         paytokens,
		CoinGecko:         coinGecko,
		NativeCoinGeckoId: viper.GetString("pricefeed.nativeCoinGeckoId"),
	})

	// the in-memory ledger backs balances, custody and settlement
	ledgerService := ledger_service.New()

	serviceRegistry := registry_service.New()
	if err := serviceRegistry.Update(context, registry.RoleTokenRegistry, paytokens); err != nil {
		panic(err)
	}

	operator := domain.Address(viper.GetString("marketplace.operator"))
	auction := auction_usecase.New(&auction_usecase.AuctionCfg{
		Repo:     auctionRepo,
		Registry: serviceRegistry,
		Assets:   ledgerService,
		Operator: operator,
	})
	if err := serviceRegistry.Update(context, registry.RoleAuction, auction); err != nil {
		panic(err)
	}

	mkt := marketplace_usecase.New(&marketplace_usecase.MarketplaceCfg{
		ListingRepo: listingRepo,
		OfferRepo:   offerRepo,
		Registry:    serviceRegistry,
		Assets:      ledgerService,
		Settler:     ledgerService,
		Events:      marketplace_repository.NewActivitySink(activityRepo),
		Prices:      priceFormatter,
		Operator:    operator,
		Fee: marketplace.FeeConfig{
			Recipient:   domain.Address(viper.GetString("marketplace.feeRecipient")),
			BasisPoints: viper.GetInt64("marketplace.feeBasisPoints"),
		},
	})
	if err := serviceRegistry.Update(context, registry.RoleMarketplace, mkt); err != nil {
		panic(err)
	}

	// seed the payment token whitelist
	paytokenCfgs := viper.Sub("paytokens")
	if paytokenCfgs != nil {
		for k := range paytokenCfgs.AllSettings() {
			token := &domain.PayToken{
				Name:          paytokenCfgs.GetString(fmt.Sprintf("%s.name", k)),
				Symbol:        paytokenCfgs.GetString(fmt.Sprintf("%s.symbol", k)),
				TokenDecimals: paytokenCfgs.GetInt32(fmt.Sprintf("%s.decimals", k)),
				Address:       domain.Address(paytokenCfgs.GetString(fmt.Sprintf("%s.address", k))),
				CoinGeckoId:   paytokenCfgs.GetString(fmt.Sprintf("%s.coingeckoId", k)),
			}
			if err := paytokens.Add(context, token); err != nil {
				context.WithField("err", err).Error("paytokens.Add failed")
			}
		}
	}

	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetDuration("auth.tokenTtl"))

	adminAddresses := viper.GetStringSlice("admin.addresses")
	auth_middleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	coin_delivery.New(e, coinGecko)
	marketplace_delivery.New(e, mkt, auth_middleware)
	marketplace_delivery.NewActivity(e, activityRepo)
	auction_delivery.New(e, auction, auth_middleware)
	paytoken_delivery.New(e, paytokens, auth_middleware)
	ledger_delivery.New(e, ledgerService, ledgerService, auth_middleware)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, auth_middleware.Auth())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
