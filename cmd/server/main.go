package main

import (
	"context"
	"net/http"

	"savora-storefront/internal/address"
	"savora-storefront/internal/auth"
	"savora-storefront/internal/cart"
	"savora-storefront/internal/checkout"
	"savora-storefront/internal/config"
	"savora-storefront/internal/db"
	"savora-storefront/internal/geo"
	"savora-storefront/internal/httpserver"
	"savora-storefront/internal/logger"
	"savora-storefront/internal/metrics"
	"savora-storefront/internal/payment"
	"savora-storefront/internal/platform"
	"savora-storefront/internal/storage"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	if err := storage.EnsureSchema(context.Background(), database); err != nil {
		logger.L().Fatal("failed to ensure schema", zap.Error(err))
	}
	snapshots := storage.NewPostgres(database)

	carts := cart.NewStore(snapshots)
	addresses := address.NewStore(snapshots)
	// Logging out must also forget the selected address.
	sessions := auth.NewStore(snapshots, addresses.ClearOnLogout)

	platformClient := platform.NewClient(cfg.PlatformBaseURL)
	geoClient := geo.NewClient(cfg.GeoBaseURL)
	gateway := payment.NewStripeGateway(cfg.PaymentSecretKey)

	stats := &metrics.Checkout{}
	checkoutSvc := checkout.NewService(
		carts, sessions, platformClient, platformClient, gateway, cfg.DeliveryFee, stats)

	srv := httpserver.NewServer(
		carts, addresses, sessions, checkoutSvc, platformClient, geoClient, stats)

	addr := ":" + cfg.AppPort
	logger.L().Info("storefront server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.Router(cfg.AllowedOrigins)); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
