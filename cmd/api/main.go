package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plan-fulfillment/internal/client"
	"plan-fulfillment/internal/config"
	"plan-fulfillment/internal/logger"
	"plan-fulfillment/internal/notification"
	"plan-fulfillment/internal/packaging"
	"plan-fulfillment/internal/repository"
	"plan-fulfillment/internal/server"
	"plan-fulfillment/internal/service"
	"plan-fulfillment/internal/sideeffect"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&cfg.Log)

	referralRate, err := decimal.NewFromString(cfg.Fulfillment.ReferralBonusRate)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid referral bonus rate")
	}

	db := client.InitSqliteClient(cfg.DatabaseURL)
	mailSender := client.NewSMTPMailSender(&cfg.SMTP)
	messenger := client.NewMessengerClient(&cfg.Messaging)

	orderRepo := repository.NewOrderRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	affiliateRepo := repository.NewAffiliateRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	packager := packaging.NewZipPackager(cfg.Packaging.PlansDir, cfg.Packaging.OutputDir, log)
	emailSender := notification.NewEmailSender(mailSender, log)
	scheduler := notification.NewScheduler(messenger, log)

	sideEffects := []sideeffect.SideEffect{
		sideeffect.NewAccountProvisioner(customerRepo),
		sideeffect.NewCommissionCredit(affiliateRepo),
		sideeffect.NewReferralBonus(affiliateRepo, referralRate),
		sideeffect.NewSaleRecorder(analyticsRepo),
		sideeffect.NewFunnelRecorder(analyticsRepo),
	}

	fulfillmentService := service.NewFulfillmentService(
		orderRepo,
		transactionRepo,
		packager,
		emailSender,
		scheduler,
		sideEffects,
		time.Duration(cfg.Messaging.DelayMinutes)*time.Minute,
		log,
	)
	orderService := service.NewOrderService(orderRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(fulfillmentService, orderService, cfg.Gateway.WebhookToken)

	log.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}
