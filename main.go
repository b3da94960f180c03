package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"storefront/pkg/app/config"
	"storefront/pkg/auth"
	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
	"storefront/pkg/infrastructure/memory"
	"storefront/pkg/infrastructure/mysql"
	"storefront/pkg/infrastructure/notification"
	"storefront/pkg/metrics"
	"storefront/transport"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  "storefront",
		Usage: "online store backend",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations",
				Action: runMigrations,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("storefront terminated")
	}
}

func serve(_ *cli.Context) error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	var (
		accounts model.AccountRepository
		products model.ProductRepository
		orders   model.OrderRepository
	)
	if cfg.DatabaseDSN != "" {
		db, err := mysql.Connect(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		accounts = mysql.NewAccountRepository(db)
		products = mysql.NewProductRepository(db)
		orders = mysql.NewOrderRepository(db)
		log.Info("using mysql store")
	} else {
		accounts = memory.NewAccountRepository()
		products = memory.NewProductRepository()
		orders = memory.NewOrderRepository()
		log.Warn("no DATABASE_DSN configured, using in-memory store")
	}

	dispatcher := notification.NewDispatcher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.NotifyTimeout)
	defer dispatcher.Close()

	authority := auth.NewCredentialAuthority([]byte(cfg.TokenSecret), cfg.TokenTTL)
	gate := auth.NewAccessGate(authority, accounts)
	passwords := auth.NewPasswordManager()

	ledger := service.NewInventoryLedger(products)
	handler := transport.NewHandler(
		gate,
		service.NewAccountService(accounts, passwords, authority, dispatcher),
		service.NewCatalogService(products, dispatcher),
		service.NewOrderProcessor(orders, ledger, dispatcher),
		service.NewOrderLifecycle(orders, dispatcher),
		service.NewDashboardService(accounts, products, orders),
	)

	router := transport.NewRouter(handler, metrics.NewServerMetrics("api"))
	srv := &http.Server{Addr: cfg.ServeAddress, Handler: router}

	go func() {
		log.WithField("address", cfg.ServeAddress).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	waitForKillSignal()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

func runMigrations(_ *cli.Context) error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}
	if cfg.DatabaseDSN == "" {
		return cli.Exit("DATABASE_DSN is required for migrations", 1)
	}
	if err := mysql.Migrate(cfg.DatabaseDSN, cfg.MigrationsPath); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func waitForKillSignal() {
	killSignalChan := make(chan os.Signal, 1)
	signal.Notify(killSignalChan, os.Interrupt, syscall.SIGTERM)

	switch <-killSignalChan {
	case os.Interrupt:
		log.Info("got SIGINT...")
	case syscall.SIGTERM:
		log.Info("got SIGTERM...")
	}
}
