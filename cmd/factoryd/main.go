package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sealbid-network/sealbid-factory/internal/config"
	"github.com/sealbid-network/sealbid-factory/internal/core/application"
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
	"github.com/sealbid-network/sealbid-factory/internal/infrastructure/launcher"
	"github.com/sealbid-network/sealbid-factory/internal/infrastructure/pubsub"
	dbbadger "github.com/sealbid-network/sealbid-factory/internal/infrastructure/storage/db/badger"
	httpinterface "github.com/sealbid-network/sealbid-factory/internal/interfaces/http"
	"github.com/sealbid-network/sealbid-factory/pkg/stats"
)

var version = "0.2.1"

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Panic("invalid config")
	}

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	dbDir := config.GetDbDir()
	repoManager, err := dbbadger.NewRepoManager(dbDir, log.New())
	if err != nil {
		log.WithError(err).Panic("error while opening db")
	}

	pubsubSvc, err := pubsub.NewService(
		dbDir, log.New(), config.GetInt(config.WebhookRateLimitKey),
	)
	if err != nil {
		log.WithError(err).Panic("error while opening pubsub db")
	}

	launcherSvc, err := launcher.NewService(
		config.GetString(config.LauncherEndpointKey),
	)
	if err != nil {
		log.WithError(err).Panic("invalid launcher endpoint")
	}

	var hub *httpinterface.EventHub
	var publisher ports.PubSubService = pubsubSvc
	if !config.GetBool(config.NoEventsKey) {
		hub = httpinterface.NewEventHub()
		publisher = pubsub.WithBroadcast(pubsubSvc, hub)
	}

	contract := application.AuctionContractInfo{
		CodeID:   config.GetUint64(config.AuctionCodeIDKey),
		CodeHash: config.GetString(config.AuctionCodeHashKey),
	}
	factorySvc, err := application.NewFactoryService(
		repoManager, launcherSvc, publisher,
		config.GetString(config.AdminAddressKey), contract, version,
	)
	if err != nil {
		log.WithError(err).Panic("error while initializing factory service")
	}
	registrySvc := application.NewRegistryService(repoManager, publisher)
	querySvc := application.NewQueryService(
		repoManager,
		config.GetUint32(config.PageSizeDefaultKey),
		config.GetUint32(config.PageSizeMaxKey),
	)

	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Address:     config.GetString(config.HTTPAddressKey),
		FactorySvc:  factorySvc,
		RegistrySvc: registrySvc,
		QuerySvc:    querySvc,
		EventHub:    hub,
		MaxConns:    config.GetInt(config.ConnLimitKey),
	})
	if err != nil {
		log.WithError(err).Panic("error while initializing factory interface")
	}

	log.Debug("starting daemon")

	if err := svc.Start(); err != nil {
		log.WithError(err).Panic("error while starting factory interface")
	}

	ctx, cancel := context.WithCancel(context.Background())
	if config.GetBool(config.EnableProfilerKey) {
		interval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
		if interval > 0 {
			stats.EnableMemoryStatistics(ctx, interval, config.GetDatadir())
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	cancel()
	svc.Stop()
	if err := pubsubSvc.Close(); err != nil {
		log.WithError(err).Warn("error while closing pubsub service")
	}
	repoManager.Close()

	log.Debug("exiting")
}
