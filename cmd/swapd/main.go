package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/atomicswap-network/swapd/internal/config"
	"github.com/atomicswap-network/swapd/internal/core/application"
	"github.com/atomicswap-network/swapd/internal/core/domain"
	"github.com/atomicswap-network/swapd/internal/core/ports"
	"github.com/atomicswap-network/swapd/internal/infrastructure/ledger"
	webhookpubsub "github.com/atomicswap-network/swapd/internal/infrastructure/pubsub/webhook"
	dbbadger "github.com/atomicswap-network/swapd/internal/infrastructure/storage/db/badger"
	httpinterface "github.com/atomicswap-network/swapd/internal/interfaces/http"
)

func main() {
	app := &cli.App{
		Name:    "swapd",
		Usage:   "peer-to-peer atomic swap matching daemon",
		Version: "0.1.0",
		Action:  start,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("daemon exited with error")
	}
}

func start(_ *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	repoManager, err := dbbadger.NewRepoManager(dbDir, nil)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	bank := ledger.NewBank()
	authz := ledger.NewAuthz(true)

	var pubsub ports.PubSub
	if config.GetBool(config.EnablePubSubKey) {
		pubsub = webhookpubsub.NewWebhookPubSubService()
	}

	svc, err := application.NewService(
		repoManager, bank, authz, pubsub,
		config.GetString(config.SwapAddressKey),
		config.GetString(config.OwnerKey),
	)
	if err != nil {
		return err
	}

	authz.RegisterExecutor(func(
		ctx context.Context,
		caller, maker string, orderId uint64, funds []domain.Coin,
	) error {
		return svc.ConfirmSwapOrder(ctx, caller, maker, orderId, funds)
	})

	addr := fmt.Sprintf(":%d", config.GetInt(config.ListeningPortKey))
	server := &http.Server{
		Addr:    addr,
		Handler: httpinterface.NewHandler(svc, bank, authz).Router(),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Panic("error listening on swap interface")
		}
	}()
	log.Infof("swap interface is listening on %s", addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("shutting down")
	return server.Shutdown(context.Background())
}
