package main

import (
	"math/big"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	ethcommon "github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/payrolldao/vault-core/app"
	common "github.com/payrolldao/vault-core/common"
	"github.com/payrolldao/vault-core/journal"
	"github.com/payrolldao/vault-core/models"
	"github.com/payrolldao/vault-core/reaper"
	"github.com/payrolldao/vault-core/vault"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	var configFile string
	var envFile string
	if len(os.Args) > 1 {
		configFile, _ = filepath.Abs(os.Args[1])
	}
	if len(os.Args) > 2 {
		envFile, _ = filepath.Abs(os.Args[2])
	}

	app.InitConfig(configFile, envFile)
	app.InitLogger()
	app.InitDB()

	v := initVault()

	var wg sync.WaitGroup

	services := []models.Service{
		reaper.NewReaper(&wg, v),
		app.NewHealthCheck(&wg, v),
	}

	wg.Add(len(services))
	for _, service := range services {
		go service.Start()
	}

	gracefulStop := make(chan os.Signal, 1)
	done := make(chan bool, 1)
	signal.Notify(gracefulStop, syscall.SIGINT, syscall.SIGTERM)
	go waitForExitSignals(gracefulStop, done)
	<-done

	log.Debug("[MAIN] Gracefully shutting down server")
	for _, service := range services {
		service.Stop()
	}
	wg.Wait()
	err := app.DB.Disconnect()
	if err != nil {
		log.Error("[MAIN] Error disconnecting from database: ", err)
	}
	log.Info("[MAIN] Server gracefully stopped")
}

func initVault() *vault.Vault {
	address, err := common.ParseAddress(app.Config.Vault.Address)
	if err != nil {
		log.Fatal("[MAIN] Error parsing vault address: ", err)
	}
	signers, err := common.ParseAddresses(app.Config.Vault.Signers)
	if err != nil {
		log.Fatal("[MAIN] Error parsing vault signers: ", err)
	}

	// Transport is an external collaborator; the in-process caller only
	// records the forwarded call.
	caller := vault.CallerFunc(func(target ethcommon.Address, value *big.Int, payload []byte) error {
		log.Info("[MAIN] Forwarding call to ", target.Hex(), " value ", value, " payload bytes ", len(payload))
		return nil
	})

	v, err := vault.New(
		address,
		signers,
		int(app.Config.Vault.Threshold),
		caller,
		vault.WithEventSink(journal.NewJournal()),
		vault.WithAsset(app.Config.Vault.AssetSymbol),
	)
	if err != nil {
		log.Fatal("[MAIN] Error initializing vault: ", err)
	}
	return v
}

func waitForExitSignals(gracefulStop chan os.Signal, done chan bool) {
	sig := <-gracefulStop
	log.Debug("[MAIN] Got signal: ", sig)
	done <- true
}
