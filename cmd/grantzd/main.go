package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/grantz/api"
	"github.com/vocdoni/grantz/crypto/fhe"
	"github.com/vocdoni/grantz/ledger"
	"github.com/vocdoni/grantz/oracle"
	"github.com/vocdoni/grantz/service"
	"github.com/vocdoni/grantz/storage"
	"github.com/vocdoni/grantz/util"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/metadb"
	"go.vocdoni.io/dvote/log"
)

func main() {
	host := flag.String("host", "0.0.0.0", "API host")
	port := flag.Int("port", 8080, "API port")
	dataDir := flag.String("dataDir", "./grantz-data", "database directory")
	logLevel := flag.String("logLevel", "info", "log level (debug, info, warn, error)")
	owner := flag.String("owner", "", "initial owner address (hex)")
	identity := flag.String("identity", "", "ledger identity address (hex), random if empty")
	cooldown := flag.Duration("cooldown", 60*time.Second, "initial submission/disclosure cooldown")
	flag.Parse()
	log.Init(*logLevel, "stdout", nil)

	if !common.IsHexAddress(*owner) {
		log.Fatalf("missing or malformed -owner address: %q", *owner)
	}
	ledgerIdentity := common.BytesToAddress(util.RandomBytes(common.AddressLength))
	if *identity != "" {
		if !common.IsHexAddress(*identity) {
			log.Fatalf("malformed -identity address: %q", *identity)
		}
		ledgerIdentity = common.HexToAddress(*identity)
	}

	database, err := metadb.New(db.TypePebble, *dataDir)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	stg := storage.New(database)
	defer stg.Close()

	// There is no production arithmetic engine wired yet; the mock engine
	// keeps the full protocol exercisable end to end in development.
	log.Warnw("using mock encryption engine, values are not confidential")
	engine := fhe.NewMockEngine()
	bridge := oracle.NewMockBridge(engine)

	lgr, err := ledger.New(&ledger.Config{
		Identity: ledgerIdentity,
		Owner:    common.HexToAddress(*owner),
		Cooldown: *cooldown,
		Storage:  stg,
		Engine:   engine,
		Verifier: engine,
		Bridge:   bridge,
	})
	if err != nil {
		log.Fatalf("failed to create ledger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	monitor := service.NewDisclosureMonitor(bridge, lgr)
	if err := monitor.Start(ctx); err != nil {
		log.Fatalf("failed to start disclosure monitor: %v", err)
	}
	defer monitor.Stop()

	// The mock bridge holds answers until delivered; flush periodically so
	// development disclosures complete without manual intervention.
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				bridge.Deliver()
			}
		}
	}()

	if _, err := api.New(&api.APIConfig{
		Host:   *host,
		Port:   *port,
		Ledger: lgr,
	}); err != nil {
		log.Fatalf("failed to start API: %v", err)
	}
	log.Infow("grantz ledger running",
		"identity", ledgerIdentity.Hex(),
		"dataDir", *dataDir,
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")
}
