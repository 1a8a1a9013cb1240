package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"swapmarket/config"
	"swapmarket/core/events"
	"swapmarket/native/market"
	"swapmarket/observability/logging"
	"swapmarket/storage"
)

const (
	shutdownTimeout = 10 * time.Second
	eventFeedDepth  = 256
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the marketd config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.Setup("marketd", os.Getenv("MARKETD_ENV"), logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})

	db, err := storage.NewLevelDB(filepath.Join(cfg.DataDir, "market"))
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	state := NewChainState(db)
	feed := events.NewMemoryEmitter(eventFeedDepth)

	engine := market.NewEngine(db)
	engine.SetRegistry(state)
	engine.SetTokenLedger(state)
	engine.SetBank(state)
	engine.SetEmitter(feed)
	engine.SetMarketAccount(cfg.Market.MarketAccount)
	engine.SetBlockFunc(func() market.BlockInfo {
		return market.BlockInfo{Time: time.Now().Unix()}
	})

	if _, err := engine.Config(); err != nil {
		genesis := market.Config{
			Admin:       cfg.Market.Admin,
			Denom:       cfg.Market.Denom,
			FeePercent:  cfg.Market.FeePercent,
			Collections: cfg.Market.Collections,
		}
		if err := engine.Initialize(genesis); err != nil {
			log.Fatalf("initialize marketplace config: %v", err)
		}
		logger.Info("marketplace config initialized", "admin", genesis.Admin, "denom", genesis.Denom, "fee_percent", genesis.FeePercent)
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	server := NewServer(engine, state, feed, logger, limiter)

	srv := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: server,
	}

	go func() {
		logger.Info("marketd listening", "address", cfg.ListenAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down marketd")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "graceful shutdown failed: %v\n", err)
	}
}
