// tracker-refresh runs one price refresh cycle over an account's positions
// and prints the resulting performance report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/clients/alphavantage"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/common"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/services/portfolio"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/services/pricing"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/storage/badger"
)

func main() {
	configPath := flag.String("config", os.Getenv("TRACKER_CONFIG"), "path to TOML config file")
	account := flag.String("account", "", "account to refresh (default: first configured account)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall refresh timeout")
	flag.Parse()

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLogger(cfg.Logging.Level)

	accountID := *account
	if accountID == "" {
		accountID = cfg.DefaultAccount()
	}
	if accountID == "" {
		logger.Fatal().Msg("No account specified and none configured")
	}

	store, err := badger.NewStore(logger, cfg.Storage.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open store")
	}
	defer store.Close()

	client := alphavantage.NewClient(cfg.Clients.AlphaVantage.APIKey,
		alphavantage.WithBaseURL(cfg.Clients.AlphaVantage.BaseURL),
		alphavantage.WithRateLimit(cfg.Clients.AlphaVantage.RateLimit),
		alphavantage.WithTimeout(cfg.Clients.AlphaVantage.GetTimeout()),
		alphavantage.WithLogger(logger),
	)

	limiter := pricing.NewLimiter(
		cfg.Resolver.GetMinDelay(),
		cfg.Resolver.GetMaxDelay(),
		cfg.Resolver.GetCooldown(),
	)
	cache := pricing.NewCache(cfg.Resolver.GetQuoteMaxAge())
	resolver := pricing.NewResolver(client, limiter, cache, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Cancel the batch on interrupt; already-attempted symbols keep their
	// live prices, the rest fall through the cache/estimate chain.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn().Msg("Interrupt received; abandoning remaining fetches")
		cancel()
	}()

	// Warm the cache with persisted quotes so staleness carries across runs
	if quotes, err := store.Quotes().ListQuotes(ctx); err == nil {
		cache.Warm(quotes)
	} else {
		logger.Warn().Err(err).Msg("Failed to warm quote cache")
	}

	svc := portfolio.NewService(store, resolver, logger)

	positions, err := svc.RefreshPrices(ctx, accountID)
	if err != nil {
		logger.Fatal().Err(err).Msg("Refresh failed")
	}
	if len(positions) == 0 {
		logger.Info().Str("account", accountID).Msg("No active positions")
		return
	}

	report, err := svc.ComputePerformance(ctx, accountID, nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Performance computation failed")
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
}
