// Contention driver: fires concurrent checkouts at the same product and
// verifies that the server admits no more purchases than there is stock.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sebas-aldana/brm-client/internal/adapter/identity"
	"github.com/sebas-aldana/brm-client/internal/adapter/rest"
	"github.com/sebas-aldana/brm-client/internal/config"
	"github.com/sebas-aldana/brm-client/internal/core/domain"
	"github.com/sebas-aldana/brm-client/internal/core/service"
	"github.com/sebas-aldana/brm-client/internal/core/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	envFile := flag.String("env", "", "optional .env file")
	productID := flag.String("product", "", "product id to contend for")
	requests := flag.Int("n", 50, "concurrent purchase attempts")
	flag.Parse()

	if *productID == "" {
		log.Fatal().Msg("-product is required")
	}

	cf, err := config.Load(*envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()
	api := rest.NewClient(cf.APIBaseURL, nil)

	inventory := store.NewInventoryStore(rest.NewInventoryClient(api), nil, nil)
	if err := inventory.FetchAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("inventory fetch failed")
	}
	before, ok := inventory.Product(*productID)
	if !ok {
		log.Fatal().Str("product", *productID).Msg("unknown product")
	}
	log.Info().Int("available", before.AvailableQuantity).Int("requests", *requests).Msg("starting contention run")

	var success, conflict, failed atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *requests; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			// Each attempt is its own session: own cart, shared service.
			cart := service.NewCart(inventory)
			cart.Add(*productID)
			who := identity.NewStatic(fmt.Sprintf("%s-%d", cf.ClientID, n))
			checkout := service.NewCheckout(cart, rest.NewOrderClient(api), who, nil, nil, time.Millisecond)

			_, confirmation, err := checkout.Submit(ctx)
			switch {
			case err == nil:
				success.Add(1)
				confirmation.Dismiss()
			case domain.IsStockConflict(err):
				conflict.Add(1)
			default:
				failed.Add(1)
				log.Warn().Err(err).Int("attempt", n).Msg("purchase error")
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	if err := inventory.FetchAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("final inventory fetch failed")
	}
	after, _ := inventory.Product(*productID)

	log.Info().
		Int32("success", success.Load()).
		Int32("conflict", conflict.Load()).
		Int32("failed", failed.Load()).
		Int("stock_before", before.AvailableQuantity).
		Int("stock_after", after.AvailableQuantity).
		Dur("elapsed", elapsed).
		Msg("contention run finished")

	if int(success.Load()) > before.AvailableQuantity {
		log.Fatal().Msg("server admitted more purchases than available stock")
	}
}
