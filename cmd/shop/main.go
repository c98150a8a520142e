package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sebas-aldana/brm-client/internal/adapter/identity"
	"github.com/sebas-aldana/brm-client/internal/adapter/rest"
	"github.com/sebas-aldana/brm-client/internal/adapter/storage"
	"github.com/sebas-aldana/brm-client/internal/config"
	"github.com/sebas-aldana/brm-client/internal/core/domain"
	"github.com/sebas-aldana/brm-client/internal/core/event"
	"github.com/sebas-aldana/brm-client/internal/core/service"
	"github.com/sebas-aldana/brm-client/internal/core/store"
	"github.com/sebas-aldana/brm-client/internal/port"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	envFile := flag.String("env", "", "optional .env file")
	buy := flag.String("buy", "", "product id to purchase")
	qty := flag.Int("qty", 1, "units to add to the cart")
	flag.Parse()

	cf, err := config.Load(*envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Snapshot persistence is best-effort; without Redis the caches simply
	// start empty.
	var snapshots port.SnapshotStore
	rdb := redis.NewClient(&redis.Options{Addr: cf.RedisAddr, Password: cf.RedisPass})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without snapshot persistence")
	} else {
		snapshots = storage.NewRedisSnapshotStore(rdb)
		defer rdb.Close()
	}

	api := rest.NewClient(cf.APIBaseURL, nil)
	bus := event.NewBus()

	inventory := store.NewInventoryStore(rest.NewInventoryClient(api), snapshots, bus)
	orders := store.NewOrderStore(rest.NewOrderClient(api), snapshots)

	for _, s := range []interface {
		Load(context.Context) error
		Name() string
	}{inventory, orders} {
		if err := s.Load(ctx); err != nil {
			log.Warn().Err(err).Str("store", s.Name()).Msg("could not seed from snapshot")
		}
	}

	if err := inventory.FetchAll(ctx); err != nil {
		log.Error().Err(err).Msg("inventory fetch failed, using last-known snapshot")
	}
	if err := orders.FetchAll(ctx); err != nil {
		log.Error().Err(err).Msg("order history fetch failed, using last-known snapshot")
	}

	for _, p := range inventory.Items() {
		log.Info().
			Str("id", p.ID).
			Str("name", p.Name).
			Str("batch", p.Batch).
			Str("price", p.Price.String()).
			Int("available", p.AvailableQuantity).
			Str("stock", string(domain.StockLevelOf(p))).
			Msg("product")
	}
	log.Info().Int("purchases", len(orders.Items())).Msg("order history loaded")

	if *buy == "" {
		return
	}

	cart := service.NewCart(inventory)
	for i := 0; i < *qty; i++ {
		cart.Add(*buy)
	}
	if cart.Len() == 0 {
		log.Fatal().Str("product", *buy).Msg("product unknown or out of stock")
	}
	log.Info().Int("units", cart.Count()).Str("total", cart.Total().String()).Msg("cart ready")

	checkout := service.NewCheckout(cart, rest.NewOrderClient(api), identity.NewStatic(cf.ClientID), bus, orders, cf.DismissAfter)
	purchase, confirmation, err := checkout.Submit(ctx)
	if err != nil {
		if domain.IsStockConflict(err) {
			log.Fatal().Err(err).Msg("purchase rejected: stock was consumed first; adjust the cart and retry")
		}
		log.Fatal().Err(err).Msg("purchase failed")
	}

	log.Info().Str("id", purchase.ID).Str("total", purchase.Total.String()).Msg("purchase confirmed")
	<-confirmation.Done()
	log.Info().Msg("confirmation dismissed")
}
