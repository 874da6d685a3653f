package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	cartpostgres "github.com/helmandshop/shop-api/internal/domains/cart/adapters/persistence/postgres"
	platformpostgres "github.com/helmandshop/shop-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot prune carts")
	}

	repo := cartpostgres.NewRepository(db)
	removed, err := repo.PruneStale(ctx, cartMaxAgeFromEnv())
	if err != nil {
		log.Fatalf("failed to prune carts: %v", err)
	}
	log.Printf("cart prune completed, removed %d rows", removed)
}

func cartMaxAgeFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("CART_MAX_AGE_DAYS"))
	if raw == "" {
		return cartpostgres.DefaultCartMaxAge
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return cartpostgres.DefaultCartMaxAge
	}
	return time.Duration(days) * 24 * time.Hour
}
