package main

import (
	"context"
	"log"

	"github.com/helmandshop/shop-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("shop API failed: %v", err)
	}
}
