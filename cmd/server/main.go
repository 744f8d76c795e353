package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/adapters/web"
	"github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/app"
	"github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/core"
	"github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	orders := core.NewOrderService(pool)
	clients := core.NewClientService(pool)
	items := core.NewItemService(pool)
	svc := app.NewAppService(orders, clients, items)

	handler := web.NewHandler(svc, os.Getenv("CORS_ALLOWED_ORIGINS"))

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Sales order API listening on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
