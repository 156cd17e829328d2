package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"tastehaven/config"
	httpapi "tastehaven/internal/api/http"
	"tastehaven/internal/identity"
	"tastehaven/internal/service"
	"tastehaven/internal/storage"
)

func main() {
	config.Load()

	var repo service.SnapshotRepository
	switch config.StorageBackend() {
	case "postgres":
		db := config.MustInitPostgres()
		defer db.Close()
		store := storage.NewPostgresSnapshotStore(db)
		if err := store.EnsureSchema(); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		repo = store
	default:
		rdb := config.MustInitRedis()
		defer rdb.Close()
		repo = storage.NewRedisSnapshotStore(rdb)
	}

	catalog := service.NewCatalogService(repo)
	catalog.Load(context.Background())

	cart := service.NewCartService()

	var publisher service.OrderPublisher
	if config.KafkaBroker() != "" {
		writer := config.NewKafkaWriter("orders")
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	orders := service.NewOrderService(catalog, cart, publisher, &service.DefaultQRGenerator{})

	provider := identity.NewClient(config.IdentityProviderURL(), config.IdentityAPIKey(), nil)
	auth := service.NewAuthService(provider)
	if config.IdentityProviderURL() != "" {
		auth.Init(context.Background())
	} else {
		log.Println("Identity provider not configured, admin login disabled")
	}

	handler := httpapi.NewHandler(catalog, cart, orders, auth)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	addr := ":" + config.HTTPPort()
	log.Println("Storefront service starting on", addr)
	log.Fatal(http.ListenAndServe(addr, cors.Default().Handler(r)))
}
