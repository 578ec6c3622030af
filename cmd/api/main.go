package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"khmer-shop-backend/internal/client"
	"khmer-shop-backend/internal/config"
	"khmer-shop-backend/internal/ordercode"
	"khmer-shop-backend/internal/repository"
	"khmer-shop-backend/internal/server"
	"khmer-shop-backend/internal/service"
	"khmer-shop-backend/internal/storage"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitDB(cfg.DatabaseURL)

	evidence, err := storage.NewLocalStore(cfg.Evidence.Dir)
	if err != nil {
		log.Fatal(err)
	}

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	proofRepo := repository.NewProofRepository(db)

	codeGen := ordercode.New(cfg.Checkout.CodePrefix, cfg.Checkout.CodeLength)

	catalogService := service.NewCatalogService(categoryRepo, productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(db, codeGen, cfg.Checkout.CodeAttempts, cartRepo, productRepo, orderRepo)
	proofService := service.NewProofService(db, evidence, orderRepo, proofRepo)

	srv := server.NewServer(cfg, catalogService, cartService, orderService, proofService)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
