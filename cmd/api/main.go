package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docnotify-api/internal/config"
	"github.com/docnotify-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/docnotify-api/internal/infrastructure/jwt"
	"github.com/docnotify-api/internal/infrastructure/sns"
	transporthttp "github.com/docnotify-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if the public key is missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// SNS publisher (optional — graceful fallback).
	var publisher sns.Publisher
	if p, err := sns.NewPublisher(cfg); err == nil {
		publisher = p
	} else {
		log.Printf("WARN: SNS publisher not available: %v", err)
	}

	deps := &transporthttp.Deps{
		SubscriptionRepo: dynamo.NewSubscriptionRepo(dynamoClient, cfg.DynamoTables.Subscriptions, cfg.DynamoTables.SubscriptionKeys),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		DocumentRepo:     dynamo.NewDocumentRepo(dynamoClient, cfg.DynamoTables.Documents),
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		EventRepo:        dynamo.NewEventRepo(cfg.DynamoTables.Events),
		Runner:           dynamo.NewRunner(dynamoClient),
		Publisher:        publisher,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
