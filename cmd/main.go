package main

import (
	"careconnect/cache"
	"careconnect/config"
	"careconnect/database"
	"careconnect/routes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	// Load configuration from config package
	config, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize the database
	db, err := database.InitDB(context.Background(), config.DBURL)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Initialize Redis
	if err := database.InitializeRedis(config.RedisAddress); err != nil {
		log.Fatalf("failed to initialize Redis client: %v", err)
	}

	// Initialize the cache utility
	cache, err := cache.NewCache()
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}

	// Pass the config to SetupRoutes
	handler, err := routes.SetupRoutes(cache, config, db)
	if err != nil {
		log.Fatalf("failed to set up routes: %v", err)
	}

	// Configure and start the server
	srv := &http.Server{
		Addr:           ":8930",
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   90 * time.Second, // lab report parsing can be slow
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Println("Starting server on :8930")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	// Create a context with a timeout for shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait() // Wait for all goroutines to finish before exiting
	log.Println("Server exited gracefully")
}

// loadConfig loads configuration from environment variables.
func loadConfig() (*config.AppConfig, error) {
	required := func(name string) (string, error) {
		value := os.Getenv(name)
		if value == "" {
			return "", fmt.Errorf("missing %s environment variable", name)
		}
		return value, nil
	}

	dbURL, err := required("DB_URL")
	if err != nil {
		return nil, err
	}
	redisAddress, err := required("REDIS_URL")
	if err != nil {
		return nil, err
	}
	bearerToken, err := required("BEARER_TOKEN")
	if err != nil {
		return nil, err
	}
	razorpayKeyID, err := required("RAZORPAY_KEY_ID")
	if err != nil {
		return nil, err
	}
	razorpayKeySecret, err := required("RAZORPAY_KEY_SECRET")
	if err != nil {
		return nil, err
	}
	pusherAppID, err := required("PUSHER_APP_ID")
	if err != nil {
		return nil, err
	}
	pusherKey, err := required("PUSHER_KEY")
	if err != nil {
		return nil, err
	}
	pusherSecret, err := required("PUSHER_SECRET")
	if err != nil {
		return nil, err
	}
	pusherCluster, err := required("PUSHER_CLUSTER")
	if err != nil {
		return nil, err
	}
	labParserURL, err := required("LAB_PARSER_URL")
	if err != nil {
		return nil, err
	}

	healthQuestions := os.Getenv("HEALTH_QUESTIONS_PATH")
	if healthQuestions == "" {
		healthQuestions = "configs/health_questions.json"
	}

	return &config.AppConfig{
		DBURL:             dbURL,
		RedisAddress:      redisAddress,
		BearerToken:       bearerToken,
		RazorpayKeyID:     razorpayKeyID,
		RazorpayKeySecret: razorpayKeySecret,
		PusherAppID:       pusherAppID,
		PusherKey:         pusherKey,
		PusherSecret:      pusherSecret,
		PusherCluster:     pusherCluster,
		LabParserURL:      labParserURL,
		HealthQuestions:   healthQuestions,
	}, nil
}
