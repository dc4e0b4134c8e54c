package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hollowbrook/village-echoes/internal/config"
	"github.com/hollowbrook/village-echoes/internal/engine"
	"github.com/hollowbrook/village-echoes/internal/handlers"
	"github.com/hollowbrook/village-echoes/internal/logger"
	"github.com/hollowbrook/village-echoes/internal/middleware"
	"github.com/hollowbrook/village-echoes/internal/registry"
	"github.com/hollowbrook/village-echoes/internal/services"
	"github.com/hollowbrook/village-echoes/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Village Echoes API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"oracle_provider", cfg.OracleProvider,
		"model_name", cfg.ModelName)

	var oracle services.NarrativeOracle
	switch strings.ToLower(cfg.OracleProvider) {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Error("Gemini API key is required when using gemini provider")
			os.Exit(1)
		}
		oracle = services.NewGeminiService(cfg.GeminiAPIKey, cfg.ModelName, log)
		log.Info("Using Gemini narrative oracle")
	case "mock":
		oracle = services.NewMockOracle()
		log.Warn("Using mock narrative oracle; dialogue will be canned")
	default:
		log.Error("Invalid oracle provider specified", "provider", cfg.OracleProvider, "supported", []string{"gemini", "mock"})
		os.Exit(1)
	}

	store := storage.NewRedisRecordStore(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to record store", "error", err)
		os.Exit(1)
	}
	log.Info("Record store connection established")

	var settlement services.SettlementService
	if cfg.SettlementURL != "" {
		settlement = services.NewOneChainService(cfg.SettlementURL, cfg.SettlementPackageID, cfg.SettlementTreasuryID, log)
		log.Info("Settlement enabled", "url", cfg.SettlementURL)
	} else {
		log.Info("Settlement disabled; completions are recorded without on-chain claims")
	}

	reg := registry.New(log)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	eng := engine.New(oracle, rng, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, reg, log)
	mux.Handle("/health", healthHandler)

	gameHandler := handlers.NewGameHandler(eng, reg, cfg.NumVillagers, cfg.InaccessibleDefault, log)
	mux.Handle("/v1/games", gameHandler)
	mux.Handle("/v1/games/", gameHandler)

	rewardHandler := handlers.NewRewardHandler(store, settlement, log)
	mux.Handle("/v1/rewards/", rewardHandler)

	leaderboardHandler := handlers.NewLeaderboardHandler(store, log)
	mux.Handle("/v1/leaderboard", leaderboardHandler)

	handler := middleware.Logger(middleware.CORS(mux))
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing record store", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
