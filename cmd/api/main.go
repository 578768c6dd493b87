package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tavernkeep/npc-engine/internal/config"
	"github.com/tavernkeep/npc-engine/internal/handlers"
	"github.com/tavernkeep/npc-engine/internal/logger"
	"github.com/tavernkeep/npc-engine/internal/middleware"
	"github.com/tavernkeep/npc-engine/internal/services"
	"github.com/tavernkeep/npc-engine/internal/storage"
	"github.com/tavernkeep/npc-engine/pkg/npc"
	"github.com/tavernkeep/npc-engine/pkg/tavern"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting NPC Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"model_name", cfg.ModelName)

	llmService := services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	initCtx, initCancel := context.WithTimeout(context.Background(), time.Minute)
	defer initCancel()
	if err := llmService.InitModel(initCtx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	// The ejection callback persists the ban and the closed conversation
	// once the delayed terminal sequence runs.
	engine := tavern.NewEngine(llmService, log).
		WithEjectFunc(func(conv *tavern.Conversation, c *npc.Character, phrase string) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := store.SaveConversation(ctx, conv); err != nil {
				log.Error("Failed to persist closed conversation", "conversation_id", conv.ID, "error", err)
			}
			if err := store.SaveRelationship(ctx, c.ID, cfg.PlayerID, c.Relationship); err != nil {
				log.Error("Failed to persist ban", "npc_id", c.ID, "error", err)
			}
			if c.Map != "" && c.Location != "" {
				if err := store.BanFromTavern(ctx, cfg.PlayerID, c.Map, c.Location); err != nil {
					log.Error("Failed to record tavern ban", "npc_id", c.ID, "error", err)
				}
			}
			log.Info("Player ejected from tavern", "npc_id", c.ID, "phrase", phrase)
		})

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	chatHandler := handlers.NewChatHandler(engine, store, cfg.PlayerID, log)
	mux.Handle("/v1/chat", chatHandler)

	conversationHandler := handlers.NewConversationHandler(store, cfg.PlayerID, log)
	mux.Handle("/v1/conversations", conversationHandler)
	mux.Handle("/v1/conversations/", conversationHandler)

	characterHandler := handlers.NewCharacterHandler(store, log)
	mux.Handle("/v1/npcs", characterHandler)
	mux.Handle("/v1/npcs/", characterHandler)
	mux.Handle("/v1/taverns/", characterHandler)

	relationshipHandler := handlers.NewRelationshipHandler(store, cfg.PlayerID, log)
	mux.Handle("/v1/relationships/", relationshipHandler)

	handler := middleware.Logger(mux)
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
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
