package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/genai"

	"videocreativegen/config"
	"videocreativegen/handlers"
	"videocreativegen/services"
	"videocreativegen/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded: %s", cfg.String())

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open response store: %v", err)
	}

	pipeline := services.NewPipeline(cfg, client)
	scorer := services.NewScoringService(client, cfg.ScoringModel)
	videoHandler := handlers.NewVideoHandler(cfg, pipeline, scorer, store)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/score-video", videoHandler.ScoreVideo)
	router.GET("/score-video/:identifier", videoHandler.GetScoredVideo)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
