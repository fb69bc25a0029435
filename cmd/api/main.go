package main

import (
	"log"

	"FinanceAdvisor/internal/advisor"
	"FinanceAdvisor/internal/auth"
	"FinanceAdvisor/internal/config"
	"FinanceAdvisor/internal/handler"
	"FinanceAdvisor/internal/ollama"
	"FinanceAdvisor/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}
	cfg := config.Load()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := storage.InitDB(cfg.DatabasePath); err != nil {
		log.Fatal("main(): ", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret)
	adv := advisor.New(ollama.New(cfg))
	h := handler.New(tokens, adv)

	router := handler.SetupRouter(h, tokens)
	log.Printf("Finance advisor API listening on %s (model %s at %s)", cfg.Addr, cfg.OllamaModel, cfg.OllamaURL)
	log.Fatal(router.Run(cfg.Addr))
}
