package main

import (
	"fmt"
	"log"

	"sanyascan/internal/config"
	"sanyascan/internal/gateway"
	"sanyascan/internal/gateway/gemini"
	"sanyascan/internal/gateway/openai"
	"sanyascan/internal/handler"
	"sanyascan/internal/port"
	"sanyascan/internal/router"
	"sanyascan/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Register gateway providers
	gateway.RegisterProvider("gemini", func(c *config.GatewayConfig) (port.ModelGateway, error) {
		return gemini.NewGateway(c), nil
	})
	gateway.RegisterProvider("openai", func(c *config.GatewayConfig) (port.ModelGateway, error) {
		return openai.NewGateway(c), nil
	})

	gw, err := gateway.NewGateway(&cfg.Gateway)
	if err != nil {
		return fmt.Errorf("failed to initialize model gateway: %w", err)
	}

	// Initialize services
	analysisSvc := service.NewAnalysisService(gw, &cfg.Gateway, &cfg.Analysis)

	// Initialize handlers
	analyzeH := handler.NewAnalyzeHandler(analysisSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, analyzeH, healthH)

	log.Printf("Server starting on %s (gateway provider: %s, model: %s)",
		cfg.Server.Port, cfg.Gateway.Provider, cfg.Gateway.DefaultModel)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
