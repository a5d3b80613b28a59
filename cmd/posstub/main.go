package main

import (
	"context"
	"log"

	"github.com/whitesvil1-lab/JustCani/internal/app"
	"github.com/whitesvil1-lab/JustCani/internal/config"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	application, err := app.BuildStub(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build posstub: %v", err)
	}

	// Run блокируется до SIGINT/SIGTERM
	if err := application.Run(ctx); err != nil {
		log.Fatalf("posstub error: %v", err)
	}
}
