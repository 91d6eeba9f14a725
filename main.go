package main

import (
	"log"

	"github.com/awais7012/lms-2/internal/bootstrap"
	"github.com/awais7012/lms-2/internal/config"
)

func main() {
	cfg := config.Load()

	if err := bootstrap.Run(cfg); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}
