package main

import (
	"log"

	"github.com/MrSnakeDoc/clippings/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ clippingsd failed to initialize: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ clippingsd failed to start: %v", err)
	}
}
