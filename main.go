package main

import (
	"fmt"
	"os"

	auction "auction-board/internal/auctionService"
	"auction-board/internal/config"
	model "auction-board/internal/models"
	"auction-board/internal/repository"
	"auction-board/internal/server"
	"auction-board/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	utils.SetLogLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	store := repository.NewMemoryStore()

	seedCategories(store)

	auctionSvc := auction.NewAuctionService(store)

	router := server.SetupRouter(auctionSvc)

	addr := ":" + cfg.Port
	fmt.Printf("Starting auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// seedCategories adds the fixed category catalog to the in-memory store
func seedCategories(store *repository.MemoryStore) {
	categories := []model.Category{
		{CategoryID: "electronics", Name: "Electronics"},
		{CategoryID: "fashion", Name: "Fashion"},
		{CategoryID: "home", Name: "Home"},
		{CategoryID: "toys", Name: "Toys"},
	}

	for _, category := range categories {
		if err := store.AddCategory(category); err != nil {
			utils.Fatal("failed to seed category", map[string]any{"category": category.Name, "error": err.Error()})
		}
	}
}
