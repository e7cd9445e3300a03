package server

import (
	auction "auction-board/internal/auctionService"
	handler "auction-board/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService *auction.AuctionService) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionService)

	users := router.Group("/users")
	{
		users.POST("", auctionHandler.RegisterUserHandler)
		users.GET("/:user_id/watchlist", auctionHandler.GetWatchlistHandler)
	}

	router.GET("/categories", auctionHandler.ListCategoriesHandler)

	listings := router.Group("/listings")
	{
		listings.POST("", auctionHandler.CreateListingHandler)
		listings.GET("", auctionHandler.ListActiveListingsHandler)
		listings.GET("/:listing_id", auctionHandler.GetListingHandler)
		listings.GET("/:listing_id/bids", auctionHandler.GetBidsByListingHandler)
		listings.POST("/:listing_id/close", auctionHandler.CloseAuctionHandler)
		listings.POST("/:listing_id/comments", auctionHandler.AddCommentHandler)
		listings.GET("/:listing_id/comments", auctionHandler.GetCommentsHandler)
		listings.POST("/:listing_id/watch", auctionHandler.AddWatchHandler)
		listings.DELETE("/:listing_id/watch", auctionHandler.RemoveWatchHandler)
	}

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
	}

	return router
}
