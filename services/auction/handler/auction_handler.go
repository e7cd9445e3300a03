package handler

import (
	"net/http"

	auction "auction-board/internal/auctionService"
	model "auction-board/internal/models"
	"auction-board/services/auction/helpers"
	"auction-board/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AuctionServiceInterface is the engine surface the HTTP layer depends on
type AuctionServiceInterface interface {
	RegisterUser(username, email string) (model.User, error)
	CreateListing(input auction.CreateListingInput) (model.AuctionListing, error)
	PlaceBid(listingID, bidderID string, amount decimal.Decimal) (model.Bid, error)
	CloseAuction(listingID, actorID string) (model.AuctionListing, error)
	AddComment(listingID, authorID, text string) (model.Comment, error)
	AddToWatchlist(listingID, userID string) error
	RemoveFromWatchlist(listingID, userID string) error
	GetListing(listingID string) (model.AuctionListing, error)
	GetCurrentBid(listingID string) (model.Bid, error)
	ListActiveListings(categoryID string) ([]model.AuctionListing, error)
	GetBidsForListing(listingID string) ([]model.Bid, error)
	GetCommentsForListing(listingID string) ([]model.Comment, error)
	GetWatchlist(userID string) ([]model.AuctionListing, error)
	ListCategories() ([]model.Category, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// respondError maps a service error to HTTP and logs it once
func respondError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, err, message)
	ctx["error"] = err.Error()
	utils.Warn(handlerName+": "+message, ctx)
}

// RegisterUserHandler handles POST /users
func (h *AuctionHandler) RegisterUserHandler(c *gin.Context) {
	var req helpers.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterUserHandler", err)
		return
	}

	user, err := h.service.RegisterUser(req.Username, req.Email)
	if err != nil {
		respondError(c, "RegisterUserHandler", err, map[string]any{"username": req.Username})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToUserResponse(user), "user registered successfully")
	helpers.LogSuccess("RegisterUserHandler", "user registered successfully", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// ListCategoriesHandler handles GET /categories
func (h *AuctionHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.service.ListCategories()
	if err != nil {
		respondError(c, "ListCategoriesHandler", err, map[string]any{})
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	utils.JSONResponse(c, http.StatusOK, categories, "categories retrieved successfully")
}

// CreateListingHandler handles POST /listings
func (h *AuctionHandler) CreateListingHandler(c *gin.Context) {
	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	startingBid, err := helpers.ParseAmount("starting_bid", req.StartingBid)
	if err != nil {
		respondError(c, "CreateListingHandler", err, map[string]any{"starting_bid": req.StartingBid})
		return
	}

	listing, err := h.service.CreateListing(auction.CreateListingInput{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		StartingBid: startingBid,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(c, "CreateListingHandler", err, map[string]any{"owner_id": req.OwnerID, "title": req.Title})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToListingResponse(listing), "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id": listing.ListingID,
		"owner_id":   listing.OwnerID,
	})
}

// ListActiveListingsHandler handles GET /listings?category=<id>
func (h *AuctionHandler) ListActiveListingsHandler(c *gin.Context) {
	categoryID := c.Query("category")
	listings, err := h.service.ListActiveListings(categoryID)
	if err != nil {
		respondError(c, "ListActiveListingsHandler", err, map[string]any{"category_id": categoryID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToListingResponses(listings), "listings retrieved successfully")
}

// GetListingHandler handles GET /listings/:listing_id
func (h *AuctionHandler) GetListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	listing, err := h.service.GetListing(listingID)
	if err != nil {
		respondError(c, "GetListingHandler", err, map[string]any{"listing_id": listingID})
		return
	}
	currentBid, err := h.service.GetCurrentBid(listingID)
	if err != nil {
		respondError(c, "GetListingHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	resp := helpers.ListingDetailResponse{
		Listing:    helpers.ToListingResponse(listing),
		CurrentBid: helpers.ToBidResponse(currentBid),
	}
	utils.JSONResponse(c, http.StatusOK, resp, "listing retrieved successfully")
}

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	amount, err := helpers.ParseAmount("amount", req.Amount)
	if err != nil {
		respondError(c, "PlaceBidHandler", err, map[string]any{"listing_id": req.ListingID, "amount": req.Amount})
		return
	}

	bid, err := h.service.PlaceBid(req.ListingID, req.BidderID, amount)
	if err != nil {
		respondError(c, "PlaceBidHandler", err, map[string]any{
			"listing_id": req.ListingID,
			"bidder_id":  req.BidderID,
			"amount":     req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.Amount.String(),
	})
}

// GetBidsByListingHandler handles GET /listings/:listing_id/bids
func (h *AuctionHandler) GetBidsByListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bids, err := h.service.GetBidsForListing(listingID)
	if err != nil {
		respondError(c, "GetBidsByListingHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponses(bids), "bids retrieved successfully")
}

// CloseAuctionHandler handles POST /listings/:listing_id/close
func (h *AuctionHandler) CloseAuctionHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	var req helpers.CloseAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CloseAuctionHandler", err)
		return
	}

	listing, err := h.service.CloseAuction(listingID, req.ActorID)
	if err != nil {
		respondError(c, "CloseAuctionHandler", err, map[string]any{"listing_id": listingID, "actor_id": req.ActorID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToListingResponse(listing), "auction closed successfully")
	helpers.LogSuccess("CloseAuctionHandler", "auction closed successfully", map[string]any{
		"listing_id": listing.ListingID,
		"actor_id":   req.ActorID,
	})
}

// AddCommentHandler handles POST /listings/:listing_id/comments
func (h *AuctionHandler) AddCommentHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	var req helpers.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddCommentHandler", err)
		return
	}

	comment, err := h.service.AddComment(listingID, req.AuthorID, req.Text)
	if err != nil {
		respondError(c, "AddCommentHandler", err, map[string]any{"listing_id": listingID, "author_id": req.AuthorID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToCommentResponse(comment), "comment added successfully")
	helpers.LogSuccess("AddCommentHandler", "comment added successfully", map[string]any{
		"comment_id": comment.CommentID,
		"listing_id": comment.ListingID,
	})
}

// GetCommentsHandler handles GET /listings/:listing_id/comments
func (h *AuctionHandler) GetCommentsHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	comments, err := h.service.GetCommentsForListing(listingID)
	if err != nil {
		respondError(c, "GetCommentsHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToCommentResponses(comments), "comments retrieved successfully")
}

// AddWatchHandler handles POST /listings/:listing_id/watch
func (h *AuctionHandler) AddWatchHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	var req helpers.WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddWatchHandler", err)
		return
	}

	if err := h.service.AddToWatchlist(listingID, req.UserID); err != nil {
		respondError(c, "AddWatchHandler", err, map[string]any{"listing_id": listingID, "user_id": req.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "listing added to watchlist")
}

// RemoveWatchHandler handles DELETE /listings/:listing_id/watch
func (h *AuctionHandler) RemoveWatchHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	var req helpers.WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RemoveWatchHandler", err)
		return
	}

	if err := h.service.RemoveFromWatchlist(listingID, req.UserID); err != nil {
		respondError(c, "RemoveWatchHandler", err, map[string]any{"listing_id": listingID, "user_id": req.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "listing removed from watchlist")
}

// GetWatchlistHandler handles GET /users/:user_id/watchlist
func (h *AuctionHandler) GetWatchlistHandler(c *gin.Context) {
	userID := c.Param("user_id")
	listings, err := h.service.GetWatchlist(userID)
	if err != nil {
		respondError(c, "GetWatchlistHandler", err, map[string]any{"user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToListingResponses(listings), "watchlist retrieved successfully")
}
