package helpers

// Request DTOs. Amounts travel as strings and are parsed into fixed-point
// decimals by ParseAmount; actor identity is always an explicit field.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

type CreateListingRequest struct {
	OwnerID     string `json:"owner_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"image_url" binding:"required"`
	StartingBid string `json:"starting_bid" binding:"required"`
	CategoryID  string `json:"category_id"`
}

type PlaceBidRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
	BidderID  string `json:"bidder_id" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

type CloseAuctionRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
}

type AddCommentRequest struct {
	AuthorID string `json:"author_id" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

type WatchRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// Response DTOs
type UserResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ListingResponse struct {
	ListingID    string `json:"listing_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	OwnerID      string `json:"owner_id"`
	CategoryID   string `json:"category_id,omitempty"`
	CurrentBidID string `json:"current_bid_id"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

type ListingDetailResponse struct {
	Listing    ListingResponse `json:"listing"`
	CurrentBid BidResponse     `json:"current_bid"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	ListingID string `json:"listing_id"`
	BidderID  string `json:"bidder_id"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type CommentResponse struct {
	CommentID string `json:"comment_id"`
	ListingID string `json:"listing_id"`
	AuthorID  string `json:"author_id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}
