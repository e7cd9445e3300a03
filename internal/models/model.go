package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered account that can list, bid, comment and watch
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Category is an immutable name label a listing may reference
type Category struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

// AuctionListing represents an item up for auction.
// CurrentBidID points at the highest accepted bid in the ledger and only ever
// moves to a strictly higher amount. IsActive is one-way: once a listing is
// closed it never reopens.
type AuctionListing struct {
	ListingID    string    `json:"listing_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	OwnerID      string    `json:"owner_id"`
	CategoryID   string    `json:"category_id,omitempty"`
	CurrentBidID string    `json:"current_bid_id"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Bid is an immutable ledger entry. Superseded bids stay in the ledger for
// history; only the listing's CurrentBidID decides which one is current.
type Bid struct {
	BidID     string          `json:"bid_id"`
	ListingID string          `json:"listing_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Comment is a user's remark on a listing
type Comment struct {
	CommentID string    `json:"comment_id"`
	ListingID string    `json:"listing_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
