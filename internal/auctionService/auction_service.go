package auction

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"auction-board/internal/auctionerrors"
	"auction-board/internal/models"
	"auction-board/internal/repository"
	"auction-board/utils"

	"github.com/shopspring/decimal"
)

// AuctionService implements the auction engine: bid acceptance, the listing
// lifecycle and watch-list maintenance. All cross-entity invariants are
// enforced here, never in the stores.
type AuctionService struct {
	store repository.Store
	locks sync.Map // listingID -> *sync.Mutex
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store repository.Store) *AuctionService {
	return &AuctionService{
		store: store,
	}
}

// CreateListingInput carries the validated fields for a new listing. The
// caller's identity is an explicit field; there is no ambient current user.
type CreateListingInput struct {
	OwnerID     string
	Title       string
	Description string
	ImageURL    string
	StartingBid decimal.Decimal
	CategoryID  string // optional, empty means uncategorized
}

// listingLock returns the mutex serializing writes for one listing. Every
// read-compare-write sequence must run under it so two concurrent higher bids
// cannot both pass the comparison against a stale current amount.
func (s *AuctionService) listingLock(listingID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(listingID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// RegisterUser creates an account with a unique username
func (s *AuctionService) RegisterUser(username, email string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return models.User{}, fmt.Errorf("service: %w - missing username or email", auctionerrors.ErrValidation)
	}

	user := models.User{
		UserID:   utils.GenerateID(),
		Username: username,
		Email:    email,
	}
	if err := s.store.CreateUser(user); err != nil {
		return models.User{}, fmt.Errorf("service: failed to register user %s: %w", username, err)
	}
	return user, nil
}

// CreateListing validates the input, records the seed bid (bidder = owner) and
// creates the listing pointing at it, active.
func (s *AuctionService) CreateListing(input CreateListingInput) (models.AuctionListing, error) {
	if err := s.validateListingInput(&input); err != nil {
		return models.AuctionListing{}, err
	}

	if _, err := s.store.GetUser(input.OwnerID); err != nil {
		return models.AuctionListing{}, fmt.Errorf("service: failed to resolve owner %s: %w", input.OwnerID, err)
	}
	if input.CategoryID != "" {
		if _, err := s.store.GetCategory(input.CategoryID); err != nil {
			return models.AuctionListing{}, fmt.Errorf("service: failed to resolve category %s: %w", input.CategoryID, err)
		}
	}

	now := time.Now().UTC()
	listing := models.AuctionListing{
		ListingID:   utils.GenerateID(),
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		OwnerID:     input.OwnerID,
		CategoryID:  input.CategoryID,
		IsActive:    true,
		CreatedAt:   now,
	}

	lock := s.listingLock(listing.ListingID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.CreateListing(listing); err != nil {
		return models.AuctionListing{}, fmt.Errorf("service: failed to create listing: %w", err)
	}

	// The seed bid makes the starting price the floor for the first real bid.
	seed := models.Bid{
		BidID:     utils.GenerateID(),
		ListingID: listing.ListingID,
		BidderID:  input.OwnerID,
		Amount:    input.StartingBid,
		CreatedAt: now,
	}
	if err := s.store.AppendBid(seed); err != nil {
		return models.AuctionListing{}, fmt.Errorf("service: failed to record seed bid: %w", err)
	}

	listing.CurrentBidID = seed.BidID
	if err := s.store.UpdateListing(listing); err != nil {
		return models.AuctionListing{}, fmt.Errorf("service: failed to set seed bid on listing %s: %w", listing.ListingID, err)
	}
	return listing, nil
}

func (s *AuctionService) validateListingInput(input *CreateListingInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.ImageURL = strings.TrimSpace(input.ImageURL)

	if input.OwnerID == "" {
		return fmt.Errorf("service: %w - missing owner", auctionerrors.ErrValidation)
	}
	if input.Title == "" || input.Description == "" || input.ImageURL == "" {
		return fmt.Errorf("service: %w - title, description and image_url are required", auctionerrors.ErrValidation)
	}
	if input.StartingBid.IsNegative() {
		return fmt.Errorf("service: %w - starting bid must be non-negative", auctionerrors.ErrValidation)
	}
	return nil
}

// PlaceBid accepts a bid iff the listing is active and the amount strictly
// exceeds the current bid. On acceptance the bid is appended to the ledger and
// the listing's current-bid pointer moves to it, atomically per listing. On
// rejection nothing is mutated.
func (s *AuctionService) PlaceBid(listingID, bidderID string, amount decimal.Decimal) (models.Bid, error) {
	if listingID == "" || bidderID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing listingID or bidderID", auctionerrors.ErrValidation)
	}

	lock := s.listingLock(listingID)
	lock.Lock()
	defer lock.Unlock()

	listing, err := s.store.GetListing(listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to resolve listing %s: %w", listingID, err)
	}
	if !listing.IsActive {
		return models.Bid{}, fmt.Errorf("service: %w - listing %s no longer accepts bids", auctionerrors.ErrListingClosed, listingID)
	}
	if _, err := s.store.GetUser(bidderID); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to resolve bidder %s: %w", bidderID, err)
	}

	current, err := s.store.GetBid(listing.CurrentBidID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to resolve current bid for listing %s: %w", listingID, err)
	}
	if !amount.GreaterThan(current.Amount) {
		return models.Bid{}, fmt.Errorf("service: %w - current bid is %s", auctionerrors.ErrBidTooLow, current.Amount.String())
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.AppendBid(bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for listing %s by user %s: %w", listingID, bidderID, err)
	}

	listing.CurrentBidID = bid.BidID
	if err := s.store.UpdateListing(listing); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to move current bid on listing %s: %w", listingID, err)
	}
	return bid, nil
}

// CloseAuction deactivates a listing and purges it from every watcher's list.
// Only the owner may close. The transition is terminal; closing an already
// closed listing as the owner is an accepted no-op.
func (s *AuctionService) CloseAuction(listingID, actorID string) (models.AuctionListing, error) {
	if listingID == "" || actorID == "" {
		return models.AuctionListing{}, fmt.Errorf("service: %w - missing listingID or actorID", auctionerrors.ErrValidation)
	}

	lock := s.listingLock(listingID)
	lock.Lock()
	defer lock.Unlock()

	listing, err := s.store.GetListing(listingID)
	if err != nil {
		return models.AuctionListing{}, fmt.Errorf("service: failed to resolve listing %s: %w", listingID, err)
	}
	if listing.OwnerID != actorID {
		return models.AuctionListing{}, fmt.Errorf("service: %w - user %s does not own listing %s", auctionerrors.ErrNotOwner, actorID, listingID)
	}

	if err := s.store.ClearWatchers(listingID); err != nil {
		return models.AuctionListing{}, fmt.Errorf("service: failed to clear watchers for listing %s: %w", listingID, err)
	}
	if listing.IsActive {
		listing.IsActive = false
		if err := s.store.UpdateListing(listing); err != nil {
			return models.AuctionListing{}, fmt.Errorf("service: failed to close listing %s: %w", listingID, err)
		}
	}
	return listing, nil
}

// AddComment records a comment on a listing. Any registered user may comment;
// only empty text is rejected.
func (s *AuctionService) AddComment(listingID, authorID, text string) (models.Comment, error) {
	if listingID == "" || authorID == "" {
		return models.Comment{}, fmt.Errorf("service: %w - missing listingID or authorID", auctionerrors.ErrValidation)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, fmt.Errorf("service: %w - comment text is required", auctionerrors.ErrValidation)
	}

	if _, err := s.store.GetListing(listingID); err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to resolve listing %s: %w", listingID, err)
	}
	if _, err := s.store.GetUser(authorID); err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to resolve author %s: %w", authorID, err)
	}

	comment := models.Comment{
		CommentID: utils.GenerateID(),
		ListingID: listingID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.AddComment(comment); err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to add comment on listing %s: %w", listingID, err)
	}
	return comment, nil
}

// AddToWatchlist subscribes a user to a listing. Watching an already-watched
// listing is a no-op. Closed listings cannot be watched: they must never
// appear in any watchlist.
func (s *AuctionService) AddToWatchlist(listingID, userID string) error {
	if listingID == "" || userID == "" {
		return fmt.Errorf("service: %w - missing listingID or userID", auctionerrors.ErrValidation)
	}

	lock := s.listingLock(listingID)
	lock.Lock()
	defer lock.Unlock()

	listing, err := s.store.GetListing(listingID)
	if err != nil {
		return fmt.Errorf("service: failed to resolve listing %s: %w", listingID, err)
	}
	if !listing.IsActive {
		return fmt.Errorf("service: %w - listing %s cannot be watched", auctionerrors.ErrListingClosed, listingID)
	}
	if _, err := s.store.GetUser(userID); err != nil {
		return fmt.Errorf("service: failed to resolve user %s: %w", userID, err)
	}

	if err := s.store.AddWatch(listingID, userID); err != nil {
		return fmt.Errorf("service: failed to add watch on listing %s: %w", listingID, err)
	}
	return nil
}

// RemoveFromWatchlist unsubscribes a user from a listing. Removing a watch
// that does not exist succeeds without error.
func (s *AuctionService) RemoveFromWatchlist(listingID, userID string) error {
	if listingID == "" || userID == "" {
		return fmt.Errorf("service: %w - missing listingID or userID", auctionerrors.ErrValidation)
	}

	lock := s.listingLock(listingID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.store.GetListing(listingID); err != nil {
		return fmt.Errorf("service: failed to resolve listing %s: %w", listingID, err)
	}
	if err := s.store.RemoveWatch(listingID, userID); err != nil {
		return fmt.Errorf("service: failed to remove watch on listing %s: %w", listingID, err)
	}
	return nil
}

// GetListing returns a listing by ID
func (s *AuctionService) GetListing(listingID string) (models.AuctionListing, error) {
	if listingID == "" {
		return models.AuctionListing{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrValidation)
	}
	listing, err := s.store.GetListing(listingID)
	if err != nil {
		return models.AuctionListing{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	return listing, nil
}

// GetCurrentBid returns the highest accepted bid for a listing
func (s *AuctionService) GetCurrentBid(listingID string) (models.Bid, error) {
	if listingID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrValidation)
	}
	listing, err := s.store.GetListing(listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	bid, err := s.store.GetBid(listing.CurrentBidID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get current bid for listing %s: %w", listingID, err)
	}
	return bid, nil
}

// ListActiveListings returns active listings in creation order, optionally
// filtered by category
func (s *AuctionService) ListActiveListings(categoryID string) ([]models.AuctionListing, error) {
	if categoryID != "" {
		if _, err := s.store.GetCategory(categoryID); err != nil {
			return nil, fmt.Errorf("service: failed to resolve category %s: %w", categoryID, err)
		}
	}
	listings, err := s.store.ListActiveListings(categoryID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list active listings: %w", err)
	}
	return listings, nil
}

// GetBidsForListing returns the full bid history for a listing
func (s *AuctionService) GetBidsForListing(listingID string) ([]models.Bid, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrValidation)
	}
	bids, err := s.store.GetBidsByListing(listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}
	return bids, nil
}

// GetCommentsForListing returns all comments on a listing
func (s *AuctionService) GetCommentsForListing(listingID string) ([]models.Comment, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrValidation)
	}
	comments, err := s.store.GetCommentsByListing(listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get comments for listing %s: %w", listingID, err)
	}
	return comments, nil
}

// GetWatchlist returns every listing the user currently watches
func (s *AuctionService) GetWatchlist(userID string) ([]models.AuctionListing, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrValidation)
	}
	if _, err := s.store.GetUser(userID); err != nil {
		return nil, fmt.Errorf("service: failed to resolve user %s: %w", userID, err)
	}

	ids, err := s.store.GetWatchedListingIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get watchlist for user %s: %w", userID, err)
	}
	listings := make([]models.AuctionListing, 0, len(ids))
	for _, id := range ids {
		listing, err := s.store.GetListing(id)
		if err != nil {
			return nil, fmt.Errorf("service: failed to resolve watched listing %s: %w", id, err)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// ListCategories returns the category catalog
func (s *AuctionService) ListCategories() ([]models.Category, error) {
	categories, err := s.store.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}
