package repository

import (
	"fmt"
	"sync"

	"auction-board/internal/auctionerrors"
	model "auction-board/internal/models"
)

// ListingStore owns AuctionListing records and their current-bid pointer
type ListingStore interface {
	CreateListing(listing model.AuctionListing) error
	GetListing(listingID string) (model.AuctionListing, error)
	UpdateListing(listing model.AuctionListing) error
	ListActiveListings(categoryID string) ([]model.AuctionListing, error)
}

// BidLedger is the append-only record of bids; entries are never mutated
type BidLedger interface {
	AppendBid(bid model.Bid) error
	GetBid(bidID string) (model.Bid, error)
	GetBidsByListing(listingID string) ([]model.Bid, error)
}

// CommentStore holds the append-only comments attached to listings
type CommentStore interface {
	AddComment(comment model.Comment) error
	GetCommentsByListing(listingID string) ([]model.Comment, error)
}

// WatchStore is the sole authority on (user, listing) watch relations.
// ClearWatchers removes every relation for a listing as one bulk operation.
type WatchStore interface {
	AddWatch(listingID, userID string) error
	RemoveWatch(listingID, userID string) error
	IsWatching(listingID, userID string) (bool, error)
	ClearWatchers(listingID string) error
	GetWatchedListingIDs(userID string) ([]string, error)
}

// UserStore holds registered accounts; usernames are unique
type UserStore interface {
	CreateUser(user model.User) error
	GetUser(userID string) (model.User, error)
}

// CategoryStore holds the read-mostly category catalog
type CategoryStore interface {
	AddCategory(category model.Category) error
	GetCategory(categoryID string) (model.Category, error)
	ListCategories() ([]model.Category, error)
}

// Store combines every storage concern the auction engine depends on.
// Stores enforce no cross-entity invariants; those belong to the engine.
type Store interface {
	ListingStore
	BidLedger
	CommentStore
	WatchStore
	UserStore
	CategoryStore
}

// MemoryStore is a concurrency-safe in-memory implementation of Store
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[string]model.User
	usernames   map[string]string // username -> userID
	categories  map[string]model.Category
	categoryIDs []string // insertion order
	listings    map[string]model.AuctionListing
	listingIDs  []string // creation order
	bids        map[string]model.Bid
	listingBids map[string][]string              // listingID -> bid IDs in append order
	comments    map[string][]model.Comment       // listingID -> comments in creation order
	watchers    map[string]map[string]struct{}   // listingID -> watching user IDs
	userWatches map[string]map[string]struct{}   // userID -> watched listing IDs
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[string]model.User),
		usernames:   make(map[string]string),
		categories:  make(map[string]model.Category),
		listings:    make(map[string]model.AuctionListing),
		bids:        make(map[string]model.Bid),
		listingBids: make(map[string][]string),
		comments:    make(map[string][]model.Comment),
		watchers:    make(map[string]map[string]struct{}),
		userWatches: make(map[string]map[string]struct{}),
	}
}

// CreateUser stores a new account; the username must be unused
func (s *MemoryStore) CreateUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[user.Username]; taken {
		return fmt.Errorf("create user %s: %w", user.Username, auctionerrors.ErrUsernameTaken)
	}
	s.users[user.UserID] = user
	s.usernames[user.Username] = user.UserID
	return nil
}

// GetUser returns the account for userID
func (s *MemoryStore) GetUser(userID string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// AddCategory stores a category label
func (s *MemoryStore) AddCategory(category model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.categories[category.CategoryID]; !exists {
		s.categoryIDs = append(s.categoryIDs, category.CategoryID)
	}
	s.categories[category.CategoryID] = category
	return nil
}

// GetCategory returns the category for categoryID
func (s *MemoryStore) GetCategory(categoryID string) (model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[categoryID]
	if !ok {
		return model.Category{}, fmt.Errorf("get category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}
	return category, nil
}

// ListCategories returns all categories in insertion order
func (s *MemoryStore) ListCategories() ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]model.Category, 0, len(s.categoryIDs))
	for _, id := range s.categoryIDs {
		categories = append(categories, s.categories[id])
	}
	return categories, nil
}

// CreateListing stores a new listing record
func (s *MemoryStore) CreateListing(listing model.AuctionListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.listings[listing.ListingID]; !exists {
		s.listingIDs = append(s.listingIDs, listing.ListingID)
	}
	s.listings[listing.ListingID] = listing
	return nil
}

// GetListing returns the listing for listingID
func (s *MemoryStore) GetListing(listingID string) (model.AuctionListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[listingID]
	if !ok {
		return model.AuctionListing{}, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return listing, nil
}

// UpdateListing replaces an existing listing record
func (s *MemoryStore) UpdateListing(listing model.AuctionListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listing.ListingID]; !ok {
		return fmt.Errorf("update listing %s: %w", listing.ListingID, auctionerrors.ErrListingNotFound)
	}
	s.listings[listing.ListingID] = listing
	return nil
}

// ListActiveListings returns active listings in creation order, optionally
// filtered by category. An empty categoryID means no filter.
func (s *MemoryStore) ListActiveListings(categoryID string) ([]model.AuctionListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := make([]model.AuctionListing, 0)
	for _, id := range s.listingIDs {
		listing := s.listings[id]
		if !listing.IsActive {
			continue
		}
		if categoryID != "" && listing.CategoryID != categoryID {
			continue
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// AppendBid records a bid against an existing listing
func (s *MemoryStore) AppendBid(bid model.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[bid.ListingID]; !ok {
		return fmt.Errorf("append bid for listing %s: %w", bid.ListingID, auctionerrors.ErrListingNotFound)
	}
	s.bids[bid.BidID] = bid
	s.listingBids[bid.ListingID] = append(s.listingBids[bid.ListingID], bid.BidID)
	return nil
}

// GetBid returns a ledger entry by its ID
func (s *MemoryStore) GetBid(bidID string) (model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bid, ok := s.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}
	return bid, nil
}

// GetBidsByListing returns all bids for a listing in append order
func (s *MemoryStore) GetBidsByListing(listingID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.listings[listingID]; !ok {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	ids := s.listingBids[listingID]
	bids := make([]model.Bid, 0, len(ids))
	for _, id := range ids {
		bids = append(bids, s.bids[id])
	}
	return bids, nil
}

// AddComment records a comment against an existing listing
func (s *MemoryStore) AddComment(comment model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[comment.ListingID]; !ok {
		return fmt.Errorf("add comment for listing %s: %w", comment.ListingID, auctionerrors.ErrListingNotFound)
	}
	s.comments[comment.ListingID] = append(s.comments[comment.ListingID], comment)
	return nil
}

// GetCommentsByListing returns all comments for a listing in creation order
func (s *MemoryStore) GetCommentsByListing(listingID string) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.listings[listingID]; !ok {
		return nil, fmt.Errorf("get comments for listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return append([]model.Comment(nil), s.comments[listingID]...), nil
}

// AddWatch records a (user, listing) watch relation; adding an existing
// relation is a no-op
func (s *MemoryStore) AddWatch(listingID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listingID]; !ok {
		return fmt.Errorf("add watch for listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	if s.watchers[listingID] == nil {
		s.watchers[listingID] = make(map[string]struct{})
	}
	if s.userWatches[userID] == nil {
		s.userWatches[userID] = make(map[string]struct{})
	}
	s.watchers[listingID][userID] = struct{}{}
	s.userWatches[userID][listingID] = struct{}{}
	return nil
}

// RemoveWatch deletes a watch relation; removing a missing one is a no-op
func (s *MemoryStore) RemoveWatch(listingID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.watchers[listingID], userID)
	delete(s.userWatches[userID], listingID)
	return nil
}

// IsWatching reports whether the watch relation exists
func (s *MemoryStore) IsWatching(listingID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, watching := s.watchers[listingID][userID]
	return watching, nil
}

// ClearWatchers removes every watch relation for a listing in one bulk
// operation under a single lock; no intermediate state is observable.
func (s *MemoryStore) ClearWatchers(listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID := range s.watchers[listingID] {
		delete(s.userWatches[userID], listingID)
	}
	delete(s.watchers, listingID)
	return nil
}

// GetWatchedListingIDs returns the IDs of every listing the user watches
func (s *MemoryStore) GetWatchedListingIDs(userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.userWatches[userID]))
	for _, listingID := range s.listingIDs {
		if _, ok := s.userWatches[userID][listingID]; ok {
			ids = append(ids, listingID)
		}
	}
	return ids, nil
}
