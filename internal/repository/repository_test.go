package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"auction-board/internal/auctionerrors"
	model "auction-board/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Helper to create a new AuctionListing
func newListing(listingID, ownerID, categoryID string, active bool) model.AuctionListing {
	return model.AuctionListing{
		ListingID:   listingID,
		Title:       fmt.Sprintf("Listing %s", listingID),
		Description: fmt.Sprintf("%s description", listingID),
		ImageURL:    fmt.Sprintf("https://img.example/%s.jpg", listingID),
		OwnerID:     ownerID,
		CategoryID:  categoryID,
		IsActive:    active,
		CreatedAt:   time.Now().UTC(),
	}
}

// Helper to create a new Bid
func newBid(bidID, listingID, bidderID string, amount int64) model.Bid {
	return model.Bid{
		BidID:     bidID,
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    decimal.NewFromInt(amount),
		CreatedAt: time.Now().UTC(),
	}
}

// Test CreateUser
func TestMemoryStore_CreateUser(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.CreateUser(model.User{UserID: "u1", Username: "alice", Email: "alice@example.com"}))

	// Table-driven test cases
	tests := []struct {
		name      string
		user      model.User
		wantError error
	}{
		{name: "new_username", user: model.User{UserID: "u2", Username: "bob", Email: "bob@example.com"}, wantError: nil},
		{name: "username_taken", user: model.User{UserID: "u3", Username: "alice", Email: "other@example.com"}, wantError: auctionerrors.ErrUsernameTaken},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := store.CreateUser(tc.user)
			if tc.wantError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.wantError), "expected error: %v, got: %v", tc.wantError, err)
			} else {
				require.NoError(t, err)
				got, err := store.GetUser(tc.user.UserID)
				require.NoError(t, err)
				require.Equal(t, tc.user, got)
			}
		})
	}

	t.Run("unknown_user_not_found", func(t *testing.T) {
		_, err := store.GetUser("uX")
		require.True(t, errors.Is(err, auctionerrors.ErrUserNotFound))
	})
}

// Test AppendBid and GetBidsByListing
func TestMemoryStore_AppendBid(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.CreateListing(newListing("l1", "u1", "", true)))

	tests := []struct {
		name      string
		bid       model.Bid
		wantError bool
	}{
		{name: "valid_bid", bid: newBid("b1", "l1", "u2", 100), wantError: false},
		{name: "listing_not_found", bid: newBid("b2", "lX", "u2", 100), wantError: true},
		{name: "zero_amount", bid: newBid("b3", "l1", "u3", 0), wantError: false},
		{name: "empty_listingID", bid: newBid("b4", "", "u2", 100), wantError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := store.AppendBid(tc.bid)
			if tc.wantError {
				require.Error(t, err)
				require.True(t, errors.Is(err, auctionerrors.ErrListingNotFound))
			} else {
				require.NoError(t, err)
				bids, err := store.GetBidsByListing(tc.bid.ListingID)
				require.NoError(t, err)
				require.Contains(t, bids, tc.bid)
				got, err := store.GetBid(tc.bid.BidID)
				require.NoError(t, err)
				require.Equal(t, tc.bid, got)
			}
		})
	}

	t.Run("unknown_bid_not_found", func(t *testing.T) {
		_, err := store.GetBid("bX")
		require.True(t, errors.Is(err, auctionerrors.ErrBidNotFound))
	})

	// Append order must survive concurrent readers
	t.Run("concurrent_appends", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.CreateListing(newListing("l1", "u1", "", true)))

		var wg sync.WaitGroup
		concurrentCount := 50

		for i := 0; i < concurrentCount; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				b := newBid(fmt.Sprintf("b-%d", i), "l1", fmt.Sprintf("u-%d", i), int64(100+i))
				require.NoError(t, store.AppendBid(b))
			}()
		}

		wg.Wait()

		bids, err := store.GetBidsByListing("l1")
		require.NoError(t, err)
		require.Len(t, bids, concurrentCount)
	})
}

// Test ListActiveListings
func TestMemoryStore_ListActiveListings(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	l1 := newListing("l1", "u1", "electronics", true)
	l2 := newListing("l2", "u1", "fashion", true)
	l3 := newListing("l3", "u2", "electronics", false)
	l4 := newListing("l4", "u2", "", true)
	require.NoError(t, store.CreateListing(l1))
	require.NoError(t, store.CreateListing(l2))
	require.NoError(t, store.CreateListing(l3))
	require.NoError(t, store.CreateListing(l4))

	tests := []struct {
		name       string
		categoryID string
		want       []model.AuctionListing
	}{
		{name: "all_active_in_creation_order", categoryID: "", want: []model.AuctionListing{l1, l2, l4}},
		{name: "category_filter", categoryID: "electronics", want: []model.AuctionListing{l1}},
		{name: "category_with_no_active", categoryID: "toys", want: []model.AuctionListing{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			listings, err := store.ListActiveListings(tc.categoryID)
			require.NoError(t, err)
			require.Equal(t, tc.want, listings)
		})
	}

	t.Run("update_flips_visibility", func(t *testing.T) {
		store := NewMemoryStore()
		l := newListing("l1", "u1", "", true)
		require.NoError(t, store.CreateListing(l))

		l.IsActive = false
		require.NoError(t, store.UpdateListing(l))

		listings, err := store.ListActiveListings("")
		require.NoError(t, err)
		require.Empty(t, listings)
	})

	t.Run("update_unknown_listing", func(t *testing.T) {
		err := store.UpdateListing(newListing("lX", "u1", "", true))
		require.True(t, errors.Is(err, auctionerrors.ErrListingNotFound))
	})
}

// Test watch relations
func TestMemoryStore_Watches(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.CreateListing(newListing("l1", "u1", "", true)))
	require.NoError(t, store.CreateListing(newListing("l2", "u1", "", true)))

	t.Run("add_is_idempotent", func(t *testing.T) {
		require.NoError(t, store.AddWatch("l1", "u2"))
		require.NoError(t, store.AddWatch("l1", "u2"))

		watching, err := store.IsWatching("l1", "u2")
		require.NoError(t, err)
		require.True(t, watching)

		ids, err := store.GetWatchedListingIDs("u2")
		require.NoError(t, err)
		require.Equal(t, []string{"l1"}, ids)
	})

	t.Run("add_unknown_listing", func(t *testing.T) {
		err := store.AddWatch("lX", "u2")
		require.True(t, errors.Is(err, auctionerrors.ErrListingNotFound))
	})

	t.Run("remove_missing_is_noop", func(t *testing.T) {
		require.NoError(t, store.RemoveWatch("l2", "u9"))
		require.NoError(t, store.RemoveWatch("lX", "u9"))
	})

	t.Run("watched_ids_follow_creation_order", func(t *testing.T) {
		require.NoError(t, store.AddWatch("l2", "u3"))
		require.NoError(t, store.AddWatch("l1", "u3"))

		ids, err := store.GetWatchedListingIDs("u3")
		require.NoError(t, err)
		require.Equal(t, []string{"l1", "l2"}, ids)
	})

	t.Run("clear_watchers_purges_both_sides", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.CreateListing(newListing("l1", "u1", "", true)))
		require.NoError(t, store.CreateListing(newListing("l2", "u1", "", true)))
		for _, userID := range []string{"u2", "u3", "u4"} {
			require.NoError(t, store.AddWatch("l1", userID))
		}
		require.NoError(t, store.AddWatch("l2", "u2"))

		require.NoError(t, store.ClearWatchers("l1"))

		for _, userID := range []string{"u2", "u3", "u4"} {
			watching, err := store.IsWatching("l1", userID)
			require.NoError(t, err)
			require.False(t, watching)
		}
		// Unrelated watches survive
		ids, err := store.GetWatchedListingIDs("u2")
		require.NoError(t, err)
		require.Equal(t, []string{"l2"}, ids)
	})

	// concurrency test
	t.Run("concurrent_watch_churn", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		require.NoError(t, store.CreateListing(newListing("l1", "u1", "", true)))

		var wg sync.WaitGroup
		concurrentCount := 50

		for i := 0; i < concurrentCount; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				userID := fmt.Sprintf("u-%d", i)
				require.NoError(t, store.AddWatch("l1", userID))
				if i%2 == 0 {
					require.NoError(t, store.RemoveWatch("l1", userID))
				}
			}()
		}

		wg.Wait()

		count := 0
		for i := 0; i < concurrentCount; i++ {
			watching, err := store.IsWatching("l1", fmt.Sprintf("u-%d", i))
			require.NoError(t, err)
			if watching {
				count++
			}
		}
		require.Equal(t, concurrentCount/2, count)
	})
}

// Test comments
func TestMemoryStore_Comments(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.CreateListing(newListing("l1", "u1", "", true)))

	c1 := model.Comment{CommentID: "c1", ListingID: "l1", AuthorID: "u2", Text: "first", CreatedAt: time.Now().UTC()}
	c2 := model.Comment{CommentID: "c2", ListingID: "l1", AuthorID: "u3", Text: "second", CreatedAt: time.Now().UTC()}

	t.Run("comments_keep_creation_order", func(t *testing.T) {
		require.NoError(t, store.AddComment(c1))
		require.NoError(t, store.AddComment(c2))

		comments, err := store.GetCommentsByListing("l1")
		require.NoError(t, err)
		require.Equal(t, []model.Comment{c1, c2}, comments)
	})

	t.Run("unknown_listing", func(t *testing.T) {
		err := store.AddComment(model.Comment{CommentID: "c3", ListingID: "lX", AuthorID: "u2", Text: "hi"})
		require.True(t, errors.Is(err, auctionerrors.ErrListingNotFound))

		_, err = store.GetCommentsByListing("lX")
		require.True(t, errors.Is(err, auctionerrors.ErrListingNotFound))
	})
}

// Test categories
func TestMemoryStore_Categories(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	electronics := model.Category{CategoryID: "electronics", Name: "Electronics"}
	fashion := model.Category{CategoryID: "fashion", Name: "Fashion"}
	require.NoError(t, store.AddCategory(electronics))
	require.NoError(t, store.AddCategory(fashion))

	t.Run("list_in_insertion_order", func(t *testing.T) {
		categories, err := store.ListCategories()
		require.NoError(t, err)
		require.Equal(t, []model.Category{electronics, fashion}, categories)
	})

	t.Run("get_existing", func(t *testing.T) {
		got, err := store.GetCategory("fashion")
		require.NoError(t, err)
		require.Equal(t, fashion, got)
	})

	t.Run("get_unknown", func(t *testing.T) {
		_, err := store.GetCategory("vehicles")
		require.True(t, errors.Is(err, auctionerrors.ErrCategoryNotFound))
	})
}
