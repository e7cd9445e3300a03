package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	auction "auction-board/internal/auctionService"
	model "auction-board/internal/models"
	"auction-board/internal/repository"
	"auction-board/internal/server"
	"auction-board/services/auction/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// SetupTestRouter initializes the router with an in-memory store seeded with
// the category catalog for integration testing.
func SetupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore()

	categories := []model.Category{
		{CategoryID: "electronics", Name: "Electronics"},
		{CategoryID: "home", Name: "Home"},
	}
	for _, category := range categories {
		require.NoError(t, store.AddCategory(category))
	}

	service := auction.NewAuctionService(store)
	return server.SetupRouter(service)
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if w.Code == http.StatusCreated {
			resp = resp["data"].(map[string]any)
		}
	}

	return resp, w
}

// RegisterTestUser registers a user through the API and returns the generated ID
func RegisterTestUser(t *testing.T, router *gin.Engine, username string) string {
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/users", helpers.RegisterUserRequest{
		Username: username,
		Email:    username + "@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return resp["user_id"].(string)
}

// CreateTestListing creates a listing through the API and returns its ID
func CreateTestListing(t *testing.T, router *gin.Engine, ownerID, title, startingBid, categoryID string) string {
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/listings", helpers.CreateListingRequest{
		OwnerID:     ownerID,
		Title:       title,
		Description: title + " description",
		ImageURL:    "https://img.example/" + title + ".jpg",
		StartingBid: startingBid,
		CategoryID:  categoryID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return resp["listing_id"].(string)
}
