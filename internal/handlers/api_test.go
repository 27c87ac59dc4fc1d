package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-api/internal/models"
	"auction-api/internal/repository"
	"auction-api/internal/router"
	"auction-api/internal/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router *mux.Router
	store  *repository.MemoryStore
	auth   *services.AuthService
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	store := repository.NewMemoryStore()
	log := zerolog.Nop()
	return &testAPI{
		router: router.SetupRouter(store, log),
		store:  store,
		auth:   services.NewAuthService(log),
	}
}

func (api *testAPI) newUser(t *testing.T, username string, admin bool) (*models.User, string) {
	t.Helper()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Admin:        admin,
	}
	require.NoError(t, api.store.CreateUser(user))

	token, err := api.auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (api *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	return rec
}

func productPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Lamp",
		"description":   "Brass table lamp",
		"category":      "furniture",
		"originalPrice": 10,
		"pictureUrl":    "https://example.com/lamp.jpg",
		"endDate":       time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}
}

func TestAnonymousCannotCreateProduct(t *testing.T) {
	api := setupAPI(t)

	rec := api.do(t, "POST", "/api/products", "", productPayload())
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	products, err := api.store.ListProducts()
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestCreateProductMissingFields(t *testing.T) {
	api := setupAPI(t)
	_, token := api.newUser(t, "alice", false)

	payload := productPayload()
	delete(payload, "name")
	payload["originalPrice"] = 0

	rec := api.do(t, "POST", "/api/products", token, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "name")
	assert.Contains(t, body.Details, "originalPrice")

	products, err := api.store.ListProducts()
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestProductBidAdminDeleteScenario(t *testing.T) {
	api := setupAPI(t)
	seller, sellerToken := api.newUser(t, "alice", false)
	bidder, bidderToken := api.newUser(t, "bob", false)
	_, adminToken := api.newUser(t, "root", true)

	rec := api.do(t, "POST", "/api/products", sellerToken, productPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	require.Equal(t, seller.ID, product.SellerID)

	rec = api.do(t, "POST", fmt.Sprintf("/api/products/%s/bids", product.ID), bidderToken, map[string]interface{}{"price": 15})
	require.Equal(t, http.StatusCreated, rec.Code)

	var bid models.Bid
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bid))
	require.Equal(t, bidder.ID, bid.BidderID)

	rec = api.do(t, "DELETE", "/api/products/"+product.ID, adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, "GET", "/api/products/"+product.ID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The cascade removed the bid from the bidder's profile too.
	rec = api.do(t, "GET", "/api/users/"+bidder.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile models.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Empty(t, profile.Bids)
}

func TestNonOwnerCannotUpdateProduct(t *testing.T) {
	api := setupAPI(t)
	_, sellerToken := api.newUser(t, "alice", false)
	_, otherToken := api.newUser(t, "bob", false)

	rec := api.do(t, "POST", "/api/products", sellerToken, productPayload())
	require.Equal(t, http.StatusCreated, rec.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))

	payload := productPayload()
	payload["name"] = "Hijacked"
	rec = api.do(t, "PUT", "/api/products/"+product.ID, otherToken, payload)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, "GET", "/api/products/"+product.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var unchanged models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unchanged))
	require.Equal(t, "Lamp", unchanged.Name)
}

func TestBidDeleteNonOwnerAlwaysForbidden(t *testing.T) {
	api := setupAPI(t)
	_, sellerToken := api.newUser(t, "alice", false)
	_, bidderToken := api.newUser(t, "bob", false)
	_, strangerToken := api.newUser(t, "carol", false)

	rec := api.do(t, "POST", "/api/products", sellerToken, productPayload())
	require.Equal(t, http.StatusCreated, rec.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))

	rec = api.do(t, "POST", fmt.Sprintf("/api/products/%s/bids", product.ID), bidderToken, map[string]interface{}{"price": 15})
	require.Equal(t, http.StatusCreated, rec.Code)
	var bid models.Bid
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bid))

	// Existing bid, wrong owner.
	rec = api.do(t, "DELETE", "/api/bids/"+bid.ID, strangerToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Nonexistent bid: same answer, no existence leak.
	rec = api.do(t, "DELETE", "/api/bids/"+uuid.NewString(), strangerToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// An admin deleting a nonexistent bid gets a clean 404.
	_, adminToken := api.newUser(t, "root", true)
	rec = api.do(t, "DELETE", "/api/bids/"+uuid.NewString(), adminToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The owner can delete it.
	rec = api.do(t, "DELETE", "/api/bids/"+bid.ID, bidderToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetProductIsIdempotent(t *testing.T) {
	api := setupAPI(t)
	_, sellerToken := api.newUser(t, "alice", false)
	_, bidderToken := api.newUser(t, "bob", false)

	rec := api.do(t, "POST", "/api/products", sellerToken, productPayload())
	require.Equal(t, http.StatusCreated, rec.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))

	for _, price := range []float64{15, 20} {
		rec = api.do(t, "POST", fmt.Sprintf("/api/products/%s/bids", product.ID), bidderToken, map[string]interface{}{"price": price})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	first := api.do(t, "GET", "/api/products/"+product.ID, "", nil)
	second := api.do(t, "GET", "/api/products/"+product.ID, "", nil)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, first.Body.String(), second.Body.String())
}

func TestUsersMe(t *testing.T) {
	api := setupAPI(t)
	user, token := api.newUser(t, "alice", false)

	rec := api.do(t, "GET", "/api/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, "GET", "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile models.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Equal(t, user.ID, profile.User.ID)
}

func TestGetUserNotFound(t *testing.T) {
	api := setupAPI(t)
	rec := api.do(t, "GET", "/api/users/"+uuid.NewString(), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	api := setupAPI(t)

	rec := api.do(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.Token)

	// The issued token works against a protected route.
	rec = api.do(t, "POST", "/api/products", registered.Token, productPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListProductsPublic(t *testing.T) {
	api := setupAPI(t)
	require.NoError(t, repository.SeedFixtures(api.store))

	rec := api.do(t, "GET", "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []*models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.NotNil(t, p.Seller)
	}
}

func TestHealth(t *testing.T) {
	api := setupAPI(t)
	rec := api.do(t, "GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
