package services

import (
	"errors"
	"testing"

	"auction-api/internal/apperrors"
	"auction-api/internal/authz"
	"auction-api/internal/models"
	"auction-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupBidTest(t *testing.T) (*BidService, repository.Store, authz.Principal, *models.Product) {
	t.Helper()
	store := repository.NewMemoryStore()
	seller := newTestUser(t, store, "alice", false)

	productService := NewProductService(store, zerolog.Nop())
	product, err := productService.Create(seller, validProductRequest())
	require.NoError(t, err)

	return NewBidService(store, zerolog.Nop()), store, seller, product
}

func TestBidService_Create(t *testing.T) {
	service, store, seller, product := setupBidTest(t)
	bidder := newTestUser(t, store, "bob", false)

	bid, err := service.Create(bidder, product.ID, &models.BidRequest{Price: 15})
	require.NoError(t, err)
	require.NotEmpty(t, bid.ID)
	require.Equal(t, bidder.ID, bid.BidderID)
	require.Equal(t, product.ID, bid.ProductID)
	require.Equal(t, float64(15), bid.Price)
	require.False(t, bid.Date.IsZero())

	// The seller may bid on their own product.
	_, err = service.Create(seller, product.ID, &models.BidRequest{Price: 20})
	require.NoError(t, err)
}

func TestBidService_CreateProductNotFound(t *testing.T) {
	service, store, _, _ := setupBidTest(t)
	bidder := newTestUser(t, store, "bob", false)

	_, err := service.Create(bidder, "missing", &models.BidRequest{Price: 15})
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestBidService_CreatePriceRequired(t *testing.T) {
	service, store, _, product := setupBidTest(t)
	bidder := newTestUser(t, store, "bob", false)

	// Zero counts as missing, so a zero-price bid is rejected too.
	_, err := service.Create(bidder, product.ID, &models.BidRequest{Price: 0})
	ve, ok := apperrors.IsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	require.Contains(t, ve.Fields, "price")

	bids, err := store.ListBidsByBidder(bidder.ID)
	require.NoError(t, err)
	require.Empty(t, bids)
}

func TestBidService_CreateAnonymous(t *testing.T) {
	service, _, _, product := setupBidTest(t)

	_, err := service.Create(authz.Anonymous, product.ID, &models.BidRequest{Price: 15})
	require.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
}

func TestBidService_Delete(t *testing.T) {
	service, store, _, product := setupBidTest(t)
	bidder := newTestUser(t, store, "bob", false)
	stranger := newTestUser(t, store, "carol", false)
	admin := newTestUser(t, store, "root", true)

	t.Run("owner_deletes", func(t *testing.T) {
		bid, err := service.Create(bidder, product.ID, &models.BidRequest{Price: 15})
		require.NoError(t, err)

		require.NoError(t, service.Delete(bidder, bid.ID))
		_, err = store.GetBidByID(bid.ID)
		require.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		bid, err := service.Create(bidder, product.ID, &models.BidRequest{Price: 15})
		require.NoError(t, err)

		err = service.Delete(stranger, bid.ID)
		require.True(t, errors.Is(err, apperrors.ErrForbidden))
		_, err = store.GetBidByID(bid.ID)
		require.NoError(t, err)
	})

	t.Run("missing_bid_is_forbidden_for_non_admin", func(t *testing.T) {
		// The owner-filtered delete cannot tell a missing bid from
		// someone else's bid, so both come back forbidden.
		err := service.Delete(stranger, "missing")
		require.True(t, errors.Is(err, apperrors.ErrForbidden))
	})

	t.Run("admin_deletes", func(t *testing.T) {
		bid, err := service.Create(bidder, product.ID, &models.BidRequest{Price: 15})
		require.NoError(t, err)

		require.NoError(t, service.Delete(admin, bid.ID))
	})

	t.Run("admin_gets_not_found", func(t *testing.T) {
		err := service.Delete(admin, "missing")
		require.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("anonymous_unauthenticated", func(t *testing.T) {
		err := service.Delete(authz.Anonymous, "anything")
		require.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
	})
}
