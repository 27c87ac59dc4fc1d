package services

import (
	"fmt"
	"time"

	"auction-api/internal/apperrors"
	"auction-api/internal/authz"
	"auction-api/internal/models"
	"auction-api/internal/repository"

	"github.com/rs/zerolog"
)

// BidService validates bid placement against product existence and handles
// bid deletion for owners and admins.
type BidService struct {
	store  repository.Store
	logger zerolog.Logger
}

func NewBidService(store repository.Store, logger zerolog.Logger) *BidService {
	return &BidService{
		store:  store,
		logger: logger,
	}
}

func (s *BidService) Create(principal authz.Principal, productID string, req *models.BidRequest) (*models.Bid, error) {
	bid := &models.Bid{
		ID:        newID(),
		ProductID: productID,
		BidderID:  principal.ID,
		Price:     req.Price,
		Date:      time.Now().UTC(),
	}

	if err := authz.Decide(principal, authz.ActionCreate, authz.BidResource{Bid: bid}); err != nil {
		return nil, err
	}

	if _, err := s.store.GetProductByID(productID); err != nil {
		return nil, err
	}

	// Zero counts as missing, so a bid of 0 is rejected.
	if req.Price == 0 {
		return nil, apperrors.NewValidationError("price")
	}

	if err := s.store.CreateBid(bid); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Str("bidder_id", principal.ID).Msg("Error creating bid")
		return nil, fmt.Errorf("failed to create bid: %w", err)
	}

	s.logger.Info().
		Str("bid_id", bid.ID).
		Str("product_id", productID).
		Str("bidder_id", principal.ID).
		Float64("price", bid.Price).
		Msg("Bid placed")
	return bid, nil
}

// Delete removes a bid. Admins delete by id and get a clean 404 on a miss.
// Everyone else goes through a single owner-filtered delete: when no row
// matches, the store cannot tell a missing bid from someone else's bid, so
// the answer is forbidden either way.
func (s *BidService) Delete(principal authz.Principal, bidID string) error {
	if !principal.Authenticated() {
		return fmt.Errorf("%w: sign in to manage bids", apperrors.ErrUnauthenticated)
	}

	if principal.Admin {
		affected, err := s.store.DeleteBid(bidID)
		if err != nil {
			s.logger.Error().Err(err).Str("bid_id", bidID).Msg("Error deleting bid")
			return fmt.Errorf("failed to delete bid: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("bid %s: %w", bidID, apperrors.ErrNotFound)
		}
		s.logger.Info().Str("bid_id", bidID).Str("admin_id", principal.ID).Msg("Bid deleted by admin")
		return nil
	}

	affected, err := s.store.DeleteBidOwned(bidID, principal.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("bid_id", bidID).Msg("Error deleting bid")
		return fmt.Errorf("failed to delete bid: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: you are not allowed to delete this bid", apperrors.ErrForbidden)
	}

	s.logger.Info().Str("bid_id", bidID).Str("bidder_id", principal.ID).Msg("Bid deleted")
	return nil
}
