package authz

import (
	"fmt"

	"auction-api/internal/apperrors"
	"auction-api/internal/models"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource is anything the policy can rule on. Owned resources report the
// principal ID that owns them; a nil owner means ownership is not a factor.
type Resource interface {
	OwnerID() string
}

// ProductResource wraps a product for a policy decision. The owner is the
// seller.
type ProductResource struct {
	Product *models.Product
}

func (r ProductResource) OwnerID() string { return r.Product.SellerID }

// BidResource wraps a bid for a policy decision. The owner is the bidder.
type BidResource struct {
	Bid *models.Bid
}

func (r BidResource) OwnerID() string { return r.Bid.BidderID }

// Decide applies the access rules for action on resource and returns nil on
// allow. A deny is either apperrors.ErrUnauthenticated (no principal) or
// apperrors.ErrForbidden (principal is not the owner), wrapped with a
// human-readable reason.
func Decide(p Principal, action Action, resource Resource) error {
	if p.Admin && p.Authenticated() {
		return nil
	}

	switch r := resource.(type) {
	case ProductResource:
		switch action {
		case ActionRead:
			return nil
		case ActionCreate:
			if !p.Authenticated() {
				return fmt.Errorf("%w: sign in to sell a product", apperrors.ErrUnauthenticated)
			}
			return nil
		case ActionUpdate, ActionDelete:
			if !p.Authenticated() {
				return fmt.Errorf("%w: sign in to manage products", apperrors.ErrUnauthenticated)
			}
			if p.ID != r.OwnerID() {
				return fmt.Errorf("%w: only the seller may %s this product", apperrors.ErrForbidden, action)
			}
			return nil
		}
	case BidResource:
		switch action {
		case ActionCreate:
			if !p.Authenticated() {
				return fmt.Errorf("%w: sign in to place a bid", apperrors.ErrUnauthenticated)
			}
			return nil
		case ActionDelete:
			if !p.Authenticated() {
				return fmt.Errorf("%w: sign in to manage bids", apperrors.ErrUnauthenticated)
			}
			if p.ID != r.OwnerID() {
				return fmt.Errorf("%w: you are not allowed to delete this bid", apperrors.ErrForbidden)
			}
			return nil
		}
	}

	if !p.Authenticated() {
		return fmt.Errorf("%w: action %q is not permitted anonymously", apperrors.ErrUnauthenticated, action)
	}
	return fmt.Errorf("%w: action %q is not permitted", apperrors.ErrForbidden, action)
}
