package repository

import "auction-api/internal/models"

// Store is the persistence boundary for users, products and bids. It is the
// single source of truth: services re-fetch on every operation and never
// cache entities across requests.
type Store interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UserExists(email, username string) (bool, error)

	CreateProduct(product *models.Product) error
	// GetProductByID returns the product with its seller and its bids in
	// insertion order, each bid carrying its bidder.
	GetProductByID(id string) (*models.Product, error)
	ListProducts() ([]*models.Product, error)
	ListProductsBySeller(sellerID string) ([]*models.Product, error)
	UpdateProduct(product *models.Product) error
	// DeleteProductCascade removes the product and every bid placed on it.
	// Bids are always gone before the product is, so a partial failure can
	// never leave orphan bids behind a deleted product.
	DeleteProductCascade(id string) error

	CreateBid(bid *models.Bid) error
	GetBidByID(id string) (*models.Bid, error)
	ListBidsByBidder(bidderID string) ([]*models.Bid, error)
	// DeleteBid removes a bid by id and reports how many rows matched.
	DeleteBid(id string) (int64, error)
	// DeleteBidOwned removes a bid only if it belongs to bidderID. A zero
	// count means the bid does not exist or is someone else's; the store
	// cannot tell which.
	DeleteBidOwned(id, bidderID string) (int64, error)
}
