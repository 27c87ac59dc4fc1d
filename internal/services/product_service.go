package services

import (
	"fmt"
	"time"

	"auction-api/internal/apperrors"
	"auction-api/internal/authz"
	"auction-api/internal/models"
	"auction-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newID() string {
	return uuid.NewString()
}

// ProductService owns the product lifecycle: validated creation, seller-only
// updates and the cascading delete of a product with its bids.
type ProductService struct {
	store  repository.Store
	logger zerolog.Logger
}

func NewProductService(store repository.Store, logger zerolog.Logger) *ProductService {
	return &ProductService{
		store:  store,
		logger: logger,
	}
}

func (s *ProductService) List() ([]*models.Product, error) {
	products, err := s.store.ListProducts()
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(productID string) (*models.Product, error) {
	return s.store.GetProductByID(productID)
}

// missingFields applies the required-field rule: empty string and zero count
// as absent.
func missingFields(req *models.ProductRequest) []string {
	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.Category == "" {
		missing = append(missing, "category")
	}
	if req.OriginalPrice == 0 {
		missing = append(missing, "originalPrice")
	}
	if req.PictureURL == "" {
		missing = append(missing, "pictureUrl")
	}
	return missing
}

func (s *ProductService) Create(principal authz.Principal, req *models.ProductRequest) (*models.Product, error) {
	product := &models.Product{
		ID:            newID(),
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		OriginalPrice: req.OriginalPrice,
		PictureURL:    req.PictureURL,
		EndDate:       req.EndDate,
		// The seller is always the caller, whatever the payload says.
		SellerID: principal.ID,
		Bids:     []*models.Bid{},
	}

	if err := authz.Decide(principal, authz.ActionCreate, authz.ProductResource{Product: product}); err != nil {
		return nil, err
	}

	if missing := missingFields(req); len(missing) > 0 {
		return nil, apperrors.NewValidationError(missing...)
	}
	if product.EndDate.IsZero() {
		product.EndDate = time.Now().Add(7 * 24 * time.Hour)
	}

	if err := s.store.CreateProduct(product); err != nil {
		s.logger.Error().Err(err).Str("seller_id", principal.ID).Msg("Error creating product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID).Str("seller_id", principal.ID).Msg("Product created")
	return product, nil
}

func (s *ProductService) Update(principal authz.Principal, productID string, req *models.ProductRequest) (*models.Product, error) {
	product, err := s.store.GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	if err := authz.Decide(principal, authz.ActionUpdate, authz.ProductResource{Product: product}); err != nil {
		return nil, err
	}

	if missing := missingFields(req); len(missing) > 0 {
		return nil, apperrors.NewValidationError(missing...)
	}

	// id and sellerId stay as loaded; only the writable fields move.
	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.OriginalPrice = req.OriginalPrice
	product.PictureURL = req.PictureURL
	if !req.EndDate.IsZero() {
		product.EndDate = req.EndDate
	}

	if err := s.store.UpdateProduct(product); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("Error updating product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Str("product_id", productID).Str("user_id", principal.ID).Msg("Product updated")
	return product, nil
}

func (s *ProductService) Delete(principal authz.Principal, productID string) error {
	product, err := s.store.GetProductByID(productID)
	if err != nil {
		return err
	}

	if err := authz.Decide(principal, authz.ActionDelete, authz.ProductResource{Product: product}); err != nil {
		return err
	}

	if err := s.store.DeleteProductCascade(productID); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("Error deleting product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().
		Str("product_id", productID).
		Str("user_id", principal.ID).
		Int("bids_removed", len(product.Bids)).
		Msg("Product deleted")
	return nil
}
