package repository

import (
	"database/sql"
	"fmt"

	"auction-api/internal/apperrors"
	"auction-api/internal/models"

	"github.com/rs/zerolog"
)

// MySQLStore is the production Store backed by database/sql.
type MySQLStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMySQLStore(db *sql.DB, logger zerolog.Logger) *MySQLStore {
	return &MySQLStore{
		db:     db,
		logger: logger,
	}
}

func (s *MySQLStore) CreateUser(user *models.User) error {
	_, err := s.db.Exec(
		"INSERT INTO users (id, username, email, password_hash, admin) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, user.Admin,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *MySQLStore) GetUserByID(id string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(
		"SELECT id, username, email, password_hash, admin FROM users WHERE id = ?", id,
	), id)
}

func (s *MySQLStore) GetUserByEmail(email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(
		"SELECT id, username, email, password_hash, admin FROM users WHERE email = ?", email,
	), email)
}

func (s *MySQLStore) scanUser(row *sql.Row, key string) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Admin)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", key, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", key, err)
	}
	return &user, nil
}

func (s *MySQLStore) UserExists(email, username string) (bool, error) {
	var id string
	err := s.db.QueryRow("SELECT id FROM users WHERE email = ? OR username = ?", email, username).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existing user: %w", err)
	}
	return true, nil
}

func (s *MySQLStore) CreateProduct(product *models.Product) error {
	_, err := s.db.Exec(
		"INSERT INTO products (id, name, description, category, original_price, picture_url, end_date, seller_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		product.ID, product.Name, product.Description, product.Category,
		product.OriginalPrice, product.PictureURL, product.EndDate, product.SellerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

const productColumns = "p.id, p.name, p.description, p.category, p.original_price, p.picture_url, p.end_date, p.seller_id, u.id, u.username, u.email, u.admin"

func scanProductWithSeller(scan func(dest ...any) error) (*models.Product, error) {
	var p models.Product
	var seller models.User
	err := scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.OriginalPrice,
		&p.PictureURL, &p.EndDate, &p.SellerID,
		&seller.ID, &seller.Username, &seller.Email, &seller.Admin,
	)
	if err != nil {
		return nil, err
	}
	p.Seller = &seller
	p.Bids = []*models.Bid{}
	return &p, nil
}

func (s *MySQLStore) GetProductByID(id string) (*models.Product, error) {
	row := s.db.QueryRow(
		"SELECT "+productColumns+" FROM products p JOIN users u ON u.id = p.seller_id WHERE p.id = ?", id,
	)
	product, err := scanProductWithSeller(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}

	product.Bids, err = s.bidsForProduct(id)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *MySQLStore) bidsForProduct(productID string) ([]*models.Bid, error) {
	rows, err := s.db.Query(
		`SELECT b.id, b.product_id, b.bidder_id, b.price, b.date, u.id, u.username, u.email, u.admin
		 FROM bids b JOIN users u ON u.id = b.bidder_id
		 WHERE b.product_id = ? ORDER BY b.seq`, productID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bids for product %s: %w", productID, err)
	}
	defer rows.Close()

	bids := []*models.Bid{}
	for rows.Next() {
		var b models.Bid
		var bidder models.User
		if err := rows.Scan(&b.ID, &b.ProductID, &b.BidderID, &b.Price, &b.Date,
			&bidder.ID, &bidder.Username, &bidder.Email, &bidder.Admin); err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		b.Bidder = &bidder
		bids = append(bids, &b)
	}
	return bids, rows.Err()
}

func (s *MySQLStore) ListProducts() ([]*models.Product, error) {
	rows, err := s.db.Query(
		"SELECT " + productColumns + " FROM products p JOIN users u ON u.id = p.seller_id ORDER BY p.seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	byID := map[string]*models.Product{}
	for rows.Next() {
		p, err := scanProductWithSeller(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bidRows, err := s.db.Query(
		`SELECT b.id, b.product_id, b.bidder_id, b.price, b.date, u.id, u.username, u.email, u.admin
		 FROM bids b JOIN users u ON u.id = b.bidder_id ORDER BY b.seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	defer bidRows.Close()

	for bidRows.Next() {
		var b models.Bid
		var bidder models.User
		if err := bidRows.Scan(&b.ID, &b.ProductID, &b.BidderID, &b.Price, &b.Date,
			&bidder.ID, &bidder.Username, &bidder.Email, &bidder.Admin); err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		b.Bidder = &bidder
		if p, ok := byID[b.ProductID]; ok {
			p.Bids = append(p.Bids, &b)
		}
	}
	return products, bidRows.Err()
}

func (s *MySQLStore) ListProductsBySeller(sellerID string) ([]*models.Product, error) {
	rows, err := s.db.Query(
		"SELECT "+productColumns+" FROM products p JOIN users u ON u.id = p.seller_id WHERE p.seller_id = ? ORDER BY p.seq", sellerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for seller %s: %w", sellerID, err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p, err := scanProductWithSeller(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *MySQLStore) UpdateProduct(product *models.Product) error {
	res, err := s.db.Exec(
		"UPDATE products SET name = ?, description = ?, category = ?, original_price = ?, picture_url = ?, end_date = ? WHERE id = ?",
		product.Name, product.Description, product.Category,
		product.OriginalPrice, product.PictureURL, product.EndDate, product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero rows is also returned when nothing changed, so re-check
		// existence before reporting a miss.
		if _, err := s.GetProductByID(product.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *MySQLStore) DeleteProductCascade(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bids WHERE product_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete bids for product %s: %w", id, err)
	}

	res, err := tx.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product delete: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("Product and bids deleted")
	return nil
}

func (s *MySQLStore) CreateBid(bid *models.Bid) error {
	_, err := s.db.Exec(
		"INSERT INTO bids (id, product_id, bidder_id, price, date) VALUES (?, ?, ?, ?, ?)",
		bid.ID, bid.ProductID, bid.BidderID, bid.Price, bid.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to create bid: %w", err)
	}
	return nil
}

func (s *MySQLStore) GetBidByID(id string) (*models.Bid, error) {
	var b models.Bid
	err := s.db.QueryRow(
		"SELECT id, product_id, bidder_id, price, date FROM bids WHERE id = ?", id,
	).Scan(&b.ID, &b.ProductID, &b.BidderID, &b.Price, &b.Date)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bid %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bid %s: %w", id, err)
	}
	return &b, nil
}

func (s *MySQLStore) ListBidsByBidder(bidderID string) ([]*models.Bid, error) {
	rows, err := s.db.Query(
		`SELECT b.id, b.product_id, b.bidder_id, b.price, b.date, `+productColumns+`
		 FROM bids b
		 JOIN products p ON p.id = b.product_id
		 JOIN users u ON u.id = p.seller_id
		 WHERE b.bidder_id = ? ORDER BY b.seq`, bidderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids for bidder %s: %w", bidderID, err)
	}
	defer rows.Close()

	bids := []*models.Bid{}
	for rows.Next() {
		var b models.Bid
		var p models.Product
		var seller models.User
		if err := rows.Scan(&b.ID, &b.ProductID, &b.BidderID, &b.Price, &b.Date,
			&p.ID, &p.Name, &p.Description, &p.Category, &p.OriginalPrice,
			&p.PictureURL, &p.EndDate, &p.SellerID,
			&seller.ID, &seller.Username, &seller.Email, &seller.Admin); err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		p.Seller = &seller
		b.Product = &p
		bids = append(bids, &b)
	}
	return bids, rows.Err()
}

func (s *MySQLStore) DeleteBid(id string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM bids WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bid %s: %w", id, err)
	}
	return res.RowsAffected()
}

func (s *MySQLStore) DeleteBidOwned(id, bidderID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM bids WHERE id = ? AND bidder_id = ?", id, bidderID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bid %s: %w", id, err)
	}
	return res.RowsAffected()
}
