package repository

import (
	"fmt"
	"sync"

	"auction-api/internal/apperrors"
	"auction-api/internal/models"
)

// MemoryStore is a concurrency-safe in-memory Store. It backs the dev server
// when no database is configured, and the test suites.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]*models.User
	products     map[string]*models.Product
	productOrder []string
	bids         map[string]*models.Bid
	bidOrder     []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		products: make(map[string]*models.Product),
		bids:     make(map[string]*models.Bid),
	}
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyProduct(p *models.Product) *models.Product {
	c := *p
	c.Seller = nil
	c.Bids = []*models.Bid{}
	return &c
}

func copyBid(b *models.Bid) *models.Bid {
	c := *b
	c.Bidder = nil
	c.Product = nil
	return &c
}

func (s *MemoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *MemoryStore) GetUserByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	return copyUser(user), nil
}

func (s *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
}

func (s *MemoryStore) UserExists(email, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email || user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CreateProduct(product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = copyProduct(product)
	s.productOrder = append(s.productOrder, product.ID)
	return nil
}

func (s *MemoryStore) GetProductByID(id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
	}
	return s.assembleProduct(product), nil
}

// assembleProduct attaches the seller and the bids (in insertion order, each
// with its bidder) to a copy of the stored product. Caller holds the lock.
func (s *MemoryStore) assembleProduct(product *models.Product) *models.Product {
	p := copyProduct(product)
	if seller, ok := s.users[p.SellerID]; ok {
		p.Seller = copyUser(seller)
	}
	for _, bidID := range s.bidOrder {
		bid := s.bids[bidID]
		if bid.ProductID != p.ID {
			continue
		}
		b := copyBid(bid)
		if bidder, ok := s.users[b.BidderID]; ok {
			b.Bidder = copyUser(bidder)
		}
		p.Bids = append(p.Bids, b)
	}
	return p
}

func (s *MemoryStore) ListProducts() ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]*models.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		products = append(products, s.assembleProduct(s.products[id]))
	}
	return products, nil
}

func (s *MemoryStore) ListProductsBySeller(sellerID string) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := []*models.Product{}
	for _, id := range s.productOrder {
		product := s.products[id]
		if product.SellerID != sellerID {
			continue
		}
		p := copyProduct(product)
		if seller, ok := s.users[p.SellerID]; ok {
			p.Seller = copyUser(seller)
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *MemoryStore) UpdateProduct(product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return fmt.Errorf("product %s: %w", product.ID, apperrors.ErrNotFound)
	}
	s.products[product.ID] = copyProduct(product)
	return nil
}

func (s *MemoryStore) DeleteProductCascade(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
	}

	remaining := s.bidOrder[:0]
	for _, bidID := range s.bidOrder {
		if s.bids[bidID].ProductID == id {
			delete(s.bids, bidID)
			continue
		}
		remaining = append(remaining, bidID)
	}
	s.bidOrder = remaining

	delete(s.products, id)
	for i, pid := range s.productOrder {
		if pid == id {
			s.productOrder = append(s.productOrder[:i], s.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) CreateBid(bid *models.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bids[bid.ID] = copyBid(bid)
	s.bidOrder = append(s.bidOrder, bid.ID)
	return nil
}

func (s *MemoryStore) GetBidByID(id string) (*models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bid, ok := s.bids[id]
	if !ok {
		return nil, fmt.Errorf("bid %s: %w", id, apperrors.ErrNotFound)
	}
	return copyBid(bid), nil
}

func (s *MemoryStore) ListBidsByBidder(bidderID string) ([]*models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bids := []*models.Bid{}
	for _, id := range s.bidOrder {
		bid := s.bids[id]
		if bid.BidderID != bidderID {
			continue
		}
		b := copyBid(bid)
		if product, ok := s.products[b.ProductID]; ok {
			b.Product = copyProduct(product)
		}
		bids = append(bids, b)
	}
	return bids, nil
}

func (s *MemoryStore) deleteBidLocked(id string) {
	delete(s.bids, id)
	for i, bidID := range s.bidOrder {
		if bidID == id {
			s.bidOrder = append(s.bidOrder[:i], s.bidOrder[i+1:]...)
			break
		}
	}
}

func (s *MemoryStore) DeleteBid(id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bids[id]; !ok {
		return 0, nil
	}
	s.deleteBidLocked(id)
	return 1, nil
}

func (s *MemoryStore) DeleteBidOwned(id, bidderID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bid, ok := s.bids[id]
	if !ok || bid.BidderID != bidderID {
		return 0, nil
	}
	s.deleteBidLocked(id)
	return 1, nil
}
