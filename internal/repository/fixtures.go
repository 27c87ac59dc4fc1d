package repository

import (
	"fmt"
	"time"

	"auction-api/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedFixtures fills a store with a small demo data set: an admin, two
// regular users, a few products and bids. Used by the dev server when no
// database is configured.
func SeedFixtures(store Store) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash fixture password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Admin:        true,
	}
	alice := &models.User{
		ID:           uuid.NewString(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}
	bob := &models.User{
		ID:           uuid.NewString(),
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: string(hash),
	}
	for _, user := range []*models.User{admin, alice, bob} {
		if err := store.CreateUser(user); err != nil {
			return err
		}
	}

	lamp := &models.Product{
		ID:            uuid.NewString(),
		Name:          "Art deco lamp",
		Description:   "Brass table lamp, rewired.",
		Category:      "furniture",
		OriginalPrice: 40,
		PictureURL:    "https://example.com/pictures/lamp.jpg",
		EndDate:       time.Now().Add(7 * 24 * time.Hour),
		SellerID:      alice.ID,
	}
	bicycle := &models.Product{
		ID:            uuid.NewString(),
		Name:          "Vintage racing bicycle",
		Description:   "Steel frame, 1982, ready to ride.",
		Category:      "sport",
		OriginalPrice: 250,
		PictureURL:    "https://example.com/pictures/bicycle.jpg",
		EndDate:       time.Now().Add(3 * 24 * time.Hour),
		SellerID:      bob.ID,
	}
	for _, product := range []*models.Product{lamp, bicycle} {
		if err := store.CreateProduct(product); err != nil {
			return err
		}
	}

	bids := []*models.Bid{
		{ID: uuid.NewString(), ProductID: lamp.ID, BidderID: bob.ID, Price: 45, Date: time.Now().Add(-2 * time.Hour)},
		{ID: uuid.NewString(), ProductID: lamp.ID, BidderID: admin.ID, Price: 55, Date: time.Now().Add(-1 * time.Hour)},
		{ID: uuid.NewString(), ProductID: bicycle.ID, BidderID: alice.ID, Price: 260, Date: time.Now().Add(-30 * time.Minute)},
	}
	for _, bid := range bids {
		if err := store.CreateBid(bid); err != nil {
			return err
		}
	}
	return nil
}
