package models

import "time"

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	OriginalPrice float64   `json:"originalPrice"`
	PictureURL    string    `json:"pictureUrl"`
	EndDate       time.Time `json:"endDate"`
	SellerID      string    `json:"sellerId"`
	Seller        *User     `json:"seller,omitempty"`
	Bids          []*Bid    `json:"bids"`
}

// ProductRequest carries the client-writable product fields. The seller is
// always taken from the authenticated principal, never from the payload.
type ProductRequest struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	OriginalPrice float64   `json:"originalPrice"`
	PictureURL    string    `json:"pictureUrl"`
	EndDate       time.Time `json:"endDate"`
}
