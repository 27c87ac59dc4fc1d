package models

import "time"

type Bid struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	BidderID  string    `json:"bidderId"`
	Price     float64   `json:"price"`
	Date      time.Time `json:"date"`
	Bidder    *User     `json:"bidder,omitempty"`
	Product   *Product  `json:"product,omitempty"`
}

type BidRequest struct {
	Price float64 `json:"price"`
}
