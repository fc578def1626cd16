package model

import "time"

// EmporiumListing links a product to the customer selling it through
// Bombadil's Emporium. The existence of this link is what makes a
// product purchasable through the emporium pipeline.
type EmporiumListing struct {
	ListingID  int64      `json:"listingid"`
	ProductID  int64      `json:"productid"`
	CustomerID int64      `json:"customerid"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}
