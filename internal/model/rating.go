package model

import "time"

// Rating is a customer's review of a product they have ordered.
type Rating struct {
	RatingID   int64     `json:"ratingid"`
	CustomerID int64     `json:"customerid"`
	ProductID  int64     `json:"productid"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	RatingDate time.Time `json:"ratingdate"`
}
