package model

import "time"

const (
	PromotionOn  = "ON_PROMOTION"
	PromotionOff = "NOT_ON_PROMOTION"
)

// Product is never physically deleted, only flagged via deleted_at.
type Product struct {
	ProductID       int64      `json:"productid"`
	Name            string     `json:"name"`
	Vendor          string     `json:"vendor"`
	Price           float64    `json:"price"`
	InStock         int        `json:"instock"`
	Category        string     `json:"category,omitempty"`
	CustomerType    string     `json:"customertype"`
	PromotionStatus string     `json:"promotionstatus"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}
