package model

import "time"

const (
	AddressTypeShipping = "SHIPPING"
	AddressTypeBilling  = "BILLING"
)

type Address struct {
	AddressID   int64      `json:"addressid"`
	CustomerID  int64      `json:"customerid"`
	City        string     `json:"city"`
	Street      string     `json:"street"`
	Zip         string     `json:"zip"`
	AddressType string     `json:"addresstype"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

func ValidAddressType(t string) bool {
	return t == AddressTypeShipping || t == AddressTypeBilling
}
