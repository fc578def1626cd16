package model

import "time"

// Order lifecycle. An order in status NEW is the customer's cart; a
// customer has at most one NEW order at a time.
const (
	OrderStatusNew       = "NEW"
	OrderStatusDone      = "DONE"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusReturned  = "RETURNED"
)

const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusApproved = "APPROVED"
	PaymentStatusDeclined = "DECLINED"
)

type Order struct {
	OrderID        int64      `json:"orderid"`
	CustomerID     int64      `json:"customerid"`
	OrderDate      *time.Time `json:"orderdate,omitempty"`
	TotalPrice     float64    `json:"totalprice"`
	Comments       *string    `json:"comments,omitempty"`
	OrderStatus    string     `json:"orderstatus"`
	ShippingMethod *string    `json:"shippingmethod,omitempty"`
	PaymentStatus  string     `json:"paymentstatus"`
}

// OrderItem caches its total price at mutation time: the unit price is
// locked in when the item is added or extended, and later product price
// changes do not retroactively alter it. Do not "fix" this into a live
// join against products.
type OrderItem struct {
	OrderItemID   int64   `json:"orderitemid"`
	OrderID       int64   `json:"orderid"`
	ProductID     int64   `json:"productid"`
	PiecesOrdered int     `json:"piecesordered"`
	TotalPrice    float64 `json:"totalprice"`
}

// OrderInfo is the API shape for an order with its line items.
type OrderInfo struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
