package model

import "time"

const (
	RoleBasic   = "basic"
	RolePremium = "premium"
	RoleAdmin   = "admin"
)

// Customer types restrict which products a customer may order through
// the storefront: a product is only sellable to customers of its own type.
const (
	CustomerTypeHobbit = "HOBBIT"
	CustomerTypeElf    = "ELF"
	CustomerTypeDwarf  = "DWARF"
	CustomerTypeMan    = "MAN"
	CustomerTypeWizard = "WIZARD"
)

type Customer struct {
	CustomerID   int64      `json:"customerid"`
	FirstName    string     `json:"firstname"`
	LastName     string     `json:"lastname"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	Roles        []string   `json:"roles"`
	CustomerType string     `json:"customertype"`
	Active       bool       `json:"active"`
	Confirmed    bool       `json:"confirmed"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

func (c *Customer) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (c *Customer) IsAdmin() bool   { return c.HasRole(RoleAdmin) }
func (c *Customer) IsPremium() bool { return c.HasRole(RolePremium) }

func ValidCustomerType(t string) bool {
	switch t {
	case CustomerTypeHobbit, CustomerTypeElf, CustomerTypeDwarf, CustomerTypeMan, CustomerTypeWizard:
		return true
	}
	return false
}

// TotalSpending is the per-customer accumulator of completed-order
// spend. It is kept as its own row, independent of orders, and only
// drives premium promotion.
type TotalSpending struct {
	CustomerID int64   `json:"customerid"`
	Total      float64 `json:"total"`
}

// ConfirmationToken is issued at registration and mailed to the
// customer; confirming it activates the account.
type ConfirmationToken struct {
	ID          int64      `json:"id"`
	CustomerID  int64      `json:"customerid"`
	Token       string     `json:"token"`
	ExpiresAt   time.Time  `json:"expires_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}
