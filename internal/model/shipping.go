package model

const (
	ShippingPersonalPickup = "PERSONAL_PICKUP"
	ShippingShire          = "SHIRE_SHIPPING"
	ShippingEagleExpress   = "EAGLE_EXPRESS"
	ShippingNazgulHaulers  = "NAZGUL_HAULERS"
)

var shippingCosts = map[string]float64{
	ShippingPersonalPickup: 0.0,
	ShippingShire:          1.2,
	ShippingEagleExpress:   3.4,
	ShippingNazgulHaulers:  3.4,
}

// ShippingCost returns the flat rate for a shipping method. The second
// return value is false for methods not in the catalog.
func ShippingCost(method string) (float64, bool) {
	cost, ok := shippingCosts[method]
	return cost, ok
}
