package services

// Business thresholds carried over from the webshop's original rules.
const (
	// Orders at or above this total ship for free regardless of method.
	freeShippingThreshold = 150.0
	// Total spending at or above this grants the premium role.
	premiumSpendThreshold = 10_000.0
	// Share of an emporium sale routed to the webshop balance; the rest
	// conceptually belongs to the selling customer.
	emporiumServiceFee = 0.15
	// Share of the shipping cost routed to the webshop balance on a
	// storefront checkout.
	shippingBalanceShare = 0.10
)

// shippingCharge waives the method cost above the free-shipping
// threshold.
func shippingCharge(orderTotal, methodCost float64) float64 {
	if orderTotal >= freeShippingThreshold {
		return 0
	}
	return methodCost
}
