package model

// Balance is the single platform-wide revenue accumulator. Exactly one
// row exists for the system's lifetime; no per-order ledger history is
// kept, only the running total.
type Balance struct {
	BalanceID int64   `json:"balanceid"`
	Total     float64 `json:"total"`
}
