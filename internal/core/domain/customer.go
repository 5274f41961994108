package domain

// Customer represents a buyer referenced by sales. A customer cannot be
// deleted while sales referencing it exist.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (e.g., UUID)
	Name       string `json:"name"`
	Email      string `json:"email"` // Nullable
	Phone      string `json:"phone"` // Nullable
	AuditFields
}
