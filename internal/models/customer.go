package models

// Customer represents a row in the customers table.
type Customer struct {
	CustomerID string `json:"customerID" db:"customer_id"`
	Name       string `json:"name" db:"name"`
	Email      string `json:"email" db:"email"` // Nullable
	Phone      string `json:"phone" db:"phone"` // Nullable
	AuditFields
}
