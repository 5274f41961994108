package models

// Supplier represents a row in the suppliers table.
type Supplier struct {
	SupplierID string `json:"supplierID" db:"supplier_id"`
	Name       string `json:"name" db:"name"`
	Email      string `json:"email" db:"email"` // Nullable
	Phone      string `json:"phone" db:"phone"` // Nullable
	AuditFields
}
