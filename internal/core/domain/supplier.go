package domain

// Supplier represents a provider of products or services.
type Supplier struct {
	SupplierID string `json:"supplierID"` // Primary Key (e.g., UUID)
	Name       string `json:"name"`
	Email      string `json:"email"` // Nullable
	Phone      string `json:"phone"` // Nullable
	AuditFields
}
