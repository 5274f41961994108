package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/officio/business_mgmt_app/internal/apperrors"
	"github.com/officio/business_mgmt_app/internal/core/domain"
	portsrepo "github.com/officio/business_mgmt_app/internal/core/ports/repositories"
	"github.com/officio/business_mgmt_app/internal/models"
	"github.com/officio/business_mgmt_app/internal/utils/mapping"
)

type PgxSupplierRepository struct {
	BaseRepository
}

// newPgxSupplierRepository creates a new repository for supplier data.
func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepositoryFacade {
	return &PgxSupplierRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSupplierRepository implements portsrepo.SupplierRepositoryFacade
var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

const supplierColumns = `supplier_id, name, email, phone, created_at, created_by, last_updated_at, last_updated_by`

func scanSupplier(row pgx.Row) (models.Supplier, error) {
	var s models.Supplier
	err := row.Scan(
		&s.SupplierID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

// SaveSupplier persists a new supplier.
func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	modelSupplier := mapping.ToModelSupplier(supplier)
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelSupplier.SupplierID,
		modelSupplier.Name,
		modelSupplier.Email,
		modelSupplier.Phone,
		modelSupplier.CreatedAt,
		modelSupplier.CreatedBy,
		modelSupplier.LastUpdatedAt,
		modelSupplier.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert supplier "+modelSupplier.SupplierID, err)
	}
	return nil
}

// FindSupplierByID retrieves a supplier by their ID.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1;`
	modelSupplier, err := scanSupplier(r.Pool.QueryRow(ctx, query, supplierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find supplier by ID "+supplierID, err)
	}

	domainSupplier := mapping.ToDomainSupplier(modelSupplier)
	return &domainSupplier, nil
}

// ListSuppliers retrieves a paginated list of suppliers ordered by name.
func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, limit int, offset int) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY name, supplier_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query suppliers", err)
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan supplier row", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating supplier rows", err)
	}

	return mapping.ToDomainSupplierSlice(suppliers), nil
}

// UpdateSupplier updates an existing supplier's details.
func (r *PgxSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	modelSupplier := mapping.ToModelSupplier(supplier)
	query := `
		UPDATE suppliers
		SET name = $2, email = $3, phone = $4, last_updated_at = $5, last_updated_by = $6
		WHERE supplier_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		modelSupplier.SupplierID,
		modelSupplier.Name,
		modelSupplier.Email,
		modelSupplier.Phone,
		modelSupplier.LastUpdatedAt,
		modelSupplier.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update supplier "+modelSupplier.SupplierID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSupplier removes a supplier. Catalog rows referencing it fall back
// to a null supplier via ON DELETE SET NULL.
func (r *PgxSupplierRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM suppliers WHERE supplier_id = $1;`, supplierID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete supplier "+supplierID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
