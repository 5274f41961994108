package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/officio/business_mgmt_app/internal/apperrors"
	"github.com/officio/business_mgmt_app/internal/core/domain"
	portsrepo "github.com/officio/business_mgmt_app/internal/core/ports/repositories"
	"github.com/officio/business_mgmt_app/internal/models"
	"github.com/officio/business_mgmt_app/internal/utils/mapping"
)

type PgxServiceRepository struct {
	BaseRepository
}

// newPgxServiceRepository creates a new repository for service catalog data.
func newPgxServiceRepository(pool *pgxpool.Pool) portsrepo.ServiceRepositoryFacade {
	return &PgxServiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxServiceRepository implements portsrepo.ServiceRepositoryFacade
var _ portsrepo.ServiceRepositoryFacade = (*PgxServiceRepository)(nil)

const serviceColumns = `service_id, name, price, estimated_minutes, supplier_id, created_at, created_by, last_updated_at, last_updated_by`

func scanService(row pgx.Row) (models.Service, error) {
	var s models.Service
	err := row.Scan(
		&s.ServiceID,
		&s.Name,
		&s.Price,
		&s.EstimatedMinutes,
		&s.SupplierID,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

// SaveService persists a new service.
func (r *PgxServiceRepository) SaveService(ctx context.Context, service domain.Service) error {
	modelService := mapping.ToModelService(service)
	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelService.ServiceID,
		modelService.Name,
		modelService.Price,
		modelService.EstimatedMinutes,
		modelService.SupplierID,
		modelService.CreatedAt,
		modelService.CreatedBy,
		modelService.LastUpdatedAt,
		modelService.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert service "+modelService.ServiceID, err)
	}
	return nil
}

// FindServiceByID retrieves a service by its ID.
func (r *PgxServiceRepository) FindServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE service_id = $1;`
	modelService, err := scanService(r.Pool.QueryRow(ctx, query, serviceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find service by ID "+serviceID, err)
	}

	domainService := mapping.ToDomainService(modelService)
	return &domainService, nil
}

// ListServices retrieves a paginated list of services ordered by name.
func (r *PgxServiceRepository) ListServices(ctx context.Context, limit int, offset int) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY name, service_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query services", err)
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan service row", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating service rows", err)
	}

	return mapping.ToDomainServiceSlice(services), nil
}

// UpdateService updates an existing service's details.
func (r *PgxServiceRepository) UpdateService(ctx context.Context, service domain.Service) error {
	modelService := mapping.ToModelService(service)
	query := `
		UPDATE services
		SET name = $2, price = $3, estimated_minutes = $4, supplier_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE service_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		modelService.ServiceID,
		modelService.Name,
		modelService.Price,
		modelService.EstimatedMinutes,
		modelService.SupplierID,
		modelService.LastUpdatedAt,
		modelService.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update service "+modelService.ServiceID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteService removes a service.
func (r *PgxServiceRepository) DeleteService(ctx context.Context, serviceID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM services WHERE service_id = $1;`, serviceID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete service "+serviceID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
