package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/officio/business_mgmt_app/internal/apperrors"
	"github.com/officio/business_mgmt_app/internal/core/domain"
	portsrepo "github.com/officio/business_mgmt_app/internal/core/ports/repositories"
	"github.com/officio/business_mgmt_app/internal/models"
	"github.com/officio/business_mgmt_app/internal/utils/mapping"
	"github.com/officio/business_mgmt_app/internal/utils/pagination"
)

type PgxSaleRepository struct {
	BaseRepository
	productRepo portsrepo.ProductStockManager
}

// newPgxSaleRepository creates a new repository for sale and sale item data.
func newPgxSaleRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductStockManager) portsrepo.SaleRepositoryWithTx {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
		productRepo:    productRepo,
	}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepositoryWithTx
var _ portsrepo.SaleRepositoryWithTx = (*PgxSaleRepository)(nil)

const saleColumns = `sale_id, customer_id, seller_id, total, status, created_at, created_by, last_updated_at, last_updated_by`

func scanSale(row pgx.Row) (models.Sale, error) {
	var s models.Sale
	err := row.Scan(
		&s.SaleID,
		&s.CustomerID,
		&s.SellerID,
		&s.Total,
		&s.Status,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

// SaveSale persists a new sale.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	modelSale := mapping.ToModelSale(sale)
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelSale.SaleID,
		modelSale.CustomerID,
		modelSale.SellerID,
		modelSale.Total,
		modelSale.Status,
		modelSale.CreatedAt,
		modelSale.CreatedBy,
		modelSale.LastUpdatedAt,
		modelSale.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert sale "+modelSale.SaleID, err)
	}
	return nil
}

// FindSaleByID retrieves a sale by its ID, without items.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`
	modelSale, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sale by ID "+saleID, err)
	}

	domainSale := mapping.ToDomainSale(modelSale)
	return &domainSale, nil
}

// FindItemsBySaleID retrieves all line items of a sale in insertion order.
func (r *PgxSaleRepository) FindItemsBySaleID(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	query := `
		SELECT sale_item_id, sale_id, product_id, service_id, quantity, price, created_at, created_by, last_updated_at, last_updated_by
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY created_at, sale_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for sale "+saleID, err)
	}
	defer rows.Close()

	items := []models.SaleItem{}
	for rows.Next() {
		var item models.SaleItem
		err := rows.Scan(
			&item.SaleItemID,
			&item.SaleID,
			&item.ProductID,
			&item.ServiceID,
			&item.Quantity,
			&item.Price,
			&item.CreatedAt,
			&item.CreatedBy,
			&item.LastUpdatedAt,
			&item.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sale item row for sale "+saleID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sale item rows for sale "+saleID, err)
	}

	return mapping.ToDomainSaleItemSlice(items), nil
}

// ListSales retrieves a paginated list of sales using token-based pagination.
// Ordering is newest first on (created_at, sale_id) for a stable cursor.
func (r *PgxSaleRepository) ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine if there is a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + saleColumns + ` FROM sales`
	orderByClause := `ORDER BY created_at DESC, sale_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		fields, decodeErr := pagination.DecodeMultiFieldToken(*nextToken)
		if decodeErr != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		lastCreatedAt, parseErr := time.Parse(time.RFC3339Nano, fields[0])
		if parseErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", parseErr)
		}
		lastSaleID := fields[1]

		cursorClause := `WHERE (created_at, sale_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastSaleID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query sales", err)
	}
	defer rows.Close()

	sales := make([]models.Sale, 0, fetchLimit)
	for rows.Next() {
		s, scanErr := scanSale(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan sale row", scanErr)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating sale rows", err)
	}

	var nextTokenVal *string
	if len(sales) > limit {
		sales = sales[:limit]
		last := sales[limit-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.SaleID)
		nextTokenVal = &token
	}

	domainSales := make([]domain.Sale, len(sales))
	for i, s := range sales {
		domainSales[i] = mapping.ToDomainSale(s)
	}
	return domainSales, nextTokenVal, nil
}

// AddItem inserts a line item and persists the sale's recomputed total as
// one database transaction.
func (r *PgxSaleRepository) AddItem(ctx context.Context, sale domain.Sale, item domain.SaleItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelItem := mapping.ToModelSaleItem(item)
	itemQuery := `
		INSERT INTO sale_items (sale_item_id, sale_id, product_id, service_id, quantity, price, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, itemQuery,
		modelItem.SaleItemID,
		modelItem.SaleID,
		modelItem.ProductID,
		modelItem.ServiceID,
		modelItem.Quantity,
		modelItem.Price,
		modelItem.CreatedAt,
		modelItem.CreatedBy,
		modelItem.LastUpdatedAt,
		modelItem.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert sale item "+modelItem.SaleItemID, err)
	}

	if err := r.updateSaleTotalInTx(ctx, tx, sale); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// RemoveItem deletes a line item and persists the sale's recomputed total as
// one database transaction.
func (r *PgxSaleRepository) RemoveItem(ctx context.Context, sale domain.Sale, itemID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	ct, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_item_id = $1 AND sale_id = $2;`, itemID, sale.SaleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete sale item "+itemID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.updateSaleTotalInTx(ctx, tx, sale); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxSaleRepository) updateSaleTotalInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	query := `
		UPDATE sales
		SET total = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sale_id = $1;
	`
	ct, err := tx.Exec(ctx, query, sale.SaleID, sale.Total, sale.LastUpdatedAt, sale.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update total for sale "+sale.SaleID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateSaleStatus transitions a sale's status.
func (r *PgxSaleRepository) UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE sales
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sale_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, saleID, models.SaleStatus(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for sale "+saleID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// stockDemand aggregates the quantities of product-backed items per product.
// Service items never appear in the result.
func stockDemand(items []domain.SaleItem) map[string]int {
	demand := make(map[string]int)
	for _, item := range items {
		if item.ProductID != nil {
			demand[*item.ProductID] += item.Quantity
		}
	}
	return demand
}

// finalizeStockDeltas turns the demand into negative stock deltas, checking
// every demanded quantity against the locked product's authoritative stock.
func finalizeStockDeltas(demand map[string]int, lockedProducts map[string]domain.Product) (map[string]int, error) {
	deltas := make(map[string]int, len(demand))
	for productID, quantity := range demand {
		product := lockedProducts[productID]
		if product.Stock < quantity {
			return nil, &domain.InsufficientStockError{ProductName: product.Name, Available: product.Stock}
		}
		deltas[productID] = -quantity
	}
	return deltas, nil
}

// restoreStockDeltas turns the demand into positive stock deltas, undoing
// what finalization deducted.
func restoreStockDeltas(demand map[string]int) map[string]int {
	deltas := make(map[string]int, len(demand))
	for productID, quantity := range demand {
		deltas[productID] = quantity
	}
	return deltas
}

// FinalizeSale performs the atomic commit of a sale: it re-reads the stock
// of every product-backed item under row locks, deducts it, inserts the
// income ledger transaction and flips the sale to COMPLETED. Any failure
// rolls the whole unit back.
func (r *PgxSaleRepository) FinalizeSale(ctx context.Context, sale domain.Sale, ledgerTxn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := sale.LastUpdatedAt
	userID := sale.LastUpdatedBy

	// 1. Lock product rows and re-check stock against the authoritative
	// values. The informational check at add-item time may be stale.
	demand := stockDemand(sale.Items)
	productIDs := make([]string, 0, len(demand))
	for productID := range demand {
		productIDs = append(productIDs, productID)
	}

	lockedProducts, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock products for sale "+sale.SaleID, err)
	}

	deltas, err := finalizeStockDeltas(demand, lockedProducts)
	if err != nil {
		return err
	}

	// 2. Deduct stock within the same transaction.
	if err := r.productRepo.ApplyStockDeltasInTx(ctx, tx, deltas, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to deduct stock for sale "+sale.SaleID, err)
	}

	// 3. Insert the income ledger transaction linked to the sale.
	modelTxn := mapping.ToModelTransaction(ledgerTxn)
	txnQuery := `
		INSERT INTO transactions (transaction_id, description, amount, type, status, due_date, paid_date, sale_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, txnQuery,
		modelTxn.TransactionID,
		modelTxn.Description,
		modelTxn.Amount,
		modelTxn.Type,
		modelTxn.Status,
		modelTxn.DueDate,
		modelTxn.PaidDate,
		modelTxn.SaleID,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger transaction for sale "+sale.SaleID, err)
	}

	// 4. Flip the sale to COMPLETED. Guarding on the previous status makes
	// a concurrent double-finalize lose cleanly instead of deducting twice.
	saleQuery := `
		UPDATE sales
		SET status = $2, total = $3, last_updated_at = $4, last_updated_by = $5
		WHERE sale_id = $1 AND status = $6;
	`
	ct, err := tx.Exec(ctx, saleQuery,
		sale.SaleID,
		models.SaleCompleted,
		sale.Total,
		now,
		userID,
		models.SalePending,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete sale "+sale.SaleID, err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrAlreadyFinalized
	}

	return r.Commit(ctx, tx)
}

// DeleteSale removes a sale and its items. For a COMPLETED sale the deducted
// stock is restored and the linked ledger transactions are removed inside
// the same database transaction, leaving the books as if the sale had never
// been finalized.
func (r *PgxSaleRepository) DeleteSale(ctx context.Context, sale domain.Sale) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	if sale.Status == domain.SaleCompleted {
		// Compensation: restore the stock the finalization deducted.
		demand := stockDemand(sale.Items)
		productIDs := make([]string, 0, len(demand))
		for productID := range demand {
			productIDs = append(productIDs, productID)
		}

		if _, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs); err != nil {
			return apperrors.NewAppError(500, "failed to lock products for sale deletion "+sale.SaleID, err)
		}

		deltas := restoreStockDeltas(demand)
		if err := r.productRepo.ApplyStockDeltasInTx(ctx, tx, deltas, sale.LastUpdatedBy, now); err != nil {
			return apperrors.NewAppError(500, "failed to restore stock for sale "+sale.SaleID, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE sale_id = $1;`, sale.SaleID); err != nil {
			return apperrors.NewAppError(500, "failed to delete ledger transactions for sale "+sale.SaleID, err)
		}
	}

	// Items go with the sale via ON DELETE CASCADE.
	ct, err := tx.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, sale.SaleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete sale "+sale.SaleID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
