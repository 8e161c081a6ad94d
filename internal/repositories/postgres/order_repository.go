package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/chrisdamba/ecomdash/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const createOrdersTable = `
    CREATE TABLE IF NOT EXISTS orders (
        row_id                        BIGSERIAL PRIMARY KEY,
        order_id                      TEXT NOT NULL,
        customer_id                   TEXT NOT NULL,
        customer_city                 TEXT NOT NULL,
        price                         NUMERIC(12, 2) NOT NULL DEFAULT 0,
        order_approved_at             TIMESTAMP,
        order_estimated_delivery_date TIMESTAMP
    )`

var _ repositories.OrderRepository = (*OrderRepository)(nil)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Connect opens a pool and checks it can reach the server.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return pool, nil
}

func (r *OrderRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, createOrdersTable)
	return err
}

// BulkCreate copies records in one COPY round trip.
func (r *OrderRepository) BulkCreate(ctx context.Context, records []models.OrderRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		var price pgtype.Numeric
		if err := price.Scan(rec.Price.String()); err != nil {
			return fmt.Errorf("order %s: %w", rec.OrderID, err)
		}
		rows = append(rows, []any{
			rec.OrderID,
			rec.CustomerID,
			rec.CustomerCity,
			price,
			rec.OrderApprovedAt,
			rec.OrderEstimatedDeliveryDate,
		})
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"orders"},
		[]string{
			models.ColumnOrderID,
			models.ColumnCustomerID,
			models.ColumnCustomerCity,
			models.ColumnPrice,
			models.ColumnOrderApprovedAt,
			models.ColumnEstimatedDeliveryDate,
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy orders: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]models.OrderRecord, error) {
	query := `
        SELECT
            order_id, customer_id, customer_city, price::text,
            order_approved_at, order_estimated_delivery_date
        FROM orders
        ORDER BY row_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.OrderRecord
	for rows.Next() {
		var rec models.OrderRecord
		var price string
		err := rows.Scan(
			&rec.OrderID,
			&rec.CustomerID,
			&rec.CustomerCity,
			&price,
			&rec.OrderApprovedAt,
			&rec.OrderEstimatedDeliveryDate,
		)
		if err != nil {
			return nil, err
		}
		if rec.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("order %s: %w", rec.OrderID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count)
	return count, err
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE orders")
	return err
}
