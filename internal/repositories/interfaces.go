package repositories

import (
	"context"

	"github.com/chrisdamba/ecomdash/internal/models"
)

type OrderRepository interface {
	EnsureSchema(ctx context.Context) error
	BulkCreate(ctx context.Context, records []models.OrderRecord) error
	GetAll(ctx context.Context) ([]models.OrderRecord, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
