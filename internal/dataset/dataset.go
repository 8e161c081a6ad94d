package dataset

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/chrisdamba/ecomdash/internal/models"
)

// Dataset is the loaded transactions table, sorted by approval time.
// MinDate and MaxDate span the approval timestamps of the whole table and
// seed the dashboard's default range.
type Dataset struct {
	Records []models.OrderRecord
	MinDate time.Time
	MaxDate time.Time
}

// New sorts a copy of records ascending by approval time, rows without one
// last, and records the approval bounds.
func New(records []models.OrderRecord) *Dataset {
	sorted := make([]models.OrderRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].OrderApprovedAt, sorted[j].OrderApprovedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	ds := &Dataset{Records: sorted}
	for _, r := range sorted {
		if r.OrderApprovedAt == nil {
			// nil rows are sorted last
			break
		}
		if ds.MinDate.IsZero() || r.OrderApprovedAt.Before(ds.MinDate) {
			ds.MinDate = *r.OrderApprovedAt
		}
		if r.OrderApprovedAt.After(ds.MaxDate) {
			ds.MaxDate = *r.OrderApprovedAt
		}
	}
	return ds
}

// FullRange is the default dashboard range.
func (d *Dataset) FullRange() models.DateRange {
	return models.NewDateRange(d.MinDate, d.MaxDate)
}

func (d *Dataset) Len() int {
	return len(d.Records)
}

// Source yields the raw rows of the transactions table.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]models.OrderRecord, error)
}

// Load reads src and builds a Dataset.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	records, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src.Name(), err)
	}
	return New(records), nil
}
