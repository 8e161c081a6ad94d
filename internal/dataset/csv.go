package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/shopspring/decimal"
)

var ErrMissingColumn = errors.New("missing column")

// ReadCSV parses the transactions table. Unknown columns, including the
// unnamed row index, are ignored.
func ReadCSV(r io.Reader) ([]models.OrderRecord, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range models.RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var records []models.OrderRecord
	for line := 2; ; line++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, err := parseRow(func(col string) string { return fields[index[col]] })
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(get func(col string) string) (models.OrderRecord, error) {
	rec := models.OrderRecord{
		OrderID:      strings.TrimSpace(get(models.ColumnOrderID)),
		CustomerID:   strings.TrimSpace(get(models.ColumnCustomerID)),
		CustomerCity: strings.TrimSpace(get(models.ColumnCustomerCity)),
	}

	if p := strings.TrimSpace(get(models.ColumnPrice)); p != "" {
		price, err := decimal.NewFromString(p)
		if err != nil {
			return rec, fmt.Errorf("%s: %w", models.ColumnPrice, err)
		}
		rec.Price = price
	}

	var err error
	if rec.OrderApprovedAt, err = ParseTimestamp(get(models.ColumnOrderApprovedAt)); err != nil {
		return rec, fmt.Errorf("%s: %w", models.ColumnOrderApprovedAt, err)
	}
	if rec.OrderEstimatedDeliveryDate, err = ParseTimestamp(get(models.ColumnEstimatedDeliveryDate)); err != nil {
		return rec, fmt.Errorf("%s: %w", models.ColumnEstimatedDeliveryDate, err)
	}
	return rec, nil
}

// WriteCSV writes records in the source layout, leading unnamed index
// column included.
func WriteCSV(w io.Writer, records []models.OrderRecord) error {
	writer := csv.NewWriter(w)
	header := append([]string{""}, models.RequiredColumns...)
	if err := writer.Write(header); err != nil {
		return err
	}
	for i, rec := range records {
		row := []string{
			fmt.Sprintf("%d", i),
			rec.OrderID,
			rec.CustomerID,
			rec.CustomerCity,
			rec.Price.String(),
			FormatTimestamp(rec.OrderApprovedAt),
			FormatTimestamp(rec.OrderEstimatedDeliveryDate),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
