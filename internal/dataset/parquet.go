package dataset

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/shopspring/decimal"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// ParquetRow is the on-disk Parquet schema of the transactions table.
// Timestamps keep the CSV text layout.
type ParquetRow struct {
	OrderID                    string  `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerID                 string  `parquet:"name=customer_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerCity               string  `parquet:"name=customer_city, type=BYTE_ARRAY, convertedtype=UTF8"`
	Price                      float64 `parquet:"name=price, type=DOUBLE"`
	OrderApprovedAt            *string `parquet:"name=order_approved_at, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	OrderEstimatedDeliveryDate *string `parquet:"name=order_estimated_delivery_date, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

func toParquetRow(rec models.OrderRecord) ParquetRow {
	row := ParquetRow{
		OrderID:      rec.OrderID,
		CustomerID:   rec.CustomerID,
		CustomerCity: rec.CustomerCity,
		Price:        rec.Price.InexactFloat64(),
	}
	if rec.OrderApprovedAt != nil {
		s := FormatTimestamp(rec.OrderApprovedAt)
		row.OrderApprovedAt = &s
	}
	if rec.OrderEstimatedDeliveryDate != nil {
		s := FormatTimestamp(rec.OrderEstimatedDeliveryDate)
		row.OrderEstimatedDeliveryDate = &s
	}
	return row
}

func fromParquetRow(row ParquetRow) (models.OrderRecord, error) {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	rec := models.OrderRecord{
		OrderID:      row.OrderID,
		CustomerID:   row.CustomerID,
		CustomerCity: row.CustomerCity,
		Price:        decimal.NewFromFloat(row.Price),
	}
	var err error
	if rec.OrderApprovedAt, err = ParseTimestamp(deref(row.OrderApprovedAt)); err != nil {
		return rec, fmt.Errorf("%s: %w", models.ColumnOrderApprovedAt, err)
	}
	if rec.OrderEstimatedDeliveryDate, err = ParseTimestamp(deref(row.OrderEstimatedDeliveryDate)); err != nil {
		return rec, fmt.Errorf("%s: %w", models.ColumnEstimatedDeliveryDate, err)
	}
	return rec, nil
}

// ReadParquet reads every row of pf.
func ReadParquet(pf source.ParquetFile) ([]models.OrderRecord, error) {
	pr, err := reader.NewParquetReader(pf, new(ParquetRow), 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetReader: %w", err)
	}
	defer pr.ReadStop()

	rows := make([]ParquetRow, int(pr.GetNumRows()))
	if err := pr.Read(&rows); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	records := make([]models.OrderRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := fromParquetRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteParquetFile writes records to a local Parquet file.
func WriteParquetFile(path string, records []models.OrderRecord) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create local file writer: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(ParquetRow), 4)
	if err != nil {
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, rec := range records {
		if err := pw.Write(toParquetRow(rec)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return pw.WriteStop()
}

// ObjectFile serves an in-memory object, such as one fetched from cloud
// storage, to the Parquet reader. It is read-only.
type ObjectFile struct {
	data []byte
	*bytes.Reader
}

func NewObjectFile(data []byte) *ObjectFile {
	return &ObjectFile{data: data, Reader: bytes.NewReader(data)}
}

// Open hands out an independent cursor over the same bytes; the reader opens
// one per column chunk.
func (o *ObjectFile) Open(name string) (source.ParquetFile, error) {
	return NewObjectFile(o.data), nil
}

func (o *ObjectFile) Create(name string) (source.ParquetFile, error) {
	return nil, errors.New("object file is read-only")
}

func (o *ObjectFile) Write(p []byte) (int, error) {
	return 0, errors.New("object file is read-only")
}

func (o *ObjectFile) Close() error {
	return nil
}
