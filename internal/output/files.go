package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/chrisdamba/ecomdash/internal/cloudstorage"
)

// fileSink opens report files locally or, with a factory, as bucket objects.
type fileSink struct {
	basePath           string
	folder             string
	cloudWriterFactory cloudstorage.CloudWriterFactory
	cloudBucketName    string
}

func (s *fileSink) create(rel string) (io.WriteCloser, string, error) {
	if s.cloudWriterFactory != nil {
		objectPath := path.Join(s.folder, filepath.ToSlash(rel))
		w, err := s.cloudWriterFactory.NewWriter(s.cloudBucketName, objectPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return w, fmt.Sprintf("s3://%s/%s", s.cloudBucketName, objectPath), nil
	}

	fullPath := filepath.Join(s.basePath, s.folder, rel)
	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return nil, "", err
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return nil, "", err
	}
	return f, fullPath, nil
}

type JSONOutput struct {
	fileSink
	Written []string
}

func NewJSONOutput(basePath, folder string, factory cloudstorage.CloudWriterFactory, bucket string) *JSONOutput {
	return &JSONOutput{fileSink: fileSink{
		basePath:           basePath,
		folder:             folder,
		cloudWriterFactory: factory,
		cloudBucketName:    bucket,
	}}
}

func (j *JSONOutput) WriteReport(topic string, snap *Snapshot) error {
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	rel := filepath.Join(partitionPath(topic, snap.GeneratedAt), fmt.Sprintf("report_%d.json", snap.GeneratedAt.Unix()))
	w, where, err := j.create(rel)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	j.Written = append(j.Written, where)
	return nil
}

func (j *JSONOutput) Close() error {
	return nil
}

// CSVOutput writes the monthly trend and the city counts as two tables.
type CSVOutput struct {
	fileSink
	Written []string
}

func NewCSVOutput(basePath, folder string, factory cloudstorage.CloudWriterFactory, bucket string) *CSVOutput {
	return &CSVOutput{fileSink: fileSink{
		basePath:           basePath,
		folder:             folder,
		cloudWriterFactory: factory,
		cloudBucketName:    bucket,
	}}
}

func (c *CSVOutput) WriteReport(topic string, snap *Snapshot) error {
	dir := partitionPath(topic, snap.GeneratedAt)

	monthly := [][]string{{"month", "order_count", "revenue"}}
	for _, b := range snap.MonthlyOrders {
		monthly = append(monthly, []string{
			b.Month.Format("2006-01"),
			strconv.Itoa(b.OrderCount),
			b.Revenue.StringFixed(2),
		})
	}
	if err := c.writeTable(filepath.Join(dir, "monthly_orders.csv"), monthly); err != nil {
		return err
	}

	cities := [][]string{{"city", "customers"}}
	for _, city := range snap.Cities {
		cities = append(cities, []string{city.City, strconv.Itoa(city.Customers)})
	}
	return c.writeTable(filepath.Join(dir, "customer_cities.csv"), cities)
}

func (c *CSVOutput) writeTable(rel string, rows [][]string) error {
	w, where, err := c.create(rel)
	if err != nil {
		return err
	}
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.WriteAll(rows); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	c.Written = append(c.Written, where)
	return nil
}

func (c *CSVOutput) Close() error {
	return nil
}
