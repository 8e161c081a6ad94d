package output

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/chrisdamba/ecomdash/internal/cloudstorage"
	"github.com/chrisdamba/ecomdash/internal/models"
)

// Snapshot is one rerun of the dashboard captured for export.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`
	models.ViewModel
}

func (s *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

type OutputDestination interface {
	WriteReport(topic string, snap *Snapshot) error
	Close() error
}

type Options struct {
	Format      string
	Destination string // local or s3
	BasePath    string
	Folder      string
	Region      string
	Bucket      string
	Kafka       models.KafkaConfig
}

// partitionPath lays reports out by generation time.
func partitionPath(topic string, t time.Time) string {
	year, month, day := t.Date()
	return filepath.Join(topic, fmt.Sprintf("year=%d/month=%02d/day=%02d/hour=%02d", year, month, day, t.Hour()))
}

// NewDestination picks where a report goes: Kafka when enabled, otherwise a
// file format under BasePath or in a bucket, otherwise the console.
func NewDestination(ctx context.Context, opts Options) (OutputDestination, error) {
	if opts.Kafka.Enabled {
		return NewKafkaOutput(opts.Kafka.BrokerList)
	}

	var factory cloudstorage.CloudWriterFactory
	if opts.Destination == "s3" {
		store, err := cloudstorage.NewS3Store(ctx, opts.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		factory = store
	}

	switch opts.Format {
	case "", models.FormatConsole:
		return NewConsoleOutput(nil), nil
	case models.FormatJSON:
		return NewJSONOutput(opts.BasePath, opts.Folder, factory, opts.Bucket), nil
	case models.FormatCSV:
		return NewCSVOutput(opts.BasePath, opts.Folder, factory, opts.Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}
