package dataset

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
)

// FormatFromPath picks the table format from a file or object name.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return models.FormatParquet
	}
	return models.FormatCSV
}

// FileSource reads a local CSV or Parquet file.
type FileSource struct {
	Path   string
	Format string
}

// NewFileSource reads path as format. A .csv or .parquet extension wins over
// format, which only decides for other names.
func NewFileSource(path, format string) *FileSource {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".parquet":
		format = FormatFromPath(path)
	}
	if format == "" {
		format = FormatFromPath(path)
	}
	return &FileSource{Path: path, Format: format}
}

func (f *FileSource) Name() string {
	return fmt.Sprintf("%s file %s", f.Format, f.Path)
}

func (f *FileSource) Records(ctx context.Context) ([]models.OrderRecord, error) {
	if f.Format == models.FormatParquet {
		fr, err := local.NewLocalFileReader(f.Path)
		if err != nil {
			return nil, err
		}
		defer fr.Close()
		return ReadParquet(fr)
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

// ObjectGetter fetches whole objects from cloud storage.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// ObjectSource reads a CSV or Parquet object from cloud storage.
type ObjectSource struct {
	Store  ObjectGetter
	Bucket string
	Key    string
}

func (o *ObjectSource) Name() string {
	return fmt.Sprintf("object %s/%s", o.Bucket, o.Key)
}

func (o *ObjectSource) Records(ctx context.Context) ([]models.OrderRecord, error) {
	data, err := o.Store.GetObject(ctx, o.Bucket, o.Key)
	if err != nil {
		return nil, err
	}
	if FormatFromPath(o.Key) == models.FormatParquet {
		return ReadParquet(NewObjectFile(data))
	}
	return ReadCSV(bytes.NewReader(data))
}

// RecordLister is satisfied by the order repositories.
type RecordLister interface {
	GetAll(ctx context.Context) ([]models.OrderRecord, error)
}

// RepositorySource reads the table from a database.
type RepositorySource struct {
	Repo RecordLister
}

func (r *RepositorySource) Name() string {
	return "orders table"
}

func (r *RepositorySource) Records(ctx context.Context) ([]models.OrderRecord, error) {
	return r.Repo.GetAll(ctx)
}
