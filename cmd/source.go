package cmd

import (
	"context"
	"fmt"

	"github.com/chrisdamba/ecomdash/internal/cloudstorage"
	"github.com/chrisdamba/ecomdash/internal/dataset"
	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/chrisdamba/ecomdash/internal/repositories/postgres"
)

// newSource builds the configured table source. The returned cleanup releases
// any connection it opened.
func newSource(ctx context.Context, cfg *models.Config) (dataset.Source, func(), error) {
	noop := func() {}

	switch cfg.Data.Source {
	case models.SourceCSV, models.SourceParquet:
		return dataset.NewFileSource(cfg.Data.Path, cfg.Data.Source), noop, nil

	case models.SourceS3:
		bucket, key, err := cloudstorage.ParseURI(cfg.Data.Path, cfg.CloudStorage.BucketName)
		if err != nil {
			return nil, nil, err
		}
		store, err := cloudstorage.NewS3Store(ctx, cfg.CloudStorage.Region)
		if err != nil {
			return nil, nil, err
		}
		return &dataset.ObjectSource{Store: store, Bucket: bucket, Key: key}, noop, nil

	case models.SourcePostgres:
		pool, err := postgres.Connect(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewOrderRepository(pool)
		return &dataset.RepositorySource{Repo: repo}, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported data source: %s", cfg.Data.Source)
	}
}
