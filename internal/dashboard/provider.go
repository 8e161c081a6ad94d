package dashboard

import (
	"context"
	"sync"

	"github.com/chrisdamba/ecomdash/internal/dataset"
)

// DatasetProvider supplies the table for one rerun. Status reports the last
// table handed out without touching the source.
type DatasetProvider interface {
	Dataset(ctx context.Context) (*dataset.Dataset, error)
	Status() (records int, err error)
}

// StaticProvider serves a table loaded once at startup.
type StaticProvider struct {
	ds *dataset.Dataset
}

func NewStaticProvider(ds *dataset.Dataset) *StaticProvider {
	return &StaticProvider{ds: ds}
}

func (p *StaticProvider) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	return p.ds, nil
}

func (p *StaticProvider) Status() (int, error) {
	return p.ds.Len(), nil
}

// ReloadingProvider reads the source afresh on every rerun and remembers the
// outcome of the latest read.
type ReloadingProvider struct {
	src dataset.Source

	mu      sync.Mutex
	records int
	lastErr error
}

// NewReloadingProvider starts from initial, the table read at startup. It may
// be nil.
func NewReloadingProvider(src dataset.Source, initial *dataset.Dataset) *ReloadingProvider {
	p := &ReloadingProvider{src: src}
	if initial != nil {
		p.records = initial.Len()
	}
	return p
}

func (p *ReloadingProvider) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	ds, err := dataset.Load(ctx, p.src)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = err
	if err == nil {
		p.records = ds.Len()
	}
	return ds, err
}

func (p *ReloadingProvider) Status() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.records, p.lastErr
}
