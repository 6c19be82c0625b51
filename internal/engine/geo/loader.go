package geo

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// DefaultDatasetURL is the simplified world topology used when no source is
// configured.
const DefaultDatasetURL = "https://cdn.jsdelivr.net/npm/world-atlas@2/countries-110m.json"

// Fetcher downloads a URL.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// AssetCache persists downloaded dataset bytes between runs.
type AssetCache interface {
	GetAsset(ctx context.Context, key string) ([]byte, bool, error)
	PutAsset(ctx context.Context, key string, data []byte) error
}

// DatasetLoader loads the boundary dataset once and shares it. A failed load
// leaves nothing behind, so the next call tries again from scratch.
type DatasetLoader struct {
	source  string
	fetcher Fetcher
	cache   AssetCache
	reg     *Registry
	logger  *log.Logger

	mu    sync.Mutex
	store *BoundaryStore
}

// NewDatasetLoader loads from source, a URL or a file path. fetcher and
// cache may be nil; a nil fetcher only supports file sources.
func NewDatasetLoader(source string, fetcher Fetcher, cache AssetCache, reg *Registry, logger *log.Logger) *DatasetLoader {
	if source == "" {
		source = DefaultDatasetURL
	}
	if reg == nil {
		reg = DefaultRegistry()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &DatasetLoader{source: source, fetcher: fetcher, cache: cache, reg: reg, logger: logger}
}

// Source is where the loader reads from.
func (l *DatasetLoader) Source() string { return l.source }

// Load returns the boundary store, reading the dataset on first use.
func (l *DatasetLoader) Load(ctx context.Context) (*BoundaryStore, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.store != nil {
		return l.store, nil
	}

	store, err := l.load(ctx)
	if err != nil {
		l.logger.Printf("DATASET_FAIL source=%s err=%v", l.source, err)
		return nil, err
	}
	l.logger.Printf("DATASET_OK source=%s %s", l.source, store)
	l.store = store
	return store, nil
}

// Loaded reports whether a dataset is held.
func (l *DatasetLoader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store != nil
}

// Reset drops the loaded dataset.
func (l *DatasetLoader) Reset() {
	l.mu.Lock()
	l.store = nil
	l.mu.Unlock()
}

func (l *DatasetLoader) load(ctx context.Context) (*BoundaryStore, error) {
	if !isRemote(l.source) {
		data, err := os.ReadFile(l.source)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %w", err)
		}
		return l.decode(data)
	}

	if l.cache != nil {
		data, ok, err := l.cache.GetAsset(ctx, l.source)
		switch {
		case err != nil:
			l.logger.Printf("DATASET_CACHE_ERR source=%s err=%v", l.source, err)
		case ok:
			store, err := l.decode(data)
			if err == nil {
				l.logger.Printf("DATASET_CACHE_HIT source=%s bytes=%d", l.source, len(data))
				return store, nil
			}
			l.logger.Printf("DATASET_CACHE_BAD source=%s err=%v", l.source, err)
		}
	}

	if l.fetcher == nil {
		return nil, fmt.Errorf("fetching dataset %s: no fetcher configured", l.source)
	}
	data, err := l.fetcher.Get(ctx, l.source)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	store, err := l.decode(data)
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		if err := l.cache.PutAsset(ctx, l.source, data); err != nil {
			l.logger.Printf("DATASET_CACHE_ERR source=%s err=%v", l.source, err)
		}
	}
	return store, nil
}

func (l *DatasetLoader) decode(data []byte) (*BoundaryStore, error) {
	fc, err := DecodeDataset(data)
	if err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	store, err := NewBoundaryStore(fc, l.reg)
	if err != nil {
		return nil, fmt.Errorf("indexing dataset: %w", err)
	}
	return store, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
