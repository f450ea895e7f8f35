package collector

import (
	"Hindsight/internal/model"
	"Hindsight/internal/series"
)

// FileFetcher serves previously saved snapshots from the cache directory,
// for offline runs.
type FileFetcher struct {
	Cache *SnapshotCache
}

// NewFileFetcher creates a fetcher over an existing snapshot cache.
func NewFileFetcher(cache *SnapshotCache) *FileFetcher {
	return &FileFetcher{Cache: cache}
}

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) FetchDailySeries(symbol string) (*model.PriceSeries, error) {
	data, err := f.Cache.Load(symbol)
	if err != nil {
		return nil, err
	}
	s, err := series.Parse(data)
	if err != nil {
		return nil, err
	}
	if s.Symbol == "" {
		s.Symbol = symbol
	}
	return s, nil
}
