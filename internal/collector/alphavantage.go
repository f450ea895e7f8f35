package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"Hindsight/internal/model"
	"Hindsight/internal/series"
)

// DefaultAlphaVantageURL is the public AlphaVantage endpoint.
const DefaultAlphaVantageURL = "https://www.alphavantage.co"

// AlphaVantageFetcher implements Fetcher against the AlphaVantage
// TIME_SERIES_DAILY API. Fetched payloads are written through to the snapshot
// cache so later backtests can run offline.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Cache   *SnapshotCache
}

// NewAlphaVantageFetcher creates a fetcher with optional proxy support and an
// optional write-through cache.
func NewAlphaVantageFetcher(baseURL, apiKey, proxyURL string, cache *SnapshotCache) *AlphaVantageFetcher {
	if baseURL == "" {
		baseURL = DefaultAlphaVantageURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AlphaVantageFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Cache: cache,
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avStatus carries the error fields AlphaVantage returns with HTTP 200.
type avStatus struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

func (f *AlphaVantageFetcher) FetchDailySeries(symbol string) (*model.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&symbol=%s&outputsize=full&apikey=%s",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(f.APIKey))

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode, string(body))
	}

	// The API reports errors and throttling inside a 200 response.
	var status avStatus
	if err := json.Unmarshal(body, &status); err == nil {
		if status.ErrorMessage != "" {
			return nil, fmt.Errorf("alphavantage api error: %s", status.ErrorMessage)
		}
		if status.Note != "" {
			return nil, fmt.Errorf("alphavantage throttled: %s", status.Note)
		}
	}

	s, err := series.Parse(body)
	if err != nil {
		return nil, err
	}
	if s.Symbol == "" {
		s.Symbol = symbol
	}

	if f.Cache != nil {
		if err := f.Cache.Save(symbol, body); err != nil {
			log.Printf("[WARN] cache snapshot for %s: %v", symbol, err)
		}
	}
	return s, nil
}
