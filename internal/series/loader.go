package series

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"Hindsight/internal/model"
)

// DateLayout is the calendar date format used throughout: YYYY-MM-DD.
const DateLayout = "2006-01-02"

// Keys of the AlphaVantage daily payload.
const (
	metadataKey   = "Meta Data"
	symbolKey     = "2. Symbol"
	timeSeriesKey = "Time Series (Daily)"

	dailyOpenKey   = "1. open"
	dailyHighKey   = "2. high"
	dailyLowKey    = "3. low"
	dailyCloseKey  = "4. close"
	dailyVolumeKey = "5. volume"
)

// avPayload mirrors the AlphaVantage TIME_SERIES_DAILY response shape:
//
//	{
//	    "Meta Data": { "2. Symbol": "X", ... },
//	    "Time Series (Daily)": {
//	        "2022-04-21": { "1. open": "37.0000", "2. high": ..., ... },
//	        ...
//	    }
//	}
type avPayload struct {
	MetaData   map[string]string            `json:"Meta Data"`
	TimeSeries map[string]map[string]string `json:"Time Series (Daily)"`
}

// Parse decodes an AlphaVantage-style daily payload into a date-ordered
// PriceSeries. A missing or non-numeric OHLC field for any listed date yields
// a MalformedInputError.
func Parse(data []byte) (*model.PriceSeries, error) {
	var payload avPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode price payload: %w", err)
	}
	if len(payload.TimeSeries) == 0 {
		return nil, fmt.Errorf("price payload has no %q entries", timeSeriesKey)
	}

	bars := make([]model.DailyBar, 0, len(payload.TimeSeries))
	for dateStr, fields := range payload.TimeSeries {
		date, err := ParseDate(dateStr)
		if err != nil {
			return nil, &MalformedInputError{Date: dateStr, Field: "date", Reason: "not a YYYY-MM-DD date"}
		}
		open, err := requireField(dateStr, fields, dailyOpenKey)
		if err != nil {
			return nil, err
		}
		high, err := requireField(dateStr, fields, dailyHighKey)
		if err != nil {
			return nil, err
		}
		low, err := requireField(dateStr, fields, dailyLowKey)
		if err != nil {
			return nil, err
		}
		closePrice, err := requireField(dateStr, fields, dailyCloseKey)
		if err != nil {
			return nil, err
		}
		bar := model.DailyBar{Date: date, Open: open, High: high, Low: low, Close: closePrice}
		// Volume is informational; tolerate sources that omit it.
		if v, ok := fields[dailyVolumeKey]; ok {
			if vol, err := strconv.ParseFloat(v, 64); err == nil {
				bar.Volume = vol
			}
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	return &model.PriceSeries{Symbol: payload.MetaData[symbolKey], Bars: bars}, nil
}

// ParseFile reads and parses a saved payload from disk.
func ParseFile(path string) (*model.PriceSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price data: %w", err)
	}
	return Parse(data)
}

// FromBars builds a validated series from an already-tabular source. Bars must
// be strictly ascending by date with no duplicates.
func FromBars(symbol string, bars []model.DailyBar) (*model.PriceSeries, error) {
	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Date.Before(bars[i].Date) {
			return nil, fmt.Errorf("bars out of order at %s", bars[i].Date.Format(DateLayout))
		}
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars}, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func requireField(date string, fields map[string]string, key string) (float64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, &MalformedInputError{Date: date, Field: key, Reason: "missing"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &MalformedInputError{Date: date, Field: key, Reason: "non-numeric value " + strconv.Quote(raw)}
	}
	return v, nil
}
