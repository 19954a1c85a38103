// Package sidra wraps the IBGE SIDRA values API. It fetches raw tabular
// records per dataset and does not persist anything.
package sidra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"ecotrack/internal/config"
	"ecotrack/internal/model"
)

var (
	// ErrSourceUnavailable marks network or HTTP failures after the retry
	// budget is spent. Retryable at the run level.
	ErrSourceUnavailable = errors.New("sidra: source unavailable")

	// ErrSourceFormat marks an unexpected response shape. Not retryable;
	// the dataset catalog needs a code update.
	ErrSourceFormat = errors.New("sidra: unexpected response format")
)

// Client is a SIDRA API client with bounded retry.
type Client struct {
	base        string
	http        *http.Client
	log         *zap.Logger
	maxAttempts int
	backoff     time.Duration
}

// New builds a Client from config. The logger is required.
func New(cfg config.SidraConfig, log *zap.Logger) *Client {
	return &Client{
		base:        strings.TrimRight(cfg.BaseURL, "/"),
		http:        &http.Client{Timeout: cfg.Timeout.Std()},
		log:         log,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff.Std(),
	}
}

// Fetch retrieves all raw records for one dataset. The first element of the
// SIDRA response is a header row and is skipped.
func (c *Client) Fetch(ctx context.Context, ds Dataset) ([]model.RawRecord, error) {
	reqURL := c.valuesURL(ds)

	body, err := c.getWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: table %s: %v", ErrSourceFormat, ds.Table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: table %s: empty response", ErrSourceFormat, ds.Table)
	}

	catCol := ds.categoryColumn()
	if _, ok := rows[0][catCol]; !ok {
		return nil, fmt.Errorf("%w: table %s: column %s not found", ErrSourceFormat, ds.Table, catCol)
	}

	records := make([]model.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header row
		records = append(records, model.RawRecord{
			Sector:    ds.Sector,
			Indicator: ds.Indicator,
			Category:  row[catCol],
			Period:    row["D2N"],
			Value:     row["V"],
		})
	}

	c.log.Info("records extracted",
		zap.String("table", ds.Table),
		zap.String("sector", ds.Sector),
		zap.String("indicator", ds.Indicator),
		zap.Int("count", len(records)))
	return records, nil
}

// valuesURL builds the /values path for a dataset. Classification maps are
// appended in sorted key order so the URL is stable.
func (c *Client) valuesURL(ds Dataset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/values/t/%s/n1/all/v/%s/p/%s", c.base, ds.Table, ds.Variable, url.PathEscape(ds.Period))

	if ds.Classification != "" {
		b.WriteString("/c" + ds.Classification)
	}
	if ds.Classifications != nil {
		keys := make([]string, 0, len(ds.Classifications))
		for k := range ds.Classifications {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "/c%s/%s", k, ds.Classifications[k])
		}
	}
	return b.String()
}

// getWithRetry performs the GET with exponential backoff. Network errors
// and 5xx responses are retried; other HTTP errors fail immediately as
// unavailable since SIDRA signals bad requests with 4xx.
func (c *Client) getWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	delay := c.backoff
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, retryable, err := c.get(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}

		c.log.Warn("sidra request failed",
			zap.String("url", reqURL),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.maxAttempts),
			zap.Error(err))

		if attempt == c.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, lastErr)
}

func (c *Client) get(ctx context.Context, reqURL string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return body, false, nil
}
