package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"savora-storefront/internal/logger"

	"go.uber.org/zap"
)

// Result is the single best match for a lookup.
type Result struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Client wraps the external geocoding provider. Lookups resolve to one best
// match; having no match is a nil result, not an error, so address flows can
// surface a message and keep prior state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type searchRow struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search resolves a free-text query to its best match, nil when nothing matches.
func (c *Client) Search(ctx context.Context, query string) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("client", "Geo"),
		zap.String("method", "Search"),
	)

	u := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(query))

	var rows []searchRow
	if err := c.getJSON(ctx, u, &rows); err != nil {
		log.Error("search failed", zap.Error(err))
		return nil, err
	}

	if len(rows) == 0 {
		log.Info("no geocoding match", zap.String("query", query))
		return nil, nil
	}

	return rowToResult(rows[0])
}

// Reverse resolves coordinates back to a display address, nil when unknown.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("client", "Geo"),
		zap.String("method", "Reverse"),
	)

	u := fmt.Sprintf("%s/reverse?format=json&lat=%s&lon=%s",
		c.baseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lng, 'f', -1, 64),
	)

	var row struct {
		searchRow
		Error string `json:"error"`
	}
	if err := c.getJSON(ctx, u, &row); err != nil {
		log.Error("reverse lookup failed", zap.Error(err))
		return nil, err
	}

	if row.Error != "" || row.DisplayName == "" {
		log.Info("no reverse match",
			zap.Float64("lat", lat), zap.Float64("lng", lng))
		return nil, nil
	}

	return rowToResult(row.searchRow)
}

func rowToResult(row searchRow) (*Result, error) {
	lat, err := strconv.ParseFloat(row.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude %q: %w", row.Lat, err)
	}
	lng, err := strconv.ParseFloat(row.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude %q: %w", row.Lon, err)
	}
	return &Result{Address: row.DisplayName, Lat: lat, Lng: lng}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read geocoder response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoder error: %s", string(body))
	}

	return json.Unmarshal(body, out)
}
