package adapters

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"voyage-tracker/internal/core/config"
	"voyage-tracker/internal/core/httpclient"
	"voyage-tracker/internal/core/logger"
	"voyage-tracker/internal/features/underway/domain"

	"go.uber.org/zap"
)

// WFSAdapter fetches underway observations from a GeoServer WFS endpoint
// using GetFeature requests with CSV output.
type WFSAdapter struct {
	baseURL  string
	typeName string
	pageSize int
	client   *http.Client
	logger   *zap.Logger
}

// csvTimeLayouts are the datetime renderings the feed has been observed to
// produce. Layouts without a zone parse as UTC.
var csvTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NewWFSAdapter creates a new WFSAdapter from the feed configuration.
func NewWFSAdapter(cfg config.FeedConfig) *WFSAdapter {
	return &WFSAdapter{
		baseURL:  cfg.BaseURL,
		typeName: cfg.TypeName,
		pageSize: cfg.PageSize,
		client:   httpclient.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second),
		logger:   logger.Get(),
	}
}

// Fetch retrieves observations from the feed. A nil since requests the full
// history; otherwise a CQL filter restricts the response to observations
// strictly after since. When a page size is configured the request is split
// into startIndex/count pages sorted by datetime.
func (a *WFSAdapter) Fetch(ctx context.Context, since *time.Time) ([]domain.Observation, error) {
	if a.pageSize <= 0 {
		return a.fetchPage(ctx, since, -1, -1)
	}

	var all []domain.Observation
	for offset := 0; ; offset += a.pageSize {
		page, err := a.fetchPage(ctx, since, offset, a.pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < a.pageSize {
			break
		}
	}
	return all, nil
}

// fetchPage performs a single GetFeature request. Negative offset/count
// disable paging parameters.
func (a *WFSAdapter) fetchPage(ctx context.Context, since *time.Time, offset, count int) ([]domain.Observation, error) {
	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", "2.0.0")
	params.Set("request", "GetFeature")
	params.Set("typeName", a.typeName)
	params.Set("outputFormat", "csv")

	if since != nil {
		params.Set("cql_filter", fmt.Sprintf("datetime > '%s'", since.UTC().Format(time.RFC3339)))
	}
	if count >= 0 {
		// Paged requests need a stable order to be reproducible.
		params.Set("sortBy", "datetime")
		params.Set("startIndex", strconv.Itoa(offset))
		params.Set("count", strconv.Itoa(count))
	}

	reqURL := a.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status: %d", resp.StatusCode)
	}

	observations, skipped, err := a.parseCSV(resp.Body)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Feed page fetched",
		zap.Int("observations", len(observations)),
		zap.Int("skipped", skipped),
		zap.Bool("incremental", since != nil),
	)

	return observations, nil
}

// parseCSV decodes a GetFeature CSV body. Columns are located by header
// name so extra feed columns are ignored. Malformed rows are skipped with
// a warning rather than failing the whole fetch.
func (a *WFSAdapter) parseCSV(body io.Reader) ([]domain.Observation, int, error) {
	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read feed header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"gml_id", "datetime", "latitude", "longitude"} {
		if _, ok := cols[required]; !ok {
			return nil, 0, fmt.Errorf("feed response missing column: %s", required)
		}
	}

	var observations []domain.Observation
	skipped := 0

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			a.logger.Warn("Skipping unreadable feed row", zap.Int("line", line), zap.Error(err))
			continue
		}

		obs, err := a.parseRecord(record, cols)
		if err != nil {
			skipped++
			a.logger.Warn("Skipping malformed feed row", zap.Int("line", line), zap.Error(err))
			continue
		}

		observations = append(observations, obs)
	}

	return observations, skipped, nil
}

// parseRecord maps one CSV row onto an Observation.
func (a *WFSAdapter) parseRecord(record []string, cols map[string]int) (domain.Observation, error) {
	field := func(name string) (string, error) {
		idx := cols[name]
		if idx >= len(record) {
			return "", fmt.Errorf("row missing field: %s", name)
		}
		return strings.TrimSpace(record[idx]), nil
	}

	gmlID, err := field("gml_id")
	if err != nil {
		return domain.Observation{}, err
	}
	rawTime, err := field("datetime")
	if err != nil {
		return domain.Observation{}, err
	}
	rawLat, err := field("latitude")
	if err != nil {
		return domain.Observation{}, err
	}
	rawLon, err := field("longitude")
	if err != nil {
		return domain.Observation{}, err
	}

	ts, err := parseFeedTime(rawTime)
	if err != nil {
		return domain.Observation{}, err
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("invalid latitude %q: %w", rawLat, err)
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("invalid longitude %q: %w", rawLon, err)
	}

	obs := domain.Observation{
		GMLID: gmlID,
		Time:  ts,
		Lat:   lat,
		Lon:   lon,
	}
	if err := obs.Validate(); err != nil {
		return domain.Observation{}, err
	}

	return obs, nil
}

// parseFeedTime tries the known feed datetime layouts in order.
func parseFeedTime(raw string) (time.Time, error) {
	for _, layout := range csvTimeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable datetime %q", raw)
}

// HealthCheck verifies the feed endpoint answers a minimal GetFeature probe.
func (a *WFSAdapter) HealthCheck(ctx context.Context) error {
	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", "2.0.0")
	params.Set("request", "GetFeature")
	params.Set("typeName", a.typeName)
	params.Set("outputFormat", "csv")
	params.Set("count", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("health check failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}

	return nil
}
