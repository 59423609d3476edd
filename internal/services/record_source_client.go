package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"asset-dashboard-api/internal/config"
	"asset-dashboard-api/internal/dto"
	"asset-dashboard-api/internal/logging"
	"asset-dashboard-api/internal/models"
)

const maxErrorBodyLength = 256

// AuthTransport attaches the fixed credential and identity headers the
// record API expects on every request.
type AuthTransport struct {
	cfg  *config.UpstreamConfig
	base http.RoundTripper
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	req.Header.Set("Authorization", "Bearer "+t.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Role", t.cfg.Role)
	req.Header.Set("X-Locale", t.cfg.Locale)
	req.Header.Set("X-App", t.cfg.App)
	req.Header.Set("X-Timezone", t.cfg.Timezone)
	req.Header.Set("X-Authentication", t.cfg.Authentication)
	if t.cfg.Hostname != "" {
		req.Header.Set("X-Hostname", t.cfg.Hostname)
	}

	return t.base.RoundTrip(req)
}

// RecordSourceClient issues single list requests against the record API.
// It never retries; a failed request is reported once as an UpstreamError.
type RecordSourceClient struct {
	baseURL string
	client  *http.Client
	breaker CircuitBreakerInterface
	metrics MetricsRecorderInterface
	logger  *slog.Logger
}

// NewRecordSourceClient creates a client for the configured record API.
// breaker may be nil to disable fail-fast behaviour.
func NewRecordSourceClient(
	cfg *config.UpstreamConfig,
	breaker CircuitBreakerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) RecordSourceClientInterface {

	transport := &AuthTransport{
		cfg:  cfg,
		base: http.DefaultTransport,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}

	return &RecordSourceClient{
		baseURL: cfg.BaseURL,
		client:  client,
		breaker: breaker,
		metrics: metrics,
		logger:  logger,
	}
}

// ListPage fetches one page of collection.
func (c *RecordSourceClient) ListPage(ctx context.Context, collection string, query PageQuery) (*models.Page, error) {
	if c.breaker != nil && c.breaker.IsOpen() {
		c.recordRequest(collection, "circuit_open")
		return nil, &UpstreamError{Collection: collection, Err: ErrCircuitBreakerOpen}
	}

	req, err := c.buildRequest(ctx, collection, query)
	if err != nil {
		return nil, &UpstreamError{Collection: collection, Err: err}
	}

	start := time.Now()
	resp, body, err := c.do(req)
	c.metrics.RecordProcessingTime(MetricUpstreamRequest, time.Since(start))

	if err != nil {
		c.recordRequest(collection, "error")
		if ctx.Err() == nil {
			c.recordFailure()
		}
		return nil, &UpstreamError{Collection: collection, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recordRequest(collection, strconv.Itoa(resp.StatusCode))
		c.recordFailure()

		c.logger.ErrorContext(ctx, "record API returned an error status",
			"collection", collection,
			"page", query.Page,
			"status", resp.StatusCode,
			"trace_id", logging.TraceID(ctx),
		)

		return nil, &UpstreamError{
			Collection: collection,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrUnexpectedStatus, upstreamMessage(body)),
		}
	}

	c.recordRequest(collection, strconv.Itoa(resp.StatusCode))
	c.recordSuccess()

	page, err := decodePage(collection, body)
	if err != nil {
		c.logger.ErrorContext(ctx, "record API returned a malformed payload",
			"collection", collection,
			"page", query.Page,
			"error", err,
			"trace_id", logging.TraceID(ctx),
		)
		return nil, err
	}

	c.logger.DebugContext(ctx, "record API page fetched",
		"collection", collection,
		"page", query.Page,
		"records", len(page.Records),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return page, nil
}

func (c *RecordSourceClient) buildRequest(ctx context.Context, collection string, query PageQuery) (*http.Request, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("pageSize", strconv.Itoa(query.PageSize))

	endpoint := fmt.Sprintf("%s/api/%s:list?%s", c.baseURL, url.PathEscape(collection), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return req, nil
}

func (c *RecordSourceClient) do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorContext(req.Context(), "record API request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"error", err,
		)
		return nil, nil, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()

	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}

	return resp, body, nil
}

func (c *RecordSourceClient) recordRequest(collection, status string) {
	c.metrics.IncrementCounter(MetricUpstreamRequest, map[string]string{
		"collection": collection,
		"status":     status,
	})
}

func (c *RecordSourceClient) recordFailure() {
	if c.breaker == nil {
		return
	}
	c.breaker.RecordFailure()
	c.reportBreakerState()
}

func (c *RecordSourceClient) recordSuccess() {
	if c.breaker == nil {
		return
	}
	c.breaker.RecordSuccess()
	c.reportBreakerState()
}

func (c *RecordSourceClient) reportBreakerState() {
	c.metrics.RecordGauge(MetricCircuitBreakerState, float64(c.breaker.GetState()), map[string]string{
		"service": "record_api",
	})
}

// decodePage turns a list response body into a page. The record list is
// taken from the first envelope key present, then from a bare array; a lone
// object is treated as a one-record page.
func decodePage(collection string, body []byte) (*models.Page, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &MalformedResponseError{Collection: collection, Reason: "empty body"}
	}

	switch trimmed[0] {
	case '[':
		records, err := decodeRecords(trimmed)
		if err != nil {
			return nil, &MalformedResponseError{Collection: collection, Reason: "top-level array is not a list of records", Err: err}
		}
		return &models.Page{Records: records}, nil

	case '{':
		var envelope map[string]json.RawMessage
		if err := decodeJSON(trimmed, &envelope); err != nil {
			return nil, &MalformedResponseError{Collection: collection, Reason: "invalid JSON", Err: err}
		}

		for _, key := range dto.ListEnvelopeKeys {
			raw, ok := envelope[key]
			if !ok {
				continue
			}
			records, err := decodeRecords(raw)
			if err != nil {
				return nil, &MalformedResponseError{Collection: collection, Reason: fmt.Sprintf("%q is not a list of records", key), Err: err}
			}
			return &models.Page{Records: records, Total: decodeCount(envelope[dto.ListMetaKey])}, nil
		}

		var record models.Record
		if err := decodeJSON(trimmed, &record); err != nil {
			return nil, &MalformedResponseError{Collection: collection, Reason: "invalid JSON", Err: err}
		}
		return &models.Page{Records: []models.Record{record}}, nil

	default:
		return nil, &MalformedResponseError{Collection: collection, Reason: "expected a JSON object or array"}
	}
}

func decodeRecords(raw json.RawMessage) ([]models.Record, error) {
	if isJSONNull(raw) {
		return []models.Record{}, nil
	}

	var items []any
	if err := decodeJSON(raw, &items); err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, not an object", i, item)
		}
		records = append(records, models.Record(obj))
	}
	return records, nil
}

// decodeCount returns meta.count when it is a non-negative whole number.
func decodeCount(raw json.RawMessage) *int {
	if len(raw) == 0 || isJSONNull(raw) {
		return nil
	}

	var meta dto.ListMeta
	if err := json.Unmarshal(raw, &meta); err != nil || len(meta.Count) == 0 {
		return nil
	}

	var count any
	if err := decodeJSON(meta.Count, &count); err != nil {
		return nil
	}

	n, ok := count.(json.Number)
	if !ok {
		return nil
	}
	if i, err := n.Int64(); err == nil {
		if i < 0 {
			return nil
		}
		total := int(i)
		return &total
	}
	f, err := n.Float64()
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return nil
	}
	total := int(f)
	return &total
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func upstreamMessage(body []byte) string {
	var errResp dto.RecordAPIErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if msg := errResp.FirstMessage(); msg != "" {
			return msg
		}
	}

	msg := string(bytes.TrimSpace(body))
	if len(msg) > maxErrorBodyLength {
		msg = msg[:maxErrorBodyLength] + "..."
	}
	if msg == "" {
		msg = "empty body"
	}
	return msg
}
