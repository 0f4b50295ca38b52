package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/whitespace/internal/metrics"
	"github.com/RMahshie/whitespace/internal/repository"
	"github.com/RMahshie/whitespace/pkg/models"
)

// Operation names used in logs and the upstream error metric
const (
	opListLocations  = "list_locations"
	opCreateLocation = "create_location"
	opListScans      = "list_scans"
	opLatestScan     = "latest_scan"
	opUploadScan     = "upload_scan"
)

// Options configures the scan service client
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	RetryWait  time.Duration
	FetchLimit int
}

// Client implements repository.ScanRepository over the scan service REST API
type Client struct {
	client     *resty.Client
	once       *resty.Client // no retries, for requests that are not safe to repeat
	fetchLimit int
	metrics    *metrics.Metrics
}

// NewClient creates a scan service client
func NewClient(opts Options, m *metrics.Metrics) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 2 * time.Second
	}
	if opts.FetchLimit <= 0 {
		opts.FetchLimit = 100
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(opts.Timeout)
	client.SetHeader("Accept", "application/json")
	client.SetRetryCount(opts.Retries)
	client.SetRetryWaitTime(opts.RetryWait)
	client.SetRetryMaxWaitTime(4 * opts.RetryWait)
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return r != nil && r.StatusCode() >= http.StatusInternalServerError
	})

	// POSTs create state upstream, a 5xx may arrive after the write committed
	once := resty.New()
	once.SetBaseURL(baseURL)
	once.SetTimeout(opts.Timeout)
	once.SetHeader("Accept", "application/json")

	return &Client{
		client:     client,
		once:       once,
		fetchLimit: opts.FetchLimit,
		metrics:    m,
	}
}

var _ repository.ScanRepository = (*Client)(nil)

// ListLocations returns every registered monitoring site
func (c *Client) ListLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/locations")
	if err := c.check(opListLocations, resp, err); err != nil {
		return nil, err
	}

	locations := []models.Location{}
	if err := json.Unmarshal(resp.Body(), &locations); err != nil {
		return nil, c.fail(opListLocations, fmt.Errorf("failed to decode locations: %w", err))
	}
	return locations, nil
}

// CreateLocation registers a new monitoring site
func (c *Client) CreateLocation(ctx context.Context, loc models.NewLocation) (*models.Location, error) {
	resp, err := c.once.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(loc).
		Post("/locations")
	if err := c.check(opCreateLocation, resp, err); err != nil {
		return nil, err
	}

	var created models.Location
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return nil, c.fail(opCreateLocation, fmt.Errorf("failed to decode location: %w", err))
	}

	log.Info().Str("locationID", created.ID).Str("name", created.Name).Msg("Location created")
	return &created, nil
}

// ListScans returns scans matching the query, most recent first
func (c *Client) ListScans(ctx context.Context, query models.ScanQuery) ([]models.Scan, error) {
	return c.listScans(ctx, opListScans, query)
}

// LatestScan returns the most recent scan of a location
func (c *Client) LatestScan(ctx context.Context, locationID string) (*models.Scan, error) {
	scans, err := c.listScans(ctx, opLatestScan, models.ScanQuery{LocationID: locationID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(scans) == 0 {
		return nil, fmt.Errorf("no scans for location %s: %w", locationID, repository.ErrNotFound)
	}
	return &scans[0], nil
}

// UploadScan forwards a scan file as multipart form data
func (c *Client) UploadScan(ctx context.Context, upload models.ScanUpload) (*models.Scan, error) {
	resp, err := c.once.R().
		SetContext(ctx).
		SetFileReader("file", upload.Filename, bytes.NewReader(upload.Content)).
		SetFormData(map[string]string{
			"location_id":     upload.LocationID,
			"start_frequency": formatFloat(upload.StartFrequency),
			"end_frequency":   formatFloat(upload.EndFrequency),
		}).
		Post("/scans")
	if err := c.check(opUploadScan, resp, err); err != nil {
		return nil, err
	}

	log.Info().
		Str("locationID", upload.LocationID).
		Str("filename", upload.Filename).
		Int("size", len(upload.Content)).
		Msg("Scan uploaded")

	// The scan service answers with either the stored scan or a bare message
	var w wireScan
	if err := json.Unmarshal(resp.Body(), &w); err != nil || w.ID == "" {
		return nil, nil
	}
	scan := w.toModel()
	return &scan, nil
}

func (c *Client) listScans(ctx context.Context, op string, query models.ScanQuery) ([]models.Scan, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = c.fetchLimit
	}

	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit))
	if query.LocationID != "" {
		req.SetQueryParam("location_id", query.LocationID)
	}

	resp, err := req.Get("/scans")
	if err := c.check(op, resp, err); err != nil {
		return nil, err
	}

	var wire []wireScan
	if err := json.Unmarshal(resp.Body(), &wire); err != nil {
		return nil, c.fail(op, fmt.Errorf("failed to decode scans: %w", err))
	}

	scans := make([]models.Scan, 0, len(wire))
	for _, w := range wire {
		scans = append(scans, w.toModel())
	}
	sort.SliceStable(scans, func(i, j int) bool {
		return scans[i].Timestamp.After(scans[j].Timestamp)
	})
	return scans, nil
}

// check turns transport failures and non-2xx responses into repository errors
func (c *Client) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return c.fail(op, fmt.Errorf("%s: %w: %v", op, repository.ErrUpstream, err))
	}
	if resp.IsError() {
		return c.fail(op, &repository.UpstreamError{
			Operation:  op,
			StatusCode: resp.StatusCode(),
			Detail:     errorDetail(resp.Body()),
		})
	}
	return nil
}

func (c *Client) fail(op string, err error) error {
	c.metrics.UpstreamError(op)
	log.Error().Err(err).Str("operation", op).Msg("Scan service request failed")
	return err
}

// errorDetail extracts the "detail" field of an error body. Validation errors
// carry a structured detail, which is passed through as raw JSON.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return detail
	}
	return string(payload.Detail)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
