// Package fleetapi is an HTTP client for a remote fleet REST API. Each
// resource it exposes satisfies the record source contract of its domain.
package fleetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
	"github.com/rpggio/fleetview/internal/repository"
)

var (
	// ErrUnexpectedStatus indicates a non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrUnsuccessful indicates an envelope with success set to false.
	ErrUnsuccessful = errors.New("request reported failure")
)

// Resource paths on the remote API.
const (
	VehiclePath     = "/vehicle"
	DriverPath      = "/driver"
	MaintenancePath = "/maintenanceRecord"
)

// Envelope is the response wrapper of the fleet API.
type Envelope[T any] struct {
	Success    bool   `json:"success"`
	Data       T      `json:"data"`
	Total      int    `json:"total,omitempty"`
	Page       int    `json:"page,omitempty"`
	TotalPages int    `json:"totalPages,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Client talks to one fleet API base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// New creates a fleet API client. timeout bounds every request.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With(slog.String("component", "fleet_api")),
	}
}

func (c *Client) Vehicles() *Resource[vehicle.Vehicle] {
	return &Resource[vehicle.Vehicle]{client: c, path: VehiclePath}
}

func (c *Client) Drivers() *Resource[driver.Driver] {
	return &Resource[driver.Driver]{client: c, path: DriverPath}
}

func (c *Client) Maintenance() *Resource[maintenance.Record] {
	return &Resource[maintenance.Record]{client: c, path: MaintenancePath}
}

// Resource is one collection on the remote API.
type Resource[T any] struct {
	client *Client
	path   string
}

// FetchAll requests the collection without paging parameters.
func (r *Resource[T]) FetchAll(ctx context.Context) ([]T, error) {
	body, err := r.client.get(ctx, r.path, nil)
	if err != nil {
		return nil, err
	}
	env, err := decodeList[T](body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return env.Data, nil
}

// FetchPage requests one server-side page.
func (r *Resource[T]) FetchPage(ctx context.Context, q recordsource.Query) (listview.SourcePage[T], error) {
	if err := recordsource.ValidatePage(q); err != nil {
		return listview.SourcePage[T]{}, err
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}

	body, err := r.client.get(ctx, r.path, params)
	if err != nil {
		return listview.SourcePage[T]{}, err
	}
	env, err := decodeList[T](body)
	if err != nil {
		return listview.SourcePage[T]{}, fmt.Errorf("decode %s page: %w", r.path, err)
	}

	page := listview.SourcePage[T]{
		Items:      env.Data,
		Total:      env.Total,
		Page:       env.Page,
		TotalPages: env.TotalPages,
	}
	if page.Page == 0 {
		page.Page = q.Page
	}
	if page.Total == 0 && page.TotalPages == 0 {
		page.Total = len(env.Data)
	}
	return page, nil
}

// Get requests a single item by ID.
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	body, err := r.client.get(ctx, fmt.Sprintf("%s/%d", r.path, id), nil)
	if err != nil {
		return nil, err
	}
	var env Envelope[*T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode %s/%d: %w", r.path, id, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnsuccessful, env.Message)
	}
	if env.Data == nil {
		return nil, repository.ErrNotFound
	}
	return env.Data, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", reqURL, err)
	}

	c.logger.Debug("fleet api request",
		slog.String("url", reqURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", path, repository.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d from %s: %s", ErrUnexpectedStatus, resp.StatusCode, reqURL, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// decodeList accepts either an envelope or a bare JSON array.
func decodeList[T any](body []byte) (Envelope[[]T], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Envelope[[]T]{}, err
		}
		return Envelope[[]T]{Success: true, Data: items, Total: len(items)}, nil
	}

	var env Envelope[[]T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Envelope[[]T]{}, err
	}
	if !env.Success {
		return Envelope[[]T]{}, fmt.Errorf("%w: %s", ErrUnsuccessful, env.Message)
	}
	if env.Data == nil {
		env.Data = []T{}
	}
	return env, nil
}
