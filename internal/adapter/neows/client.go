package neows

import (
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

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
)

// DefaultBaseURL is the public NeoWs endpoint.
const DefaultBaseURL = "https://api.nasa.gov/neo/rest/v1"

const maxErrorBody = 512

// Client implements domain.Catalog using the NASA NeoWs REST API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a NeoWs catalog client. An empty baseURL selects DefaultBaseURL.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metrics,
		logger:  logger,
	}
}

// FetchByID looks up a single object by its NeoWs id.
func (c *Client) FetchByID(ctx context.Context, id string) (domain.NEO, error) {
	u := fmt.Sprintf("%s/neo/%s?%s", c.baseURL, url.PathEscape(id), url.Values{"api_key": {c.apiKey}}.Encode())

	var neo domain.NEO
	err := c.getJSON(ctx, u, "fetch", &neo)
	c.metrics.CatalogRequests.WithLabelValues("fetch", outcome(err)).Inc()
	if err != nil {
		return domain.NEO{}, fmt.Errorf("fetch neo %s: %w", id, err)
	}
	return neo, nil
}

// SearchByName walks the browse listing from page 0 and returns the first
// object whose name contains fragment, ignoring case. At most maxPages pages
// are requested.
func (c *Client) SearchByName(ctx context.Context, fragment string, maxPages int) (domain.NEO, error) {
	needle := strings.ToLower(fragment)
	scanned := 0
	defer func() {
		c.metrics.SearchPagesScanned.Observe(float64(scanned))
	}()

	for page := 0; page < maxPages; page++ {
		params := url.Values{
			"api_key": {c.apiKey},
			"page":    {strconv.Itoa(page)},
		}
		var resp browseResponse
		if err := c.getJSON(ctx, c.baseURL+"/neo/browse?"+params.Encode(), "browse", &resp); err != nil {
			c.metrics.CatalogRequests.WithLabelValues("search", "error").Inc()
			// A missing browse page means the listing itself is broken.
			if errors.Is(err, domain.ErrNotFound) {
				err = fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
			}
			return domain.NEO{}, fmt.Errorf("browse page %d: %w", page, err)
		}
		scanned++

		for _, neo := range resp.NearEarthObjects {
			if strings.Contains(strings.ToLower(neo.Name), needle) {
				c.metrics.CatalogRequests.WithLabelValues("search", "found").Inc()
				c.logger.Debug("neo matched by name", "fragment", fragment, "neo_id", neo.ID, "page", page)
				return neo, nil
			}
		}

		if resp.Page.TotalPages == nil || page+1 >= *resp.Page.TotalPages {
			break
		}
	}

	c.metrics.CatalogRequests.WithLabelValues("search", "not_found").Inc()
	return domain.NEO{}, fmt.Errorf("search %q over %d pages: %w", fragment, scanned, domain.ErrNotFound)
}

func (c *Client) getJSON(ctx context.Context, fullURL, method string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", domain.ErrCatalogUnavailable, stripURL(err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.CatalogAPIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		// The caller going away says nothing about NeoWs.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s request: %w", method, ctxErr)
		}
		return fmt.Errorf("%w: %s request: %w", domain.ErrCatalogUnavailable, method, stripURL(err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("neows status %d: %w", resp.StatusCode, domain.ErrNotFound)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("neows API error", "method", method, "status", resp.StatusCode)
		return fmt.Errorf("%w: neows status %d: %s", domain.ErrCatalogUnavailable, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("decode %s response: %w", method, ctxErr)
		}
		return fmt.Errorf("%w: decode %s response: %w", domain.ErrCatalogUnavailable, method, stripURL(err))
	}
	return nil
}

// stripURL drops the request URL from transport errors; it carries the API key.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "found"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// NeoWs browse response types.

type browseResponse struct {
	Page             pageInfo     `json:"page"`
	NearEarthObjects []domain.NEO `json:"near_earth_objects"`
}

type pageInfo struct {
	Size          int  `json:"size"`
	TotalElements int  `json:"total_elements"`
	TotalPages    *int `json:"total_pages"`
	Number        int  `json:"number"`
}
