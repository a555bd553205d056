// ABOUTME: HTTP client for the COD Profit Simulator API
// ABOUTME: Wraps health, market, funnel and run history calls with CLI-friendly errors

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/markalston/cod-profit-simulator/models"
)

// Client is the API client for the simulator backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the backend address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health calls GET /api/v1/health. A degraded backend answers 503 with a
// health body, which is returned without an error.
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	status, err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health, http.StatusOK, http.StatusServiceUnavailable)
	if err != nil {
		return nil, err
	}
	if status == http.StatusServiceUnavailable && health.Status == "" {
		return nil, fmt.Errorf("backend returned status %d", status)
	}
	return &health, nil
}

// Markets calls GET /api/v1/markets
func (c *Client) Markets(ctx context.Context) ([]models.Market, error) {
	var markets []models.Market
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/markets", nil, &markets, http.StatusOK); err != nil {
		return nil, err
	}
	return markets, nil
}

// ListHistory calls GET /api/v1/history
func (c *Client) ListHistory(ctx context.Context) ([]models.HistoryItem, error) {
	var items []models.HistoryItem
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/history", nil, &items, http.StatusOK); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveHistory calls POST /api/v1/history
func (c *Client) SaveHistory(ctx context.Context, req models.SaveHistoryRequest) (*models.HistoryItem, error) {
	var item models.HistoryItem
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/history", req, &item, http.StatusCreated); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetHistory calls GET /api/v1/history/{id}
func (c *Client) GetHistory(ctx context.Context, id string) (*models.HistoryItem, error) {
	var item models.HistoryItem
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/history/"+url.PathEscape(id), nil, &item, http.StatusOK); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteHistory calls DELETE /api/v1/history/{id}
func (c *Client) DeleteHistory(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/history/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
	return err
}

// ClearHistory calls DELETE /api/v1/history
func (c *Client) ClearHistory(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/history", nil, nil, http.StatusNoContent)
	return err
}

// HistoryInsights calls GET /api/v1/history/insights
func (c *Client) HistoryInsights(ctx context.Context) ([]models.HistoryInsight, error) {
	var insights []models.HistoryInsight
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/history/insights", nil, &insights, http.StatusOK); err != nil {
		return nil, err
	}
	return insights, nil
}

// Funnel calls POST /api/v1/funnel, or GET for the sample journey when in is nil.
func (c *Client) Funnel(ctx context.Context, in *models.FunnelInput) (*models.LeakageReport, error) {
	var report models.LeakageReport
	method, body := http.MethodGet, any(nil)
	if in != nil {
		method, body = http.MethodPost, in
	}
	if _, err := c.do(ctx, method, "/api/v1/funnel", body, &report, http.StatusOK); err != nil {
		return nil, err
	}
	return &report, nil
}

// AnalyzeFunnel calls POST /api/v1/funnel/analyze. A nil input analyzes the
// sample journey.
func (c *Client) AnalyzeFunnel(ctx context.Context, in *models.FunnelInput) (*models.FunnelAnalysis, error) {
	var analysis models.FunnelAnalysis
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/funnel/analyze", funnelBody(in), &analysis, http.StatusOK); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// AnalyzeStage calls POST /api/v1/funnel/stages/{key}/analyze
func (c *Client) AnalyzeStage(ctx context.Context, key string, in *models.FunnelInput) (*models.StageAnalysis, error) {
	var analysis models.StageAnalysis
	path := "/api/v1/funnel/stages/" + url.PathEscape(key) + "/analyze"
	if _, err := c.do(ctx, http.MethodPost, path, funnelBody(in), &analysis, http.StatusOK); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// funnelBody keeps a nil input as an absent body rather than JSON null.
func funnelBody(in *models.FunnelInput) any {
	if in == nil {
		return nil
	}
	return in
}

// do sends one request and decodes the response into out when the status is
// one of accept. Any other status is turned into an error.
func (c *Client) do(ctx context.Context, method, path string, in, out any, accept ...int) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if !accepted(resp.StatusCode, accept) {
		return resp.StatusCode, c.handleErrorResponse(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("invalid response from backend: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func accepted(status int, accept []int) bool {
	for _, s := range accept {
		if status == s {
			return true
		}
	}
	return false
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if errResp.Details != "" {
		return fmt.Errorf("backend error: %s: %s", errResp.Error, errResp.Details)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}
