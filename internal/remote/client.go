// Package remote talks to the remote counter service.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"tarotstats/internal/models"
	"tarotstats/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

var (
	ErrNotConfigured = errors.New("remote service not configured")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
)

const maxResponseBytes = 8 << 20

// StatusError is an unexpected non-2xx answer.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote status %d", e.Code)
	}
	return fmt.Sprintf("remote status %d: %s", e.Code, e.Message)
}

type ClientInterface interface {
	Configured() bool
	Track(ctx context.Context, req *models.TrackRequest) (*models.RemoteRecord, error)
	Stats(ctx context.Context, fid int64) (*models.RemoteRecord, error)
	AdminStats(ctx context.Context, wallet string) ([]*models.RemoteRecord, error)
	AdminExportCSV(ctx context.Context, wallet string) ([]byte, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(conf *structures.Config) ClientInterface {
	timeout := conf.Remote.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(conf.Remote.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != ""
}

func (c *Client) Track(ctx context.Context, req *models.TrackRequest) (*models.RemoteRecord, error) {
	var rec models.RemoteRecord
	if err := c.doJSON(ctx, http.MethodPost, "/api/track", req, &rec); err != nil {
		return nil, fmt.Errorf("track %s: %w", req.Event, err)
	}
	return &rec, nil
}

func (c *Client) Stats(ctx context.Context, fid int64) (*models.RemoteRecord, error) {
	var rec models.RemoteRecord
	path := "/api/stats?fid=" + strconv.FormatInt(fid, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &rec); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &rec, nil
}

func (c *Client) AdminStats(ctx context.Context, wallet string) ([]*models.RemoteRecord, error) {
	var rows []*models.RemoteRecord
	path := "/api/admin/stats?wallet=" + url.QueryEscape(wallet)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	return rows, nil
}

func (c *Client) AdminExportCSV(ctx context.Context, wallet string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/admin/export.csv?wallet="+url.QueryEscape(wallet), nil)
	if err != nil {
		return nil, fmt.Errorf("admin export: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("admin export: read body: %w", err)
	}
	return body, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do sends the request and maps non-2xx answers to errors. The caller owns
// the body of a successful response.
func (c *Client) do(ctx context.Context, method, path string, in any) (*http.Response, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	msg := errorMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrForbidden, msg)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return nil, &StatusError{Code: resp.StatusCode, Message: msg}
}

func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	var e models.ErrorResponse
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(data))
}
