package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/model"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Client talks to the download backend
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout; zero disables it
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{},
		timeout:    60 * time.Second,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend base URL
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// Reconfigure points the client at another backend. Requests already in flight
// keep the old settings.
func (c *Client) Reconfigure(baseURL string, timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	c.timeout = timeout
}

// SupportedSites fetches the sample list of supported sites
func (c *Client) SupportedSites(ctx context.Context) (model.SupportedSites, error) {
	var resp SupportedSitesResponse
	status, err := c.do(ctx, http.MethodGet, PathSupportedSites, nil, &resp)
	if err != nil {
		return model.SupportedSites{}, err
	}
	if status < 200 || status > 299 {
		return model.SupportedSites{}, &StatusError{StatusCode: status, Message: resp.Error}
	}

	sites := make([]string, 0, len(resp.SupportedSites))
	for _, s := range resp.SupportedSites {
		if s = strings.TrimSpace(s); s != "" {
			sites = append(sites, s)
		}
	}
	return model.SupportedSites{Sites: sites, Total: resp.TotalSupported, Note: resp.Note}, nil
}

// CheckURL asks the backend whether url is supported. An unsupported URL is a
// successful call with Supported() == false; errors are reserved for transport
// and decoding failures.
func (c *Client) CheckURL(ctx context.Context, url string) (model.VerificationResult, error) {
	var resp CheckURLResponse
	status, err := c.do(ctx, http.MethodPost, PathCheckURL, CheckURLRequest{URL: url}, &resp)
	if err != nil {
		return model.VerificationResult{}, err
	}
	if status < 200 || status > 299 {
		return model.VerificationResult{}, &StatusError{StatusCode: status, Message: resp.Error}
	}
	if !resp.Supported && resp.Error != "" {
		c.log.Debug("url not supported", zap.String("url", url), zap.String("reason", resp.Error))
	}
	return resp.Result(), nil
}

// Download submits a download. A success or warning answer is returned without
// error; every other failure reported by the backend is a *DownloadError.
func (c *Client) Download(ctx context.Context, url, selector string) (DownloadResponse, error) {
	var resp DownloadResponse
	status, err := c.do(ctx, http.MethodPost, PathDownload, DownloadRequest{URL: url, Quality: selector}, &resp)
	if err != nil {
		return DownloadResponse{}, err
	}

	if status < 200 || status > 299 {
		msg := resp.Error
		if msg == "" {
			msg = resp.Message
		}
		return resp, &DownloadError{StatusCode: status, Message: msg}
	}
	if resp.Success || resp.Warning != "" {
		return resp, nil
	}

	msg := resp.Error
	if msg == "" {
		msg = resp.Message
	}
	return resp, &DownloadError{Message: msg}
}

// do sends one request and decodes the JSON body into out regardless of the
// HTTP status, so error bodies can be inspected by the caller.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	c.mu.RLock()
	baseURL, timeout := c.baseURL, c.timeout
	c.mu.RUnlock()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With(zap.String("request_id", requestID), zap.String("method", method), zap.String("path", path))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return 0, fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn("reading response failed", zap.Error(err))
		return resp.StatusCode, fmt.Errorf("%w: read %s: %v", ErrNetwork, path, err)
	}
	log.Debug("response received", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if len(bytes.TrimSpace(data)) == 0 {
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return resp.StatusCode, fmt.Errorf("%w: empty body from %s", ErrDecode, path)
		}
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return resp.StatusCode, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
		}
		// Non-JSON error pages still surface as a status error.
		return resp.StatusCode, nil
	}
	return resp.StatusCode, nil
}
