// Package api is the HTTP client for the ByeTax analysis backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/byetax/byetax/internal/tax"
)

// ErrUnauthorized matches 401 responses.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response. Detail is the backend's "detail" message
// when it sent one.
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is makes errors.Is(err, ErrUnauthorized) true for 401. A 403 is an
// ownership refusal for a valid credential and does not match.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Message returns the text to show a user for err: the backend detail when
// there is one, else the error string.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

// ClientOption modifies a Client.
type ClientOption func(*Client)

// WithToken sets the bearer credential for authenticated calls.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the timeout for all requests.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client talks to the backend. It is safe for concurrent use; the token is
// fixed at construction.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client for the backend at baseURL.
func NewClient(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// WithCredential returns a copy of c that authenticates with token.
func (c *Client) WithCredential(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Token returns the bearer credential, "" if none.
func (c *Client) Token() string { return c.token }

// BaseURL returns the backend root.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, auth bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if auth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do sends req and returns the response when the status is 2xx. The caller
// closes the body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	c.logger.Debug("request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	apiErr := &Error{StatusCode: resp.StatusCode, Method: req.Method, Path: req.URL.Path}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(data, &payload) == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			apiErr.Detail = s
		} else {
			apiErr.Detail = string(payload.Detail)
		}
	}
	return nil, apiErr
}

func (c *Client) getJSON(ctx context.Context, path string, auth bool, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, auth)
	if err != nil {
		return err
	}
	return c.decode(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, auth bool, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, auth)
	if err != nil {
		return err
	}
	return c.decode(req, out)
}

func (c *Client) decode(req *http.Request, out interface{}) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}

// Me validates the credential and returns the profile.
func (c *Client) Me(ctx context.Context) (*tax.Profile, error) {
	var p tax.Profile
	if err := c.getJSON(ctx, "/auth/me", true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DevLogin issues a development credential for nickname.
func (c *Client) DevLogin(ctx context.Context, nickname string) (*tax.LoginResponse, error) {
	path := "/auth/dev-login"
	if nickname != "" {
		path += "?" + url.Values{"nickname": {nickname}}.Encode()
	}
	var out tax.LoginResponse
	if err := c.postJSON(ctx, path, false, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("dev login: empty access token")
	}
	return &out, nil
}

// KakaoLoginURL is the page that starts the Kakao OAuth flow. The backend
// redirects back to /?token=... when it completes.
func (c *Client) KakaoLoginURL() string {
	return c.baseURL + "/auth/kakao/login"
}

// Upload submits a PDF and returns the parsed analysis.
func (c *Client) Upload(ctx context.Context, pdfPath string) (*tax.UploadResponse, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filepath.Base(pdfPath))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("reading %s: %w", pdfPath, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", &body, true)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out tax.UploadResponse
	if err := c.decode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTaxpayers returns the caller's history, newest first.
func (c *Client) ListTaxpayers(ctx context.Context) ([]tax.HistoryEntry, error) {
	var out []tax.HistoryEntry
	if err := c.getJSON(ctx, "/taxpayers", true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTaxpayer returns the full analysis for id.
func (c *Client) GetTaxpayer(ctx context.Context, id int64) (*tax.AnalysisResult, error) {
	var out tax.AnalysisResult
	if err := c.getJSON(ctx, fmt.Sprintf("/taxpayers/%d", id), true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Calculate returns the step-by-step tax calculation for id. A 404 from the
// calculation engine is a domain error and comes back in the result's
// Error field, not as err.
func (c *Client) Calculate(ctx context.Context, id int64) (*tax.CalculationResult, error) {
	var out tax.CalculationResult
	err := c.getJSON(ctx, fmt.Sprintf("/taxpayers/%d/calculate", id), true, &out)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound && apiErr.Detail != "" {
		return &tax.CalculationResult{TaxpayerID: id, Error: apiErr.Detail}, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AIAnalysis returns the AI risk commentary for id.
func (c *Client) AIAnalysis(ctx context.Context, id int64) (*tax.AIAnalysisResult, error) {
	var out tax.AIAnalysisResult
	if err := c.getJSON(ctx, fmt.Sprintf("/taxpayers/%d/ai-analysis", id), true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateShare issues a share token for id.
func (c *Client) CreateShare(ctx context.Context, id int64) (*tax.ShareToken, error) {
	var out tax.ShareToken
	if err := c.postJSON(ctx, fmt.Sprintf("/taxpayers/%d/share", id), true, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("share: empty token")
	}
	return &out, nil
}

// GetShared fetches a shared analysis without authentication.
func (c *Client) GetShared(ctx context.Context, token string) (*tax.AnalysisResult, error) {
	var out tax.AnalysisResult
	if err := c.getJSON(ctx, "/share/"+url.PathEscape(token), false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export is a downloaded Excel workbook.
type Export struct {
	Filename string
	Data     []byte
}

// ExportExcel downloads the Excel export for id.
func (c *Client) ExportExcel(ctx context.Context, id int64) (*Export, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/taxpayers/%d/export/excel", id), nil, true)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	name := FilenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = fmt.Sprintf("byetax_%d.xlsx", id)
	}
	return &Export{Filename: name, Data: data}, nil
}

// Save writes the export into dir and returns the written path.
func (e *Export) Save(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, e.Filename)
	if err := os.WriteFile(path, e.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}

// FilenameFromDisposition extracts the download filename from a
// Content-Disposition header, preferring the RFC 5987 filename* form.
// It returns "" when there is none.
func FilenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	// mime.ParseMediaType decodes filename*=UTF-8''... into "filename".
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := filepath.Base(params["filename"])
	switch name {
	case ".", "..", string(filepath.Separator):
		return ""
	}
	return name
}
