package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/cbuclub/internal/common"
	"github.com/dmitrijs2005/cbuclub/internal/logging"
	"github.com/google/uuid"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	contentTypeJSON     = "application/json"
	bearerPrefix        = "Bearer "
)

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	log        logging.Logger
	now        func() time.Time
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d <= 0 {
			return
		}
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = d
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTokenStore enables bearer-token handling backed by ts.
func WithTokenStore(ts TokenStore) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (for example "http://127.0.0.1:8080/api/v1").
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logging.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Login replaces the cached token on success: a token issued with the
// response is stored, otherwise any previous one is dropped.
func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	h, err := c.do(ctx, http.MethodPost, "/login", nil, req, &resp)
	if err != nil {
		return nil, err
	}
	c.replaceToken(ctx, h.Get(headerAuthorization))
	return &resp, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) error {
	return c.doRequest(ctx, http.MethodPost, "/login/signup", nil, req, nil)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return c.doRequest(ctx, http.MethodPatch, "/login/password", nil, req, nil)
}

func (c *HTTPClient) VerifyMember(ctx context.Context, req VerifyMemberRequest) (*UserInfo, error) {
	var info UserInfo
	if err := c.doRequest(ctx, http.MethodPost, "/verify", nil, req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *HTTPClient) SendMailCode(ctx context.Context, address string) (*MailResult, error) {
	q := url.Values{"address": {address}}
	var res MailResult
	if err := c.doRequest(ctx, http.MethodPost, "/mail/send", q, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// VerifyMailCode sends the pair both as JSON body and as query parameters;
// backend versions differ in which one they read.
func (c *HTTPClient) VerifyMailCode(ctx context.Context, address, code string) (*MailResult, error) {
	q := url.Values{"address": {address}, "authCode": {code}}
	var res MailResult
	if err := c.doRequest(ctx, http.MethodPost, "/mail/verify", q, mailVerifyBody{Address: address, AuthCode: code}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) UpdateMail(ctx context.Context, req MailUpdateRequest) error {
	return c.doRequest(ctx, http.MethodPost, "/mail/update", nil, req, nil)
}

// doRequest performs one JSON round trip and caches a token issued with a
// 2xx response. A non-nil result requires a non-empty 2xx body.
func (c *HTTPClient) doRequest(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	h, err := c.do(ctx, method, path, query, body, result)
	if err != nil {
		return err
	}
	c.rememberToken(ctx, h.Get(headerAuthorization))
	return nil
}

// do returns the response headers of a successful round trip.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, result any) (http.Header, error) {
	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set(headerAccept, contentTypeJSON)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if tok := c.bearerToken(ctx); tok != "" {
		req.Header.Set(headerAuthorization, bearerPrefix+tok)
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug(ctx, "api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w: %w", method, path, ErrUnavailable, err)
	}

	c.log.Debug(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"latency", c.now().Sub(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, respBody)
	}

	if result == nil {
		return resp.Header, nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrEmptyResponse)
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return nil, fmt.Errorf("%s %s: failed to parse response: %w", method, path, err)
	}
	return resp.Header, nil
}
