package pce

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kestrelops/pcectl/internal/config"
	"github.com/kestrelops/pcectl/internal/util/retry"
)

// HTTPClient implements Client against a live PCE.
type HTTPClient struct {
	baseURL    string
	orgID      int
	auth       config.AuthConfig
	httpClient *http.Client
	logger     *logrus.Logger

	maxRetries   int
	initialDelay time.Duration
}

// NewHTTPClient creates a PCE client from the resolved configuration.
func NewHTTPClient(cfg config.PCEConfig, logger *logrus.Logger) *HTTPClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.VerifySSL != nil && !*cfg.VerifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-out via config
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		orgID:   cfg.OrgID,
		auth:    cfg.Auth,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger:       logger,
		maxRetries:   cfg.MaxRetries,
		initialDelay: 300 * time.Millisecond,
	}
}

// Request performs one API call with transparent retry. Transport failures,
// unparseable success bodies, and gateway statuses (500/502/503/504) are
// retried with exponential backoff; authentication failures and other API
// errors surface immediately.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, params url.Values, body interface{}) (json.RawMessage, error) {
	u := c.buildURL(endpoint)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    u,
	}).Debug("pce request")

	var result json.RawMessage
	err := retry.WithExponentialBackoff(ctx, func() error {
		res, err := c.do(ctx, method, u, params, payload)
		if err != nil {
			return err
		}
		result = res
		return nil
	},
		retry.WithMaxRetries(c.maxRetries-1),
		retry.WithInitialDelay(c.initialDelay),
	)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *HTTPClient) buildURL(endpoint string) string {
	return fmt.Sprintf("%s/orgs/%d/%s", c.baseURL, c.orgID, strings.Trim(endpoint, "/"))
}

// do performs a single attempt. Retryable failures are returned plain;
// terminal failures are wrapped with retry.Fatal.
func (c *HTTPClient) do(ctx context.Context, method, u string, params url.Values, payload []byte) (json.RawMessage, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, retry.Fatal(&ConnectionError{Err: err})
	}
	if params != nil {
		req.URL.RawQuery = params.Encode()
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	switch c.auth.Method {
	case config.AuthBasic:
		req.SetBasicAuth(c.auth.APIUser, c.auth.APISecret)
	default:
		req.Header.Set("Authorization", "Bearer "+c.auth.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	return c.handleResponse(resp.StatusCode, raw)
}

func (c *HTTPClient) handleResponse(status int, raw []byte) (json.RawMessage, error) {
	if status >= 200 && status < 300 {
		if len(raw) == 0 {
			return json.RawMessage("{}"), nil
		}
		if !json.Valid(raw) {
			return nil, &ConnectionError{Err: fmt.Errorf("invalid JSON response (status %d)", status)}
		}
		return json.RawMessage(raw), nil
	}

	errBody := map[string]interface{}{}
	if err := json.Unmarshal(raw, &errBody); err != nil {
		errBody = map[string]interface{}{"raw_response": string(raw)}
	}

	if status == http.StatusUnauthorized {
		return nil, retry.Fatal(&AuthError{StatusCode: status, Body: errBody})
	}

	apiErr := &APIError{StatusCode: status, Body: errBody}
	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, apiErr
	default:
		return nil, retry.Fatal(apiErr)
	}
}
