package lms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/lms-dashboard/internal/config"
	"github.com/Spok95/lms-dashboard/internal/metrics"
)

const restPath = "/webservice/rest/server.php"

type Client struct {
	endpoint string
	token    string
	http     *http.Client
	log      *zap.Logger
}

// New builds a client for one set of credentials. A zero cfg.Timeout
// leaves outbound calls without a deadline.
func New(cfg config.LMS, hc *http.Client, log *zap.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint(cfg.URL),
		token:    cfg.Token,
		http:     hc,
		log:      log,
	}
}

func endpoint(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, ".php") {
		return base
	}
	return base + restPath
}

// Call performs exactly one round trip for function and decodes the result
// into out (which may be nil for calls whose result is ignored).
func (c *Client) Call(ctx context.Context, function string, params Params, out any) error {
	q := url.Values{}
	if err := params.encode(q); err != nil {
		return fmt.Errorf("lms %s: %w", function, err)
	}
	q.Set("wstoken", c.token)
	q.Set("wsfunction", function)
	q.Set("moodlewsrestformat", "json")

	start := time.Now()
	body, err := c.do(ctx, c.endpoint+"?"+q.Encode())
	if err != nil {
		metrics.ObserveUpstream(function, "transport", time.Since(start))
		c.log.Warn("lms call failed", zap.String("function", function), zap.Error(err))
		return &TransportError{Function: function, Err: err}
	}
	if rerr := remoteError(function, body); rerr != nil {
		metrics.ObserveUpstream(function, "remote_error", time.Since(start))
		c.log.Warn("lms exception", zap.String("function", function), zap.String("errorcode", rerr.ErrorCode), zap.String("message", rerr.Message))
		return rerr
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			metrics.ObserveUpstream(function, "transport", time.Since(start))
			return &TransportError{Function: function, Err: fmt.Errorf("decode: %w", err)}
		}
	}
	metrics.ObserveUpstream(function, "ok", time.Since(start))
	c.log.Debug("lms call", zap.String("function", function), zap.Duration("took", time.Since(start)))
	return nil
}

func (c *Client) do(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(body)), 200))
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []byte("null"), nil
	}
	if !json.Valid(body) {
		return nil, errors.New("response is not JSON: " + truncate(string(body), 200))
	}
	return body, nil
}

func remoteError(function string, body []byte) *RemoteServiceError {
	if len(body) == 0 || body[0] != '{' {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil
	}
	_, hasExc := fields["exception"]
	_, hasCode := fields["errorcode"]
	if !hasExc && !hasCode {
		return nil
	}
	var e struct {
		Exception string `json:"exception"`
		ErrorCode string `json:"errorcode"`
		Message   string `json:"message"`
	}
	_ = json.Unmarshal(body, &e)
	if e.Message == "" {
		e.Message = "remote service error"
	}
	return &RemoteServiceError{Function: function, ErrorCode: e.ErrorCode, Exception: e.Exception, Message: e.Message}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

func call[T any](ctx context.Context, c *Client, function string, p Params) (T, error) {
	var out T
	err := c.Call(ctx, function, p, &out)
	return out, err
}
