package ftcevents

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/domain/rawdata"
	"github.com/riskibarqy/robo-companion/internal/platform/logging"
	"github.com/riskibarqy/robo-companion/internal/platform/resilience"
	"github.com/riskibarqy/robo-companion/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	AdapterName = "ftcevents"

	defaultBaseURL = "https://ftc-api.firstinspires.org/v2.0"
	maxBodyBytes   = 8 << 20
)

var errFTCTransient = crerr.New("ftc events transient failure")

type Recorder interface {
	RecordUpstreamRequest(adapter string, statusCode int, elapsed time.Duration)
}

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Username       string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Recorder       Recorder
	Sink           rawdata.Sink
	Now            func() time.Time
}

// Client implements usecase.Adapter for programs served by the FTC Events
// API. Upstream identifies events by season and code; the client assigns
// each one a stable integer id and remembers the mapping.
type Client struct {
	httpClient   *fasthttp.Client
	baseURL      string
	authHeader   string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.Flight[[]byte]
	failure      resilience.FailureLatch
	recorder     Recorder
	sink         rawdata.Sink
	now          func() time.Time
	events       *eventRegistry

	mu            sync.RWMutex
	current       program.Descriptor
	currentSeason int
}

var _ usecase.Adapter = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                AdapterName,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxConnsPerHost:     16,
			MaxResponseBodySize: maxBodyBytes,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = time.Second
	}
	sink := cfg.Sink
	if sink == nil {
		sink = rawdata.NopSink{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	c := &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		logger:       logger.Named(AdapterName),
		breaker:      resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		recorder:     cfg.Recorder,
		sink:         sink,
		now:          now,
		events:       newEventRegistry(),
	}

	username := strings.TrimSpace(cfg.Username)
	token := strings.TrimSpace(cfg.Token)
	if username == "" || token == "" {
		c.failure.Trip("FTC Events credentials are not configured.")
	} else {
		c.authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+token))
	}
	c.breaker.OnStateChange(c.onBreakerChange)
	return c
}

func (c *Client) Name() string {
	return AdapterName
}

func (c *Client) Family() program.Family {
	return program.FamilyB
}

func (c *Client) SetCurrentProgram(p program.Descriptor) {
	c.mu.Lock()
	c.current = p
	c.mu.Unlock()
}

func (c *Client) currentProgram() program.Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *Client) IsInFailureState() bool {
	return c.failure.Failing()
}

func (c *Client) GetFailureInfo() usecase.FailureInfo {
	failing, notify, message := c.failure.Acknowledge()
	return usecase.FailureInfo{
		InFailure:              failing,
		ShouldShowNotification: notify,
		Message:                message,
	}
}

func (c *Client) onBreakerChange(from, to resilience.CircuitState) {
	switch to {
	case resilience.CircuitStateOpen:
		c.failure.Trip("FTC Events is temporarily unavailable.")
	case resilience.CircuitStateClosed:
		if c.authHeader != "" {
			c.failure.Reset()
		}
	}
	c.logger.Warn("ftc events circuit breaker changed", "from", string(from), "to", string(to))
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	if c.authHeader == "" {
		return fmt.Errorf("%w: ftc events credentials are not configured", usecase.ErrDependencyUnavailable)
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "ftc events circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: ftc events is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err, shared := c.flight.Do(fullURL, func() ([]byte, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		c.breaker.Observe(reqErr, isCircuitFailure)
		return raw, reqErr
	})
	if err != nil {
		return err
	}
	if !shared {
		c.sink.Archive(ctx, buildAPIPayload(path, query, c.currentProgram().ID, raw))
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode ftc events payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, status, err := c.send(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = err
		case status >= 200 && status < 300:
			if c.breaker.State() != resilience.CircuitStateOpen {
				c.failure.Reset()
			}
			return raw, nil
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			c.failure.Trip("FTC Events rejected the configured credentials.")
			return nil, fmt.Errorf("%w: ftc events status=%d", usecase.ErrDependencyUnavailable, status)
		case status == http.StatusNotFound:
			return nil, fmt.Errorf("%w: ftc events status=%d", usecase.ErrNotFound, status)
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: ftc events status=%d body=%s", errFTCTransient, status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("ftc events status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("ftc events request failed")
	}
	c.logger.WarnContext(ctx, "ftc events request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// send performs one GET. fasthttp has no context support, so the request
// deadline is the earlier of the client timeout and the ctx deadline.
func (c *Client) send(ctx context.Context, fullURL string) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	started := c.now()
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		c.record(0, c.now().Sub(started))
		return nil, 0, fmt.Errorf("%w: send request: %v", errFTCTransient, err)
	}
	status := resp.StatusCode()
	c.record(status, c.now().Sub(started))

	return append([]byte(nil), resp.Body()...), status, nil
}

func (c *Client) record(status int, elapsed time.Duration) {
	if c.recorder != nil {
		c.recorder.RecordUpstreamRequest(AdapterName, status, elapsed)
	}
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFTCTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func buildAPIPayload(path string, query url.Values, programID int, raw []byte) rawdata.Payload {
	entityKey := strings.TrimSpace(path)
	if encoded := query.Encode(); encoded != "" {
		entityKey += "?" + encoded
	}
	return rawdata.Payload{
		Source:      AdapterName,
		EntityType:  "api_response",
		EntityKey:   entityKey,
		ProgramID:   programID,
		PayloadJSON: string(raw),
	}
}
