package robotevents

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	AdapterName = "robotevents"

	defaultBaseURL       = "https://www.robotevents.com/api/v2"
	defaultSkillsBaseURL = "https://www.robotevents.com/api"
	defaultPerPage       = 250
	maxPages             = 40
	maxBodyBytes         = 8 << 20
)

var errRobotEventsTransient = crerr.New("robotevents transient failure")
var errKeysExhausted = crerr.New("robotevents api keys exhausted")

// Recorder receives per-request outcomes, typically for metrics.
type Recorder interface {
	RecordUpstreamRequest(adapter string, statusCode int, elapsed time.Duration)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	SkillsBaseURL  string
	APIKeys        []string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Recorder       Recorder
	Sink           rawdata.Sink
	Now            func() time.Time
}

// Client implements usecase.Adapter for programs served by RobotEvents.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	skillsBaseURL string
	keys          *keyPool
	maxRetries    int
	retryBackoff  time.Duration
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
	flight        resilience.Flight[[]byte]
	failure       resilience.FailureLatch
	recorder      Recorder
	sink          rawdata.Sink
	now           func() time.Time

	mu      sync.RWMutex
	current program.Descriptor
}

var _ usecase.Adapter = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	skillsBaseURL := strings.TrimRight(strings.TrimSpace(cfg.SkillsBaseURL), "/")
	if skillsBaseURL == "" {
		skillsBaseURL = defaultSkillsBaseURL
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
		httpClient:    httpClient,
		baseURL:       baseURL,
		skillsBaseURL: skillsBaseURL,
		keys:          newKeyPool(cfg.APIKeys),
		maxRetries:    max(cfg.MaxRetries, 0),
		retryBackoff:  retryBackoff,
		logger:        logger.Named(AdapterName),
		breaker:       resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		recorder:      cfg.Recorder,
		sink:          sink,
		now:           now,
	}
	c.breaker.OnStateChange(c.onBreakerChange)
	if c.keys.Len() == 0 {
		c.failure.Trip("No RobotEvents API key is configured.")
	}
	return c
}

func (c *Client) Name() string {
	return AdapterName
}

func (c *Client) Family() program.Family {
	return program.FamilyA
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
		c.failure.Trip("RobotEvents is temporarily unavailable.")
	case resilience.CircuitStateClosed:
		if c.keys.Len() > 0 && !c.keys.Exhausted() {
			c.failure.Reset()
		}
	}
	c.logger.Warn("robotevents circuit breaker changed", "from", string(from), "to", string(to))
}

type request struct {
	baseURL   string
	path      string
	query     url.Values
	programID int
}

func (r request) url() string {
	full := r.baseURL + r.path
	if encoded := r.query.Encode(); encoded != "" {
		full += "?" + encoded
	}
	return full
}

// doJSON fetches one response and decodes it into target.
func (c *Client) doJSON(ctx context.Context, req request, target any) error {
	raw, err := c.fetch(ctx, req)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode robotevents payload: %w", err)
	}
	return nil
}

// fetchAll walks every page of a paginated list endpoint.
func fetchAll[T any](ctx context.Context, c *Client, req request) ([]T, error) {
	out := make([]T, 0, 64)
	query := cloneValues(req.query)
	query.Set("per_page", strconv.Itoa(defaultPerPage))

	for page := 1; page <= maxPages; page++ {
		query.Set("page", strconv.Itoa(page))
		pageReq := req
		pageReq.query = query

		var envelope pageEnvelope[T]
		if err := c.doJSON(ctx, pageReq, &envelope); err != nil {
			return nil, err
		}
		out = append(out, envelope.Data...)
		if envelope.Meta.LastPage <= page || len(envelope.Data) == 0 {
			return out, nil
		}
	}

	c.logger.WarnContext(ctx, "robotevents pagination truncated", "path", req.path, "max_pages", maxPages)
	return out, nil
}

func (c *Client) fetch(ctx context.Context, req request) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "robotevents circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: robotevents is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := req.url()
	raw, err, shared := c.flight.Do(fullURL, func() ([]byte, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		c.breaker.Observe(reqErr, isCircuitFailure)
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}
	if !shared {
		c.sink.Archive(ctx, buildAPIPayload(req, raw))
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, status, err := c.executeWithKeys(ctx, fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isCircuitFailure(err) || (status != 0 && !isRetryableStatus(status)) {
			break
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

	c.logger.WarnContext(ctx, "robotevents request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// executeWithKeys sends one logical request, rotating through the key pool
// while keys are rejected. It returns the last HTTP status seen.
func (c *Client) executeWithKeys(ctx context.Context, fullURL string) ([]byte, int, error) {
	if c.keys.Len() == 0 {
		return nil, 0, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, errKeysExhausted)
	}

	for tries := 0; tries < c.keys.Len(); tries++ {
		idx, key := c.keys.Current()
		raw, status, err := c.send(ctx, fullURL, key)
		if err != nil {
			return nil, status, err
		}

		switch {
		case status >= 200 && status < 300:
			c.keys.Accept(idx)
			if c.breaker.State() != resilience.CircuitStateOpen {
				c.failure.Reset()
			}
			return raw, status, nil
		case isKeyRejection(status):
			exhausted := c.keys.Reject(idx)
			c.logger.WarnContext(ctx, "robotevents api key rejected", "key_index", idx, "status", status)
			if exhausted {
				c.failure.Trip("All RobotEvents API keys were rejected. Data may be unavailable until keys are replaced.")
				c.keys.ResetRejections()
				return nil, status, fmt.Errorf("%w: %w: status=%d", usecase.ErrDependencyUnavailable, errKeysExhausted, status)
			}
		case status == http.StatusNotFound:
			return nil, status, fmt.Errorf("%w: robotevents status=%d", usecase.ErrNotFound, status)
		case isRetryableStatus(status):
			return nil, status, fmt.Errorf("%w: robotevents status=%d body=%s", errRobotEventsTransient, status, abbreviateBody(raw))
		default:
			return nil, status, fmt.Errorf("robotevents status=%d body=%s", status, abbreviateBody(raw))
		}
	}
	return nil, 0, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, errKeysExhausted)
}

func (c *Client) send(ctx context.Context, fullURL, key string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("authorization", "Bearer "+key)

	started := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(0, c.now().Sub(started))
		return nil, 0, fmt.Errorf("%w: send request: %s", errRobotEventsTransient, sanitizeSensitiveText(err.Error(), key))
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.record(resp.StatusCode, c.now().Sub(started))
	if readErr != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response body: %v", errRobotEventsTransient, readErr)
	}
	return raw, resp.StatusCode, nil
}

func (c *Client) record(status int, elapsed time.Duration) {
	if c.recorder != nil {
		c.recorder.RecordUpstreamRequest(AdapterName, status, elapsed)
	}
}

func (c *Client) apiRequest(path string, query url.Values, programID int) request {
	if query == nil {
		query = url.Values{}
	}
	return request{baseURL: c.baseURL, path: path, query: query, programID: programID}
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errRobotEventsTransient)
}

func isKeyRejection(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden || code == http.StatusTooManyRequests
}

func isRetryableStatus(code int) bool {
	return code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" || key == "" {
		return value
	}
	return strings.ReplaceAll(value, key, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func buildAPIPayload(req request, raw []byte) rawdata.Payload {
	entityKey := strings.TrimSpace(req.path)
	if encoded := req.query.Encode(); encoded != "" {
		entityKey += "?" + encoded
	}
	return rawdata.Payload{
		Source:      AdapterName,
		EntityType:  "api_response",
		EntityKey:   entityKey,
		ProgramID:   req.programID,
		PayloadJSON: string(raw),
	}
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values)+2)
	for key, items := range values {
		out[key] = append([]string(nil), items...)
	}
	return out
}
