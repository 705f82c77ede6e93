package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	gobreaker "github.com/sony/gobreaker/v2"

	"college-predictor/config"
	"college-predictor/domain"
	"college-predictor/logging"
	"college-predictor/metrics"
)

var (
	// ErrBackendUnavailable means the circuit breaker refused the call.
	ErrBackendUnavailable = errors.New("recommendation backend unavailable")
	ErrBadStatus          = errors.New("unexpected response status")
	ErrMalformedBody      = errors.New("malformed response body")
)

// BackendClient talks to the external recommendation API. Every call goes
// through a circuit breaker so a dead backend degrades without waiting on
// the transport timeout each time.
type BackendClient struct {
	BaseURI    string
	HTTPClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]byte]
}

func NewBackendClient(api config.APIConfig, br config.BreakerConfig) *BackendClient {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = api.RetryMax
	retryClient.Logger = logging.RetryableLogger("backend")
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient = &http.Client{
		Timeout: api.Timeout,
	}

	threshold := br.ConsecutiveFailures
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "recommendation-backend",
		MaxRequests: br.MaxRequests,
		Interval:    br.Interval,
		Timeout:     br.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.Set(stateToFloat(to))
		},
	})
	metrics.CircuitBreakerState.Set(0)

	return &BackendClient{
		BaseURI:    api.BaseURL,
		HTTPClient: retryClient.StandardClient(),
		cb:         cb,
	}
}

// Filters fetches the facet values from GET /filters.
func (c *BackendClient) Filters(ctx context.Context) (domain.FilterOptions, error) {
	body, err := c.get(ctx, filtersEndpoint)
	if err != nil {
		return domain.FilterOptions{}, err
	}

	var filters domain.FilterOptions
	if err := json.Unmarshal(body, &filters); err != nil {
		return domain.FilterOptions{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return filters, nil
}

// Recommend posts the input to /predict-colleges. A 2xx body that is valid
// JSON but not an array yields an empty list; anything that is not JSON, or
// an array whose elements do not decode, is ErrMalformedBody.
func (c *BackendClient) Recommend(ctx context.Context, input domain.StudentInput) ([]domain.CollegeRecommendation, error) {
	body, err := c.post(ctx, recommendEndpoint, input.Clone())
	if err != nil {
		return nil, err
	}
	return decodeRecommendations(body)
}

func decodeRecommendations(body []byte) ([]domain.CollegeRecommendation, error) {
	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return nil, ErrMalformedBody
	}
	if body[0] != '[' {
		return []domain.CollegeRecommendation{}, nil
	}

	recs := make([]domain.CollegeRecommendation, 0)
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	for i, r := range recs {
		if len(r.QuotaOptions) == 0 {
			return nil, fmt.Errorf("%w: record %d has no quota options", ErrMalformedBody, i)
		}
	}
	return recs, nil
}

// HTTP helper methods
func (c *BackendClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *BackendClient) post(ctx context.Context, endpoint string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, endpoint, body)
}

func (c *BackendClient) do(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.BackendDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	out, err := c.cb.Execute(func() ([]byte, error) {
		req, err := c.prepareRequest(ctx, method, endpoint, body)
		if err != nil {
			return nil, err
		}
		return c.sendRequest(req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return out, err
}

func (c *BackendClient) prepareRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	uri, err := url.JoinPath(c.BaseURI, endpoint)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *BackendClient) sendRequest(req *http.Request) ([]byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logging.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status", resp.StatusCode).Msg("backend response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %d from %s", ErrBadStatus, resp.StatusCode, req.URL.Path)
	}
	return body, nil
}

// BreakerState reports the current circuit breaker state.
func (c *BackendClient) BreakerState() gobreaker.State {
	return c.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
