package catalogapi

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travel_reco/internal/adapters/observability"
)

// DocumentName is the file the catalog is published as.
const DocumentName = "travel_recommendation_api.json"

type Client struct {
	url string
	hc  *http.Client
	key string
	rl  *rate.Limiter
}

// New returns a client for the catalog document at url. key is optional and
// sent as X-API-Key when set.
func New(url, key string, rps int) (*Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("catalog URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		url: url,
		hc:  &http.Client{Timeout: 20 * time.Second},
		key: key,
		rl:  rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// MaxDocumentBytes caps the catalog body; larger documents are rejected.
const MaxDocumentBytes = 8 << 20

// MaxRetryWait caps how long a Retry-After header can hold a retry back.
const MaxRetryWait = 30 * time.Second

// GetCatalog tries the URL as given, then DocumentName under it.
func (c *Client) GetCatalog(ctx context.Context) (map[string]any, error) {
	candidates := []candidate{{url: c.url, endpoint: "configured"}}
	if !strings.HasSuffix(strings.ToLower(c.url), ".json") {
		candidates = append(candidates, candidate{url: strings.TrimRight(c.url, "/") + "/" + DocumentName, endpoint: "document"})
	}

	body, err := c.fetchFirst(ctx, candidates)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog document: %w", err)
	}
	return doc, nil
}

// ---- Internals ----

var (
	ErrNotFound     = errors.New("catalogapi: not found")
	ErrUnauthorized = errors.New("catalogapi: unauthorized")
	ErrForbidden    = errors.New("catalogapi: forbidden")
	ErrTooLarge     = errors.New("catalogapi: document too large")
)

type candidate struct {
	url      string
	endpoint string // metrics label
}

func (c *Client) fetchFirst(ctx context.Context, cs []candidate) ([]byte, error) {
	var last error
	for _, cand := range cs {
		body, err := c.fetch(ctx, cand)
		if errors.Is(err, ErrNotFound) {
			last = err
			continue
		}
		return body, err
	}
	if last != nil {
		return nil, last
	}
	return nil, errors.New("no candidate URL succeeded")
}

// fetch GETs one candidate with rate limiting. 429 and transient 5xx are
// retried up to 3 times, honoring Retry-After.
func (c *Client) fetch(ctx context.Context, cand candidate) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	const attempts = 4
	var lastErr error
	for i := 0; i < attempts; i++ {
		body, wait, err := c.attempt(ctx, cand)
		if err == nil {
			return body, nil
		}
		if wait < 0 {
			return nil, err
		}
		lastErr = err
		if wait == 0 {
			wait = backoff(i)
		}
		if i == attempts-1 || !sleepCtx(ctx, wait) {
			break
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return nil, lastErr
}

// attempt makes one request. wait < 0 means the error is final; otherwise the
// caller may retry after wait (0 = use backoff).
func (c *Client) attempt(ctx context.Context, cand candidate) (body []byte, wait time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cand.url, nil)
	if err != nil {
		return nil, -1, err
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "travelrec/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("catalog", cand.endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, -1, ctx.Err()
		}
		return nil, 0, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("catalog", cand.endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		b, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentBytes+1))
		if err != nil {
			return nil, -1, fmt.Errorf("read catalog document: %w", err)
		}
		if len(b) > MaxDocumentBytes {
			return nil, -1, ErrTooLarge
		}
		return b, 0, nil
	case http.StatusNotFound:
		return nil, -1, ErrNotFound
	case http.StatusUnauthorized:
		return nil, -1, ErrUnauthorized
	case http.StatusForbidden:
		return nil, -1, ErrForbidden
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, retryAfter(resp), fmt.Errorf("remote %d", resp.StatusCode)
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, -1, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date), capped at
// MaxRetryWait. Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if h == "" {
		return 0
	}
	var d time.Duration
	if secs, err := strconv.Atoi(h); err == nil {
		if secs < 0 {
			return 0
		}
		if secs > int(MaxRetryWait/time.Second) {
			return MaxRetryWait
		}
		d = time.Duration(secs) * time.Second
	} else if t, err := http.ParseTime(h); err == nil {
		d = time.Until(t)
	}
	return min(max(d, 0), MaxRetryWait)
}

// backoff: 200ms, 400ms, 800ms... plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
