package election

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/m3rciful/electionbot/core/logger"
)

const (
	// DefaultQuickCountURL is the election commission's presidential tally document.
	DefaultQuickCountURL = "https://sirekap-obj-data.kpu.go.id/pemilu/hhcw/ppwp.json"
	// DefaultCandidatesURL serves the candidate biographies.
	DefaultCandidatesURL = "https://mul-co.com/wp-admin/x.json"

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// ClientOptions configures NewClient. Zero values fall back to defaults.
type ClientOptions struct {
	QuickCountURL string
	CandidatesURL string
	Timeout       time.Duration
	HTTPClient    *http.Client
}

// Client fetches election documents. Every call is a single GET without retries.
type Client struct {
	quickCountURL string
	candidatesURL string
	http          *http.Client
}

// NewClient builds a Client.
func NewClient(opts ClientOptions) *Client {
	if opts.QuickCountURL == "" {
		opts.QuickCountURL = DefaultQuickCountURL
	}
	if opts.CandidatesURL == "" {
		opts.CandidatesURL = DefaultCandidatesURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		quickCountURL: opts.QuickCountURL,
		candidatesURL: opts.CandidatesURL,
		http:          hc,
	}
}

// QuickCount fetches and validates the current quick count.
func (c *Client) QuickCount(ctx context.Context) (QuickCount, error) {
	body, err := c.get(ctx, c.quickCountURL)
	if err != nil {
		return QuickCount{}, err
	}
	qc, err := ParseQuickCount(body)
	if err != nil {
		return QuickCount{}, malformed(c.quickCountURL, err)
	}
	return qc, nil
}

// Candidates fetches and validates the candidate list, preserving upstream order.
func (c *Client) Candidates(ctx context.Context) ([]Candidate, error) {
	body, err := c.get(ctx, c.candidatesURL)
	if err != nil {
		return nil, err
	}
	list, err := ParseCandidates(body)
	if err != nil {
		return nil, malformed(c.candidatesURL, err)
	}
	return list, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug(ctx, "election.fetch", "fetch.fail",
			slog.String("url", url),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return nil, &FetchError{URL: url, Kind: KindNetwork, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		logger.Debug(ctx, "election.fetch", "fetch.fail",
			slog.String("url", url),
			slog.Int("http_code", resp.StatusCode),
			slog.Duration("duration", logger.Took(start)),
		)
		return nil, &FetchError{
			URL:    url,
			Kind:   KindStatus,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{URL: url, Kind: KindNetwork, Status: resp.StatusCode, Err: err}
	}

	logger.Debug(ctx, "election.fetch", "fetch.done",
		slog.String("url", url),
		slog.Int("http_code", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Duration("duration", logger.Took(start)),
	)
	return body, nil
}
