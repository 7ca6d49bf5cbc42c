package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
)

// Response codes returned by the Open Trivia DB API.
const (
	codeSuccess          = 0
	codeNoResults        = 1
	codeInvalidParameter = 2
	codeRateLimit        = 5
)

var (
	ErrNoResults          = errors.New("trivia api has not enough questions for the query")
	ErrInvalidParameter   = errors.New("trivia api rejected the query parameters")
	ErrRateLimited        = errors.New("trivia api rate limit exceeded")
	ErrUnexpectedResponse = errors.New("unexpected trivia api response code")
	ErrUnexpectedStatus   = errors.New("unexpected trivia api http status")
)

// Options selects which questions are requested.
type Options struct {
	BaseURL    string
	Amount     int
	Category   int    // 0 means any
	Difficulty string // easy, medium, hard or empty for any
	Type       string // multiple, boolean or empty for any
	Timeout    time.Duration
}

// Client fetches questions from the Open Trivia DB HTTP API.
type Client struct {
	httpClient *http.Client
	opts       Options
}

// NewClient creates a client. A nil httpClient gets one with opts.Timeout.
func NewClient(httpClient *http.Client, opts Options) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	return &Client{
		httpClient: httpClient,
		opts:       opts,
	}
}

type apiResponse struct {
	ResponseCode int                  `json:"response_code"`
	Results      []entities.RawRecord `json:"results"`
}

// Fetch requests one batch of questions in API order.
func (c *Client) Fetch(ctx context.Context) ([]entities.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	if err := codeError(body.ResponseCode); err != nil {
		return nil, err
	}

	return body.Results, nil
}

func (c *Client) requestURL() string {
	q := url.Values{}
	q.Set("amount", strconv.Itoa(c.opts.Amount))
	if c.opts.Category > 0 {
		q.Set("category", strconv.Itoa(c.opts.Category))
	}
	if c.opts.Difficulty != "" {
		q.Set("difficulty", c.opts.Difficulty)
	}
	if c.opts.Type != "" {
		q.Set("type", c.opts.Type)
	}

	return c.opts.BaseURL + "/api.php?" + q.Encode()
}

func codeError(code int) error {
	switch code {
	case codeSuccess:
		return nil
	case codeNoResults:
		return ErrNoResults
	case codeInvalidParameter:
		return ErrInvalidParameter
	case codeRateLimit:
		return ErrRateLimited
	default:
		return fmt.Errorf("%w: %d", ErrUnexpectedResponse, code)
	}
}
