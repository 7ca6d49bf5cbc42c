package opentdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const okBody = `{
  "response_code": 0,
  "results": [
    {
      "type": "multiple",
      "difficulty": "easy",
      "category": "Geography",
      "question": "What is the capital of France?",
      "correct_answer": "Paris",
      "incorrect_answers": ["London", "Rome", "Berlin"]
    },
    {
      "type": "boolean",
      "difficulty": "medium",
      "category": "Science &amp; Nature",
      "question": "The sun is a star.",
      "correct_answer": "True",
      "incorrect_answers": ["False"]
    }
  ]
}`

func newTestClient(t *testing.T, opts Options, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL + "/"
	return NewClient(srv.Client(), opts)
}

func TestFetch(t *testing.T) {
	var (
		path  string
		query map[string][]string
	)
	c := newTestClient(t, Options{Amount: 5, Difficulty: "easy", Category: 9}, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query()
		_, _ = w.Write([]byte(okBody))
	})

	recs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	require.Equal(t, "What is the capital of France?", recs[0].Question)
	require.Equal(t, "Paris", recs[0].CorrectAnswer)
	require.Equal(t, []string{"London", "Rome", "Berlin"}, recs[0].IncorrectAnswers)
	require.Equal(t, "Science &amp; Nature", recs[1].Category, "decoding is left to the quiz builder")

	require.Equal(t, "/api.php", path)
	require.Equal(t, []string{"5"}, query["amount"])
	require.Equal(t, []string{"easy"}, query["difficulty"])
	require.Equal(t, []string{"9"}, query["category"])
	require.NotContains(t, query, "type")
}

func TestFetchResponseCodes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "no results", body: `{"response_code":1,"results":[]}`, want: ErrNoResults},
		{name: "invalid parameter", body: `{"response_code":2,"results":[]}`, want: ErrInvalidParameter},
		{name: "rate limit", body: `{"response_code":5,"results":[]}`, want: ErrRateLimited},
		{name: "unknown", body: `{"response_code":42,"results":[]}`, want: ErrUnexpectedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, Options{Amount: 5}, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Fetch(context.Background())
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFetchHTTPErrors(t *testing.T) {
	c := newTestClient(t, Options{Amount: 5}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.Fetch(context.Background())
	require.ErrorIs(t, err, ErrUnexpectedStatus)

	c = newTestClient(t, Options{Amount: 5}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err = c.Fetch(context.Background())
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestFetchMalformedBody(t *testing.T) {
	c := newTestClient(t, Options{Amount: 5}, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response_code":`))
	})

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
}

func TestFetchHonoursContext(t *testing.T) {
	c := newTestClient(t, Options{Amount: 5}, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Fetch(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
