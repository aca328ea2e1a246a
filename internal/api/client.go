package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Client is the contract the UI consumes. The HTTP implementation talks to
// the platform backend; MockClient serves tests and the offline demo mode.
type Client interface {
	// GetTest fetches the metadata of one assessment.
	GetTest(ctx context.Context, testID string) (*Test, error)

	// GetQuestions fetches one page of questions. The same query returns the
	// same slice for the duration of a session (server contract).
	GetQuestions(ctx context.Context, q QuestionQuery) (*QuestionPage, error)

	// SubmitTest finalizes the attempt. The caller enforces single-call
	// semantics; the server is assumed idempotent per attempt.
	SubmitTest(ctx context.Context, testID, userID string) error

	// ListTests returns the assessments available to the student.
	ListTests(ctx context.Context, userID string) ([]Test, error)

	// ListResults returns the student's completed attempts.
	ListResults(ctx context.Context, userID string) ([]Result, error)
}

// HTTPClient implements Client against the platform REST API.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// NewHTTPClient creates a client for the API rooted at baseURL.
func NewHTTPClient(baseURL, token string, timeout time.Duration, log zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "api").Logger(),
	}
}

func (c *HTTPClient) GetTest(ctx context.Context, testID string) (*Test, error) {
	var t Test
	if err := c.get(ctx, "/tests/"+url.PathEscape(testID), nil, &t); err != nil {
		return nil, fmt.Errorf("get test: %w", err)
	}
	return &t, nil
}

func (c *HTTPClient) GetQuestions(ctx context.Context, q QuestionQuery) (*QuestionPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("page_size", strconv.Itoa(q.PageSize))
	if q.Grade != "" {
		params.Set("grade", q.Grade)
	}
	if q.SessionID != "" {
		params.Set("session_id", q.SessionID)
	}

	var page QuestionPage
	if err := c.get(ctx, "/tests/"+url.PathEscape(q.TestID)+"/questions", params, &page); err != nil {
		return nil, fmt.Errorf("get questions page %d: %w", q.Page, err)
	}
	return &page, nil
}

func (c *HTTPClient) SubmitTest(ctx context.Context, testID, userID string) error {
	body := map[string]string{"test_id": testID, "user_id": userID}
	if err := c.post(ctx, "/submissions", body, nil); err != nil {
		return fmt.Errorf("submit test: %w", err)
	}
	c.log.Info().Str("test_id", testID).Msg("submission accepted")
	return nil
}

func (c *HTTPClient) ListTests(ctx context.Context, userID string) ([]Test, error) {
	params := url.Values{}
	params.Set("user_id", userID)

	var tests []Test
	if err := c.get(ctx, "/tests", params, &tests); err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	return tests, nil
}

func (c *HTTPClient) ListResults(ctx context.Context, userID string) ([]Result, error) {
	params := url.Values{}
	params.Set("user_id", userID)

	var results []Result
	if err := c.get(ctx, "/results", params, &results); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes the request and translates every failure into the package's
// error taxonomy. Raw transport errors never escape.
func (c *HTTPClient) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("url", req.URL.Path).Msg("transport failure")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError extracts the server's message when it sent one.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		if json.Unmarshal(body, &payload) == nil {
			if payload.Message != "" {
				apiErr.Message = payload.Message
			} else {
				apiErr.Message = payload.Error
			}
		}
	}
	return apiErr
}
