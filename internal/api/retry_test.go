package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyClient fails reads a fixed number of times before delegating to a mock.
type flakyClient struct {
	*MockClient
	failures int
	err      error
	calls    int
}

func (f *flakyClient) GetTest(ctx context.Context, testID string) (*Test, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return f.MockClient.GetTest(ctx, testID)
}

func fastRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2.0}
}

func TestRetryRecoversFromTemporaryError(t *testing.T) {
	inner := NewMockClient()
	inner.Tests = []Test{{ID: "t1", Title: "Aptitude"}}
	flaky := &flakyClient{MockClient: inner, failures: 2, err: &APIError{StatusCode: 503}}

	c := WithRetry(flaky, fastRetryConfig())
	test, err := c.GetTest(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, "Aptitude", test.Title)
	assert.Equal(t, 3, flaky.calls)
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	flaky := &flakyClient{MockClient: NewMockClient(), failures: 10, err: &APIError{StatusCode: 503}}

	c := WithRetry(flaky, fastRetryConfig())
	_, err := c.GetTest(context.Background(), "t1")

	require.Error(t, err)
	assert.Equal(t, 3, flaky.calls)
}

func TestRetryDoesNotRetryClientErrors(t *testing.T) {
	flaky := &flakyClient{MockClient: NewMockClient(), failures: 10, err: &APIError{StatusCode: 404}}

	c := WithRetry(flaky, fastRetryConfig())
	_, err := c.GetTest(context.Background(), "t1")

	require.Error(t, err)
	assert.Equal(t, 1, flaky.calls)
}

func TestRetryNeverWrapsSubmit(t *testing.T) {
	inner := NewMockClient()
	inner.SubmitErrs = []error{&APIError{StatusCode: 503}}

	c := WithRetry(inner, fastRetryConfig())
	err := c.SubmitTest(context.Background(), "t1", "u1")

	require.Error(t, err)
	assert.Equal(t, 1, inner.SubmitCalls, "submission must be a single call, retried only by the user")
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flaky := &flakyClient{MockClient: NewMockClient(), failures: 10, err: &APIError{StatusCode: 503}}
	c := WithRetry(flaky, fastRetryConfig())

	_, err := c.GetTest(ctx, "t1")
	require.Error(t, err)
	assert.LessOrEqual(t, flaky.calls, 1)
}
