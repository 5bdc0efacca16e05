// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEventStream feeds pre-built events to consumeStream.
type mockEventStream struct {
	events chan brtypes.ConverseStreamOutput
	closed bool
	err    error
}

func newMockEventStream(events ...brtypes.ConverseStreamOutput) *mockEventStream {
	ch := make(chan brtypes.ConverseStreamOutput, len(events))
	for _, e := range events {
		ch <- e
	}
	close(ch)
	return &mockEventStream{events: ch}
}

func (m *mockEventStream) Events() <-chan brtypes.ConverseStreamOutput { return m.events }
func (m *mockEventStream) Close() error                                { m.closed = true; return nil }
func (m *mockEventStream) Err() error                                  { return m.err }

func textDelta(s string) brtypes.ConverseStreamOutput {
	return &brtypes.ConverseStreamOutputMemberContentBlockDelta{
		Value: brtypes.ContentBlockDeltaEvent{
			Delta: &brtypes.ContentBlockDeltaMemberText{Value: s},
		},
	}
}

func usageMetadata(in, out int32) brtypes.ConverseStreamOutput {
	return &brtypes.ConverseStreamOutputMemberMetadata{
		Value: brtypes.ConverseStreamMetadataEvent{
			Usage: &brtypes.TokenUsage{
				InputTokens:  aws.Int32(in),
				OutputTokens: aws.Int32(out),
			},
		},
	}
}

func TestConsumeStream_AccumulatesText(t *testing.T) {
	stream := newMockEventStream(
		textDelta("The file "),
		textDelta("parses "),
		textDelta("input."),
		usageMetadata(42, 7),
	)

	response, err := consumeStream(context.Background(), stream)
	require.NoError(t, err)

	assert.Equal(t, "The file parses input.", response.FullText)
	assert.Equal(t, 42, response.Usage.InputTokens)
	assert.Equal(t, 7, response.Usage.OutputTokens)
}

func TestConsumeStream_EmptyStream(t *testing.T) {
	response, err := consumeStream(context.Background(), newMockEventStream())
	require.NoError(t, err)
	assert.Empty(t, response.FullText)
	assert.Zero(t, response.Usage.InputTokens)
}

func TestConsumeStream_ContextCancelled(t *testing.T) {
	// An open channel with no events blocks until the context fires.
	stream := &mockEventStream{events: make(chan brtypes.ConverseStreamOutput)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := consumeStream(ctx, stream)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, stream.closed)
}

func TestConsumeStream_FailureAfterPartialText(t *testing.T) {
	// The SDK closes the events channel on transport failure and records
	// the cause in Err. The partial text must not pass as a response.
	stream := newMockEventStream(textDelta("partial summ"))
	stream.err = errors.New("connection reset mid-stream")

	_, err := consumeStream(context.Background(), stream)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset mid-stream")
}

// mockBedrockAPI returns queued errors in call order. A successful
// ConverseStream cannot be faked because the SDK's output stream is only
// built by its own deserializer, so tests cover the error paths here and
// the happy path through consumeStream above.
type mockBedrockAPI struct {
	errs  []error
	calls int
}

func (m *mockBedrockAPI) ConverseStream(ctx context.Context, params *bedrockruntime.ConverseStreamInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseStreamOutput, error) {
	err := m.errs[m.calls]
	m.calls++
	return nil, err
}

func TestSummarize_AccessDenied(t *testing.T) {
	api := &mockBedrockAPI{errs: []error{&brtypes.AccessDeniedException{Message: aws.String("nope")}}}
	client := NewClientWithAPI(api, ClientConfig{ModelID: "test-model", Region: "us-east-1"})

	_, err := client.Summarize(context.Background(), "describe this")

	require.ErrorIs(t, err, ErrBackend)
	assert.Contains(t, err.Error(), "credential or permission")
}

func TestSummarize_ModelNotFound(t *testing.T) {
	api := &mockBedrockAPI{errs: []error{&brtypes.ResourceNotFoundException{Message: aws.String("missing")}}}
	client := NewClientWithAPI(api, ClientConfig{ModelID: "bogus-model", Region: "us-east-1"})

	_, err := client.Summarize(context.Background(), "describe this")

	require.ErrorIs(t, err, ErrBackend)
	assert.Contains(t, err.Error(), "bogus-model")
}

func TestSummarize_GenericErrorWrapped(t *testing.T) {
	api := &mockBedrockAPI{errs: []error{errors.New("connection reset")}}
	client := NewClientWithAPI(api, ClientConfig{ModelID: "test-model", Region: "us-east-1"})

	_, err := client.Summarize(context.Background(), "describe this")

	require.ErrorIs(t, err, ErrBackend)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSummarize_RetriesThrottling(t *testing.T) {
	if testing.Short() {
		t.Skip("retry backoff sleeps")
	}

	api := &mockBedrockAPI{errs: []error{
		&brtypes.ThrottlingException{Message: aws.String("slow down")},
		&brtypes.AccessDeniedException{Message: aws.String("nope")},
	}}
	client := NewClientWithAPI(api, ClientConfig{ModelID: "test-model", Region: "us-east-1"})

	_, err := client.Summarize(context.Background(), "describe this")

	// The throttle is retried; the second call fails terminally.
	require.ErrorIs(t, err, ErrBackend)
	assert.Equal(t, 2, api.calls)
	assert.Contains(t, err.Error(), "credential or permission")
}

func TestSummarize_ContextCancelledDuringRetry(t *testing.T) {
	api := &mockBedrockAPI{errs: []error{
		&brtypes.ThrottlingException{Message: aws.String("slow down")},
	}}
	client := NewClientWithAPI(api, ClientConfig{ModelID: "test-model", Region: "us-east-1"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Summarize(ctx, "describe this")

	require.ErrorIs(t, err, ErrBackend)
	assert.Equal(t, 1, api.calls)
	assert.Contains(t, err.Error(), "context cancelled")
}

func TestNewClient_RequiresModelAndRegion(t *testing.T) {
	_, err := NewClient(context.Background(), ClientConfig{Region: "us-east-1"})
	assert.ErrorIs(t, err, ErrBackend)

	_, err = NewClient(context.Background(), ClientConfig{ModelID: "test-model"})
	assert.ErrorIs(t, err, ErrBackend)
}

func TestClient_UsageStartsEmpty(t *testing.T) {
	api := &mockBedrockAPI{}
	client := NewClientWithAPI(api, ClientConfig{ModelID: "test-model", Region: "us-east-1"})

	usage := client.Usage()
	assert.Zero(t, usage.InputTokens)
	assert.Zero(t, usage.OutputTokens)
}
