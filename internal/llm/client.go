// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd005-llm-client R1 (Bedrock client), R5 (error handling);
//
//	docs/ARCHITECTURE § LLM Client.
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/petar-djukic/autodocu/pkg/types"
)

const (
	defaultTimeout   = 120 * time.Second
	defaultMaxTokens = 1024
	maxRetryAttempts = 3
	baseRetryDelay   = 1 * time.Second
)

// ErrBackend indicates the summarization request failed (network, auth,
// rate limit, timeout, malformed response). The orchestrator treats this
// as skip-this-file, never fatal to the whole run.
var ErrBackend = errors.New("backend failure")

// Summarizer is the capability the orchestrator needs from the model
// backend. Tests substitute a deterministic fake.
type Summarizer interface {
	// Summarize sends one prompt to the backend and returns its text
	// response.
	Summarize(ctx context.Context, prompt string) (string, error)
	// Usage returns cumulative token usage across all calls.
	Usage() types.TokenUsage
}

// ClientConfig configures the Bedrock LLM client.
type ClientConfig struct {
	ModelID   string        // Bedrock model ID (required)
	Region    string        // AWS region (required)
	Profile   string        // AWS credential profile (optional, uses default chain if empty)
	Timeout   time.Duration // Per-request timeout (default 120s)
	MaxTokens int           // Max tokens for the response (default 1024)
}

// BedrockAPI abstracts the Bedrock ConverseStream call for testing.
type BedrockAPI interface {
	ConverseStream(ctx context.Context, params *bedrockruntime.ConverseStreamInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseStreamOutput, error)
}

// Client wraps the AWS Bedrock runtime client behind Summarizer.
type Client struct {
	api       BedrockAPI
	modelID   string
	system    string
	timeout   time.Duration
	maxTokens int

	mu    sync.Mutex
	usage types.TokenUsage // Cumulative usage across calls
}

// NewClient creates a Bedrock-backed Summarizer from the given
// configuration. It initializes the AWS SDK client using the standard
// credential chain.
//
// Implements: prd005-llm-client R1.1-R1.5.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.ModelID == "" {
		return nil, fmt.Errorf("%w: model ID is required", ErrBackend)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: region is required", ErrBackend)
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading AWS config: %v", ErrBackend, err)
	}

	return newClient(bedrockruntime.NewFromConfig(awsCfg), cfg)
}

// NewClientWithAPI creates a client with a pre-configured API
// implementation. Used for testing with mock clients.
func NewClientWithAPI(api BedrockAPI, cfg ClientConfig) *Client {
	c, err := newClient(api, cfg)
	if err != nil {
		panic(err) // Template is embedded; rendering cannot fail at runtime.
	}
	return c
}

func newClient(api BedrockAPI, cfg ClientConfig) (*Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	system, err := RenderSystemPrompt()
	if err != nil {
		return nil, fmt.Errorf("%w: rendering system prompt: %v", ErrBackend, err)
	}

	return &Client{
		api:       api,
		modelID:   cfg.ModelID,
		system:    system,
		timeout:   timeout,
		maxTokens: maxTokens,
	}, nil
}

// Summarize sends one prompt to Bedrock and returns the full response
// text. Throttling is retried with exponential backoff; other failures
// are classified and wrapped into ErrBackend.
//
// Implements: prd005-llm-client R1.6, R5.1-R5.4.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	response, err := c.sendWithRetry(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.usage.Add(response.Usage)
	c.mu.Unlock()

	return response.FullText, nil
}

// Usage returns the total token usage across all calls.
//
// Implements: prd005-llm-client R4.3.
func (c *Client) Usage() types.TokenUsage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usage
}

// sendWithRetry calls ConverseStream with exponential backoff retry for
// rate limit errors.
//
// Implements: prd005-llm-client R5.1.
func (c *Client) sendWithRetry(ctx context.Context, prompt string) (*types.StreamResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetryAttempts; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: context cancelled during retry: %v", ErrBackend, ctx.Err())
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)

		input := &bedrockruntime.ConverseStreamInput{
			ModelId: aws.String(c.modelID),
			System: []brtypes.SystemContentBlock{
				&brtypes.SystemContentBlockMemberText{Value: c.system},
			},
			Messages: []brtypes.Message{
				{
					Role: brtypes.ConversationRoleUser,
					Content: []brtypes.ContentBlock{
						&brtypes.ContentBlockMemberText{Value: prompt},
					},
				},
			},
			InferenceConfig: &brtypes.InferenceConfiguration{
				MaxTokens: aws.Int32(int32(c.maxTokens)),
			},
		}

		output, err := c.api.ConverseStream(callCtx, input)
		if err != nil {
			cancel()

			var throttle *brtypes.ThrottlingException
			if errors.As(err, &throttle) {
				lastErr = err
				continue
			}

			return nil, c.classifyError(err)
		}

		response, err := consumeStream(callCtx, output.GetStream())
		cancel()
		if err != nil {
			return nil, c.classifyError(err)
		}
		response.Retries = attempt
		return response, nil
	}

	return nil, fmt.Errorf("%w: rate limited after %d retries: %v", ErrBackend, maxRetryAttempts, lastErr)
}

// classifyError wraps Bedrock errors into ErrBackend with descriptive
// messages.
//
// Implements: prd005-llm-client R5.2-R5.4.
func (c *Client) classifyError(err error) error {
	var accessDenied *brtypes.AccessDeniedException
	if errors.As(err, &accessDenied) {
		return fmt.Errorf("%w: credential or permission issue: %v", ErrBackend, err)
	}

	var notFound *brtypes.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: model not found: %s", ErrBackend, c.modelID)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out after %s", ErrBackend, c.timeout)
	}

	return fmt.Errorf("%w: %v", ErrBackend, err)
}
