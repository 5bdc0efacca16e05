// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd005-llm-client R2 (streaming), R4 (token tracking).
package llm

import (
	"context"
	"fmt"
	"strings"

	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/petar-djukic/autodocu/pkg/types"
)

// EventStream abstracts the Bedrock ConverseStream event stream for testing.
type EventStream interface {
	Events() <-chan brtypes.ConverseStreamOutput
	Close() error
	Err() error
}

// consumeStream reads events from a Bedrock ConverseStream and accumulates
// the full response text and token usage. A transport failure mid-stream
// or a context cancellation returns an error; partial text is never
// reported as a successful response.
//
// Implements: prd005-llm-client R2.1-R2.4, R4.1-R4.2.
func consumeStream(ctx context.Context, stream EventStream) (*types.StreamResponse, error) {
	var text strings.Builder
	response := &types.StreamResponse{}

	events := stream.Events()
	for {
		select {
		case <-ctx.Done():
			stream.Close()
			return nil, ctx.Err()

		case event, ok := <-events:
			if !ok {
				// The SDK closes the channel on both completion and
				// failure; Err distinguishes the two.
				if err := stream.Err(); err != nil {
					return nil, fmt.Errorf("stream failed after %d bytes: %w", text.Len(), err)
				}
				response.FullText = text.String()
				return response, nil
			}

			switch v := event.(type) {
			case *brtypes.ConverseStreamOutputMemberContentBlockDelta:
				if delta, ok := v.Value.Delta.(*brtypes.ContentBlockDeltaMemberText); ok {
					text.WriteString(delta.Value)
				}

			case *brtypes.ConverseStreamOutputMemberMetadata:
				if v.Value.Usage != nil {
					if v.Value.Usage.InputTokens != nil {
						response.Usage.InputTokens = int(*v.Value.Usage.InputTokens)
					}
					if v.Value.Usage.OutputTokens != nil {
						response.Usage.OutputTokens = int(*v.Value.Usage.OutputTokens)
					}
				}
			}
		}
	}
}
