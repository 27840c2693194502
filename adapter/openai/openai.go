//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package openai adapts an OpenAI-compatible chat-completions backend to the
// AG-UI agent contract.
package openai

import (
	"context"

	"github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/tencentcloudbase/cloudbase-agent-go/agent"
	"github.com/tencentcloudbase/cloudbase-agent-go/event"
	"github.com/tencentcloudbase/cloudbase-agent-go/log"
)

const defaultChannelBufferSize = 64

// Agent streams chat completions from an OpenAI-compatible backend and emits
// the corresponding AG-UI events.
type Agent struct {
	client            openai.Client
	model             string
	channelBufferSize int
}

type options struct {
	apiKey            string
	baseURL           string
	channelBufferSize int
	openaiOptions     []openaiopt.RequestOption
}

// Option configures the adapter.
type Option func(*options)

// WithAPIKey sets the backend API key.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithBaseURL points the adapter at a non-default backend.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithChannelBufferSize sets the event channel buffer size.
func WithChannelBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.channelBufferSize = size
		}
	}
}

// WithOpenAIOptions appends extra request options passed to the SDK client.
func WithOpenAIOptions(opts ...openaiopt.RequestOption) Option {
	return func(o *options) { o.openaiOptions = append(o.openaiOptions, opts...) }
}

// New creates an adapter for the given model name.
func New(model string, opt ...Option) *Agent {
	o := options{channelBufferSize: defaultChannelBufferSize}
	for _, op := range opt {
		op(&o)
	}
	var clientOpts []openaiopt.RequestOption
	if o.apiKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.apiKey))
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.baseURL))
	}
	clientOpts = append(clientOpts, o.openaiOptions...)
	return &Agent{
		client:            openai.NewClient(clientOpts...),
		model:             model,
		channelBufferSize: o.channelBufferSize,
	}
}

// Run implements agent.Agent.
func (a *Agent) Run(ctx context.Context, input *agent.RunAgentInput) (<-chan event.Event, error) {
	params := a.buildParams(input)
	ch := make(chan event.Event, a.channelBufferSize)
	go a.stream(ctx, params, input, ch)
	return ch, nil
}

// buildParams maps the AG-UI input onto a chat-completions request.
func (a *Agent) buildParams(input *agent.RunAgentInput) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(input.Messages))
	for _, msg := range input.Messages {
		messages = append(messages, convertMessage(msg))
	}
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(a.model),
		Messages: messages,
	}
	for _, t := range input.Tools {
		params.Tools = append(params.Tools, openai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  shared.FunctionParameters(t.Parameters),
			},
		})
	}
	return params
}

func convertMessage(msg event.Message) openai.ChatCompletionMessageParamUnion {
	content := msg.ContentText()
	switch msg.Role {
	case event.RoleSystem:
		return openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(content),
				},
			},
		}
	case event.RoleAssistant:
		assistant := &openai.ChatCompletionAssistantMessageParam{}
		if content != "" {
			assistant.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
				OfString: openai.String(content),
			}
		}
		for _, tc := range msg.ToolCalls {
			assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallParam{
				ID: tc.ID,
				Function: openai.ChatCompletionMessageToolCallFunctionParam{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}
		return openai.ChatCompletionMessageParamUnion{OfAssistant: assistant}
	case event.RoleTool:
		return openai.ChatCompletionMessageParamUnion{
			OfTool: &openai.ChatCompletionToolMessageParam{
				Content: openai.ChatCompletionToolMessageParamContentUnion{
					OfString: openai.String(content),
				},
				ToolCallID: msg.ToolCallID,
			},
		}
	default:
		return openai.ChatCompletionMessageParamUnion{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(content),
				},
			},
		}
	}
}

// stream pumps provider chunks into AG-UI events and closes the channel when
// the run ends.
func (a *Agent) stream(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
	input *agent.RunAgentInput,
	ch chan<- event.Event,
) {
	defer close(ch)

	send := func(evt event.Event) bool {
		select {
		case ch <- evt:
			return true
		case <-ctx.Done():
			return false
		}
	}
	if !send(event.NewRunStartedEvent(input.ThreadID, input.RunID)) {
		return
	}

	stream := a.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	messageOpen := false
	messageID := ""
	toolCallID := ""
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]
		if choice.Delta.Content != "" {
			if !messageOpen {
				messageID = chunk.ID
				messageOpen = true
				if !send(event.NewTextMessageStartEvent(messageID, event.WithRole(event.RoleAssistant))) {
					return
				}
			}
			if !send(event.NewTextMessageContentEvent(messageID, choice.Delta.Content)) {
				return
			}
		}
		for _, tc := range choice.Delta.ToolCalls {
			if tc.ID != "" && tc.ID != toolCallID {
				if toolCallID != "" {
					if !send(event.NewToolCallEndEvent(toolCallID)) {
						return
					}
				}
				toolCallID = tc.ID
				if !send(event.NewToolCallStartEvent(toolCallID, tc.Function.Name,
					event.WithParentMessageID(chunk.ID))) {
					return
				}
			}
			if toolCallID != "" && tc.Function.Arguments != "" {
				if !send(event.NewToolCallArgsEvent(toolCallID, tc.Function.Arguments)) {
					return
				}
			}
		}
		if choice.FinishReason != "" {
			if messageOpen {
				messageOpen = false
				if !send(event.NewTextMessageEndEvent(messageID)) {
					return
				}
			}
			if toolCallID != "" {
				if !send(event.NewToolCallEndEvent(toolCallID)) {
					return
				}
				toolCallID = ""
			}
		}
	}
	if err := stream.Err(); err != nil {
		log.Errorf("openai adapter: runID: %s, stream failed: %v", input.RunID, err)
		send(event.NewRunErrorEvent(err.Error(), event.WithRunErrorIDs(input.ThreadID, input.RunID)))
		return
	}
	send(event.NewRunFinishedEvent(input.ThreadID, input.RunID))
}
