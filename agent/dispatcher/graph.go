package dispatcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/foodiespot/assistant/agent/contract"
)

type graphState struct {
	RequestID   string
	UserMessage string
	History     []contractx.Turn

	Classification contractx.ClassificationResult
}

func (d *Dispatcher) compileProcessChatGraph(
	ctx context.Context,
) (compose.Runnable[GraphInput, GraphOutput], error) {
	graph := compose.NewGraph[GraphInput, GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in GraphInput) (*graphState, error) {
			message := strings.TrimSpace(in.UserMessage)
			if message == "" {
				return nil, ErrInvalidMessage
			}
			return &graphState{
				RequestID:   uuid.NewString(),
				UserMessage: message,
				History:     in.History,
			}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("classify_intent",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			result, err := d.classifier.Classify(ctx, in.UserMessage)
			if err != nil {
				return nil, err
			}
			in.Classification = result
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	if err := graph.AddLambdaNode("handled_reply",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (GraphOutput, error) {
			return d.handledReply(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node handled_reply: %w", err)
	}

	if err := graph.AddLambdaNode("fallback_reply",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (GraphOutput, error) {
			return d.reply(ctx, in, nil)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node fallback_reply: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *graphState) (string, error) {
			intent := in.Classification.Intent
			if intent == contractx.IntentGeneralResponse {
				return "fallback_reply", nil
			}
			if _, ok := d.registry.Lookup(intent); !ok {
				return "fallback_reply", nil
			}
			return "handled_reply", nil
		},
		map[string]bool{
			"handled_reply":  true,
			"fallback_reply": true,
		},
	)

	if err := graph.AddEdge(compose.START, "validate_request"); err != nil {
		return nil, fmt.Errorf("add edge start->validate_request: %w", err)
	}
	if err := graph.AddEdge("validate_request", "classify_intent"); err != nil {
		return nil, fmt.Errorf("add edge validate_request->classify_intent: %w", err)
	}
	if err := graph.AddBranch("classify_intent", branch); err != nil {
		return nil, fmt.Errorf("add dispatch branch: %w", err)
	}
	if err := graph.AddEdge("handled_reply", compose.END); err != nil {
		return nil, fmt.Errorf("add edge handled_reply->end: %w", err)
	}
	if err := graph.AddEdge("fallback_reply", compose.END); err != nil {
		return nil, fmt.Errorf("add edge fallback_reply->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("dispatcher.process_chat"))
	if err != nil {
		return nil, fmt.Errorf("compile dispatcher graph: %w", err)
	}
	return runner, nil
}

// handledReply runs the selected handler and always continues to synthesis.
// A handler failure is contained: the reply is synthesized without a result.
func (d *Dispatcher) handledReply(ctx context.Context, in *graphState) (GraphOutput, error) {
	factory, _ := d.registry.Lookup(in.Classification.Intent)
	h := factory()

	result, err := h.Process(ctx, in.UserMessage)
	if err != nil {
		log.Warn().Err(err).
			Str("request_id", in.RequestID).
			Str("intent", string(in.Classification.Intent)).
			Msg("handler failed, replying without fulfillment result")
		result = nil
	}
	return d.reply(ctx, in, result)
}

func (d *Dispatcher) reply(ctx context.Context, in *graphState, result *contractx.FulfillmentResult) (GraphOutput, error) {
	text, err := d.synthesizer.Synthesize(ctx, in.UserMessage, in.History, result)
	if err != nil {
		return GraphOutput{}, err
	}
	log.Info().
		Str("request_id", in.RequestID).
		Str("intent", string(in.Classification.Intent)).
		Bool("fulfilled", result != nil).
		Msg("reply synthesized")
	return GraphOutput{Reply: text}, nil
}
