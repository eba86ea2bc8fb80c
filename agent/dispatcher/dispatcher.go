// Package dispatcher owns the handler registry and the request pipeline:
// classify, confidence-gated dispatch, synthesis. It is stateless and safe
// for concurrent requests; the only shared mutable state lives in the ledger.
package dispatcher

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/foodiespot/assistant/agent/contract"
	handlerx "github.com/foodiespot/assistant/agent/handler"
)

var ErrInvalidMessage = errors.New("message is empty")

type GraphInput struct {
	UserMessage string
	History     []contractx.Turn
}

type GraphOutput struct {
	Reply string
}

type Dispatcher struct {
	classifier  contractx.Classifier
	synthesizer contractx.Synthesizer
	registry    *handlerx.Registry

	graphRunner compose.Runnable[GraphInput, GraphOutput]
}

func New(
	classifier contractx.Classifier,
	synthesizer contractx.Synthesizer,
	registry *handlerx.Registry,
) (*Dispatcher, error) {
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if synthesizer == nil {
		return nil, errors.New("synthesizer is required")
	}
	if registry == nil {
		return nil, errors.New("handler registry is required")
	}

	d := &Dispatcher{
		classifier:  classifier,
		synthesizer: synthesizer,
		registry:    registry,
	}

	graphRunner, err := d.compileProcessChatGraph(context.Background())
	if err != nil {
		return nil, err
	}
	d.graphRunner = graphRunner

	return d, nil
}

// ProcessChat is the engine entry point: user text plus the caller-owned
// transcript in, final reply text out.
func (d *Dispatcher) ProcessChat(ctx context.Context, userMessage string, history []contractx.Turn) (string, error) {
	out, err := d.graphRunner.Invoke(ctx, GraphInput{
		UserMessage: userMessage,
		History:     history,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}
