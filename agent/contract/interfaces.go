package contract

import "context"

// GenerateOptions are the decoding options for one oracle call. They are
// always explicit per call site: deterministic extraction sets DoSample=false,
// the synthesizer samples.
type GenerateOptions struct {
	MaxNewTokens int
	DoSample     bool
	Temperature  float64
}

// Oracle is the external text-generation collaborator, treated as a black box
// mapping a prompt to generated text.
type Oracle interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// Handler fulfills one intent. Implementations are instantiated per request by
// the registry and hold no shared mutable state beyond injected collaborators.
type Handler interface {
	Intent() Intent
	// Process runs extract -> validate -> fulfill for the user message.
	// User-facing problems (extraction failure, missing fields, lookup miss,
	// capacity rejection) are returned as results, not errors; an error means
	// the handler itself failed and the dispatcher falls back to a nil result.
	Process(ctx context.Context, userMessage string) (*FulfillmentResult, error)
}

// Classifier maps raw user text to an intent plus confidence.
type Classifier interface {
	Classify(ctx context.Context, userMessage string) (ClassificationResult, error)
}

// Synthesizer phrases the final user-facing reply. result may be nil when no
// handler ran or the handler failed.
type Synthesizer interface {
	Synthesize(ctx context.Context, userMessage string, history []Turn, result *FulfillmentResult) (string, error)
}
