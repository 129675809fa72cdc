package answer

import "context"

// Model is the fallback language model used when corpus retrieval misses.
type Model interface {
	Complete(ctx context.Context, question string) (string, error)
}
