// Package embedding provides sentence embedding via ONNX with text-level memoization.
package embedding

import "context"

// Embedder produces L2-normalized vector embeddings for text.
//
// Implementations must be deterministic: the same text always yields the same
// vector within a process. The underlying model is loaded once and held for
// the process lifetime; Close releases it at shutdown.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
