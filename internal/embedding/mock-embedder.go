package embedding

import (
	"context"
	"strings"

	"github.com/hyperjump/erabu/internal/vector"
)

// MockEmbedder is a deterministic embedder for tests and for running without a
// model. Each token maps to a fixed pseudo-random ±1 direction; a text embeds
// as the normalized sum of its token directions. Texts sharing words land
// close in cosine space while unrelated texts stay near orthogonal. Crude
// normalization (lowercasing, punctuation stripping, plural trimming) makes
// related briefs and bios overlap the way a real model would.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder returns an embedder producing deterministic embeddings of the given dimensions.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 1024
	}
	return &MockEmbedder{dimensions: dimensions}
}

// Embed returns a deterministic normalized embedding derived from the text's tokens.
func (e *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	emb := make([]float32, e.dimensions)
	for _, token := range mockTokens(text) {
		h := uint64(hashString(token))
		for i := range emb {
			emb[i] += tokenFeature(h, uint64(i))
		}
	}
	vector.NormalizeL2(emb)
	return emb, nil
}

// EmbedBatch calls Embed for each text.
func (e *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for MockEmbedder.
func (e *MockEmbedder) Close() error {
	return nil
}

// tokenFeature returns a ±1 feature for (token hash, dimension) using a
// murmur-style finalizer, giving distinct tokens near-orthogonal directions.
func tokenFeature(h, i uint64) float32 {
	x := h*0x9e3779b97f4a7c15 + i*0xbf58476d1ce4e5b9
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	if x&1 == 1 {
		return 1
	}
	return -1
}

// mockTokens lowercases, strips non-alphanumeric runes, and trims a trailing
// "s" so that "influencers" and "influencer" count as the same token.
func mockTokens(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(text)) {
		var b strings.Builder
		for _, r := range field {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		token := strings.TrimSuffix(b.String(), "s")
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
