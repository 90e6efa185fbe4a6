package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/hyperjump/erabu/internal/vector"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	e := NewMockEmbedder(64)
	a, err := e.Embed(context.Background(), "skincare reels")
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Embed(context.Background(), "skincare reels")
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embedding not deterministic at index %d", i)
		}
	}
}

func TestMockEmbedder_Normalized(t *testing.T) {
	e := NewMockEmbedder(64)
	emb, err := e.Embed(context.Background(), "beauty influencer in Mumbai")
	if err != nil {
		t.Fatal(err)
	}
	if norm := vector.L2Norm(emb); math.Abs(norm-1) > 1e-5 {
		t.Errorf("norm = %f, want 1", norm)
	}
}

func TestMockEmbedder_SharedTokensScoreHigher(t *testing.T) {
	e := NewMockEmbedder(512)
	ctx := context.Background()
	query, _ := e.Embed(ctx, "skincare influencers")
	related, _ := e.Embed(ctx, "skincare routines and beauty tips")
	unrelated, _ := e.Embed(ctx, "gadget reviews and benchmarks")

	relatedScore := vector.CosineSimilarity(query, related)
	unrelatedScore := vector.CosineSimilarity(query, unrelated)
	if relatedScore <= unrelatedScore {
		t.Errorf("related text should score higher: related=%f unrelated=%f",
			relatedScore, unrelatedScore)
	}
	// Embeddings are pre-normalized, so cosine and inner product must agree.
	if d := vector.InnerProduct(query, related); math.Abs(d-relatedScore) > 1e-5 {
		t.Errorf("inner product %f disagrees with cosine %f on unit vectors", d, relatedScore)
	}
}

func TestMockEmbedder_Dimensions(t *testing.T) {
	if got := NewMockEmbedder(0).Dimensions(); got != 1024 {
		t.Errorf("default dimensions = %d, want 1024", got)
	}
	if got := NewMockEmbedder(256).Dimensions(); got != 256 {
		t.Errorf("dimensions = %d, want 256", got)
	}
}

func TestMockTokens(t *testing.T) {
	got := mockTokens("Beauty influencers, skincare products!")
	want := []string{"beauty", "influencer", "skincare", "product"}
	if len(got) != len(want) {
		t.Fatalf("tokens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEmbedBatch(t *testing.T) {
	e := NewMockEmbedder(32)
	embs, err := e.EmbedBatch(context.Background(), []string{"one", "two", "three"})
	if err != nil {
		t.Fatal(err)
	}
	if len(embs) != 3 {
		t.Fatalf("batch size: got %d", len(embs))
	}
	for i, emb := range embs {
		if len(emb) != 32 {
			t.Errorf("embedding %d length: got %d", i, len(emb))
		}
	}
}
