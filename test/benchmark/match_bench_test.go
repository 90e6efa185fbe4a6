package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/hyperjump/erabu/internal/embedding"
	"github.com/hyperjump/erabu/internal/match"
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/vector"
)

func BenchmarkScoreAll(b *testing.B) {
	const dims = 1024
	query := make([]float32, dims)
	query[0] = 1.0
	vecs := make([][]float32, 1000)
	for i := range vecs {
		vecs[i] = make([]float32, dims)
		vecs[i][i%dims] = 1.0
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = vector.ScoreAll(query, vecs)
	}
}

func BenchmarkMockEmbed(b *testing.B) {
	embedder := embedding.NewMockEmbedder(1024)
	defer embedder.Close()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := embedder.Embed(ctx, "fashion and lifestyle influencer based in mumbai"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRank(b *testing.B) {
	profiles := make([]*models.CreatorProfile, 1000)
	scores := make([]float64, 1000)
	for i := range profiles {
		profiles[i] = &models.CreatorProfile{
			Name:  fmt.Sprintf("creator-%d", i),
			Niche: "Fashion",
		}
		scores[i] = float64(i%97) / 97
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = match.Rank(profiles, scores, "all", "all", 10)
	}
}
