// Package vector provides similarity helpers for normalized embedding vectors.
package vector

import "math"

// InnerProduct returns the inner product of two vectors (for normalized vectors
// this equals cosine similarity). Mismatched or empty vectors score 0.
func InnerProduct(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i] * b[i])
	}
	return dot
}

// CosineSimilarity returns the cosine of the angle between a and b. Unlike
// InnerProduct it does not assume unit vectors; a zero vector scores 0.
func CosineSimilarity(a, b []float32) float64 {
	dot := InnerProduct(a, b)
	na, nb := L2Norm(a), L2Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}

// ScoreAll returns the inner product of query against each vector, in order.
// Vectors are expected to be pre-normalized, so the result is cosine similarity.
func ScoreAll(query []float32, vectors [][]float32) []float64 {
	scores := make([]float64, len(vectors))
	for i, v := range vectors {
		scores[i] = InnerProduct(query, v)
	}
	return scores
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v * v)
	}
	return math.Sqrt(sum)
}

// NormalizeL2 normalizes the vector in place to unit L2 norm.
// Zero vectors are left unchanged.
func NormalizeL2(x []float32) {
	var sum float32
	for _, v := range x {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range x {
		x[i] *= norm
	}
}
