// Package match scores creator profiles against campaign briefs and caches
// one generation of results per session.
package match

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/erabu/internal/dataset"
	"github.com/hyperjump/erabu/internal/embedding"
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/vector"
)

// Engine computes similarity scores for the active dataset. It holds exactly
// one cached generation: the vectors and scores for the last (dataset, brief)
// pair. A mutex keeps a single compute in flight; there is no cancellation
// once a compute starts.
type Engine struct {
	embedder    embedding.Embedder
	queryPrefix string
	logger      *zap.Logger

	mu      sync.Mutex
	session *session
}

// session is the cached compute generation.
type session struct {
	fingerprint string
	brief       string
	queryVec    []float32
	profileVecs [][]float32
	scores      []float64
}

// NewEngine creates a match engine. queryPrefix is prepended to briefs before
// embedding; profile bios are embedded without it.
func NewEngine(embedder embedding.Embedder, queryPrefix string, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		embedder:    embedder,
		queryPrefix: queryPrefix,
		logger:      logger,
	}
}

// needsRecompute is the cache-validity predicate: recompute when no generation
// exists, the dataset content changed, the brief changed, or recompute was
// forced. Pure so the gating logic is testable on its own.
func needsRecompute(s *session, fingerprint, brief string, force bool) bool {
	if s == nil || force {
		return true
	}
	return s.fingerprint != fingerprint || s.brief != brief
}

// Compute returns one similarity score per profile, in dataset row order.
// The cached generation is reused verbatim when the dataset fingerprint and
// brief both match the previous trigger and force is false; reused reports
// which happened. query must have been validated.
func (e *Engine) Compute(ctx context.Context, ds *dataset.Dataset, query *models.MatchQuery) (scores []float64, reused bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !needsRecompute(e.session, ds.Fingerprint, query.Brief, query.Force) {
		e.logger.Debug("reusing cached scores",
			zap.String("fingerprint", ds.Fingerprint),
			zap.Int("profiles", len(e.session.scores)))
		return e.session.scores, true, nil
	}

	bios := make([]string, len(ds.Profiles))
	for i, p := range ds.Profiles {
		bios[i] = p.Bio
	}
	profileVecs, err := e.embedder.EmbedBatch(ctx, bios)
	if err != nil {
		return nil, false, fmt.Errorf("embedding profiles failed: %w", err)
	}

	queryVec, err := e.embedder.Embed(ctx, e.queryPrefix+query.Brief)
	if err != nil {
		return nil, false, fmt.Errorf("embedding brief failed: %w", err)
	}

	start := time.Now()
	scores = vector.ScoreAll(queryVec, profileVecs)

	e.session = &session{
		fingerprint: ds.Fingerprint,
		brief:       query.Brief,
		queryVec:    queryVec,
		profileVecs: profileVecs,
		scores:      scores,
	}
	e.logger.Debug("computed scores",
		zap.String("fingerprint", ds.Fingerprint),
		zap.Int("profiles", len(scores)),
		zap.Duration("scoring", time.Since(start)))
	return scores, false, nil
}

// Match runs the full pipeline: validate, compute (or reuse), filter, rank.
func (e *Engine) Match(ctx context.Context, ds *dataset.Dataset, query *models.MatchQuery) (*models.MatchResponse, error) {
	startTime := time.Now()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scores, reused, err := e.Compute(ctx, ds, query)
	if err != nil {
		return nil, err
	}

	results, total := Rank(ds.Profiles, scores, query.Niche, query.Location, query.TopK)
	return &models.MatchResponse{
		Results:   results,
		Total:     total,
		Brief:     query.Brief,
		Cached:    reused,
		QueryTime: time.Since(startTime).Milliseconds(),
	}, nil
}

// Invalidate drops the cached generation. Used when the active dataset is
// replaced so stale scores can never be served for new content.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = nil
}

// HasScores reports whether a computed generation exists.
func (e *Engine) HasScores() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil
}
