// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mentormatch/internal/metrics"
	"github.com/tomtom215/mentormatch/internal/models"
	"github.com/tomtom215/mentormatch/internal/profile"
)

// unknownTypeLabel is the metrics label recorded for unsupported types.
const unknownTypeLabel = "unknown"

// Engine produces content recommendations. It holds no per-request state
// and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	now    func() time.Time

	dataProvider DataProvider

	requestCount atomic.Int64
	errorCount   atomic.Int64
	emptyCount   atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}, nil
}

// SetDataProvider sets the data provider used to load content and users.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// SetClock overrides the time source.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Recommend returns recommendations of req.Type for req.SubjectID.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (resp *Response, err error) {
	start := time.Now()
	e.requestCount.Add(1)

	// Invalid types share one label so callers cannot grow the series set.
	label := unknownTypeLabel
	if req.Type.IsValid() {
		label = string(req.Type)
	}
	defer func() {
		n := 0
		if resp != nil {
			n = len(resp.Items)
		}
		metrics.RecordRecommendRequest(label, n, time.Since(start), err)
	}()

	if !req.Type.IsValid() {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, req.Type)
	}

	if e.dataProvider == nil {
		e.errorCount.Add(1)
		return nil, errors.New("data provider not set")
	}

	req = e.prepareRequest(req)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("subject_id", req.SubjectID).
		Str("type", string(req.Type)).
		Logger()
	logger.Debug().Msg("processing recommendation request")

	var (
		scored     []models.MatchResult
		candidates int
	)
	switch {
	case req.Type.IsContentAnchored():
		scored, candidates, err = e.recommendContent(ctx, req)
	case req.Type == TypePersonalized:
		scored, candidates, err = e.recommendPersonalized(ctx, req)
	default:
		scored, candidates, err = e.recommendTrending(ctx, req)
	}
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	scored = rankAndTruncate(scored, req.Limit)
	if len(scored) == 0 {
		e.emptyCount.Add(1)
	}

	resp = &Response{
		Items:           scored,
		TotalCandidates: candidates,
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			SubjectID: req.SubjectID,
			Type:      req.Type,
			Threshold: e.config.threshold(req.Type),
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: e.now(),
		},
	}

	logger.Debug().
		Int("candidates", candidates).
		Int("returned", len(scored)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")
	return resp, nil
}

// Trending is shorthand for a trending request.
func (e *Engine) Trending(ctx context.Context, limit int, exclude []string) (*Response, error) {
	return e.Recommend(ctx, Request{Type: TypeTrending, Limit: limit, ExcludeIDs: exclude})
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:   e.requestCount.Load(),
		ErrorCount:     e.errorCount.Load(),
		EmptyResponses: e.emptyCount.Load(),
	}
}

// GetConfig returns the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	req.Limit = e.config.limit(req.Type, req.Limit)
	return req
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommendContent(ctx context.Context, req Request) ([]models.MatchResult, int, error) {
	source, err := e.dataProvider.GetContent(ctx, req.SubjectID)
	if err != nil {
		return nil, 0, fmt.Errorf("load content %s: %w", req.SubjectID, err)
	}
	pool, err := e.dataProvider.ListContent(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}

	exclude := buildExclusionSet(req.ExcludeIDs, source.ID)
	candidates := filterCandidates(pool, exclude)
	table := e.config.Tables[req.Type]

	results := make([]models.MatchResult, 0, len(candidates))
	for i := range candidates {
		s := ScoreContent(source, &candidates[i], req.Type, table)
		if s.Score < table.Threshold {
			continue
		}
		results = append(results, toResult(req, &candidates[i], s))
	}
	return results, len(candidates), nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommendPersonalized(ctx context.Context, req Request) ([]models.MatchResult, int, error) {
	subject, err := e.dataProvider.GetSubject(ctx, req.SubjectID)
	if err != nil {
		return nil, 0, fmt.Errorf("load subject %s: %w", req.SubjectID, err)
	}

	// The exclusion window may reach further back than the history window.
	now := e.now()
	lookback := max(e.config.HistoryWindow, e.config.PersonalizedExcludeWindow)
	interactions, err := e.dataProvider.ListInteractions(ctx, subject.ID, now.Add(-lookback))
	if err != nil {
		return nil, 0, fmt.Errorf("list interactions: %w", err)
	}
	pc := profile.BuildContext(subject, profile.Recent(interactions, now, e.config.HistoryWindow))

	recent := profile.Recent(interactions, now, e.config.PersonalizedExcludeWindow)
	recentIDs := make([]string, 0, len(recent))
	for i := range recent {
		recentIDs = append(recentIDs, recent[i].ContentID)
	}

	pool, err := e.dataProvider.ListContent(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}
	candidates := filterCandidates(pool, buildExclusionSet(req.ExcludeIDs, recentIDs...))
	table := e.config.Tables[TypePersonalized]

	results := make([]models.MatchResult, 0, len(candidates))
	for i := range candidates {
		s := ScorePersonalized(pc, &candidates[i], table)
		if s.Score < table.Threshold {
			continue
		}
		results = append(results, toResult(req, &candidates[i], s))
	}
	return results, len(candidates), nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommendTrending(ctx context.Context, req Request) ([]models.MatchResult, int, error) {
	now := e.now()
	interactions, err := e.dataProvider.ListInteractions(ctx, "", now.Add(-e.config.Trending.Window))
	if err != nil {
		return nil, 0, fmt.Errorf("list interactions: %w", err)
	}
	pool, err := e.dataProvider.ListContent(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}

	engagement := AggregateEngagement(interactions)
	peak := 0
	for _, eng := range engagement {
		peak = max(peak, eng.Count)
	}

	candidates := filterCandidates(pool, buildExclusionSet(req.ExcludeIDs))
	results := make([]models.MatchResult, 0, len(candidates))
	for i := range candidates {
		s := TrendingScore(&candidates[i], engagement[candidates[i].ID], peak, now, e.config.Trending)
		if s.Score < e.config.Trending.Threshold {
			continue
		}
		results = append(results, toResult(req, &candidates[i], s))
	}
	return results, len(candidates), nil
}

// buildExclusionSet combines request exclusions with extra IDs.
func buildExclusionSet(requested []string, extra ...string) map[string]struct{} {
	exclude := make(map[string]struct{}, len(requested)+len(extra))
	for _, id := range requested {
		exclude[id] = struct{}{}
	}
	for _, id := range extra {
		exclude[id] = struct{}{}
	}
	return exclude
}

// filterCandidates removes excluded items from the pool.
func filterCandidates(pool []models.ContentItem, exclude map[string]struct{}) []models.ContentItem {
	filtered := make([]models.ContentItem, 0, len(pool))
	for i := range pool {
		if _, excluded := exclude[pool[i].ID]; !excluded {
			filtered = append(filtered, pool[i])
		}
	}
	return filtered
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func toResult(req Request, item *models.ContentItem, s Scored) models.MatchResult {
	return models.MatchResult{
		SubjectID:   req.SubjectID,
		CandidateID: item.ID,
		Score:       s.Score,
		Reasons:     s.Reasons,
		Category:    string(req.Type),
		Factors:     s.Factors,
		Content:     item,
	}
}

// rankAndTruncate sorts by score descending, ties by content ID ascending,
// and keeps the first limit results.
func rankAndTruncate(results []models.MatchResult, limit int) []models.MatchResult {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CandidateID < results[j].CandidateID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
