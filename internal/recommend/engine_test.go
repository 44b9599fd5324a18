// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mentormatch/internal/metrics"
	"github.com/tomtom215/mentormatch/internal/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// mockDataProvider is an in-memory DataProvider for tests.
type mockDataProvider struct {
	content      []models.ContentItem
	subjects     map[string]models.Subject
	interactions []models.Interaction
	listErr      error
}

func (m *mockDataProvider) GetContent(_ context.Context, id string) (*models.ContentItem, error) {
	for i := range m.content {
		if m.content[i].ID == id {
			item := m.content[i]
			return &item, nil
		}
	}
	return nil, fmt.Errorf("content %s: %w", id, models.ErrNotFound)
}

func (m *mockDataProvider) ListContent(_ context.Context) ([]models.ContentItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.ContentItem(nil), m.content...), nil
}

func (m *mockDataProvider) GetSubject(_ context.Context, id string) (*models.Subject, error) {
	s, ok := m.subjects[id]
	if !ok {
		return nil, fmt.Errorf("subject %s: %w", id, models.ErrNotFound)
	}
	return &s, nil
}

func (m *mockDataProvider) ListInteractions(_ context.Context, userID string, since time.Time) ([]models.Interaction, error) {
	var out []models.Interaction
	for _, in := range m.interactions {
		if userID != "" && in.UserID != userID {
			continue
		}
		if in.Timestamp.Before(since) {
			continue
		}
		out = append(out, in)
	}
	return out, nil
}

func newTestEngine(t *testing.T, dp DataProvider) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetClock(func() time.Time { return testNow })
	if dp != nil {
		engine.SetDataProvider(dp)
	}
	return engine
}

func resultIDs(items []models.MatchResult) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].CandidateID
	}
	return ids
}

func assertIDs(t *testing.T, got []models.MatchResult, want ...string) {
	t.Helper()
	ids := resultIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func prerequisitePool() *mockDataProvider {
	return &mockDataProvider{content: []models.ContentItem{
		{ID: "src", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 3, QualityScore: 0.5},
		{ID: "c4", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 4, QualityScore: 0.5},
		{ID: "c1", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 1, QualityScore: 0.5},
		{ID: "c2", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 2, QualityScore: 0.5},
		{ID: "art", Domain: "art", Tags: []string{"paint"}, ComplexityLevel: 4, QualityScore: 0.2},
	}}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MaxLimit = 0
	if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestRecommend_UnknownType(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, prerequisitePool())
	_, err := engine.Recommend(context.Background(), Request{SubjectID: "src", Type: "similar"})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if engine.GetMetrics().ErrorCount != 1 {
		t.Errorf("expected error to be counted")
	}
}

func TestRecommend_UnknownTypeRecordsMetric(t *testing.T) {
	t.Parallel()

	counter := metrics.RecommendRequestsTotal.WithLabelValues(unknownTypeLabel, "error")
	before := testutil.ToFloat64(counter)

	engine := newTestEngine(t, prerequisitePool())
	if _, err := engine.Recommend(context.Background(), Request{SubjectID: "src", Type: "bogus"}); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if got := testutil.ToFloat64(counter) - before; got < 1 {
		t.Errorf("expected unknown type error to be recorded, delta = %v", got)
	}
}

func TestRecommend_NoDataProvider(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	if _, err := engine.Recommend(context.Background(), Request{SubjectID: "src", Type: TypeRelated}); err == nil {
		t.Fatal("expected error without data provider")
	}
}

func TestRecommend_SourceNotFound(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, prerequisitePool())
	_, err := engine.Recommend(context.Background(), Request{SubjectID: "missing", Type: TypeRelated})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecommend_Prerequisites(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, prerequisitePool())
	resp, err := engine.Recommend(context.Background(), Request{SubjectID: "src", Type: TypePrerequisites})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// c2 0.95, c1 0.775, c4 0.60; art falls below the threshold.
	assertIDs(t, resp.Items, "c2", "c1", "c4")
	if resp.TotalCandidates != 4 {
		t.Errorf("expected 4 candidates excluding the source, got %d", resp.TotalCandidates)
	}
	if resp.Metadata.RequestID == "" {
		t.Error("expected generated request ID")
	}
	if resp.Metadata.Threshold != 0.35 {
		t.Errorf("expected threshold 0.35, got %v", resp.Metadata.Threshold)
	}
	for i := range resp.Items {
		item := resp.Items[i]
		if item.Category != string(TypePrerequisites) || item.Content == nil {
			t.Errorf("unexpected result shape: %+v", item)
		}
		if i > 0 && item.Score > resp.Items[i-1].Score {
			t.Errorf("results not sorted by score: %v", resultIDs(resp.Items))
		}
	}
}

func TestRecommend_LimitAndExclude(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, prerequisitePool())
	resp, err := engine.Recommend(context.Background(), Request{
		SubjectID:  "src",
		Type:       TypePrerequisites,
		Limit:      1,
		ExcludeIDs: []string{"c2"},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	assertIDs(t, resp.Items, "c1")
}

func TestRecommend_TieBreaksByID(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{content: []models.ContentItem{
		{ID: "src", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 2},
		{ID: "zeta", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 2},
		{ID: "alpha", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 2},
	}}
	engine := newTestEngine(t, dp)
	resp, err := engine.Recommend(context.Background(), Request{SubjectID: "src", Type: TypeRelated})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	assertIDs(t, resp.Items, "alpha", "zeta")
}

func TestRecommend_EmptyPool(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{content: []models.ContentItem{{ID: "src", ComplexityLevel: 1}}}
	engine := newTestEngine(t, dp)
	resp, err := engine.Recommend(context.Background(), Request{SubjectID: "src", Type: TypeRelated})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Errorf("expected empty non-nil items, got %#v", resp.Items)
	}
	if engine.GetMetrics().EmptyResponses != 1 {
		t.Error("expected empty response to be counted")
	}
}

func TestRecommend_ListError(t *testing.T) {
	t.Parallel()

	dp := prerequisitePool()
	dp.listErr = errors.New("store unavailable")
	engine := newTestEngine(t, dp)
	if _, err := engine.Recommend(context.Background(), Request{SubjectID: "src", Type: TypeRelated}); err == nil {
		t.Fatal("expected list error to propagate")
	}
}

func TestRecommend_Personalized(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{
		subjects: map[string]models.Subject{
			"u1": {ID: "u1", Role: models.RoleMentee, Interests: []string{"ml"}, FocusDomain: "ai", PreferredComplexity: 3},
		},
		content: []models.ContentItem{
			{ID: "p1", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 3, QualityScore: 0.8},
			{ID: "p2", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 3, QualityScore: 0.8},
			{ID: "p3", Domain: "art", Tags: []string{"paint"}, ComplexityLevel: 1},
			{ID: "p4", Domain: "ai", Tags: []string{"policy"}, ComplexityLevel: 3},
		},
		interactions: []models.Interaction{
			{UserID: "u1", ContentID: "p2", DurationSeconds: 200, Timestamp: testNow.Add(-48 * time.Hour)},
			{UserID: "u1", ContentID: "p4", DurationSeconds: 200, Timestamp: testNow.Add(-20 * 24 * time.Hour)},
			{UserID: "u2", ContentID: "p1", DurationSeconds: 200, Timestamp: testNow.Add(-time.Hour)},
		},
	}
	engine := newTestEngine(t, dp)

	resp, err := engine.Recommend(context.Background(), Request{SubjectID: "u1", Type: TypePersonalized})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// p2 was touched within the exclusion window; p3 scores 0.1.
	assertIDs(t, resp.Items, "p1", "p4")
	if resp.TotalCandidates != 3 {
		t.Errorf("expected 3 candidates, got %d", resp.TotalCandidates)
	}
}

func TestRecommend_PersonalizedShortHistoryWindow(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{
		subjects: map[string]models.Subject{
			"u1": {ID: "u1", Role: models.RoleMentee, Interests: []string{"ml"}, FocusDomain: "ai", PreferredComplexity: 3},
		},
		content: []models.ContentItem{
			{ID: "p1", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 3, QualityScore: 0.8},
			{ID: "p2", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 3, QualityScore: 0.8},
		},
		interactions: []models.Interaction{
			{UserID: "u1", ContentID: "p2", DurationSeconds: 200, Timestamp: testNow.Add(-72 * time.Hour)},
		},
	}

	cfg := DefaultConfig()
	cfg.HistoryWindow = 24 * time.Hour
	engine, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetClock(func() time.Time { return testNow })
	engine.SetDataProvider(dp)

	resp, err := engine.Recommend(context.Background(), Request{SubjectID: "u1", Type: TypePersonalized})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// p2 is older than the history window but inside the exclusion window.
	assertIDs(t, resp.Items, "p1")
}

func TestRecommend_PersonalizedUnknownSubject(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, &mockDataProvider{})
	_, err := engine.Recommend(context.Background(), Request{SubjectID: "ghost", Type: TypePersonalized})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTrending(t *testing.T) {
	t.Parallel()

	var interactions []models.Interaction
	for i := 0; i < 4; i++ {
		interactions = append(interactions, models.Interaction{
			UserID: fmt.Sprintf("u%d", i), ContentID: "t1", DurationSeconds: 600, Timestamp: testNow.Add(-time.Duration(i+1) * time.Hour),
		})
	}
	for i := 0; i < 2; i++ {
		interactions = append(interactions, models.Interaction{
			UserID: fmt.Sprintf("u%d", i), ContentID: "t4", Timestamp: testNow.Add(-24 * time.Hour),
		})
	}
	// Outside the trending window.
	for i := 0; i < 10; i++ {
		interactions = append(interactions, models.Interaction{
			UserID: fmt.Sprintf("u%d", i), ContentID: "t3", DurationSeconds: 900, Timestamp: testNow.Add(-8 * 24 * time.Hour),
		})
	}

	dp := &mockDataProvider{
		content: []models.ContentItem{
			{ID: "t1", CreatedAt: testNow.Add(-10 * 24 * time.Hour)},
			{ID: "t2", CreatedAt: testNow.Add(-time.Hour), QualityScore: 1},
			{ID: "t3", CreatedAt: testNow.Add(-30 * 24 * time.Hour), QualityScore: 0.5},
			{ID: "t4", CreatedAt: testNow.Add(-30 * 24 * time.Hour)},
		},
		interactions: interactions,
	}
	engine := newTestEngine(t, dp)

	resp, err := engine.Trending(context.Background(), 0, nil)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}

	// t1 1.4, t2 0.6, t4 0.5; t3 only earns 0.15 from quality.
	assertIDs(t, resp.Items, "t1", "t2", "t4")
	if !approxEqual(resp.Items[0].Score, 1.4) {
		t.Errorf("expected t1 score 1.4, got %v", resp.Items[0].Score)
	}

	resp, err = engine.Trending(context.Background(), 5, []string{"t1"})
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	// Exclusion removes t1 from the output but not from the peak.
	assertIDs(t, resp.Items, "t2", "t4")
}

func TestGetMetrics(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, prerequisitePool())
	for i := 0; i < 3; i++ {
		if _, err := engine.Recommend(context.Background(), Request{SubjectID: "src", Type: TypeRelated}); err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
	}
	m := engine.GetMetrics()
	if m.RequestCount != 3 || m.ErrorCount != 0 {
		t.Errorf("unexpected metrics: %+v", m)
	}
}
