// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordMatchRequest(t *testing.T) {
	tests := []struct {
		name    string
		intent  string
		results int
		err     error
		outcome string
	}{
		{"matches found", "mentor", 3, nil, "success"},
		{"empty pool", "mentee", 0, nil, "empty"},
		{"repository failure", "mentor", 0, errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(MatchRequestsTotal.WithLabelValues(tt.intent, tt.outcome))
			RecordMatchRequest(tt.intent, tt.results, time.Millisecond, tt.err)
			after := testutil.ToFloat64(MatchRequestsTotal.WithLabelValues(tt.intent, tt.outcome))
			if after-before != 1 {
				t.Errorf("expected counter to increase by 1, got %v", after-before)
			}
		})
	}
}

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(RelationshipTransitions.WithLabelValues("accept", "rejected"))
	RecordTransition("accept", errors.New("invalid"))
	if got := testutil.ToFloat64(RelationshipTransitions.WithLabelValues("accept", "rejected")) - before; got != 1 {
		t.Errorf("expected rejected transition to be counted, got %v", got)
	}
}

func TestRecordRecommendRequest(t *testing.T) {
	before := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues("related", "success"))
	RecordRecommendRequest("related", 4, 2*time.Millisecond, nil)
	if got := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues("related", "success")) - before; got != 1 {
		t.Errorf("expected recommend counter to increase by 1, got %v", got)
	}
}

func TestCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("events", 2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("events")); got != 2 {
		t.Errorf("expected state 2, got %v", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 1 {
		t.Errorf("expected one in-flight request, got %v", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/health", "200"))
	RecordAPIRequest("GET", "/api/v1/health", "200", 5*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/health", "200")) - before; got != 1 {
		t.Errorf("expected API counter to increase by 1, got %v", got)
	}
}
