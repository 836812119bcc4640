// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestClassifyDBError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", fmt.Errorf("query shelved books: %w", context.DeadlineExceeded), "timeout"},
		{"canceled", fmt.Errorf("query: %w", context.Canceled), "canceled"},
		{"invalid", errors.New("invalid catalog query: Limit too large"), "invalid_query"},
		{"closed", errors.New("sql: database is closed"), "connection"},
		{"bad conn", errors.New("driver: bad connection"), "connection"},
		{"other", errors.New("Binder Error: column not found"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := classifyDBError(tt.err); got != tt.want {
				t.Errorf("classifyDBError(%q) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestRecordDBQuery_CountsErrorsByClass(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("test_op", "timeout"))

	RecordDBQuery("test_op", 5*time.Millisecond, nil)
	RecordDBQuery("test_op", 5*time.Millisecond, context.DeadlineExceeded)

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("test_op", "timeout"))
	if after-before != 1 {
		t.Errorf("timeout errors delta = %v, want 1", after-before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/test/record", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/test/record", "200", 12*time.Millisecond)
	RecordAPIRequest("GET", "/test/record", "200", 30*time.Millisecond)

	if delta := testutil.ToFloat64(counter) - before; delta != 2 {
		t.Errorf("request count delta = %v, want 2", delta)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 2 {
		t.Errorf("active delta after inc = %v, want 2", got)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	blended := RecommendRequests.WithLabelValues("blended")
	failed := RecommendRequests.WithLabelValues("error")
	blendedBefore := testutil.ToFloat64(blended)
	failedBefore := testutil.ToFloat64(failed)
	samplesBefore := histogramCount(t)

	RecordRecommendation("blended", 18, 40*time.Millisecond, nil)
	RecordRecommendation("", 0, 0, errors.New("boom"))

	if d := testutil.ToFloat64(blended) - blendedBefore; d != 1 {
		t.Errorf("blended delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(failed) - failedBefore; d != 1 {
		t.Errorf("error delta = %v, want 1", d)
	}
	if d := histogramCount(t) - samplesBefore; d != 1 {
		t.Errorf("result histogram samples delta = %d, want 1 (errors are not observed)", d)
	}
}

func TestSetCatalogBooks(t *testing.T) {
	SetCatalogBooks(42)
	if got := testutil.ToFloat64(CatalogBooks); got != 42 {
		t.Errorf("CatalogBooks = %v, want 42", got)
	}
}

func TestRecordRateLimitHit(t *testing.T) {
	before := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("user"))
	RecordRateLimitHit("user")
	if d := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("user")) - before; d != 1 {
		t.Errorf("user rate limit delta = %v, want 1", d)
	}
}

func histogramCount(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	if err := RecommendResults.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
