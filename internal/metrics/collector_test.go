package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/collegeconnect/socialgraph/internal/graph"
)

func TestRecordOperation(t *testing.T) {
	c := NewCollector()
	c.RecordOperation("add_friend", "applied")
	c.RecordOperation("add_friend", "applied")
	c.RecordOperation("add_friend", "noop")

	if got := testutil.ToFloat64(c.operations.WithLabelValues("add_friend", "applied")); got != 2 {
		t.Fatalf("expected 2 applied, got %v", got)
	}
	if got := testutil.ToFloat64(c.operations.WithLabelValues("add_friend", "noop")); got != 1 {
		t.Fatalf("expected 1 noop, got %v", got)
	}
}

func TestObserveCacheLookup(t *testing.T) {
	c := NewCollector()
	c.ObserveCacheLookup("bfs", true)
	c.ObserveCacheLookup("bfs", false)
	c.ObserveCacheLookup("bfs", false)

	if got := testutil.ToFloat64(c.cacheLookups.WithLabelValues("bfs", "hit")); got != 1 {
		t.Fatalf("expected 1 hit, got %v", got)
	}
	if got := testutil.ToFloat64(c.cacheLookups.WithLabelValues("bfs", "miss")); got != 2 {
		t.Fatalf("expected 2 misses, got %v", got)
	}
}

func TestSetGraphStats(t *testing.T) {
	c := NewCollector()
	c.SetGraphStats(graph.Stats{Users: 4, Friendships: 3, PendingRequests: 1})

	if got := testutil.ToFloat64(c.users); got != 4 {
		t.Fatalf("expected 4 users, got %v", got)
	}
	if got := testutil.ToFloat64(c.friendships); got != 3 {
		t.Fatalf("expected 3 friendships, got %v", got)
	}
	if got := testutil.ToFloat64(c.pending); got != 1 {
		t.Fatalf("expected 1 pending, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.ObserveTraversal("dfs", 3*time.Millisecond)
	c.RecordOperation("remove_friend", "noop")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	text := string(body)
	for _, want := range []string{
		"socialgraph_traversal_duration_seconds_count{algorithm=\"dfs\"} 1",
		"socialgraph_operations_total{operation=\"remove_friend\",outcome=\"noop\"} 1",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in metrics output:\n%s", want, text)
		}
	}
}
