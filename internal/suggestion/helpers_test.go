package suggestion

import (
	"testing"

	"github.com/collegeconnect/socialgraph/internal/graph"
	"github.com/collegeconnect/socialgraph/pkg/models"
)

// buildGraph adds friendships in order; each pair is {a, b}.
func buildGraph(t *testing.T, pairs ...[2]models.UserID) *graph.RelationshipGraph {
	t.Helper()
	g := graph.NewRelationshipGraph(graph.DefaultOptions())
	for _, p := range pairs {
		if _, err := g.AddFriend(p[0], p[1]); err != nil {
			t.Fatalf("AddFriend(%s, %s): %v", p[0], p[1], err)
		}
	}
	return g
}

func assertIDs(t *testing.T, got []models.UserID, want ...models.UserID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func contains(ids []models.UserID, id models.UserID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
