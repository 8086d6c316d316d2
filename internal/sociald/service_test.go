package sociald

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegeconnect/socialgraph/internal/graph"
	"github.com/collegeconnect/socialgraph/internal/policy"
	"github.com/collegeconnect/socialgraph/pkg/config"
	"github.com/collegeconnect/socialgraph/pkg/models"
)

func newTestService(t *testing.T, mutate ...func(*config.Config)) *Service {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Requests.RatePerMinute = 0
	for _, m := range mutate {
		m(cfg)
	}
	svc, err := NewService(cfg)
	require.NoError(t, err)
	return svc
}

func TestServiceFriendLifecycle(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.AddFriend("alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, graph.Applied, out)

	out, err = svc.AddFriend("bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, graph.NoOp, out)

	assert.True(t, svc.AreFriends("bob", "alice"))
	assert.Equal(t, []models.UserID{"bob"}, svc.ListFriends("alice"))

	out, err = svc.RemoveFriend("alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, graph.Applied, out)
	assert.Empty(t, svc.ListFriends("alice"))
}

func TestServiceRejectsSelfFriendship(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddFriend("alice", "alice")
	require.ErrorIs(t, err, graph.ErrSelfFriendship)

	count, err := testutil.GatherAndCount(svc.Metrics().Registry(), "socialgraph_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceRequestFlow(t *testing.T) {
	svc := newTestService(t)

	for _, requester := range []models.UserID{"carol", "bob"} {
		out, err := svc.SendRequest(requester, "alice")
		require.NoError(t, err)
		assert.Equal(t, graph.Applied, out)
	}
	assert.Equal(t, []models.UserID{"carol", "bob"}, svc.ListRequests("alice"))

	out, err := svc.AcceptRequest("bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, graph.Applied, out)
	assert.True(t, svc.AreFriends("alice", "bob"))

	out, err = svc.DeclineRequest("carol", "alice")
	require.NoError(t, err)
	assert.Equal(t, graph.Applied, out)
	assert.Empty(t, svc.ListRequests("alice"))

	_, err = svc.AcceptRequest("carol", "alice")
	require.ErrorIs(t, err, graph.ErrRequestNotFound)

	_, err = svc.SendRequest("bob", "alice")
	require.ErrorIs(t, err, graph.ErrAlreadyFriends)
}

func TestServiceSendRequestThrottled(t *testing.T) {
	svc := newTestService(t, func(cfg *config.Config) {
		cfg.Requests.RatePerMinute = 1
		cfg.Requests.Burst = 2
	})

	_, err := svc.SendRequest("spammer", "a")
	require.NoError(t, err)
	_, err = svc.SendRequest("spammer", "b")
	require.NoError(t, err)

	_, err = svc.SendRequest("spammer", "c")
	require.ErrorIs(t, err, policy.ErrRateLimited)
	assert.Empty(t, svc.ListRequests("c"))

	// invalid requests are rejected before they cost a token
	_, err = svc.SendRequest("", "c")
	require.ErrorIs(t, err, graph.ErrEmptyIdentity)
}

func TestServiceSuggest(t *testing.T) {
	svc := newTestService(t)
	for _, pair := range [][2]models.UserID{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"A", "E"}, {"E", "C"}} {
		_, err := svc.AddFriend(pair[0], pair[1])
		require.NoError(t, err)
	}

	bfs, err := svc.Suggest("A", "bfs")
	require.NoError(t, err)
	assert.Equal(t, []models.Suggestion{{ID: "C", MutualCount: 2}, {ID: "D", MutualCount: 0}}, bfs)

	def, err := svc.Suggest("A", "")
	require.NoError(t, err)
	assert.Equal(t, bfs, def)

	dfs, err := svc.Suggest("A", "dfs")
	require.NoError(t, err)
	assert.Equal(t, []models.UserID{"C", "D"}, models.IDs(dfs))

	_, err = svc.Suggest("A", "pagerank")
	require.True(t, errors.Is(err, ErrUnknownAlgorithm))

	assert.Equal(t, []models.UserID{"B", "E"}, svc.MutualFriends("A", "C"))
}

func TestServiceDeleteUser(t *testing.T) {
	svc := newTestService(t)
	_, _ = svc.AddFriend("alice", "bob")
	_, _ = svc.AddFriend("alice", "carol")
	_, _ = svc.SendRequest("dave", "alice")
	_, _ = svc.SendRequest("alice", "erin")

	assert.True(t, svc.CanCreateGroup("alice"))

	removed, err := svc.DeleteUser("alice")
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	assert.False(t, svc.CanCreateGroup("alice"))
	assert.Empty(t, svc.ListFriends("bob"))
	assert.Empty(t, svc.ListRequests("erin"))

	_, err = svc.DeleteUser("  ")
	require.ErrorIs(t, err, graph.ErrEmptyIdentity)
}

func TestServiceLoadSeed(t *testing.T) {
	svc := newTestService(t)
	seed, err := config.LoadSeed("../../config/seed.yaml")
	require.NoError(t, err)
	require.NoError(t, svc.LoadSeed(seed))

	stats := svc.Stats()
	assert.Equal(t, 5, stats.Friendships)
	assert.Equal(t, 2, stats.PendingRequests)
	assert.Equal(t, 6, stats.Users)

	expected := `
# HELP socialgraph_friendships Confirmed friendships.
# TYPE socialgraph_friendships gauge
socialgraph_friendships 5
`
	require.NoError(t, testutil.GatherAndCompare(svc.Metrics().Registry(), strings.NewReader(expected), "socialgraph_friendships"))
}

func TestEngineConfig(t *testing.T) {
	cfg := EngineConfig(config.SuggestionsConfig{CacheSize: 8, DFSMaxDepth: 3, DFSOrder: config.DFSOrderDiscovery, MaxResults: 5})
	assert.Equal(t, 8, cfg.CacheSize)
	assert.Equal(t, 3, cfg.DFS.MaxDepth)
	assert.Equal(t, 5, cfg.MaxResults)
	assert.NotEqual(t, EngineConfig(config.SuggestionsConfig{}).DFS.Order, cfg.DFS.Order)
}

// traversalSamples returns the traversal histogram sample count per algorithm.
func traversalSamples(t *testing.T, svc *Service) map[string]uint64 {
	t.Helper()
	families, err := svc.Metrics().Registry().Gather()
	require.NoError(t, err)
	out := map[string]uint64{}
	for _, mf := range families {
		if mf.GetName() != "socialgraph_traversal_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "algorithm" {
					out[label.GetValue()] += m.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	return out
}

func TestServiceSuggestTakesSingleSnapshot(t *testing.T) {
	svc := newTestService(t, func(cfg *config.Config) {
		cfg.Suggestions.CacheSize = 0
		cfg.Suggestions.MaxResults = 0
	})
	const n = 50
	for i := 0; i < n-1; i++ {
		_, err := svc.AddFriend(models.UserID(fmt.Sprintf("u%d", i)), models.UserID(fmt.Sprintf("u%d", i+1)))
		require.NoError(t, err)
	}

	out, err := svc.Suggest("u0", "bfs")
	require.NoError(t, err)
	require.Len(t, out, n-2)
	assert.Equal(t, models.Suggestion{ID: "u2", MutualCount: 1}, out[0])
	assert.Equal(t, 0, out[1].MutualCount)

	assert.Equal(t, map[string]uint64{"bfs": 1}, traversalSamples(t, svc))
}

func TestServiceSuggestNormalisesAlgorithm(t *testing.T) {
	svc := newTestService(t)
	_, _ = svc.AddFriend("a", "b")
	_, _ = svc.AddFriend("b", "c")

	for _, name := range []string{"DFS", " dfs ", "Dfs"} {
		out, err := svc.Suggest("a", name)
		require.NoError(t, err, name)
		assert.Equal(t, []models.UserID{"c"}, models.IDs(out))
	}
	out, err := svc.Suggest("a", "BFS")
	require.NoError(t, err)
	assert.Equal(t, []models.Suggestion{{ID: "c", MutualCount: 1}}, out)
}

func TestServiceNoOpRequestsKeepBudget(t *testing.T) {
	svc := newTestService(t, func(cfg *config.Config) {
		cfg.Requests.RatePerMinute = 1
		cfg.Requests.Burst = 2
	})
	_, err := svc.AddFriend("alice", "bob")
	require.NoError(t, err)

	out, err := svc.SendRequest("alice", "carol")
	require.NoError(t, err)
	assert.Equal(t, graph.Applied, out)

	for i := 0; i < 5; i++ {
		out, err = svc.SendRequest("alice", "carol")
		require.NoError(t, err, "duplicate %d", i)
		assert.Equal(t, graph.NoOp, out)

		_, err = svc.SendRequest("alice", "bob")
		require.ErrorIs(t, err, graph.ErrAlreadyFriends)
		require.NotErrorIs(t, err, policy.ErrRateLimited)

		_, err = svc.SendRequest("alice", "alice")
		require.NotErrorIs(t, err, policy.ErrRateLimited)
	}

	// the second token is still there
	out, err = svc.SendRequest("alice", "dave")
	require.NoError(t, err)
	assert.Equal(t, graph.Applied, out)

	_, err = svc.SendRequest("alice", "erin")
	require.ErrorIs(t, err, policy.ErrRateLimited)
}
