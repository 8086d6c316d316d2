package sociald

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/collegeconnect/socialgraph/internal/graph"
	"github.com/collegeconnect/socialgraph/internal/metrics"
	"github.com/collegeconnect/socialgraph/internal/policy"
	"github.com/collegeconnect/socialgraph/internal/suggestion"
	"github.com/collegeconnect/socialgraph/pkg/config"
	"github.com/collegeconnect/socialgraph/pkg/logger"
	"github.com/collegeconnect/socialgraph/pkg/models"
)

// ErrUnknownAlgorithm is returned when a suggestion algorithm name is not bfs or dfs.
var ErrUnknownAlgorithm = errors.New("unknown suggestion algorithm")

// Outcome labels recorded for operations that did not reach the graph.
const (
	outcomeOK        = "ok"
	outcomeRejected  = "rejected"
	outcomeThrottled = "throttled"
	outcomeError     = "error"
)

// Service is the entry point used by the HTTP and gRPC surfaces and by
// collaborating services (identity, messaging).
type Service struct {
	graph   *graph.RelationshipGraph
	engine  *suggestion.Engine
	limiter *policy.RequestLimiter
	metrics *metrics.Collector
	log     *slog.Logger
}

// NewService builds the graph, suggestion engine and request limiter from cfg.
func NewService(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	g := graph.NewRelationshipGraph(graph.Options{
		PurgePendingOnFriend: cfg.Graph.PurgePendingOnFriend,
	})
	collector := metrics.NewCollector()

	engine, err := suggestion.NewEngine(g, EngineConfig(cfg.Suggestions))
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion engine: %w", err)
	}
	engine.WithObserver(collector)

	return &Service{
		graph:   g,
		engine:  engine,
		limiter: policy.NewRequestLimiterFromConfig(cfg.Requests),
		metrics: collector,
		log:     logger.Component("sociald"),
	}, nil
}

// EngineConfig maps the suggestions config section onto engine settings.
func EngineConfig(cfg config.SuggestionsConfig) suggestion.Config {
	order := suggestion.OrderByMutualCount
	if cfg.DFSOrder == config.DFSOrderDiscovery {
		order = suggestion.OrderByDiscovery
	}
	return suggestion.Config{
		CacheSize: cfg.CacheSize,
		DFS: suggestion.DFSOptions{
			MaxDepth: cfg.DFSMaxDepth,
			Order:    order,
		},
		MaxResults: cfg.MaxResults,
	}
}

// Graph exposes the underlying relationship graph.
func (s *Service) Graph() *graph.RelationshipGraph {
	return s.graph
}

// Metrics exposes the service's metrics collector.
func (s *Service) Metrics() *metrics.Collector {
	return s.metrics
}

// LoadSeed applies a seed file's friendships and requests. Seeded requests
// bypass the request limiter.
func (s *Service) LoadSeed(seed *config.Seed) error {
	if err := graph.ApplySeed(s.graph, seed); err != nil {
		return fmt.Errorf("failed to apply seed: %w", err)
	}
	stats := s.Stats()
	s.log.Info("seed loaded",
		"users", stats.Users,
		"friendships", stats.Friendships,
		"pending_requests", stats.PendingRequests)
	return nil
}

// AddFriend confirms a friendship between a and b.
func (s *Service) AddFriend(a, b models.UserID) (graph.Outcome, error) {
	out, err := s.graph.AddFriend(a, b)
	s.record("add_friend", out, err)
	if err != nil {
		return out, fmt.Errorf("add friend %s/%s: %w", a, b, err)
	}
	s.log.Debug("friend added", "user", a, "friend", b, "outcome", out.String())
	return out, nil
}

// RemoveFriend deletes the friendship between a and b.
func (s *Service) RemoveFriend(a, b models.UserID) (graph.Outcome, error) {
	out, err := s.graph.RemoveFriend(a, b)
	s.record("remove_friend", out, err)
	if err != nil {
		return out, fmt.Errorf("remove friend %s/%s: %w", a, b, err)
	}
	s.log.Debug("friend removed", "user", a, "friend", b, "outcome", out.String())
	return out, nil
}

// AreFriends reports whether a and b are confirmed friends.
func (s *Service) AreFriends(a, b models.UserID) bool {
	return s.graph.HasFriend(a, b)
}

// ListFriends returns id's friends in the order they were added.
func (s *Service) ListFriends(id models.UserID) []models.UserID {
	return s.graph.FriendsOf(id)
}

// SendRequest records a friend request from requester to target, subject to
// the per-requester rate limit. Requests that would be no-ops do not spend
// the requester's budget.
func (s *Service) SendRequest(requester, target models.UserID) (graph.Outcome, error) {
	// Only requests that would be recorded cost a token.
	if s.graph.WouldApplyRequest(requester, target) {
		if err := s.limiter.Allow(requester); err != nil {
			s.metrics.RecordOperation("send_request", outcomeThrottled)
			s.log.Warn("friend request throttled", "requester", requester)
			return graph.NoOp, fmt.Errorf("send request %s->%s: %w", requester, target, err)
		}
	}

	out, err := s.graph.AddPendingRequest(requester, target)
	s.record("send_request", out, err)
	if err != nil {
		return out, fmt.Errorf("send request %s->%s: %w", requester, target, err)
	}
	s.log.Debug("friend request sent", "requester", requester, "target", target, "outcome", out.String())
	return out, nil
}

// ListRequests returns the requesters waiting on target, oldest first.
func (s *Service) ListRequests(target models.UserID) []models.UserID {
	return s.graph.PendingRequestsFor(target)
}

// AcceptRequest turns a pending request into a friendship.
func (s *Service) AcceptRequest(requester, target models.UserID) (graph.Outcome, error) {
	out, err := s.graph.AcceptPendingRequest(requester, target)
	s.record("accept_request", out, err)
	if err != nil {
		return out, fmt.Errorf("accept request %s->%s: %w", requester, target, err)
	}
	s.log.Info("friend request accepted", "requester", requester, "target", target)
	return out, nil
}

// DeclineRequest drops a pending request without creating a friendship.
func (s *Service) DeclineRequest(requester, target models.UserID) (graph.Outcome, error) {
	out, err := s.graph.RemovePendingRequest(requester, target)
	s.record("decline_request", out, err)
	if err != nil {
		return out, fmt.Errorf("decline request %s->%s: %w", requester, target, err)
	}
	s.log.Debug("friend request declined", "requester", requester, "target", target, "outcome", out.String())
	return out, nil
}

// Suggest returns friend suggestions for id using the named algorithm. An
// empty name selects breadth-first; names are case-insensitive. Breadth-first
// results carry the exact mutual friend count; depth-first results carry the
// traversal's count.
func (s *Service) Suggest(id models.UserID, algorithm string) ([]models.Suggestion, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", suggestion.AlgorithmBFS:
		out := s.engine.SuggestBreadthFirstWithCounts(id)
		s.metrics.RecordOperation("suggest_bfs", outcomeOK)
		return out, nil
	case suggestion.AlgorithmDFS:
		out := s.engine.SuggestDepthFirst(id)
		s.metrics.RecordOperation("suggest_dfs", outcomeOK)
		return out, nil
	default:
		s.metrics.RecordOperation("suggest", outcomeRejected)
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// MutualFriends lists the friends a and b share.
func (s *Service) MutualFriends(a, b models.UserID) []models.UserID {
	s.metrics.RecordOperation("mutual_friends", outcomeOK)
	return s.engine.MutualFriends(a, b)
}

// DeleteUser removes every friendship and request touching id. The identity
// service calls it before an account is deleted.
func (s *Service) DeleteUser(id models.UserID) (int, error) {
	removed, err := s.graph.RemoveUser(id)
	if err != nil {
		s.metrics.RecordOperation("delete_user", outcomeRejected)
		return 0, fmt.Errorf("delete user %s: %w", id, err)
	}
	s.limiter.Forget(id)

	outcome := graph.NoOp
	if removed > 0 {
		outcome = graph.Applied
	}
	s.metrics.RecordOperation("delete_user", outcome.String())
	s.log.Info("user removed from graph", "user", id, "edges_removed", removed)
	return removed, nil
}

// CanCreateGroup reports whether id may start a group chat, which requires at
// least one confirmed friend.
func (s *Service) CanCreateGroup(id models.UserID) bool {
	return s.graph.FriendCount(id) > 0
}

// Stats returns graph size counters and refreshes the size gauges.
func (s *Service) Stats() graph.Stats {
	stats := s.graph.Stats()
	s.metrics.SetGraphStats(stats)
	return stats
}

func (s *Service) record(operation string, out graph.Outcome, err error) {
	switch {
	case err == nil:
		s.metrics.RecordOperation(operation, out.String())
	case graph.IsInvariantViolation(err), errors.Is(err, graph.ErrRequestNotFound):
		s.metrics.RecordOperation(operation, outcomeRejected)
	default:
		s.metrics.RecordOperation(operation, outcomeError)
	}
}
