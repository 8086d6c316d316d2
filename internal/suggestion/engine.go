package suggestion

import (
	"fmt"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/collegeconnect/socialgraph/internal/graph"
	"github.com/collegeconnect/socialgraph/pkg/models"
)

// Algorithm names used for cache keys and observations.
const (
	AlgorithmBFS = "bfs"
	AlgorithmDFS = "dfs"
)

// Observer receives traversal timings and cache lookups.
type Observer interface {
	ObserveTraversal(algorithm string, elapsed time.Duration)
	ObserveCacheLookup(algorithm string, hit bool)
}

// Config configures an Engine.
type Config struct {
	// CacheSize bounds the number of memoised results. Zero disables caching.
	CacheSize int
	DFS       DFSOptions
	// MaxResults truncates suggestion lists. Zero means unlimited.
	MaxResults int
}

type cacheKey struct {
	algorithm string
	origin    models.UserID
	counted   bool
	revision  uint64
}

// Engine runs suggestion queries against a live graph. Each query works on a
// single snapshot, so a mutation that starts during a traversal is never
// visible to it. Results are cached per graph revision; any mutation bumps the
// revision, so cached answers always equal a fresh computation.
type Engine struct {
	graph    *graph.RelationshipGraph
	cfg      Config
	cache    *lru.Cache[cacheKey, any]
	observer Observer
}

// NewEngine creates an Engine over g.
func NewEngine(g *graph.RelationshipGraph, cfg Config) (*Engine, error) {
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("cache size cannot be negative, got %d", cfg.CacheSize)
	}
	e := &Engine{graph: g, cfg: cfg}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[cacheKey, any](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create suggestion cache: %w", err)
		}
		e.cache = cache
	}
	return e, nil
}

// WithObserver sets the observer notified on every query.
func (e *Engine) WithObserver(o Observer) *Engine {
	e.observer = o
	return e
}

// SuggestBreadthFirst returns friends-of-friends suggestions for origin,
// nearest first.
func (e *Engine) SuggestBreadthFirst(origin models.UserID) []models.UserID {
	key := cacheKey{algorithm: AlgorithmBFS, origin: origin}
	out := cached(e, key, func(snap *graph.Snapshot) []models.UserID {
		return truncate(BreadthFirst(snap, origin), e.cfg.MaxResults)
	})
	return slices.Clone(out)
}

// SuggestBreadthFirstWithCounts is SuggestBreadthFirst with the exact mutual
// friend count of each candidate. The list and the counts come from one
// snapshot.
func (e *Engine) SuggestBreadthFirstWithCounts(origin models.UserID) []models.Suggestion {
	key := cacheKey{algorithm: AlgorithmBFS, origin: origin, counted: true}
	out := cached(e, key, func(snap *graph.Snapshot) []models.Suggestion {
		return truncate(BreadthFirstWithCounts(snap, origin), e.cfg.MaxResults)
	})
	return slices.Clone(out)
}

// SuggestDepthFirst returns suggestions for origin ranked by the depth-first
// mutual count heuristic.
func (e *Engine) SuggestDepthFirst(origin models.UserID) []models.Suggestion {
	key := cacheKey{algorithm: AlgorithmDFS, origin: origin}
	out := cached(e, key, func(snap *graph.Snapshot) []models.Suggestion {
		return truncate(DepthFirst(snap, origin, e.cfg.DFS), e.cfg.MaxResults)
	})
	return slices.Clone(out)
}

// MutualFriendCount returns the exact number of friends a and b share. It
// reads the live graph under its read lock and never takes a snapshot.
func (e *Engine) MutualFriendCount(a, b models.UserID) int {
	return e.graph.MutualFriendCount(a, b)
}

// MutualFriends lists the friends a and b share, in a's adjacency order.
func (e *Engine) MutualFriends(a, b models.UserID) []models.UserID {
	return e.graph.MutualFriends(a, b)
}

// Purge drops every cached result.
func (e *Engine) Purge() {
	if e.cache != nil {
		e.cache.Purge()
	}
}

// cached returns the memoised result for key at the current revision, or
// computes it on a fresh snapshot. Callers must not modify the returned value.
func cached[T any](e *Engine, key cacheKey, compute func(*graph.Snapshot) T) T {
	if e.cache != nil {
		key.revision = e.graph.Revision()
		if v, ok := e.cache.Get(key); ok {
			e.observeLookup(key.algorithm, true)
			return v.(T)
		}
		e.observeLookup(key.algorithm, false)
	}

	start := time.Now()
	snap := e.graph.Snapshot()
	out := compute(snap)
	if e.observer != nil {
		e.observer.ObserveTraversal(key.algorithm, time.Since(start))
	}

	if e.cache != nil {
		key.revision = snap.Revision()
		e.cache.Add(key, out)
	}
	return out
}

func (e *Engine) observeLookup(algorithm string, hit bool) {
	if e.observer != nil {
		e.observer.ObserveCacheLookup(algorithm, hit)
	}
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
