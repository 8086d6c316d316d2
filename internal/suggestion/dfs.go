package suggestion

import (
	"sort"

	"github.com/collegeconnect/socialgraph/internal/graph"
	"github.com/collegeconnect/socialgraph/pkg/models"
)

// Order selects how DepthFirst arranges its result.
type Order int

const (
	// OrderByMutualCount sorts by count, highest first; ties keep discovery order.
	OrderByMutualCount Order = iota
	// OrderByDiscovery keeps the order in which candidates were first counted.
	OrderByDiscovery
)

// DFSOptions tunes DepthFirst.
type DFSOptions struct {
	// MaxDepth stops descending below this depth (origin is depth 0). Friends
	// of nodes at MaxDepth are still counted. Zero means unlimited.
	MaxDepth int
	Order    Order
}

// DepthFirst walks the graph depth-first from origin. At every visited node it
// increments a counter for each of that node's friends, then descends into the
// friends not yet visited, in adjacency order. The count is a heuristic for
// connection strength along the walk, not an exact mutual-friend count.
// Origin and its direct friends are excluded from the result.
func DepthFirst(snap *graph.Snapshot, origin models.UserID, opts DFSOptions) []models.Suggestion {
	counts := make(map[models.UserID]int)
	var discovered []models.UserID

	visited := visitedSet{origin: {}}
	stack := frameStack{{node: origin}}

	for !stack.empty() {
		top := stack.top()
		friends := snap.Friends(top.node)
		if top.next >= len(friends) {
			stack.pop()
			continue
		}
		f := friends[top.next]
		top.next++

		if counts[f] == 0 {
			discovered = append(discovered, f)
		}
		counts[f]++

		if visited.seen(f) {
			continue
		}
		if opts.MaxDepth > 0 && top.depth >= opts.MaxDepth {
			continue
		}
		visited.visit(f)
		stack.push(frame{node: f, depth: top.depth + 1})
	}

	result := make([]models.Suggestion, 0, len(discovered))
	for _, id := range discovered {
		if id == origin || snap.HasFriend(origin, id) {
			continue
		}
		result = append(result, models.Suggestion{ID: id, MutualCount: counts[id]})
	}

	if opts.Order == OrderByMutualCount {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].MutualCount > result[j].MutualCount
		})
	}
	return result
}
