package suggestion

import (
	"github.com/collegeconnect/socialgraph/internal/graph"
	"github.com/collegeconnect/socialgraph/pkg/models"
)

// BreadthFirst suggests every user reachable from origin that is neither
// origin nor a direct friend, ordered by distance. Users at the same distance
// keep adjacency (friendship insertion) order.
func BreadthFirst(snap *graph.Snapshot, origin models.UserID) []models.UserID {
	result := []models.UserID{}
	if snap.Degree(origin) == 0 {
		return result
	}

	visited := visitedSet{origin: {}}
	queue := &fifo{}
	queue.push(origin)

	for !queue.empty() {
		current, _ := queue.pop()
		for _, neighbor := range snap.Friends(current) {
			if !visited.visit(neighbor) {
				continue
			}
			queue.push(neighbor)
			if neighbor != origin && !snap.HasFriend(origin, neighbor) {
				result = append(result, neighbor)
			}
		}
	}
	return result
}

// BreadthFirstWithCounts runs BreadthFirst and attaches the exact mutual
// friend count of each candidate, all against the same snapshot.
func BreadthFirstWithCounts(snap *graph.Snapshot, origin models.UserID) []models.Suggestion {
	ids := BreadthFirst(snap, origin)
	out := make([]models.Suggestion, len(ids))
	for i, id := range ids {
		out[i] = models.Suggestion{ID: id, MutualCount: MutualFriendCount(snap, origin, id)}
	}
	return out
}
