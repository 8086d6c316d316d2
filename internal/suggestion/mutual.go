package suggestion

import (
	"github.com/collegeconnect/socialgraph/internal/graph"
	"github.com/collegeconnect/socialgraph/pkg/models"
)

// MutualFriendCount returns |friends(a) ∩ friends(b)|, probing the smaller
// adjacency list against the larger one.
func MutualFriendCount(snap *graph.Snapshot, a, b models.UserID) int {
	small, large := a, b
	if snap.Degree(a) > snap.Degree(b) {
		small, large = b, a
	}

	count := 0
	for _, f := range snap.Friends(small) {
		if snap.HasFriend(large, f) {
			count++
		}
	}
	return count
}

// MutualFriends lists the friends a and b share, in a's adjacency order.
func MutualFriends(snap *graph.Snapshot, a, b models.UserID) []models.UserID {
	shared := []models.UserID{}
	for _, f := range snap.Friends(a) {
		if snap.HasFriend(b, f) {
			shared = append(shared, f)
		}
	}
	return shared
}
