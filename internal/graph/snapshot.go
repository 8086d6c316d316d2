package graph

import "github.com/collegeconnect/socialgraph/pkg/models"

// Snapshot is an immutable view of the friendship adjacency at one revision.
// Mutations made after Snapshot returns are not visible through it.
type Snapshot struct {
	adj      map[models.UserID][]models.UserID
	member   map[models.UserID]map[models.UserID]struct{}
	revision uint64
}

// Snapshot copies the friendship adjacency under the read lock.
func (g *RelationshipGraph) Snapshot() *Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap := &Snapshot{
		adj:      make(map[models.UserID][]models.UserID, len(g.friends)),
		member:   make(map[models.UserID]map[models.UserID]struct{}, len(g.friends)),
		revision: g.revision,
	}
	for id, s := range g.friends {
		snap.adj[id] = s.values()
		set := make(map[models.UserID]struct{}, s.len())
		for _, f := range s.items {
			set[f] = struct{}{}
		}
		snap.member[id] = set
	}
	return snap
}

// NewSnapshot builds a snapshot from an adjacency list. Each entry lists the
// friends of the key in insertion order; the caller is responsible for
// symmetry. Used by tests and offline tooling.
func NewSnapshot(adj map[models.UserID][]models.UserID) *Snapshot {
	snap := &Snapshot{
		adj:    make(map[models.UserID][]models.UserID, len(adj)),
		member: make(map[models.UserID]map[models.UserID]struct{}, len(adj)),
	}
	for id, friends := range adj {
		list := make([]models.UserID, len(friends))
		copy(list, friends)
		snap.adj[id] = list
		set := make(map[models.UserID]struct{}, len(friends))
		for _, f := range friends {
			set[f] = struct{}{}
		}
		snap.member[id] = set
	}
	return snap
}

// Friends returns id's friends in insertion order. The slice is shared with
// the snapshot and must not be modified.
func (s *Snapshot) Friends(id models.UserID) []models.UserID {
	return s.adj[id]
}

// HasFriend reports whether b is a friend of a in this snapshot.
func (s *Snapshot) HasFriend(a, b models.UserID) bool {
	_, ok := s.member[a][b]
	return ok
}

// Degree returns the number of friends of id.
func (s *Snapshot) Degree(id models.UserID) int {
	return len(s.adj[id])
}

// Revision is the graph revision the snapshot was taken at.
func (s *Snapshot) Revision() uint64 {
	return s.revision
}

// Len returns the number of users with an adjacency entry.
func (s *Snapshot) Len() int {
	return len(s.adj)
}
