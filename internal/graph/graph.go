package graph

import (
	"sync"

	"github.com/collegeconnect/socialgraph/pkg/models"
)

// Outcome reports whether a mutation changed the graph.
type Outcome int

const (
	// NoOp means the requested state already held (duplicate add, missing edge on remove).
	NoOp Outcome = iota
	// Applied means the graph was changed.
	Applied
)

func (o Outcome) String() string {
	if o == Applied {
		return "applied"
	}
	return "noop"
}

// Options tunes mutation behaviour.
type Options struct {
	// PurgePendingOnFriend removes pending requests in either direction when
	// AddFriend confirms a friendship, keeping the graph free of pending
	// requests between friends.
	PurgePendingOnFriend bool
}

// DefaultOptions returns the options used by the service.
func DefaultOptions() Options {
	return Options{PurgePendingOnFriend: true}
}

// Stats summarises graph size.
type Stats struct {
	Users           int    `json:"users"`
	Friendships     int    `json:"friendships"`
	PendingRequests int    `json:"pending_requests"`
	Revision        uint64 `json:"revision"`
}

// RelationshipGraph tracks confirmed friendships and pending requests.
// A single RWMutex guards both maps so two-sided updates are never observed
// half-applied.
type RelationshipGraph struct {
	mu       sync.RWMutex
	friends  map[models.UserID]*orderedSet
	pending  map[models.UserID]*orderedSet // target -> requesters
	revision uint64
	opts     Options
}

// NewRelationshipGraph creates an empty graph.
func NewRelationshipGraph(opts Options) *RelationshipGraph {
	return &RelationshipGraph{
		friends: make(map[models.UserID]*orderedSet),
		pending: make(map[models.UserID]*orderedSet),
		opts:    opts,
	}
}

func validate(ids ...models.UserID) error {
	for _, id := range ids {
		if !id.Valid() {
			return ErrEmptyIdentity
		}
		if models.ParseUserID(string(id)) != id {
			return ErrUntrimmedIdentity
		}
	}
	return nil
}

func setFor(m map[models.UserID]*orderedSet, id models.UserID) *orderedSet {
	s, ok := m[id]
	if !ok {
		s = newOrderedSet()
		m[id] = s
	}
	return s
}

// linked must be called with g.mu held.
func (g *RelationshipGraph) linked(a, b models.UserID) bool {
	s, ok := g.friends[a]
	return ok && s.has(b)
}

// dropRequest must be called with g.mu held.
func (g *RelationshipGraph) dropRequest(requester, target models.UserID) bool {
	s, ok := g.pending[target]
	return ok && s.remove(requester)
}

// AddFriend confirms a friendship between a and b. Adding an existing
// friendship is a NoOp; a == b is rejected with ErrSelfFriendship.
func (g *RelationshipGraph) AddFriend(a, b models.UserID) (Outcome, error) {
	if err := validate(a, b); err != nil {
		return NoOp, err
	}
	if a == b {
		return NoOp, ErrSelfFriendship
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.linked(a, b) {
		return NoOp, nil
	}
	setFor(g.friends, a).add(b)
	setFor(g.friends, b).add(a)
	if g.opts.PurgePendingOnFriend {
		g.dropRequest(a, b)
		g.dropRequest(b, a)
	}
	g.revision++
	return Applied, nil
}

// RemoveFriend deletes the friendship between a and b if it exists.
func (g *RelationshipGraph) RemoveFriend(a, b models.UserID) (Outcome, error) {
	if err := validate(a, b); err != nil {
		return NoOp, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.linked(a, b) {
		return NoOp, nil
	}
	g.friends[a].remove(b)
	g.friends[b].remove(a)
	g.revision++
	return Applied, nil
}

// HasFriend reports whether a and b are confirmed friends.
func (g *RelationshipGraph) HasFriend(a, b models.UserID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.linked(a, b)
}

// FriendsOf returns a's friends in the order the friendships were added.
// Unknown users have no friends.
func (g *RelationshipGraph) FriendsOf(a models.UserID) []models.UserID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s, ok := g.friends[a]
	if !ok {
		return []models.UserID{}
	}
	return s.values()
}

// FriendCount returns the number of confirmed friends of a.
func (g *RelationshipGraph) FriendCount(a models.UserID) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if s, ok := g.friends[a]; ok {
		return s.len()
	}
	return 0
}

// MutualFriendCount returns how many friends a and b share. It walks the
// smaller friend set against the larger one.
func (g *RelationshipGraph) MutualFriendCount(a, b models.UserID) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	small, large := g.friends[a], g.friends[b]
	if small == nil || large == nil {
		return 0
	}
	if small.len() > large.len() {
		small, large = large, small
	}
	count := 0
	for _, f := range small.items {
		if large.has(f) {
			count++
		}
	}
	return count
}

// MutualFriends lists the friends a and b share, in a's adjacency order.
func (g *RelationshipGraph) MutualFriends(a, b models.UserID) []models.UserID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	shared := []models.UserID{}
	own, other := g.friends[a], g.friends[b]
	if own == nil || other == nil {
		return shared
	}
	for _, f := range own.items {
		if other.has(f) {
			shared = append(shared, f)
		}
	}
	return shared
}

// AddPendingRequest records a friend request from requester to target.
// Duplicate requests are a NoOp.
func (g *RelationshipGraph) AddPendingRequest(requester, target models.UserID) (Outcome, error) {
	if err := validate(requester, target); err != nil {
		return NoOp, err
	}
	if requester == target {
		return NoOp, ErrSelfRequest
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.linked(requester, target) {
		return NoOp, ErrAlreadyFriends
	}
	if !setFor(g.pending, target).add(requester) {
		return NoOp, nil
	}
	g.revision++
	return Applied, nil
}

// WouldApplyRequest reports whether AddPendingRequest(requester, target)
// would change the graph right now.
func (g *RelationshipGraph) WouldApplyRequest(requester, target models.UserID) bool {
	if validate(requester, target) != nil || requester == target {
		return false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.linked(requester, target) {
		return false
	}
	s, ok := g.pending[target]
	return !ok || !s.has(requester)
}

// PendingRequestsFor returns the requesters waiting on target, oldest first.
func (g *RelationshipGraph) PendingRequestsFor(target models.UserID) []models.UserID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s, ok := g.pending[target]
	if !ok {
		return []models.UserID{}
	}
	return s.values()
}

// RemovePendingRequest withdraws or declines a request. Missing requests are a NoOp.
func (g *RelationshipGraph) RemovePendingRequest(requester, target models.UserID) (Outcome, error) {
	if err := validate(requester, target); err != nil {
		return NoOp, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.dropRequest(requester, target) {
		return NoOp, nil
	}
	g.revision++
	return Applied, nil
}

// AcceptPendingRequest turns the request from requester to target into a
// friendship. A reverse request from target to requester is cleared too.
func (g *RelationshipGraph) AcceptPendingRequest(requester, target models.UserID) (Outcome, error) {
	if err := validate(requester, target); err != nil {
		return NoOp, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.dropRequest(requester, target) {
		return NoOp, ErrRequestNotFound
	}
	g.dropRequest(target, requester)
	if !g.linked(requester, target) {
		setFor(g.friends, requester).add(target)
		setFor(g.friends, target).add(requester)
	}
	g.revision++
	return Applied, nil
}

// RemoveUser strips every friendship and request that touches id. The identity
// service calls it before an account is deleted. It returns the number of
// edges removed.
func (g *RelationshipGraph) RemoveUser(id models.UserID) (int, error) {
	if err := validate(id); err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	own, hadFriends := g.friends[id]
	if hadFriends {
		for _, f := range own.items {
			if other, ok := g.friends[f]; ok && other.remove(id) {
				removed++
			}
		}
		delete(g.friends, id)
	}
	inbox, hadPending := g.pending[id]
	if hadPending {
		removed += inbox.len()
		delete(g.pending, id)
	}
	for _, s := range g.pending {
		if s.remove(id) {
			removed++
		}
	}

	if removed > 0 || hadFriends || hadPending {
		g.revision++
	}
	return removed, nil
}

// Revision changes every time the graph is mutated.
func (g *RelationshipGraph) Revision() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.revision
}

// Stats returns current graph size counters.
func (g *RelationshipGraph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	users := make(map[models.UserID]struct{}, len(g.friends))
	edges := 0
	for id, s := range g.friends {
		users[id] = struct{}{}
		edges += s.len()
	}
	pending := 0
	for id, s := range g.pending {
		users[id] = struct{}{}
		pending += s.len()
		for _, r := range s.items {
			users[r] = struct{}{}
		}
	}

	return Stats{
		Users:           len(users),
		Friendships:     edges / 2,
		PendingRequests: pending,
		Revision:        g.revision,
	}
}
