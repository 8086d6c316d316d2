// Package graph holds the social relationship graph: confirmed friendships
// (undirected) and pending friend requests (directed, requester -> target).
//
// Main Types:
//   - RelationshipGraph: owns both adjacency maps behind one RWMutex
//   - Snapshot: immutable copy of the friendship adjacency used by traversals
//   - Outcome: Applied or NoOp result of a mutation
//
// Unknown identities are treated as nodes with empty adjacency. Queries never
// fail with "not found"; callers that need existence checks ask the identity
// service.
//
// Usage:
//
//	g := graph.NewRelationshipGraph(graph.DefaultOptions())
//	if _, err := g.AddFriend("alice", "bob"); err != nil {
//	    return err
//	}
//	snap := g.Snapshot()
//	friends := snap.Friends("alice")
package graph
