// Package suggestion derives friend suggestions and mutual-friend statistics
// from a graph.Snapshot.
//
// The traversal functions (BreadthFirst, DepthFirst, MutualFriendCount) are
// pure: they read one snapshot and allocate their own state. Engine binds them
// to a live RelationshipGraph, taking a fresh snapshot per call and memoising
// results per graph revision.
package suggestion
