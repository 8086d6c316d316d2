package graph

import (
	"fmt"

	"github.com/collegeconnect/socialgraph/pkg/config"
)

// ApplySeed loads friendships then pending requests from seed. Entries that
// already hold are skipped.
func ApplySeed(g *RelationshipGraph, seed *config.Seed) error {
	if seed == nil {
		return nil
	}
	for i, pair := range seed.Friendships {
		if len(pair) != 2 {
			return fmt.Errorf("friendship %d: expected 2 users, got %d", i, len(pair))
		}
		if _, err := g.AddFriend(pair[0], pair[1]); err != nil {
			return fmt.Errorf("friendship %d (%s, %s): %w", i, pair[0], pair[1], err)
		}
	}
	for i, req := range seed.Requests {
		if _, err := g.AddPendingRequest(req.From, req.To); err != nil {
			return fmt.Errorf("request %d (%s -> %s): %w", i, req.From, req.To, err)
		}
	}
	return nil
}
