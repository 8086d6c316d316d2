package graph

import "errors"

// Sentinel errors for graph mutations. A mutation that returns an error leaves
// the graph unchanged.
var (
	// ErrEmptyIdentity is returned when a user ID is blank.
	ErrEmptyIdentity = errors.New("user id is empty")

	// ErrUntrimmedIdentity is returned when a user ID has leading or trailing whitespace.
	ErrUntrimmedIdentity = errors.New("user id has surrounding whitespace")

	// ErrSelfFriendship is returned by AddFriend when both sides are the same user.
	ErrSelfFriendship = errors.New("user cannot befriend themselves")

	// ErrSelfRequest is returned when a user sends a friend request to themselves.
	ErrSelfRequest = errors.New("user cannot send a friend request to themselves")

	// ErrAlreadyFriends is returned when a request is sent between confirmed friends.
	ErrAlreadyFriends = errors.New("users are already friends")

	// ErrRequestNotFound is returned when accepting a request that was never sent.
	ErrRequestNotFound = errors.New("friend request not found")
)

// IsInvariantViolation reports whether err rejects a mutation that would break
// a graph invariant.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrEmptyIdentity) ||
		errors.Is(err, ErrUntrimmedIdentity) ||
		errors.Is(err, ErrSelfFriendship) ||
		errors.Is(err, ErrSelfRequest) ||
		errors.Is(err, ErrAlreadyFriends)
}
