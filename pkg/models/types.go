package models

import (
	"sort"
	"strings"
)

// UserID identifies a user account. Two values are equal if and only if they
// denote the same account. IDs are issued by the identity service; the graph
// never creates or destroys users.
type UserID string

// Valid reports whether the ID is non-empty after trimming whitespace.
func (id UserID) Valid() bool {
	return strings.TrimSpace(string(id)) != ""
}

func (id UserID) String() string {
	return string(id)
}

// ParseUserID trims raw and converts it to a UserID.
func ParseUserID(raw string) UserID {
	return UserID(strings.TrimSpace(raw))
}

// Suggestion is a friend candidate with the number of visited contacts that
// list the candidate as a friend.
type Suggestion struct {
	ID          UserID `json:"id"`
	MutualCount int    `json:"mutual_count"`
}

// FriendRequest is a directed, unconfirmed edge from requester to target.
type FriendRequest struct {
	From UserID `json:"from" yaml:"from"`
	To   UserID `json:"to" yaml:"to"`
}

// IDs returns the identifiers of suggestions in order.
func IDs(suggestions []Suggestion) []UserID {
	out := make([]UserID, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.ID
	}
	return out
}

// SortUserIDs sorts ids lexically in place and returns them.
func SortUserIDs(ids []UserID) []UserID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
