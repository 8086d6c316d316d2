package sociald

import "github.com/collegeconnect/socialgraph/pkg/models"

// Wire messages for the socialgraph.v1.SocialGraph gRPC service.

type FriendPairRequest struct {
	User   models.UserID `json:"user"`
	Friend models.UserID `json:"friend"`
}

type UserRequest struct {
	User models.UserID `json:"user"`
}

type FriendRequestMessage struct {
	Requester models.UserID `json:"requester"`
	Target    models.UserID `json:"target"`
}

type SuggestRequest struct {
	User      models.UserID `json:"user"`
	Algorithm string        `json:"algorithm,omitempty"`
}

type MutualRequest struct {
	User  models.UserID `json:"user"`
	Other models.UserID `json:"other"`
}

type MutationResponse struct {
	Outcome string `json:"outcome"`
}

type FriendsResponse struct {
	Friends []models.UserID `json:"friends"`
}

type RequestsResponse struct {
	Requesters []models.UserID `json:"requesters"`
}

type SuggestResponse struct {
	Suggestions []models.Suggestion `json:"suggestions"`
}

type MutualResponse struct {
	Mutual []models.UserID `json:"mutual"`
	Count  int             `json:"count"`
}

type DeleteUserResponse struct {
	EdgesRemoved int `json:"edges_removed"`
}
