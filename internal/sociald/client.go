package sociald

import (
	"context"

	"google.golang.org/grpc"

	"github.com/collegeconnect/socialgraph/pkg/models"
)

// GRPCClient calls the social graph service using the JSON codec.
type GRPCClient struct {
	cc grpc.ClientConnInterface
}

// NewGRPCClient wraps an established connection.
func NewGRPCClient(cc grpc.ClientConnInterface) *GRPCClient {
	return &GRPCClient{cc: cc}
}

func (c *GRPCClient) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *GRPCClient) AddFriend(ctx context.Context, user, friend models.UserID) (string, error) {
	out := new(MutationResponse)
	err := c.invoke(ctx, "AddFriend", &FriendPairRequest{User: user, Friend: friend}, out)
	return out.Outcome, err
}

func (c *GRPCClient) RemoveFriend(ctx context.Context, user, friend models.UserID) (string, error) {
	out := new(MutationResponse)
	err := c.invoke(ctx, "RemoveFriend", &FriendPairRequest{User: user, Friend: friend}, out)
	return out.Outcome, err
}

func (c *GRPCClient) ListFriends(ctx context.Context, user models.UserID) ([]models.UserID, error) {
	out := new(FriendsResponse)
	err := c.invoke(ctx, "ListFriends", &UserRequest{User: user}, out)
	return out.Friends, err
}

func (c *GRPCClient) SendRequest(ctx context.Context, requester, target models.UserID) (string, error) {
	out := new(MutationResponse)
	err := c.invoke(ctx, "SendRequest", &FriendRequestMessage{Requester: requester, Target: target}, out)
	return out.Outcome, err
}

func (c *GRPCClient) ListRequests(ctx context.Context, target models.UserID) ([]models.UserID, error) {
	out := new(RequestsResponse)
	err := c.invoke(ctx, "ListRequests", &UserRequest{User: target}, out)
	return out.Requesters, err
}

func (c *GRPCClient) AcceptRequest(ctx context.Context, requester, target models.UserID) (string, error) {
	out := new(MutationResponse)
	err := c.invoke(ctx, "AcceptRequest", &FriendRequestMessage{Requester: requester, Target: target}, out)
	return out.Outcome, err
}

func (c *GRPCClient) DeclineRequest(ctx context.Context, requester, target models.UserID) (string, error) {
	out := new(MutationResponse)
	err := c.invoke(ctx, "DeclineRequest", &FriendRequestMessage{Requester: requester, Target: target}, out)
	return out.Outcome, err
}

func (c *GRPCClient) SuggestFriends(ctx context.Context, user models.UserID, algorithm string) ([]models.Suggestion, error) {
	out := new(SuggestResponse)
	err := c.invoke(ctx, "SuggestFriends", &SuggestRequest{User: user, Algorithm: algorithm}, out)
	return out.Suggestions, err
}

func (c *GRPCClient) MutualFriends(ctx context.Context, user, other models.UserID) ([]models.UserID, error) {
	out := new(MutualResponse)
	err := c.invoke(ctx, "MutualFriends", &MutualRequest{User: user, Other: other}, out)
	return out.Mutual, err
}

func (c *GRPCClient) DeleteUser(ctx context.Context, user models.UserID) (int, error) {
	out := new(DeleteUserResponse)
	err := c.invoke(ctx, "DeleteUser", &UserRequest{User: user}, out)
	return out.EdgesRemoved, err
}
