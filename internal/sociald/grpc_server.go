package sociald

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/collegeconnect/socialgraph/pkg/logger"
	"github.com/collegeconnect/socialgraph/pkg/models"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "socialgraph.v1.SocialGraph"

// SocialGraphServer is the set of unary methods exposed over gRPC.
type SocialGraphServer interface {
	AddFriend(context.Context, *FriendPairRequest) (*MutationResponse, error)
	RemoveFriend(context.Context, *FriendPairRequest) (*MutationResponse, error)
	ListFriends(context.Context, *UserRequest) (*FriendsResponse, error)
	SendRequest(context.Context, *FriendRequestMessage) (*MutationResponse, error)
	ListRequests(context.Context, *UserRequest) (*RequestsResponse, error)
	AcceptRequest(context.Context, *FriendRequestMessage) (*MutationResponse, error)
	DeclineRequest(context.Context, *FriendRequestMessage) (*MutationResponse, error)
	SuggestFriends(context.Context, *SuggestRequest) (*SuggestResponse, error)
	MutualFriends(context.Context, *MutualRequest) (*MutualResponse, error)
	DeleteUser(context.Context, *UserRequest) (*DeleteUserResponse, error)
}

// GRPCServer implements SocialGraphServer on top of a Service.
type GRPCServer struct {
	service *Service
}

// NewGRPCServer creates a new GRPCServer backed by service.
func NewGRPCServer(service *Service) *GRPCServer {
	return &GRPCServer{service: service}
}

// Register attaches the social graph service and a health service to gs.
func Register(gs *grpc.Server, service *Service) *health.Server {
	gs.RegisterService(&socialGraphServiceDesc, NewGRPCServer(service))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)
	return hs
}

func (s *GRPCServer) AddFriend(_ context.Context, req *FriendPairRequest) (*MutationResponse, error) {
	out, err := s.service.AddFriend(trimID(req.User), trimID(req.Friend))
	if err != nil {
		return nil, grpcError(err)
	}
	return &MutationResponse{Outcome: out.String()}, nil
}

func (s *GRPCServer) RemoveFriend(_ context.Context, req *FriendPairRequest) (*MutationResponse, error) {
	out, err := s.service.RemoveFriend(trimID(req.User), trimID(req.Friend))
	if err != nil {
		return nil, grpcError(err)
	}
	return &MutationResponse{Outcome: out.String()}, nil
}

func (s *GRPCServer) ListFriends(_ context.Context, req *UserRequest) (*FriendsResponse, error) {
	return &FriendsResponse{Friends: s.service.ListFriends(trimID(req.User))}, nil
}

func (s *GRPCServer) SendRequest(_ context.Context, req *FriendRequestMessage) (*MutationResponse, error) {
	out, err := s.service.SendRequest(trimID(req.Requester), trimID(req.Target))
	if err != nil {
		return nil, grpcError(err)
	}
	return &MutationResponse{Outcome: out.String()}, nil
}

func (s *GRPCServer) ListRequests(_ context.Context, req *UserRequest) (*RequestsResponse, error) {
	return &RequestsResponse{Requesters: s.service.ListRequests(trimID(req.User))}, nil
}

func (s *GRPCServer) AcceptRequest(_ context.Context, req *FriendRequestMessage) (*MutationResponse, error) {
	out, err := s.service.AcceptRequest(trimID(req.Requester), trimID(req.Target))
	if err != nil {
		return nil, grpcError(err)
	}
	return &MutationResponse{Outcome: out.String()}, nil
}

func (s *GRPCServer) DeclineRequest(_ context.Context, req *FriendRequestMessage) (*MutationResponse, error) {
	out, err := s.service.DeclineRequest(trimID(req.Requester), trimID(req.Target))
	if err != nil {
		return nil, grpcError(err)
	}
	return &MutationResponse{Outcome: out.String()}, nil
}

func (s *GRPCServer) SuggestFriends(_ context.Context, req *SuggestRequest) (*SuggestResponse, error) {
	suggestions, err := s.service.Suggest(trimID(req.User), req.Algorithm)
	if err != nil {
		return nil, grpcError(err)
	}
	return &SuggestResponse{Suggestions: suggestions}, nil
}

func (s *GRPCServer) MutualFriends(_ context.Context, req *MutualRequest) (*MutualResponse, error) {
	mutual := s.service.MutualFriends(trimID(req.User), trimID(req.Other))
	return &MutualResponse{Mutual: mutual, Count: len(mutual)}, nil
}

func (s *GRPCServer) DeleteUser(_ context.Context, req *UserRequest) (*DeleteUserResponse, error) {
	removed, err := s.service.DeleteUser(trimID(req.User))
	if err != nil {
		return nil, grpcError(err)
	}
	return &DeleteUserResponse{EdgesRemoved: removed}, nil
}

// trimID drops surrounding whitespace the same way HTTP path ids are parsed.
func trimID(id models.UserID) models.UserID {
	return models.ParseUserID(string(id))
}

// UnaryLoggingInterceptor logs each unary call with its status code.
func UnaryLoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = logger.Component("grpc")
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		log.Debug("grpc call",
			"method", info.FullMethod,
			"code", code.String(),
			"duration", time.Since(start))
		return resp, err
	}
}

func unaryMethod[Req, Resp any](name string, call func(SocialGraphServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			server := srv.(SocialGraphServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var socialGraphServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SocialGraphServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("AddFriend", SocialGraphServer.AddFriend),
		unaryMethod("RemoveFriend", SocialGraphServer.RemoveFriend),
		unaryMethod("ListFriends", SocialGraphServer.ListFriends),
		unaryMethod("SendRequest", SocialGraphServer.SendRequest),
		unaryMethod("ListRequests", SocialGraphServer.ListRequests),
		unaryMethod("AcceptRequest", SocialGraphServer.AcceptRequest),
		unaryMethod("DeclineRequest", SocialGraphServer.DeclineRequest),
		unaryMethod("SuggestFriends", SocialGraphServer.SuggestFriends),
		unaryMethod("MutualFriends", SocialGraphServer.MutualFriends),
		unaryMethod("DeleteUser", SocialGraphServer.DeleteUser),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "socialgraph/v1/socialgraph.proto",
}
