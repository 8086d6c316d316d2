package sociald

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/collegeconnect/socialgraph/internal/graph"
	"github.com/collegeconnect/socialgraph/internal/policy"
)

// httpStatus maps a service error onto an HTTP status code.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, graph.ErrEmptyIdentity),
		errors.Is(err, graph.ErrUntrimmedIdentity),
		errors.Is(err, graph.ErrSelfFriendship),
		errors.Is(err, graph.ErrSelfRequest),
		errors.Is(err, ErrUnknownAlgorithm):
		return http.StatusBadRequest
	case errors.Is(err, graph.ErrAlreadyFriends):
		return http.StatusConflict
	case errors.Is(err, graph.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, policy.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// grpcError converts a service error into a gRPC status error.
func grpcError(err error) error {
	if err == nil {
		return nil
	}
	var code codes.Code
	switch {
	case errors.Is(err, graph.ErrEmptyIdentity),
		errors.Is(err, graph.ErrUntrimmedIdentity),
		errors.Is(err, graph.ErrSelfFriendship),
		errors.Is(err, graph.ErrSelfRequest),
		errors.Is(err, ErrUnknownAlgorithm):
		code = codes.InvalidArgument
	case errors.Is(err, graph.ErrAlreadyFriends):
		code = codes.FailedPrecondition
	case errors.Is(err, graph.ErrRequestNotFound):
		code = codes.NotFound
	case errors.Is(err, policy.ErrRateLimited):
		code = codes.ResourceExhausted
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}
