package sociald

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/collegeconnect/socialgraph/internal/graph"
	"github.com/collegeconnect/socialgraph/pkg/logger"
	"github.com/collegeconnect/socialgraph/pkg/models"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFrom returns the request id stored by the HTTP middleware.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// sendRequestBody is the payload of POST /v1/users/{id}/requests.
type sendRequestBody struct {
	Requester string `json:"requester" validate:"required,max=128,userid"`
}

var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New()
	_ = requestValidate.RegisterValidation("userid", validateUserID)
}

// validateUserID rejects identifiers that are blank after trimming.
func validateUserID(fl validator.FieldLevel) bool {
	return models.UserID(fl.Field().String()).Valid()
}

type HTTPServer struct {
	router  *mux.Router
	service *Service
}

func NewHTTPServer(service *Service) *HTTPServer {
	s := &HTTPServer{
		router:  mux.NewRouter(),
		service: service,
	}

	r := s.router
	r.Use(requestIDMiddleware)

	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	r.HandleFunc("/v1/stats", s.handleStats).Methods(http.MethodGet)

	r.HandleFunc("/v1/users/{id}", s.handleDeleteUser).Methods(http.MethodDelete)
	r.HandleFunc("/v1/users/{id}/friends", s.handleListFriends).Methods(http.MethodGet)
	r.HandleFunc("/v1/users/{id}/friends/{friend}", s.handleAddFriend).Methods(http.MethodPut)
	r.HandleFunc("/v1/users/{id}/friends/{friend}", s.handleRemoveFriend).Methods(http.MethodDelete)
	r.HandleFunc("/v1/users/{id}/friends/{friend}", s.handleHasFriend).Methods(http.MethodGet)
	r.HandleFunc("/v1/users/{id}/requests", s.handleListRequests).Methods(http.MethodGet)
	r.HandleFunc("/v1/users/{id}/requests", s.handleSendRequest).Methods(http.MethodPost)
	r.HandleFunc("/v1/users/{id}/requests/{requester}", s.handleDeclineRequest).Methods(http.MethodDelete)
	r.HandleFunc("/v1/users/{id}/requests/{requester}/accept", s.handleAcceptRequest).Methods(http.MethodPost)
	r.HandleFunc("/v1/users/{id}/suggestions", s.handleSuggestions).Methods(http.MethodGet)
	r.HandleFunc("/v1/users/{id}/mutual/{other}", s.handleMutual).Methods(http.MethodGet)
	r.HandleFunc("/v1/users/{id}/can-create-group", s.handleCanCreateGroup).Methods(http.MethodGet)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "not found")
	})

	return s
}

func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// requestIDMiddleware propagates or assigns an X-Request-ID and logs the request.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", id,
			"duration", time.Since(start))
	})
}

func pathID(r *http.Request, name string) models.UserID {
	return models.ParseUserID(mux.Vars(r)[name])
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleMetrics refreshes the graph size gauges before serving the registry.
func (s *HTTPServer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.service.Stats()
	s.service.Metrics().Handler().ServeHTTP(w, r)
}

func (s *HTTPServer) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.service.Stats())
}

// handleListFriends handles GET /v1/users/{id}/friends
func (s *HTTPServer) handleListFriends(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.writeJSON(w, http.StatusOK, map[string]any{
		"user":    id,
		"friends": s.service.ListFriends(id),
	})
}

// handleAddFriend handles PUT /v1/users/{id}/friends/{friend}
func (s *HTTPServer) handleAddFriend(w http.ResponseWriter, r *http.Request) {
	out, err := s.service.AddFriend(pathID(r, "id"), pathID(r, "friend"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"outcome": out.String()})
}

// handleRemoveFriend handles DELETE /v1/users/{id}/friends/{friend}
func (s *HTTPServer) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	out, err := s.service.RemoveFriend(pathID(r, "id"), pathID(r, "friend"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"outcome": out.String()})
}

// handleHasFriend handles GET /v1/users/{id}/friends/{friend}
func (s *HTTPServer) handleHasFriend(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"friends": s.service.AreFriends(pathID(r, "id"), pathID(r, "friend")),
	})
}

// handleListRequests handles GET /v1/users/{id}/requests
func (s *HTTPServer) handleListRequests(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.writeJSON(w, http.StatusOK, map[string]any{
		"user":       id,
		"requesters": s.service.ListRequests(id),
	})
}

// handleSendRequest handles POST /v1/users/{id}/requests
func (s *HTTPServer) handleSendRequest(w http.ResponseWriter, r *http.Request) {
	var body sendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := requestValidate.Struct(body); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			s.writeError(w, http.StatusBadRequest, "invalid field "+verrs[0].Field()+": failed "+verrs[0].Tag())
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.service.SendRequest(models.ParseUserID(body.Requester), pathID(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	status := http.StatusOK
	if out == graph.Applied {
		status = http.StatusCreated
	}
	s.writeJSON(w, status, map[string]any{"outcome": out.String()})
}

// handleDeclineRequest handles DELETE /v1/users/{id}/requests/{requester}
func (s *HTTPServer) handleDeclineRequest(w http.ResponseWriter, r *http.Request) {
	out, err := s.service.DeclineRequest(pathID(r, "requester"), pathID(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"outcome": out.String()})
}

// handleAcceptRequest handles POST /v1/users/{id}/requests/{requester}/accept
func (s *HTTPServer) handleAcceptRequest(w http.ResponseWriter, r *http.Request) {
	out, err := s.service.AcceptRequest(pathID(r, "requester"), pathID(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"outcome": out.String()})
}

// handleSuggestions handles GET /v1/users/{id}/suggestions?algorithm=bfs|dfs
func (s *HTTPServer) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	algorithm := strings.ToLower(r.URL.Query().Get("algorithm"))
	suggestions, err := s.service.Suggest(id, algorithm)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if algorithm == "" {
		algorithm = "bfs"
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"user":        id,
		"algorithm":   algorithm,
		"suggestions": suggestions,
	})
}

// handleMutual handles GET /v1/users/{id}/mutual/{other}
func (s *HTTPServer) handleMutual(w http.ResponseWriter, r *http.Request) {
	mutual := s.service.MutualFriends(pathID(r, "id"), pathID(r, "other"))
	s.writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(mutual),
		"mutual": mutual,
	})
}

// handleCanCreateGroup handles GET /v1/users/{id}/can-create-group
func (s *HTTPServer) handleCanCreateGroup(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"allowed": s.service.CanCreateGroup(pathID(r, "id")),
	})
}

// handleDeleteUser handles DELETE /v1/users/{id}
func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	removed, err := s.service.DeleteUser(pathID(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"edges_removed": removed})
}

// Helper functions

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": message,
	})
}

func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "error", err)
	}
	s.writeError(w, status, err.Error())
}
