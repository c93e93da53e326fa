// Copyright (c) 2026 AnFr. All rights reserved.

package comment

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/middleware"
	requestutil "github.com/Ismail26477/an-fr/internal/platform/request"
	"github.com/Ismail26477/an-fr/internal/platform/respond"
	"github.com/Ismail26477/an-fr/internal/platform/sec"
	"github.com/Ismail26477/an-fr/internal/users/auth"
)

// Handler exposes comment threads over HTTP. Reading is public; posting
// and deleting require an authenticated user.
type Handler struct {
	service *Service
	users   UserResolver
}

// UserResolver loads the full user record behind an access token so the
// display-name snapshot can be resolved from profile fields.
type UserResolver interface {
	GetUser(ctx context.Context, userID string) (*auth.User, error)
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, users UserResolver) *Handler {
	return &Handler{service: service, users: users}
}

// Routes returns the comment route group.
//
// # Endpoints
//   - GET    /{kind}/{subjectID} : Thread for one subject, newest first.
//   - POST   /{kind}/{subjectID} : Post a comment (auth).
//   - DELETE /{id}               : Delete a comment (owner or moderator).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{kind}/{subjectID}", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{kind}/{subjectID}", handler.post)
		r.Delete("/{id}", handler.remove)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	kind, err := catalog.ParseKind(requestutil.Param(request, "kind"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments := handler.service.List(request.Context(), kind, requestutil.ID(request, "subjectID"))
	respond.OK(writer, comments)
}

// postRequest is the POST body for a new comment.
type postRequest struct {
	Body string `json:"body"`
}

func (handler *Handler) post(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind, err := catalog.ParseKind(requestutil.Param(request, "kind"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body postRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.users.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Post(request.Context(), user.Identity(), kind, requestutil.ID(request, "subjectID"), body.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.ID(request, "id")

	// Moderators can remove any comment; everyone else only their own.
	if sec.UserRole(claims.Role).AtLeast(sec.RoleModerator) {
		err = handler.service.DeleteAny(request.Context(), commentID)
	} else {
		err = handler.service.Delete(request.Context(), claims.UserID, commentID)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
