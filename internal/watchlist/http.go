// Copyright (c) 2026 AnFr. All rights reserved.

package watchlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ismail26477/an-fr/internal/catalog"
	"github.com/Ismail26477/an-fr/internal/platform/middleware"
	requestutil "github.com/Ismail26477/an-fr/internal/platform/request"
	"github.com/Ismail26477/an-fr/internal/platform/respond"
)

// Handler exposes the watchlist over HTTP. Every route requires an
// authenticated user; entries are always scoped to the caller.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the watchlist route group.
//
// # Endpoints
//   - GET    /                          : Merged list (anime first), optional kind/status filters.
//   - GET    /{kind}/{subjectID}        : Membership state for one subject.
//   - POST   /{kind}/{subjectID}/toggle : Atomic membership toggle.
//   - PATCH  /{kind}/entries/{id}       : Update an entry's progress status.
//   - DELETE /{kind}/entries/{id}       : Remove an entry by id.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)

	router.Route("/{kind}", func(r chi.Router) {
		r.Get("/{subjectID}", handler.membership)
		r.Post("/{subjectID}/toggle", handler.toggle)
		r.Patch("/entries/{id}", handler.updateStatus)
		r.Delete("/entries/{id}", handler.remove)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, err := handler.service.MergedItems(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	items = Filter(items, query.Get("kind"), query.Get("status"))

	respond.OK(writer, items)
}

func (handler *Handler) membership(writer http.ResponseWriter, request *http.Request) {
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

	membership, err := handler.service.Membership(request.Context(), kind, userID, requestutil.ID(request, "subjectID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, membership)
}

func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
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

	membership, err := handler.service.Toggle(request.Context(), kind, userID, requestutil.ID(request, "subjectID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, membership)
}

// updateStatusRequest is the PATCH body for a progress change.
type updateStatusRequest struct {
	Status string `json:"status"`
}

func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
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

	var body updateStatusRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := ParseStatus(body.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateStatus(request.Context(), kind, userID, requestutil.ID(request, "id"), status); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, Membership{Member: true, Status: status})
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.RemoveEntry(request.Context(), kind, userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
