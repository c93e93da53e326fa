package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ismail26477/an-fr/internal/platform/middleware"
	requestutil "github.com/Ismail26477/an-fr/internal/platform/request"
	"github.com/Ismail26477/an-fr/internal/platform/respond"
	"github.com/Ismail26477/an-fr/internal/platform/sec"
	"github.com/Ismail26477/an-fr/pkg/convert"
	"github.com/Ismail26477/an-fr/pkg/pagination"
)

// Handler exposes the catalogue over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the catalogue route group.
//
// # Endpoints
//   - GET /featured              : Home hero rotation (top-rated per kind).
//   - GET /search?q=             : Incremental search dropdown (anime only).
//   - GET /{kind}                : Paginated listing with optional filters.
//   - GET /{kind}/{id}           : Single title by ID.
//   - GET /{kind}/by-slug/{slug} : Single title by URL slug.
//
// Admin only:
//   - POST /{kind}                 : Enroll a new title.
//   - PATCH /{kind}/{id}/archive   : Hide or restore a title.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/featured", handler.featured)
	router.Get("/search", handler.search)

	router.Route("/{kind}", func(r chi.Router) {
		r.Get("/", handler.listTitles)
		r.Get("/{id}", handler.getTitle)
		r.Get("/by-slug/{slug}", handler.getTitleBySlug)

		// ## Content Management (Admin Protected)
		r.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleAdmin))

			admin.Post("/", handler.createTitle)
			admin.Patch("/{id}/archive", handler.archiveTitle)
		})
	})

	return router
}

func (handler *Handler) featured(writer http.ResponseWriter, request *http.Request) {
	titles, err := handler.service.Featured(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, titles)
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("q")

	titles, err := handler.service.Search(request.Context(), KindAnime, query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, titles)
}

func (handler *Handler) listTitles(writer http.ResponseWriter, request *http.Request) {
	kind, err := ParseKind(requestutil.Param(request, "kind"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		Search: request.URL.Query().Get("q"),
		Year:   convert.ToInt(request.URL.Query().Get("year")),
	}

	titles, total, err := handler.service.ListTitles(request.Context(), kind, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	kind, err := ParseKind(requestutil.Param(request, "kind"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.GetTitle(request.Context(), kind, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) getTitleBySlug(writer http.ResponseWriter, request *http.Request) {
	kind, err := ParseKind(requestutil.Param(request, "kind"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.GetTitleBySlug(request.Context(), kind, requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

// # Content Management Endpoints

type createTitleRequest struct {
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Synopsis     string   `json:"synopsis"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Rating       *float64 `json:"rating"`
	ReleaseYear  *int     `json:"release_year"`
	Status       string   `json:"status"`
}

func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	kind, err := ParseKind(requestutil.Param(request, "kind"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createTitleRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title := &Title{
		Title:        body.Title,
		Slug:         body.Slug,
		Description:  body.Description,
		Synopsis:     body.Synopsis,
		ThumbnailURL: body.ThumbnailURL,
		Rating:       body.Rating,
		ReleaseYear:  body.ReleaseYear,
		Status:       body.Status,
	}

	if err := handler.service.CreateTitle(request.Context(), kind, title); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, title)
}

type archiveTitleRequest struct {
	Archived bool `json:"archived"`
}

func (handler *Handler) archiveTitle(writer http.ResponseWriter, request *http.Request) {
	kind, err := ParseKind(requestutil.Param(request, "kind"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body archiveTitleRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ArchiveTitle(request.Context(), kind, requestutil.ID(request, "id"), body.Archived); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
