// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recursos/internal/platform/apperr"
	requestutil "github.com/taibuivan/recursos/internal/platform/request"
	"github.com/taibuivan/recursos/internal/platform/respond"
	"github.com/taibuivan/recursos/pkg/objectid"
	"github.com/taibuivan/recursos/pkg/pagination"
)

// Handler implements the HTTP layer for one reference kind.
type Handler struct {
	service *Service
	kind    *Kind
	limits  pagination.Limits
}

// NewHandler constructs a [Handler] serving kind.
func NewHandler(service *Service, kind *Kind, limits pagination.Limits) *Handler {
	return &Handler{service: service, kind: kind, limits: limits}
}

// Routes returns a [chi.Router] with the kind's endpoints. Reference
// entities cannot be deleted, so no DELETE route is registered.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)

	return router
}

/*
GET /api/{kind}?pagina=N&registros=M.

Response:
  - 200: []Entity ordered by nombre, X-Total-Count header
  - 400: Non-integer paging parameters
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page, err := requestutil.Page(request, handler.limits)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entities, total, err := handler.service.List(request.Context(), handler.kind, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, entities, total)
}

/*
GET /api/{kind}/{id}.

Response:
  - 200: Entity
  - 404: Malformed or unknown id
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	entity, err := handler.service.Get(request.Context(), handler.kind, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

/*
POST /api/{kind}.

Request:
  - Body: {"nombre": string}

Response:
  - 200: Entity
  - 400: Validation failure or duplicate name
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Create(request.Context(), handler.kind, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

/*
PUT /api/{kind}/{id}. A malformed id is rejected before the body is read.

Request:
  - Body: {"nombre": string}

Response:
  - 200: Entity
  - 400: Validation failure or duplicate name
  - 404: Malformed or unknown id
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	if !objectid.IsValid(id) {
		respond.Error(writer, request, apperr.NotFound(handler.kind.NotFound))
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Update(request.Context(), handler.kind, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}
