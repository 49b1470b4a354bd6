// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recursos/internal/platform/apperr"
	"github.com/taibuivan/recursos/internal/platform/docstore"
	requestutil "github.com/taibuivan/recursos/internal/platform/request"
	"github.com/taibuivan/recursos/internal/platform/respond"
	"github.com/taibuivan/recursos/pkg/objectid"
	"github.com/taibuivan/recursos/pkg/pagination"
)

// Handler implements the HTTP layer for one record kind.
type Handler[T docstore.Document, In any] struct {
	service *Service[T, In]
	limits  pagination.Limits
}

// NewHandler constructs a [Handler] around service.
func NewHandler[T docstore.Document, In any](service *Service[T, In], limits pagination.Limits) *Handler[T, In] {
	return &Handler[T, In]{service: service, limits: limits}
}

// Routes returns a [chi.Router] with the record endpoints.
func (handler *Handler[T, In]) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

/*
GET /api/{records}?pagina=N&registros=M.

Response:
  - 200: []T ordered by titulo, X-Total-Count header
  - 400: Non-integer paging parameters
*/
func (handler *Handler[T, In]) list(writer http.ResponseWriter, request *http.Request) {
	page, err := requestutil.Page(request, handler.limits)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, total, err := handler.service.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, items, total)
}

// GET /api/{records}/{id}.
func (handler *Handler[T, In]) get(writer http.ResponseWriter, request *http.Request) {
	doc, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, doc)
}

/*
POST /api/{records}.

Response:
  - 200: The created record with embedded snapshots
  - 400: Validation failure or unknown reference
*/
func (handler *Handler[T, In]) create(writer http.ResponseWriter, request *http.Request) {
	var input In
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	doc, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, doc)
}

/*
PUT /api/{records}/{id}. A malformed id is rejected before the body is read.

Response:
  - 200: The replaced record
  - 400: Validation failure or unknown reference
  - 404: Malformed or unknown id
*/
func (handler *Handler[T, In]) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	if !objectid.IsValid(id) {
		respond.Error(writer, request, apperr.NotFound(handler.service.Kind().NotFound))
		return
	}

	var input In
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	doc, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, doc)
}

/*
DELETE /api/{records}/{id}.

Response:
  - 200: The deleted record
  - 404: Malformed or unknown id
*/
func (handler *Handler[T, In]) delete(writer http.ResponseWriter, request *http.Request) {
	doc, err := handler.service.Delete(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, doc)
}
