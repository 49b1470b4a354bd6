// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recursos/internal/catalog/reference"
	"github.com/taibuivan/recursos/internal/catalog/reference/referencetest"
	"github.com/taibuivan/recursos/pkg/pagination"
)

func newRouter(repo *referencetest.Repository) http.Handler {
	service := reference.NewService(repo, nil)
	router := chi.NewRouter()
	for _, kind := range reference.Kinds {
		router.Mount("/api/"+kind.Name(), reference.NewHandler(service, kind, pagination.DefaultLimits).Routes())
	}
	return router
}

func do(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHTTP_CreateTopicThenDuplicate(t *testing.T) {
	router := newRouter(referencetest.New())

	rec := do(t, router, http.MethodPost, "/api/temas", `{"nombre":"tema1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "tema1", created["nombre"])
	assert.Len(t, created["_id"], 24)

	rec = do(t, router, http.MethodPost, "/api/temas", `{"nombre":"TEMA1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El tema ya existe", rec.Body.String())
}

func TestHTTP_GetMalformedID(t *testing.T) {
	router := newRouter(referencetest.New())

	rec := do(t, router, http.MethodGet, "/api/editoriales/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Editorial no encontrada", rec.Body.String())
}

func TestHTTP_GetIsIdempotent(t *testing.T) {
	repo := referencetest.New()
	repo.Seed(reference.Languages, reference.Entity{ID: "000000000000000000000003", Nombre: "Español"})
	router := newRouter(repo)

	first := do(t, router, http.MethodGet, "/api/idiomas/000000000000000000000003", "")
	second := do(t, router, http.MethodGet, "/api/idiomas/000000000000000000000003", "")

	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, `{"_id":"000000000000000000000003","nombre":"Español"}`, first.Body.String())
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestHTTP_ListPagination(t *testing.T) {
	repo := referencetest.New()
	for i := 1; i <= 12; i++ {
		repo.Seed(reference.Ratings, reference.Entity{ID: fmt.Sprintf("%024d", i), Nombre: fmt.Sprintf("valoracion%02d", i)})
	}
	router := newRouter(repo)

	rec := do(t, router, http.MethodGet, "/api/valoraciones?pagina=2&registros=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12", rec.Header().Get("X-Total-Count"))

	var page []reference.Entity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page, 5)
	assert.Equal(t, "valoracion06", page[0].Nombre)
	assert.Equal(t, "valoracion10", page[4].Nombre)

	rec = do(t, router, http.MethodGet, "/api/valoraciones?pagina=uno&registros=5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTP_UpdateAndNoDelete(t *testing.T) {
	repo := referencetest.New()
	repo.Seed(reference.Manufacturers, reference.Entity{ID: "000000000000000000000007", Nombre: "Acme"})
	router := newRouter(repo)

	rec := do(t, router, http.MethodPut, "/api/fabricantes/000000000000000000000007", `{"nombre":"Acme Corp"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"_id":"000000000000000000000007","nombre":"Acme Corp"}`, rec.Body.String())

	rec = do(t, router, http.MethodPut, "/api/fabricantes/000000000000000000000008", `{"nombre":"Otro"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Fabricante no encontrado", rec.Body.String())

	rec = do(t, router, http.MethodDelete, "/api/fabricantes/000000000000000000000007", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHTTP_CreateValidation(t *testing.T) {
	router := newRouter(referencetest.New())

	rec := do(t, router, http.MethodPost, "/api/idiomas", `{"nombre":"`+strings.Repeat("a", 26)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"nombre" debe tener como máximo 25 caracteres`, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/idiomas", `{"nombre":"Inglés","codigo":"en"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"codigo" no está permitido`, rec.Body.String())
}

func TestHTTP_UpdateMalformedIDBeforeBody(t *testing.T) {
	router := newRouter(referencetest.New())

	rec := do(t, router, http.MethodPut, "/api/temas/1", `{not json`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Tema no encontrado", rec.Body.String())
}
