// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recursos/internal/catalog/record"
	"github.com/taibuivan/recursos/internal/catalog/record/recordtest"
	"github.com/taibuivan/recursos/internal/catalog/reference"
	"github.com/taibuivan/recursos/internal/catalog/reference/referencetest"
	"github.com/taibuivan/recursos/internal/platform/apperr"
	"github.com/taibuivan/recursos/pkg/objectid"
	"github.com/taibuivan/recursos/pkg/pagination"
)

const (
	topicID        = "000000000000000000000001"
	ratingID       = "000000000000000000000002"
	publisherID    = "000000000000000000000003"
	languageID     = "000000000000000000000004"
	manufacturerID = "000000000000000000000005"
	missingID      = "0000000000000000000000ff"
)

var clock = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

// fixture seeds one entity of every reference kind.
type fixture struct {
	refs     *referencetest.Repository
	resolver *reference.Resolver
}

func newFixture() *fixture {
	refs := referencetest.New()
	refs.Seed(reference.Topics, reference.Entity{ID: topicID, Nombre: "Programación"})
	refs.Seed(reference.Ratings, reference.Entity{ID: ratingID, Nombre: "Excelente"})
	refs.Seed(reference.Publishers, reference.Entity{ID: publisherID, Nombre: "Anaya"})
	refs.Seed(reference.Languages, reference.Entity{ID: languageID, Nombre: "Español"})
	refs.Seed(reference.Manufacturers, reference.Entity{ID: manufacturerID, Nombre: "Udemy"})
	return &fixture{refs: refs, resolver: reference.NewResolver(refs)}
}

func (f *fixture) books() (*record.Service[record.Book, record.BookInput], *recordtest.Repository[record.Book]) {
	repo := recordtest.New[record.Book]()
	service := record.NewService(record.Books, repo, f.resolver).WithClock(func() time.Time { return clock })
	return service, repo
}

func bookInput() record.BookInput {
	return record.BookInput{
		Titulo:       "Aprende Go",
		Publicado:    intPtr(2020),
		Paginas:      intPtr(320),
		TemaID:       topicID,
		ValoracionID: ratingID,
		EditorialID:  publisherID,
		IdiomaID:     languageID,
	}
}

func TestService_Create_EmbedsSnapshots(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	service, repo := f.books()

	book, err := service.Create(ctx, bookInput())
	require.NoError(t, err)

	assert.True(t, objectid.IsValid(book.ID))
	assert.Equal(t, reference.Entity{ID: topicID, Nombre: "Programación"}, book.Tema)
	assert.Equal(t, reference.Entity{ID: publisherID, Nombre: "Anaya"}, book.Editorial)
	assert.Equal(t, clock, book.Registrado)
	assert.Equal(t, 1, repo.Len())
}

func TestService_SnapshotsDoNotFollowRenames(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	service, _ := f.books()

	book, err := service.Create(ctx, bookInput())
	require.NoError(t, err)

	references := reference.NewService(f.refs, nil)
	_, err = references.Update(ctx, reference.Topics, topicID, reference.Input{Nombre: "Desarrollo"})
	require.NoError(t, err)

	stored, err := service.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Programación", stored.Tema.Nombre)
}

func TestService_Create_MissingReferenceWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	tests := []struct {
		name    string
		mutate  func(*record.BookInput)
		wantMsg string
	}{
		{"topic", func(in *record.BookInput) { in.TemaID = missingID }, "Tema no encontrado"},
		{"rating", func(in *record.BookInput) { in.ValoracionID = missingID }, "Valoración no encontrada"},
		{"publisher", func(in *record.BookInput) { in.EditorialID = missingID }, "Editorial no encontrada"},
		{"language", func(in *record.BookInput) { in.IdiomaID = missingID }, "Idioma no encontrado"},
		{"first missing wins", func(in *record.BookInput) { in.ValoracionID, in.IdiomaID = missingID, missingID }, "Valoración no encontrada"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, repo := f.books()
			input := bookInput()
			tc.mutate(&input)

			_, err := service.Create(ctx, input)
			require.Error(t, err)
			assert.Equal(t, tc.wantMsg, err.Error())
			assert.True(t, apperr.HasCode(err, "REFERENCE_NOT_FOUND"))
			assert.Zero(t, repo.Writes())
		})
	}
}

func TestService_Update_MissingReferenceKeepsStoredRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	tests := []struct {
		name    string
		mutate  func(*record.BookInput)
		wantMsg string
	}{
		{"topic", func(in *record.BookInput) { in.TemaID = missingID }, "Tema no encontrado"},
		{"rating", func(in *record.BookInput) { in.ValoracionID = missingID }, "Valoración no encontrada"},
		{"publisher", func(in *record.BookInput) { in.EditorialID = missingID }, "Editorial no encontrada"},
		{"language", func(in *record.BookInput) { in.IdiomaID = missingID }, "Idioma no encontrado"},
		{"first missing wins", func(in *record.BookInput) { in.TemaID, in.EditorialID = missingID, missingID }, "Tema no encontrado"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, repo := f.books()

			created, err := service.Create(ctx, bookInput())
			require.NoError(t, err)
			writes := repo.Writes()

			input := bookInput()
			input.Titulo = "Título cambiado"
			tc.mutate(&input)

			_, err = service.Update(ctx, created.ID, input)
			require.Error(t, err)
			assert.Equal(t, tc.wantMsg, err.Error())
			assert.True(t, apperr.HasCode(err, "REFERENCE_NOT_FOUND"))
			assert.Equal(t, writes, repo.Writes())

			stored, err := service.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, stored)
		})
	}
}

func TestService_Create_FutureYear(t *testing.T) {
	f := newFixture()
	service, repo := f.books()

	input := bookInput()
	input.Publicado = intPtr(clock.Year() + 1)

	_, err := service.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, record.MsgInvalidYear, err.Error())
	assert.Zero(t, repo.Writes())
}

func TestService_Update_KeepsRegistrado(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	service, _ := f.books()

	created, err := service.Create(ctx, bookInput())
	require.NoError(t, err)

	service.WithClock(func() time.Time { return clock.Add(48 * time.Hour) })

	input := bookInput()
	input.Titulo = "Aprende Go, segunda edición"
	input.Paginas = intPtr(400)

	updated, err := service.Update(ctx, created.ID, input)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Registrado, updated.Registrado)
	assert.Equal(t, "Aprende Go, segunda edición", updated.Titulo)
	assert.Equal(t, 400, updated.Paginas)
}

func TestService_Update_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	service, _ := f.books()

	_, err := service.Update(ctx, "not-an-id", bookInput())
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
	assert.Equal(t, "Libro no encontrado", err.Error())

	_, err = service.Update(ctx, missingID, bookInput())
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	invalid := bookInput()
	invalid.Titulo = ""
	_, err = service.Update(ctx, missingID, invalid)
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}

func TestService_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	service, _ := f.books()

	created, err := service.Create(ctx, bookInput())
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	_, err = service.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, "Libro no encontrado", err.Error())

	_, err = service.Delete(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

func TestService_Tutorial_Duration(t *testing.T) {
	f := newFixture()
	repo := recordtest.New[record.Tutorial]()
	service := record.NewService(record.Tutorials, repo, f.resolver).WithClock(func() time.Time { return clock })

	tutorial, err := service.Create(context.Background(), record.TutorialInput{
		Titulo:       "Docker",
		Publicado:    intPtr(2025),
		Horas:        intPtr(3),
		Minutos:      intPtr(15),
		TemaID:       topicID,
		ValoracionID: ratingID,
		FabricanteID: manufacturerID,
		IdiomaID:     languageID,
	})
	require.NoError(t, err)

	assert.Equal(t, 195, tutorial.Duracion)
	assert.Equal(t, "Udemy", tutorial.Fabricante.Nombre)
}

func TestService_List_OrdersByTitle(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	repo := recordtest.New[record.Link]()
	service := record.NewService(record.Links, repo, f.resolver)

	for _, title := range []string{"c", "a", "b"} {
		_, err := service.Create(ctx, record.LinkInput{Titulo: title, URL: "https://example.com/" + title, TemaID: topicID, ValoracionID: ratingID})
		require.NoError(t, err)
	}

	links, total, err := service.List(ctx, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, links, 2)
	assert.Equal(t, "a", links[0].Titulo)
	assert.Equal(t, "b", links[1].Titulo)
}
