// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recursos/internal/catalog/reference"
	"github.com/taibuivan/recursos/internal/catalog/reference/referencetest"
	"github.com/taibuivan/recursos/internal/platform/apperr"
	"github.com/taibuivan/recursos/internal/platform/redis"
	"github.com/taibuivan/recursos/pkg/objectid"
	"github.com/taibuivan/recursos/pkg/pagination"
)

type stubLock struct{ err error }

func (l stubLock) Acquire(context.Context, string, string) (redis.Release, error) {
	if l.err != nil {
		return nil, l.err
	}
	return func(context.Context) {}, nil
}

// busyOnceLock reports the name as held for the first busy attempts.
type busyOnceLock struct {
	busy  int
	calls int
}

func (l *busyOnceLock) Acquire(context.Context, string, string) (redis.Release, error) {
	l.calls++
	if l.calls <= l.busy {
		return nil, redis.ErrLocked
	}
	return func(context.Context) {}, nil
}

func TestService_Create_Uniqueness(t *testing.T) {
	ctx := context.Background()

	for _, kind := range reference.Kinds {
		t.Run(kind.Name(), func(t *testing.T) {
			service := reference.NewService(referencetest.New(), nil)

			created, err := service.Create(ctx, kind, reference.Input{Nombre: "Nuevo"})
			require.NoError(t, err)
			assert.True(t, objectid.IsValid(created.ID))
			assert.Equal(t, "Nuevo", created.Nombre)

			for _, variant := range []string{"Nuevo", "NUEVO", "nuevo", "  nUeVo  "} {
				_, err := service.Create(ctx, kind, reference.Input{Nombre: variant})
				require.Error(t, err, variant)
				assert.Equal(t, kind.Exists, err.Error())
				assert.True(t, apperr.HasCode(err, "ALREADY_EXISTS"))
			}

			// Anchored, not substring
			_, err = service.Create(ctx, kind, reference.Input{Nombre: "Nuevo2"})
			assert.NoError(t, err)
		})
	}
}

func TestService_Create_LengthBound(t *testing.T) {
	ctx := context.Background()

	for _, kind := range reference.Kinds {
		t.Run(kind.Name(), func(t *testing.T) {
			service := reference.NewService(referencetest.New(), nil)

			_, err := service.Create(ctx, kind, reference.Input{Nombre: strings.Repeat("x", kind.MaxLen)})
			assert.NoError(t, err)

			_, err = service.Create(ctx, kind, reference.Input{Nombre: strings.Repeat("y", kind.MaxLen+1)})
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
		})
	}

	assert.Equal(t, 25, reference.Languages.MaxLen)
}

func TestService_Create_RequiresName(t *testing.T) {
	service := reference.NewService(referencetest.New(), nil)

	_, err := service.Create(context.Background(), reference.Topics, reference.Input{Nombre: "   "})
	require.Error(t, err)
	assert.Equal(t, `"nombre" es obligatorio`, err.Error())
}

func TestService_Get(t *testing.T) {
	repo := referencetest.New()
	repo.Seed(reference.Topics, reference.Entity{ID: "5c8a1d5b0190b214360dc031", Nombre: "tema1"})
	service := reference.NewService(repo, nil)
	ctx := context.Background()

	t.Run("found_is_repeatable", func(t *testing.T) {
		first, err := service.Get(ctx, reference.Topics, "5c8a1d5b0190b214360dc031")
		require.NoError(t, err)
		second, err := service.Get(ctx, reference.Topics, "5C8A1D5B0190B214360DC031")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("malformed_is_not_found", func(t *testing.T) {
		_, err := service.Get(ctx, reference.Publishers, "1")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 404, ae.HTTPStatus)
		assert.Equal(t, "Editorial no encontrada", ae.Message)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := service.Get(ctx, reference.Topics, objectid.New())
		assert.Equal(t, "Tema no encontrado", err.Error())
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	repo := referencetest.New()
	repo.Seed(reference.Ratings,
		reference.Entity{ID: "000000000000000000000001", Nombre: "Buena"},
		reference.Entity{ID: "000000000000000000000002", Nombre: "Mala"},
	)
	service := reference.NewService(repo, nil)

	t.Run("keeps_own_name_in_other_case", func(t *testing.T) {
		updated, err := service.Update(ctx, reference.Ratings, "000000000000000000000001", reference.Input{Nombre: "BUENA"})
		require.NoError(t, err)
		assert.Equal(t, "BUENA", updated.Nombre)
	})

	t.Run("duplicate_of_other", func(t *testing.T) {
		_, err := service.Update(ctx, reference.Ratings, "000000000000000000000001", reference.Input{Nombre: "mala"})
		require.Error(t, err)
		assert.Equal(t, "La valoración ya existe", err.Error())
	})

	t.Run("unknown_id", func(t *testing.T) {
		_, err := service.Update(ctx, reference.Ratings, "000000000000000000000009", reference.Input{Nombre: "Regular"})
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("invalid_name", func(t *testing.T) {
		_, err := service.Update(ctx, reference.Ratings, "000000000000000000000001", reference.Input{Nombre: ""})
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})
}

func TestService_List_Pages(t *testing.T) {
	repo := referencetest.New()
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		repo.Seed(reference.Manufacturers, reference.Entity{ID: objectid.New(), Nombre: name})
	}
	service := reference.NewService(repo, nil)

	page, total, err := service.List(context.Background(), reference.Manufacturers, pagination.Params{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, page, 5)
	assert.Equal(t, "f", page[0].Nombre)
	assert.Equal(t, "j", page[4].Nombre)
}

func TestService_NameLock(t *testing.T) {
	ctx := context.Background()

	t.Run("busy_reports_duplicate", func(t *testing.T) {
		service := reference.NewService(referencetest.New(), stubLock{err: redis.ErrLocked}).WithLockRetry(time.Millisecond)
		_, err := service.Create(ctx, reference.Languages, reference.Input{Nombre: "Español"})
		require.Error(t, err)
		assert.Equal(t, "El idioma ya existe", err.Error())
	})

	t.Run("backend_down_degrades", func(t *testing.T) {
		repo := referencetest.New()
		service := reference.NewService(repo, stubLock{err: errors.New("dial tcp: connection refused")})
		_, err := service.Create(ctx, reference.Languages, reference.Input{Nombre: "Español"})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.Len(reference.Languages))
	})

	t.Run("released_holder_is_retried", func(t *testing.T) {
		repo := referencetest.New()
		lock := &busyOnceLock{busy: 1}
		service := reference.NewService(repo, lock).WithLockRetry(time.Millisecond)

		created, err := service.Create(ctx, reference.Languages, reference.Input{Nombre: "Español"})
		require.NoError(t, err)
		assert.Equal(t, "Español", created.Nombre)
		assert.Equal(t, 2, lock.calls)
		assert.Equal(t, 1, repo.Len(reference.Languages))
	})

	t.Run("retry_still_checks_store", func(t *testing.T) {
		repo := referencetest.New()
		repo.Seed(reference.Languages, reference.Entity{ID: "000000000000000000000001", Nombre: "Español"})
		service := reference.NewService(repo, &busyOnceLock{busy: 1}).WithLockRetry(time.Millisecond)

		_, err := service.Create(ctx, reference.Languages, reference.Input{Nombre: "español"})
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "ALREADY_EXISTS"))
		assert.Equal(t, 1, repo.Len(reference.Languages))
	})

	t.Run("cancelled_while_waiting", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		service := reference.NewService(referencetest.New(), stubLock{err: redis.ErrLocked}).WithLockRetry(time.Hour)

		_, err := service.Create(cancelled, reference.Languages, reference.Input{Nombre: "Español"})
		require.ErrorIs(t, err, context.Canceled)
	})
}
