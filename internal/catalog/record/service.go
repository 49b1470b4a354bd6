// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/recursos/internal/platform/apperr"
	"github.com/taibuivan/recursos/internal/platform/ctxutil"
	"github.com/taibuivan/recursos/internal/platform/dberr"
	"github.com/taibuivan/recursos/internal/platform/docstore"
	"github.com/taibuivan/recursos/pkg/objectid"
	"github.com/taibuivan/recursos/pkg/pagination"
)

// # Service Layer

// Service orchestrates the request lifecycle for one record kind.
type Service[T docstore.Document, In any] struct {
	kind     *Kind[T, In]
	repo     Repository[T]
	resolver Resolver
	now      func() time.Time
}

// NewService constructs a [Service] for kind.
func NewService[T docstore.Document, In any](kind *Kind[T, In], repo Repository[T], resolver Resolver) *Service[T, In] {
	return &Service[T, In]{kind: kind, repo: repo, resolver: resolver, now: time.Now}
}

// WithClock replaces the time source used for registrado and the
// publication year check.
func (service *Service[T, In]) WithClock(now func() time.Time) *Service[T, In] {
	service.now = now
	return service
}

// Kind returns the descriptor this service manages.
func (service *Service[T, In]) Kind() *Kind[T, In] { return service.kind }

/*
List returns one page of records ordered by titulo.

Returns:
  - []T: The page
  - int: Total records in the collection
  - error: Storage failures
*/
func (service *Service[T, In]) List(context context.Context, page pagination.Params) ([]T, int, error) {
	items, err := service.repo.Find(context, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := service.repo.Count(context)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Get retrieves a record by identifier. Malformed ids are reported as missing.
func (service *Service[T, In]) Get(context context.Context, id string) (T, error) {
	var zero T
	if !objectid.IsValid(id) {
		return zero, apperr.NotFound(service.kind.NotFound)
	}

	doc, err := service.repo.FindByID(context, objectid.Normalize(id))
	if dberr.IsNotFound(err) {
		return zero, apperr.NotFound(service.kind.NotFound)
	}
	return doc, err
}

/*
Create validates input, resolves its references and stores the new record.

Nothing is written when any step fails.

Returns:
  - T: The stored record
  - error: VALIDATION_ERROR, REFERENCE_NOT_FOUND or storage failures
*/
func (service *Service[T, In]) Create(context context.Context, input In) (T, error) {
	var zero T

	now := service.now()
	if err := service.kind.Validate(input, now); err != nil {
		return zero, err
	}

	header := Header{ID: objectid.New(), Registrado: registeredAt(now)}
	doc, err := service.assemble(context, input, header)
	if err != nil {
		return zero, err
	}

	if err := service.repo.Insert(context, doc); err != nil {
		return zero, err
	}

	ctxutil.GetLogger(context).Info("record_created",
		slog.String("collection", service.kind.Name()),
		slog.String("id", doc.DocumentID()),
	)

	return doc, nil
}

/*
Update replaces every owned and embedded field of an existing record.

The original registrado timestamp is kept.

Returns:
  - T: The replaced record
  - error: NOT_FOUND, VALIDATION_ERROR, REFERENCE_NOT_FOUND or storage failures
*/
func (service *Service[T, In]) Update(context context.Context, id string, input In) (T, error) {
	var zero T
	if !objectid.IsValid(id) {
		return zero, apperr.NotFound(service.kind.NotFound)
	}
	id = objectid.Normalize(id)

	now := service.now()
	if err := service.kind.Validate(input, now); err != nil {
		return zero, err
	}

	existing, err := service.Get(context, id)
	if err != nil {
		return zero, err
	}

	header := Header{ID: id, Registrado: service.kind.Registered(existing)}
	doc, err := service.assemble(context, input, header)
	if err != nil {
		return zero, err
	}

	if err := service.repo.Replace(context, doc); err != nil {
		if dberr.IsNotFound(err) {
			return zero, apperr.NotFound(service.kind.NotFound)
		}
		return zero, err
	}

	return doc, nil
}

/*
Delete removes a record.

Returns:
  - T: The record as it was before removal
  - error: NOT_FOUND or storage failures
*/
func (service *Service[T, In]) Delete(context context.Context, id string) (T, error) {
	var zero T
	if !objectid.IsValid(id) {
		return zero, apperr.NotFound(service.kind.NotFound)
	}

	doc, err := service.repo.Delete(context, objectid.Normalize(id))
	if dberr.IsNotFound(err) {
		return zero, apperr.NotFound(service.kind.NotFound)
	}
	if err != nil {
		return zero, err
	}

	ctxutil.GetLogger(context).Info("record_deleted",
		slog.String("collection", service.kind.Name()),
		slog.String("id", doc.DocumentID()),
	)

	return doc, nil
}

// assemble resolves the references of a validated input and builds the document.
func (service *Service[T, In]) assemble(ctx context.Context, input In, header Header) (T, error) {
	var zero T

	snapshots, err := service.resolver.ResolveAll(ctx, service.kind.References(input))
	if err != nil {
		return zero, err
	}

	return service.kind.Assemble(input, header, snapshots), nil
}

// registeredAt truncates to milliseconds so the value survives a JSON round trip unchanged.
func registeredAt(now time.Time) time.Time {
	return now.UTC().Truncate(time.Millisecond)
}
