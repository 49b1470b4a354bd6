// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"context"

	"github.com/taibuivan/recursos/internal/catalog/reference"
	"github.com/taibuivan/recursos/internal/platform/docstore"
)

// # Repository Interfaces

// Repository defines the persistence operations for one record collection.
// [*docstore.Collection] satisfies it directly.
type Repository[T docstore.Document] interface {
	// FindByID returns dberr.ErrNotFound when no document has id.
	FindByID(ctx context.Context, id string) (T, error)

	// Find returns one page ordered by titulo.
	Find(ctx context.Context, offset, limit int) ([]T, error)

	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, doc T) error

	// Replace overwrites the whole document and fails with dberr.ErrNotFound
	// when it does not exist.
	Replace(ctx context.Context, doc T) error

	// Delete removes the document and returns it as it was stored.
	Delete(ctx context.Context, id string) (T, error)
}

// Resolver turns foreign ids into snapshots. Implemented by [reference.Resolver].
type Resolver interface {
	ResolveAll(ctx context.Context, refs []reference.Ref) ([]reference.Entity, error)
}

// NewPostgresRepository returns the Postgres-backed collection for kind.
func NewPostgresRepository[T docstore.Document, In any](db docstore.Querier, kind *Kind[T, In]) *docstore.Collection[T] {
	return docstore.NewCollection[T](db, kind.Table)
}
