// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"

	"github.com/taibuivan/recursos/internal/platform/apperr"
	"github.com/taibuivan/recursos/internal/platform/dberr"
	"github.com/taibuivan/recursos/pkg/objectid"
)

// Ref names one foreign reference held by a record.
type Ref struct {
	Kind *Kind
	ID   string
}

// Resolver turns foreign identifiers into entity snapshots.
type Resolver struct {
	repo Repository
}

// NewResolver constructs a [Resolver] over the reference repository.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

/*
Resolve loads the entity behind id.

Returns:
  - Entity: The current document, to be copied into the owning record
  - error: REFERENCE_NOT_FOUND (400) carrying the kind's message
*/
func (resolver *Resolver) Resolve(context context.Context, kind *Kind, id string) (Entity, error) {
	if !objectid.IsValid(id) {
		return Entity{}, apperr.ReferenceNotFound(kind.NotFound)
	}

	entity, err := resolver.repo.Get(context, kind, objectid.Normalize(id))
	if dberr.IsNotFound(err) {
		return Entity{}, apperr.ReferenceNotFound(kind.NotFound)
	}
	if err != nil {
		return Entity{}, err
	}
	return entity, nil
}

/*
ResolveAll resolves refs in order and stops at the first failure.

The returned snapshots are positionally aligned with refs.
*/
func (resolver *Resolver) ResolveAll(context context.Context, refs []Ref) ([]Entity, error) {
	snapshots := make([]Entity, 0, len(refs))
	for _, ref := range refs {
		entity, err := resolver.Resolve(context, ref.Kind, ref.ID)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, entity)
	}
	return snapshots, nil
}
