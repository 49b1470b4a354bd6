// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"

	"github.com/taibuivan/recursos/internal/platform/apperr"
	"github.com/taibuivan/recursos/internal/platform/docstore"
)

// PostgresRepository implements [Repository] with one document collection per [Kind].
type PostgresRepository struct {
	collections map[string]*docstore.Collection[Entity]
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db docstore.Querier) *PostgresRepository {
	collections := make(map[string]*docstore.Collection[Entity], len(Kinds))
	for _, kind := range Kinds {
		collections[kind.Name()] = docstore.NewCollection[Entity](db, kind.Table)
	}
	return &PostgresRepository{collections: collections}
}

func (repository *PostgresRepository) collection(kind *Kind) (*docstore.Collection[Entity], error) {
	collection, ok := repository.collections[kind.Name()]
	if !ok {
		return nil, apperr.Internal(fmt.Errorf("reference: unknown collection %q", kind.Name()))
	}
	return collection, nil
}

/*
List retrieves one page of a reference collection.

Description: Issues a windowed SELECT ordered by name and a COUNT(*) over the
same table.
*/
func (repository *PostgresRepository) List(context context.Context, kind *Kind, offset, limit int) ([]Entity, int, error) {
	collection, err := repository.collection(kind)
	if err != nil {
		return nil, 0, err
	}

	entities, err := collection.Find(context, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := collection.Count(context)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

// Get fetches a single entity by identifier.
func (repository *PostgresRepository) Get(context context.Context, kind *Kind, id string) (Entity, error) {
	collection, err := repository.collection(kind)
	if err != nil {
		return Entity{}, err
	}
	return collection.FindByID(context, id)
}

// NameTaken performs the case-insensitive anchored name lookup.
func (repository *PostgresRepository) NameTaken(context context.Context, kind *Kind, name, excludeID string) (bool, error) {
	collection, err := repository.collection(kind)
	if err != nil {
		return false, err
	}
	return collection.ExistsKeyFold(context, name, excludeID)
}

// Create inserts a new entity.
func (repository *PostgresRepository) Create(context context.Context, kind *Kind, entity Entity) error {
	collection, err := repository.collection(kind)
	if err != nil {
		return err
	}
	return collection.Insert(context, entity)
}

// Update replaces an existing entity.
func (repository *PostgresRepository) Update(context context.Context, kind *Kind, entity Entity) error {
	collection, err := repository.collection(kind)
	if err != nil {
		return err
	}
	return collection.Replace(context, entity)
}
