// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// # Reference Data Access

// Repository defines the data access contract for reference collections.
//
// Every method is scoped by a [Kind]. Missing documents are reported as
// dberr.ErrNotFound.
type Repository interface {

	/*
		List returns one page of a collection ordered by name, plus the collection size.

		Parameters:
		  - context: context.Context
		  - kind: *Kind
		  - offset, limit: int

		Returns:
		  - []Entity: The page
		  - int: Total documents in the collection
		  - error: Database retrieval failures
	*/
	List(context context.Context, kind *Kind, offset, limit int) ([]Entity, int, error)

	// Get fetches a single entity by identifier.
	Get(context context.Context, kind *Kind, id string) (Entity, error)

	/*
		NameTaken reports whether a document other than excludeID already uses name,
		compared case-insensitively over the whole string.
	*/
	NameTaken(context context.Context, kind *Kind, name, excludeID string) (bool, error)

	// Create persists a new entity.
	Create(context context.Context, kind *Kind, entity Entity) error

	// Update replaces the name of an existing entity.
	Update(context context.Context, kind *Kind, entity Entity) error
}
