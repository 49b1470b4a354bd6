// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the catalog's reference data: topics, ratings,
languages, publishers and manufacturers.

Every reference entity has the same shape, an identifier and a name, so the
package is written once and parameterized by a [Kind] descriptor.

# Core Responsibility

  - Validation: Names are required, trimmed and bounded per kind.
  - Uniqueness: Names are unique per kind, ignoring letter case.
  - Resolution: Composite records resolve foreign ids into [Entity] snapshots
    through the [Resolver].

Reference entities are never deleted through the API, and renaming one does
not touch the snapshots already embedded in books, tutorials or links.
*/
package reference

import "github.com/taibuivan/recursos/internal/platform/database/schema"

// # Reference Domain

// Entity is a reference document. It is also the snapshot embedded in records.
type Entity struct {
	ID     string `json:"_id"`
	Nombre string `json:"nombre"`
}

// DocumentID implements docstore.Document.
func (e Entity) DocumentID() string { return e.ID }

// DocumentKey implements docstore.Document.
func (e Entity) DocumentKey() string { return e.Nombre }

// Input is the request body accepted on create and update.
type Input struct {
	Nombre string `json:"nombre"`
}

// FieldNombre is the JSON name of the only writable field.
const FieldNombre = "nombre"

// # Kind Descriptors

// Kind describes one reference collection.
type Kind struct {
	// Table is the backing collection. Table.Name doubles as the route segment.
	Table schema.CollectionTable

	// MaxLen bounds the name, counted in characters.
	MaxLen int

	// NotFound is the client message for a missing document.
	NotFound string

	// Exists is the client message for a duplicate name.
	Exists string
}

// Name returns the collection name (e.g. "temas").
func (k *Kind) Name() string { return k.Table.Name }

var (
	Topics = &Kind{
		Table:    schema.Temas,
		MaxLen:   50,
		NotFound: "Tema no encontrado",
		Exists:   "El tema ya existe",
	}

	Ratings = &Kind{
		Table:    schema.Valoraciones,
		MaxLen:   50,
		NotFound: "Valoración no encontrada",
		Exists:   "La valoración ya existe",
	}

	Languages = &Kind{
		Table:    schema.Idiomas,
		MaxLen:   25,
		NotFound: "Idioma no encontrado",
		Exists:   "El idioma ya existe",
	}

	Publishers = &Kind{
		Table:    schema.Editoriales,
		MaxLen:   50,
		NotFound: "Editorial no encontrada",
		Exists:   "La editorial ya existe",
	}

	Manufacturers = &Kind{
		Table:    schema.Fabricantes,
		MaxLen:   50,
		NotFound: "Fabricante no encontrado",
		Exists:   "El fabricante ya existe",
	}
)

// Kinds lists every reference kind in route registration order.
var Kinds = []*Kind{Publishers, Topics, Languages, Manufacturers, Ratings}

// KindByName returns the kind whose collection is name.
func KindByName(name string) (*Kind, bool) {
	for _, kind := range Kinds {
		if kind.Name() == name {
			return kind, true
		}
	}
	return nil, false
}
