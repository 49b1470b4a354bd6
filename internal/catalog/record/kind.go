// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"time"

	"github.com/taibuivan/recursos/internal/catalog/reference"
	"github.com/taibuivan/recursos/internal/platform/database/schema"
	"github.com/taibuivan/recursos/internal/platform/docstore"
)

// Header holds the fields the service decides rather than the client.
type Header struct {
	ID         string
	Registrado time.Time
}

// Kind describes one composite collection.
//
// T is the stored document and In the request body.
type Kind[T docstore.Document, In any] struct {
	Table schema.CollectionTable

	// NotFound is the client message for a missing record.
	NotFound string

	// Validate checks the input against the current time.
	Validate func(input In, now time.Time) error

	// References lists the foreign ids of input, in resolution order.
	References func(input In) []reference.Ref

	// Assemble builds the document. snapshots is aligned with References.
	Assemble func(input In, header Header, snapshots []reference.Entity) T

	// Registered reads the creation timestamp back from a stored document.
	Registered func(doc T) time.Time
}

// Name returns the collection name (e.g. "libros").
func (k *Kind[T, In]) Name() string { return k.Table.Name }

var (
	Books = &Kind[Book, BookInput]{
		Table:      schema.Libros,
		NotFound:   "Libro no encontrado",
		Validate:   validateBook,
		References: bookReferences,
		Assemble:   assembleBook,
		Registered: func(b Book) time.Time { return b.Registrado },
	}

	Tutorials = &Kind[Tutorial, TutorialInput]{
		Table:      schema.Tutoriales,
		NotFound:   "Tutorial no encontrado",
		Validate:   validateTutorial,
		References: tutorialReferences,
		Assemble:   assembleTutorial,
		Registered: func(t Tutorial) time.Time { return t.Registrado },
	}

	Links = &Kind[Link, LinkInput]{
		Table:      schema.Enlaces,
		NotFound:   "Enlace no encontrado",
		Validate:   validateLink,
		References: linkReferences,
		Assemble:   assembleLink,
		Registered: func(l Link) time.Time { return l.Registrado },
	}
)
