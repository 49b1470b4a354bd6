// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package record manages the catalog's composite records: books (libros),
tutorials (tutoriales) and links (enlaces).

A record owns a few scalar fields and embeds snapshots of the reference
entities it points to. Snapshots are copied in at write time and are never
refreshed when the referenced entity is renamed later.

# Request Lifecycle

Every write follows the same ordered chain and stops at the first failure:

 1. Validate the input fields.
 2. Resolve each foreign id into a snapshot, in declaration order.
 3. Assemble the stored document.
 4. Persist it.

The three record types share one generic [Service] and [Handler],
parameterized by a [Kind] descriptor.
*/
package record

import (
	"time"

	"github.com/taibuivan/recursos/internal/catalog/reference"
)

// # Books

// Book is a stored libro.
type Book struct {
	ID         string           `json:"_id"`
	Titulo     string           `json:"titulo"`
	Publicado  int              `json:"publicado"`
	Paginas    int              `json:"paginas"`
	Tema       reference.Entity `json:"tema"`
	Valoracion reference.Entity `json:"valoracion"`
	Editorial  reference.Entity `json:"editorial"`
	Idioma     reference.Entity `json:"idioma"`
	Registrado time.Time        `json:"registrado"`
}

// BookInput is the body accepted when creating or replacing a book.
type BookInput struct {
	Titulo       string `json:"titulo"`
	Publicado    *int   `json:"publicado"`
	Paginas      *int   `json:"paginas"`
	TemaID       string `json:"temaId"`
	ValoracionID string `json:"valoracionId"`
	EditorialID  string `json:"editorialId"`
	IdiomaID     string `json:"idiomaId"`
}

func (b Book) DocumentID() string  { return b.ID }
func (b Book) DocumentKey() string { return b.Titulo }

// # Tutorials

// Tutorial is a stored tutorial. Duracion is expressed in minutes.
type Tutorial struct {
	ID         string           `json:"_id"`
	Titulo     string           `json:"titulo"`
	Publicado  int              `json:"publicado"`
	Duracion   int              `json:"duracion"`
	Tema       reference.Entity `json:"tema"`
	Valoracion reference.Entity `json:"valoracion"`
	Fabricante reference.Entity `json:"fabricante"`
	Idioma     reference.Entity `json:"idioma"`
	Registrado time.Time        `json:"registrado"`
}

// TutorialInput carries the duration split into hours and minutes.
type TutorialInput struct {
	Titulo       string `json:"titulo"`
	Publicado    *int   `json:"publicado"`
	Horas        *int   `json:"horas"`
	Minutos      *int   `json:"minutos"`
	TemaID       string `json:"temaId"`
	ValoracionID string `json:"valoracionId"`
	FabricanteID string `json:"fabricanteId"`
	IdiomaID     string `json:"idiomaId"`
}

func (t Tutorial) DocumentID() string  { return t.ID }
func (t Tutorial) DocumentKey() string { return t.Titulo }

// # Links

// Link is a stored enlace.
type Link struct {
	ID         string           `json:"_id"`
	Titulo     string           `json:"titulo"`
	URL        string           `json:"url"`
	Tema       reference.Entity `json:"tema"`
	Valoracion reference.Entity `json:"valoracion"`
	Registrado time.Time        `json:"registrado"`
}

// LinkInput is the body accepted when creating or replacing a link.
type LinkInput struct {
	Titulo       string `json:"titulo"`
	URL          string `json:"url"`
	TemaID       string `json:"temaId"`
	ValoracionID string `json:"valoracionId"`
}

func (l Link) DocumentID() string  { return l.ID }
func (l Link) DocumentKey() string { return l.Titulo }

// # JSON Field Names

const (
	FieldTitulo       = "titulo"
	FieldPublicado    = "publicado"
	FieldPaginas      = "paginas"
	FieldHoras        = "horas"
	FieldMinutos      = "minutos"
	FieldURL          = "url"
	FieldTemaID       = "temaId"
	FieldValoracionID = "valoracionId"
	FieldEditorialID  = "editorialId"
	FieldIdiomaID     = "idiomaId"
	FieldFabricanteID = "fabricanteId"
)
