// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"github.com/taibuivan/recursos/internal/catalog/reference"
)

// # Reference Order
//
// The order of each slice is the order references are resolved in, and the
// order the assembler reads the snapshots back.

func bookReferences(input BookInput) []reference.Ref {
	return []reference.Ref{
		{Kind: reference.Topics, ID: input.TemaID},
		{Kind: reference.Ratings, ID: input.ValoracionID},
		{Kind: reference.Publishers, ID: input.EditorialID},
		{Kind: reference.Languages, ID: input.IdiomaID},
	}
}

func tutorialReferences(input TutorialInput) []reference.Ref {
	return []reference.Ref{
		{Kind: reference.Topics, ID: input.TemaID},
		{Kind: reference.Ratings, ID: input.ValoracionID},
		{Kind: reference.Manufacturers, ID: input.FabricanteID},
		{Kind: reference.Languages, ID: input.IdiomaID},
	}
}

func linkReferences(input LinkInput) []reference.Ref {
	return []reference.Ref{
		{Kind: reference.Topics, ID: input.TemaID},
		{Kind: reference.Ratings, ID: input.ValoracionID},
	}
}

// # Assembly

func assembleBook(input BookInput, header Header, snapshots []reference.Entity) Book {
	return Book{
		ID:         header.ID,
		Titulo:     trim(input.Titulo),
		Publicado:  *input.Publicado,
		Paginas:    *input.Paginas,
		Tema:       snapshots[0],
		Valoracion: snapshots[1],
		Editorial:  snapshots[2],
		Idioma:     snapshots[3],
		Registrado: header.Registrado,
	}
}

// assembleTutorial stores the duration in minutes; horas and minutos are not kept.
func assembleTutorial(input TutorialInput, header Header, snapshots []reference.Entity) Tutorial {
	return Tutorial{
		ID:         header.ID,
		Titulo:     trim(input.Titulo),
		Publicado:  *input.Publicado,
		Duracion:   *input.Horas*60 + *input.Minutos,
		Tema:       snapshots[0],
		Valoracion: snapshots[1],
		Fabricante: snapshots[2],
		Idioma:     snapshots[3],
		Registrado: header.Registrado,
	}
}

func assembleLink(input LinkInput, header Header, snapshots []reference.Entity) Link {
	return Link{
		ID:         header.ID,
		Titulo:     trim(input.Titulo),
		URL:        trim(input.URL),
		Tema:       snapshots[0],
		Valoracion: snapshots[1],
		Registrado: header.Registrado,
	}
}
