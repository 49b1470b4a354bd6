// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"strings"
	"time"

	"github.com/taibuivan/recursos/internal/platform/validate"
)

// MsgInvalidYear is reported when publicado is not a past or current year.
const MsgInvalidYear = "Año de publicación no válido"

// Tutorial duration bounds. Minutes are the remainder below one hour.
const (
	maxHours   = 9999
	maxMinutes = 59
)

// # Validation Rules

func validateBook(input BookInput, now time.Time) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitulo, input.Titulo)
	checkYear(validator, input.Publicado, now)

	validator.RequiredInt(FieldPaginas, input.Paginas)
	if !validator.HasErrors() {
		validator.Min(FieldPaginas, *input.Paginas, 1)
	}

	validator.
		ObjectID(FieldTemaID, input.TemaID).
		ObjectID(FieldValoracionID, input.ValoracionID).
		ObjectID(FieldEditorialID, input.EditorialID).
		ObjectID(FieldIdiomaID, input.IdiomaID)

	return validator.Err()
}

func validateTutorial(input TutorialInput, now time.Time) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitulo, input.Titulo)
	checkYear(validator, input.Publicado, now)

	validator.RequiredInt(FieldHoras, input.Horas)
	if !validator.HasErrors() {
		validator.Range(FieldHoras, *input.Horas, 0, maxHours)
	}

	validator.RequiredInt(FieldMinutos, input.Minutos)
	if !validator.HasErrors() {
		validator.Range(FieldMinutos, *input.Minutos, 0, maxMinutes)
	}

	validator.
		ObjectID(FieldTemaID, input.TemaID).
		ObjectID(FieldValoracionID, input.ValoracionID).
		ObjectID(FieldFabricanteID, input.FabricanteID).
		ObjectID(FieldIdiomaID, input.IdiomaID)

	return validator.Err()
}

func validateLink(input LinkInput, _ time.Time) error {
	validator := &validate.Validator{}

	validator.
		Required(FieldTitulo, input.Titulo).
		Required(FieldURL, input.URL).
		ObjectID(FieldTemaID, input.TemaID).
		ObjectID(FieldValoracionID, input.ValoracionID)

	return validator.Err()
}

// checkYear requires publicado and bounds it to (0, current year].
func checkYear(validator *validate.Validator, year *int, now time.Time) {
	validator.RequiredInt(FieldPublicado, year)
	if !validator.HasErrors() {
		validator.Custom(FieldPublicado, *year < 1 || *year > now.Year(), MsgInvalidYear)
	}
}

// # Helpers

func trim(value string) string { return strings.TrimSpace(value) }
