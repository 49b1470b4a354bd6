// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recursos/internal/platform/apperr"
	"github.com/taibuivan/recursos/internal/platform/validate"
	"github.com/taibuivan/recursos/pkg/pagination"
)

// maxBodyBytes caps request bodies. Catalog documents are tiny.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Unknown fields are rejected, and a value of the wrong JSON type is reported
against the offending field.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: a VALIDATION_ERROR naming the field, validate.ErrInvalidJSON otherwise
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	err := decoder.Decode(target)
	if err == nil {
		return nil
	}

	// Wrong type for a known field
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return validate.RequiredError(typeErr.Field, fmt.Sprintf("\"%s\" debe ser de tipo %s", typeErr.Field, jsonKind(typeErr.Type.Kind().String())))
	}

	// Field not declared by the payload type
	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		field = strings.Trim(field, `"`)
		return validate.RequiredError(field, fmt.Sprintf("\"%s\" no está permitido", field))
	}

	return validate.ErrInvalidJSON
}

/*
ID retrieves a named URL parameter (document identifier) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Page parses the paging query parameters, mapping a malformed value to a 400.
*/
func Page(request *http.Request, limits pagination.Limits) (pagination.Params, error) {
	params, err := pagination.FromRequest(request, limits)
	if err != nil {
		return pagination.Params{}, apperr.BadRequest(err.Error())
	}
	return params, nil
}

func jsonKind(kind string) string {
	switch kind {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "float32", "float64":
		return "número"
	case "string":
		return "texto"
	default:
		return kind
	}
}
