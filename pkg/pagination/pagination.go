// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via the "pagina" and
// "registros" query parameters and how the total count is reported back.
package pagination

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1

	// PageParam and LimitParam are the query parameter names.
	PageParam  = "pagina"
	LimitParam = "registros"
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
//
// The result saturates at [math.MaxInt] instead of wrapping.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Limits configures defaults and the clamp applied by [FromRequest].
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits mirrors [DefaultLimit] and [MaxLimit].
var DefaultLimits = Limits{Default: DefaultLimit, Max: MaxLimit}

// ParamError reports a paging parameter that is not a positive integer.
type ParamError struct {
	Param string
	Value string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("El parámetro \"%s\" debe ser un número entero positivo", e.Param)
}

// FromRequest parses "pagina" and "registros" from an HTTP request.
//
// # Rules
//
// Absent parameters fall back to [DefaultPage] and limits.Default. Present
// parameters must be integers >= 1, otherwise a [*ParamError] is returned.
// "registros" above limits.Max is clamped down to limits.Max. A "pagina"
// whose offset would not fit in an int is rejected as well.
func FromRequest(r *http.Request, limits Limits) (Params, error) {
	if limits.Default < 1 {
		limits.Default = DefaultLimit
	}
	if limits.Max < limits.Default {
		limits.Max = limits.Default
	}

	page, err := parseIntParam(r, PageParam, DefaultPage)
	if err != nil {
		return Params{}, err
	}

	limit, err := parseIntParam(r, LimitParam, limits.Default)
	if err != nil {
		return Params{}, err
	}

	if limit > limits.Max {
		limit = limits.Max
	}

	if page-1 > math.MaxInt/limit {
		return Params{}, &ParamError{Param: PageParam, Value: strconv.Itoa(page)}
	}

	return Params{Page: page, Limit: limit}, nil
}

// parseIntParam parses a single positive integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &ParamError{Param: key, Value: raw}
	}

	return n, nil
}
