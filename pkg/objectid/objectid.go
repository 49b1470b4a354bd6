// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objectid provides the 24-character identifiers used by every catalog document.

Identifiers are derived from a Version 7 UUID: the 48-bit millisecond timestamp
followed by 48 bits of randomness, rendered as lowercase hex.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Compatible: Same shape as the identifiers clients already hold.
  - Cheap to validate: A fixed-length hex string, checked without a lookup.
*/
package objectid

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Length is the number of hex characters in an identifier.
const Length = 24

var hexRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// # Generators

// New generates a new time-ordered identifier.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("objectid: failed to generate UUIDv7: " + err.Error())
	}

	// Timestamp bytes, then the random tail past the version/variant nibbles.
	var raw [12]byte
	copy(raw[:6], id[0:6])
	copy(raw[6:], id[10:16])

	return hex.EncodeToString(raw[:])
}

// # Validation

// IsValid reports whether s has the shape of an identifier.
func IsValid(s string) bool {
	return hexRegex.MatchString(s)
}

// Normalize lowercases a valid identifier so lookups are case-insensitive.
func Normalize(s string) string {
	return strings.ToLower(s)
}
