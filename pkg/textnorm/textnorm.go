// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes free-text names before they are compared or
// stored.
//
// # Usage
//
// Pen and barn names are typed by farm staff, often with a mix of composed and
// decomposed Vietnamese diacritics. Two names that render identically must
// collide on the unique constraint, so every name goes through [Name] first.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name returns s in Unicode NFC form with surrounding whitespace removed and
// internal runs of whitespace collapsed to a single space.
func Name(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
