// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm provides Unicode-aware text folding for keyword matching.
//
// # Why NFKC?
//
// Provider titles and channel names routinely carry stylized Unicode
// (fullwidth letters, ligatures, compatibility forms). NFKC normalization
// collapses those to their plain equivalents before the safety keyword
// matching runs, so "ｈｏｒｒｏｒ" matches "horror". This does not change the
// substring semantics of the filter — it only canonicalizes its input.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fold returns the NFKC-normalized, lowercased form of text.
func Fold(text string) string {
	return strings.ToLower(norm.NFKC.String(text))
}
