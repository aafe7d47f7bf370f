// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommend

import (
	"strings"

	"github.com/taibuivan/emoticam/internal/platform/textnorm"
)

// # Safety Screening
//
// Both classifiers are pure, deterministic, total functions over the
// concatenated title + description + channel text of one video. They have
// no failure mode and no I/O.

// unsafeKeywords is the fixed denylist of terms that mark content as not
// child-safe when they appear anywhere in the video text.
var unsafeKeywords = []string{
	"scary",
	"horror",
	"violence",
	"blood",
	"death",
	"kill",
	"weapon",
	"gun",
	"knife",
	"adult",
	"mature",
	"inappropriate",
	"explicit",
	"crude",
	"vulgar",
	"offensive",
	"monster",
	"nightmare",
	"creepy",
	"dark",
	"evil",
	"demon",
	"ghost",
	"zombie",
}

// educationalKeywords is the fixed allowlist of pedagogical terms.
var educationalKeywords = []string{
	"learn",
	"education",
	"teach",
	"school",
	"abc",
	"alphabet",
	"number",
	"count",
	"color",
	"shape",
	"song",
	"nursery",
	"kids",
	"children",
	"toddler",
	"preschool",
	"kindergarten",
	"educational",
	"learning",
	"lesson",
	"story",
	"book",
	"read",
}

// trustedChannels is a fixed list of channel-name fragments that mark a
// source as educational regardless of keyword hits.
var trustedChannels = []string{
	"super simple songs",
	"sesame street",
	"pbs kids",
	"educational",
	"learn",
	"kids",
	"children",
	"nursery",
	"preschool",
	"kindergarten",
	"baby",
	"toddler",
}

// combine folds one video's visible text into a single haystack.
func combine(title, description, channel string) string {
	return textnorm.Fold(title + " " + description + " " + channel)
}

// IsSafe reports whether the video's combined text is free of denylisted terms.
//
// # Known Limitation
//
// This is a DEFAULT-ALLOW model: any content that simply avoids the
// denylisted words passes safety screening. There is no allowlist gate for
// safety (only for "educational"). This behavior is carried forward
// deliberately from the product's original screening rules; strengthening
// it to allowlist-only is an open product question, not a code decision.
func IsSafe(title, description, channel string) bool {
	folded := combine(title, description, channel)
	for _, keyword := range unsafeKeywords {
		if strings.Contains(folded, keyword) {
			return false
		}
	}
	return true
}

// IsEducational reports whether the video's combined text contains a
// pedagogical keyword or references a trusted channel fragment.
func IsEducational(title, description, channel string) bool {
	folded := combine(title, description, channel)
	for _, keyword := range educationalKeywords {
		if strings.Contains(folded, keyword) {
			return true
		}
	}
	for _, fragment := range trustedChannels {
		if strings.Contains(folded, fragment) {
			return true
		}
	}
	return false
}
