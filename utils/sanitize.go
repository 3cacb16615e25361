package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripper = bluemonday.StrictPolicy()

// SanitizeText strips every tag from user text and returns it as plain text,
// so entities such as &amp; do not inflate its length.
func SanitizeText(input string) string {
	return strings.TrimSpace(html.UnescapeString(stripper.Sanitize(input)))
}
