package utils

import (
	"math"
	"mime"
	"regexp"
	"strings"
)

// textContentTypePatterns is a slice of regular expressions that match content types
// considered to be text-based. This includes "text/*", JSON, XML-ish types, and
// form-encoded payloads.
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile("^application/json$"),
	regexp.MustCompile(`^application/(.+\+)?xml$`),
	regexp.MustCompile("^application/x-www-form-urlencoded$"),
}

// SafeUint64ToInt64 converts a uint64 value to an int64 safely,
// ensuring that the value does not exceed the maximum limit of int64.
func SafeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}

// IsTextContentType checks if the given content type represents a text-based format.
// It supports common text content types like "text/*", "application/json", and XML variants.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}
