// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package dataobject

import (
	"errors"
	"regexp"
)

var (
	// ErrNotFound is returned when a slug does not match any registered class
	ErrNotFound = errors.New("object type not found")
	// ErrInvalidSlug is returned for slugs with characters other than letters, digits, '_' and '-'
	ErrInvalidSlug = errors.New("invalid object slug")
	// ErrDuplicateSlug is returned when two different classes share a slug
	ErrDuplicateSlug = errors.New("duplicate object slug")
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidSlug returns true if slug only consists of letters, digits, '_' and '-'
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}
