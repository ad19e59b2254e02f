package errors

import (
	"strings"
	"unicode"
)

// maxPersonIDLength bounds ids accepted from the CLI and the HTTP API.
const maxPersonIDLength = 128

// ValidatePersonID rejects ids that cannot appear in a dataset: empty
// strings, control characters, separators and oversized values. It does not
// check that the person exists.
func ValidatePersonID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "person id cannot be empty")
	}
	if len(id) > maxPersonIDLength {
		return New(ErrCodeInvalidInput, "person id too long (max %d characters)", maxPersonIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "person id contains invalid characters")
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "person id cannot contain path separators")
	}
	return nil
}

// ValidateDataDir checks a dataset directory argument. Relative and absolute
// paths are both allowed; only empty and NUL-bearing values are rejected.
func ValidateDataDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidInput, "data directory cannot be empty")
	}
	if strings.ContainsRune(dir, '\x00') {
		return New(ErrCodeInvalidInput, "data directory contains invalid characters")
	}
	return nil
}
