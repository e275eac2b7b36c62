package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ItemName is a value object representing a valid display name.
// Encapsulates validation rules: 1 <= runes(name) <= 255.
type ItemName string

const (
	minItemNameLength = 1
	maxItemNameLength = 255
)

// NewItemName constructs a valid ItemName or returns an error if constraints are violated.
// Surrounding whitespace is trimmed and inner whitespace runs collapse to one space.
func NewItemName(s string) (ItemName, error) {
	s = strings.Join(strings.Fields(s), " ")
	n := utf8.RuneCountInString(s)
	if n < minItemNameLength {
		return "", fmt.Errorf("name must be at least %d character", minItemNameLength)
	}
	if n > maxItemNameLength {
		return "", fmt.Errorf("name must not exceed %d characters", maxItemNameLength)
	}
	return ItemName(s), nil
}

// String returns the underlying string value.
func (n ItemName) String() string {
	return string(n)
}
