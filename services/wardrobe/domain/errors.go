package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every input rejection. Use errors.Is() to check
// for the whole family, or for one of the specific sentinels below.
var ErrValidation = errors.New("validation failed")

// Sentinel errors for the wardrobe domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrOutfitNotFound indicates the requested outfit does not exist.
	ErrOutfitNotFound = errors.New("outfit not found")

	// ErrInvalidItem indicates item fields violate domain constraints.
	ErrInvalidItem = validation("invalid item")

	// ErrInvalidOutfit indicates outfit fields violate domain constraints.
	ErrInvalidOutfit = validation("invalid outfit")

	// ErrEmptyOutfit indicates an attempt to save an outfit with no items.
	ErrEmptyOutfit = validation("outfit has no items")

	// ErrNotEnoughItems indicates the catalog is too small for a suggestion.
	ErrNotEnoughItems = validation("not enough items to suggest an outfit")

	// ErrInvalidImport indicates an import document is malformed.
	ErrInvalidImport = validation("invalid import format")

	// ErrInvalidVocabulary indicates an unknown vocabulary kind or a blank value.
	ErrInvalidVocabulary = validation("invalid vocabulary value")

	// ErrInvalidImage indicates an image payload could not be decoded.
	ErrInvalidImage = validation("invalid image")

	// ErrInvalidFilter indicates malformed filter parameters.
	ErrInvalidFilter = validation("invalid filter")

	// ErrPersistence indicates the catalog could not be read or written.
	// In-memory state is left at its last saved value.
	ErrPersistence = errors.New("persistence failure")

	// ErrClassifierUnavailable indicates no AI provider is configured.
	ErrClassifierUnavailable = errors.New("no image classifier configured")

	// ErrClassificationFailed indicates the AI provider could not label an image.
	ErrClassificationFailed = errors.New("image classification failed")
)

type validationError struct{ msg string }

func validation(msg string) error { return &validationError{msg: msg} }

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

// Invalid wraps cause under sentinel, keeping both visible to errors.Is.
func Invalid(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
