package core

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a service failure so callers can branch on the category
// without parsing message text.
type Kind string

const (
	// KindValidation: malformed or missing input; Messages lists every
	// violation found, not just the first.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindInvalidArgument: a pure computation was handed an out-of-range value.
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	// KindReferenceNotFound: a referenced client or item id does not resolve,
	// or the item is inactive.
	KindReferenceNotFound Kind = "REFERENCE_NOT_FOUND"
	// KindDuplicateKey: invoice number or item code collision, whether caught
	// by the pre-check or by the storage constraint at commit.
	KindDuplicateKey Kind = "DUPLICATE_KEY"
	// KindNotFound: the operation's target record does not exist.
	KindNotFound Kind = "NOT_FOUND"
	// KindStorage: transaction or commit failure not otherwise classified.
	KindStorage Kind = "STORAGE_ERROR"
)

// Error is the structured failure every service operation returns: a kind
// plus one or more human-readable messages.
type Error struct {
	Kind     Kind
	Messages []string
	cause    error
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *Error) Unwrap() error { return e.cause }

func newError(kind Kind, messages ...string) *Error {
	return &Error{Kind: kind, Messages: messages}
}

func validationError(violations []string) *Error {
	return &Error{Kind: KindValidation, Messages: violations}
}

func invalidArgumentf(format string, args ...any) *Error {
	return newError(KindInvalidArgument, fmt.Sprintf(format, args...))
}

func referenceNotFoundf(format string, args ...any) *Error {
	return newError(KindReferenceNotFound, fmt.Sprintf(format, args...))
}

func duplicateKeyf(format string, args ...any) *Error {
	return newError(KindDuplicateKey, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) *Error {
	return newError(KindNotFound, fmt.Sprintf(format, args...))
}

// storageError wraps an unclassified storage failure so errors.Is/As still
// reach the underlying pgx error.
func storageError(err error) *Error {
	return &Error{Kind: KindStorage, Messages: []string{err.Error()}, cause: err}
}

// KindOf returns the Kind carried by err, or the empty string when err does
// not wrap a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsValidation(err error) bool        { return KindOf(err) == KindValidation }
func IsInvalidArgument(err error) bool   { return KindOf(err) == KindInvalidArgument }
func IsReferenceNotFound(err error) bool { return KindOf(err) == KindReferenceNotFound }
func IsDuplicateKey(err error) bool      { return KindOf(err) == KindDuplicateKey }
func IsNotFound(err error) bool          { return KindOf(err) == KindNotFound }
func IsStorage(err error) bool           { return KindOf(err) == KindStorage }
