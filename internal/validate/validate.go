package validate

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxWordLength is the longest accepted word, in characters.
const MaxWordLength = 44

var (
	ErrEmptyWord          = errors.New("empty word")
	ErrContainsWhitespace = errors.New("word contains whitespace")
	ErrTooLong            = errors.New("word too long")
)

// Kind identifies which rule rejected an edit.
type Kind string

const (
	KindEmptyWord          Kind = "EmptyWord"
	KindContainsWhitespace Kind = "ContainsWhitespace"
	KindTooLong            Kind = "TooLong"
)

// Error is a rejected word edit. It unwraps to one of the sentinel errors.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindEmptyWord:
		return ErrEmptyWord
	case KindContainsWhitespace:
		return ErrContainsWhitespace
	case KindTooLong:
		return ErrTooLong
	default:
		return nil
	}
}

// Word checks a proposed word text. Rules are applied in order: empty,
// whitespace, length. A nil result means the text is acceptable.
func Word(proposed string) error {
	if strings.TrimSpace(proposed) == "" {
		return &Error{Kind: KindEmptyWord, Message: "You cannot delete a word."}
	}

	if strings.IndexFunc(proposed, unicode.IsSpace) >= 0 {
		return &Error{Kind: KindContainsWhitespace, Message: "You cannot add spaces."}
	}

	if utf8.RuneCountInString(proposed) > MaxWordLength {
		return &Error{Kind: KindTooLong, Message: "Word length cannot exceed 45 characters."}
	}

	return nil
}

// KindOf extracts the rejection kind from err, if it is a validation error.
func KindOf(err error) (Kind, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr.Kind, true
	}
	return "", false
}
