package transcript

import (
	"errors"
	"fmt"
	"time"

	"github.com/ciricc/go-transcript-player/internal/model/word"
	"github.com/samber/lo"
)

var (
	ErrIndexOutOfRange = errors.New("word index out of range")
)

// Store holds the ordered transcript. Its shape (word count and timings) is
// fixed at construction; only word text can change.
//
// Store is not safe for concurrent use; the engine serializes access.
type Store struct {
	words []word.Word
}

// NewStore copies words into a new store.
func NewStore(words []word.Word) *Store {
	return &Store{
		words: append([]word.Word(nil), words...),
	}
}

func (s *Store) Len() int {
	return len(s.words)
}

// Get returns the word at index i.
func (s *Store) Get(i int) (word.Word, error) {
	if err := s.checkIndex(i); err != nil {
		return word.Word{}, err
	}
	return s.words[i], nil
}

// SetText replaces the text of word i. Timings are left untouched. The text
// is expected to have passed validation already.
func (s *Store) SetText(i int, text string) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.words[i].Text = text
	return nil
}

// TotalDuration is the latest word end, or 0 for an empty transcript.
func (s *Store) TotalDuration() time.Duration {
	return lo.Reduce(s.words, func(acc time.Duration, w word.Word, _ int) time.Duration {
		return max(acc, w.End())
	}, 0)
}

// Words returns a copy of the transcript.
func (s *Store) Words() []word.Word {
	return append([]word.Word(nil), s.words...)
}

func (s *Store) checkIndex(i int) error {
	if i < 0 || i >= len(s.words) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(s.words))
	}
	return nil
}
