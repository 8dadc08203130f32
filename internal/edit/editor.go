package edit

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ciricc/go-transcript-player/internal/notify"
	"github.com/ciricc/go-transcript-player/internal/transcript"
	"github.com/ciricc/go-transcript-player/internal/validate"
)

var (
	ErrNoSession = errors.New("no edit session open")
)

// Session is an in-progress correction of one word.
type Session struct {
	Index       int
	PendingText string
}

// Editor owns the single edit session over a transcript store. Rejected
// changes go to the sink and leave the session open.
//
// Editor is not safe for concurrent use.
type Editor struct {
	store   *transcript.Store
	sink    notify.Sink
	log     *slog.Logger
	session *Session
}

func NewEditor(
	store *transcript.Store,
	sink notify.Sink,
	log *slog.Logger,
) *Editor {
	return &Editor{
		store: store,
		sink:  sink,
		log:   log.With("method", "editor"),
	}
}

// Begin opens a session on word index. An already open session is committed
// first.
func (e *Editor) Begin(index int) error {
	w, err := e.store.Get(index)
	if err != nil {
		return err
	}

	if err := e.Commit(); err != nil {
		return fmt.Errorf("commit previous edit: %w", err)
	}

	e.session = &Session{Index: index, PendingText: w.Text}
	e.log.Debug("edit session opened", "index", index, "text", w.Text)
	return nil
}

// Change proposes new text for the open session. It reports whether the text
// was accepted; rejections are sent to the sink and are not errors.
func (e *Editor) Change(proposed string) (bool, error) {
	if e.session == nil {
		return false, ErrNoSession
	}

	if err := validate.Word(proposed); err != nil {
		var vErr *validate.Error
		if errors.As(err, &vErr) {
			e.log.Debug("edit rejected", "index", e.session.Index, "kind", vErr.Kind)
			e.sink.Notify(notify.Event{
				Kind:     vErr.Kind,
				Message:  vErr.Message,
				Index:    e.session.Index,
				Proposed: proposed,
			})
			return false, nil
		}
		return false, err
	}

	e.session.PendingText = proposed
	return true, nil
}

// Commit writes the pending text to the store and closes the session. It is a
// no-op when no session is open.
func (e *Editor) Commit() error {
	if e.session == nil {
		return nil
	}

	s := e.session
	if err := e.store.SetText(s.Index, s.PendingText); err != nil {
		return err
	}
	e.session = nil

	e.log.Debug("edit committed", "index", s.Index, "text", s.PendingText)
	return nil
}

// Session returns a copy of the open session.
func (e *Editor) Session() (Session, bool) {
	if e.session == nil {
		return Session{}, false
	}
	return *e.session, true
}

// DisplayText is the pending text for the word under edit, the stored text
// otherwise.
func (e *Editor) DisplayText(index int) (string, error) {
	w, err := e.store.Get(index)
	if err != nil {
		return "", err
	}
	if e.session != nil && e.session.Index == index {
		return e.session.PendingText, nil
	}
	return w.Text, nil
}
