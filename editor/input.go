// Package editor drives formatting from an editing session: a base element,
// its document selection and text typed at the caret.
package editor

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/chrisuehlinger/vibedit/dom"
	"github.com/chrisuehlinger/vibedit/internal/logging"
)

// ErrNoSelection is returned when the document has no selection range.
var ErrNoSelection = errors.New("no selection")

// InsertHandler is called with the text node holding freshly typed text.
type InsertHandler func(text *dom.Text) error

// InputHandler inserts typed text at the caret of a base element and hands
// it to armed triggers.
type InputHandler struct {
	base     *dom.Element
	logger   *log.Logger
	triggers []*Trigger
	once     []InsertHandler
}

// NewInputHandler returns an input handler for base. A nil logger uses the
// default logger.
func NewInputHandler(base *dom.Element, logger *log.Logger) *InputHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &InputHandler{base: base, logger: logger}
}

// Base returns the element being edited.
func (h *InputHandler) Base() *dom.Element {
	return h.base
}

// Selection returns the selection of the base's document.
func (h *InputHandler) Selection() *dom.Selection {
	return h.base.AsNode().OwnerDocument().GetSelection()
}

// Range returns the current selection range.
func (h *InputHandler) Range() (*dom.Range, error) {
	sel := h.Selection()
	if sel.RangeCount() == 0 {
		return nil, ErrNoSelection
	}
	return sel.GetRangeAt(0)
}

// Select makes rng the current selection.
func (h *InputHandler) Select(rng *dom.Range) {
	h.Selection().SetRange(rng)
}

// Trigger returns a new trigger fed by this handler.
func (h *InputHandler) Trigger() *Trigger {
	t := &Trigger{}
	h.triggers = append(h.triggers, t)
	return t
}

// OnInsertText registers a handler for the next insertion only.
func (h *InputHandler) OnInsertText(handler InsertHandler) {
	h.once = append(h.once, handler)
}

func (h *InputHandler) pending() bool {
	if len(h.once) > 0 {
		return true
	}
	for _, t := range h.triggers {
		if t.Active() {
			return true
		}
	}
	return false
}

// InsertText types data at the caret, replacing any selected content. When a
// trigger is armed, data goes into a text node of its own which is passed to
// the armed triggers and one-shot handlers before the caret moves after it.
func (h *InputHandler) InsertText(data string) error {
	rng, err := h.Range()
	if err != nil {
		return err
	}
	if !rng.Collapsed() {
		if err := rng.DeleteContents(); err != nil {
			return err
		}
	}

	if !h.pending() {
		return h.insertPlain(rng, data)
	}

	doc := h.base.AsNode().OwnerDocument()
	text := doc.CreateTextNode(data)
	if err := rng.InsertNode(text); err != nil {
		return err
	}
	if err := h.Selection().Collapse(text, len(data)); err != nil {
		return err
	}

	var handlers []InsertHandler
	for _, t := range h.triggers {
		if handler := t.consume(); handler != nil {
			handlers = append(handlers, handler)
		}
	}
	handlers = append(handlers, h.once...)
	h.once = nil

	h.logger.Debug("Insert with handlers", logging.FieldText, data, logging.FieldCount, len(handlers))

	var errs []error
	for _, handler := range handlers {
		if err := handler(text.AsText()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *InputHandler) insertPlain(rng *dom.Range, data string) error {
	container, offset := rng.StartContainer(), rng.StartOffset()
	if text := container.AsText(); text != nil {
		text.InsertData(offset, data)
		return h.Selection().Collapse(container, offset+len(data))
	}
	if offset > 0 {
		if text := container.ChildAt(offset - 1).AsText(); text != nil {
			text.AppendData(data)
			return h.Selection().Collapse(text.AsNode(), text.Length())
		}
	}
	text := container.OwnerDocument().CreateTextNode(data)
	if err := rng.InsertNode(text); err != nil {
		return err
	}
	return h.Selection().Collapse(text, len(data))
}
