package editor

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/chrisuehlinger/vibedit/dom"
	"github.com/chrisuehlinger/vibedit/format"
	"github.com/chrisuehlinger/vibedit/internal/logging"
	"github.com/chrisuehlinger/vibedit/surround"
)

type registration struct {
	format  *format.Format
	trigger *Trigger
}

// Surrounder applies named formats to the selection of an input handler.
// With a collapsed selection the format is toggled for the next typed text
// instead.
type Surrounder struct {
	input   *InputHandler
	logger  *log.Logger
	formats map[string]*registration
}

// NewSurrounder returns a surrounder working on input.
func NewSurrounder(input *InputHandler) *Surrounder {
	return &Surrounder{
		input:   input,
		logger:  input.logger,
		formats: make(map[string]*registration),
	}
}

// RegisterFormat makes f available under key. The returned function removes
// it again.
func (s *Surrounder) RegisterFormat(key string, f *format.Format) (unregister func(), err error) {
	if _, ok := s.formats[key]; ok {
		return nil, fmt.Errorf("%w: %s", format.ErrDuplicate, key)
	}
	reg := &registration{format: f, trigger: s.input.Trigger()}
	s.formats[key] = reg
	s.logger.Debug("Registered format", logging.FieldFormat, key)

	return func() {
		if s.formats[key] == reg {
			reg.trigger.Off()
			delete(s.formats, key)
		}
	}, nil
}

// HasFormat reports whether a format is registered under key.
func (s *Surrounder) HasFormat(key string) bool {
	_, ok := s.formats[key]
	return ok
}

// UpdateFormat replaces the format under key with update's result.
func (s *Surrounder) UpdateFormat(key string, update func(*format.Format) *format.Format) error {
	reg, ok := s.formats[key]
	if !ok {
		return fmt.Errorf("%w: %s", format.ErrUnknownFormat, key)
	}
	reg.format = update(reg.format)
	return nil
}

func (s *Surrounder) lookup(key string) (*registration, error) {
	reg, ok := s.formats[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", format.ErrUnknownFormat, key)
	}
	return reg, nil
}

func (s *Surrounder) lookupAll(keys []string) []*format.Format {
	var formats []*format.Format
	for _, key := range keys {
		if reg, ok := s.formats[key]; ok {
			formats = append(formats, reg.format)
		}
	}
	return formats
}

func isSurrounded(rng *dom.Range, base *dom.Element, f *format.Format) bool {
	matcher := surround.BoolMatcher(f)
	return surround.FindClosest(rng.StartContainer(), base, matcher) != nil ||
		surround.FindClosest(rng.EndContainer(), base, matcher) != nil
}

// removeFormats unsurrounds formats, then reformats reformats, threading
// the range through each step.
func removeFormats(rng *dom.Range, base *dom.Element, formats, reformats []*format.Format) (*dom.Range, error) {
	var err error
	for _, f := range formats {
		if rng, err = surround.Unsurround(rng, base, f); err != nil {
			return nil, err
		}
	}
	for _, f := range reformats {
		if rng, err = surround.Reformat(rng, base, f); err != nil {
			return nil, err
		}
	}
	return rng, nil
}

func (s *Surrounder) surroundAndSelect(matches bool, rng *dom.Range, f *format.Format) (*dom.Range, error) {
	base := s.input.Base()
	op, apply := "surround", surround.Surround[string]
	if matches {
		op, apply = "unsurround", surround.Unsurround[string]
	}
	result, err := apply(rng, base, f)
	if err != nil {
		s.logger.Error("Formatting failed", logging.FieldFormat, f.Name, logging.FieldOperation, op, logging.FieldError, err)
		return nil, err
	}
	s.logger.Debug("Formatted selection", logging.FieldFormat, f.Name, logging.FieldOperation, op)
	s.input.Select(result)
	return result, nil
}

// selectInserted returns a range over a freshly typed text node.
func selectInserted(text *dom.Text) (*dom.Range, error) {
	rng := text.AsNode().OwnerDocument().CreateRange()
	if err := rng.SelectNode(text.AsNode()); err != nil {
		return nil, err
	}
	return rng, nil
}

// Surround toggles the format under key on the selection: it is removed
// when the selection starts or ends inside it, and applied otherwise. The
// exclusive formats are removed first. A collapsed selection arms the
// format's trigger, or disarms it when already armed.
func (s *Surrounder) Surround(key string, exclusive ...string) error {
	reg, err := s.lookup(key)
	if err != nil {
		return err
	}
	rng, err := s.input.Range()
	if err != nil {
		return err
	}
	base := s.input.Base()
	exclusives := s.lookupAll(exclusive)

	if rng.Collapsed() {
		if reg.trigger.Active() {
			reg.trigger.Off()
			s.logger.Debug("Trigger cancelled", logging.FieldFormat, key)
			return nil
		}
		reg.trigger.On(func(text *dom.Text) error {
			rng, err := selectInserted(text)
			if err != nil {
				return err
			}
			matches := surround.FindClosest(text.AsNode(), base, surround.BoolMatcher(reg.format)) != nil
			if rng, err = removeFormats(rng, base, exclusives, nil); err != nil {
				return err
			}
			if _, err := s.surroundAndSelect(matches, rng, reg.format); err != nil {
				return err
			}
			return s.input.Selection().CollapseToEnd()
		})
		s.logger.Debug("Trigger armed", logging.FieldFormat, key)
		return nil
	}

	if rng, err = removeFormats(rng, base, exclusives, nil); err != nil {
		return err
	}
	_, err = s.surroundAndSelect(isSurrounded(rng, base, reg.format), rng, reg.format)
	return err
}

// OverwriteSurround applies the format under key on the selection even
// where it is already present, which suits formats with a value such as a
// text colour.
func (s *Surrounder) OverwriteSurround(key string, exclusive ...string) error {
	reg, err := s.lookup(key)
	if err != nil {
		return err
	}
	rng, err := s.input.Range()
	if err != nil {
		return err
	}
	base := s.input.Base()
	exclusives := s.lookupAll(exclusive)

	if rng.Collapsed() {
		reg.trigger.On(func(text *dom.Text) error {
			rng, err := selectInserted(text)
			if err != nil {
				return err
			}
			if rng, err = removeFormats(rng, base, exclusives, nil); err != nil {
				return err
			}
			if _, err := s.surroundAndSelect(false, rng, reg.format); err != nil {
				return err
			}
			return s.input.Selection().CollapseToEnd()
		})
		s.logger.Debug("Trigger armed", logging.FieldFormat, key)
		return nil
	}

	if rng, err = removeFormats(rng, base, exclusives, nil); err != nil {
		return err
	}
	_, err = s.surroundAndSelect(false, rng, reg.format)
	return err
}

// IsSurrounded reports whether the selection starts or ends inside the
// format under key. An armed trigger inverts the answer, since the next
// typed text will be toggled.
func (s *Surrounder) IsSurrounded(key string) bool {
	reg, ok := s.formats[key]
	if !ok {
		return false
	}
	rng, err := s.input.Range()
	if err != nil {
		return false
	}
	surrounded := isSurrounded(rng, s.input.Base(), reg.format)
	if reg.trigger.Active() {
		return !surrounded
	}
	return surrounded
}

// Remove clears the formats under keys from the selection and reformats
// the ones under reformats. With a collapsed selection the removal applies
// to the next typed text.
func (s *Surrounder) Remove(keys []string, reformats []string) error {
	rng, err := s.input.Range()
	if err != nil {
		return err
	}
	base := s.input.Base()

	var active []*registration
	for _, key := range keys {
		reg, ok := s.formats[key]
		if !ok {
			continue
		}
		// A selection may hold the format somewhere in the middle, so every
		// format is cleared. A caret only clears the formats that are on.
		surrounded := !rng.Collapsed() || isSurrounded(rng, base, reg.format)
		if reg.trigger.Active() {
			surrounded = !surrounded
		}
		if surrounded {
			active = append(active, reg)
		}
	}
	reformatting := s.lookupAll(reformats)

	if !rng.Collapsed() {
		formats := make([]*format.Format, 0, len(active))
		for _, reg := range active {
			formats = append(formats, reg.format)
		}
		cleared, err := removeFormats(rng, base, formats, reformatting)
		if err != nil {
			return err
		}
		s.input.Select(cleared)
		s.logger.Debug("Removed formats", logging.FieldCount, len(formats))
		return nil
	}

	var remaining []*format.Format
	for _, reg := range active {
		if reg.trigger.Active() {
			reg.trigger.Off()
			continue
		}
		// Arming marks the format as off for the caret.
		reg.trigger.On(func(*dom.Text) error { return nil })
		remaining = append(remaining, reg.format)
	}

	s.input.OnInsertText(func(text *dom.Text) error {
		rng, err := selectInserted(text)
		if err != nil {
			return err
		}
		cleared, err := removeFormats(rng, base, remaining, reformatting)
		if err != nil {
			return err
		}
		s.input.Select(cleared)
		return s.input.Selection().CollapseToEnd()
	})
	return nil
}
