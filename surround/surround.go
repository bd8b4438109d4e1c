package surround

import (
	"fmt"
	"runtime"

	"github.com/chrisuehlinger/vibedit/dom"
)

// Surround applies the format to everything in rng. Existing occurrences of
// the format in and next to the range are unwrapped and fused with the new
// one. It returns a range over the formatted content.
func Surround[T any](rng *dom.Range, base *dom.Element, format *SurroundFormat[T]) (*dom.Range, error) {
	return run(rng, base, format, surroundPolicy)
}

// Unsurround removes the format from everything in rng, keeping it on the
// parts of matched elements that lie outside the range.
func Unsurround[T any](rng *dom.Range, base *dom.Element, format *SurroundFormat[T]) (*dom.Range, error) {
	return run(rng, base, format, unsurroundPolicy)
}

// Reformat rebuilds the occurrences of the format touched by rng in their
// normalized shape. Applying it twice yields the same tree.
func Reformat[T any](rng *dom.Range, base *dom.Element, format *SurroundFormat[T]) (*dom.Range, error) {
	return run(rng, base, format, reformatPolicy)
}

func validate[T any](rng *dom.Range, base *dom.Element, format *SurroundFormat[T]) error {
	if format == nil {
		return fmt.Errorf("%w: nil format", ErrInvalidRange)
	}
	if format.Matcher == nil {
		return fmt.Errorf("%w: %q", ErrNoFormat, format.Name)
	}
	if rng == nil || base == nil {
		return fmt.Errorf("%w: nil range or base", ErrInvalidRange)
	}
	if base.AsNode().ParentNode() == nil {
		return fmt.Errorf("%w: base is detached", ErrInvalidRange)
	}
	for _, point := range []struct {
		node   *dom.Node
		offset int
	}{
		{rng.StartContainer(), rng.StartOffset()},
		{rng.EndContainer(), rng.EndOffset()},
	} {
		if !base.AsNode().Contains(point.node) {
			return fmt.Errorf("%w: range is not inside base", ErrInvalidRange)
		}
		if point.offset < 0 || point.offset > point.node.Length() {
			return fmt.Errorf("%w: offset %d out of bounds", ErrInvalidRange, point.offset)
		}
		if point.node.NodeType() == dom.TextNode && !dom.IsCharBoundary(point.node.NodeValue(), point.offset) {
			return fmt.Errorf("%w: offset %d splits a character", ErrInvalidRange, point.offset)
		}
	}
	return nil
}

func run[T any](rng *dom.Range, base *dom.Element, format *SurroundFormat[T], p policy) (result *dom.Range, err error) {
	if err := validate(rng, base, format); err != nil {
		return nil, err
	}
	if rng.Collapsed() {
		return rng.CloneRange(), nil
	}

	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if _, isRuntime := r.(runtime.Error); !ok || isRuntime {
				panic(r)
			}
			result, err = nil, fmt.Errorf("%w: %s: %w", ErrCallback, format.Name, cause)
		}
	}()

	split, err := splitPartiallySelected(rng)
	if err != nil {
		return nil, err
	}

	root := split.commonAncestor()
	if farthest := FindFarthest(root, base, BoolMatcher(format)); farthest != nil {
		root = farthest.AsNode()
	}

	b := &builder[T]{format: format, base: base, split: split, policy: p}
	forest := b.buildFormattingTree(root)

	a := &applier[T]{format: format, policy: p}
	if err := a.applyForest(forest); err != nil {
		return nil, err
	}

	return split.finish()
}
