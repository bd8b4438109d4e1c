package surround

import (
	"fmt"
)

type applier[T any] struct {
	format *SurroundFormat[T]
	policy policy
}

// applyForest applies the format to a list of sibling tree nodes, children
// first. Wrapping a formatting node changes the indices of the formatting
// nodes after it, so each level carries a running shift.
func (a *applier[T]) applyForest(nodes []TreeNode[T]) error {
	shift := 0
	for _, node := range nodes {
		if err := a.applyForest(node.Children()); err != nil {
			return err
		}

		fn, ok := node.(*FormattingNode[T])
		if !ok {
			continue
		}
		fn.flat = fn.flat.shift(shift)
		if !a.policy.applies(fn) {
			continue
		}
		delta, err := a.applyNode(fn)
		if err != nil {
			return err
		}
		shift += delta
	}
	return nil
}

// applyNode formats one node and returns the change in its parent's child
// count.
func (a *applier[T]) applyNode(node *FormattingNode[T]) (int, error) {
	covered := node.flat.Len()

	if a.format.Formatter != nil {
		wrapped, err := a.format.Formatter(node)
		if err != nil {
			return 0, fmt.Errorf("%w: %s formatter: %w", ErrCallback, a.format.Name, err)
		}
		if !wrapped {
			return 0, nil
		}
		return 1 - covered, nil
	}

	if a.format.SurroundElement == nil {
		return 0, nil
	}
	if err := node.Surround(a.format.SurroundElement.CloneNode(false)); err != nil {
		return 0, err
	}
	return 1 - covered, nil
}
