// Package design: structural validation of a Document.
//
// Validate enforces the invariants the compiler assumes:
//
//   - every factor declares at least one category
//   - categories and counts are positionally paired (equal length)
//   - all counts are non-negative
//   - nested relationships reference declared factors only
//   - no child factor is nested under more than one parent
//   - nested relationships are acyclic
//
// A dangling classifier reference is accepted on purpose: classification
// metadata is often partial, and the compiler treats the missing factor
// as "no annotation" rather than an error.
//
// Complexity:
//
//   - Time:   O(F + R) for structural checks, O(F + R) for cycle detection
//   - Memory: O(F) for the coloring map
package design

import "fmt"

// Visitation states for nesting cycle detection.
const (
	white = iota // not visited
	gray         // on the current descent path
	black        // fully explored
)

// Validate checks the document's structural invariants, returning the
// first violation found. A nil error means the document is safe to compile.
func (d *Document) Validate() error {
	// 1. Per-factor invariants, in declaration order for stable messages.
	for _, name := range d.FactorOrder {
		f := d.Factors[name]
		if len(f.Categories) == 0 {
			return fmt.Errorf("%w: %q", ErrNoCategories, name)
		}
		if len(f.Categories) != len(f.Counts) {
			return fmt.Errorf("%w: %q has %d categories and %d counts",
				ErrLengthMismatch, name, len(f.Categories), len(f.Counts))
		}
		for i, c := range f.Counts {
			if c < 0 {
				return fmt.Errorf("%w: %q count %d is %d", ErrNegativeCount, name, i, c)
			}
		}
	}

	// 2. Relationship references and the single-parent rule.
	parentOf := make(map[string]string, len(d.Relationships))
	for _, rel := range d.Relationships {
		n, ok := rel.(Nested)
		if !ok {
			continue
		}
		if _, declared := d.Factors[n.Parent]; !declared {
			return fmt.Errorf("%w: parent %q", ErrUnknownFactor, n.Parent)
		}
		if _, declared := d.Factors[n.Child]; !declared {
			return fmt.Errorf("%w: child %q", ErrUnknownFactor, n.Child)
		}
		if prev, nested := parentOf[n.Child]; nested && prev != n.Parent {
			return fmt.Errorf("%w: %q under both %q and %q",
				ErrDuplicateParent, n.Child, prev, n.Parent)
		}
		parentOf[n.Child] = n.Parent
	}

	// 3. Acyclicity of the nesting hierarchy.
	return d.detectNestingCycle()
}

// detectNestingCycle colors factors white/gray/black while descending the
// nested child edges; meeting a gray factor again means a back-edge.
func (d *Document) detectNestingCycle() error {
	// Child adjacency, declaration order.
	children := make(map[string][]string, len(d.Factors))
	for _, rel := range d.Relationships {
		if n, ok := rel.(Nested); ok {
			children[n.Parent] = append(children[n.Parent], n.Child)
		}
	}

	state := make(map[string]int, len(d.Factors))
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case gray:
			return fmt.Errorf("%w: at %q", ErrCyclicNesting, name)
		case black:
			return nil
		}
		state[name] = gray
		for _, child := range children[name] {
			if err := visit(child); err != nil {
				return err
			}
		}
		state[name] = black

		return nil
	}

	for _, name := range d.FactorOrder {
		if state[name] == white {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}
