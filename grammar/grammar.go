// Package grammar: recursive subtree composition and the top-level combiner.
package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vals/edgram/design"
)

// composer carries the immutable inputs of one compilation through the
// recursion: the document and the formatting policy.
type composer struct {
	doc  *design.Document
	opts Options
}

// Convert compiles doc into its grammar string.
// Returns ErrNilDocument for a nil document and ErrNoRootFactors when the
// relationship structure leaves no anchor factor (cyclic or fully
// classified documents). A single root returns its subtree unmodified;
// multiple roots join with the crossing operator in declaration order.
func Convert(doc *design.Document, opts ...Option) (string, error) {
	// 1. Validate input document.
	if doc == nil {
		return "", ErrNilDocument
	}

	// 2. Apply options.
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 3. Resolve roots; an empty set is a hard failure.
	roots := RootFactors(doc)
	if len(roots) == 0 {
		return "", ErrNoRootFactors
	}

	// 4. Compose each root's subtree.
	c := &composer{doc: doc, opts: o}
	subtrees := make([]string, 0, len(roots))
	for _, root := range roots {
		s, err := c.subtree(root)
		if err != nil {
			return "", err
		}
		subtrees = append(subtrees, s)
	}

	// 5. Combine: one root passes through, several cross.
	if len(subtrees) == 1 {
		return subtrees[0], nil
	}

	return strings.Join(subtrees, CrossingOp), nil
}

// subtree composes the grammar subtree rooted at name: the factor's own
// token, then each nested child subtree in relationship declaration order,
// then the classifier annotation at the rightmost position.
func (c *composer) subtree(name string) (string, error) {
	f, ok := c.doc.Factors[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFactor, name)
	}

	// 1. Format this factor's token. Approximate notation applies only
	//    when requested and the factor is classification-typed.
	approx := c.opts.ApproximateCounts && f.Type == design.Classification
	out := formatFactor(name, f, approx, c.opts.BalanceTolerance)

	// 2. Append nested children, left to right, in declaration order.
	for _, rel := range c.doc.Relationships {
		n, isNested := rel.(design.Nested)
		if !isNested || n.Parent != name {
			continue
		}
		child, err := c.subtree(n.Child)
		if err != nil {
			return "", err
		}
		out += NestingOp + child
	}

	// 3. Append the first classifier annotation, if resolvable.
	annotation, err := c.classifierAnnotation(name)
	if err != nil {
		return "", err
	}
	out += annotation

	return out, nil
}

// classifierAnnotation renders " : Name(k)" for the first classification
// relationship targeting name. The classifier renders from its category
// count only — never approximate, never unbalanced. A classifier missing
// from the document yields no annotation unless StrictClassifiers is set.
func (c *composer) classifierAnnotation(name string) (string, error) {
	for _, rel := range c.doc.Relationships {
		cl, isClassification := rel.(design.ClassifiedBy)
		if !isClassification || cl.Factor != name {
			continue
		}
		f, declared := c.doc.Factors[cl.Classifier]
		if !declared {
			if c.opts.StrictClassifiers {
				return "", fmt.Errorf("%w: classifier %q", ErrUnknownFactor, cl.Classifier)
			}
			// Partial classification metadata: skip the annotation.
			return "", nil
		}

		return ClassifierOp + CamelCase(cl.Classifier) + "(" + strconv.Itoa(len(f.Categories)) + ")", nil
	}

	return "", nil
}
