// Package grammar: root factor resolution.
package grammar

import "github.com/vals/edgram/design"

// RootFactors returns the factors that anchor the hierarchy: those that
// are neither the child of a nested relationship nor the classifier of a
// classification relationship. Crossed records are recognized but exclude
// nothing — crossing is structural, expressed by multiple roots.
//
// Order follows the document's factor declaration order, which makes the
// crossing order of the final grammar string deterministic.
func RootFactors(doc *design.Document) []string {
	// 1. Collect the excluded sets from the relationship list.
	children := make(map[string]struct{}, len(doc.Relationships))
	classifiers := make(map[string]struct{}, len(doc.Relationships))
	for _, rel := range doc.Relationships {
		switch r := rel.(type) {
		case design.Nested:
			children[r.Child] = struct{}{}
		case design.ClassifiedBy:
			classifiers[r.Classifier] = struct{}{}
		case design.Crossed:
			// No exclusion: crossed factors may still be roots.
		}
	}

	// 2. Subtract, preserving declaration order.
	roots := make([]string, 0, len(doc.FactorOrder))
	for _, name := range doc.FactorOrder {
		if _, isChild := children[name]; isChild {
			continue
		}
		if _, isClassifier := classifiers[name]; isClassifier {
			continue
		}
		roots = append(roots, name)
	}

	return roots
}
