// Package grammar compiles a design.Document into the compact edviz
// grammar string: factor tokens joined by nesting (" > "), classification
// (" : "), and crossing (" × ") operators.
//
// 🚀 What does Convert do?
//
//  1. Resolve roots: factors that are neither nested children nor
//     classifiers, in document declaration order.
//  2. Compose each root's subtree recursively: format the factor token,
//     append nested children left to right, then append the classifier
//     annotation (if any) at the rightmost position of the subtree.
//  3. Join multiple roots with the crossing operator.
//
// Token formatting:
//
//   - Balanced counts (within tolerance of the mean): "Name(k)" where k
//     is the number of categories.
//   - Unbalanced counts: "Name[c1|c2|...|cn]" in category order.
//   - Approximate notation ("~1.5k", "~2k", "~1.2m") applies only to
//     Classification-typed factors, and only when explicitly requested
//     via WithApproximateCounts.
//   - Factor names are normalized to delimiter-free CamelCase; the token
//     syntax has no place for whitespace or underscores.
//
// A classifier annotation always renders as "Name(k)" from its category
// count — never approximate, never unbalanced. Classification is about
// label cardinality, not count distribution.
//
// Convert is a pure function of (document, options): no I/O, no shared
// state, safe to call concurrently.
//
// Complexity:
//
//   - Time:   O(F·R) — each subtree node scans the relationship list
//   - Memory: O(depth) recursion, O(F) for the root set
//
// Options:
//
//   - WithApproximateCounts()    enable ~k/~m notation for classification factors.
//   - WithBalanceTolerance(tol)  override the 10% balance tolerance.
//   - WithStrictClassifiers()    fail on a dangling classifier reference
//     instead of silently skipping the annotation.
//
// Errors:
//
//   - ErrNilDocument    if the document is nil.
//   - ErrNoRootFactors  if every factor is a nested child or a classifier.
//   - ErrUnknownFactor  if composition reaches an undeclared factor.
package grammar
