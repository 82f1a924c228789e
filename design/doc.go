// Package design defines the experimental-design document model — factors,
// per-category observation counts, and the relationships between factors —
// together with JSON ingestion and structural validation.
//
// A Document maps factor names to Factor records and carries an ordered
// sequence of Relationship values. Factor declaration order is preserved
// on ingestion (JSON objects are order-scanned, not just unmarshalled),
// because it determines root ordering and crossing order downstream.
//
// Key features:
//   - Factor: ordered categories, positionally paired counts, FactorType
//   - Relationship: a sealed union — Nested, Classification, Crossed
//   - Parse / ParseBytes / ParseFile: JSON ingestion, declaration order kept
//   - Validate: length mismatches, negative counts, duplicate parents,
//     unknown factor references, cyclic nesting
//
// Validation is deliberately lenient in exactly one place: a classification
// relationship whose classifier is not declared as a factor is accepted.
// Partially specified classification metadata is common, and downstream
// consumers treat the dangling reference as "no annotation".
//
// Errors:
//
//   - ErrMissingFactors        - document has no "factors" section.
//   - ErrMissingRelationships  - document has no "relationships" section.
//   - ErrEmptyFactorName       - a factor is keyed by the empty string.
//   - ErrDuplicateFactor       - AddFactor called twice for one name.
//   - ErrNoCategories          - a factor declares zero categories.
//   - ErrLengthMismatch        - categories and counts differ in length.
//   - ErrNegativeCount         - a count is negative.
//   - ErrUnknownFactor         - a nested relationship names an undeclared factor.
//   - ErrDuplicateParent       - one child is nested under two parents.
//   - ErrCyclicNesting         - the nested relationships form a cycle.
//   - ErrUnknownRelationship   - a relationship carries an unrecognized type tag.
package design
