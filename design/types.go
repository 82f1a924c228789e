// Package design: document, factor, and relationship types plus sentinel errors.
package design

import "errors"

// Sentinel errors for document ingestion and validation.
var (
	// ErrMissingFactors indicates the document has no "factors" section.
	ErrMissingFactors = errors.New("design: document has no factors section")

	// ErrMissingRelationships indicates the document has no "relationships" section.
	ErrMissingRelationships = errors.New("design: document has no relationships section")

	// ErrEmptyFactorName indicates a factor keyed by the empty string.
	ErrEmptyFactorName = errors.New("design: factor name is empty")

	// ErrDuplicateFactor indicates AddFactor was called twice for the same name.
	ErrDuplicateFactor = errors.New("design: factor already declared")

	// ErrNoCategories indicates a factor with an empty category list.
	ErrNoCategories = errors.New("design: factor declares no categories")

	// ErrLengthMismatch indicates categories and counts differ in length.
	ErrLengthMismatch = errors.New("design: categories and counts length mismatch")

	// ErrNegativeCount indicates a negative observation count.
	ErrNegativeCount = errors.New("design: negative observation count")

	// ErrUnknownFactor indicates a relationship references an undeclared factor.
	ErrUnknownFactor = errors.New("design: relationship references unknown factor")

	// ErrDuplicateParent indicates one child factor nested under multiple parents.
	ErrDuplicateParent = errors.New("design: factor nested under multiple parents")

	// ErrCyclicNesting indicates the nested relationships form a cycle.
	ErrCyclicNesting = errors.New("design: cyclic nesting detected")

	// ErrUnknownRelationship indicates an unrecognized relationship type tag.
	ErrUnknownRelationship = errors.New("design: unknown relationship type")
)

// FactorType classifies the experimental role of a factor.
// It is informational for grammar compilation, with one exception:
// only Classification factors are eligible for approximate-count notation.
type FactorType uint8

const (
	// Experimental marks a treatment or condition factor (e.g. genotype).
	Experimental FactorType = iota
	// Replicate marks a biological or technical replicate factor (e.g. sample).
	Replicate
	// Classification marks a per-observation label factor (e.g. cell type).
	Classification
	// Batch marks a processing-batch factor.
	Batch
)

// factorTypeNames maps FactorType values to their wire-format tags.
var factorTypeNames = [...]string{
	Experimental:   "experimental",
	Replicate:      "replicate",
	Classification: "classification",
	Batch:          "batch",
}

// String returns the wire-format tag for t ("experimental", "replicate", …).
func (t FactorType) String() string {
	if int(t) < len(factorTypeNames) {
		return factorTypeNames[t]
	}

	return "unknown"
}

// DisplayName returns the human-readable role used in experiment cards.
func (t FactorType) DisplayName() string {
	switch t {
	case Experimental:
		return "Treatment"
	case Replicate:
		return "Replicate"
	case Classification:
		return "Observation"
	case Batch:
		return "Batch"
	default:
		return "Factor"
	}
}

// ParseFactorType maps a wire-format tag to its FactorType.
// Unrecognized tags fall back to Experimental; the type is informational
// and an unknown tag should not fail ingestion.
func ParseFactorType(tag string) FactorType {
	for t, name := range factorTypeNames {
		if name == tag {
			return FactorType(t)
		}
	}

	return Experimental
}

// Factor is one categorical experimental variable: an ordered list of
// category labels and, positionally paired, the observation count per
// category. len(Categories) == len(Counts) is a validated invariant.
type Factor struct {
	// Categories holds the distinct level labels in declaration order.
	Categories []string

	// Counts holds the observation count for the category at the same index.
	Counts []int

	// Type records the experimental role of this factor.
	Type FactorType
}

// TotalCount returns the sum of all per-category counts.
func (f *Factor) TotalCount() int {
	var total int
	for _, c := range f.Counts {
		total += c
	}

	return total
}

// Relationship is the sealed union of the three relationship shapes.
// Consumers type-switch over Nested, Classification, and Crossed.
type Relationship interface {
	// Tag returns the wire-format discriminator ("nested", "classification", "crossed").
	Tag() string
}

// Nested declares that every instance of Child belongs to exactly one
// level of Parent. A well-formed document nests a child under at most
// one parent (enforced by Validate).
type Nested struct {
	Parent string
	Child  string
}

// Tag implements Relationship.
func (Nested) Tag() string { return relNested }

// ClassifiedBy declares that Classifier labels observations within Factor
// without establishing containment.
type ClassifiedBy struct {
	Factor     string
	Classifier string
}

// Tag implements Relationship.
func (ClassifiedBy) Tag() string { return relClassification }

// Crossed is recognized on the wire but carries no structure the compiler
// consumes: crossing is expressed implicitly by multiple independent roots.
type Crossed struct {
	Factors []string
}

// Tag implements Relationship.
func (Crossed) Tag() string { return relCrossed }

// Wire-format relationship discriminators.
const (
	relNested         = "nested"
	relClassification = "classification"
	relCrossed        = "crossed"
)

// Document is the root input of the compiler: named factors plus an
// ordered relationship list. It is treated as immutable by all consumers.
type Document struct {
	// Factors maps factor name to its record.
	Factors map[string]*Factor

	// FactorOrder preserves factor declaration order from the source
	// document. Root resolution and crossing order follow it.
	FactorOrder []string

	// Relationships holds relationship records in declaration order.
	Relationships []Relationship
}

// NewDocument returns an empty Document ready for AddFactor / AddRelationship.
func NewDocument() *Document {
	return &Document{Factors: make(map[string]*Factor)}
}

// AddFactor declares a factor under name, keeping declaration order.
// Returns ErrEmptyFactorName or ErrDuplicateFactor on misuse.
func (d *Document) AddFactor(name string, f *Factor) error {
	if name == "" {
		return ErrEmptyFactorName
	}
	if _, exists := d.Factors[name]; exists {
		return ErrDuplicateFactor
	}
	d.Factors[name] = f
	d.FactorOrder = append(d.FactorOrder, name)

	return nil
}

// AddRelationship appends r to the relationship list.
func (d *Document) AddRelationship(r Relationship) {
	d.Relationships = append(d.Relationships, r)
}

// Factor returns the record declared under name, if any.
func (d *Document) Factor(name string) (*Factor, bool) {
	f, ok := d.Factors[name]

	return f, ok
}
