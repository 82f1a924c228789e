// Package grammar: options, operators, and sentinel errors for compilation.
package grammar

import "errors"

// Grammar operators. A nesting chain reads "Parent(2) > Child(4)",
// a classifier annotation "Sample(4) : CellType(3)", and independent
// roots cross as "RootA(2) × RootB(3)".
const (
	// NestingOp joins a parent token with each child subtree.
	NestingOp = " > "

	// ClassifierOp appends a classifier annotation to a subtree.
	ClassifierOp = " : "

	// CrossingOp joins independent root subtrees.
	CrossingOp = " × "
)

// DefaultBalanceTolerance is the relative deviation from the mean within
// which per-category counts still render in the balanced "Name(k)" form.
const DefaultBalanceTolerance = 0.1

// approxThreshold is the smallest count eligible for ~k/~m notation.
const approxThreshold = 1000

// Sentinel errors for grammar compilation.
var (
	// ErrNilDocument indicates a nil document was passed to Convert.
	ErrNilDocument = errors.New("grammar: document is nil")

	// ErrNoRootFactors indicates every factor is either a nested child or
	// a classifier — a cyclic or fully annotated document with no anchor.
	ErrNoRootFactors = errors.New("grammar: no root factors found")

	// ErrUnknownFactor indicates composition reached a factor absent from
	// the document (a nested child, or a classifier under WithStrictClassifiers).
	ErrUnknownFactor = errors.New("grammar: unknown factor")
)

// Option configures optional behavior of Convert.
type Option func(*Options)

// Options holds the formatting policy for one compilation.
// It is carried through the recursion as an immutable value; there is
// no process-wide state.
type Options struct {
	// ApproximateCounts enables ~k/~m notation for counts ≥ 1000 on
	// Classification-typed factors. All other factor types always
	// render exact counts.
	ApproximateCounts bool

	// BalanceTolerance is the relative tolerance of the balance test.
	// Defaults to DefaultBalanceTolerance.
	BalanceTolerance float64

	// StrictClassifiers makes a classifier reference to an undeclared
	// factor a compilation error instead of a silently skipped annotation.
	StrictClassifiers bool
}

// DefaultOptions returns the default formatting policy:
// exact counts, 10% balance tolerance, lenient classifier handling.
func DefaultOptions() Options {
	return Options{
		ApproximateCounts: false,
		BalanceTolerance:  DefaultBalanceTolerance,
		StrictClassifiers: false,
	}
}

// WithApproximateCounts returns an Option enabling ~k/~m notation for
// large counts on Classification-typed factors.
func WithApproximateCounts() Option {
	return func(o *Options) {
		o.ApproximateCounts = true
	}
}

// WithBalanceTolerance returns an Option overriding the balance tolerance.
// Non-positive values are ignored (the default is retained).
func WithBalanceTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.BalanceTolerance = tol
		}
	}
}

// WithStrictClassifiers returns an Option that turns a dangling classifier
// reference into ErrUnknownFactor.
func WithStrictClassifiers() Option {
	return func(o *Options) {
		o.StrictClassifiers = true
	}
}
