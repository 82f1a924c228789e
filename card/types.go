// Package card: input envelope, options, and sentinel errors.
package card

import (
	"errors"
	"time"
)

// DefaultToolVersion is stamped into the frontmatter when the input
// does not carry a version of its own.
const DefaultToolVersion = "0.1.0"

// ErrNilDesign indicates the input carries no design document.
var ErrNilDesign = errors.New("card: input has no design document")

// Context captures optional experimental background for the card.
type Context struct {
	// ExperimentType names the assay or study type (e.g. "scRNA-seq").
	ExperimentType string `json:"experiment_type"`

	// ResearchQuestion states what the experiment was designed to answer.
	ResearchQuestion string `json:"research_question"`

	// FactorDescriptions maps factor names to free-form descriptions.
	FactorDescriptions map[string]string `json:"factor_descriptions"`
}

// Option configures optional behavior of Generate.
type Option func(*Options)

// Options holds generation-time settings.
type Options struct {
	// Now supplies the analysis date; defaults to time.Now.
	// Injectable for deterministic output in tests.
	Now func() time.Time
}

// DefaultOptions returns the default generation settings (wall clock).
func DefaultOptions() Options {
	return Options{Now: time.Now}
}

// WithClock returns an Option that overrides the card's clock.
// Passing nil has no effect.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}
