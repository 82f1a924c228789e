// Package card: the JSON input envelope for card generation.
package card

import (
	"encoding/json"
	"fmt"

	"github.com/vals/edgram/design"
)

// Input is the card generator's input: dataset metadata, the compiled
// grammar string, an optional diagram, and the design document itself.
type Input struct {
	// H5adFile is the source dataset path, recorded verbatim.
	H5adFile string

	// TotalCells is the dataset's total observation count.
	TotalCells int

	// DesignType labels the overall design shape (e.g. "nested", "crossed").
	DesignType string

	// Species is the organism tag ("human", "mouse", …).
	Species string

	// Grammar is the compiled grammar string.
	Grammar string

	// Diagram is an optional pre-rendered ASCII diagram.
	Diagram string

	// Context carries optional experimental background.
	Context Context

	// Design is the design document the grammar was compiled from.
	Design *design.Document

	// DesignNotes lists free-form notes about ambiguities or assumptions.
	DesignNotes []string

	// ToolVersion is stamped into the frontmatter; defaults to DefaultToolVersion.
	ToolVersion string
}

// envelope mirrors the JSON wire shape of a card input. The factors and
// relationships sections are decoded separately via design.ParseBytes.
type envelope struct {
	H5adFile    string   `json:"h5ad_file"`
	TotalCells  int      `json:"total_cells"`
	DesignType  string   `json:"design_type"`
	Species     string   `json:"species"`
	Grammar     string   `json:"edviz_grammar"`
	Diagram     string   `json:"edviz_diagram"`
	Context     Context  `json:"experimental_context"`
	DesignNotes []string `json:"design_notes"`
	ToolVersion string   `json:"tool_version"`
}

// ParseInput decodes a card input document. The embedded factors and
// relationships sections must form a well-formed design document; all
// other fields are optional.
func ParseInput(data []byte) (*Input, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("card: decode input: %w", err)
	}

	doc, err := design.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	return &Input{
		H5adFile:    env.H5adFile,
		TotalCells:  env.TotalCells,
		DesignType:  env.DesignType,
		Species:     env.Species,
		Grammar:     env.Grammar,
		Diagram:     env.Diagram,
		Context:     env.Context,
		Design:      doc,
		DesignNotes: env.DesignNotes,
		ToolVersion: env.ToolVersion,
	}, nil
}
