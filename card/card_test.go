package card_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vals/edgram/card"
	"github.com/vals/edgram/design"
)

// fixedClock pins the analysis date for deterministic output.
func fixedClock() time.Time {
	return time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
}

// nestedInput builds the canonical nested-design card input:
// genotype > sample, sample : cell_type.
func nestedInput(t *testing.T) *card.Input {
	t.Helper()
	doc := design.NewDocument()
	require.NoError(t, doc.AddFactor("genotype", &design.Factor{
		Categories: []string{"KO", "WT"},
		Counts:     []int{6000, 6500},
		Type:       design.Experimental,
	}))
	require.NoError(t, doc.AddFactor("sample", &design.Factor{
		Categories: []string{"r1", "r2", "r3", "r4"},
		Counts:     []int{3125, 3125, 3125, 3125},
		Type:       design.Replicate,
	}))
	require.NoError(t, doc.AddFactor("cell_type", &design.Factor{
		Categories: []string{"T_cells", "B_cells", "Macrophages"},
		Counts:     []int{5000, 4500, 3000},
		Type:       design.Classification,
	}))
	doc.AddRelationship(design.Nested{Parent: "genotype", Child: "sample"})
	doc.AddRelationship(design.ClassifiedBy{Factor: "sample", Classifier: "cell_type"})

	return &card.Input{
		H5adFile:   "test_experiment.h5ad",
		TotalCells: 12500,
		DesignType: "nested",
		Species:    "mouse",
		Grammar:    "Genotype(2) > Sample(4) : CellType(3)",
		Design:     doc,
	}
}

func TestGenerate_NilDesign(t *testing.T) {
	_, err := card.Generate(&card.Input{})
	assert.ErrorIs(t, err, card.ErrNilDesign)
}

func TestGenerate_Frontmatter(t *testing.T) {
	out, err := card.Generate(nestedInput(t), card.WithClock(fixedClock))
	require.NoError(t, err)

	assert.True(t, len(out) > 0)
	assert.Contains(t, out, "analysis_date:")
	assert.Contains(t, out, "2026-03-14")
	assert.Contains(t, out, "h5ad_file: test_experiment.h5ad")
	assert.Contains(t, out, "species: mouse")
	assert.Contains(t, out, "total_cells: 12500")
	assert.Contains(t, out, "design_type: nested")
	assert.Contains(t, out, "tool_version: 0.1.0")
	// Factor list in declaration order.
	assert.Contains(t, out, "- genotype")
	assert.Contains(t, out, "- sample")
	assert.Contains(t, out, "- cell_type")
}

func TestGenerate_DatasetSection(t *testing.T) {
	out, err := card.Generate(nestedInput(t), card.WithClock(fixedClock))
	require.NoError(t, err)

	assert.Contains(t, out, "# Experimental Design Card")
	assert.Contains(t, out, "**File:** test_experiment.h5ad")
	assert.Contains(t, out, "**Analysis Date:** 2026-03-14")
	assert.Contains(t, out, "**Species:** Mouse (Mus musculus)")
	assert.Contains(t, out, "**Total Cells:** 12,500")
}

func TestGenerate_FactorTable(t *testing.T) {
	out, err := card.Generate(nestedInput(t), card.WithClock(fixedClock))
	require.NoError(t, err)

	assert.Contains(t, out, "| Factor | Levels | Type |")
	assert.Contains(t, out, "| Genotype | 2 | Treatment |")
	assert.Contains(t, out, "| Sample | 4 | Replicate |")
	assert.Contains(t, out, "| Cell Type | 3 | Observation |")
}

func TestGenerate_NestedClassification(t *testing.T) {
	out, err := card.Generate(nestedInput(t), card.WithClock(fixedClock))
	require.NoError(t, err)

	assert.Contains(t, out, "**nested design**")
	assert.Contains(t, out, "`sample` is nested within `genotype`")
	assert.Contains(t, out, "Cell Types are observed across all samples")
}

func TestGenerate_GrammarAndDiagramBlocks(t *testing.T) {
	in := nestedInput(t)
	out, err := card.Generate(in, card.WithClock(fixedClock))
	require.NoError(t, err)

	assert.Contains(t, out, "### Grammar Notation")
	assert.Contains(t, out, "Genotype(2) > Sample(4) : CellType(3)")
	// No diagram supplied: placeholder stands in.
	assert.Contains(t, out, "(Diagram not available)")

	in.Diagram = "WT ── r1 r2\nKO ── r3 r4"
	out, err = card.Generate(in, card.WithClock(fixedClock))
	require.NoError(t, err)
	assert.Contains(t, out, "WT ── r1 r2")
	assert.NotContains(t, out, "(Diagram not available)")
}

func TestGenerate_CellDistribution(t *testing.T) {
	out, err := card.Generate(nestedInput(t), card.WithClock(fixedClock))
	require.NoError(t, err)

	assert.Contains(t, out, "## Cell Distribution")
	assert.Contains(t, out, "**Cells per genotype:** 6,000 - 6,500 (mean: 6,250)")
	// Uniform counts collapse to a single number.
	assert.Contains(t, out, "**Cells per sample:** 3,125")
}

func TestGenerate_NestedAnalysisAdvice(t *testing.T) {
	out, err := card.Generate(nestedInput(t), card.WithClock(fixedClock))
	require.NoError(t, err)

	assert.Contains(t, out, "## Analysis Considerations")
	assert.Contains(t, out, "**Random Effects Modeling:**")
	assert.Contains(t, out, "`~ genotype + (1|sample)`")
	assert.Contains(t, out, "sample-by-cell_type pseudobulk profiles")
	assert.Contains(t, out, "**Contrast Specification:**")
}

func TestGenerate_CrossedAnalysisAdvice(t *testing.T) {
	doc := design.NewDocument()
	require.NoError(t, doc.AddFactor("genotype", &design.Factor{
		Categories: []string{"WT", "KO"}, Counts: []int{500, 500}, Type: design.Experimental,
	}))
	require.NoError(t, doc.AddFactor("treatment", &design.Factor{
		Categories: []string{"ctrl", "drug"}, Counts: []int{500, 500}, Type: design.Experimental,
	}))
	in := &card.Input{
		TotalCells: 1000,
		DesignType: "crossed",
		Species:    "human",
		Grammar:    "Genotype(2) × Treatment(2)",
		Design:     doc,
	}

	out, err := card.Generate(in, card.WithClock(fixedClock))
	require.NoError(t, err)

	assert.Contains(t, out, "**factorial crossed design**")
	assert.Contains(t, out, "**Factorial Analysis:**")
	assert.Contains(t, out, "`~ genotype * treatment`")
	assert.Contains(t, out, "**Multiple Testing:**")
}

func TestGenerate_SimpleDesignAdvice(t *testing.T) {
	doc := design.NewDocument()
	require.NoError(t, doc.AddFactor("condition", &design.Factor{
		Categories: []string{"a", "b"}, Counts: []int{100, 100}, Type: design.Batch,
	}))
	in := &card.Input{
		TotalCells: 200,
		DesignType: "simple",
		Design:     doc,
	}

	out, err := card.Generate(in, card.WithClock(fixedClock))
	require.NoError(t, err)

	assert.Contains(t, out, "simple experimental design")
	assert.Contains(t, out, "**Statistical Modeling:**")
	assert.Contains(t, out, "**Replication:**")
	assert.Contains(t, out, "**Species:** Unknown")
	// No grammar supplied: placeholder stands in.
	assert.Contains(t, out, "(Grammar not available)")
}

func TestGenerate_ContextAndNotes(t *testing.T) {
	in := nestedInput(t)
	in.Context = card.Context{
		ExperimentType:   "scRNA-seq",
		ResearchQuestion: "Does the knockout shift immune composition?",
		FactorDescriptions: map[string]string{
			"genotype": "wild-type vs knockout",
		},
	}
	in.DesignNotes = []string{"Sample r3 was sequenced on a later flow cell."}

	out, err := card.Generate(in, card.WithClock(fixedClock))
	require.NoError(t, err)

	assert.Contains(t, out, "## Experimental Context")
	assert.Contains(t, out, "**Experiment Type:** scRNA-seq")
	assert.Contains(t, out, "**Research Question:** Does the knockout shift immune composition?")
	assert.Contains(t, out, "- **Genotype**: wild-type vs knockout")
	assert.Contains(t, out, "## Design Notes")
	assert.Contains(t, out, "Sample r3 was sequenced on a later flow cell.")
}

func TestParseInput(t *testing.T) {
	raw := `{
	  "h5ad_file": "exp.h5ad",
	  "total_cells": 1000,
	  "design_type": "nested",
	  "species": "mouse",
	  "edviz_grammar": "Genotype(2) > Sample(4)",
	  "tool_version": "0.2.0",
	  "design_notes": ["note one"],
	  "factors": {
	    "genotype": {"categories": ["WT", "KO"], "counts": [500, 500], "type": "experimental"},
	    "sample": {"categories": ["r1", "r2", "r3", "r4"], "counts": [250, 250, 250, 250], "type": "replicate"}
	  },
	  "relationships": [
	    {"type": "nested", "parent": "genotype", "child": "sample"}
	  ]
	}`
	in, err := card.ParseInput([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "exp.h5ad", in.H5adFile)
	assert.Equal(t, 1000, in.TotalCells)
	assert.Equal(t, "Genotype(2) > Sample(4)", in.Grammar)
	assert.Equal(t, "0.2.0", in.ToolVersion)
	assert.Equal(t, []string{"note one"}, in.DesignNotes)
	require.NotNil(t, in.Design)
	assert.Equal(t, []string{"genotype", "sample"}, in.Design.FactorOrder)
}

func TestParseInput_MalformedDesign(t *testing.T) {
	_, err := card.ParseInput([]byte(`{"h5ad_file": "x.h5ad"}`))
	assert.ErrorIs(t, err, design.ErrMissingFactors)
}
