package design_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vals/edgram/design"
)

// nestedDoc is a well-formed document: genotype > sample, sample : cell_type.
const nestedDoc = `{
  "factors": {
    "genotype": {"categories": ["WT", "KO"], "counts": [500, 500], "type": "experimental"},
    "sample": {"categories": ["r1", "r2", "r3", "r4"], "counts": [250, 250, 250, 250], "type": "replicate"},
    "cell_type": {"categories": ["T_cells", "B_cells", "Macrophages"], "counts": [400, 350, 250], "type": "classification"}
  },
  "relationships": [
    {"type": "nested", "parent": "genotype", "child": "sample"},
    {"type": "classification", "factor": "sample", "classifier": "cell_type"}
  ]
}`

func TestParseBytes_WellFormed(t *testing.T) {
	doc, err := design.ParseBytes([]byte(nestedDoc))
	require.NoError(t, err)

	assert.Len(t, doc.Factors, 3)
	assert.Len(t, doc.Relationships, 2)

	genotype, ok := doc.Factor("genotype")
	require.True(t, ok)
	assert.Equal(t, []string{"WT", "KO"}, genotype.Categories)
	assert.Equal(t, []int{500, 500}, genotype.Counts)
	assert.Equal(t, design.Experimental, genotype.Type)

	cellType, ok := doc.Factor("cell_type")
	require.True(t, ok)
	assert.Equal(t, design.Classification, cellType.Type)
}

func TestParseBytes_PreservesDeclarationOrder(t *testing.T) {
	doc, err := design.ParseBytes([]byte(nestedDoc))
	require.NoError(t, err)
	assert.Equal(t, []string{"genotype", "sample", "cell_type"}, doc.FactorOrder)

	// Reversed declaration order must survive ingestion too.
	reversed := `{
	  "factors": {
	    "zeta": {"categories": ["a"], "counts": [1], "type": "experimental"},
	    "alpha": {"categories": ["b"], "counts": [1], "type": "experimental"}
	  },
	  "relationships": []
	}`
	doc, err = design.ParseBytes([]byte(reversed))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha"}, doc.FactorOrder)
}

func TestParseBytes_RelationshipVariants(t *testing.T) {
	doc, err := design.ParseBytes([]byte(nestedDoc))
	require.NoError(t, err)

	nested, ok := doc.Relationships[0].(design.Nested)
	require.True(t, ok)
	assert.Equal(t, "genotype", nested.Parent)
	assert.Equal(t, "sample", nested.Child)

	classified, ok := doc.Relationships[1].(design.ClassifiedBy)
	require.True(t, ok)
	assert.Equal(t, "sample", classified.Factor)
	assert.Equal(t, "cell_type", classified.Classifier)
}

func TestParseBytes_CrossedRecognized(t *testing.T) {
	raw := `{
	  "factors": {
	    "genotype": {"categories": ["WT", "KO"], "counts": [5, 5], "type": "experimental"},
	    "treatment": {"categories": ["ctrl", "drug"], "counts": [5, 5], "type": "experimental"}
	  },
	  "relationships": [
	    {"type": "crossed", "factors": ["genotype", "treatment"]}
	  ]
	}`
	doc, err := design.ParseBytes([]byte(raw))
	require.NoError(t, err)

	crossed, ok := doc.Relationships[0].(design.Crossed)
	require.True(t, ok)
	assert.Equal(t, []string{"genotype", "treatment"}, crossed.Factors)
}

func TestParseBytes_MissingSections(t *testing.T) {
	_, err := design.ParseBytes([]byte(`{"relationships": []}`))
	assert.ErrorIs(t, err, design.ErrMissingFactors)

	_, err = design.ParseBytes([]byte(`{"factors": {}}`))
	assert.ErrorIs(t, err, design.ErrMissingRelationships)
}

func TestParseBytes_UnknownRelationshipType(t *testing.T) {
	raw := `{
	  "factors": {"a": {"categories": ["x"], "counts": [1], "type": "experimental"}},
	  "relationships": [{"type": "entangled", "parent": "a", "child": "a"}]
	}`
	_, err := design.ParseBytes([]byte(raw))
	assert.ErrorIs(t, err, design.ErrUnknownRelationship)
	assert.Contains(t, err.Error(), "entangled")
}

func TestParseBytes_MalformedJSON(t *testing.T) {
	_, err := design.ParseBytes([]byte(`{"factors": `))
	assert.Error(t, err)
}

func TestParse_Reader(t *testing.T) {
	doc, err := design.Parse(strings.NewReader(nestedDoc))
	require.NoError(t, err)
	assert.Len(t, doc.Factors, 3)
}

func TestParseFactorType(t *testing.T) {
	assert.Equal(t, design.Experimental, design.ParseFactorType("experimental"))
	assert.Equal(t, design.Replicate, design.ParseFactorType("replicate"))
	assert.Equal(t, design.Classification, design.ParseFactorType("classification"))
	assert.Equal(t, design.Batch, design.ParseFactorType("batch"))
	// Unknown tags fall back to Experimental rather than failing ingestion.
	assert.Equal(t, design.Experimental, design.ParseFactorType("mystery"))
}

func TestFactorType_Names(t *testing.T) {
	assert.Equal(t, "classification", design.Classification.String())
	assert.Equal(t, "Observation", design.Classification.DisplayName())
	assert.Equal(t, "Treatment", design.Experimental.DisplayName())
}

func TestFactor_TotalCount(t *testing.T) {
	f := &design.Factor{Categories: []string{"a", "b"}, Counts: []int{600, 650}}
	assert.Equal(t, 1250, f.TotalCount())
}

func TestDocument_AddFactor(t *testing.T) {
	doc := design.NewDocument()
	f := &design.Factor{Categories: []string{"x"}, Counts: []int{1}}

	require.NoError(t, doc.AddFactor("a", f))
	assert.ErrorIs(t, doc.AddFactor("a", f), design.ErrDuplicateFactor)
	assert.ErrorIs(t, doc.AddFactor("", f), design.ErrEmptyFactorName)
	assert.Equal(t, []string{"a"}, doc.FactorOrder)
}
