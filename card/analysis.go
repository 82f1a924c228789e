// Package card: the Analysis Considerations narrative.
package card

import (
	"fmt"
	"strings"

	"github.com/vals/edgram/design"
)

// analysisSection writes statistical-analysis guidance keyed off the
// design shape: nested designs get random-effects and pseudobulking
// advice, crossed designs get factorial-model advice, and everything
// else gets generic modeling and replication guidance.
func analysisSection(in *Input) string {
	var nested []design.Nested
	var classifications []design.ClassifiedBy
	for _, rel := range in.Design.Relationships {
		switch r := rel.(type) {
		case design.Nested:
			nested = append(nested, r)
		case design.ClassifiedBy:
			classifications = append(classifications, r)
		}
	}

	var b strings.Builder
	b.WriteString("This design structure has implications for statistical analysis:\n\n")

	switch {
	case len(nested) > 0:
		writeNestedAdvice(&b, nested[0], classifications)
	case isCrossed(in.DesignType):
		writeCrossedAdvice(&b, in, classifications)
	default:
		writeGenericAdvice(&b, classifications)
	}

	return b.String()
}

// isCrossed reports whether the design-type label describes a crossed design.
func isCrossed(designType string) bool {
	return strings.Contains(strings.ToLower(designType), "crossed") ||
		strings.Contains(designType, "×")
}

func writeNestedAdvice(b *strings.Builder, n design.Nested, classifications []design.ClassifiedBy) {
	parent, child := n.Parent, n.Child

	fmt.Fprintf(b, "**Random Effects Modeling:** The nesting of `%s` within `%s` indicates "+
		"that %s-specific variation should be modeled as a random effect. When testing for "+
		"%s effects, use mixed-effects models with random intercepts for %s "+
		"(e.g., `~ %s + (1|%s)` in lme4 notation).\n\n",
		child, parent, child, parent, child, parent, child)

	if len(classifications) > 0 {
		classifier := classifications[0].Classifier
		fmt.Fprintf(b, "**Aggregation Strategy:** For differential expression testing, "+
			"pseudobulking to the %s level preserves the experimental unit structure. "+
			"Aggregate cells to %s-by-%s pseudobulk profiles before applying standard DE "+
			"methods, treating %ss as biological replicates.\n\n",
			child, child, classifier, child)
	} else {
		fmt.Fprintf(b, "**Aggregation Strategy:** For differential expression testing, "+
			"pseudobulking to the %s level preserves the experimental unit structure. "+
			"Aggregate cells to the %s level before applying standard DE methods.\n\n",
			child, child)
	}

	fmt.Fprintf(b, "**Contrast Specification:** When comparing %ss, ensure contrasts are "+
		"computed at the %s level, not the cell level, to avoid pseudoreplication and "+
		"inflated Type I error rates.", parent, child)
}

func writeCrossedAdvice(b *strings.Builder, in *Input, classifications []design.ClassifiedBy) {
	var experimental []string
	for _, name := range in.Design.FactorOrder {
		if in.Design.Factors[name].Type == design.Experimental {
			experimental = append(experimental, name)
		}
	}

	if len(experimental) >= 2 {
		fmt.Fprintf(b, "**Factorial Analysis:** This crossed design allows testing main "+
			"effects of %s and %s, as well as their interaction. Use a full factorial model "+
			"(e.g., `~ %s * %s`) to capture all experimental effects.\n\n",
			experimental[0], experimental[1], experimental[0], experimental[1])
	}

	if len(classifications) > 0 {
		classifier := classifications[0].Classifier
		fmt.Fprintf(b, "**Cell-Level Analysis:** For cell-type-specific analyses, model the "+
			"factorial structure while accounting for %s labels. Consider using mixed-effects "+
			"models with %s-specific random effects if cell counts vary substantially.\n\n",
			classifier, classifier)
	}

	b.WriteString("**Multiple Testing:** With multiple factors and their interactions, " +
		"carefully control for multiple testing using appropriate correction methods " +
		"(e.g., FDR, Bonferroni).")
}

func writeGenericAdvice(b *strings.Builder, classifications []design.ClassifiedBy) {
	b.WriteString("**Statistical Modeling:** Consider the hierarchical structure of your " +
		"data when choosing statistical models. Account for within-sample correlation " +
		"using appropriate methods (mixed-effects models, GEE, etc.).\n\n")

	if len(classifications) > 0 {
		classifier := classifications[0].Classifier
		fmt.Fprintf(b, "**Classification Analysis:** The `%s` labels provide a natural "+
			"stratification for subgroup analyses. Consider both cell-type-specific and "+
			"cell-type-aggregated analyses.\n\n", classifier)
	}

	b.WriteString("**Replication:** Ensure that biological replicates are properly " +
		"identified and accounted for in the analysis to enable valid statistical inference.")
}
