// Package card: the experiment-card markdown generator.
package card

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vals/edgram/design"
)

// frontmatter is the YAML header of the card; field order is emission order.
type frontmatter struct {
	AnalysisDate string   `yaml:"analysis_date"`
	H5adFile     string   `yaml:"h5ad_file"`
	Species      string   `yaml:"species"`
	TotalCells   int      `yaml:"total_cells"`
	DesignType   string   `yaml:"design_type"`
	Grammar      string   `yaml:"edviz_grammar"`
	Factors      []string `yaml:"factors"`
	ToolVersion  string   `yaml:"tool_version"`
}

// speciesDisplay maps organism tags to display names.
var speciesDisplay = map[string]string{
	"human":      "Human (Homo sapiens)",
	"mouse":      "Mouse (Mus musculus)",
	"zebrafish":  "Zebrafish (Danio rerio)",
	"drosophila": "Fruit fly (Drosophila melanogaster)",
	"unknown":    "Unknown",
}

// Generate renders the full experiment card for in.
// The returned string is complete markdown, frontmatter included.
func Generate(in *Input, opts ...Option) (string, error) {
	// 1. Validate input and apply options.
	if in.Design == nil {
		return "", ErrNilDesign
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	version := in.ToolVersion
	if version == "" {
		version = DefaultToolVersion
	}
	date := o.Now().Format("2006-01-02")

	// 2. Frontmatter.
	fm := frontmatter{
		AnalysisDate: date,
		H5adFile:     in.H5adFile,
		Species:      in.Species,
		TotalCells:   in.TotalCells,
		DesignType:   in.DesignType,
		Grammar:      in.Grammar,
		Factors:      in.Design.FactorOrder,
		ToolVersion:  version,
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("card: marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n")

	// 3. Dataset Information.
	b.WriteString("# Experimental Design Card\n\n## Dataset Information\n\n")
	fmt.Fprintf(&b, "**File:** %s\n", orUnknown(in.H5adFile, "unknown.h5ad"))
	fmt.Fprintf(&b, "**Analysis Date:** %s\n", date)
	fmt.Fprintf(&b, "**Species:** %s\n", speciesName(in.Species))
	fmt.Fprintf(&b, "**Total Cells:** %s\n", formatNumber(in.TotalCells))

	// 4. Experimental Context (optional).
	writeContext(&b, in.Context)

	// 5. Design Structure: factor table + classification narrative.
	b.WriteString("\n## Design Structure\n")
	writeFactorTable(&b, in.Design)
	writeClassification(&b, in)

	// 6. Diagram and grammar code blocks.
	writeCodeBlock(&b, "Design Diagram", in.Diagram, "(Diagram not available)")
	writeCodeBlock(&b, "Grammar Notation", in.Grammar, "(Grammar not available)")

	// 7. Cell Distribution.
	b.WriteString("\n## Cell Distribution\n\n")
	for _, name := range in.Design.FactorOrder {
		f := in.Design.Factors[name]
		if len(f.Counts) == 0 {
			continue
		}
		fmt.Fprintf(&b, "**Cells per %s:** %s  \n", name, formatRange(summarize(f.Counts)))
	}

	// 8. Analysis Considerations.
	b.WriteString("\n## Analysis Considerations\n\n")
	b.WriteString(analysisSection(in))

	// 9. Design Notes (optional).
	if len(in.DesignNotes) > 0 {
		b.WriteString("\n\n## Design Notes\n\n")
		for _, note := range in.DesignNotes {
			b.WriteString(note)
			b.WriteString("\n\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

// speciesName resolves an organism tag to its display name, falling back
// to a title-cased tag for organisms outside the map.
func speciesName(tag string) string {
	if tag == "" {
		tag = "unknown"
	}
	if name, ok := speciesDisplay[tag]; ok {
		return name
	}

	return titleCase(tag)
}

// orUnknown substitutes fallback for an empty value.
func orUnknown(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}

// writeContext renders the optional Experimental Context section.
func writeContext(b *strings.Builder, ctx Context) {
	if ctx.ExperimentType == "" && ctx.ResearchQuestion == "" && len(ctx.FactorDescriptions) == 0 {
		return
	}

	b.WriteString("\n## Experimental Context\n\n")
	if ctx.ExperimentType != "" {
		fmt.Fprintf(b, "**Experiment Type:** %s\n\n", ctx.ExperimentType)
	}
	if ctx.ResearchQuestion != "" {
		fmt.Fprintf(b, "**Research Question:** %s\n\n", ctx.ResearchQuestion)
	}
	if len(ctx.FactorDescriptions) > 0 {
		b.WriteString("**Factor Descriptions:**\n\n")
		names := make([]string, 0, len(ctx.FactorDescriptions))
		for name := range ctx.FactorDescriptions {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(b, "- **%s**: %s\n", titleCase(name), ctx.FactorDescriptions[name])
		}
		b.WriteString("\n")
	}
}

// writeFactorTable renders the Identified Factors table in declaration order.
func writeFactorTable(b *strings.Builder, doc *design.Document) {
	b.WriteString("\n### Identified Factors\n\n")
	b.WriteString("| Factor | Levels | Type |\n")
	b.WriteString("|--------|--------|------|\n")
	for _, name := range doc.FactorOrder {
		f := doc.Factors[name]
		fmt.Fprintf(b, "| %s | %d | %s |\n", titleCase(name), len(f.Categories), f.Type.DisplayName())
	}
}

// writeClassification renders the Design Classification narrative.
func writeClassification(b *strings.Builder, in *Input) {
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

	b.WriteString("\n### Design Classification\n\n")
	switch {
	case len(nested) == 1:
		parent, child := nested[0].Parent, nested[0].Child
		fmt.Fprintf(b, "This dataset exhibits a **nested design**. The factor `%s` is nested "+
			"within `%s`, meaning each %s belongs to exactly one %s condition.",
			child, parent, strings.ToLower(titleCase(child)), parent)
	case len(nested) > 1:
		b.WriteString("This dataset exhibits a **hierarchical nested design** with multiple levels of nesting.")
	default:
		var experimental []string
		for _, name := range in.Design.FactorOrder {
			if in.Design.Factors[name].Type == design.Experimental {
				experimental = append(experimental, name)
			}
		}
		if len(experimental) >= 2 {
			quoted := make([]string, len(experimental))
			for i, name := range experimental {
				quoted[i] = "`" + name + "`"
			}
			fmt.Fprintf(b, "This dataset exhibits a **factorial crossed design** where %s are "+
				"fully crossed, meaning all combinations of factor levels are present.",
				strings.Join(quoted, " and "))
		} else {
			b.WriteString("This dataset represents a simple experimental design.")
		}
	}

	if len(nested) > 0 && len(classifications) > 0 {
		child := nested[0].Child
		classifier := classifications[0].Classifier
		fmt.Fprintf(b, " %ss are observed across all %ss, creating a crossed relationship "+
			"with the nested structure.", titleCase(classifier), child)
	}
	b.WriteString("\n")
}

// writeCodeBlock renders a titled fenced code block with a placeholder
// when content is empty.
func writeCodeBlock(b *strings.Builder, title, content, placeholder string) {
	fmt.Fprintf(b, "\n### %s\n\n```\n", title)
	if content == "" {
		content = placeholder
	}
	b.WriteString(content)
	b.WriteString("\n```\n")
}
