// Package card renders an experimental design into a markdown experiment
// card: a human-readable report with YAML frontmatter, a dataset summary,
// a factor table, a design-classification narrative, the grammar notation,
// per-factor cell distributions, and statistical-analysis guidance keyed
// off the design shape (nested vs. crossed vs. simple).
//
// The generator consumes already-produced strings — the grammar string and
// an optional diagram — plus the design document that seeded them. It
// computes nothing about the design beyond summary statistics; the grammar
// compiler remains the single source of structural truth.
//
// Sections, in order:
//
//	frontmatter            analysis_date, h5ad_file, species, total_cells,
//	                       design_type, grammar, factors, tool_version
//	Dataset Information    file, date, species display name, total cells
//	Experimental Context   optional; experiment type, research question,
//	                       per-factor descriptions
//	Design Structure       factor table + design classification narrative
//	Design Diagram         verbatim code block (or a placeholder)
//	Grammar Notation       verbatim code block
//	Cell Distribution      min/max/mean/median per factor
//	Analysis Considerations nested → random effects, pseudobulking, contrasts;
//	                       crossed → factorial model, multiple testing;
//	                       otherwise generic modeling and replication advice
//	Design Notes           optional free-form notes
//
// Errors:
//
//   - ErrNilDesign  if the input carries no design document.
package card
