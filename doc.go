// Package edgram compiles structured experimental-design descriptions into
// the compact edviz grammar notation, and renders designs into markdown
// experiment cards.
//
// 🚀 What is edgram?
//
//	A small, pure-Go toolkit for single-cell experimental design metadata:
//		• design/  — the design document model: factors, counts, relationships,
//		             JSON ingestion with declaration-order preservation, validation
//		• grammar/ — the design→grammar compiler: root resolution, balanced vs.
//		             unbalanced count notation, nesting and classification operators
//		• card/    — the experiment-card generator: markdown report with factor
//		             tables, design classification and analysis guidance
//		• cmd/edgram — the CLI binary tying the three together
//
// ✨ Why choose edgram?
//
//   - Deterministic – factor declaration order drives root and crossing order
//   - Pure functions – one document in, one string out, safe for concurrent use
//   - Lenient where it matters – a dangling classifier reference degrades to
//     "no annotation" instead of failing the whole compilation
//
// Quick example:
//
//	doc, _ := design.ParseBytes(data)
//	s, err := grammar.Convert(doc)
//	// s == "Genotype(2) > Sample(4) : CellType(3)"
//
// See each subpackage's doc.go for the full contract and error taxonomy.
//
//	go get github.com/vals/edgram
package edgram
