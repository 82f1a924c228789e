// Package design: JSON ingestion with factor declaration order preserved.
package design

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// wireFactor mirrors the JSON shape of one factor record.
type wireFactor struct {
	Categories []string `json:"categories"`
	Counts     []int    `json:"counts"`
	Type       string   `json:"type"`
}

// wireRelationship mirrors the JSON shape of one relationship record.
// Only the fields matching the Type tag are meaningful.
type wireRelationship struct {
	Type       string   `json:"type"`
	Parent     string   `json:"parent"`
	Child      string   `json:"child"`
	Factor     string   `json:"factor"`
	Classifier string   `json:"classifier"`
	Factors    []string `json:"factors"`
}

// wireDocument mirrors the top-level JSON document.
// Pointers distinguish "missing section" from "empty section".
type wireDocument struct {
	Factors       *map[string]wireFactor `json:"factors"`
	Relationships *[]wireRelationship    `json:"relationships"`
}

// Parse reads a JSON design document from r.
// Factor declaration order is recovered from the raw token stream,
// since unmarshalling into a map discards it.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("design: read document: %w", err)
	}

	return ParseBytes(data)
}

// ParseFile reads a JSON design document from the file at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("design: read %s: %w", path, err)
	}

	return ParseBytes(data)
}

// ParseBytes decodes a JSON design document.
// Returns ErrMissingFactors / ErrMissingRelationships when a required
// section is absent, and ErrUnknownRelationship for unrecognized tags.
func ParseBytes(data []byte) (*Document, error) {
	// 1. Decode the document body.
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("design: decode document: %w", err)
	}
	if wire.Factors == nil {
		return nil, ErrMissingFactors
	}
	if wire.Relationships == nil {
		return nil, ErrMissingRelationships
	}

	// 2. Recover factor declaration order from the token stream.
	order, err := scanFactorOrder(data)
	if err != nil {
		return nil, fmt.Errorf("design: scan factor order: %w", err)
	}

	// 3. Assemble the document in declaration order.
	doc := NewDocument()
	for _, name := range order {
		wf := (*wire.Factors)[name]
		f := &Factor{
			Categories: wf.Categories,
			Counts:     wf.Counts,
			Type:       ParseFactorType(wf.Type),
		}
		if addErr := doc.AddFactor(name, f); addErr != nil {
			return nil, addErr
		}
	}

	// 4. Translate relationship records into their variants.
	for i, wr := range *wire.Relationships {
		switch wr.Type {
		case relNested:
			doc.AddRelationship(Nested{Parent: wr.Parent, Child: wr.Child})
		case relClassification:
			doc.AddRelationship(ClassifiedBy{Factor: wr.Factor, Classifier: wr.Classifier})
		case relCrossed:
			doc.AddRelationship(Crossed{Factors: wr.Factors})
		default:
			return nil, fmt.Errorf("%w: %q (relationship %d)", ErrUnknownRelationship, wr.Type, i)
		}
	}

	return doc, nil
}

// scanFactorOrder walks the JSON token stream and returns the keys of the
// top-level "factors" object in their order of appearance.
func scanFactorOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	// 1. Consume the opening brace of the document object.
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	// 2. Scan top-level keys until "factors" is found.
	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return nil, keyErr
		}
		key, _ := keyTok.(string)
		if key != "factors" {
			if skipErr := skipValue(dec); skipErr != nil {
				return nil, skipErr
			}
			continue
		}

		// 3. Read the factors object's keys in stream order.
		openTok, openErr := dec.Token()
		if openErr != nil {
			return nil, openErr
		}
		if d, ok := openTok.(json.Delim); !ok || d != '{' {
			return nil, fmt.Errorf("factors section is not an object")
		}
		var order []string
		for dec.More() {
			nameTok, nameErr := dec.Token()
			if nameErr != nil {
				return nil, nameErr
			}
			name, _ := nameTok.(string)
			order = append(order, name)
			if skipErr := skipValue(dec); skipErr != nil {
				return nil, skipErr
			}
		}

		return order, nil
	}

	return nil, nil
}

// skipValue consumes one complete JSON value (scalar, object, or array)
// from the decoder, recursing into nested containers.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
		for dec.More() {
			if err = skipValue(dec); err != nil {
				return err
			}
		}
		// Closing delimiter.
		_, err = dec.Token()

		return err
	}

	return nil
}
