package sink

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// JSON writes all documents as one indented JSON array.
type JSON struct{}

func (JSON) Write(w io.Writer, docs ...Document) error {
	if docs == nil {
		docs = []Document{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("sink json: %w", err)
	}
	return nil
}

// YAML writes one YAML document per lookup, separated by "---".
type YAML struct{}

func (YAML) Write(w io.Writer, docs ...Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("sink yaml: encode %q: %w", doc.Word, err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("sink yaml: %w", err)
	}
	return nil
}
