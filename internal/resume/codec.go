package resume

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a document to its canonical JSON form.
func Encode(doc Document) (json.RawMessage, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// Decode parses a stored document and normalizes it, so records written by
// older versions come back with defaults filled in.
func Decode(data json.RawMessage) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode document: %w", err)
	}
	doc.Normalize()
	return doc, nil
}
