package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExecutedKey is the volatile field ignored when comparing catalog files.
const ExecutedKey = "executed"

// Decode unmarshals data on top of base, so any field missing from data keeps
// the value base already carries. Unknown keys are ignored.
func Decode(data []byte, base *Definition) error {
	if err := json.Unmarshal(data, base); err != nil {
		return fmt.Errorf("decode definition: %w", err)
	}
	base.normalize()
	return nil
}

// Encode renders d as two-space indented JSON with a trailing newline.
// Unknown keys read by Decode are not carried over.
func Encode(d *Definition) ([]byte, error) {
	d.normalize()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode definition: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeDocument parses data as a generic JSON object, keeping numbers as
// json.Number so MarshalCanonical can reproduce them exactly.
func DecodeDocument(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// ContentKey returns the canonical serialization of doc without its
// top-level executed key. doc is not modified.
func ContentKey(doc map[string]any) ([]byte, error) {
	stripped := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == ExecutedKey {
			continue
		}
		stripped[k] = v
	}
	return MarshalCanonical(stripped)
}

// SameContent reports whether two raw definition files are equal once the
// executed flag is removed from both. Key order and whitespace are ignored.
func SameContent(a, b []byte) (bool, error) {
	docA, err := DecodeDocument(a)
	if err != nil {
		return false, err
	}
	docB, err := DecodeDocument(b)
	if err != nil {
		return false, err
	}
	keyA, err := ContentKey(docA)
	if err != nil {
		return false, err
	}
	keyB, err := ContentKey(docB)
	if err != nil {
		return false, err
	}
	return bytes.Equal(keyA, keyB), nil
}
