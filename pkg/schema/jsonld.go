package schema

import (
	"bytes"
	"encoding/json"
)

// Marshal encodes v as compact JSON without escaping "<", ">", "&" or slashes.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Script wraps v in a JSON-LD script element.
func Script(v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	// A literal "</" would end the script element early.
	data = bytes.ReplaceAll(data, []byte("</"), []byte(`<\/`))
	return `<script type="application/ld+json">` + string(data) + "</script>", nil
}
