package linkedart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Encode writes obj as indented UTF-8 JSON followed by a newline.
// Non-ASCII text and HTML characters are written literally.
func Encode(w io.Writer, obj *Object) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(obj); err != nil {
		return fmt.Errorf("encoding linked art: %w", err)
	}
	return nil
}

// Marshal returns the Encode form of obj.
func Marshal(obj *Object) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
