package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes an envelope string to w followed by a newline. With
// pretty set, the envelope is re-indented byte-wise, so key order stays
// exactly as serialized.
func WriteJSON(w io.Writer, envelope string, pretty bool) error {
	if !pretty {
		_, err := fmt.Fprintln(w, envelope)
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(envelope), "", "  "); err != nil {
		return fmt.Errorf("indent envelope: %w", err)
	}
	buf.WriteByte('\n')

	_, err := buf.WriteTo(w)
	return err
}
