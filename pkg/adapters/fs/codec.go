package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/folio/pkg/core"
)

// Indent is the indentation used for collection files.
const Indent = "  "

// DecodeCollection reads a top-level JSON array of objects.
func DecodeCollection(r io.Reader) ([]core.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("collection must be a json array")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	records := make([]core.Record, 0, len(raw))
	for i, item := range raw {
		var rec core.Record
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// EncodeCollection writes records as an indented JSON array. Non-ASCII text
// and HTML characters are written as-is and there is no trailing newline.
func EncodeCollection(records []core.Record) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('[')
	for i, rec := range records {
		if i > 0 {
			compact.WriteByte(',')
		}
		b, err := rec.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		compact.Write(b)
	}
	compact.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", Indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
