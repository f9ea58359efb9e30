package facts

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeJSON writes the tables as JSON, optionally indented.
func EncodeJSON(w io.Writer, t Tables, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding tables as JSON: %w", err)
	}
	return nil
}

// DecodeJSON reads tables previously written by EncodeJSON.
func DecodeJSON(r io.Reader) (Tables, error) {
	var t Tables
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Tables{}, fmt.Errorf("decoding tables from JSON: %w", err)
	}
	return t, nil
}

// EncodeMsgpack writes the tables in MessagePack, the compact form used when
// snapshots are cached between sessions.
func EncodeMsgpack(w io.Writer, t Tables) error {
	if err := msgpack.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("encoding tables as msgpack: %w", err)
	}
	return nil
}

// DecodeMsgpack reads tables previously written by EncodeMsgpack.
func DecodeMsgpack(r io.Reader) (Tables, error) {
	var t Tables
	if err := msgpack.NewDecoder(r).Decode(&t); err != nil {
		return Tables{}, fmt.Errorf("decoding tables from msgpack: %w", err)
	}
	return t, nil
}
