package session

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
)

// Codec serializes session records and user values before they hit the
// storage backend. JSONCodec is the default and mirrors the web client's
// implicit JSON serialization; CBORCodec is a compact alternative for
// file-backed stores.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type CBORCodec struct{}

func (CBORCodec) Marshal(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (CBORCodec) Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}
