package web

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec names accepted in the codec query parameter.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// codec encodes server messages and decodes client messages for one
// connection.
type codec interface {
	Encode(v any) (messageType int, data []byte, err error)
	Decode(data []byte, v any) error
}

func codecFor(name string) (codec, error) {
	switch name {
	case "", CodecJSON:
		return jsonCodec{}, nil
	case CodecMsgpack:
		return msgpackCodec{}, nil
	}
	return nil, fmt.Errorf("web: unknown codec %q", name)
}

type jsonCodec struct{}

func (jsonCodec) Encode(v any) (int, []byte, error) {
	data, err := json.Marshal(v)
	return websocket.TextMessage, data, err
}

func (jsonCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// msgpackCodec reuses the json struct tags so both codecs produce the same
// field names.
type msgpackCodec struct{}

func (msgpackCodec) Encode(v any) (int, []byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return 0, nil, err
	}
	return websocket.BinaryMessage, buf.Bytes(), nil
}

func (msgpackCodec) Decode(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
