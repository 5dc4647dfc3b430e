// Package apiconnect wires the api messages to Connect handlers and clients.
package apiconnect

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// JSONCodec marshals plain Go structs with encoding/json. It replaces
// Connect's default JSON codec, which only accepts protobuf messages.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
}

func withClientCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}
