package server

import (
	"connectrpc.com/connect"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonCodec lets Connect carry plain Go structs as application/json. It is
// registered under every json codec name Connect knows, since the defaults
// use protojson and only accept proto messages.
type jsonCodec struct {
	name string
}

var jsonCodecNames = []string{"json", "json; charset=utf-8"}

func (c jsonCodec) Name() string { return c.name }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}

func codecOptions() []connect.HandlerOption {
	opts := make([]connect.HandlerOption, 0, len(jsonCodecNames))
	for _, name := range jsonCodecNames {
		opts = append(opts, connect.WithCodec(jsonCodec{name: name}))
	}
	return opts
}
