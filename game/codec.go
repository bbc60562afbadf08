package game

import (
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/net/websocket"
)

// MsgpackCodec sends values as binary msgpack frames.
var MsgpackCodec = websocket.Codec{Marshal: msgpackMarshal, Unmarshal: msgpackUnmarshal}

func msgpackMarshal(v interface{}) ([]byte, byte, error) {
	data, err := msgpack.Marshal(v)
	return data, websocket.BinaryFrame, err
}

func msgpackUnmarshal(data []byte, _ byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}

// CodecFor returns the websocket codec for format.
func CodecFor(format Format) websocket.Codec {
	if format == FormatMsgpack {
		return MsgpackCodec
	}
	return websocket.JSON
}
