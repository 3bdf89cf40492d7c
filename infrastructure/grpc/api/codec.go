package api

import (
	"github.com/fxamacker/cbor/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const CodecName = "cbor"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec carries the plain Go request and response types over gRPC.
// Struct fields fall back to their json tags.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}

// CallOption selects the codec on the client side.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
