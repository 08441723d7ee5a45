package keeper

import (
	"encoding/json"

	collcodec "cosmossdk.io/collections/codec"

	"brewchain/x/brewery/types"
)

// jsonValueCodec stores plain Go records as JSON, the way x/burn stores its params.
type jsonValueCodec[T any] struct {
	valueType string
}

func (jsonValueCodec[T]) Encode(value T) ([]byte, error) { return json.Marshal(value) }
func (jsonValueCodec[T]) Decode(bz []byte) (T, error) {
	var v T
	return v, json.Unmarshal(bz, &v)
}
func (c jsonValueCodec[T]) EncodeJSON(value T) ([]byte, error) { return c.Encode(value) }
func (c jsonValueCodec[T]) DecodeJSON(bz []byte) (T, error)    { return c.Decode(bz) }
func (c jsonValueCodec[T]) Stringify(value T) string {
	bz, err := json.Marshal(value)
	if err != nil {
		return err.Error()
	}
	return string(bz)
}
func (c jsonValueCodec[T]) ValueType() string { return c.valueType }

var (
	paramsValueCodec collcodec.ValueCodec[types.Params]   = jsonValueCodec[types.Params]{valueType: "brewery/Params"}
	poolValueCodec   collcodec.ValueCodec[types.Pool]     = jsonValueCodec[types.Pool]{valueType: "brewery/Pool"}
	userValueCodec   collcodec.ValueCodec[types.UserInfo] = jsonValueCodec[types.UserInfo]{valueType: "brewery/UserInfo"}
)
