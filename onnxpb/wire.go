// Package onnxpb holds the ONNX protobuf messages used by the fixture
// generator and encodes them in the proto2 wire format of onnx.proto and
// onnx-data.proto.
//
// Fields are always written in ascending field-number order so equal
// messages serialize to identical bytes.
package onnxpb

import (
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrWireType  = errors.New("unexpected wire type")
	ErrTruncated = errors.New("truncated message")
)

// Message is implemented by every ONNX message of this package.
type Message interface {
	appendFields(b []byte) []byte
	unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error)
}

// Marshal encodes m.
func Marshal(m Message) []byte {
	return m.appendFields(nil)
}

// Unmarshal decodes b into m. Unknown fields are skipped.
func Unmarshal(b []byte, m Message) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Wrap(protowire.ParseError(n), "consume tag")
		}
		b = b[n:]
		n, err := m.unmarshalField(num, typ, b)
		if err != nil {
			return errors.WithMessagef(err, "field %d", num)
		}
		b = b[n:]
	}
	return nil
}

func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, errors.Wrap(protowire.ParseError(n), "skip field")
	}
	return n, nil
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	return appendVarint(b, num, uint64(v))
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	return appendVarint(b, num, uint64(int64(v)))
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	return appendBytes(b, num, m.appendFields(nil))
}

// Unpacked repeated int64, the proto2 default.
func appendInt64s(b []byte, num protowire.Number, vs []int64) []byte {
	for _, v := range vs {
		b = appendInt64(b, num, v)
	}
	return b
}

func appendFloats(b []byte, num protowire.Number, vs []float32) []byte {
	for _, v := range vs {
		b = appendFloat(b, num, v)
	}
	return b
}

func appendPackedInt64s(b []byte, num protowire.Number, vs []int64) []byte {
	if len(vs) == 0 {
		return b
	}
	var p []byte
	for _, v := range vs {
		p = protowire.AppendVarint(p, uint64(v))
	}
	return appendBytes(b, num, p)
}

func appendPackedInt32s(b []byte, num protowire.Number, vs []int32) []byte {
	if len(vs) == 0 {
		return b
	}
	var p []byte
	for _, v := range vs {
		p = protowire.AppendVarint(p, uint64(int64(v)))
	}
	return appendBytes(b, num, p)
}

func appendPackedUint64s(b []byte, num protowire.Number, vs []uint64) []byte {
	if len(vs) == 0 {
		return b
	}
	var p []byte
	for _, v := range vs {
		p = protowire.AppendVarint(p, v)
	}
	return appendBytes(b, num, p)
}

func appendPackedFloats(b []byte, num protowire.Number, vs []float32) []byte {
	if len(vs) == 0 {
		return b
	}
	var p []byte
	for _, v := range vs {
		p = protowire.AppendFixed32(p, math.Float32bits(v))
	}
	return appendBytes(b, num, p)
}

func appendPackedDoubles(b []byte, num protowire.Number, vs []float64) []byte {
	if len(vs) == 0 {
		return b
	}
	var p []byte
	for _, v := range vs {
		p = protowire.AppendFixed64(p, math.Float64bits(v))
	}
	return appendBytes(b, num, p)
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, ErrWireType
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, errors.Wrap(protowire.ParseError(n), "varint")
	}
	return v, n, nil
}

func consumeFloat(typ protowire.Type, b []byte) (float32, int, error) {
	if typ != protowire.Fixed32Type {
		return 0, 0, ErrWireType
	}
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return 0, 0, errors.Wrap(protowire.ParseError(n), "fixed32")
	}
	return math.Float32frombits(v), n, nil
}

// consumeBytes returns a copy of the length-delimited payload. The copy is
// never nil so presence of an empty bytes field survives a round trip.
func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, ErrWireType
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, errors.Wrap(protowire.ParseError(n), "bytes")
	}
	return append([]byte{}, v...), n, nil
}

func consumeString(typ protowire.Type, b []byte) (string, int, error) {
	v, n, err := consumeBytes(typ, b)
	return string(v), n, err
}

func consumeMessage(typ protowire.Type, b []byte, m Message) (int, error) {
	if typ != protowire.BytesType {
		return 0, ErrWireType
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, errors.Wrap(protowire.ParseError(n), "message")
	}
	if err := Unmarshal(v, m); err != nil {
		return 0, err
	}
	return n, nil
}

// forEachVarint handles both encodings of a repeated varint field.
func forEachVarint(typ protowire.Type, b []byte, fn func(uint64)) (int, error) {
	switch typ {
	case protowire.VarintType:
		v, n, err := consumeVarint(typ, b)
		if err != nil {
			return 0, err
		}
		fn(v)
		return n, nil
	case protowire.BytesType:
		p, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, errors.Wrap(protowire.ParseError(n), "packed varint")
		}
		for len(p) > 0 {
			v, m := protowire.ConsumeVarint(p)
			if m < 0 {
				return 0, errors.Wrap(protowire.ParseError(m), "packed varint")
			}
			fn(v)
			p = p[m:]
		}
		return n, nil
	}
	return 0, ErrWireType
}

func consumeInt64s(typ protowire.Type, b []byte, dst *[]int64) (int, error) {
	return forEachVarint(typ, b, func(v uint64) { *dst = append(*dst, int64(v)) })
}

func consumeInt32s(typ protowire.Type, b []byte, dst *[]int32) (int, error) {
	return forEachVarint(typ, b, func(v uint64) { *dst = append(*dst, int32(v)) })
}

func consumeUint64s(typ protowire.Type, b []byte, dst *[]uint64) (int, error) {
	return forEachVarint(typ, b, func(v uint64) { *dst = append(*dst, v) })
}

func consumeFloats(typ protowire.Type, b []byte, dst *[]float32) (int, error) {
	switch typ {
	case protowire.Fixed32Type:
		v, n, err := consumeFloat(typ, b)
		if err != nil {
			return 0, err
		}
		*dst = append(*dst, v)
		return n, nil
	case protowire.BytesType:
		p, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, errors.Wrap(protowire.ParseError(n), "packed fixed32")
		}
		if len(p)%4 != 0 {
			return 0, ErrTruncated
		}
		for len(p) > 0 {
			v, m := protowire.ConsumeFixed32(p)
			*dst = append(*dst, math.Float32frombits(v))
			p = p[m:]
		}
		return n, nil
	}
	return 0, ErrWireType
}

func consumeDoubles(typ protowire.Type, b []byte, dst *[]float64) (int, error) {
	switch typ {
	case protowire.Fixed64Type:
		v, n := protowire.ConsumeFixed64(b)
		if n < 0 {
			return 0, errors.Wrap(protowire.ParseError(n), "fixed64")
		}
		*dst = append(*dst, math.Float64frombits(v))
		return n, nil
	case protowire.BytesType:
		p, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, errors.Wrap(protowire.ParseError(n), "packed fixed64")
		}
		if len(p)%8 != 0 {
			return 0, ErrTruncated
		}
		for len(p) > 0 {
			v, m := protowire.ConsumeFixed64(p)
			*dst = append(*dst, math.Float64frombits(v))
			p = p[m:]
		}
		return n, nil
	}
	return 0, ErrWireType
}
