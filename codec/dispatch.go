package codec

import (
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/pkg/errors"
)

// Encode serializes v as the message matching the category declared by t,
// naming it name. v must be of the declared kind.
func Encode(t *onnxpb.TypeProto, v Value, name string) (onnxpb.Message, error) {
	category := t.Category()
	if v == nil {
		return nil, errors.Wrapf(ErrNilValue, "%q declared as %v", name, category)
	}
	mismatch := func() error {
		return errors.Wrapf(ErrKindMismatch, "%q declared as %v, got %s", name, category, Describe(v))
	}

	switch category {
	case onnxpb.CategoryMap:
		m, ok := v.(*Map)
		if !ok {
			return nil, mismatch()
		}
		return FromDict(m, name)
	case onnxpb.CategorySequence:
		s, ok := v.(Sequence)
		if !ok {
			return nil, mismatch()
		}
		return FromList(s, name)
	case onnxpb.CategoryOptional:
		o, ok := v.(Optional)
		if !ok {
			return nil, mismatch()
		}
		return FromOptional(o, name)
	case onnxpb.CategoryTensor:
		a, ok := v.(*Array)
		if !ok {
			return nil, mismatch()
		}
		return FromArray(a, name)
	}
	return nil, errors.Wrapf(ErrUnknownCategory, "%q", name)
}

// Marshal is Encode followed by wire encoding.
func Marshal(t *onnxpb.TypeProto, v Value, name string) ([]byte, error) {
	msg, err := Encode(t, v, name)
	if err != nil {
		return nil, err
	}
	return onnxpb.Marshal(msg), nil
}

// Decode parses b as the message declared by t and converts it back to a
// value, returning the serialized name alongside.
func Decode(t *onnxpb.TypeProto, b []byte) (Value, string, error) {
	switch t.Category() {
	case onnxpb.CategoryMap:
		var mp onnxpb.MapProto
		if err := onnxpb.Unmarshal(b, &mp); err != nil {
			return nil, "", errors.WithMessage(err, "map")
		}
		m, err := ToDict(&mp)
		return m, mp.Name, err
	case onnxpb.CategorySequence:
		var sp onnxpb.SequenceProto
		if err := onnxpb.Unmarshal(b, &sp); err != nil {
			return nil, "", errors.WithMessage(err, "sequence")
		}
		s, err := ToList(&sp)
		return s, sp.Name, err
	case onnxpb.CategoryOptional:
		var op onnxpb.OptionalProto
		if err := onnxpb.Unmarshal(b, &op); err != nil {
			return nil, "", errors.WithMessage(err, "optional")
		}
		o, err := ToOptional(&op)
		return o, op.Name, err
	case onnxpb.CategoryTensor:
		var tp onnxpb.TensorProto
		if err := onnxpb.Unmarshal(b, &tp); err != nil {
			return nil, "", errors.WithMessage(err, "tensor")
		}
		a, err := ToArray(&tp)
		return a, tp.Name, err
	}
	return nil, "", ErrUnknownCategory
}
