package codec

import (
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/pkg/errors"
)

// FromArray serializes a as a TensorProto. Numeric data goes to raw_data,
// strings to string_data. An empty name is left unset.
func FromArray(a *Array, name string) (*onnxpb.TensorProto, error) {
	if a == nil {
		return nil, errors.Wrap(ErrNilValue, "array")
	}
	dt, n, ok := dataInfo(a.Data)
	if !ok || dt != a.DType {
		return nil, errors.Wrapf(ErrUnsupportedType, "%T declared as %v", a.Data, a.DType)
	}
	if int64(n) != a.Size() {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d elements for dims %v", n, a.Dims)
	}

	tp := &onnxpb.TensorProto{
		Dims:     append([]int64{}, a.Dims...),
		DataType: a.DType,
		Name:     name,
	}
	if a.DType == onnxpb.DataTypeString {
		for _, s := range a.Data.([]string) {
			tp.StringData = append(tp.StringData, []byte(s))
		}
		return tp, nil
	}
	raw, err := encodeRaw(a.Data, n*a.DType.Size())
	if err != nil {
		return nil, errors.WithMessagef(err, "tensor %q", name)
	}
	tp.RawData = raw
	return tp, nil
}

// FromList serializes s as a SequenceProto. The element kind comes from the
// first element; an empty sequence is a sequence of tensors.
func FromList(s Sequence, name string) (*onnxpb.SequenceProto, error) {
	sp := &onnxpb.SequenceProto{Name: name, ElemType: onnxpb.ElemTypeTensor}
	if len(s) > 0 && s[0] != nil {
		sp.ElemType = s[0].Kind()
	}
	for i, v := range s {
		if v == nil {
			return nil, errors.Wrapf(ErrNilValue, "sequence %q element %d", name, i)
		}
		if v.Kind() != sp.ElemType {
			return nil, errors.Wrapf(ErrMixedSequence, "sequence %q element %d is %v, want %v",
				name, i, v.Kind(), sp.ElemType)
		}
		var err error
		switch v := v.(type) {
		case *Array:
			var tp *onnxpb.TensorProto
			tp, err = FromArray(v, "")
			sp.TensorValues = append(sp.TensorValues, tp)
		case Sequence:
			var inner *onnxpb.SequenceProto
			inner, err = FromList(v, "")
			sp.SequenceValues = append(sp.SequenceValues, inner)
		case *Map:
			var mp *onnxpb.MapProto
			mp, err = FromDict(v, "")
			sp.MapValues = append(sp.MapValues, mp)
		case Optional:
			var op *onnxpb.OptionalProto
			op, err = FromOptional(v, "")
			sp.OptionalValues = append(sp.OptionalValues, op)
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "sequence %q element %d", name, i)
		}
	}
	return sp, nil
}

// FromDict serializes m as a MapProto, keys in insertion order. Empty maps
// are rejected.
func FromDict(m *Map, name string) (*onnxpb.MapProto, error) {
	if m == nil {
		return nil, errors.Wrap(ErrNilValue, "map")
	}
	mp := &onnxpb.MapProto{Name: name, KeyType: m.KeyType}
	switch {
	case m.KeyType == onnxpb.DataTypeString:
		for _, k := range m.StringKeys {
			mp.StringKeys = append(mp.StringKeys, []byte(k))
		}
	case m.KeyType.IsIntegral():
		mp.Keys = append([]int64{}, m.Keys...)
	default:
		return nil, errors.Wrapf(ErrMapKeyType, "map %q keyed by %v", name, m.KeyType)
	}
	if m.Len() != len(m.Values) {
		return nil, errors.Wrapf(ErrMapLength, "map %q: %d keys, %d values", name, m.Len(), len(m.Values))
	}
	if m.Len() == 0 {
		return nil, errors.Wrapf(ErrMapLength, "map %q is empty", name)
	}
	values, err := FromList(m.Values, "")
	if err != nil {
		return nil, errors.WithMessagef(err, "map %q values", name)
	}
	mp.Values = values
	return mp, nil
}

// FromOptional serializes o as an OptionalProto. An empty optional keeps
// elem_type UNDEFINED and carries no payload.
func FromOptional(o Optional, name string) (*onnxpb.OptionalProto, error) {
	op := &onnxpb.OptionalProto{Name: name}
	if !o.HasElement() {
		return op, nil
	}
	op.ElemType = o.Elem.Kind()
	var err error
	switch v := o.Elem.(type) {
	case *Array:
		op.TensorValue, err = FromArray(v, "")
	case Sequence:
		op.SequenceValue, err = FromList(v, "")
	case *Map:
		op.MapValue, err = FromDict(v, "")
	case Optional:
		op.OptionalValue, err = FromOptional(v, "")
	default:
		err = errors.Wrapf(ErrUnsupportedType, "%T", v)
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "optional %q", name)
	}
	return op, nil
}
