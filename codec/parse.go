package codec

import (
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/pkg/errors"
)

// ToArray is the inverse of FromArray. It also accepts the typed *_data
// fields written by other producers.
func ToArray(tp *onnxpb.TensorProto) (*Array, error) {
	if tp == nil {
		return nil, errors.Wrap(ErrNilValue, "tensor")
	}
	a := &Array{DType: tp.DataType, Dims: append([]int64{}, tp.Dims...)}
	n := tp.NumElements()

	switch {
	case tp.DataType == onnxpb.DataTypeString:
		strs := make([]string, len(tp.StringData))
		for i, s := range tp.StringData {
			strs[i] = string(s)
		}
		a.Data = strs
		if int64(len(strs)) != n {
			return nil, errors.Wrapf(ErrShapeMismatch, "tensor %q: %d strings for dims %v", tp.Name, len(strs), tp.Dims)
		}
	case tp.RawData != nil:
		size := tp.DataType.Size()
		if size == 0 {
			return nil, errors.Wrapf(ErrUnsupportedType, "tensor %q: %v", tp.Name, tp.DataType)
		}
		if int64(len(tp.RawData)) != n*int64(size) {
			return nil, errors.Wrapf(ErrShapeMismatch, "tensor %q: %d raw bytes for dims %v of %v",
				tp.Name, len(tp.RawData), tp.Dims, tp.DataType)
		}
		data, err := decodeRaw(tp.DataType, tp.RawData, n)
		if err != nil {
			return nil, errors.WithMessagef(err, "tensor %q", tp.Name)
		}
		a.Data = data
	default:
		data, count, err := decodeTyped(tp)
		if err != nil {
			return nil, errors.WithMessagef(err, "tensor %q", tp.Name)
		}
		if int64(count) != n {
			return nil, errors.Wrapf(ErrShapeMismatch, "tensor %q: %d values for dims %v", tp.Name, count, tp.Dims)
		}
		a.Data = data
	}
	return a, nil
}

// ToList is the inverse of FromList.
func ToList(sp *onnxpb.SequenceProto) (Sequence, error) {
	if sp == nil {
		return nil, errors.Wrap(ErrNilValue, "sequence")
	}
	seq := Sequence{}
	switch sp.ElemType {
	case onnxpb.ElemTypeTensor:
		for _, tp := range sp.TensorValues {
			a, err := ToArray(tp)
			if err != nil {
				return nil, errors.WithMessagef(err, "sequence %q", sp.Name)
			}
			seq = append(seq, a)
		}
	case onnxpb.ElemTypeSequence:
		for _, inner := range sp.SequenceValues {
			s, err := ToList(inner)
			if err != nil {
				return nil, errors.WithMessagef(err, "sequence %q", sp.Name)
			}
			seq = append(seq, s)
		}
	case onnxpb.ElemTypeMap:
		for _, mp := range sp.MapValues {
			m, err := ToDict(mp)
			if err != nil {
				return nil, errors.WithMessagef(err, "sequence %q", sp.Name)
			}
			seq = append(seq, m)
		}
	case onnxpb.ElemTypeOptional:
		for _, op := range sp.OptionalValues {
			o, err := ToOptional(op)
			if err != nil {
				return nil, errors.WithMessagef(err, "sequence %q", sp.Name)
			}
			seq = append(seq, o)
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedType, "sequence %q of %v", sp.Name, sp.ElemType)
	}
	return seq, nil
}

// ToDict is the inverse of FromDict.
func ToDict(mp *onnxpb.MapProto) (*Map, error) {
	if mp == nil {
		return nil, errors.Wrap(ErrNilValue, "map")
	}
	m := &Map{KeyType: mp.KeyType}
	switch {
	case mp.KeyType == onnxpb.DataTypeString:
		m.StringKeys = make([]string, len(mp.StringKeys))
		for i, k := range mp.StringKeys {
			m.StringKeys[i] = string(k)
		}
	case mp.KeyType.IsIntegral():
		m.Keys = append([]int64{}, mp.Keys...)
	default:
		return nil, errors.Wrapf(ErrMapKeyType, "map %q keyed by %v", mp.Name, mp.KeyType)
	}
	values := Sequence{}
	if mp.Values != nil {
		var err error
		if values, err = ToList(mp.Values); err != nil {
			return nil, errors.WithMessagef(err, "map %q values", mp.Name)
		}
	}
	if len(values) != m.Len() {
		return nil, errors.Wrapf(ErrMapLength, "map %q: %d keys, %d values", mp.Name, m.Len(), len(values))
	}
	m.Values = values
	return m, nil
}

// ToOptional is the inverse of FromOptional.
func ToOptional(op *onnxpb.OptionalProto) (Optional, error) {
	if op == nil {
		return Optional{}, errors.Wrap(ErrNilValue, "optional")
	}
	var (
		v   Value
		err error
	)
	switch op.ElemType {
	case onnxpb.ElemTypeUndefined:
		return None(), nil
	case onnxpb.ElemTypeTensor:
		v, err = ToArray(op.TensorValue)
	case onnxpb.ElemTypeSequence:
		v, err = ToList(op.SequenceValue)
	case onnxpb.ElemTypeMap:
		v, err = ToDict(op.MapValue)
	case onnxpb.ElemTypeOptional:
		v, err = ToOptional(op.OptionalValue)
	default:
		err = errors.Wrapf(ErrUnsupportedType, "%v", op.ElemType)
	}
	if err != nil {
		return Optional{}, errors.WithMessagef(err, "optional %q", op.Name)
	}
	return Some(v), nil
}
