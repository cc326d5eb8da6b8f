package codec

import "github.com/pkg/errors"

var (
	ErrNilValue        = errors.New("nil value")
	ErrUnsupportedType = errors.New("unsupported data type")
	ErrShapeMismatch   = errors.New("data does not match shape")
	ErrMixedSequence   = errors.New("sequence elements differ in kind")
	ErrMapKeyType      = errors.New("map key type must be an integer or string")
	ErrMapLength       = errors.New("invalid map length")
	ErrUnknownCategory = errors.New("unknown value category")
	ErrKindMismatch    = errors.New("value kind does not match declared type")
)
