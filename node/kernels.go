package node

import (
	"math"
	"math/rand/v2"

	"git.enflame.cn/hai.bai/tdgen/assert"
	"git.enflame.cn/hai.bai/tdgen/codec"
)

// Reference computations for expected outputs. They favour clarity over
// speed; fixture tensors are small.

func product(dims []int64) int64 {
	n := int64(1)
	for _, d := range dims {
		n *= d
	}
	return n
}

func unary[T, R codec.Element](a *codec.Array, fn func(T) R) *codec.Array {
	in := codec.Values[T](a)
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return codec.Make(out, a.Dims)
}

// broadcastShape applies numpy multidirectional broadcasting.
func broadcastShape(shapes ...[]int64) []int64 {
	rank := 0
	for _, s := range shapes {
		rank = max(rank, len(s))
	}
	out := make([]int64, rank)
	for i := range out {
		out[i] = 1
	}
	for _, s := range shapes {
		off := rank - len(s)
		for i, d := range s {
			switch o := out[off+i]; {
			case o == 1:
				out[off+i] = d
			case d == 1 || d == o:
			default:
				assert.Assert(false, "shapes %v do not broadcast", shapes)
			}
		}
	}
	return out
}

// broadcastOffsets maps every flat index of out to the flat index of an
// input shaped in.
func broadcastOffsets(in, out []int64) []int {
	rank := len(out)
	strides := make([]int64, rank)
	stride := int64(1)
	for i := len(in) - 1; i >= 0; i-- {
		axis := rank - len(in) + i
		if in[i] != 1 {
			strides[axis] = stride
		}
		stride *= in[i]
	}

	n := product(out)
	offsets := make([]int, n)
	idx := make([]int64, rank)
	for k := int64(0); k < n; k++ {
		off := int64(0)
		for axis := range idx {
			off += idx[axis] * strides[axis]
		}
		offsets[k] = int(off)
		for axis := rank - 1; axis >= 0; axis-- {
			idx[axis]++
			if idx[axis] < out[axis] {
				break
			}
			idx[axis] = 0
		}
	}
	return offsets
}

func binary[T, R codec.Element](a, b *codec.Array, fn func(T, T) R) *codec.Array {
	dims := broadcastShape(a.Dims, b.Dims)
	x, y := codec.Values[T](a), codec.Values[T](b)
	xo, yo := broadcastOffsets(a.Dims, dims), broadcastOffsets(b.Dims, dims)
	out := make([]R, len(xo))
	for i := range out {
		out[i] = fn(x[xo[i]], y[yo[i]])
	}
	return codec.Make(out, dims)
}

func where[T codec.Element](cond, a, b *codec.Array) *codec.Array {
	dims := broadcastShape(cond.Dims, a.Dims, b.Dims)
	c, x, y := codec.Values[bool](cond), codec.Values[T](a), codec.Values[T](b)
	co, xo, yo := broadcastOffsets(cond.Dims, dims), broadcastOffsets(a.Dims, dims), broadcastOffsets(b.Dims, dims)
	out := make([]T, len(co))
	for i := range out {
		if c[co[i]] {
			out[i] = x[xo[i]]
		} else {
			out[i] = y[yo[i]]
		}
	}
	return codec.Make(out, dims)
}

func matmul(a, b *codec.Array) *codec.Array {
	assert.Assert(a.Rank() == 2 && b.Rank() == 2 && a.Dims[1] == b.Dims[0],
		"matmul of %v and %v", a.Dims, b.Dims)
	m, k, n := int(a.Dims[0]), int(a.Dims[1]), int(b.Dims[1])
	x, y := codec.Values[float32](a), codec.Values[float32](b)
	out := make([]float32, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var acc float64
			for p := 0; p < k; p++ {
				acc += float64(x[i*k+p]) * float64(y[p*n+j])
			}
			out[i*n+j] = float32(acc)
		}
	}
	return codec.New(out, int64(m), int64(n))
}

// transpose permutes axes; a nil perm reverses them.
func transpose[T codec.Element](a *codec.Array, perm []int) *codec.Array {
	rank := a.Rank()
	if perm == nil {
		perm = make([]int, rank)
		for i := range perm {
			perm[i] = rank - 1 - i
		}
	}
	assert.Assert(len(perm) == rank, "perm %v for rank %d", perm, rank)

	dims := make([]int64, rank)
	for i, p := range perm {
		dims[i] = a.Dims[p]
	}
	inStrides := make([]int64, rank)
	stride := int64(1)
	for i := rank - 1; i >= 0; i-- {
		inStrides[i] = stride
		stride *= a.Dims[i]
	}

	in := codec.Values[T](a)
	out := make([]T, len(in))
	idx := make([]int64, rank)
	for k := range out {
		off := int64(0)
		for axis, p := range perm {
			off += idx[axis] * inStrides[p]
		}
		out[k] = in[off]
		for axis := rank - 1; axis >= 0; axis-- {
			idx[axis]++
			if idx[axis] < dims[axis] {
				break
			}
			idx[axis] = 0
		}
	}
	return codec.Make(out, dims)
}

// split returns outer, n and inner so that dims == outer x n x inner
// around axis.
func split(dims []int64, axis int) (int, int, int) {
	return int(product(dims[:axis])), int(dims[axis]), int(product(dims[axis+1:]))
}

func normalizeAxis(axis, rank int) int {
	if axis < 0 {
		axis += rank
	}
	assert.Assert(axis >= 0 && axis < rank, "axis %d out of range for rank %d", axis, rank)
	return axis
}

func softmax(a *codec.Array, axis int) *codec.Array {
	axis = normalizeAxis(axis, a.Rank())
	outer, n, inner := split(a.Dims, axis)
	in := codec.Values[float32](a)
	out := make([]float32, len(in))
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			at := func(j int) int { return (o*n+j)*inner + i }
			hi := math.Inf(-1)
			for j := 0; j < n; j++ {
				hi = math.Max(hi, float64(in[at(j)]))
			}
			var sum float64
			for j := 0; j < n; j++ {
				sum += math.Exp(float64(in[at(j)]) - hi)
			}
			for j := 0; j < n; j++ {
				out[at(j)] = float32(math.Exp(float64(in[at(j)])-hi) / sum)
			}
		}
	}
	return codec.Make(out, a.Dims)
}

// concat joins arrays of equal shape except along axis.
func concat[T codec.Element](arrays []*codec.Array, axis int) *codec.Array {
	assert.Assert(len(arrays) > 0, "concat of nothing")
	first := arrays[0]
	axis = normalizeAxis(axis, first.Rank())
	dims := append([]int64{}, first.Dims...)
	dims[axis] = 0
	for _, a := range arrays {
		assert.Assert(a.Rank() == first.Rank(), "concat rank mismatch %v vs %v", a.Dims, first.Dims)
		dims[axis] += a.Dims[axis]
	}

	outer, _, inner := split(first.Dims, axis)
	out := make([]T, 0, product(dims))
	for o := 0; o < outer; o++ {
		for _, a := range arrays {
			block := int(a.Dims[axis]) * inner
			out = append(out, codec.Values[T](a)[o*block:(o+1)*block]...)
		}
	}
	return codec.Make(out, dims)
}

// stack joins arrays along a new axis.
func stack[T codec.Element](arrays []*codec.Array, axis int) *codec.Array {
	assert.Assert(len(arrays) > 0, "stack of nothing")
	axis = normalizeAxis(axis, arrays[0].Rank()+1)
	expanded := make([]*codec.Array, len(arrays))
	for i, a := range arrays {
		dims := append([]int64{}, a.Dims[:axis]...)
		dims = append(dims, 1)
		dims = append(dims, a.Dims[axis:]...)
		expanded[i] = a.Reshape(dims...)
	}
	return concat[T](expanded, axis)
}

func randn(r *rand.Rand, dims ...int64) *codec.Array {
	data := make([]float32, product(dims))
	for i := range data {
		data[i] = float32(r.NormFloat64())
	}
	return codec.Make(data, dims)
}

func uniform(r *rand.Rand, lo, hi float32, dims ...int64) *codec.Array {
	data := make([]float32, product(dims))
	for i := range data {
		data[i] = lo + (hi-lo)*r.Float32()
	}
	return codec.Make(data, dims)
}

func randBools(r *rand.Rand, dims ...int64) *codec.Array {
	data := make([]bool, product(dims))
	for i := range data {
		data[i] = r.IntN(2) == 1
	}
	return codec.Make(data, dims)
}
