package types

import "fmt"

// IdxRangeSlice is a uniformly strided subset of a multi-dimensional index
// range: per dimension the indices front, front+stride, ... front+stride*(extent-1)
type IdxRangeSlice struct {
	front, extents, strides []int
}

func NewIdxRangeSlice(front, extents, strides []int) (s IdxRangeSlice) {
	if len(front) != len(extents) || len(front) != len(strides) {
		panic(fmt.Errorf("inconsistent slice dimensions: %d, %d, %d",
			len(front), len(extents), len(strides)))
	}
	for d := range strides {
		if strides[d] < 1 || extents[d] < 0 {
			panic(fmt.Errorf("invalid slice along dimension %d: extent %d, stride %d",
				d, extents[d], strides[d]))
		}
	}
	s = IdxRangeSlice{
		front:   append([]int{}, front...),
		extents: append([]int{}, extents...),
		strides: append([]int{}, strides...),
	}
	return
}

// NewIdxRangeSlice1D is the one dimensional specialization
func NewIdxRangeSlice1D(front, extent, stride int) IdxRangeSlice {
	return NewIdxRangeSlice([]int{front}, []int{extent}, []int{stride})
}

func (s IdxRangeSlice) NDim() int { return len(s.front) }

func (s IdxRangeSlice) Front() []int { return append([]int{}, s.front...) }

func (s IdxRangeSlice) Back() (back []int) {
	back = make([]int, len(s.front))
	for d := range back {
		back[d] = s.front[d] + s.strides[d]*(s.extents[d]-1)
	}
	return
}

func (s IdxRangeSlice) Extents() []int { return append([]int{}, s.extents...) }

func (s IdxRangeSlice) Strides() []int { return append([]int{}, s.strides...) }

func (s IdxRangeSlice) Size() (size int) {
	size = 1
	for _, e := range s.extents {
		size *= e
	}
	return
}

func (s IdxRangeSlice) Contains(idx ...int) bool {
	if len(idx) != len(s.front) {
		return false
	}
	for d := range idx {
		offset := idx[d] - s.front[d]
		if offset%s.strides[d] != 0 {
			return false
		}
		if k := offset / s.strides[d]; k < 0 || k >= s.extents[d] {
			return false
		}
	}
	return true
}

// ContainsRange is true when every index of the contiguous range
// [front, front+extents) belongs to the slice.
func (s IdxRangeSlice) ContainsRange(front, extents []int) bool {
	if len(front) != len(s.front) || len(extents) != len(s.front) {
		return false
	}
	for d := range front {
		if extents[d] == 0 {
			return true
		}
		if extents[d] > 1 && s.strides[d] != 1 {
			return false
		}
	}
	back := make([]int, len(front))
	for d := range back {
		back[d] = front[d] + extents[d] - 1
	}
	return s.Contains(front...) && s.Contains(back...)
}

// GetIndex is the position of idx within the slice, valid only if Contains(idx)
func (s IdxRangeSlice) GetIndex(idx ...int) (pos []int) {
	pos = make([]int, len(idx))
	for d := range idx {
		pos[d] = (idx[d] - s.front[d]) / s.strides[d]
	}
	return
}

// At is the k-th index of a 1D slice
func (s IdxRangeSlice) At(k int) int {
	s.check1D()
	if k < 0 || k >= s.extents[0] {
		panic(fmt.Errorf("slice position %d out of range [0, %d)", k, s.extents[0]))
	}
	return s.front[0] + k*s.strides[0]
}

// Indices lists the indices of a 1D slice in increasing order
func (s IdxRangeSlice) Indices() (I []int) {
	s.check1D()
	I = make([]int, s.extents[0])
	for k := range I {
		I[k] = s.front[0] + k*s.strides[0]
	}
	return
}

func (s IdxRangeSlice) check1D() {
	if len(s.front) != 1 {
		panic(fmt.Errorf("iteration is only defined for 1D slices, have %d dimensions", len(s.front)))
	}
}

func (s IdxRangeSlice) String() string {
	return fmt.Sprintf("IdxRangeSlice{front: %v, extents: %v, strides: %v}", s.front, s.extents, s.strides)
}
