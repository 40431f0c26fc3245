package types

import "fmt"

// IdxRange1D is a contiguous range of grid indices [Front, Front+Size)
type IdxRange1D struct {
	Front, Size int
}

func NewIdxRange1D(front, size int) IdxRange1D {
	if size < 0 {
		panic(fmt.Errorf("negative index range size: %d", size))
	}
	return IdxRange1D{Front: front, Size: size}
}

func (r IdxRange1D) Back() int { return r.Front + r.Size - 1 }

func (r IdxRange1D) Contains(i int) bool { return i >= r.Front && i < r.Front+r.Size }

// RemoveFirst drops the first n indices
func (r IdxRange1D) RemoveFirst(n int) IdxRange1D {
	if n > r.Size {
		n = r.Size
	}
	return IdxRange1D{Front: r.Front + n, Size: r.Size - n}
}

// TakeFirst keeps the first n indices
func (r IdxRange1D) TakeFirst(n int) IdxRange1D {
	if n > r.Size {
		n = r.Size
	}
	return IdxRange1D{Front: r.Front, Size: n}
}

func (r IdxRange1D) Indices() (I []int) {
	I = make([]int, r.Size)
	for i := range I {
		I[i] = r.Front + i
	}
	return
}

// IdxRange2D is the cartesian product of two 1D ranges, iterated with the
// second dimension contiguous.
type IdxRange2D struct {
	R1, R2 IdxRange1D
}

func NewIdxRange2D(r1, r2 IdxRange1D) IdxRange2D {
	return IdxRange2D{R1: r1, R2: r2}
}

func (r IdxRange2D) Size() int { return r.R1.Size * r.R2.Size }

func (r IdxRange2D) Front() [2]int { return [2]int{r.R1.Front, r.R2.Front} }

func (r IdxRange2D) Back() [2]int { return [2]int{r.R1.Back(), r.R2.Back()} }

func (r IdxRange2D) Extents() [2]int { return [2]int{r.R1.Size, r.R2.Size} }

func (r IdxRange2D) Contains(i, j int) bool { return r.R1.Contains(i) && r.R2.Contains(j) }

// Linear is the position of (i, j) in a row-major array spanning the range
func (r IdxRange2D) Linear(i, j int) int {
	return (i-r.R1.Front)*r.R2.Size + (j - r.R2.Front)
}

// Unravel is the inverse of Linear
func (r IdxRange2D) Unravel(k int) (i, j int) {
	i, j = k/r.R2.Size+r.R1.Front, k%r.R2.Size+r.R2.Front
	return
}
