package types

import "fmt"

// Field2D is a scalar field stored row-major, the second index contiguous
type Field2D struct {
	N1, N2 int
	Data   []float64
}

func NewField2D(n1, n2 int) *Field2D {
	return &Field2D{N1: n1, N2: n2, Data: make([]float64, n1*n2)}
}

// NewField2DFromData wraps data without copying
func NewField2DFromData(n1, n2 int, data []float64) *Field2D {
	if len(data) != n1*n2 {
		panic(fmt.Errorf("data length %d does not match field dimensions %dx%d", len(data), n1, n2))
	}
	return &Field2D{N1: n1, N2: n2, Data: data}
}

func (f *Field2D) At(i, j int) float64 { return f.Data[i*f.N2+j] }

func (f *Field2D) Set(i, j int, val float64) { f.Data[i*f.N2+j] = val }

func (f *Field2D) Size() int { return f.N1 * f.N2 }

func (f *Field2D) Copy() *Field2D {
	return &Field2D{N1: f.N1, N2: f.N2, Data: append([]float64{}, f.Data...)}
}

func (f *Field2D) CopyFrom(src *Field2D) {
	f.checkShape(src.N1, src.N2)
	copy(f.Data, src.Data)
}

func (f *Field2D) checkShape(n1, n2 int) {
	if f.N1 != n1 || f.N2 != n2 {
		panic(fmt.Errorf("field shapes differ: %dx%d vs %dx%d", f.N1, f.N2, n1, n2))
	}
}

// VectorField2D holds two components, each a row-major N1xN2 block, in one
// backing slice: Data[:N1*N2] is the first component.
type VectorField2D struct {
	N1, N2 int
	Data   []float64
}

func NewVectorField2D(n1, n2 int) *VectorField2D {
	return &VectorField2D{N1: n1, N2: n2, Data: make([]float64, 2*n1*n2)}
}

func NewVectorField2DFromData(n1, n2 int, data []float64) *VectorField2D {
	if len(data) != 2*n1*n2 {
		panic(fmt.Errorf("data length %d does not match vector field dimensions 2x%dx%d", len(data), n1, n2))
	}
	return &VectorField2D{N1: n1, N2: n2, Data: data}
}

func (f *VectorField2D) Size() int { return f.N1 * f.N2 }

func (f *VectorField2D) Get(i, j int) Coord2D {
	k := i*f.N2 + j
	return Coord2D{f.Data[k], f.Data[f.Size()+k]}
}

func (f *VectorField2D) Set(i, j int, v Coord2D) {
	k := i*f.N2 + j
	f.Data[k], f.Data[f.Size()+k] = v[0], v[1]
}

// GetLinear and SetLinear address points by their row-major position
func (f *VectorField2D) GetLinear(k int) Coord2D {
	return Coord2D{f.Data[k], f.Data[f.Size()+k]}
}

func (f *VectorField2D) SetLinear(k int, v Coord2D) {
	f.Data[k], f.Data[f.Size()+k] = v[0], v[1]
}

// Component is a view of component d sharing the backing data
func (f *VectorField2D) Component(d int) *Field2D {
	n := f.Size()
	return &Field2D{N1: f.N1, N2: f.N2, Data: f.Data[d*n : (d+1)*n]}
}

func (f *VectorField2D) Copy() *VectorField2D {
	return &VectorField2D{N1: f.N1, N2: f.N2, Data: append([]float64{}, f.Data...)}
}

func (f *VectorField2D) CopyFrom(src *VectorField2D) {
	if f.N1 != src.N1 || f.N2 != src.N2 {
		panic(fmt.Errorf("vector field shapes differ: %dx%d vs %dx%d", f.N1, f.N2, src.N1, src.N2))
	}
	copy(f.Data, src.Data)
}
