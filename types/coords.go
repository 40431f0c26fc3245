package types

import (
	"fmt"
	"math"
)

// Coord2D is a point (or a vector) in a two dimensional coordinate system,
// logical (r, theta) or physical (x, y) depending on context.
type Coord2D [2]float64

func NewCoord2D(c1, c2 float64) Coord2D { return Coord2D{c1, c2} }

func (c Coord2D) Add(b Coord2D) Coord2D { return Coord2D{c[0] + b[0], c[1] + b[1]} }

func (c Coord2D) Sub(b Coord2D) Coord2D { return Coord2D{c[0] - b[0], c[1] - b[1]} }

func (c Coord2D) Scale(s float64) Coord2D { return Coord2D{s * c[0], s * c[1]} }

// NormInf is the max norm
func (c Coord2D) NormInf() float64 { return math.Max(math.Abs(c[0]), math.Abs(c[1])) }

func (c Coord2D) String() string { return fmt.Sprintf("(%g, %g)", c[0], c[1]) }

// Matrix2x2 is indexed [row][col]
type Matrix2x2 [2][2]float64

func Identity2x2() Matrix2x2 { return Matrix2x2{{1, 0}, {0, 1}} }

func (m Matrix2x2) Det() float64 { return m[0][0]*m[1][1] - m[0][1]*m[1][0] }

func (m Matrix2x2) Inverse() (inv Matrix2x2) {
	det := m.Det()
	if det == 0 {
		panic(fmt.Errorf("singular 2x2 matrix: %v", m))
	}
	inv = Matrix2x2{
		{m[1][1] / det, -m[0][1] / det},
		{-m[1][0] / det, m[0][0] / det},
	}
	return
}

func (m Matrix2x2) Transpose() Matrix2x2 {
	return Matrix2x2{{m[0][0], m[1][0]}, {m[0][1], m[1][1]}}
}

func (m Matrix2x2) Mul(b Matrix2x2) (r Matrix2x2) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][0]*b[0][j] + m[i][1]*b[1][j]
		}
	}
	return
}

func (m Matrix2x2) MulVec(v Coord2D) Coord2D {
	return Coord2D{
		m[0][0]*v[0] + m[0][1]*v[1],
		m[1][0]*v[0] + m[1][1]*v[1],
	}
}

func (m Matrix2x2) Scale(s float64) (r Matrix2x2) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = s * m[i][j]
		}
	}
	return
}

func (m Matrix2x2) Add(b Matrix2x2) (r Matrix2x2) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][j] + b[i][j]
		}
	}
	return
}
