package timestepper

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	CNMaxIterations = 20
	CNTolerance     = 1.e-12
)

// CrankNicolsonStepper solves y = y0 + dt/2 (dy(y0) + dy(y)) by fixed point
// iteration, starting from an explicit Euler guess.
type CrankNicolsonStepper struct {
	stages
	yOld       []float64
	Iterations int // iterations used by the last Update
	Converged  bool
}

func NewCrankNicolsonStepper(nY, nDeriv int) *CrankNicolsonStepper {
	return &CrankNicolsonStepper{
		stages: newStages(nY, nDeriv, 2),
		yOld:   make([]float64, nY),
	}
}

func (s *CrankNicolsonStepper) Name() string { return CrankNicolson.String() }

func (s *CrankNicolsonStepper) Update(y []float64, dt float64, dy DerivFunc, yUpdate UpdateFunc) {
	var (
		k1, kNew = s.k[0], s.k[1]
		kt       = s.kTotal
	)
	yUpdate = updateOrDefault(yUpdate)
	copy(s.yInit, y)
	dy(k1, y)

	s.Converged = false
	for s.Iterations = 1; s.Iterations <= CNMaxIterations; s.Iterations++ {
		dy(kNew, y)
		floats.AddTo(kt, k1, kNew)
		copy(s.yOld, y)
		s.restart(y)
		yUpdate(y, kt, 0.5*dt)
		if s.relativeChange(y) < CNTolerance {
			s.Converged = true
			break
		}
	}
	if s.Iterations > CNMaxIterations {
		s.Iterations = CNMaxIterations
	}
}

func (s *CrankNicolsonStepper) relativeChange(y []float64) float64 {
	var (
		diff = floats.Distance(s.yOld, y, math.Inf(1))
		norm = floats.Norm(s.yOld, math.Inf(1))
	)
	if norm == 0 {
		return diff
	}
	return diff / norm
}
