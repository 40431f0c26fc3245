package timestepper

import (
	"gonum.org/v1/gonum/floats"
)

type stages struct {
	yInit, kTotal []float64
	k             [][]float64
}

func newStages(nY, nDeriv, nk int) (s stages) {
	s.yInit = make([]float64, nY)
	s.kTotal = make([]float64, nDeriv)
	s.k = make([][]float64, nk)
	for i := range s.k {
		s.k[i] = make([]float64, nDeriv)
	}
	return
}

// restart resets y to the state at the start of the step
func (s *stages) restart(y []float64) { copy(y, s.yInit) }

type EulerStepper struct {
	stages
}

func NewEulerStepper(nY, nDeriv int) *EulerStepper {
	return &EulerStepper{stages: newStages(nY, nDeriv, 1)}
}

func (s *EulerStepper) Name() string { return Euler.String() }

func (s *EulerStepper) Update(y []float64, dt float64, dy DerivFunc, yUpdate UpdateFunc) {
	yUpdate = updateOrDefault(yUpdate)
	k1 := s.k[0]
	dy(k1, y)
	yUpdate(y, k1, dt)
}

// RK2Stepper is the explicit midpoint method
type RK2Stepper struct {
	stages
}

func NewRK2Stepper(nY, nDeriv int) *RK2Stepper {
	return &RK2Stepper{stages: newStages(nY, nDeriv, 2)}
}

func (s *RK2Stepper) Name() string { return RK2.String() }

func (s *RK2Stepper) Update(y []float64, dt float64, dy DerivFunc, yUpdate UpdateFunc) {
	var (
		k1, k2 = s.k[0], s.k[1]
	)
	yUpdate = updateOrDefault(yUpdate)
	copy(s.yInit, y)

	dy(k1, y)
	yUpdate(y, k1, 0.5*dt)

	dy(k2, y)
	s.restart(y)
	yUpdate(y, k2, dt)
}

// RK3Stepper is Kutta's third order method
type RK3Stepper struct {
	stages
}

func NewRK3Stepper(nY, nDeriv int) *RK3Stepper {
	return &RK3Stepper{stages: newStages(nY, nDeriv, 3)}
}

func (s *RK3Stepper) Name() string { return RK3.String() }

func (s *RK3Stepper) Update(y []float64, dt float64, dy DerivFunc, yUpdate UpdateFunc) {
	var (
		k1, k2, k3 = s.k[0], s.k[1], s.k[2]
		kt         = s.kTotal
	)
	yUpdate = updateOrDefault(yUpdate)
	copy(s.yInit, y)

	dy(k1, y)
	yUpdate(y, k1, 0.5*dt)

	dy(k2, y)
	// kt = 2*k2 - k1
	floats.ScaleTo(kt, 2, k2)
	floats.Sub(kt, k1)
	s.restart(y)
	yUpdate(y, kt, dt)

	dy(k3, y)
	// kt = k1 + 4*k2 + k3
	floats.AddScaledTo(kt, k1, 4, k2)
	floats.Add(kt, k3)
	s.restart(y)
	yUpdate(y, kt, dt/6.)
}

type RK4Stepper struct {
	stages
}

func NewRK4Stepper(nY, nDeriv int) *RK4Stepper {
	return &RK4Stepper{stages: newStages(nY, nDeriv, 4)}
}

func (s *RK4Stepper) Name() string { return RK4.String() }

func (s *RK4Stepper) Update(y []float64, dt float64, dy DerivFunc, yUpdate UpdateFunc) {
	var (
		k1, k2, k3, k4 = s.k[0], s.k[1], s.k[2], s.k[3]
		kt             = s.kTotal
	)
	yUpdate = updateOrDefault(yUpdate)
	copy(s.yInit, y)

	dy(k1, y)
	yUpdate(y, k1, 0.5*dt)

	dy(k2, y)
	s.restart(y)
	yUpdate(y, k2, 0.5*dt)

	dy(k3, y)
	s.restart(y)
	yUpdate(y, k3, dt)

	dy(k4, y)
	// kt = k1 + 2*k2 + 2*k3 + k4
	floats.AddScaledTo(kt, k1, 2, k2)
	floats.AddScaled(kt, 2, k3)
	floats.Add(kt, k4)
	s.restart(y)
	yUpdate(y, kt, dt/6.)
}

// Five stage, fourth order, two register scheme of Carpenter and Kennedy.
// The residual accumulates resid = a*resid + dy and the state moves by
// b*dt along it.
var (
	RK4a = [5]float64{
		0.0,
		-567301805773.0 / 1357537059087.0,
		-2404267990393.0 / 2016746695238.0,
		-3550918686646.0 / 2091501179385.0,
		-1275806237668.0 / 842570457699.0,
	}
	RK4b = [5]float64{
		1432997174477.0 / 9575080441755.0,
		5161836677717.0 / 13612068292357.0,
		1720146321549.0 / 2090206949498.0,
		3134564353537.0 / 4481467310338.0,
		2277821191437.0 / 14882151754819.0,
	}
)

type LSRK4Stepper struct {
	stages
}

func NewLSRK4Stepper(nY, nDeriv int) *LSRK4Stepper {
	return &LSRK4Stepper{stages: newStages(nY, nDeriv, 1)}
}

func (s *LSRK4Stepper) Name() string { return LSRK4.String() }

func (s *LSRK4Stepper) Update(y []float64, dt float64, dy DerivFunc, yUpdate UpdateFunc) {
	var (
		k     = s.k[0]
		resid = s.kTotal
	)
	yUpdate = updateOrDefault(yUpdate)
	for INTRK := 0; INTRK < 5; INTRK++ {
		dy(k, y)
		// resid = rk4a(INTRK) * resid + rhs
		floats.Scale(RK4a[INTRK], resid)
		floats.Add(resid, k)
		yUpdate(y, resid, RK4b[INTRK]*dt)
	}
}
