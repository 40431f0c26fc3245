package timestepper

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// DerivFunc writes dy/dt evaluated at y into deriv
type DerivFunc func(deriv, y []float64)

// UpdateFunc advances y in place by dt along deriv. The default is
// y += dt*deriv; callers with a non-flat state (periodic or mapped
// coordinates) supply their own.
type UpdateFunc func(y, deriv []float64, dt float64)

// Stepper advances a state by one time step. Each stage completes a full
// pass over the state before the next one starts.
type Stepper interface {
	Update(y []float64, dt float64, dy DerivFunc, yUpdate UpdateFunc)
	Name() string
}

func DefaultUpdate(y, deriv []float64, dt float64) {
	floats.AddScaled(y, dt, deriv)
}

type StepperType uint8

const (
	Euler StepperType = iota
	RK2
	RK3
	RK4
	LSRK4
	CrankNicolson
)

var stepperNames = map[string]StepperType{
	"euler":         Euler,
	"rk2":           RK2,
	"rk3":           RK3,
	"rk4":           RK4,
	"lsrk4":         LSRK4,
	"cranknicolson": CrankNicolson,
}

func (st StepperType) String() string {
	switch st {
	case Euler:
		return "Euler"
	case RK2:
		return "RK2"
	case RK3:
		return "RK3"
	case RK4:
		return "RK4"
	case LSRK4:
		return "LSRK4"
	case CrankNicolson:
		return "CrankNicolson"
	}
	return fmt.Sprintf("StepperType(%d)", st)
}

func ParseStepperType(label string) (st StepperType, err error) {
	var ok bool
	if st, ok = stepperNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown time stepper %q", label)
	}
	return
}

// NewStepper allocates the stage storage for a state of length nY whose
// derivative has length nDeriv.
func NewStepper(st StepperType, nY, nDeriv int) (s Stepper) {
	switch st {
	case Euler:
		s = NewEulerStepper(nY, nDeriv)
	case RK2:
		s = NewRK2Stepper(nY, nDeriv)
	case RK3:
		s = NewRK3Stepper(nY, nDeriv)
	case RK4:
		s = NewRK4Stepper(nY, nDeriv)
	case LSRK4:
		s = NewLSRK4Stepper(nY, nDeriv)
	case CrankNicolson:
		s = NewCrankNicolsonStepper(nY, nDeriv)
	default:
		panic(fmt.Errorf("unknown time stepper %v", st))
	}
	return
}

func updateOrDefault(yUpdate UpdateFunc) UpdateFunc {
	if yUpdate == nil {
		return DefaultUpdate
	}
	return yUpdate
}
