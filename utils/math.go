package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// GCD is the greatest common divisor of two non-negative integers
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Mod is the euclidean modulo, always in [0, n)
func Mod(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}

// FloorDiv rounds the quotient towards minus infinity
func FloorDiv(i, n int) int {
	q := i / n
	if (i%n != 0) && ((i < 0) != (n < 0)) {
		q--
	}
	return q
}

// WrapPeriodic restricts x into [min, min+period)
func WrapPeriodic(x, min, period float64) (xw float64) {
	xw = x - period*math.Floor((x-min)/period)
	if xw >= min+period {
		xw -= period
	}
	if xw < min {
		xw = min
	}
	return
}

// Linspace returns n points evenly spaced on [min, max], both ends included.
func Linspace(min, max float64, n int) (x []float64) {
	x = make([]float64, n)
	if n < 2 {
		if n == 1 {
			x[0] = min
		}
		return
	}
	floats.Span(x, min, max)
	x[n-1] = max
	return
}
