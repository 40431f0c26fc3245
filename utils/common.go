package utils

const (
	NODETOL = 1.e-12
	// OPOINTTOL is the distance below which a radius, or a physical point,
	// is taken to sit on the O-point.
	OPOINTTOL = 1.e-15
	// MATCHTOL is the coordinate discrepancy accepted between two conforming
	// grid points on either side of an interface.
	MATCHTOL = 1.e-14
)
