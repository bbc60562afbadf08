package utils

// Motion is the result of one integration step.
type Motion struct {
	X, Y   float64
	Dx, Dy float64
	// Nx, Ny is the net displacement over the step.
	Nx, Ny float64
}

// Accelerate advances a point by dt under a constant acceleration magnitude
// that pushes each velocity axis further along its current sign. An axis with
// zero velocity never picks up speed.
func Accelerate(x, y, dx, dy, accel, dt float64) Motion {
	x2 := x + (dt * dx) + (accel * dt * dt * 0.5)
	y2 := y + (dt * dy) + (accel * dt * dt * 0.5)
	dx2 := dx + (accel*dt)*Sign(dx)
	dy2 := dy + (accel*dt)*Sign(dy)

	return Motion{
		X:  x2,
		Y:  y2,
		Dx: dx2,
		Dy: dy2,
		Nx: x2 - x,
		Ny: y2 - y,
	}
}
