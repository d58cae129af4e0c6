package interaction

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

// CubicInOut accelerates through the first half and decelerates through the
// second, the default easing for chart transitions.
func CubicInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Linear is the identity easing.
func Linear(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return t
}
