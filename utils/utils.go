package utils

import "math/rand"

// Sign returns -1, 0 or 1 following the sign of x.
func Sign(x float64) float64 {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}

// Clamp bounds x into [min, max].
func Clamp(x, min, max float64) float64 {
	if x < min {
		return min
	} else if x > max {
		return max
	}
	return x
}

// SameDirection reports whether a and b are both strictly positive or both
// strictly negative.
func SameDirection(a, b float64) bool {
	return a*b > 0
}

func SumVectors(vectorA, vectorB Vector) Vector {
	return Vector{X: vectorA.X + vectorB.X, Y: vectorA.Y + vectorB.Y}
}

func MultiplyVectorByScalar(vector Vector, scalar float64) Vector {
	return Vector{X: vector.X * scalar, Y: vector.Y * scalar}
}

// RandomBetween returns a uniform value in [min, max). A nil source falls
// back to the package level generator.
func RandomBetween(rng *rand.Rand, min, max float64) float64 {
	if rng == nil {
		return min + rand.Float64()*(max-min)
	}
	return min + rng.Float64()*(max-min)
}
