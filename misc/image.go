package misc

func LerpFloat64(v1 float64, v2 float64, fraction float64) float64 {
	return v1 + (v2-v1)*fraction
}

// MapRange linearly maps x from the range [a, b] onto [m, n].
// For example 2 in [0, 10] becomes 14 in [10, 30].
func MapRange(x float64, a float64, b float64, m float64, n float64) float64 {
	return (x-a)/(b-a)*(n-m) + m
}

func Clamp(v float64, low float64, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
