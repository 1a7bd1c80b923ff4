package n3m

import (
	"math"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

func clamp(val float64, minVal float64, maxVal float64) float64 {
	return math.Max(math.Min(val, maxVal), minVal)
}

func signNotZero(v float64) float64 {
	if v < 0.0 {
		return -1.0
	}
	return 1.0
}

func toSnorm(v float64) uint8 {
	return uint8(math.Round((clamp(v, -1.0, 1.0)*0.5 + 0.5) * 255.0))
}

func fromSnorm(v uint8) float64 {
	return float64(v)/255.0*2.0 - 1.0
}

// octEncode projects a unit vector onto the octahedron and folds the lower
// half over the upper one.
func octEncode(vec vec3d.T) [2]uint8 {
	l1Norm := math.Abs(vec[0]) + math.Abs(vec[1]) + math.Abs(vec[2])
	if l1Norm == 0 {
		return [2]uint8{toSnorm(0), toSnorm(0)}
	}
	x := vec[0] / l1Norm
	y := vec[1] / l1Norm

	if vec[2] < 0.0 {
		x, y = (1.0-math.Abs(y))*signNotZero(x), (1.0-math.Abs(x))*signNotZero(y)
	}
	return [2]uint8{toSnorm(x), toSnorm(y)}
}

func octDecode(x, y uint8) vec3d.T {
	res := vec3d.T{fromSnorm(x), fromSnorm(y), 0.0}
	res[2] = 1.0 - math.Abs(res[0]) - math.Abs(res[1])

	if res[2] < 0.0 {
		oldX := res[0]
		res[0] = (1.0 - math.Abs(res[1])) * signNotZero(oldX)
		res[1] = (1.0 - math.Abs(oldX)) * signNotZero(res[1])
	}
	return res.Normalized()
}
