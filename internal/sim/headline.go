package sim

import (
	"math"

	"github.com/san-kum/studiofx/internal/dynamo"
)

// Headline reduces an effect snapshot to the single value live hosts chart:
// mean opacity for the field, mean displacement for the flock and the
// largest scale for the lens.
func Headline(effect string, snap dynamo.State, stride int) (string, float64) {
	if stride <= 0 || len(snap) < stride {
		return "", 0
	}
	n := len(snap) / stride
	sum := 0.0
	switch effect {
	case "field":
		for i := 0; i < n; i++ {
			sum += snap[i*stride+2]
		}
		return "opacity", sum / float64(n)
	case "flock":
		for i := 0; i < n; i++ {
			sum += math.Hypot(snap[i*stride], snap[i*stride+1])
		}
		return "offset", sum / float64(n)
	case "lens":
		peak := 0.0
		for i := 0; i < n; i++ {
			peak = max(peak, snap[i*stride])
		}
		return "max scale", peak
	}
	return "", 0
}
