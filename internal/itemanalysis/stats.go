// Package itemanalysis computes quiz item statistics: difficulty, spread,
// point-biserial discrimination and test reliability.
package itemanalysis

import (
	"encoding/json"
	"math"
)

// Correlation is a coefficient that may be undefined, for example when one
// of the vectors has no variance.
type Correlation struct {
	Value   float64
	Defined bool
}

// Undefined is the correlation of a degenerate input.
var Undefined = Correlation{}

// Defined wraps a computed value.
func Defined(v float64) Correlation {
	return Correlation{Value: v, Defined: true}
}

// Ptr returns nil for an undefined correlation.
func (c Correlation) Ptr() *float64 {
	if !c.Defined {
		return nil
	}
	v := c.Value
	return &v
}

func (c Correlation) MarshalJSON() ([]byte, error) {
	if !c.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

func (c *Correlation) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Undefined
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Defined(v)
	return nil
}

// Mean of xs, zero for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Variance is the population variance (divisor N).
func Variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := Mean(xs)
	var sumsq float64
	for _, x := range xs {
		d := x - mean
		sumsq += d * d
	}
	return sumsq / float64(len(xs))
}

// StandardDeviation is the square root of the population variance.
func StandardDeviation(xs []float64) float64 {
	return math.Sqrt(Variance(xs))
}

// DifficultyIndex is the fraction of answering respondents who were correct.
func DifficultyIndex(correct []bool) float64 {
	if len(correct) == 0 {
		return 0
	}
	n := 0
	for _, c := range correct {
		if c {
			n++
		}
	}
	return float64(n) / float64(len(correct))
}

// PointBiserial is the Pearson correlation between a group membership
// indicator and the respondents' total scores, using population moments.
// It is Undefined when either vector has zero variance or the vectors do not
// line up.
func PointBiserial(indicator []bool, scores []float64) Correlation {
	if len(indicator) == 0 || len(indicator) != len(scores) {
		return Undefined
	}
	return Pearson(Indicator(indicator), scores)
}

// Pearson correlation of two equally long vectors.
func Pearson(xs, ys []float64) Correlation {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return Undefined
	}

	sdX := StandardDeviation(xs)
	sdY := StandardDeviation(ys)
	if sdX == 0 || sdY == 0 || math.IsNaN(sdX) || math.IsNaN(sdY) {
		return Undefined
	}

	meanX, meanY := Mean(xs), Mean(ys)
	var cov float64
	for i := range xs {
		cov += (xs[i] - meanX) * (ys[i] - meanY)
	}
	cov /= float64(n)

	r := cov / (sdX * sdY)
	// rounding can push |r| a hair past 1
	return Defined(math.Max(-1, math.Min(1, r)))
}

// Indicator maps booleans to 1/0.
func Indicator(flags []bool) []float64 {
	out := make([]float64, len(flags))
	for i, f := range flags {
		if f {
			out[i] = 1
		}
	}
	return out
}
