package algo

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Low-pass defaults used by the accelerometer preprocessing step.
const (
	DefaultCutoffHz   = 5.0
	DefaultSampleRate = 50.0
	DefaultOrder      = 4
)

// biquad is a second-order section in transposed direct form II.
// First-order sections leave b2 and a2 at zero.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// butterworth designs a digital Butterworth low-pass filter as a cascade of
// sections using the bilinear transform with a prewarped cutoff.
func butterworth(cutoff, sampleRate float64, order int) ([]biquad, error) {
	if order < 1 || order > 8 {
		return nil, fmt.Errorf("filter order must be between 1 and 8 (received %d)", order)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive (received %g)", sampleRate)
	}
	if cutoff <= 0 || cutoff >= sampleRate/2 {
		return nil, fmt.Errorf("cutoff must be between 0 and the Nyquist frequency %g (received %g)", sampleRate/2, cutoff)
	}

	w0 := 2 * math.Pi * cutoff / sampleRate
	cosW, sinW := math.Cos(w0), math.Sin(w0)

	var sections []biquad
	for k := range order / 2 {
		theta := math.Pi * float64(2*k+1) / float64(2*order)
		q := 1 / (2 * math.Cos(theta))
		alpha := sinW / (2 * q)
		a0 := 1 + alpha
		sections = append(sections, biquad{
			b0: (1 - cosW) / 2 / a0,
			b1: (1 - cosW) / a0,
			b2: (1 - cosW) / 2 / a0,
			a1: -2 * cosW / a0,
			a2: (1 - alpha) / a0,
		})
	}
	if order%2 == 1 {
		k := math.Tan(w0 / 2)
		sections = append(sections, biquad{
			b0: k / (1 + k),
			b1: k / (1 + k),
			a1: (k - 1) / (k + 1),
		})
	}
	return sections, nil
}

// run filters xs through the section, starting from the steady state of xs[0]
// so a constant signal passes through unchanged.
func (q biquad) run(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	z2 := xs[0] * (q.b2 - q.a2)
	z1 := xs[0]*(q.b1-q.a1) + z2
	for i, x := range xs {
		y := q.b0*x + z1
		z1 = q.b1*x - q.a1*y + z2
		z2 = q.b2*x - q.a2*y
		out[i] = y
	}
	return out
}

// LowPass applies a zero-phase (forward and backward) Butterworth low-pass
// filter to xs. The signal is padded with an odd reflection at both ends to
// limit edge transients.
func LowPass(xs []float64, cutoff, sampleRate float64, order int) ([]float64, error) {
	sections, err := butterworth(cutoff, sampleRate, order)
	if err != nil {
		return nil, err
	}
	if len(xs) < 2 {
		out := make([]float64, len(xs))
		copy(out, xs)
		return out, nil
	}

	pad := min(3*(order+1), len(xs)-1)
	ext := oddExtend(xs, pad)

	forward := cascade(sections, ext)
	backward := cascade(sections, reversed(forward))
	result := reversed(backward)

	return result[pad : pad+len(xs)], nil
}

// cascade runs xs through every section in turn.
func cascade(sections []biquad, xs []float64) []float64 {
	out := xs
	for _, s := range sections {
		out = s.run(out)
	}
	return out
}

// oddExtend reflects xs about its end points by pad samples on each side.
func oddExtend(xs []float64, pad int) []float64 {
	n := len(xs)
	out := make([]float64, 0, n+2*pad)
	for i := pad; i >= 1; i-- {
		out = append(out, 2*xs[0]-xs[i])
	}
	out = append(out, xs...)
	for i := n - 2; i >= n-1-pad; i-- {
		out = append(out, 2*xs[n-1]-xs[i])
	}
	return out
}

// reversed returns a reversed copy of xs.
func reversed(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}

// MinMaxScale rescales xs into [0,1]. A constant column scales to all zeros.
func MinMaxScale(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	lo, hi := stats.Bounds(xs)
	if hi <= lo {
		return out
	}
	for i, x := range xs {
		out[i] = (x - lo) / (hi - lo)
	}
	return out
}

// Magnitude returns the Euclidean norm of a three-axis sample.
func Magnitude(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
