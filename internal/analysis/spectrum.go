package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Series extracts component offset of entity from every snapshot.
func Series(states [][]float64, stride, entity, offset int) []float64 {
	idx := entity*stride + offset
	out := make([]float64, 0, len(states))
	for _, s := range states {
		if idx < len(s) {
			out = append(out, s[idx])
		}
	}
	return out
}

// MeanSeries averages component offset over all entities of each snapshot.
func MeanSeries(states [][]float64, stride, offset int) []float64 {
	out := make([]float64, len(states))
	for i, s := range states {
		n := 0
		for j := offset; j < len(s); j += stride {
			out[i] += s[j]
			n++
		}
		if n > 0 {
			out[i] /= float64(n)
		}
	}
	return out
}

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data with its mean removed, so bin 0 carries no DC offset.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spec := fft.FFTReal(centred)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin
// of data sampled at sampleRate, and that bin's magnitude.
func DominantFrequency(data []float64, sampleRate float64) (float64, float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0, 0
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(best) * sampleRate / float64(len(data)), ps[best]
}
