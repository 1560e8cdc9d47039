package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"lifespan/mortality/pkg/lifetable"
)

// ErrEmptyDataset is returned when the table holds zero deaths.
var ErrEmptyDataset = errors.New("no deaths in dataset")

type Summary struct {
	Mean     float64
	Variance float64
	StdDev   float64
	N        int
}

// Expand reconstructs the per-individual age-at-death sample from the
// bucketed counts, repeating each bucket's age by its death count.
// offset shifts every age; 0.5 models mid-year death timing.
func Expand(entries []lifetable.Entry, offset float64) []float64 {
	var total int
	for _, e := range entries {
		total += e.Deaths
	}
	sample := make([]float64, 0, total)
	for _, e := range entries {
		v := float64(e.Age) + offset
		for i := 0; i < e.Deaths; i++ {
			sample = append(sample, v)
		}
	}
	return sample
}

// Summarize computes the death-count-weighted mean and population
// deviation of the bucket ages.
func Summarize(entries []lifetable.Entry) (Summary, error) {
	sample := Expand(entries, 0)
	if len(sample) == 0 {
		return Summary{}, ErrEmptyDataset
	}
	mean, _ := stats.Mean(sample)
	variance, _ := stats.PopulationVariance(sample)
	return Summary{
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		N:        len(sample),
	}, nil
}

// Percentiles evaluates each requested percentile of sample by linear
// interpolation between the two closest ranks of the sorted sample.
func Percentiles(sample []float64, ps []float64) ([]float64, error) {
	if len(sample) == 0 {
		return nil, ErrEmptyDataset
	}
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	out := make([]float64, len(ps))
	for i, p := range ps {
		if p < 0 || p > 100 {
			return nil, fmt.Errorf("percentile %v outside [0, 100]", p)
		}
		out[i] = quantile(sorted, p/100)
	}
	return out, nil
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SkewNormalPDF evaluates the skew-normal density at x with location
// loc, scale, and shape. A shape of zero reduces it to the normal
// density. Used only for the cosmetic chart overlay; parameterizing it
// from a sample mean and deviation is a rough approximation, not a fit.
func SkewNormalPDF(x, loc, scale, shape float64) float64 {
	if scale <= 0 {
		return 0
	}
	z := (x - loc) / scale
	pdf := math.Exp(-z*z/2) / math.Sqrt(2*math.Pi)
	cdf := 0.5 * (1 + math.Erf(shape*z/math.Sqrt2))
	return 2 / scale * pdf * cdf
}
